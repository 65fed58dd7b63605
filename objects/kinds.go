package objects

import (
	"github.com/okarren/aurora/gff"
	"github.com/okarren/aurora/i18n"
	"github.com/okarren/aurora/res"
)

// The kinds below carry their shared Common plus the leaf fields module
// and area loading need. Creature is the fully worked serialization
// example; these deserialize enough to resolve tags, scripts and
// kind-specific state.

// Item is an inventory object.
type Item struct {
	Common
	ScriptRefs ScriptRefs

	BaseItem   int32
	StackSize  uint16
	Charges    uint8
	Cost       uint32
	AddCost    uint32
	Plot       bool
	Cursed     bool
	Identified bool

	effects EffectList
}

// Kind returns KindItem.
func (i *Item) Kind() Kind { return KindItem }

// CommonData returns the shared field record.
func (i *Item) CommonData() *Common { return &i.Common }

// Scripts returns the event handler record.
func (i *Item) Scripts() *ScriptRefs { return &i.ScriptRefs }

// Effects returns the applied-effect list.
func (i *Item) Effects() *EffectList { return &i.effects }

// FromGff reads a UTI blueprint struct.
func (i *Item) FromGff(s gff.Struct) bool {
	if !s.Valid() {
		return false
	}
	readCommon(&i.Common, s)
	s.Field("BaseItem").GetTo(&i.BaseItem)
	s.Field("StackSize").GetTo(&i.StackSize)
	s.Field("Charges").GetTo(&i.Charges)
	s.Field("Cost").GetTo(&i.Cost)
	s.Field("AddCost").GetTo(&i.AddCost)
	i.Plot = gff.GetOr[uint8](s.Field("Plot"), 0) != 0
	i.Cursed = gff.GetOr[uint8](s.Field("Cursed"), 0) != 0
	i.Identified = gff.GetOr[uint8](s.Field("Identified"), 0) != 0
	return true
}

// Door is a door object.
type Door struct {
	Common
	ScriptRefs ScriptRefs

	Appearance   uint32
	GenericType  uint8
	Plot         bool
	Hardness     uint8
	HPMax        int16
	HPCurrent    int16
	Lock         Lock
	Trap         Trap
	LinkedTo     string
	LinkedToFlag uint8

	effects EffectList
}

// Kind returns KindDoor.
func (d *Door) Kind() Kind { return KindDoor }

// CommonData returns the shared field record.
func (d *Door) CommonData() *Common { return &d.Common }

// Scripts returns the event handler record.
func (d *Door) Scripts() *ScriptRefs { return &d.ScriptRefs }

// Effects returns the applied-effect list.
func (d *Door) Effects() *EffectList { return &d.effects }

// FromGff reads a UTD blueprint struct.
func (d *Door) FromGff(s gff.Struct) bool {
	if !s.Valid() {
		return false
	}
	readCommon(&d.Common, s)
	s.Field("Appearance").GetTo(&d.Appearance)
	s.Field("GenericType").GetTo(&d.GenericType)
	d.Plot = gff.GetOr[uint8](s.Field("Plot"), 0) != 0
	s.Field("Hardness").GetTo(&d.Hardness)
	s.Field("HP").GetTo(&d.HPMax)
	s.Field("CurrentHP").GetTo(&d.HPCurrent)
	s.Field("LinkedTo").GetTo(&d.LinkedTo)
	s.Field("LinkedToFlags").GetTo(&d.LinkedToFlag)
	d.Lock.FromGff(s)
	d.Trap.FromGff(s)
	d.ScriptRefs.OnClick = resrefField(s, "OnClick")
	d.ScriptRefs.OnClosed = resrefField(s, "OnClosed")
	d.ScriptRefs.OnDamaged = resrefField(s, "OnDamaged")
	d.ScriptRefs.OnDeath = resrefField(s, "OnDeath")
	d.ScriptRefs.OnHeartbeat = resrefField(s, "OnHeartbeat")
	d.ScriptRefs.OnOpen = resrefField(s, "OnOpen")
	d.ScriptRefs.OnSpellCastAt = resrefField(s, "OnSpellCastAt")
	d.ScriptRefs.OnUserDefined = resrefField(s, "OnUserDefined")
	return true
}

// Placeable is a static-world interactive object.
type Placeable struct {
	Common
	ScriptRefs ScriptRefs

	Appearance uint32
	Static     bool
	Useable    bool
	Plot       bool
	Hardness   uint8
	HPMax      int16
	HPCurrent  int16
	Lock       Lock
	Trap       Trap

	effects EffectList
}

// Kind returns KindPlaceable.
func (p *Placeable) Kind() Kind { return KindPlaceable }

// CommonData returns the shared field record.
func (p *Placeable) CommonData() *Common { return &p.Common }

// Scripts returns the event handler record.
func (p *Placeable) Scripts() *ScriptRefs { return &p.ScriptRefs }

// Effects returns the applied-effect list.
func (p *Placeable) Effects() *EffectList { return &p.effects }

// FromGff reads a UTP blueprint struct.
func (p *Placeable) FromGff(s gff.Struct) bool {
	if !s.Valid() {
		return false
	}
	readCommon(&p.Common, s)
	s.Field("Appearance").GetTo(&p.Appearance)
	p.Static = gff.GetOr[uint8](s.Field("Static"), 0) != 0
	p.Useable = gff.GetOr[uint8](s.Field("Useable"), 0) != 0
	p.Plot = gff.GetOr[uint8](s.Field("Plot"), 0) != 0
	s.Field("Hardness").GetTo(&p.Hardness)
	s.Field("HP").GetTo(&p.HPMax)
	s.Field("CurrentHP").GetTo(&p.HPCurrent)
	p.Lock.FromGff(s)
	p.Trap.FromGff(s)
	p.ScriptRefs.OnUsed = resrefField(s, "OnUsed")
	p.ScriptRefs.OnHeartbeat = resrefField(s, "OnHeartbeat")
	p.ScriptRefs.OnUserDefined = resrefField(s, "OnUserDefined")
	return true
}

// Trigger is an invisible walk-over region.
type Trigger struct {
	Common
	ScriptRefs ScriptRefs

	Type     int32
	Cursor   uint8
	Faction  uint32
	HighLite bool
	Trap     Trap

	effects EffectList
}

// Kind returns KindTrigger.
func (t *Trigger) Kind() Kind { return KindTrigger }

// CommonData returns the shared field record.
func (t *Trigger) CommonData() *Common { return &t.Common }

// Scripts returns the event handler record.
func (t *Trigger) Scripts() *ScriptRefs { return &t.ScriptRefs }

// Effects returns the applied-effect list.
func (t *Trigger) Effects() *EffectList { return &t.effects }

// FromGff reads a UTT blueprint struct.
func (t *Trigger) FromGff(s gff.Struct) bool {
	if !s.Valid() {
		return false
	}
	readCommon(&t.Common, s)
	s.Field("Type").GetTo(&t.Type)
	s.Field("Cursor").GetTo(&t.Cursor)
	s.Field("Faction").GetTo(&t.Faction)
	t.HighLite = gff.GetOr[uint8](s.Field("HighlightHeight"), 0) != 0
	t.Trap.FromGff(s)
	t.ScriptRefs.OnClick = resrefField(s, "OnClick")
	t.ScriptRefs.OnHeartbeat = resrefField(s, "ScriptHeartbeat")
	t.ScriptRefs.OnUserDefined = resrefField(s, "ScriptUserDefine")
	return true
}

// Sound is an ambient sound emitter.
type Sound struct {
	Common
	ScriptRefs ScriptRefs

	Active     bool
	Continuous bool
	Looping    bool
	Positional bool
	Priority   uint8
	Interval   uint32
	Volume     uint8
	Sounds     []res.Resref

	effects EffectList
}

// Kind returns KindSound.
func (s *Sound) Kind() Kind { return KindSound }

// CommonData returns the shared field record.
func (s *Sound) CommonData() *Common { return &s.Common }

// Scripts returns the event handler record.
func (s *Sound) Scripts() *ScriptRefs { return &s.ScriptRefs }

// Effects returns the applied-effect list.
func (s *Sound) Effects() *EffectList { return &s.effects }

// FromGff reads a UTS blueprint struct.
func (s *Sound) FromGff(st gff.Struct) bool {
	if !st.Valid() {
		return false
	}
	readCommon(&s.Common, st)
	s.Active = gff.GetOr[uint8](st.Field("Active"), 0) != 0
	s.Continuous = gff.GetOr[uint8](st.Field("Continuous"), 0) != 0
	s.Looping = gff.GetOr[uint8](st.Field("Looping"), 0) != 0
	s.Positional = gff.GetOr[uint8](st.Field("Positional"), 0) != 0
	st.Field("Priority").GetTo(&s.Priority)
	st.Field("Interval").GetTo(&s.Interval)
	st.Field("Volume").GetTo(&s.Volume)
	if list := st.Field("Sounds"); list.Valid() {
		for i := 0; i < list.Size(); i++ {
			s.Sounds = append(s.Sounds, resrefField(list.Index(i), "Sound"))
		}
	}
	return true
}

// Store is a merchant inventory.
type Store struct {
	Common
	ScriptRefs ScriptRefs

	BlackMarket bool
	MarkUp      int32
	MarkDown    int32
	MaxBuyPrice int32
	StoreGold   int32

	effects EffectList
}

// Kind returns KindStore.
func (s *Store) Kind() Kind { return KindStore }

// CommonData returns the shared field record.
func (s *Store) CommonData() *Common { return &s.Common }

// Scripts returns the event handler record.
func (s *Store) Scripts() *ScriptRefs { return &s.ScriptRefs }

// Effects returns the applied-effect list.
func (s *Store) Effects() *EffectList { return &s.effects }

// FromGff reads a UTM blueprint struct.
func (s *Store) FromGff(st gff.Struct) bool {
	if !st.Valid() {
		return false
	}
	readCommon(&s.Common, st)
	s.BlackMarket = gff.GetOr[uint8](st.Field("BlackMarket"), 0) != 0
	st.Field("MarkUp").GetTo(&s.MarkUp)
	st.Field("MarkDown").GetTo(&s.MarkDown)
	st.Field("MaxBuyPrice").GetTo(&s.MaxBuyPrice)
	st.Field("StoreGold").GetTo(&s.StoreGold)
	return true
}

// Encounter spawns creatures when entered.
type Encounter struct {
	Common
	ScriptRefs ScriptRefs

	Active       bool
	Difficulty   int32
	MaxCreatures int32
	RecCreatures int32
	Reset        bool
	ResetTime    int32
	Respawns     int32
	Creatures    []res.Resref

	effects EffectList
}

// Kind returns KindEncounter.
func (e *Encounter) Kind() Kind { return KindEncounter }

// CommonData returns the shared field record.
func (e *Encounter) CommonData() *Common { return &e.Common }

// Scripts returns the event handler record.
func (e *Encounter) Scripts() *ScriptRefs { return &e.ScriptRefs }

// Effects returns the applied-effect list.
func (e *Encounter) Effects() *EffectList { return &e.effects }

// FromGff reads a UTE blueprint struct.
func (e *Encounter) FromGff(s gff.Struct) bool {
	if !s.Valid() {
		return false
	}
	readCommon(&e.Common, s)
	e.Active = gff.GetOr[uint8](s.Field("Active"), 0) != 0
	s.Field("Difficulty").GetTo(&e.Difficulty)
	s.Field("MaxCreatures").GetTo(&e.MaxCreatures)
	s.Field("RecCreatures").GetTo(&e.RecCreatures)
	e.Reset = gff.GetOr[uint8](s.Field("Reset"), 0) != 0
	s.Field("ResetTime").GetTo(&e.ResetTime)
	s.Field("Respawns").GetTo(&e.Respawns)
	if list := s.Field("CreatureList"); list.Valid() {
		for i := 0; i < list.Size(); i++ {
			e.Creatures = append(e.Creatures, resrefField(list.Index(i), "ResRef"))
		}
	}
	return true
}

// Waypoint is a named map position.
type Waypoint struct {
	Common
	ScriptRefs ScriptRefs

	HasMapNote  bool
	MapNote     string
	NoteEnabled bool

	effects EffectList
}

// Kind returns KindWaypoint.
func (w *Waypoint) Kind() Kind { return KindWaypoint }

// CommonData returns the shared field record.
func (w *Waypoint) CommonData() *Common { return &w.Common }

// Scripts returns the event handler record.
func (w *Waypoint) Scripts() *ScriptRefs { return &w.ScriptRefs }

// Effects returns the applied-effect list.
func (w *Waypoint) Effects() *EffectList { return &w.effects }

// FromGff reads a UTW blueprint struct.
func (w *Waypoint) FromGff(s gff.Struct) bool {
	if !s.Valid() {
		return false
	}
	readCommon(&w.Common, s)
	w.HasMapNote = gff.GetOr[uint8](s.Field("HasMapNote"), 0) != 0
	w.NoteEnabled = gff.GetOr[uint8](s.Field("MapNoteEnabled"), 0) != 0
	note := gff.GetOr(s.Field("MapNote"), i18n.LocString{})
	w.MapNote = note.Get(i18n.LangEnglish, false)
	return true
}
