package objects

import (
	"github.com/okarren/aurora/gff"
	"github.com/okarren/aurora/res"
)

// Ability score labels in index order.
var abilityLabels = [abilityCount]string{"Str", "Dex", "Con", "Int", "Wis", "Cha"}

var bodyPartLabels = []struct {
	label string
	slot  func(*BodyParts) *uint8
}{
	{"Appearance_Head", func(b *BodyParts) *uint8 { return &b.Head }},
	{"BodyPart_Neck", func(b *BodyParts) *uint8 { return &b.Neck }},
	{"BodyPart_Torso", func(b *BodyParts) *uint8 { return &b.Torso }},
	{"BodyPart_Pelvis", func(b *BodyParts) *uint8 { return &b.Pelvis }},
	{"BodyPart_Belt", func(b *BodyParts) *uint8 { return &b.Belt }},
	{"BodyPart_LFoot", func(b *BodyParts) *uint8 { return &b.FootLeft }},
	{"BodyPart_RFoot", func(b *BodyParts) *uint8 { return &b.FootRight }},
	{"BodyPart_LShin", func(b *BodyParts) *uint8 { return &b.ShinLeft }},
	{"BodyPart_RShin", func(b *BodyParts) *uint8 { return &b.ShinRight }},
	{"BodyPart_LThigh", func(b *BodyParts) *uint8 { return &b.ThighLeft }},
	{"BodyPart_RThigh", func(b *BodyParts) *uint8 { return &b.ThighRight }},
	{"BodyPart_LHand", func(b *BodyParts) *uint8 { return &b.FhandLeft }},
	{"BodyPart_RHand", func(b *BodyParts) *uint8 { return &b.FhandRight }},
	{"BodyPart_LFArm", func(b *BodyParts) *uint8 { return &b.ForeLeft }},
	{"BodyPart_RFArm", func(b *BodyParts) *uint8 { return &b.ForeRight }},
	{"BodyPart_LBicep", func(b *BodyParts) *uint8 { return &b.BicepLeft }},
	{"BodyPart_RBicep", func(b *BodyParts) *uint8 { return &b.BicepRight }},
	{"BodyPart_LShoul", func(b *BodyParts) *uint8 { return &b.ShoulLeft }},
	{"BodyPart_RShoul", func(b *BodyParts) *uint8 { return &b.ShoulRight }},
}

// creatureScriptSlots maps UTC script labels to their handler slots.
func creatureScriptSlots(s *ScriptRefs) []struct {
	label string
	slot  *res.Resref
} {
	return []struct {
		label string
		slot  *res.Resref
	}{
		{"ScriptAttacked", &s.OnAttacked},
		{"ScriptDamaged", &s.OnDamaged},
		{"ScriptDeath", &s.OnDeath},
		{"ScriptDialogue", &s.OnDialogue},
		{"ScriptDisturbed", &s.OnDisturbed},
		{"ScriptEndRound", &s.OnEndRound},
		{"ScriptHeartbeat", &s.OnHeartbeat},
		{"ScriptOnBlocked", &s.OnBlocked},
		{"ScriptOnNotice", &s.OnNotice},
		{"ScriptRested", &s.OnRested},
		{"ScriptSpawn", &s.OnSpawn},
		{"ScriptSpellAt", &s.OnSpellCastAt},
		{"ScriptUserDefine", &s.OnUserDefined},
	}
}

// DeserializeCreature fills a creature from a UTC/BIC struct. The load
// runs in stages — identity, leaf fields, nested lists — and reports
// failure as soon as a stage cannot complete; the caller owns discarding
// the partially filled object.
func DeserializeCreature(c *Creature, s gff.Struct, profile SerializationProfile) bool {
	if !s.Valid() {
		return false
	}

	// Identity.
	s.Field("TemplateResRef").GetTo(&c.Resref)
	s.Field("Tag").GetTo(&c.Tag)
	s.Field("FirstName").GetTo(&c.Name)
	if c.Resref.Empty() && c.Tag == "" {
		tracer().Errorf("creature: document carries neither resref nor tag")
		return false
	}

	// Leaf fields.
	s.Field("Gender").GetTo(&c.Gender)
	s.Field("Race").GetTo(&c.Race)
	s.Field("SoundSetFile").GetTo(&c.Soundset)
	s.Field("LawfulChaotic").GetTo(&c.LawfulChaotic)
	s.Field("GoodEvil").GetTo(&c.GoodEvil)
	s.Field("Appearance_Type").GetTo(&c.Appearance.ID)
	s.Field("Phenotype").GetTo(&c.Appearance.Phenotype)
	s.Field("PortraitId").GetTo(&c.Appearance.Portrait)
	for _, bp := range bodyPartLabels {
		s.Field(bp.label).GetTo(bp.slot(&c.Appearance.BodyParts))
	}
	for i, lbl := range abilityLabels {
		var score uint8
		if s.Field(lbl).GetTo(&score) {
			c.Stats.SetAbilityScore(Ability(i), int32(score))
		}
	}
	s.Field("MaxHitPoints").GetTo(&c.HPMax)
	if profile.instance() {
		s.Field("CurrentHitPoints").GetTo(&c.HPCurrent)
	} else {
		c.HPCurrent = c.HPMax
	}
	var natural uint8
	if s.Field("NaturalAC").GetTo(&natural) {
		c.CombatInfo.ACNaturalBonus = int32(natural)
	}
	for _, sc := range creatureScriptSlots(&c.ScriptRefs) {
		s.Field(sc.label).GetTo(sc.slot)
	}

	// Nested lists.
	skills := s.Field("SkillList")
	for i := 0; i < skills.Size(); i++ {
		var rank uint8
		if !skills.Index(i).Field("Rank").GetTo(&rank) {
			tracer().Errorf("creature %s: damaged SkillList entry %d", c.Resref, i)
			return false
		}
		c.Stats.SetSkillRank(Skill(i), int32(rank))
	}
	feats := s.Field("FeatList")
	for i := 0; i < feats.Size(); i++ {
		var feat uint16
		if !feats.Index(i).Field("Feat").GetTo(&feat) {
			tracer().Errorf("creature %s: damaged FeatList entry %d", c.Resref, i)
			return false
		}
		c.Stats.AddFeat(Feat(feat))
	}
	classes := s.Field("ClassList")
	for i := 0; i < classes.Size(); i++ {
		entry := classes.Index(i)
		var id int32
		var level int16
		if !entry.Field("Class").GetTo(&id) || !entry.Field("ClassLevel").GetTo(&level) {
			tracer().Errorf("creature %s: damaged ClassList entry %d", c.Resref, i)
			return false
		}
		c.Levels.Entries = append(c.Levels.Entries, ClassEntry{ID: Class(id), Level: level})
	}
	specials := s.Field("SpecAbilityList")
	for i := 0; i < specials.Size(); i++ {
		entry := specials.Index(i)
		sa := SpecialAbility{}
		entry.Field("Spell").GetTo(&sa.Spell)
		entry.Field("SpellCasterLevel").GetTo(&sa.Level)
		entry.Field("SpellFlags").GetTo(&sa.Flags)
		c.CombatInfo.SpecialAbilities = append(c.CombatInfo.SpecialAbilities, sa)
	}
	equipped := s.Field("Equip_ItemList")
	for i := 0; i < equipped.Size(); i++ {
		entry := equipped.Index(i)
		slot, ok := equipSlotFromBit(entry.ID())
		if !ok {
			tracer().Errorf("creature %s: unknown equip slot id %#x", c.Resref, entry.ID())
			continue
		}
		if c.Equipment == nil {
			c.Equipment = make(Equipment)
		}
		c.Equipment[slot] = resrefField(entry, "EquippedRes")
	}
	if profile.savegame() {
		s.Field("Hasted").GetTo(&c.Hasted)
	}
	return true
}

// SerializeCreature writes a creature under a profile. The produced
// builder is canonical; writing it twice yields identical bytes.
func SerializeCreature(c *Creature, profile SerializationProfile) *gff.Builder {
	magic := "UTC "
	if c.Kind() == KindPlayer {
		magic = "BIC "
	}
	b := gff.NewBuilder(magic)
	root := b.Root()

	root.SetResref("TemplateResRef", c.Resref)
	root.SetString("Tag", c.Tag)
	root.SetLocString("FirstName", c.Name)
	root.SetByte("Gender", c.Gender)
	root.SetByte("Race", c.Race)
	root.SetWord("SoundSetFile", c.Soundset)
	root.SetByte("LawfulChaotic", c.LawfulChaotic)
	root.SetByte("GoodEvil", c.GoodEvil)
	root.SetWord("Appearance_Type", c.Appearance.ID)
	root.SetInt("Phenotype", c.Appearance.Phenotype)
	root.SetWord("PortraitId", c.Appearance.Portrait)
	for _, bp := range bodyPartLabels {
		root.SetByte(bp.label, *bp.slot(&c.Appearance.BodyParts))
	}
	for i, lbl := range abilityLabels {
		root.SetByte(lbl, uint8(c.Stats.GetAbilityScore(Ability(i))))
	}
	root.SetShort("MaxHitPoints", c.HPMax)
	if profile.instance() {
		root.SetShort("CurrentHitPoints", c.HPCurrent)
	}
	root.SetByte("NaturalAC", uint8(c.CombatInfo.ACNaturalBonus))
	for _, sc := range creatureScriptSlots(&c.ScriptRefs) {
		root.SetResref(sc.label, *sc.slot)
	}

	skills := root.AddList("SkillList")
	for i := 0; i < c.Stats.SkillCount(); i++ {
		skills.Add(0).SetByte("Rank", uint8(c.Stats.GetSkillRank(Skill(i))))
	}
	feats := root.AddList("FeatList")
	for _, f := range c.Stats.Feats() {
		feats.Add(1).SetWord("Feat", uint16(f))
	}
	classes := root.AddList("ClassList")
	for _, e := range c.Levels.Entries {
		cl := classes.Add(2)
		cl.SetInt("Class", int32(e.ID))
		cl.SetShort("ClassLevel", e.Level)
	}
	specials := root.AddList("SpecAbilityList")
	for _, sa := range c.CombatInfo.SpecialAbilities {
		e := specials.Add(4)
		e.SetWord("Spell", sa.Spell)
		e.SetByte("SpellCasterLevel", sa.Level)
		e.SetByte("SpellFlags", sa.Flags)
	}
	equips := root.AddList("Equip_ItemList")
	for slot := EquipHead; slot < equipSlotCount; slot++ {
		if ref, ok := c.Equipment[slot]; ok {
			equips.Add(1 << uint32(slot)).SetResref("EquippedRes", ref)
		}
	}
	if profile.savegame() {
		root.SetInt("Hasted", c.Hasted)
	}
	return b
}

func equipSlotFromBit(id uint32) (EquipIndex, bool) {
	for slot := EquipHead; slot < equipSlotCount; slot++ {
		if id == 1<<uint32(slot) {
			return slot, true
		}
	}
	return 0, false
}
