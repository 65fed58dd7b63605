package objects

import (
	"encoding/json"

	"github.com/okarren/aurora/i18n"
	"github.com/okarren/aurora/res"
)

// JSON schema for creatures. Unlike the raw GFF projection this one is
// typed, so it decodes without a document at hand.
type creatureJSON struct {
	Type    string `json:"$type"`
	Version int    `json:"$version"`

	Resref string         `json:"resref"`
	Tag    string         `json:"tag"`
	Name   i18n.LocString `json:"name"`

	Gender        uint8  `json:"gender"`
	Race          uint8  `json:"race"`
	Soundset      uint16 `json:"soundset"`
	LawfulChaotic uint8  `json:"lawful_chaotic"`
	GoodEvil      uint8  `json:"good_evil"`

	Appearance appearanceJSON `json:"appearance"`

	Abilities []int32           `json:"abilities"`
	Skills    []int32           `json:"skills"`
	Feats     []Feat            `json:"feats"`
	Classes   []classJSON       `json:"classes"`
	Specials  []specialJSON     `json:"special_abilities,omitempty"`
	Equipment map[string]string `json:"equipment,omitempty"`

	HPMax     int16  `json:"hp_max"`
	HPCurrent *int16 `json:"hp_current,omitempty"`
	NaturalAC int32  `json:"natural_ac"`

	Scripts map[string]string `json:"scripts"`

	Hasted *int32 `json:"hasted,omitempty"`
}

type appearanceJSON struct {
	ID        uint16           `json:"id"`
	Phenotype int32            `json:"phenotype"`
	Portrait  uint16           `json:"portrait"`
	BodyParts map[string]uint8 `json:"body_parts,omitempty"`
}

type classJSON struct {
	ID    Class `json:"id"`
	Level int16 `json:"level"`
}

type specialJSON struct {
	Spell uint16 `json:"spell"`
	Level uint8  `json:"level"`
	Flags uint8  `json:"flags"`
}

var equipSlotNames = map[EquipIndex]string{
	EquipHead: "head", EquipChest: "chest", EquipBoots: "boots",
	EquipArms: "arms", EquipRightHand: "right_hand", EquipLeftHand: "left_hand",
	EquipCloak: "cloak", EquipLeftRing: "left_ring", EquipRightRing: "right_ring",
	EquipNeck: "neck", EquipBelt: "belt", EquipArrows: "arrows",
	EquipBullets: "bullets", EquipBolts: "bolts",
}

var equipSlotByName = func() map[string]EquipIndex {
	m := make(map[string]EquipIndex, len(equipSlotNames))
	for k, v := range equipSlotNames {
		m[v] = k
	}
	return m
}()

// CreatureToJSON serializes a creature under a profile.
func CreatureToJSON(c *Creature, profile SerializationProfile) ([]byte, error) {
	doc := creatureJSON{
		Type:          "UTC",
		Version:       1,
		Resref:        c.Resref.String(),
		Tag:           c.Tag,
		Name:          c.Name,
		Gender:        c.Gender,
		Race:          c.Race,
		Soundset:      c.Soundset,
		LawfulChaotic: c.LawfulChaotic,
		GoodEvil:      c.GoodEvil,
		HPMax:         c.HPMax,
		NaturalAC:     c.CombatInfo.ACNaturalBonus,
		Scripts:       map[string]string{},
	}
	if c.Kind() == KindPlayer {
		doc.Type = "BIC"
	}
	doc.Appearance = appearanceJSON{
		ID:        c.Appearance.ID,
		Phenotype: c.Appearance.Phenotype,
		Portrait:  c.Appearance.Portrait,
		BodyParts: map[string]uint8{},
	}
	for _, bp := range bodyPartLabels {
		if v := *bp.slot(&c.Appearance.BodyParts); v != 0 {
			doc.Appearance.BodyParts[bp.label] = v
		}
	}
	for i := 0; i < abilityCount; i++ {
		doc.Abilities = append(doc.Abilities, c.Stats.GetAbilityScore(Ability(i)))
	}
	for i := 0; i < c.Stats.SkillCount(); i++ {
		doc.Skills = append(doc.Skills, c.Stats.GetSkillRank(Skill(i)))
	}
	doc.Feats = append(doc.Feats, c.Stats.Feats()...)
	for _, e := range c.Levels.Entries {
		doc.Classes = append(doc.Classes, classJSON{ID: e.ID, Level: e.Level})
	}
	for _, sa := range c.CombatInfo.SpecialAbilities {
		doc.Specials = append(doc.Specials, specialJSON{Spell: sa.Spell, Level: sa.Level, Flags: sa.Flags})
	}
	if len(c.Equipment) > 0 {
		doc.Equipment = map[string]string{}
		for slot, ref := range c.Equipment {
			doc.Equipment[equipSlotNames[slot]] = ref.String()
		}
	}
	for _, sc := range creatureScriptSlots(&c.ScriptRefs) {
		if !sc.slot.Empty() {
			doc.Scripts[sc.label] = sc.slot.String()
		}
	}
	if profile.instance() {
		hp := c.HPCurrent
		doc.HPCurrent = &hp
	}
	if profile.savegame() {
		hasted := c.Hasted
		doc.Hasted = &hasted
	}
	return json.MarshalIndent(doc, "", "  ")
}

// CreatureFromJSON fills a creature from its JSON serialization.
func CreatureFromJSON(c *Creature, data []byte, profile SerializationProfile) bool {
	var doc creatureJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		tracer().Errorf("creature: cannot parse json: %v", err)
		return false
	}
	if doc.Type != "UTC" && doc.Type != "BIC" {
		tracer().Errorf("creature: json document of type %q", doc.Type)
		return false
	}
	c.Resref = res.MakeResref(doc.Resref)
	c.Tag = doc.Tag
	c.Name = doc.Name
	c.Gender = doc.Gender
	c.Race = doc.Race
	c.Soundset = doc.Soundset
	c.LawfulChaotic = doc.LawfulChaotic
	c.GoodEvil = doc.GoodEvil
	c.HPMax = doc.HPMax
	c.CombatInfo.ACNaturalBonus = doc.NaturalAC
	c.Appearance.ID = doc.Appearance.ID
	c.Appearance.Phenotype = doc.Appearance.Phenotype
	c.Appearance.Portrait = doc.Appearance.Portrait
	for _, bp := range bodyPartLabels {
		if v, ok := doc.Appearance.BodyParts[bp.label]; ok {
			*bp.slot(&c.Appearance.BodyParts) = v
		}
	}
	for i, score := range doc.Abilities {
		c.Stats.SetAbilityScore(Ability(i), score)
	}
	for i, rank := range doc.Skills {
		c.Stats.SetSkillRank(Skill(i), rank)
	}
	for _, f := range doc.Feats {
		c.Stats.AddFeat(f)
	}
	for _, e := range doc.Classes {
		c.Levels.Entries = append(c.Levels.Entries, ClassEntry{ID: e.ID, Level: e.Level})
	}
	for _, sa := range doc.Specials {
		c.CombatInfo.SpecialAbilities = append(c.CombatInfo.SpecialAbilities,
			SpecialAbility{Spell: sa.Spell, Level: sa.Level, Flags: sa.Flags})
	}
	for name, ref := range doc.Equipment {
		slot, ok := equipSlotByName[name]
		if !ok {
			tracer().Errorf("creature %s: unknown equip slot %q", c.Resref, name)
			continue
		}
		if c.Equipment == nil {
			c.Equipment = make(Equipment)
		}
		c.Equipment[slot] = res.MakeResref(ref)
	}
	for _, sc := range creatureScriptSlots(&c.ScriptRefs) {
		if v, ok := doc.Scripts[sc.label]; ok {
			*sc.slot = res.MakeResref(v)
		}
	}
	if profile.instance() && doc.HPCurrent != nil {
		c.HPCurrent = *doc.HPCurrent
	} else {
		c.HPCurrent = c.HPMax
	}
	if profile.savegame() && doc.Hasted != nil {
		c.Hasted = *doc.Hasted
	}
	return true
}
