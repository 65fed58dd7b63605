package objects

import (
	"sort"

	"github.com/okarren/aurora/res"
)

// Ability indexes the six ability scores. The game profile names them.
type Ability int32

// AbilityInvalid is the unset ability index.
const AbilityInvalid Ability = -1

const abilityCount = 6

// Skill indexes a skill row in skills.2da.
type Skill int32

// SkillInvalid is the unset skill index.
const SkillInvalid Skill = -1

// Class indexes a class row in classes.2da.
type Class int32

// ClassInvalid is the unset class index.
const ClassInvalid Class = -1

// Feat indexes a feat row in feat.2da.
type Feat int32

// FeatInvalid is the unset feat index.
const FeatInvalid Feat = -1

// CreatureStats carries base ability scores, skill ranks, and the feat
// set. Scores here are base values; derived values come out of the rules
// engine.
type CreatureStats struct {
	abilities [abilityCount]uint8
	skills    []uint8
	feats     []Feat // kept sorted
}

// GetAbilityScore reads a base ability score; invalid abilities read 0.
func (s *CreatureStats) GetAbilityScore(a Ability) int32 {
	if a < 0 || int(a) >= abilityCount {
		return 0
	}
	return int32(s.abilities[a])
}

// SetAbilityScore writes a base ability score.
func (s *CreatureStats) SetAbilityScore(a Ability, score int32) {
	if a < 0 || int(a) >= abilityCount {
		return
	}
	s.abilities[a] = uint8(score)
}

// GetSkillRank reads a base skill rank; unknown skills read 0.
func (s *CreatureStats) GetSkillRank(sk Skill) int32 {
	if sk < 0 || int(sk) >= len(s.skills) {
		return 0
	}
	return int32(s.skills[sk])
}

// SetSkillRank writes a base skill rank, growing the rank table as needed.
func (s *CreatureStats) SetSkillRank(sk Skill, rank int32) {
	if sk < 0 {
		return
	}
	for int(sk) >= len(s.skills) {
		s.skills = append(s.skills, 0)
	}
	s.skills[sk] = uint8(rank)
}

// SkillCount returns the size of the rank table.
func (s *CreatureStats) SkillCount() int {
	return len(s.skills)
}

// AddFeat records a feat; duplicates are ignored.
func (s *CreatureStats) AddFeat(f Feat) {
	i := sort.Search(len(s.feats), func(i int) bool { return s.feats[i] >= f })
	if i < len(s.feats) && s.feats[i] == f {
		return
	}
	s.feats = append(s.feats, 0)
	copy(s.feats[i+1:], s.feats[i:])
	s.feats[i] = f
}

// HasFeat checks feat membership.
func (s *CreatureStats) HasFeat(f Feat) bool {
	i := sort.Search(len(s.feats), func(i int) bool { return s.feats[i] >= f })
	return i < len(s.feats) && s.feats[i] == f
}

// Feats returns the sorted feat set.
func (s *CreatureStats) Feats() []Feat {
	return s.feats
}

// ClassEntry is one class taken by a creature.
type ClassEntry struct {
	ID    Class
	Level int16
}

// LevelStats is the class/level record of a creature.
type LevelStats struct {
	Entries []ClassEntry
}

// Level returns the summed character level.
func (l *LevelStats) Level() int32 {
	var n int32
	for _, e := range l.Entries {
		n += int32(e.Level)
	}
	return n
}

// LevelOf returns the level taken in one class, 0 when untrained.
func (l *LevelStats) LevelOf(id Class) int32 {
	for _, e := range l.Entries {
		if e.ID == id {
			return int32(e.Level)
		}
	}
	return 0
}

// BodyParts is the per-limb model part selection of a creature's
// appearance.
type BodyParts struct {
	Head       uint8
	Neck       uint8
	Torso      uint8
	Pelvis     uint8
	Belt       uint8
	FootLeft   uint8
	FootRight  uint8
	ShinLeft   uint8
	ShinRight  uint8
	ThighLeft  uint8
	ThighRight uint8
	FhandLeft  uint8
	FhandRight uint8
	ForeLeft   uint8
	ForeRight  uint8
	BicepLeft  uint8
	BicepRight uint8
	ShoulLeft  uint8
	ShoulRight uint8
}

// Appearance selects a creature's model and its per-part variation.
type Appearance struct {
	ID        uint16
	Phenotype int32
	Portrait  uint16
	BodyParts BodyParts
}

// SpecialAbility is one innate spell-like ability.
type SpecialAbility struct {
	Spell uint16
	Level uint8
	Flags uint8
}

// CombatInfo carries combat-derived state the serializers persist.
type CombatInfo struct {
	ACNaturalBonus   int32
	SpecialAbilities []SpecialAbility
}

// EquipIndex names an equipment slot. The wire encodes slot i as the bit
// 1 << i in the Equip_ItemList struct id.
type EquipIndex int

// Equipment slots.
const (
	EquipHead EquipIndex = iota
	EquipChest
	EquipBoots
	EquipArms
	EquipRightHand
	EquipLeftHand
	EquipCloak
	EquipLeftRing
	EquipRightRing
	EquipNeck
	EquipBelt
	EquipArrows
	EquipBullets
	EquipBolts
	equipSlotCount
)

// Equipment maps slots to equipped item blueprints.
type Equipment map[EquipIndex]res.Resref

// Creature is the fully worked object kind: complete blueprint, instance
// and savegame (de)serialization, and the target of most rules queries.
type Creature struct {
	Common
	ScriptRefs ScriptRefs

	Stats      CreatureStats
	Levels     LevelStats
	Appearance Appearance
	CombatInfo CombatInfo
	Equipment  Equipment

	Gender        uint8
	Race          uint8
	Soundset      uint16
	HPCurrent     int16
	HPMax         int16
	LawfulChaotic uint8
	GoodEvil      uint8

	// Hasted counts applied haste effects; the effect callbacks maintain
	// it.
	Hasted int32

	effects EffectList
}

// Kind returns KindCreature.
func (c *Creature) Kind() Kind { return KindCreature }

// CommonData returns the shared field record.
func (c *Creature) CommonData() *Common { return &c.Common }

// Scripts returns the event handler record.
func (c *Creature) Scripts() *ScriptRefs { return &c.ScriptRefs }

// Effects returns the applied-effect list.
func (c *Creature) Effects() *EffectList { return &c.effects }

// Player is a creature owned by a player identity. The owning cdkey gates
// loads from the server vault.
type Player struct {
	Creature
	CDKey string
}

// Kind returns KindPlayer.
func (p *Player) Kind() Kind { return KindPlayer }
