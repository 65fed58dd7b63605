package rules

import (
	"github.com/okarren/aurora/objects"
)

// SelectorKind names the property a selector reads.
type SelectorKind uint8

// Selector kinds.
const (
	SelectInvalid SelectorKind = iota
	SelectAbility
	SelectSkill
	SelectClassLevel
	SelectFeat
	SelectLevel
	SelectAlignment
	SelectRace
	SelectLocalVarInt
)

// AlignmentAxis picks one of the two alignment axes.
type AlignmentAxis uint8

// Alignment axes.
const (
	AxisLawChaos AlignmentAxis = iota
	AxisGoodEvil
)

// Selector reads one typed property off an object.
type Selector struct {
	Kind    SelectorKind
	Subtype int32  // ability/skill/class/feat id, or alignment axis
	Name    string // local variable name
}

// SelAbility selects a base ability score.
func SelAbility(id objects.Ability) Selector {
	return Selector{Kind: SelectAbility, Subtype: int32(id)}
}

// SelSkill selects a base skill rank.
func SelSkill(id objects.Skill) Selector {
	return Selector{Kind: SelectSkill, Subtype: int32(id)}
}

// SelClassLevel selects the level taken in one class.
func SelClassLevel(id objects.Class) Selector {
	return Selector{Kind: SelectClassLevel, Subtype: int32(id)}
}

// SelFeat selects feat membership (0 or 1).
func SelFeat(id objects.Feat) Selector {
	return Selector{Kind: SelectFeat, Subtype: int32(id)}
}

// SelLevel selects the summed character level.
func SelLevel() Selector {
	return Selector{Kind: SelectLevel}
}

// SelAlignment selects the raw 0..100 position on an alignment axis.
func SelAlignment(axis AlignmentAxis) Selector {
	return Selector{Kind: SelectAlignment, Subtype: int32(axis)}
}

// SelRace selects the race id.
func SelRace() Selector {
	return Selector{Kind: SelectRace}
}

// SelLocalVarInt selects an object-local integer variable.
func SelLocalVarInt(name string) Selector {
	return Selector{Kind: SelectLocalVarInt, Name: name}
}

// Select evaluates a selector against an object. The second return is
// false when the object cannot answer (wrong kind, unset selector).
func Select(sel Selector, obj objects.Object) (int32, bool) {
	if obj == nil {
		return 0, false
	}
	cre := objects.AsCreature(obj)
	switch sel.Kind {
	case SelectAbility:
		if cre == nil {
			return 0, false
		}
		return cre.Stats.GetAbilityScore(objects.Ability(sel.Subtype)), true
	case SelectSkill:
		if cre == nil {
			return 0, false
		}
		return cre.Stats.GetSkillRank(objects.Skill(sel.Subtype)), true
	case SelectClassLevel:
		if cre == nil {
			return 0, false
		}
		return cre.Levels.LevelOf(objects.Class(sel.Subtype)), true
	case SelectFeat:
		if cre == nil {
			return 0, false
		}
		if cre.Stats.HasFeat(objects.Feat(sel.Subtype)) {
			return 1, true
		}
		return 0, true
	case SelectLevel:
		if cre == nil {
			return 0, false
		}
		return cre.Levels.Level(), true
	case SelectAlignment:
		if cre == nil {
			return 0, false
		}
		if AlignmentAxis(sel.Subtype) == AxisLawChaos {
			return int32(cre.LawfulChaotic), true
		}
		return int32(cre.GoodEvil), true
	case SelectRace:
		if cre == nil {
			return 0, false
		}
		return int32(cre.Race), true
	case SelectLocalVarInt:
		return obj.CommonData().Locals.GetInt(sel.Name), true
	}
	return 0, false
}
