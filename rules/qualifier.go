package rules

import (
	"github.com/okarren/aurora/objects"
)

// AlignmentFlags restrict an alignment qualifier.
type AlignmentFlags uint8

// Alignment flags; axis position 0..100 buckets into three bands.
const (
	AlignLawful  AlignmentFlags = 0x01
	AlignChaotic AlignmentFlags = 0x02
	AlignGood    AlignmentFlags = 0x04
	AlignEvil    AlignmentFlags = 0x08
	AlignNeutral AlignmentFlags = 0x10
)

// Qualifier tests a selector against a range or set. Max == 0 means
// unbounded above, matching the 2DA convention of 0 as "no limit".
type Qualifier struct {
	Selector Selector
	Min      int32
	Max      int32
	Flags    AlignmentFlags
}

// QualAbility requires an ability score in [min, max].
func QualAbility(id objects.Ability, min, max int32) Qualifier {
	return Qualifier{Selector: SelAbility(id), Min: min, Max: max}
}

// QualSkill requires a skill rank of at least min.
func QualSkill(id objects.Skill, min int32) Qualifier {
	return Qualifier{Selector: SelSkill(id), Min: min}
}

// QualClassLevel requires a class level in [min, max].
func QualClassLevel(id objects.Class, min, max int32) Qualifier {
	return Qualifier{Selector: SelClassLevel(id), Min: min, Max: max}
}

// QualLevel requires a character level in [min, max].
func QualLevel(min, max int32) Qualifier {
	return Qualifier{Selector: SelLevel(), Min: min, Max: max}
}

// QualFeat requires feat membership.
func QualFeat(id objects.Feat) Qualifier {
	return Qualifier{Selector: SelFeat(id), Min: 1}
}

// QualRace requires an exact race.
func QualRace(id int32) Qualifier {
	return Qualifier{Selector: SelRace(), Min: id, Max: id}
}

// QualAlignment requires the axis position to fall into one of the
// flagged bands.
func QualAlignment(axis AlignmentAxis, flags AlignmentFlags) Qualifier {
	return Qualifier{Selector: SelAlignment(axis), Flags: flags}
}

// Match evaluates the qualifier against an object.
func Match(q Qualifier, obj objects.Object) bool {
	value, ok := Select(q.Selector, obj)
	if !ok {
		return false
	}
	if q.Selector.Kind == SelectAlignment {
		return alignmentMatch(AlignmentAxis(q.Selector.Subtype), q.Flags, value)
	}
	if value < q.Min {
		return false
	}
	if q.Max != 0 && value > q.Max {
		return false
	}
	return true
}

func alignmentMatch(axis AlignmentAxis, flags AlignmentFlags, value int32) bool {
	var band AlignmentFlags
	switch {
	case value >= 70:
		if axis == AxisLawChaos {
			band = AlignLawful
		} else {
			band = AlignGood
		}
	case value <= 30:
		if axis == AxisLawChaos {
			band = AlignChaotic
		} else {
			band = AlignEvil
		}
	default:
		band = AlignNeutral
	}
	return flags&band != 0
}

// Requirement is a qualifier list, conjunctive unless marked otherwise.
type Requirement struct {
	Qualifiers  []Qualifier
	Disjunction bool
}

// MakeRequirement builds a conjunctive requirement.
func MakeRequirement(quals ...Qualifier) Requirement {
	return Requirement{Qualifiers: quals}
}

// MakeDisjunction builds a requirement met by any one qualifier.
func MakeDisjunction(quals ...Qualifier) Requirement {
	return Requirement{Qualifiers: quals, Disjunction: true}
}

// MeetsRequirement evaluates a requirement. On conjunction failure the
// index of the failing qualifier comes back; -1 means the requirement
// held (or every qualifier failed a disjunction, where no single
// qualifier is to blame).
func MeetsRequirement(req Requirement, obj objects.Object) (bool, int) {
	if req.Disjunction {
		if len(req.Qualifiers) == 0 {
			return true, -1
		}
		for _, q := range req.Qualifiers {
			if Match(q, obj) {
				return true, -1
			}
		}
		return false, -1
	}
	for i, q := range req.Qualifiers {
		if !Match(q, obj) {
			return false, i
		}
	}
	return true, -1
}
