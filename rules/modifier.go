package rules

import (
	"github.com/okarren/aurora/objects"
)

// ModifierType names the derived attribute a modifier feeds.
type ModifierType uint8

// Modifier types.
const (
	ModInvalid ModifierType = iota
	ModAbility
	ModArmorClass
	ModAttackBonus
	ModHitpoints
	ModSkill
	ModSave
)

// ModifierSource states where a contribution comes from; stacking and
// ordering key off it.
type ModifierSource uint8

// Modifier sources, in application priority order.
const (
	SourceUnknown ModifierSource = iota
	SourceAbility
	SourceSkill
	SourceFeat
	SourceRace
	SourceClass
	SourceItem
	SourceSpell
	SourceEffect
)

func (s ModifierSource) String() string {
	switch s {
	case SourceAbility:
		return "ability"
	case SourceSkill:
		return "skill"
	case SourceFeat:
		return "feat"
	case SourceRace:
		return "race"
	case SourceClass:
		return "class"
	case SourceItem:
		return "item"
	case SourceSpell:
		return "spell"
	case SourceEffect:
		return "effect"
	}
	return "unknown"
}

// ModifierValue is a modifier's contribution: constant, per-level formula,
// or a callback over the object.
type ModifierValue interface {
	eval(obj objects.Object) int32
}

// Constant contributes a fixed value.
type Constant int32

func (c Constant) eval(objects.Object) int32 {
	return int32(c)
}

// PerLevel contributes Rate per character level, bounded by MaxLevel when
// nonzero.
type PerLevel struct {
	Rate     float32
	MaxLevel int32
}

func (p PerLevel) eval(obj objects.Object) int32 {
	cre := objects.AsCreature(obj)
	if cre == nil {
		return 0
	}
	level := cre.Levels.Level()
	if p.MaxLevel > 0 && level > p.MaxLevel {
		level = p.MaxLevel
	}
	return int32(p.Rate * float32(level))
}

// Callback computes the contribution from the object.
type Callback func(obj objects.Object) int32

func (f Callback) eval(obj objects.Object) int32 {
	if f == nil {
		return 0
	}
	return f(obj)
}

// Modifier is one registered contribution to a derived attribute.
type Modifier struct {
	Type        ModifierType
	Subtype     int32 // e.g. which ability, which armor-class kind
	Value       ModifierValue
	Tag         string
	Source      ModifierSource
	Requirement Requirement
	Versus      objects.Versus
}

// contribution is an evaluated modifier during accumulation.
type contribution struct {
	source  ModifierSource
	subtype int32
	value   int32
}

// accumulate folds evaluated contributions under the stacking rules:
// identical (subtype, source) pairs keep the maximum; distinct pairs add.
func accumulate(contribs []contribution) int32 {
	type key struct {
		source  ModifierSource
		subtype int32
	}
	best := make(map[key]int32, len(contribs))
	order := make([]key, 0, len(contribs))
	for _, c := range contribs {
		k := key{source: c.source, subtype: c.subtype}
		if have, ok := best[k]; ok {
			if c.value > have {
				best[k] = c.value
			}
			continue
		}
		best[k] = c.value
		order = append(order, k)
	}
	var total int32
	for _, k := range order {
		total += best[k]
	}
	return total
}

// Attribute clamps, applied after accumulation.
const (
	AbilityScoreMin = 3
	AbilityScoreMax = 50
)

// clampFor bounds a final value per attribute kind.
func clampFor(t ModifierType, v int32) int32 {
	if t == ModAbility {
		if v < AbilityScoreMin {
			return AbilityScoreMin
		}
		if v > AbilityScoreMax {
			return AbilityScoreMax
		}
	}
	return v
}
