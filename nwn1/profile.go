package nwn1

import (
	"github.com/okarren/aurora/kernel"
	"github.com/okarren/aurora/objects"
	"github.com/okarren/aurora/rules"
)

// Profile implements kernel.Profile for NWN1/EE.
type Profile struct{}

// New returns the profile.
func New() *Profile {
	return &Profile{}
}

// Name returns the profile identifier.
func (p *Profile) Name() string {
	return "nwn1"
}

// Load registers effect callbacks and baseline modifiers.
func (p *Profile) Load(s *kernel.Services) error {
	p.registerEffects(s.Effects)
	p.registerModifiers(s.Rules)
	tracer().Infof("nwn1: profile loaded")
	return nil
}

func (p *Profile) registerEffects(es *kernel.EffectSystem) {
	es.Register(EffectHaste, effectHasteApply, effectHasteRemove)
	es.Register(EffectSlow, effectSlowApply, effectSlowRemove)
}

func (p *Profile) registerModifiers(r *rules.Rules) {
	// Dexterity armor class: (dex - 10) / 2, the standard ability bonus.
	r.AddModifier(rules.Modifier{
		Type:    rules.ModArmorClass,
		Subtype: 0, // dodge AC
		Value: rules.Callback(func(obj objects.Object) int32 {
			cre := objects.AsCreature(obj)
			if cre == nil {
				return 0
			}
			return abilityBonus(cre.Stats.GetAbilityScore(AbilityDexterity))
		}),
		Tag:    "dex-ac",
		Source: rules.SourceAbility,
	})

	// Haste grants +4 dodge AC while any haste effect is applied.
	r.AddModifier(rules.Modifier{
		Type:    rules.ModArmorClass,
		Subtype: 0,
		Value: rules.Callback(func(obj objects.Object) int32 {
			if cre := objects.AsCreature(obj); cre != nil && cre.Hasted > 0 {
				return 4
			}
			return 0
		}),
		Tag:    "haste-ac",
		Source: rules.SourceEffect,
	})

	// Toughness: one hit point per level.
	r.AddModifier(rules.Modifier{
		Type:        rules.ModHitpoints,
		Value:       rules.PerLevel{Rate: 1},
		Tag:         "toughness-hp",
		Source:      rules.SourceFeat,
		Requirement: rules.MakeRequirement(rules.QualFeat(FeatToughness)),
	})

	// Strength melee attack bonus.
	r.AddModifier(rules.Modifier{
		Type: rules.ModAttackBonus,
		Value: rules.Callback(func(obj objects.Object) int32 {
			cre := objects.AsCreature(obj)
			if cre == nil {
				return 0
			}
			return abilityBonus(cre.Stats.GetAbilityScore(AbilityStrength))
		}),
		Tag:    "str-ab",
		Source: rules.SourceAbility,
	})
}

// abilityBonus is the standard (score - 10) / 2, rounded toward minus
// infinity the way the tables do.
func abilityBonus(score int32) int32 {
	if score >= 10 {
		return (score - 10) / 2
	}
	return -((11 - score) / 2)
}
