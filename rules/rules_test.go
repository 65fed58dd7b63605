package rules_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"

	"github.com/okarren/aurora/internal/resbin"
	"github.com/okarren/aurora/objects"
	"github.com/okarren/aurora/rules"
	"github.com/okarren/aurora/twoda"
)

// fixtureTables serves the resbin rule sheets from memory.
type fixtureTables map[string]string

func (f fixtureTables) Get(name string) *twoda.TwoDA {
	text, ok := f[name]
	if !ok {
		return nil
	}
	sheet := twoda.Parse(text)
	if !sheet.Valid() {
		return nil
	}
	return sheet
}

func standardTables() fixtureTables {
	return fixtureTables{
		"feat":      resbin.FeatTwoDA,
		"classes":   resbin.ClassesTwoDA,
		"cls_atk_1": resbin.AttackTwoDA,
		"cls_atk_2": resbin.AttackTwoDA2,
		"skills":    resbin.SkillsTwoDA,
	}
}

// agent builds the requirement-evaluation target without touching disk.
func agent(t *testing.T) *objects.Creature {
	t.Helper()
	cre := &objects.Creature{}
	cre.Tag = "PL_AGENT_001"
	cre.Stats.SetAbilityScore(0, 22) // str
	cre.Stats.SetAbilityScore(1, 13) // dex
	cre.Stats.SetAbilityScore(2, 16) // con
	cre.Stats.SetSkillRank(3, 40)    // discipline
	cre.Levels.Entries = []objects.ClassEntry{{ID: 4, Level: 10}}
	cre.LawfulChaotic = 85
	cre.GoodEvil = 50
	return cre
}

func TestRequirementConjunction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.rules")
	defer teardown()
	obj := agent(t)

	req := rules.MakeRequirement(
		rules.QualAbility(2, 15, 20), // con in [15, 20]
		rules.QualSkill(3, 35),       // discipline >= 35
	)
	ok, failed := rules.MeetsRequirement(req, obj)
	require.True(t, ok)
	require.Equal(t, -1, failed)

	// Adding an upper-bounded strength test breaks the conjunction...
	req.Qualifiers = append(req.Qualifiers, rules.QualAbility(0, 0, 20))
	ok, failed = rules.MeetsRequirement(req, obj)
	require.False(t, ok)
	require.Equal(t, 2, failed, "the failing qualifier is reported")

	// ...but the same set holds as a disjunction.
	dis := rules.MakeDisjunction(req.Qualifiers...)
	ok, _ = rules.MeetsRequirement(dis, obj)
	require.True(t, ok)
}

func TestQualifierSemantics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.rules")
	defer teardown()
	obj := agent(t)

	require.True(t, rules.Match(rules.QualLevel(5, 15), obj))
	require.False(t, rules.Match(rules.QualLevel(11, 0), obj))
	require.True(t, rules.Match(rules.QualClassLevel(4, 1, 0), obj))
	require.False(t, rules.Match(rules.QualClassLevel(5, 1, 0), obj))
	require.True(t, rules.Match(rules.QualAlignment(rules.AxisLawChaos, rules.AlignLawful), obj))
	require.False(t, rules.Match(rules.QualAlignment(rules.AxisLawChaos, rules.AlignChaotic), obj))
	require.True(t, rules.Match(rules.QualAlignment(rules.AxisGoodEvil, rules.AlignNeutral), obj))

	obj.Stats.AddFeat(40)
	require.True(t, rules.Match(rules.QualFeat(40), obj))
	require.False(t, rules.Match(rules.QualFeat(41), obj))

	obj.Locals.SetInt("QUEST_STAGE", 3)
	q := rules.Qualifier{Selector: rules.SelLocalVarInt("QUEST_STAGE"), Min: 2, Max: 4}
	require.True(t, rules.Match(q, obj))
}

func TestModifierStacking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.rules")
	defer teardown()
	r := rules.NewRules(standardTables())
	obj := agent(t)

	// Identical (subtype, source) pairs keep the maximum...
	r.AddModifier(rules.Modifier{
		Type: rules.ModArmorClass, Value: rules.Constant(2),
		Tag: "shield-a", Source: rules.SourceItem,
	})
	r.AddModifier(rules.Modifier{
		Type: rules.ModArmorClass, Value: rules.Constant(5),
		Tag: "shield-b", Source: rules.SourceItem,
	})
	require.Equal(t, int32(5), r.CalcModifier(obj, rules.ModArmorClass, 0))

	// ...while different sources add.
	r.AddModifier(rules.Modifier{
		Type: rules.ModArmorClass, Value: rules.Constant(3),
		Tag: "spell-ac", Source: rules.SourceSpell,
	})
	require.Equal(t, int32(8), r.CalcModifier(obj, rules.ModArmorClass, 0))

	// Requirements gate contributions.
	r.AddModifier(rules.Modifier{
		Type: rules.ModArmorClass, Value: rules.Constant(100),
		Tag: "never", Source: rules.SourceFeat,
		Requirement: rules.MakeRequirement(rules.QualFeat(999)),
	})
	require.Equal(t, int32(8), r.CalcModifier(obj, rules.ModArmorClass, 0))

	require.Equal(t, 4, r.ModifierCount())
	require.Equal(t, 1, r.RemoveModifier("never"))
	require.Equal(t, 3, r.ModifierCount())
}

func TestAbilityClamp(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.rules")
	defer teardown()
	r := rules.NewRules(standardTables())
	obj := agent(t)

	r.AddModifier(rules.Modifier{
		Type: rules.ModAbility, Subtype: 0, Value: rules.Constant(100),
		Tag: "boost", Source: rules.SourceSpell,
	})
	require.Equal(t, int32(rules.AbilityScoreMax), r.AbilityScore(obj, 0))

	r.AddModifier(rules.Modifier{
		Type: rules.ModAbility, Subtype: 1, Value: rules.Constant(-100),
		Tag: "drain", Source: rules.SourceSpell,
	})
	require.Equal(t, int32(rules.AbilityScoreMin), r.AbilityScore(obj, 1))
}

func TestPerLevelValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.rules")
	defer teardown()
	r := rules.NewRules(standardTables())
	obj := agent(t) // level 10

	r.AddModifier(rules.Modifier{
		Type: rules.ModHitpoints, Value: rules.PerLevel{Rate: 1},
		Tag: "toughness", Source: rules.SourceFeat,
	})
	require.Equal(t, int32(10), r.CalcModifier(obj, rules.ModHitpoints, 0))

	r.AddModifier(rules.Modifier{
		Type: rules.ModSkill, Subtype: 3, Value: rules.PerLevel{Rate: 0.5, MaxLevel: 6},
		Tag: "capped", Source: rules.SourceClass,
	})
	require.Equal(t, int32(3), r.CalcModifier(obj, rules.ModSkill, 3))
	require.Equal(t, int32(43), r.SkillRank(obj, 3))
}

func TestClassAttackProgression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.rules")
	defer teardown()
	r := rules.NewRules(standardTables())

	classes := r.Classes()
	require.Equal(t, 5, classes.Len())
	require.Equal(t, int32(10), classes.AttackBonus(4, 10), "fighter progression is full")
	require.Equal(t, int32(7), classes.AttackBonus(2, 10), "cleric progression is three-quarter")
	require.Equal(t, int32(0), classes.AttackBonus(99, 10))
	require.Equal(t, int32(10), classes.AttackBonus(4, 50), "levels past the table saturate")

	obj := agent(t) // fighter 10
	require.Equal(t, int32(10), r.BaseAttackBonus(obj))

	r.AddModifier(rules.Modifier{
		Type: rules.ModAttackBonus, Value: rules.Constant(2),
		Tag: "enchant", Source: rules.SourceItem,
	})
	require.Equal(t, int32(12), r.AttackBonus(obj))
}

func TestFeatPrerequisites(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.rules")
	defer teardown()
	r := rules.NewRules(standardTables())
	obj := agent(t) // dex 13

	// Feat 5 needs DEX 15 and feat 1.
	require.False(t, r.FeatAvailable(obj, 5))
	obj.Stats.SetAbilityScore(1, 16)
	require.False(t, r.FeatAvailable(obj, 5), "prerequisite feat still missing")
	obj.Stats.AddFeat(1)
	require.True(t, r.FeatAvailable(obj, 5))

	// Feat 0 has no prerequisites.
	require.True(t, r.FeatAvailable(obj, 0))
	require.False(t, r.FeatAvailable(obj, 999), "unknown feats are unavailable")
}

func TestTablesLazyAndClearable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.rules")
	defer teardown()
	tables := standardTables()
	r := rules.NewRules(tables)
	first := r.Classes()
	require.Same(t, first, r.Classes(), "second access is a cache hit")
	r.ClearTables()
	require.NotSame(t, first, r.Classes(), "clear forces a re-parse")
}

func TestSkillTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.rules")
	defer teardown()
	r := rules.NewRules(standardTables())
	skills := r.Skills()
	require.Equal(t, 4, skills.Len())
	disc := skills.Get(3)
	require.NotNil(t, disc)
	require.Equal(t, "Discipline", disc.Label)
	require.Equal(t, objects.Ability(0), disc.KeyAbility)
	require.True(t, disc.Untrained)
	require.Nil(t, skills.Get(99))
}
