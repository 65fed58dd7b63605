package kernel_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"

	"github.com/okarren/aurora/nwn1"
	"github.com/okarren/aurora/objects"
	"github.com/okarren/aurora/rules"
)

func TestEffectPoolChurn(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.kernel")
	defer teardown()
	s := startServices(t)

	effects := make([]*objects.Effect, 0, 100)
	for i := 0; i < 100; i++ {
		effects = append(effects, s.Effects.Create(nwn1.EffectHaste))
	}
	for _, e := range effects {
		s.Effects.Destroy(e)
	}
	stats := s.Effects.Stats()
	require.GreaterOrEqual(t, stats.FreeListSize, 100)
	require.LessOrEqual(t, s.Effects.MaxGeneration(), uint32(200),
		"slot churn must not burn generations")
}

func TestApplyRemoveHaste(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.kernel")
	defer teardown()
	s := startServices(t)
	loadDemoModule(t, s)

	obj := s.Objects.LoadCreature("nw_chicken")
	require.NotNil(t, obj)
	eff := s.Effects.Create(nwn1.EffectHaste)

	require.True(t, s.Effects.Apply(obj, eff))
	require.Equal(t, int32(1), obj.Hasted)
	require.Equal(t, 1, obj.Effects().Size())

	require.True(t, s.Effects.Remove(obj, eff))
	require.Equal(t, int32(0), obj.Hasted)
	require.Equal(t, 0, obj.Effects().Size())
	s.Effects.Destroy(eff)
}

func TestApplyUnregisteredType(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.kernel")
	defer teardown()
	s := startServices(t)
	loadDemoModule(t, s)

	obj := s.Objects.LoadCreature("nw_chicken")
	require.NotNil(t, obj)
	eff := s.Effects.Create(objects.EffectType(9999))
	require.False(t, s.Effects.Apply(obj, eff), "unregistered types apply nothing")
	require.Equal(t, 0, obj.Effects().Size())
	require.False(t, s.Effects.Remove(obj, eff))
}

func TestEffectDoubleApply(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.kernel")
	defer teardown()
	s := startServices(t)
	loadDemoModule(t, s)

	obj := s.Objects.LoadCreature("nw_chicken")
	eff := s.Effects.Create(nwn1.EffectHaste)
	require.True(t, s.Effects.Apply(obj, eff))
	// Re-applying an already applied effect is refused before the
	// callback runs, so the haste counter stays at one.
	require.False(t, s.Effects.Apply(obj, eff))
	require.Equal(t, 1, obj.Effects().Size())
	require.Equal(t, int32(1), obj.Hasted)
}

func TestHasteModifiesArmorClass(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.kernel")
	defer teardown()
	s := startServices(t)
	loadDemoModule(t, s)

	obj := s.Objects.LoadCreature("nw_chicken")
	base := s.Rules.CalcModifier(obj, rules.ModArmorClass, 0)
	eff := s.Effects.Create(nwn1.EffectHaste)
	require.True(t, s.Effects.Apply(obj, eff))
	hasted := s.Rules.CalcModifier(obj, rules.ModArmorClass, 0)
	require.Equal(t, base+4, hasted, "haste adds +4 dodge AC")
}

func TestIPTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.kernel")
	defer teardown()
	s := startServices(t)
	loadDemoModule(t, s)

	// The demo corpus carries no item-property sheets; lookups are soft
	// misses, never faults.
	require.Nil(t, s.Effects.IPCostTable(4))
	require.Nil(t, s.Effects.IPParamTable(3))
	require.Nil(t, s.Effects.IPDef(nwn1.IPAbilityBonus))
}
