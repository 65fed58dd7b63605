package objects_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"

	"github.com/okarren/aurora/gff"
	"github.com/okarren/aurora/i18n"
	"github.com/okarren/aurora/internal/resbin"
	"github.com/okarren/aurora/objects"
	"github.com/okarren/aurora/res"
)

func loadChicken(t *testing.T, profile objects.SerializationProfile) *objects.Creature {
	t.Helper()
	doc := gff.FromBytes(resbin.ChickenUTC())
	require.True(t, doc.Valid())
	cre := &objects.Creature{}
	require.True(t, objects.DeserializeCreature(cre, doc.Toplevel(), profile))
	return cre
}

func TestCreatureDeserialize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.objects")
	defer teardown()
	cre := loadChicken(t, objects.ProfileBlueprint)
	require.Equal(t, "nw_chicken", cre.Resref.String())
	require.Equal(t, "NW_CHICKEN", cre.Tag)
	require.Equal(t, int32(7), cre.Stats.GetAbilityScore(1))
	require.Equal(t, "nw_c2_default5", cre.ScriptRefs.OnAttacked.String())
	require.Equal(t, uint16(31), cre.Appearance.ID)
	require.Equal(t, uint8(1), cre.Gender)
	require.Equal(t, int16(3), cre.HPMax)
	require.Len(t, cre.Levels.Entries, 1)
	require.Equal(t, objects.Class(12), cre.Levels.Entries[0].ID)
	// Blueprint profile fills current HP from the maximum.
	require.Equal(t, cre.HPMax, cre.HPCurrent)
}

func TestCreatureGffRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.objects")
	defer teardown()
	cre := loadChicken(t, objects.ProfileAny)
	out := objects.SerializeCreature(cre, objects.ProfileAny).Bytes()
	doc := gff.FromBytes(out)
	require.True(t, doc.Valid())
	cre2 := &objects.Creature{}
	require.True(t, objects.DeserializeCreature(cre2, doc.Toplevel(), objects.ProfileAny))

	require.Equal(t, cre.Resref, cre2.Resref)
	require.Equal(t, cre.Tag, cre2.Tag)
	require.Equal(t, cre.Stats, cre2.Stats)
	require.Equal(t, cre.Levels, cre2.Levels)
	require.Equal(t, cre.Appearance, cre2.Appearance)
	require.Equal(t, cre.ScriptRefs, cre2.ScriptRefs)
	require.Equal(t, cre.HPMax, cre2.HPMax)

	// Serialization is canonical: a second write is byte-identical.
	out2 := objects.SerializeCreature(cre2, objects.ProfileAny).Bytes()
	require.Equal(t, out, out2)
}

func TestCreatureJSONRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.objects")
	defer teardown()
	cre := loadChicken(t, objects.ProfileAny)
	cre.Equipment = objects.Equipment{objects.EquipChest: res.MakeResref("nw_armor01")}
	j, err := objects.CreatureToJSON(cre, objects.ProfileBlueprint)
	require.NoError(t, err)

	cre2 := &objects.Creature{}
	require.True(t, objects.CreatureFromJSON(cre2, j, objects.ProfileBlueprint))
	require.Equal(t, cre.Resref, cre2.Resref)
	require.Equal(t, cre.Stats, cre2.Stats)
	require.Equal(t, cre.ScriptRefs, cre2.ScriptRefs)
	require.Equal(t, cre.Equipment, cre2.Equipment)

	j2, err := objects.CreatureToJSON(cre2, objects.ProfileBlueprint)
	require.NoError(t, err)
	require.Equal(t, string(j), string(j2))
}

func TestCreatureSavegameProfile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.objects")
	defer teardown()
	cre := loadChicken(t, objects.ProfileAny)
	cre.Hasted = 2
	cre.HPCurrent = 1

	blueprint := objects.SerializeCreature(cre, objects.ProfileBlueprint).Bytes()
	bdoc := gff.FromBytes(blueprint)
	require.False(t, bdoc.Toplevel().Has("Hasted"),
		"blueprints omit transient counters")
	require.False(t, bdoc.Toplevel().Has("CurrentHitPoints"),
		"blueprints omit instance state")

	save := objects.SerializeCreature(cre, objects.ProfileSavegame).Bytes()
	sdoc := gff.FromBytes(save)
	cre2 := &objects.Creature{}
	require.True(t, objects.DeserializeCreature(cre2, sdoc.Toplevel(), objects.ProfileSavegame))
	require.Equal(t, int32(2), cre2.Hasted)
	require.Equal(t, int16(1), cre2.HPCurrent)
}

func TestCreatureRejectsDamage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.objects")
	defer teardown()
	cre := &objects.Creature{}
	require.False(t, objects.DeserializeCreature(cre, gff.Struct{}, objects.ProfileAny))
	// A document with neither resref nor tag fails the identity stage.
	b := gff.NewBuilder("UTC ")
	b.Root().SetByte("Gender", 1)
	doc := gff.FromBytes(b.Bytes())
	require.False(t, objects.DeserializeCreature(cre, doc.Toplevel(), objects.ProfileAny))
}

func TestEffectList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.objects")
	defer teardown()
	cre := &objects.Creature{}
	e := &objects.Effect{Type: 35}
	require.True(t, cre.Effects().Add(e))
	require.Equal(t, 1, cre.Effects().Size())
	require.False(t, cre.Effects().Add(e), "re-adding the same effect is refused")
	require.Equal(t, 1, cre.Effects().Size())
	require.True(t, cre.Effects().Remove(e))
	require.Equal(t, 0, cre.Effects().Size())
	require.False(t, cre.Effects().Remove(e))
}

func TestLocStringOnCommon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.objects")
	defer teardown()
	cre := loadChicken(t, objects.ProfileBlueprint)
	require.Equal(t, "Chicken", cre.Name.Get(i18n.LangEnglish, false))
}
