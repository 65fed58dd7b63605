package gff_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"

	"github.com/okarren/aurora/gff"
	"github.com/okarren/aurora/i18n"
	"github.com/okarren/aurora/internal/resbin"
	"github.com/okarren/aurora/res"
)

func TestGffValidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.gff")
	defer teardown()
	g := gff.FromBytes(resbin.ChickenUTC())
	require.True(t, g.Valid())
	require.Equal(t, "UTC ", g.Magic())
	top := g.Toplevel()
	require.True(t, top.Valid())
	require.Greater(t, top.Size(), 0)
	require.Equal(t, gff.StructIDRoot, top.ID())

	field := top.Field("TemplateResRef")
	require.True(t, field.Valid())
	require.Equal(t, "TemplateResRef", field.Name())
	require.Equal(t, gff.TypeResref, field.Type())

	var r res.Resref
	require.True(t, field.GetTo(&r))
	require.Equal(t, "nw_chicken", r.String())

	// Positional access works too.
	require.True(t, top.FieldAt(0).Valid())
	require.Equal(t, "TemplateResRef", top.FieldAt(0).Name())
}

func TestGffLists(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.gff")
	defer teardown()
	g := gff.FromBytes(resbin.ChickenUTC())
	require.True(t, g.Valid())
	top := g.Toplevel()

	skills := top.Field("SkillList")
	require.True(t, skills.Valid())
	require.Greater(t, skills.Size(), 0)
	rank := skills.Index(0)
	require.True(t, rank.Valid())
	var val uint8
	require.True(t, rank.Field("Rank").GetTo(&val))
	require.Equal(t, uint8(0), val)
	if v, ok := gff.Get[uint8](rank.Field("Rank")); !ok || v != 0 {
		t.Fatalf("Get[uint8] = %d, %v", v, ok)
	}

	classes := top.Field("ClassList")
	require.True(t, classes.Valid())
	require.Equal(t, "ClassList", classes.Name())
	require.Equal(t, 1, classes.Size())
	var class int32
	require.True(t, classes.Index(0).Field("Class").GetTo(&class))
	require.Equal(t, int32(12), class)
	require.Equal(t, uint32(2), classes.Index(0).ID())
}

func TestGffSoftFailures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.gff")
	defer teardown()
	g := gff.FromBytes(resbin.ChickenUTC())
	top := g.Toplevel()

	// Type mismatch leaves the destination untouched.
	var wrong int32 = 42
	require.False(t, top.Field("Gender").GetTo(&wrong))
	require.Equal(t, int32(42), wrong)

	// Missing labels yield invalid cursors, not panics.
	missing := top.Field("NoSuchLabel")
	require.False(t, missing.Valid())
	require.False(t, missing.GetTo(&wrong))
	require.Equal(t, 0, missing.Size())
	require.False(t, missing.Index(0).Valid())

	// Defaulted access.
	require.Equal(t, uint8(1), gff.GetOr[uint8](top.Field("Gender"), 9))
	require.Equal(t, uint8(9), gff.GetOr[uint8](top.Field("NoSuchLabel"), 9))
}

func TestGffRejectsDamage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.gff")
	defer teardown()
	require.False(t, gff.FromBytes(nil).Valid())
	require.False(t, gff.FromBytes([]byte("UTC V3.2")).Valid())
	// Bad version.
	doc := resbin.ChickenUTC()
	bad := append([]byte{}, doc...)
	copy(bad[4:8], "V9.9")
	require.False(t, gff.FromBytes(bad).Valid())
	// Struct table pointing past the end.
	bad2 := append([]byte{}, doc...)
	bad2[8] = 0xFF
	bad2[9] = 0xFF
	bad2[10] = 0xFF
	require.False(t, gff.FromBytes(bad2).Valid())
}

func TestGffAllLeafTypes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.gff")
	defer teardown()
	b := gff.NewBuilder("GFF ")
	root := b.Root()
	root.SetByte("AByte", 200)
	root.SetChar("AChar", -5)
	root.SetWord("AWord", 60000)
	root.SetShort("AShort", -12345)
	root.SetDword("ADword", 0xDEADBEEF)
	root.SetInt("AnInt", -123456789)
	root.SetDword64("ADword64", 0x1122334455667788)
	root.SetInt64("AnInt64", -1234567890123)
	root.SetFloat("AFloat", 3.5)
	root.SetDouble("ADouble", -2.25)
	root.SetString("AString", "hello world")
	root.SetResref("AResref", res.MakeResref("nw_chicken"))
	loc := i18n.NewLocString(1000)
	loc.Add(i18n.LangEnglish, "Silence", false)
	loc.Add(i18n.LangFrench, "Silence!", true)
	root.SetLocString("ALocString", loc)
	root.SetVoid("AVoid", []byte{1, 2, 3, 4})

	g := gff.FromBytes(b.Bytes())
	require.True(t, g.Valid())
	top := g.Toplevel()

	require.Equal(t, uint8(200), gff.GetOr[uint8](top.Field("AByte"), 0))
	require.Equal(t, int8(-5), gff.GetOr[int8](top.Field("AChar"), 0))
	require.Equal(t, uint16(60000), gff.GetOr[uint16](top.Field("AWord"), 0))
	require.Equal(t, int16(-12345), gff.GetOr[int16](top.Field("AShort"), 0))
	require.Equal(t, uint32(0xDEADBEEF), gff.GetOr[uint32](top.Field("ADword"), 0))
	require.Equal(t, int32(-123456789), gff.GetOr[int32](top.Field("AnInt"), 0))
	require.Equal(t, uint64(0x1122334455667788), gff.GetOr[uint64](top.Field("ADword64"), 0))
	require.Equal(t, int64(-1234567890123), gff.GetOr[int64](top.Field("AnInt64"), 0))
	require.Equal(t, float32(3.5), gff.GetOr[float32](top.Field("AFloat"), 0))
	require.Equal(t, float64(-2.25), gff.GetOr[float64](top.Field("ADouble"), 0))
	require.Equal(t, "hello world", gff.GetOr[string](top.Field("AString"), ""))
	require.Equal(t, "nw_chicken", gff.GetOr[res.Resref](top.Field("AResref"), res.Resref{}).String())
	got := gff.GetOr[i18n.LocString](top.Field("ALocString"), i18n.LocString{})
	require.True(t, got.Equal(loc))
	require.Equal(t, []byte{1, 2, 3, 4}, gff.GetOr[[]byte](top.Field("AVoid"), nil))
}
