package gff_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"

	"github.com/okarren/aurora/gff"
	"github.com/okarren/aurora/internal/resbin"
)

// Canonical files must survive a read/write cycle byte-for-byte, header
// offsets and counts included.
func TestGffByteIdenticalRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.gff")
	defer teardown()
	for _, fixture := range [][]byte{
		resbin.ChickenUTC(),
		resbin.AgentUTC(),
		resbin.ModuleIFO("DEMO", "start", "second"),
		resbin.AreaGIT("nw_chicken", "nw_chicken", "pl_agent_001"),
	} {
		g := gff.FromBytes(fixture)
		require.True(t, g.Valid())
		rewritten := gff.Canonicalize(g).Bytes()
		require.True(t, bytes.Equal(fixture, rewritten),
			"canonicalizing write must reproduce the input bytes")
	}
}

func TestGffDoubleRewriteStable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.gff")
	defer teardown()
	first := gff.Canonicalize(gff.FromBytes(resbin.ChickenUTC())).Bytes()
	second := gff.Canonicalize(gff.FromBytes(first)).Bytes()
	require.True(t, bytes.Equal(first, second))
}

func TestGffJSONProjection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.gff")
	defer teardown()
	g := gff.FromBytes(resbin.ChickenUTC())
	require.True(t, g.Valid())
	j := string(gff.ToJSON(g))

	require.True(t, strings.HasPrefix(j, `{"__struct_id":-1`),
		"root struct id projects as -1")
	require.Contains(t, j, `"TemplateResRef":"nw_chicken"`)
	require.Contains(t, j, `"Gender":1`)
	require.Contains(t, j, `"SkillList":[{"__struct_id":0,"Rank":0}`)
	require.Contains(t, j, `"FirstName":{"strref":4294967295,"strings":[{"lang":0,"string":"Chicken"}]}`)

	// Key order follows field order: TemplateResRef was set first.
	require.Less(t, strings.Index(j, "TemplateResRef"), strings.Index(j, "Gender"))
	require.Less(t, strings.Index(j, "Gender"), strings.Index(j, "SkillList"))
}

func TestGffJSONStable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.gff")
	defer teardown()
	a := gff.ToJSON(gff.FromBytes(resbin.ChickenUTC()))
	b := gff.ToJSON(gff.FromBytes(resbin.ChickenUTC()))
	require.Equal(t, string(a), string(b))
}

func TestGffSingleElementListIndirection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.gff")
	defer teardown()
	b := gff.NewBuilder("GFF ")
	list := b.Root().AddList("OneElement")
	list.Add(7).SetByte("X", 1)
	raw := b.Bytes()

	g := gff.FromBytes(raw)
	require.True(t, g.Valid())
	f := g.Toplevel().Field("OneElement")
	require.Equal(t, gff.TypeList, f.Type())
	require.Equal(t, 1, f.Size())
	require.Equal(t, uint32(7), f.Index(0).ID())
	// And the round trip still holds.
	require.True(t, bytes.Equal(raw, gff.Canonicalize(g).Bytes()))
}
