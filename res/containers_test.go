package res_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"

	"github.com/okarren/aurora/internal/resbin"
	"github.com/okarren/aurora/res"
)

func writeModule(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "DockerDemo.mod")
	require.NoError(t, resbin.WriteModule(path))
	return path
}

func TestErfOpenAndDemand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.res")
	defer teardown()
	e := res.NewErf(writeModule(t))
	require.True(t, e.Valid())
	require.Equal(t, "MOD ", e.Magic())
	require.Equal(t, 10, e.Size())

	require.True(t, e.Contains(res.MakeResource("module", res.IFO)))
	require.False(t, e.Contains(res.MakeResource("module", res.ARE)),
		"shadowing granularity is (resref, type)")

	d := e.Demand(res.MakeResource("nw_chicken", res.UTC))
	require.False(t, d.IsEmpty())
	meta, ok := e.Stat(res.MakeResource("nw_chicken", res.UTC))
	require.True(t, ok)
	require.Equal(t, int64(len(d.Bytes)), meta.Size)

	miss := e.Demand(res.MakeResource("nonexistent", res.UTC))
	require.True(t, miss.IsEmpty())
}

func TestErfRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.res")
	defer teardown()
	path := writeModule(t)
	e := res.NewErf(path)
	require.True(t, e.Valid())

	out := filepath.Join(t.TempDir(), "copy.mod")
	require.NoError(t, e.Save(out))
	e2 := res.NewErf(out)
	require.True(t, e2.Valid())
	require.Equal(t, e.Size(), e2.Size())
	e.Visit(func(r res.Resource) {
		a := e.Demand(r)
		b := e2.Demand(r)
		require.Equal(t, a.Bytes, b.Bytes, "payload of %s", r)
	})
}

func TestErfRejectsDamage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.res")
	defer teardown()
	e := res.ErfFromBytes("junk", []byte("JUNKV1.0 not an archive"))
	require.False(t, e.Valid())
	e2 := res.ErfFromBytes("short", []byte("MOD V1.0"))
	require.False(t, e2.Valid())
}

func TestDirectoryContainer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.res")
	defer teardown()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "NW_Chicken.utc"), resbin.ChickenUTC(), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notaresource.xyzzy"), []byte("x"), 0o644))
	d := res.NewDirectory(dir)
	require.True(t, d.Valid())
	require.Equal(t, 1, d.Size(), "unknown extensions are ignored")
	require.True(t, d.Contains(res.MakeResource("nw_chicken", res.UTC)),
		"native filename case folds into the lookup")
	data := d.Demand(res.MakeResource("nw_chicken", res.UTC))
	require.False(t, data.IsEmpty())
	require.False(t, data.Mtime.IsZero())
}

func TestZipContainer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.res")
	defer teardown()
	path := filepath.Join(t.TempDir(), "module_as_zip.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("content/nw_chicken.utc")
	require.NoError(t, err)
	_, err = w.Write(resbin.ChickenUTC())
	require.NoError(t, err)
	w, err = zw.Create("content/readme.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	z := res.NewZip(path)
	require.True(t, z.Valid())
	require.Equal(t, 2, z.Size())
	d := z.Demand(res.MakeResource("nw_chicken", res.UTC))
	require.Equal(t, resbin.ChickenUTC(), d.Bytes)
}

func TestKeyBifContainer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.res")
	defer teardown()
	dir := t.TempDir()
	keyPath, err := resbin.WriteKeyBif(dir, "chitin", map[string][]byte{
		"nw_chicken.utc": resbin.ChickenUTC(),
		"feat.2da":       []byte(resbin.FeatTwoDA),
	})
	require.NoError(t, err)

	k := res.NewKeyBif(keyPath)
	require.True(t, k.Valid())
	require.Equal(t, 2, k.Size())
	d := k.Demand(res.MakeResource("nw_chicken", res.UTC))
	require.Equal(t, resbin.ChickenUTC(), d.Bytes)
	d2 := k.Demand(res.MakeResource("feat", res.TwoDA))
	require.Equal(t, []byte(resbin.FeatTwoDA), d2.Bytes)
}

func TestNWSyncManifest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.res")
	defer teardown()
	root := t.TempDir()
	mtime := int64(1648999682) // corpus-specific, carried by the manifest
	require.NoError(t, resbin.WriteNWSync(root, "demo", mtime, map[string][]byte{
		"nw_chicken.utc": resbin.ChickenUTC(),
		"feat.2da":       []byte(resbin.FeatTwoDA),
	}))

	n := res.NewNWSync(root)
	require.True(t, n.IsLoaded())
	require.Len(t, n.Manifests(), 1)
	m := n.Get("demo")
	require.NotNil(t, m)
	require.Equal(t, 2, m.Size())

	d := m.Demand(res.MakeResource("nw_chicken", res.UTC))
	require.Equal(t, resbin.ChickenUTC(), d.Bytes)
	require.Equal(t, mtime, d.Mtime.Unix(), "mtime comes from the manifest")

	meta, ok := m.Stat(res.MakeResource("feat", res.TwoDA))
	require.True(t, ok)
	require.Equal(t, mtime, meta.Mtime.Unix())
}
