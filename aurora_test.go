package aurora_test

import (
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"

	"github.com/okarren/aurora"
	"github.com/okarren/aurora/internal/resbin"
	"github.com/okarren/aurora/res"
)

func TestParseGff(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora")
	defer teardown()
	g := aurora.ParseGff(resbin.ChickenUTC())
	require.True(t, g.Valid())
	require.Equal(t, "UTC ", g.Magic())
	require.False(t, aurora.ParseGff([]byte("junk")).Valid())
}

func TestOpenContainer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora")
	defer teardown()
	path := filepath.Join(t.TempDir(), "demo.mod")
	require.NoError(t, resbin.WriteModule(path))

	c, err := aurora.OpenContainer(path)
	require.NoError(t, err)
	require.True(t, c.Contains(res.MakeResource("module", res.IFO)))

	dir, err := aurora.OpenContainer(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, 0, dir.Size())

	_, err = aurora.OpenContainer(filepath.Join(t.TempDir(), "missing.mod"))
	require.Error(t, err)
}

func TestLoadModuleNeedsServices(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora")
	defer teardown()
	_, err := aurora.LoadModule("DockerDemo")
	require.Error(t, err, "the default bundle has not been started")
}
