package kernel_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"

	"github.com/okarren/aurora/i18n"
	"github.com/okarren/aurora/internal/resbin"
	"github.com/okarren/aurora/kernel"
)

func TestTwoDACacheHit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.kernel")
	defer teardown()
	s := startServices(t)
	loadDemoModule(t, s)

	s1 := s.TwoDAs.Get("feat")
	require.NotNil(t, s1)
	s2 := s.TwoDAs.Get("feat")
	require.Same(t, s1, s2, "second request is a cache hit")
	require.Same(t, s1, s.TwoDAs.Get("FEAT"), "cache keys fold case")
	require.Nil(t, s.TwoDAs.Get("dontexist"))

	s.UnloadModule()
	require.Nil(t, s.TwoDAs.Get("feat"), "unload invalidates wholesale")
}

func TestParsedScriptCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.kernel")
	defer teardown()
	root := t.TempDir()
	override := filepath.Join(root, "override")
	require.NoError(t, os.MkdirAll(override, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(override, "nwscript.nss"), []byte("void main() {}"), 0o644))

	parses := 0
	parser := func(name string, source []byte) (any, error) {
		parses++
		if len(source) == 0 {
			return nil, fmt.Errorf("empty script %s", name)
		}
		return string(source), nil
	}
	cfg := kernel.Config{User: root}
	s := kernel.NewServices(cfg, parser)
	require.NoError(t, s.Start(nil))
	t.Cleanup(s.Shutdown)

	p1 := s.Scripts.Get("nwscript")
	require.NotNil(t, p1)
	p2 := s.Scripts.Get("nwscript")
	require.Equal(t, p1, p2)
	require.Equal(t, 1, parses, "the collaborator runs once per resref")
	require.Nil(t, s.Scripts.Get("dontexist"))
}

func TestModelCacheRefcount(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.kernel")
	defer teardown()
	root := t.TempDir()
	override := filepath.Join(root, "override")
	require.NoError(t, os.MkdirAll(override, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(override, "c_orcus.mdl"), []byte("model payload"), 0o644))

	s := kernel.NewServices(kernel.Config{User: root}, nil)
	require.NoError(t, s.Start(nil))
	t.Cleanup(s.Shutdown)

	m1 := s.Models.Load("c_orcus")
	require.NotNil(t, m1)
	m2 := s.Models.Load("c_orcus")
	require.Same(t, m1, m2)

	// Two references above; the entry survives the first release.
	s.Models.Release("c_orcus")
	require.Equal(t, 1, s.Models.Len())
	s.Models.Release("c_orcus")
	require.Equal(t, 0, s.Models.Len())
	// Releasing an unloaded model is a logged no-op.
	s.Models.Release("c_orcus")
}

func TestTilesetRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.kernel")
	defer teardown()
	root := t.TempDir()
	override := filepath.Join(root, "override")
	require.NoError(t, os.MkdirAll(override, 0o755))
	set := "[GENERAL]\nName=Rural\n[TILES]\nCount=2\n[TILE0]\nModel=ttr01_a01_01\n[TILE1]\nModel=ttr01_a02_01\n"
	require.NoError(t, os.WriteFile(filepath.Join(override, "ttr01.set"), []byte(set), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(override, "ttr01_a01_01.mdl"), []byte("m1"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(override, "ttr01_a02_01.mdl"), []byte("m2"), 0o644))

	s := kernel.NewServices(kernel.Config{User: root}, nil)
	require.NoError(t, s.Start(nil))
	t.Cleanup(s.Shutdown)

	ts := s.Tilesets.Load("TTR01")
	require.NotNil(t, ts)
	require.Equal(t, 2, ts.TileCount)
	require.Len(t, ts.TileModels, 2)
	require.NotNil(t, s.Tilesets.Get("TTR01"))
	require.Equal(t, 2, s.Models.Len(), "tile models are registered")

	require.Nil(t, s.Tilesets.Load("FAKE01"))
	require.Nil(t, s.Tilesets.Get("FAKE01"))

	s.Tilesets.Clear()
	require.Equal(t, 0, s.Models.Len(), "clear releases the models")
}

func TestStringsService(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.kernel")
	defer teardown()
	s := startServices(t)

	require.Equal(t, "Silence", s.Strings.Get(1000))
	require.Equal(t, "", s.Strings.Get(0xFFFFFFFF))

	// A custom table answers the flagged range.
	custom := filepath.Join(t.TempDir(), "custom.tlk")
	require.NoError(t, resbin.DialogTlk().SaveAs(custom))
	require.True(t, s.Strings.LoadCustomTlk(custom))
	require.Equal(t, "Stay here and don't move until I return.", s.Strings.Get(0x01001000))

	// Embedded locstring variants win over the table reference.
	loc := i18n.NewLocString(1000)
	require.Equal(t, "Silence", s.Strings.GetLocString(loc))
	loc.Add(i18n.LangEnglish, "Silencio", false)
	require.Equal(t, "Silencio", s.Strings.GetLocString(loc))
}

func TestStringsIntern(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.kernel")
	defer teardown()
	s := startServices(t)

	str := s.Strings.Intern("This is a Test")
	require.Equal(t, "This is a Test", str)
	_, ok := s.Strings.GetInterned("asdf;lkj")
	require.False(t, ok)
	got, ok := s.Strings.GetInterned("This is a Test")
	require.True(t, ok)
	require.Equal(t, str, got)
}

func TestConfigAliases(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.kernel")
	defer teardown()
	cfg := kernel.Config{Install: "/opt/nwn", User: "/home/u/nwn"}
	require.Equal(t,
		filepath.Join("/home/u/nwn", "hak", "test.hak"),
		cfg.ResolveAlias("HAK:test.hak"))
	require.NotEmpty(t, cfg.AliasPath(kernel.AliasDevelopment))
	require.Equal(t, "plain/path.mod", cfg.ResolveAlias("plain/path.mod"))
	require.Equal(t,
		filepath.Join("/home/u/nwn", "modules", "DockerDemo.mod"),
		cfg.ModulePath("DockerDemo"))
}

func TestConfigFromEnv(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.kernel")
	defer teardown()
	t.Setenv("NWN_ROOT", "/opt/nwn")
	t.Setenv("NWN_USER", "")
	cfg, err := kernel.ConfigFromEnv()
	require.NoError(t, err)
	require.Equal(t, "/opt/nwn", cfg.Install)
	require.Equal(t, "/opt/nwn", cfg.User, "user path defaults to the install")
}
