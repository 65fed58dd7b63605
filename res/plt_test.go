package res_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"

	"github.com/okarren/aurora/internal/resbin"
	"github.com/okarren/aurora/res"
)

func TestPltParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.res")
	defer teardown()
	p := res.ParsePlt(resbin.Plt(4, 4, uint8(res.PltHair)))
	require.True(t, p.Valid())
	require.Equal(t, 4, p.Width())
	require.Equal(t, 4, p.Height())
	_, layer := p.At(1, 1)
	require.Equal(t, res.PltHair, layer)

	require.False(t, res.ParsePlt([]byte("PLT V1  trunc")).Valid())
	require.False(t, res.ParsePlt([]byte("JUNK")).Valid())
}

func TestPltLayerMask(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.res")
	defer teardown()
	p := res.ParsePlt(resbin.Plt(2, 2, uint8(res.PltSkin)))
	mask := p.LayerMask(res.PltSkin)
	require.Equal(t, 2, mask.Bounds().Dx())
	// Pixels on another layer come out transparent.
	other := p.LayerMask(res.PltHair)
	_, _, _, a := other.At(0, 0).RGBA()
	require.Zero(t, a)
}

func TestManagerPaletteTexture(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "aurora.res")
	defer teardown()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "pal_skin01.plt"),
		resbin.Plt(8, 8, uint8(res.PltSkin)), 0o644))
	rm := res.NewManager()
	require.True(t, rm.AddContainer(res.NewDirectory(dir), true))

	img := rm.PaletteTexture(res.PltSkin)
	require.NotNil(t, img)
	require.Equal(t, 8, img.Bounds().Dx())
	require.Nil(t, rm.PaletteTexture(res.PltHair), "no resource for that layer")
}
