package res

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/okarren/aurora/internal/bin"
)

// PltLayer indexes the layers of a packed layered texture.
type PltLayer uint8

// Layers of a PLT texture, in pixel-encoding order.
const (
	PltSkin PltLayer = iota
	PltHair
	PltMetal1
	PltMetal2
	PltCloth1
	PltCloth2
	PltLeather1
	PltLeather2
	PltTattoo1
	PltTattoo2
	pltLayerCount
)

var pltLayerNames = [pltLayerCount]string{
	"skin", "hair", "metal1", "metal2", "cloth1", "cloth2",
	"leather1", "leather2", "tattoo1", "tattoo2",
}

func (l PltLayer) String() string {
	if l < pltLayerCount {
		return pltLayerNames[l]
	}
	return "invalid"
}

// Plt is a layered palette texture: each pixel carries a grayscale value
// plus the layer it belongs to.
//
//	Header (24 B): "PLT " "V1  ", two unused u32, width, height.
//	Pixels: width*height pairs of (value u8, layer u8), bottom-up.
type Plt struct {
	width  int
	height int
	pixels []byte // (value, layer) pairs
	valid  bool
}

const pltHeaderSize = 24

// ParsePlt decodes a PLT payload.
func ParsePlt(data []byte) *Plt {
	p := &Plt{}
	b := bin.Segm(data)
	if len(b) < pltHeaderSize || string(b[0:4]) != "PLT " || string(b[4:8]) != "V1  " {
		tracer().Errorf("plt: bad magic or truncated header")
		return p
	}
	w, _ := b.U32(16)
	h, _ := b.U32(20)
	px, err := b.View(pltHeaderSize, int(w)*int(h)*2)
	if err != nil {
		tracer().Errorf("plt: pixel data out of bounds (%dx%d)", w, h)
		return p
	}
	p.width, p.height = int(w), int(h)
	p.pixels = px
	p.valid = true
	return p
}

// Valid reports whether the texture parsed cleanly.
func (p *Plt) Valid() bool { return p.valid }

// Width returns the texture width in pixels.
func (p *Plt) Width() int { return p.width }

// Height returns the texture height in pixels.
func (p *Plt) Height() int { return p.height }

// At returns (value, layer) for a pixel.
func (p *Plt) At(x, y int) (uint8, PltLayer) {
	i := (y*p.width + x) * 2
	if i < 0 || i+1 >= len(p.pixels) {
		return 0, pltLayerCount
	}
	return p.pixels[i], PltLayer(p.pixels[i+1])
}

// LayerMask renders one layer's pixels as a grayscale image; pixels of
// other layers come out transparent.
func (p *Plt) LayerMask(layer PltLayer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			v, l := p.At(x, y)
			if l == layer {
				// PLT rows are stored bottom-up.
				img.SetNRGBA(x, p.height-1-y, color.NRGBA{R: v, G: v, B: v, A: 0xFF})
			}
		}
	}
	return img
}

// Render composites the texture with one flat color per layer. Missing
// colors render as plain grayscale.
func (p *Plt) Render(colors map[PltLayer]color.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	for layer := PltSkin; layer < pltLayerCount; layer++ {
		mask := p.LayerMask(layer)
		if c, ok := colors[layer]; ok {
			tintInPlace(mask, c)
		}
		xdraw.Draw(out, out.Bounds(), mask, image.Point{}, xdraw.Over)
	}
	return out
}

func tintInPlace(img *image.NRGBA, c color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := img.NRGBAAt(x, y)
			if px.A == 0 {
				continue
			}
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(uint16(px.R) * uint16(c.R) / 255),
				G: uint8(uint16(px.G) * uint16(c.G) / 255),
				B: uint8(uint16(px.B) * uint16(c.B) / 255),
				A: px.A,
			})
		}
	}
}

// pltLayerResource maps a layer to its palette-ramp resource.
func pltLayerResource(layer PltLayer) Resource {
	return MakeResource("pal_"+layer.String()+"01", PLT)
}

// PaletteTexture decodes the palette texture for a layer. The lookup goes
// through the container stack like any other resource; a miss or a damaged
// payload yields nil.
func (m *Manager) PaletteTexture(layer PltLayer) image.Image {
	if layer >= pltLayerCount {
		tracer().Errorf("resman: palette texture for invalid layer %d", layer)
		return nil
	}
	d := m.Demand(pltLayerResource(layer))
	if d.IsEmpty() {
		return nil
	}
	p := ParsePlt(d.Bytes)
	if !p.Valid() {
		return nil
	}
	return p.LayerMask(layer)
}
