package render

import "image/color"

// Surface is the abstract raster surface the viewer draws onto. Coordinates
// are in logical pixels, the implementation maps them to physical pixels
// using its pixel ratio.
type Surface interface {
	// Size returns the logical width and height of the surface.
	Size() (width, height float64)
	// PixelRatio is the physical pixel density per logical pixel.
	PixelRatio() float64

	SetColor(c color.Color)
	SetLineWidth(w float64)
	// SetDash switches to dashed strokes, without arguments back to solid.
	SetDash(lengths ...float64)

	// ClearRect fills the given rectangle with the white background.
	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()

	// DrawText places text relative to the given position: ax 0 anchors the
	// left edge, 1 the right edge, ay 0 the baseline, 1 the line below.
	DrawText(text string, x, y, ax, ay float64)
	TextSize(text string) (width, height float64)
}

// Palette assigns each channel a stroke color.
type Palette []color.Color

// Channel returns the color of the given channel, cycling when there are
// more channels than colors.
func (p Palette) Channel(i int) color.Color {
	if len(p) == 0 {
		return color.Black
	}
	return p[((i%len(p))+len(p))%len(p)]
}

// DefaultPalette for multi-channel traces on a white background.
var DefaultPalette = Palette{
	color.RGBA{0x1f, 0x77, 0xb4, 0xff},
	color.RGBA{0xd6, 0x27, 0x28, 0xff},
	color.RGBA{0x2c, 0xa0, 0x2c, 0xff},
	color.RGBA{0x94, 0x67, 0xbd, 0xff},
	color.RGBA{0xff, 0x7f, 0x0e, 0xff},
	color.RGBA{0x8c, 0x56, 0x4b, 0xff},
	color.RGBA{0x17, 0xbe, 0xcf, 0xff},
	color.RGBA{0x7f, 0x7f, 0x7f, 0xff},
}

var (
	colorGrid    = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
	colorAxis    = color.RGBA{0x44, 0x44, 0x44, 0xff}
	colorText    = color.RGBA{0x22, 0x22, 0x22, 0xff}
	colorPointer = color.RGBA{0xd0, 0x30, 0x30, 0xff}
)

var dim = struct {
	spacing      float64
	marginTop    float64
	marginBottom float64
	marginLeft   float64
	marginRight  float64
	axisFontPad  float64
}{
	spacing:      4.0,
	marginTop:    20.0,
	marginBottom: 40.0,
	marginLeft:   50.0,
	marginRight:  20.0,
	axisFontPad:  2.0,
}
