package raster

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

// Context is a gg-backed raster surface with a logical coordinate system,
// scaled to physical pixels by a fixed pixel ratio.
type Context struct {
	dc     *gg.Context
	width  float64
	height float64
	ratio  float64
}

// New returns a white surface of the given logical size at pixel ratio 1.
func New(width, height int) *Context {
	return NewWithPixelRatio(width, height, 1.0)
}

// NewWithPixelRatio returns a white surface of the given logical size,
// backed by a raster of ratio times as many physical pixels.
func NewWithPixelRatio(width, height int, ratio float64) *Context {
	if ratio <= 0 {
		ratio = 1.0
	}
	dc := gg.NewContext(int(float64(width)*ratio), int(float64(height)*ratio))
	dc.Scale(ratio, ratio)

	result := &Context{
		dc:     dc,
		width:  float64(width),
		height: float64(height),
		ratio:  ratio,
	}
	result.ClearRect(0, 0, result.width, result.height)
	return result
}

// Size returns the logical size of the surface.
func (c *Context) Size() (float64, float64) {
	return c.width, c.height
}

// PixelRatio of the surface.
func (c *Context) PixelRatio() float64 {
	return c.ratio
}

func (c *Context) SetColor(col color.Color) {
	c.dc.SetColor(col)
}

func (c *Context) SetLineWidth(w float64) {
	c.dc.SetLineWidth(w)
}

func (c *Context) SetDash(lengths ...float64) {
	c.dc.SetDash(lengths...)
}

// ClearRect fills the given rectangle with the white background, keeping the
// current drawing color.
func (c *Context) ClearRect(x, y, w, h float64) {
	c.dc.Push()
	c.dc.SetColor(color.White)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
	c.dc.Pop()
}

func (c *Context) FillRect(x, y, w, h float64) {
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

func (c *Context) MoveTo(x, y float64) {
	c.dc.MoveTo(x, y)
}

func (c *Context) LineTo(x, y float64) {
	c.dc.LineTo(x, y)
}

func (c *Context) Stroke() {
	c.dc.Stroke()
}

func (c *Context) DrawText(text string, x, y, ax, ay float64) {
	c.dc.DrawStringAnchored(text, x, y, ax, ay)
}

func (c *Context) TextSize(text string) (float64, float64) {
	return c.dc.MeasureString(text)
}

// Image returns the rendered raster in physical pixels.
func (c *Context) Image() image.Image {
	return c.dc.Image()
}

// SavePNG writes the raster to the given file.
func (c *Context) SavePNG(path string) error {
	return errors.Wrapf(c.dc.SavePNG(path), "cannot save %s", path)
}
