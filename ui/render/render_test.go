package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopelab/eegscope/core"
	"github.com/scopelab/eegscope/core/dsp"
	"github.com/scopelab/eegscope/core/trace"
)

type fakeSurface struct {
	width, height float64

	clears  int
	fills   int
	strokes int
	texts   []string
}

func newFakeSurface(width, height float64) *fakeSurface {
	return &fakeSurface{width: width, height: height}
}

func (f *fakeSurface) Size() (float64, float64)  { return f.width, f.height }
func (f *fakeSurface) PixelRatio() float64       { return 1.0 }
func (f *fakeSurface) SetColor(color.Color)      {}
func (f *fakeSurface) SetLineWidth(float64)      {}
func (f *fakeSurface) SetDash(...float64)        {}
func (f *fakeSurface) ClearRect(_, _, _, _ float64) {
	f.clears++
}
func (f *fakeSurface) FillRect(_, _, _, _ float64) {
	f.fills++
}
func (f *fakeSurface) MoveTo(_, _ float64) {}
func (f *fakeSurface) LineTo(_, _ float64) {}
func (f *fakeSurface) Stroke() {
	f.strokes++
}
func (f *fakeSurface) DrawText(text string, _, _, _, _ float64) {
	f.texts = append(f.texts, text)
}
func (f *fakeSurface) TextSize(string) (float64, float64) { return 10, 10 }

func testView() (core.TraceView, [][]float64) {
	slice := make([][]float64, 100)
	for t := range slice {
		slice[t] = []float64{float64(t) / 100.0, -float64(t) / 100.0}
	}
	view := trace.Layout(trace.Input{
		Slice:      slice,
		SampleRate: 100,
		Gain:       1.0,
		Labels:     []string{"Fp1", "Fp2"},
		Width:      300,
		Height:     300,
	})
	return view, slice
}

func TestDrawTraceEmptyView(t *testing.T) {
	f := newFakeSurface(300, 300)

	DrawTrace(f, core.TraceView{}, DefaultPalette)

	assert.Equal(t, 1, f.clears)
	assert.Equal(t, 0, f.strokes)
	assert.Contains(t, f.texts, "no data")
}

func TestDrawTrace(t *testing.T) {
	view, _ := testView()
	f := newFakeSurface(300, 300)

	DrawTrace(f, view, DefaultPalette)

	assert.Equal(t, 1, f.clears)
	// one gridline per tick, the axis, and a zero-line plus a polyline per lane
	assert.Equal(t, len(view.Ticks)+1+2*len(view.Lanes), f.strokes)
	assert.Contains(t, f.texts, "Fp1")
	assert.Contains(t, f.texts, "Fp2")
	assert.Contains(t, f.texts, "0s")
}

func TestDrawPointer(t *testing.T) {
	view, slice := testView()
	sample, ok := trace.ValueAt(view, slice, sampleX(view, 50), 100)
	require.True(t, ok)
	f := newFakeSurface(300, 300)

	DrawPointer(f, view, sample)

	assert.Equal(t, 0, f.clears, "the overlay never clears the waveform")
	assert.Equal(t, 1, f.strokes)
	assert.Contains(t, f.texts, "0.50s")
	assert.Contains(t, f.texts, "0.50")
	assert.Contains(t, f.texts, "-0.50")
}

// sampleX returns the x pixel of the given sample index on the view.
func sampleX(view core.TraceView, index int) core.Px {
	return view.Plot.Left + core.Px(float64(index)*view.XStep)
}

func TestDrawSpectrogramEmpty(t *testing.T) {
	f := newFakeSurface(300, 300)

	DrawSpectrogram(f, core.Spectrogram{}, "C3")

	assert.Equal(t, 1, f.clears)
	assert.Equal(t, 0, f.fills)
	assert.Contains(t, f.texts, "no data")
}

func TestDrawSpectrogram(t *testing.T) {
	signal := dsp.Tone(512, 256, 32, 1.0)
	spec := dsp.Spectrogram(signal, 256, dsp.DefaultWindowSize, dsp.DefaultOverlap)
	require.False(t, spec.Empty())
	f := newFakeSurface(400, 300)

	DrawSpectrogram(f, spec, "C3")

	assert.Equal(t, 1, f.clears)
	assert.Equal(t, len(spec.Magnitude)*len(spec.Freqs), f.fills)
	assert.Equal(t, 2, f.strokes)
	assert.Contains(t, f.texts, "C3")
	assert.Contains(t, f.texts, "0Hz")
	assert.Contains(t, f.texts, "0.0s")
}

func TestPaletteCycles(t *testing.T) {
	p := Palette{color.White, color.Black, color.Opaque}

	assert.Equal(t, p.Channel(0), p.Channel(3))
	assert.Equal(t, p.Channel(2), p.Channel(-1))
	assert.Equal(t, color.Black, Palette{}.Channel(5))
}
