package render

import (
	"fmt"

	"github.com/scopelab/eegscope/core"
	"github.com/scopelab/eegscope/core/heatmap"
)

type rect struct {
	left, top, right, bottom float64
}

func (r rect) width() float64 {
	return r.right - r.left
}

func (r rect) height() float64 {
	return r.bottom - r.top
}

// DrawSpectrogram renders the magnitude grid as a heat map, low frequencies
// at the bottom, with the frequency scale on the left and the time scale
// along the bottom.
func DrawSpectrogram(s Surface, spec core.Spectrogram, title string) {
	width, height := s.Size()
	s.ClearRect(0, 0, width, height)

	if spec.Empty() {
		drawEmptyState(s)
		return
	}

	plot := rect{
		left:   dim.marginLeft,
		top:    dim.marginTop,
		right:  width - dim.marginRight,
		bottom: height - dim.marginBottom,
	}

	drawHeatCells(s, plot, spec)
	drawFrequencyScale(s, plot, spec)
	drawTimeScale(s, plot, spec)

	if title != "" {
		s.SetColor(colorText)
		s.DrawText(title, plot.left, plot.top-dim.spacing, 0, 0)
	}
}

func drawHeatCells(s Surface, r rect, spec core.Spectrogram) {
	timeBins := len(spec.Magnitude)
	freqBins := len(spec.Freqs)
	cellW := r.width() / float64(timeBins)
	cellH := r.height() / float64(freqBins)

	for t, row := range spec.Magnitude {
		x := r.left + float64(t)*cellW
		for k, value := range row {
			y := r.bottom - float64(k+1)*cellH
			s.SetColor(heatmap.Color(heatmap.Normalized(value, spec.MinMag, spec.MaxMag)))
			// half a pixel of overfill closes the seams between cells
			s.FillRect(x, y, cellW+0.5, cellH+0.5)
		}
	}
}

func drawFrequencyScale(s Surface, r rect, spec core.Spectrogram) {
	s.SetColor(colorAxis)
	s.SetLineWidth(1.0)
	s.SetDash()
	s.MoveTo(r.left, r.top)
	s.LineTo(r.left, r.bottom)
	s.Stroke()

	freqBins := len(spec.Freqs)
	if freqBins == 0 {
		return
	}
	cellH := r.height() / float64(freqBins)
	step := freqBins / 6
	if step < 1 {
		step = 1
	}
	s.SetColor(colorText)
	for k := 0; k < freqBins; k += step {
		y := r.bottom - (float64(k)+0.5)*cellH
		s.DrawText(fmt.Sprintf("%.0fHz", float64(spec.Freqs[k])), r.left-dim.spacing, y, 1, 0.5)
	}
}

func drawTimeScale(s Surface, r rect, spec core.Spectrogram) {
	s.SetColor(colorAxis)
	s.SetLineWidth(1.0)
	s.SetDash()
	s.MoveTo(r.left, r.bottom)
	s.LineTo(r.right, r.bottom)
	s.Stroke()

	timeBins := len(spec.Times)
	if timeBins == 0 {
		return
	}
	cellW := r.width() / float64(timeBins)
	step := timeBins / 8
	if step < 1 {
		step = 1
	}
	s.SetColor(colorText)
	for t := 0; t < timeBins; t += step {
		x := r.left + (float64(t)+0.5)*cellW
		s.DrawText(fmt.Sprintf("%.1fs", float64(spec.Times[t])), x, r.bottom+dim.spacing, 0.5, 1)
	}
}
