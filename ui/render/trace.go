package render

import (
	"fmt"

	"github.com/scopelab/eegscope/core"
)

// DrawTrace renders the waveform geometry onto the surface: the time axis,
// one dashed zero-line and one polyline per lane, and the lane labels in the
// left margin.
func DrawTrace(s Surface, view core.TraceView, palette Palette) {
	width, height := s.Size()
	s.ClearRect(0, 0, width, height)

	if view.Empty() {
		drawEmptyState(s)
		return
	}

	drawTimeAxis(s, view)
	drawLanes(s, view, palette)
}

// DrawPointer renders the inspection overlay for a sample: a vertical marker
// with the absolute time on top and the channel value beside each lane. The
// waveform itself is not redrawn.
func DrawPointer(s Surface, view core.TraceView, sample core.PointerSample) {
	if view.Empty() {
		return
	}

	x := float64(view.Plot.Left) + float64(sample.Index)*view.XStep

	s.SetColor(colorPointer)
	s.SetLineWidth(1.5)
	s.SetDash()
	s.MoveTo(x, float64(view.Plot.Top))
	s.LineTo(x, float64(view.Plot.Bottom))
	s.Stroke()

	s.DrawText(sample.Time.String(), x+dim.spacing, float64(view.Plot.Top)+dim.spacing, 0, 1)
	for i, lane := range view.Lanes {
		if i >= len(sample.Values) {
			break
		}
		s.DrawText(fmt.Sprintf("%.2f", sample.Values[i]), x+dim.spacing, float64(lane.Center)-dim.spacing, 0, 0)
	}
}

func drawEmptyState(s Surface) {
	width, height := s.Size()
	s.SetColor(colorText)
	s.DrawText("no data", width/2, height/2, 0.5, 0.5)
}

func drawTimeAxis(s Surface, view core.TraceView) {
	s.SetColor(colorGrid)
	s.SetLineWidth(0.5)
	s.SetDash(2, 2)
	for _, tick := range view.Ticks {
		s.MoveTo(float64(tick.X), float64(view.Plot.Top))
		s.LineTo(float64(tick.X), float64(view.Plot.Bottom))
		s.Stroke()
	}
	s.SetDash()

	s.SetColor(colorAxis)
	s.SetLineWidth(1.0)
	s.MoveTo(float64(view.Plot.Left), float64(view.Plot.Bottom))
	s.LineTo(float64(view.Plot.Right), float64(view.Plot.Bottom))
	s.Stroke()

	s.SetColor(colorText)
	for _, tick := range view.Ticks {
		s.DrawText(tick.Label, float64(tick.X), float64(view.Plot.Bottom)+dim.spacing, 0.5, 1)
	}
}

func drawLanes(s Surface, view core.TraceView, palette Palette) {
	for _, lane := range view.Lanes {
		s.SetColor(colorGrid)
		s.SetLineWidth(0.5)
		s.SetDash(2, 2)
		s.MoveTo(float64(view.Plot.Left), float64(lane.Center))
		s.LineTo(float64(view.Plot.Right), float64(lane.Center))
		s.Stroke()
		s.SetDash()

		s.SetColor(colorText)
		s.DrawText(lane.Label, float64(view.Plot.Left)-dim.spacing, float64(lane.Center), 1, 0.5)

		if len(lane.Polyline) == 0 {
			continue
		}
		s.SetColor(palette.Channel(lane.Channel))
		s.SetLineWidth(1.0)
		s.MoveTo(float64(lane.Polyline[0].X), float64(lane.Polyline[0].Y))
		for _, p := range lane.Polyline[1:] {
			s.LineTo(float64(p.X), float64(p.Y))
		}
		s.Stroke()
	}
}
