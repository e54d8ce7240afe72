package app

import (
	"strconv"

	"github.com/scopelab/eegscope/core"
	"github.com/scopelab/eegscope/ui/raster"
	"github.com/scopelab/eegscope/ui/render"
)

// exportFrame renders the given frame into a PNG file. The waveform uses the
// geometry's own size, the spectrogram uses the configured canvas size.
func exportFrame(frame core.Frame, path string) error {
	var surface *raster.Context
	switch frame.ViewMode {
	case core.ViewSpectrogram:
		surface = raster.NewWithPixelRatio(int(frame.CanvasWidth), int(frame.CanvasHeight), frame.PixelRatio)
		render.DrawSpectrogram(surface, frame.Spectrogram, spectrogramTitle(frame))
	default:
		width, height := frame.CanvasWidth, frame.CanvasHeight
		if !frame.Trace.Empty() {
			width, height = frame.Trace.Width, frame.Trace.Height
		}
		surface = raster.NewWithPixelRatio(int(width), int(height), frame.PixelRatio)
		render.DrawTrace(surface, frame.Trace, render.DefaultPalette)
	}
	return surface.SavePNG(path)
}

func spectrogramTitle(frame core.Frame) string {
	label := strconv.Itoa(frame.SelectedChannel + 1)
	if frame.SelectedChannel >= 0 && frame.SelectedChannel < len(frame.Labels) {
		label = frame.Labels[frame.SelectedChannel]
	}
	return "channel " + label
}
