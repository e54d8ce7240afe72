package heatmap

import (
	"image/color"
	"math"
)

// Color maps a normalized magnitude in [0, 1] onto the heat ramp running
// from black over blue and red to white. Values outside the range are
// clamped. The ramp is piecewise linear across four equal segments.
func Color(value float64) color.RGBA {
	v := clamp(value)
	switch {
	case v < 0.25:
		return rgb(0, 0, 255*(v/0.25))
	case v < 0.5:
		t := (v - 0.25) / 0.25
		return rgb(255*t, 0, 255-200*t)
	case v < 0.75:
		t := (v - 0.5) / 0.25
		return rgb(255, 255*t, 0)
	default:
		t := (v - 0.75) / 0.25
		return rgb(255, 255, 255*t)
	}
}

// Normalized rescales a raw magnitude into [0, 1] relative to the given
// range. A collapsed range maps everything to 0.
func Normalized(value, min, max float64) float64 {
	if max <= min {
		return 0
	}
	return clamp((value - min) / (max - min))
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func rgb(r, g, b float64) color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(r)),
		G: uint8(math.Round(g)),
		B: uint8(math.Round(b)),
		A: 255,
	}
}
