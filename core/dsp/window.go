package dsp

import "math"

// HannWindow returns the n coefficients of a symmetric Hann window, raising
// from 0 to 1 and back. The window is defined only for n >= 2.
func HannWindow(n int) []float64 {
	if n < 2 {
		panic("hann window requires at least two samples")
	}

	result := make([]float64, n)
	coef := 2 * math.Pi / float64(n-1)
	for i := range result {
		result[i] = 0.5 * (1 - math.Cos(coef*float64(i)))
	}
	return result
}
