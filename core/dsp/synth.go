package dsp

import (
	"math"
	"math/rand"

	"github.com/scopelab/eegscope/core"
)

// Tone returns n samples of a sine wave with the given frequency, sampled at
// the given rate.
func Tone(n int, rate core.Hz, f core.Hz, amplitude float64) []float64 {
	result := make([]float64, n)
	ω := 2 * math.Pi * float64(f) / float64(rate)
	for i := range result {
		result[i] = amplitude * math.Sin(ω*float64(i))
	}
	return result
}

// Mix sums the given signals sample by sample. The result has the length of
// the shortest input.
func Mix(signals ...[]float64) []float64 {
	if len(signals) == 0 {
		return []float64{}
	}
	n := len(signals[0])
	for _, s := range signals {
		if len(s) < n {
			n = len(s)
		}
	}

	result := make([]float64, n)
	for _, s := range signals {
		for i := 0; i < n; i++ {
			result[i] += s[i]
		}
	}
	return result
}

// Noise returns n samples of uniform noise in [-amplitude, amplitude] from a
// deterministic source.
func Noise(n int, amplitude float64, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	result := make([]float64, n)
	for i := range result {
		result[i] = amplitude * (2*rng.Float64() - 1)
	}
	return result
}
