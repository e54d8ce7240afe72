package dsp

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/dsputils"
)

// FFT returns the discrete Fourier transform of the given samples as a
// radix-2 Cooley-Tukey transform, iterative with an in-place bit-reversal
// permutation. The input length must be a power of two, callers zero-pad.
func FFT(samples []complex128) []complex128 {
	n := len(samples)
	if !dsputils.IsPowerOf2(n) {
		panic("fft length must be a power of two")
	}

	result := make([]complex128, n)
	copy(result, samples)
	if n < 2 {
		return result
	}

	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			result[i], result[j] = result[j], result[i]
		}
	}

	for length := 2; length <= n; length <<= 1 {
		ω := -2 * math.Pi / float64(length)
		wl := complex(math.Cos(ω), math.Sin(ω))
		for start := 0; start < n; start += length {
			w := complex(1, 0)
			half := length / 2
			for k := start; k < start+half; k++ {
				u := result[k]
				v := result[k+half] * w
				result[k] = u + v
				result[k+half] = u - v
				w *= wl
			}
		}
	}

	return result
}

// IFFT returns the inverse discrete Fourier transform using the conjugate
// method. The input length must be a power of two.
func IFFT(spectrum []complex128) []complex128 {
	n := len(spectrum)
	conjugated := make([]complex128, n)
	for i, v := range spectrum {
		conjugated[i] = cmplx.Conj(v)
	}

	transformed := FFT(conjugated)

	scale := complex(1/float64(n), 0)
	result := make([]complex128, n)
	for i, v := range transformed {
		result[i] = cmplx.Conj(v) * scale
	}
	return result
}
