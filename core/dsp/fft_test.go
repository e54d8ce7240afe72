package dsp

import (
	"fmt"
	"math"
	"testing"

	"github.com/mjibson/go-dsp/fft"
	"github.com/stretchr/testify/assert"
)

func TestFFTMatchesReference(t *testing.T) {
	for blockSize := 2; blockSize <= 1024; blockSize *= 2 {
		t.Run(fmt.Sprintf("%d", blockSize), func(t *testing.T) {
			noise := Noise(blockSize, 1.0, int64(blockSize))
			samples := make([]complex128, blockSize)
			for i, v := range noise {
				samples[i] = complex(v, 0)
			}

			actual := FFT(samples)
			expected := fft.FFT(samples)

			assert.Equal(t, len(expected), len(actual))
			for i := range expected {
				assert.InDelta(t, real(expected[i]), real(actual[i]), 1e-8, "re %d", i)
				assert.InDelta(t, imag(expected[i]), imag(actual[i]), 1e-8, "im %d", i)
			}
		})
	}
}

func TestFFTRoundTrip(t *testing.T) {
	for blockSize := 2; blockSize <= 512; blockSize *= 2 {
		t.Run(fmt.Sprintf("%d", blockSize), func(t *testing.T) {
			noise := Noise(blockSize, 1.0, 42)
			samples := make([]complex128, blockSize)
			for i, v := range noise {
				samples[i] = complex(v, 0)
			}

			actual := IFFT(FFT(samples))

			for i := range samples {
				assert.InDelta(t, real(samples[i]), real(actual[i]), 1e-9, "re %d", i)
				assert.InDelta(t, imag(samples[i]), imag(actual[i]), 1e-9, "im %d", i)
			}
		})
	}
}

func TestFFTTonePeak(t *testing.T) {
	blockSize := 16

	for f := -0.5; f <= 0.5; f += 0.01 {
		t.Run(fmt.Sprintf("%.2f", f), func(t *testing.T) {
			samples := tone(blockSize, f)
			spectrum := FFT(samples)
			magnitudes := make([]float64, len(spectrum))
			for i, c := range spectrum {
				magnitudes[i] = math.Sqrt(real(c)*real(c) + imag(c)*imag(c))
			}

			peak := peakIndex(f, blockSize)
			left := peak - 1
			if left < 0 {
				left = blockSize + left
			}
			right := (peak + 1) % blockSize
			for i, m := range magnitudes {
				if i == left || i == right {
					assert.Truef(t, (magnitudes[peak] > m) || math.Abs(m-magnitudes[peak]) < 1.0e-9,
						"close %d:%f !< %d:%f", i, m, peak, magnitudes[peak])
				} else if i != peak {
					assert.Truef(t, magnitudes[peak] > m, "%d:%f !< %d:%f", i, m, peak, magnitudes[peak])
				}
			}
		})
	}
}

func TestFFTRejectsOddLength(t *testing.T) {
	assert.Panics(t, func() {
		FFT(make([]complex128, 3))
	})
}

func BenchmarkFFT(b *testing.B) {
	samples := make([]complex128, 1024)
	for i, v := range Noise(len(samples), 1.0, 1) {
		samples[i] = complex(v, 0)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FFT(samples)
	}
}

func peakIndex(frequencyRate float64, blockSize int) int {
	peak := int(math.Round(frequencyRate * float64(blockSize)))
	if peak < 0 {
		return blockSize + peak
	}
	return peak % blockSize
}

func tone(blockSize int, frequencyRate float64) []complex128 {
	result := make([]complex128, blockSize)

	ω := 2 * math.Pi * frequencyRate
	for i := range result {
		t := float64(i)
		result[i] = complex(math.Cos(ω*t), math.Sin(ω*t))
	}

	return result
}
