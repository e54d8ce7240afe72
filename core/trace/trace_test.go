package trace

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scopelab/eegscope/core"
)

// testSlice returns a samples by channels matrix filled through value.
func testSlice(samples, channels int, value func(t, c int) float64) [][]float64 {
	result := make([][]float64, samples)
	for t := range result {
		row := make([]float64, channels)
		for c := range row {
			row[c] = value(t, c)
		}
		result[t] = row
	}
	return result
}

func flat(t, c int) float64 { return 0 }

// 569 = 50 + 499 + 20, one pixel per sample step for 500 samples.
const testWidth = core.Px(569)

func TestLayoutGeometry(t *testing.T) {
	slice := testSlice(500, 2, func(ti, c int) float64 {
		if ti == 0 && c == 0 {
			return 1.0
		}
		return 0
	})

	view := Layout(Input{
		Slice:      slice,
		SampleRate: 100,
		Gain:       2.0,
		Labels:     []string{"Fp1", "Fp2"},
		Width:      testWidth,
		Height:     400,
	})

	assert.Equal(t, core.PxRect{Left: 50, Top: 20, Right: 549, Bottom: 360}, view.Plot)
	assert.InDelta(t, 1.0, view.XStep, 1e-12)
	assert.Equal(t, 500, view.NumSamples)

	assert.Equal(t, 2, len(view.Lanes))
	assert.Equal(t, "Fp1", view.Lanes[0].Label)
	assert.Equal(t, "Fp2", view.Lanes[1].Label)
	assert.InDelta(t, 105, float64(view.Lanes[0].Center), 1e-12)
	assert.InDelta(t, 275, float64(view.Lanes[1].Center), 1e-12)

	assert.Equal(t, 500, len(view.Lanes[0].Polyline))
	assert.InDelta(t, 50, float64(view.Lanes[0].Polyline[0].X), 1e-12)
	assert.InDelta(t, 103, float64(view.Lanes[0].Polyline[0].Y), 1e-12, "gain must scale around the lane center")
	assert.InDelta(t, 51, float64(view.Lanes[0].Polyline[1].X), 1e-12)
	assert.InDelta(t, 105, float64(view.Lanes[0].Polyline[1].Y), 1e-12)
}

func TestLayoutNumericLabelFallback(t *testing.T) {
	view := Layout(Input{
		Slice:      testSlice(10, 3, flat),
		SampleRate: 100,
		Gain:       1.0,
		Width:      200,
		Height:     400,
	})

	assert.Equal(t, "1", view.Lanes[0].Label)
	assert.Equal(t, "2", view.Lanes[1].Label)
	assert.Equal(t, "3", view.Lanes[2].Label)
}

func TestLayoutMinHeight(t *testing.T) {
	view := Layout(Input{
		Slice:      testSlice(100, 8, flat),
		SampleRate: 100,
		Gain:       1.0,
		Width:      400,
		Height:     100,
	})

	assert.Equal(t, core.Px(8*40+50), view.Height, "small hosts scroll, lanes are not crushed")
	assert.Equal(t, core.Px(370), MinHeight(8))
}

func TestLayoutTickIntervals(t *testing.T) {
	tests := []struct {
		samples  int
		interval core.Seconds
		count    int
	}{
		{500, 1, 5},
		{900, 1, 9},
		{1000, 2, 5},
		{2000, 2, 10},
		{6000, 5, 12},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			view := Layout(Input{
				Slice:      testSlice(test.samples, 1, flat),
				SampleRate: 100,
				Gain:       1.0,
				Width:      800,
				Height:     200,
			})

			assert.Equal(t, test.count, len(view.Ticks))
			if len(view.Ticks) > 1 {
				assert.Equal(t, test.interval, view.Ticks[1].Time-view.Ticks[0].Time)
			}
		})
	}
}

func TestLayoutTickLabelsUseAbsoluteTime(t *testing.T) {
	view := Layout(Input{
		Slice:       testSlice(500, 1, flat),
		SampleRate:  100,
		Gain:        1.0,
		StartOffset: 120,
		Width:       testWidth,
		Height:      200,
	})

	assert.Equal(t, 5, len(view.Ticks))
	assert.Equal(t, core.Seconds(120), view.Ticks[0].Time)
	assert.Equal(t, "120s", view.Ticks[0].Label)
	assert.Equal(t, "124s", view.Ticks[4].Label)
	assert.InDelta(t, 450, float64(view.Ticks[4].X), 1e-12)
}

func TestValueAt(t *testing.T) {
	slice := testSlice(500, 3, func(ti, c int) float64 {
		return float64(ti*10 + c)
	})
	view := Layout(Input{
		Slice:      slice,
		SampleRate: 100,
		Gain:       7.0,
		Width:      testWidth,
		Height:     400,
	})

	sample, ok := ValueAt(view, slice, 300, 100)

	assert.True(t, ok)
	assert.Equal(t, 250, sample.Index)
	assert.Equal(t, core.Seconds(2.5), sample.Time)
	assert.Equal(t, []float64{2500, 2501, 2502}, sample.Values, "values are raw, the gain only affects pixels")
}

func TestValueAtRoundsToNearestSample(t *testing.T) {
	slice := testSlice(500, 1, flat)
	view := Layout(Input{Slice: slice, SampleRate: 100, Gain: 1, Width: testWidth, Height: 200})

	sample, ok := ValueAt(view, slice, 300.4, 100)
	assert.True(t, ok)
	assert.Equal(t, 250, sample.Index)

	sample, ok = ValueAt(view, slice, 300.6, 100)
	assert.True(t, ok)
	assert.Equal(t, 251, sample.Index)
}

func TestValueAtInMargins(t *testing.T) {
	slice := testSlice(500, 2, flat)
	view := Layout(Input{Slice: slice, SampleRate: 100, Gain: 1, Width: testWidth, Height: 400})

	tests := []struct {
		name string
		x, y core.Px
	}{
		{"left margin", 10, 100},
		{"right margin", 565, 100},
		{"top margin", 300, 5},
		{"bottom margin", 300, 399},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, ok := ValueAt(view, slice, test.x, test.y)
			assert.False(t, ok)
		})
	}
}

func TestValueAtSingleSample(t *testing.T) {
	slice := [][]float64{{42}}
	view := Layout(Input{Slice: slice, SampleRate: 100, Gain: 1, Width: testWidth, Height: 200, StartOffset: 30})

	sample, ok := ValueAt(view, slice, 50, 100)

	assert.True(t, ok)
	assert.Equal(t, 0, sample.Index)
	assert.Equal(t, core.Seconds(30), sample.Time)
	assert.Equal(t, []float64{42}, sample.Values)
}

func TestLayoutEmptySlice(t *testing.T) {
	view := Layout(Input{Slice: nil, SampleRate: 100, Gain: 1, Width: 400, Height: 200})

	assert.True(t, view.Empty())

	_, ok := ValueAt(view, nil, 100, 100)
	assert.False(t, ok)
}
