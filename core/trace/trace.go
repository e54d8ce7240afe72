package trace

import (
	"fmt"
	"math"
	"strconv"

	"github.com/scopelab/eegscope/core"
)

// Fixed canvas margins in pixels.
const (
	marginTop    core.Px = 20
	marginBottom core.Px = 40
	marginLeft   core.Px = 50
	marginRight  core.Px = 20
)

// Lane height floor, keeps lanes readable on small canvases.
const (
	laneMinHeight = 40
	heightReserve = 50
)

// Input carries one rendering pass worth of waveform parameters. Slice rows
// are time points, columns are channels.
type Input struct {
	Slice       [][]float64
	SampleRate  core.Hz
	Gain        float64
	StartOffset core.Seconds
	Labels      []string
	Width       core.Px
	Height      core.Px
}

// MinHeight returns the smallest canvas height for the given channel count.
// Hosts with less room scroll instead of crushing the lanes.
func MinHeight(channelCount int) core.Px {
	return core.Px(channelCount*laneMinHeight + heightReserve)
}

// Layout computes the complete waveform geometry: equal lanes per channel,
// one polyline per channel with the gain applied around the lane center, and
// the time axis ticks. The result is plain data for the drawing layer.
func Layout(in Input) core.TraceView {
	numSamples := len(in.Slice)
	channelCount := 0
	if numSamples > 0 {
		channelCount = len(in.Slice[0])
	}

	width := in.Width
	if width < marginLeft+marginRight+1 {
		width = marginLeft + marginRight + 1
	}
	height := in.Height
	if min := MinHeight(channelCount); height < min {
		height = min
	}
	plot := core.PxRect{
		Left:   marginLeft,
		Top:    marginTop,
		Right:  width - marginRight,
		Bottom: height - marginBottom,
	}

	view := core.TraceView{
		Width:       width,
		Height:      height,
		Plot:        plot,
		SampleRate:  in.SampleRate,
		StartOffset: in.StartOffset,
		NumSamples:  numSamples,
	}
	if numSamples == 0 || channelCount == 0 || in.SampleRate <= 0 {
		return view
	}

	if numSamples > 1 {
		view.XStep = float64(plot.Width()) / float64(numSamples-1)
	}

	laneHeight := plot.Height() / core.Px(channelCount)
	view.Lanes = make([]core.Lane, channelCount)
	for c := range view.Lanes {
		center := plot.Top + laneHeight*core.Px(c) + laneHeight/2
		polyline := make([]core.PxPoint, numSamples)
		for t := 0; t < numSamples; t++ {
			polyline[t] = core.PxPoint{
				X: plot.Left + core.Px(float64(t)*view.XStep),
				Y: center - core.Px(in.Slice[t][c]*in.Gain),
			}
		}
		view.Lanes[c] = core.Lane{
			Channel:  c,
			Label:    label(in.Labels, c),
			Center:   center,
			Polyline: polyline,
		}
	}

	view.Ticks = ticks(view)

	return view
}

// ValueAt maps a pointer position on the rendered view to the nearest
// sample of the slice the view was laid out for. Positions in the margins
// yield no value. The lookup reuses the geometry of the view, it never
// recomputes the layout.
func ValueAt(view core.TraceView, slice [][]float64, x, y core.Px) (core.PointerSample, bool) {
	if view.Empty() || !view.Plot.Contains(core.PxPoint{X: x, Y: y}) {
		return core.PointerSample{}, false
	}

	index := 0
	if view.XStep > 0 {
		index = int(math.Round(float64(x-view.Plot.Left) / view.XStep))
	}
	if index < 0 {
		index = 0
	}
	if index > view.NumSamples-1 {
		index = view.NumSamples - 1
	}
	if index >= len(slice) {
		return core.PointerSample{}, false
	}

	values := make([]float64, len(slice[index]))
	copy(values, slice[index])

	return core.PointerSample{
		Index:  index,
		Time:   view.StartOffset + core.Seconds(float64(index)/float64(view.SampleRate)),
		Values: values,
	}, true
}

func label(labels []string, channel int) string {
	if channel < len(labels) && labels[channel] != "" {
		return labels[channel]
	}
	return strconv.Itoa(channel + 1)
}

func ticks(view core.TraceView) []core.TimeTick {
	total := core.Seconds(float64(view.NumSamples) / float64(view.SampleRate))
	interval := tickInterval(total)

	result := make([]core.TimeTick, 0, int(total/interval)+1)
	for k := 0; ; k++ {
		sec := float64(k) * float64(interval)
		index := sec * float64(view.SampleRate)
		if index > float64(view.NumSamples-1) {
			break
		}
		t := view.StartOffset + core.Seconds(sec)
		result = append(result, core.TimeTick{
			X:     view.Plot.Left + core.Px(index*view.XStep),
			Time:  t,
			Label: fmt.Sprintf("%.0fs", float64(t)),
		})
	}
	return result
}

// tickInterval picks the tick spacing for the given slice duration.
func tickInterval(total core.Seconds) core.Seconds {
	switch {
	case total < 10:
		return 1
	case total < 30:
		return 2
	default:
		return 5
	}
}
