package core

import (
	"fmt"
)

// Hz represents a sampling rate or signal frequency in Hertz.
type Hz float64

func (f Hz) String() string {
	return fmt.Sprintf("%.2fHz", float64(f))
}

// Seconds represents a duration or an absolute time offset in seconds.
type Seconds float64

func (s Seconds) String() string {
	return fmt.Sprintf("%.2fs", float64(s))
}

// Px unit for pixels
type Px float64

// PxPoint unit for pixel coordinates
type PxPoint struct {
	X, Y Px
}

// PxRect is an axis-aligned pixel rectangle.
type PxRect struct {
	Left, Top, Right, Bottom Px
}

// Width of the rectangle.
func (r PxRect) Width() Px {
	return r.Right - r.Left
}

// Height of the rectangle.
func (r PxRect) Height() Px {
	return r.Bottom - r.Top
}

// Contains the given point.
func (r PxRect) Contains(p PxPoint) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// SampleMatrix holds one loaded recording, rows are time points, each row
// carries one amplitude value per channel.
type SampleMatrix [][]float64

// Rows is the number of time points in the matrix.
func (m SampleMatrix) Rows() int {
	return len(m)
}

// Channels is the number of channels per time point, 0 for an empty matrix.
func (m SampleMatrix) Channels() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Orientation describes the on-disk layout of a sample file.
type Orientation string

// All orientations.
const (
	RowsAreTime    Orientation = "rows"
	ColumnsAreTime Orientation = "columns"
)

// ViewMode selects what the main canvas shows.
type ViewMode string

// All view modes.
const (
	ViewRaw         ViewMode = "raw"
	ViewSpectrogram ViewMode = "spectrogram"
)

// PagingMode selects how the recording is sliced for display.
type PagingMode string

// All paging modes.
const (
	PagingPaged     PagingMode = "paged"
	PagingScrolling PagingMode = "scrolling"
)

// AnnotationType classifies an annotation.
type AnnotationType string

// All annotation types.
const (
	AnnotationNormal   AnnotationType = "normal"
	AnnotationArtifact AnnotationType = "artifact"
	AnnotationSeizure  AnnotationType = "seizure"
	AnnotationOther    AnnotationType = "other"
)

// ValidAnnotationType indicates if t is one of the known annotation types.
func ValidAnnotationType(t AnnotationType) bool {
	switch t {
	case AnnotationNormal, AnnotationArtifact, AnnotationSeizure, AnnotationOther:
		return true
	}
	return false
}

// Annotation marks one trial of the recording with a user note.
type Annotation struct {
	ID         string         `json:"id"`
	TrialIndex int            `json:"trialIndex"`
	Timestamp  Seconds        `json:"timestampSeconds"`
	Note       string         `json:"note"`
	Type       AnnotationType `json:"type"`
}

// RecordingConfig describes a loaded recording.
type RecordingConfig struct {
	SampleRate    Hz          `json:"samplingRate"`
	ChannelCount  int         `json:"channelCount"`
	TrialDuration int         `json:"trialDurationSec"`
	Orientation   Orientation `json:"orientation"`
	Patient       string      `json:"patient,omitempty"`
	Montage       string      `json:"montage,omitempty"`
	ChannelNames  []string    `json:"channelNames,omitempty"`
}

// Recording is a sample matrix in canonical rows-are-time orientation
// together with its configuration.
type Recording struct {
	Matrix SampleMatrix
	Config RecordingConfig
}

// PointsPerTrial is the number of matrix rows that one trial covers.
func PointsPerTrial(rate Hz, trialDuration int) int {
	return int(float64(rate) * float64(trialDuration))
}

// TotalTrials is the number of trials a matrix of the given length divides
// into, the last trial may be shorter than pointsPerTrial.
func TotalTrials(samples, pointsPerTrial int) int {
	if samples <= 0 || pointsPerTrial <= 0 {
		return 0
	}
	return (samples + pointsPerTrial - 1) / pointsPerTrial
}

// TrialBounds returns the half-open row range [from, to) that the given
// trial covers.
func TrialBounds(samples, pointsPerTrial, trial int) (from, to int) {
	from = trial * pointsPerTrial
	if from > samples {
		from = samples
	}
	to = from + pointsPerTrial
	if to > samples {
		to = samples
	}
	return from, to
}

// Spectrogram is the derived time-frequency representation of one channel
// slice: a pseudo-dB magnitude grid plus the label arrays and the global
// magnitude range used for normalization.
type Spectrogram struct {
	Magnitude [][]float64 // [timeBin][freqBin]
	Times     []Seconds
	Freqs     []Hz
	MinMag    float64
	MaxMag    float64

	SampleRate Hz
	WindowSize int
	Step       int
}

// Empty indicates that the input was too short to produce any time bin.
func (s Spectrogram) Empty() bool {
	return len(s.Magnitude) == 0
}

// TraceView is the complete waveform geometry of one rendering pass: lanes,
// polylines, and axis ticks in absolute pixel coordinates. It is plain data,
// the drawing layer applies it to a surface in one pass.
type TraceView struct {
	Width, Height Px
	Plot          PxRect

	XStep       float64
	SampleRate  Hz
	StartOffset Seconds
	NumSamples  int

	Lanes []Lane
	Ticks []TimeTick
}

// Empty indicates that there is nothing to draw.
func (v TraceView) Empty() bool {
	return v.NumSamples == 0 || len(v.Lanes) == 0
}

// Lane is the pixel band of one channel.
type Lane struct {
	Channel  int
	Label    string
	Center   Px
	Polyline []PxPoint
}

// TimeTick is one mark on the horizontal time axis.
type TimeTick struct {
	X     Px
	Time  Seconds
	Label string
}

// PointerSample is the sample under the pointer: its row index, absolute
// time, and the full per-channel value vector.
type PointerSample struct {
	Index  int
	Time   Seconds
	Values []float64
}

// Snapshot is the copy of the session state that is pushed to the
// persistence sink after every mutating operation.
type Snapshot struct {
	Config          RecordingConfig `json:"config"`
	Gain            float64         `json:"gain"`
	TrialDuration   int             `json:"trialDurationSec"`
	CurrentTrial    int             `json:"currentTrial"`
	ViewMode        ViewMode        `json:"viewMode"`
	PagingMode      PagingMode      `json:"pagingMode"`
	SelectedChannel int             `json:"selectedChannel"`
	Annotations     []Annotation    `json:"annotations"`
}

// Frame is one complete set of presentation data. The main loop publishes a
// frame after every executed operation, the UI only ever draws frames.
type Frame struct {
	ViewMode        ViewMode
	PagingMode      PagingMode
	CurrentTrial    int
	TotalTrials     int
	Gain            float64
	TrialDuration   int
	SelectedChannel int
	StartOffset     Seconds
	Patient         string
	Labels          []string
	Annotations     []Annotation

	Slice       [][]float64
	Trace       TraceView
	Spectrogram Spectrogram

	CanvasWidth  Px
	CanvasHeight Px
	PixelRatio   float64
}
