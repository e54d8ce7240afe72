package viewer

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scopelab/eegscope/core"
	"github.com/scopelab/eegscope/core/debounce"
	"github.com/scopelab/eegscope/core/dsp"
	"github.com/scopelab/eegscope/core/montage"
)

// Viewer owns the complete view state of one loaded recording: the current
// trial, the view and paging modes, the selected channel, the committed
// display parameters, and the annotation list. All mutation goes through its
// operations, external readers receive copies through the snapshot
// callbacks.
type Viewer struct {
	matrix core.SampleMatrix
	config core.RecordingConfig

	gain            float64
	trialDuration   int
	currentTrial    int
	viewMode        core.ViewMode
	pagingMode      core.PagingMode
	selectedChannel int

	annotations []core.Annotation

	engine        dsp.Engine
	currentSlice  [][]float64
	channelSignal []float64
	sliceStart    int

	gainInput     *debounce.Input
	durationInput *debounce.Input

	snapshotCallbacks []func(core.Snapshot)
}

// New returns a viewer for the given recording, showing trial 0 of the raw
// view in paged mode.
func New(recording core.Recording, gain float64, trialDuration int, settle time.Duration) *Viewer {
	if math.IsNaN(gain) || math.IsInf(gain, 0) {
		gain = 1.0
	}
	if trialDuration < 1 {
		trialDuration = 5
	}
	result := &Viewer{
		matrix:        recording.Matrix,
		config:        recording.Config,
		gain:          gain,
		trialDuration: trialDuration,
		viewMode:      core.ViewRaw,
		pagingMode:    core.PagingPaged,
		gainInput:     debounce.New(settle),
		durationInput: debounce.New(settle),
	}
	result.refreshSlice()
	return result
}

// OnSnapshot registers a callback that receives a state snapshot after every
// state-changing operation.
func (v *Viewer) OnSnapshot(callback func(core.Snapshot)) {
	v.snapshotCallbacks = append(v.snapshotCallbacks, callback)
}

// Config of the loaded recording.
func (v *Viewer) Config() core.RecordingConfig {
	return v.config
}

// Gain is the committed vertical scale factor.
func (v *Viewer) Gain() float64 {
	return v.gain
}

// TrialDuration is the committed trial length in seconds.
func (v *Viewer) TrialDuration() int {
	return v.trialDuration
}

// CurrentTrial is the zero-based index of the shown trial.
func (v *Viewer) CurrentTrial() int {
	return v.currentTrial
}

// TotalTrials is the number of trials the recording divides into at the
// committed trial duration.
func (v *Viewer) TotalTrials() int {
	return core.TotalTrials(v.matrix.Rows(), core.PointsPerTrial(v.config.SampleRate, v.trialDuration))
}

// ViewMode of the viewer.
func (v *Viewer) ViewMode() core.ViewMode {
	return v.viewMode
}

// PagingMode of the viewer.
func (v *Viewer) PagingMode() core.PagingMode {
	return v.pagingMode
}

// SelectedChannel is the zero-based channel shown in spectrogram mode.
func (v *Viewer) SelectedChannel() int {
	return v.selectedChannel
}

// CurrentSlice returns the matrix rows of the current view: one trial in
// paged mode, the whole matrix in scrolling mode.
func (v *Viewer) CurrentSlice() [][]float64 {
	return v.currentSlice
}

// SelectedSignal returns the selected channel of the current slice. The
// returned slice stays identical between state changes, it is the memo key
// of the spectrogram engine.
func (v *Viewer) SelectedSignal() []float64 {
	return v.channelSignal
}

// StartOffset is the absolute time of the first row of the current slice.
func (v *Viewer) StartOffset() core.Seconds {
	if v.config.SampleRate <= 0 {
		return 0
	}
	return core.Seconds(float64(v.sliceStart) / float64(v.config.SampleRate))
}

// Labels returns the display label per channel: declared channel names
// first, then the montage of the recording, then plain numbers.
func (v *Viewer) Labels() []string {
	if len(v.config.ChannelNames) > 0 {
		return v.config.ChannelNames
	}
	m := montage.Standard.ByName(montage.Name(v.config.Montage))
	labels := make([]string, v.matrix.Channels())
	for c := range labels {
		labels[c] = m.Label(c)
	}
	return labels
}

// Spectrogram of the selected channel of the current slice. The computation
// is memoized on the slice identity and recomputed only after the slice, the
// paging mode, or the selected channel changed.
func (v *Viewer) Spectrogram() core.Spectrogram {
	return v.engine.Spectrogram(v.channelSignal, v.config.SampleRate, dsp.DefaultWindowSize, dsp.DefaultOverlap)
}

// NextTrial moves to the next trial, clamped to the last one. Only
// meaningful in paged mode.
func (v *Viewer) NextTrial() {
	if v.pagingMode != core.PagingPaged {
		return
	}
	if v.currentTrial >= v.TotalTrials()-1 {
		return
	}
	v.currentTrial++
	v.refreshSlice()
	v.emitSnapshot()
}

// PrevTrial moves to the previous trial, clamped to trial 0. Only meaningful
// in paged mode.
func (v *Viewer) PrevTrial() {
	if v.pagingMode != core.PagingPaged {
		return
	}
	if v.currentTrial <= 0 {
		return
	}
	v.currentTrial--
	v.refreshSlice()
	v.emitSnapshot()
}

// JumpToTrial moves directly to the given trial, clamped to the valid range.
// Only defined in paged mode.
func (v *Viewer) JumpToTrial(trial int) {
	if v.pagingMode != core.PagingPaged {
		return
	}
	last := v.TotalTrials() - 1
	if last < 0 {
		last = 0
	}
	if trial < 0 {
		trial = 0
	}
	if trial > last {
		trial = last
	}
	if trial == v.currentTrial {
		return
	}
	v.currentTrial = trial
	v.refreshSlice()
	v.emitSnapshot()
}

// SetViewMode switches between the raw waveform and the spectrogram.
func (v *Viewer) SetViewMode(mode core.ViewMode) {
	if mode != core.ViewRaw && mode != core.ViewSpectrogram {
		return
	}
	if mode == v.viewMode {
		return
	}
	v.viewMode = mode
	v.emitSnapshot()
}

// SetPagingMode switches between paged and scrolling presentation.
func (v *Viewer) SetPagingMode(mode core.PagingMode) {
	if mode != core.PagingPaged && mode != core.PagingScrolling {
		return
	}
	if mode == v.pagingMode {
		return
	}
	v.pagingMode = mode
	v.clampTrial()
	v.refreshSlice()
	v.emitSnapshot()
}

// SelectChannel picks the channel shown in spectrogram mode, clamped to the
// channels of the recording.
func (v *Viewer) SelectChannel(channel int) {
	last := v.matrix.Channels() - 1
	if last < 0 {
		last = 0
	}
	if channel < 0 {
		channel = 0
	}
	if channel > last {
		channel = last
	}
	if channel == v.selectedChannel {
		return
	}
	v.selectedChannel = channel
	v.extractChannel()
	v.emitSnapshot()
}

// EditGain records a keystroke of the gain input. The value is committed by
// Settle once it stayed stable for the settle interval.
func (v *Viewer) EditGain(text string, now time.Time) {
	v.gainInput.Set(text, now)
}

// EditTrialDuration records a keystroke of the trial duration input. The
// value is committed by Settle once it stayed stable for the settle
// interval.
func (v *Viewer) EditTrialDuration(text string, now time.Time) {
	v.durationInput.Set(text, now)
}

// Settle commits pending input values whose settle interval has passed.
// Invalid input leaves the committed value in effect. It reports whether any
// state changed.
func (v *Viewer) Settle(now time.Time) bool {
	changed := false
	if text, ok := v.gainInput.Poll(now); ok {
		if gain, valid := parseGain(text); valid && gain != v.gain {
			v.gain = gain
			changed = true
		}
	}
	if text, ok := v.durationInput.Poll(now); ok {
		if duration, valid := parseTrialDuration(text); valid && duration != v.trialDuration {
			v.trialDuration = duration
			v.clampTrial()
			v.refreshSlice()
			changed = true
		}
	}
	if changed {
		v.emitSnapshot()
	}
	return changed
}

// AddAnnotation creates an annotation bound to the current trial with a
// timestamp of trial index times trial duration. Empty or whitespace-only
// notes and unknown types are rejected.
func (v *Viewer) AddAnnotation(note string, kind core.AnnotationType) (core.Annotation, bool) {
	trimmed := strings.TrimSpace(note)
	if trimmed == "" {
		return core.Annotation{}, false
	}
	if !core.ValidAnnotationType(kind) {
		return core.Annotation{}, false
	}

	annotation := core.Annotation{
		ID:         uuid.NewString(),
		TrialIndex: v.currentTrial,
		Timestamp:  core.Seconds(v.currentTrial * v.trialDuration),
		Note:       trimmed,
		Type:       kind,
	}
	v.annotations = append(v.annotations, annotation)
	v.emitSnapshot()
	return annotation, true
}

// DeleteAnnotation removes the annotation with the given ID and reports
// whether it existed.
func (v *Viewer) DeleteAnnotation(id string) bool {
	for i, annotation := range v.annotations {
		if annotation.ID != id {
			continue
		}
		v.annotations = append(v.annotations[:i], v.annotations[i+1:]...)
		v.emitSnapshot()
		return true
	}
	return false
}

// Annotations returns a copy of the annotation list ordered by trial index.
func (v *Viewer) Annotations() []core.Annotation {
	result := make([]core.Annotation, len(v.annotations))
	copy(result, v.annotations)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TrialIndex < result[j].TrialIndex
	})
	return result
}

// Snapshot returns a copy of the persistable session state.
func (v *Viewer) Snapshot() core.Snapshot {
	annotations := make([]core.Annotation, len(v.annotations))
	copy(annotations, v.annotations)
	return core.Snapshot{
		Config:          v.config,
		Gain:            v.gain,
		TrialDuration:   v.trialDuration,
		CurrentTrial:    v.currentTrial,
		ViewMode:        v.viewMode,
		PagingMode:      v.pagingMode,
		SelectedChannel: v.selectedChannel,
		Annotations:     annotations,
	}
}

// Restore applies a previously emitted snapshot, dropping values that are no
// longer valid for the loaded recording. It does not emit a snapshot itself.
func (v *Viewer) Restore(snapshot core.Snapshot) {
	if gain, valid := validGain(snapshot.Gain); valid {
		v.gain = gain
	}
	if snapshot.TrialDuration > 0 {
		v.trialDuration = snapshot.TrialDuration
	}
	if snapshot.ViewMode == core.ViewRaw || snapshot.ViewMode == core.ViewSpectrogram {
		v.viewMode = snapshot.ViewMode
	}
	if snapshot.PagingMode == core.PagingPaged || snapshot.PagingMode == core.PagingScrolling {
		v.pagingMode = snapshot.PagingMode
	}

	v.currentTrial = snapshot.CurrentTrial
	v.clampTrial()

	v.selectedChannel = snapshot.SelectedChannel
	if last := v.matrix.Channels() - 1; v.selectedChannel > last {
		v.selectedChannel = last
	}
	if v.selectedChannel < 0 {
		v.selectedChannel = 0
	}

	v.annotations = make([]core.Annotation, 0, len(snapshot.Annotations))
	for _, annotation := range snapshot.Annotations {
		if strings.TrimSpace(annotation.Note) == "" {
			continue
		}
		v.annotations = append(v.annotations, annotation)
	}

	v.refreshSlice()
}

func (v *Viewer) refreshSlice() {
	switch v.pagingMode {
	case core.PagingScrolling:
		v.sliceStart = 0
		v.currentSlice = v.matrix
	default:
		pointsPerTrial := core.PointsPerTrial(v.config.SampleRate, v.trialDuration)
		from, to := core.TrialBounds(v.matrix.Rows(), pointsPerTrial, v.currentTrial)
		v.sliceStart = from
		v.currentSlice = v.matrix[from:to]
	}
	v.extractChannel()
}

func (v *Viewer) extractChannel() {
	signal := make([]float64, len(v.currentSlice))
	for t, row := range v.currentSlice {
		if v.selectedChannel < len(row) {
			signal[t] = row[v.selectedChannel]
		}
	}
	v.channelSignal = signal
	v.engine.Invalidate()
}

func (v *Viewer) clampTrial() {
	last := v.TotalTrials() - 1
	if last < 0 {
		last = 0
	}
	if v.currentTrial > last {
		v.currentTrial = last
	}
	if v.currentTrial < 0 {
		v.currentTrial = 0
	}
}

func (v *Viewer) emitSnapshot() {
	snapshot := v.Snapshot()
	for _, callback := range v.snapshotCallbacks {
		callback(snapshot)
	}
}

func parseGain(text string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, false
	}
	return validGain(value)
}

func validGain(value float64) (float64, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

func parseTrialDuration(text string) (int, bool) {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || value < 1 {
		return 0, false
	}
	return value, true
}
