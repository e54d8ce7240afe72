package app

import (
	"log"
	"time"

	"github.com/scopelab/eegscope/core"
	"github.com/scopelab/eegscope/core/trace"
)

func newMainLoop(viewer viewerType, width, height core.Px, pixelRatio float64, settle time.Duration) *mainLoop {
	pollInterval := settle / 4
	if pollInterval < 10*time.Millisecond {
		pollInterval = 10 * time.Millisecond
	}
	result := &mainLoop{
		viewer: viewer,

		width:      width,
		height:     height,
		pixelRatio: pixelRatio,

		settleTick: time.NewTicker(pollInterval),
		command:    make(chan command, 1),

		frames:    make(chan core.Frame, 1),
		viewStale: true,
	}

	return result
}

type command func()

type mainLoop struct {
	viewer viewerType

	width      core.Px
	height     core.Px
	pixelRatio float64

	settleTick *time.Ticker
	command    chan command

	frames    chan core.Frame
	traceView core.TraceView
	viewStale bool
}

type viewerType interface {
	Config() core.RecordingConfig
	Gain() float64
	TrialDuration() int
	CurrentTrial() int
	TotalTrials() int
	ViewMode() core.ViewMode
	PagingMode() core.PagingMode
	SelectedChannel() int
	CurrentSlice() [][]float64
	StartOffset() core.Seconds
	Labels() []string
	Spectrogram() core.Spectrogram
	Annotations() []core.Annotation
	NextTrial()
	PrevTrial()
	JumpToTrial(trial int)
	SetViewMode(mode core.ViewMode)
	SetPagingMode(mode core.PagingMode)
	SelectChannel(channel int)
	EditGain(text string, now time.Time)
	EditTrialDuration(text string, now time.Time)
	Settle(now time.Time) bool
	AddAnnotation(note string, kind core.AnnotationType) (core.Annotation, bool)
	DeleteAnnotation(id string) bool
}

func (m *mainLoop) Run(stop chan struct{}) {
	defer log.Print("main loop shutdown")
	for {
		select {
		case command := <-m.command:
			command()
			m.viewStale = true
			m.pushFrame()
		case <-m.settleTick.C:
			if m.viewer.Settle(time.Now()) {
				m.viewStale = true
				m.pushFrame()
			}
		case <-stop:
			m.settleTick.Stop()
			return
		}
	}
}

// Frames with presentation data for the UI. The channel always holds the
// latest published frame, an unconsumed older one is replaced.
func (m *mainLoop) Frames() <-chan core.Frame {
	return m.frames
}

func (m *mainLoop) pushFrame() {
	frame := m.buildFrame()
	for {
		select {
		case m.frames <- frame:
			return
		default:
			select {
			case <-m.frames:
			default:
			}
		}
	}
}

func (m *mainLoop) buildFrame() core.Frame {
	config := m.viewer.Config()
	frame := core.Frame{
		ViewMode:        m.viewer.ViewMode(),
		PagingMode:      m.viewer.PagingMode(),
		CurrentTrial:    m.viewer.CurrentTrial(),
		TotalTrials:     m.viewer.TotalTrials(),
		Gain:            m.viewer.Gain(),
		TrialDuration:   m.viewer.TrialDuration(),
		SelectedChannel: m.viewer.SelectedChannel(),
		StartOffset:     m.viewer.StartOffset(),
		Patient:         config.Patient,
		Labels:          m.viewer.Labels(),
		Annotations:     m.viewer.Annotations(),
		Slice:           m.viewer.CurrentSlice(),

		CanvasWidth:  m.width,
		CanvasHeight: m.height,
		PixelRatio:   m.pixelRatio,
	}
	switch frame.ViewMode {
	case core.ViewSpectrogram:
		frame.Spectrogram = m.viewer.Spectrogram()
	default:
		frame.Trace = m.traceLayout()
	}
	return frame
}

// traceLayout returns the cached waveform geometry, it is recomputed only
// after an operation invalidated it.
func (m *mainLoop) traceLayout() core.TraceView {
	if !m.viewStale {
		return m.traceView
	}
	m.traceView = trace.Layout(trace.Input{
		Slice:       m.viewer.CurrentSlice(),
		SampleRate:  m.viewer.Config().SampleRate,
		Gain:        m.viewer.Gain(),
		StartOffset: m.viewer.StartOffset(),
		Labels:      m.viewer.Labels(),
		Width:       m.width,
		Height:      m.height,
	})
	m.viewStale = false
	return m.traceView
}

func (m *mainLoop) q(cmd command) {
	select {
	case m.command <- cmd:
	default:
		log.Print("Mainloop.q hangs")
	}
}

// NextTrial of the recording.
func (m *mainLoop) NextTrial() {
	m.q(func() {
		m.viewer.NextTrial()
	})
}

// PrevTrial of the recording.
func (m *mainLoop) PrevTrial() {
	m.q(func() {
		m.viewer.PrevTrial()
	})
}

// JumpToTrial with the given index.
func (m *mainLoop) JumpToTrial(trial int) {
	m.q(func() {
		m.viewer.JumpToTrial(trial)
	})
}

// SetViewMode of the display.
func (m *mainLoop) SetViewMode(mode core.ViewMode) {
	m.q(func() {
		m.viewer.SetViewMode(mode)
	})
}

// SetPagingMode of the display.
func (m *mainLoop) SetPagingMode(mode core.PagingMode) {
	m.q(func() {
		m.viewer.SetPagingMode(mode)
	})
}

// SelectChannel for the spectrogram.
func (m *mainLoop) SelectChannel(channel int) {
	m.q(func() {
		m.viewer.SelectChannel(channel)
	})
}

// EnterGain feeds the gain input field.
func (m *mainLoop) EnterGain(text string) {
	m.q(func() {
		m.viewer.EditGain(text, time.Now())
	})
}

// EnterTrialDuration feeds the trial duration input field.
func (m *mainLoop) EnterTrialDuration(text string) {
	m.q(func() {
		m.viewer.EditTrialDuration(text, time.Now())
	})
}

// Annotate the current trial.
func (m *mainLoop) Annotate(note string, kind core.AnnotationType) {
	m.q(func() {
		m.viewer.AddAnnotation(note, kind)
	})
}

// DeleteAnnotation with the given ID.
func (m *mainLoop) DeleteAnnotation(id string) {
	m.q(func() {
		m.viewer.DeleteAnnotation(id)
	})
}

// SetCanvasSize in Px
func (m *mainLoop) SetCanvasSize(width, height core.Px) {
	m.q(func() {
		m.width = width
		m.height = height
	})
}

// Refresh publishes a fresh frame without changing any state.
func (m *mainLoop) Refresh() {
	m.q(func() {})
}
