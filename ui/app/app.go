package app

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/scopelab/eegscope/core"
	coreapp "github.com/scopelab/eegscope/core/app"
	"github.com/scopelab/eegscope/core/cfg"
)

// Run the application UI. It reads commands from in until EOF or quit and
// mirrors the current view as a PNG in the output directory.
func Run(configuration cfg.Configuration, recording core.Recording, key string, in io.Reader, out io.Writer) {
	c := coreapp.New(configuration, recording, key)
	c.Startup()
	defer c.Shutdown()

	newRepl(c, out, configuration.OutDir, key).run(in)
}

// Export restores the session once and renders every trial of its current
// view into the given directory.
func Export(configuration cfg.Configuration, recording core.Recording, key string, dir string) error {
	c := coreapp.New(configuration, recording, key)
	c.Startup()
	defer c.Shutdown()

	frame, err := nextFrame(c.Frames())
	if err != nil {
		return err
	}
	if frame.PagingMode == core.PagingScrolling {
		return exportFrame(frame, filepath.Join(dir, key+".png"))
	}

	for trial := 0; trial < frame.TotalTrials; trial++ {
		c.JumpToTrial(trial)
		frame, err = nextFrame(c.Frames())
		if err != nil {
			return err
		}
		path := filepath.Join(dir, fmt.Sprintf("%s-trial%03d.png", key, trial+1))
		if err := exportFrame(frame, path); err != nil {
			return err
		}
	}
	return nil
}

func nextFrame(frames <-chan core.Frame) (core.Frame, error) {
	select {
	case frame := <-frames:
		return frame, nil
	case <-time.After(5 * time.Second):
		return core.Frame{}, errors.New("no frame from main loop")
	}
}

// controller is the backend used by this UI.
type controller interface {
	Frames() <-chan core.Frame
	NextTrial()
	PrevTrial()
	JumpToTrial(trial int)
	SetViewMode(mode core.ViewMode)
	SetPagingMode(mode core.PagingMode)
	SelectChannel(channel int)
	EnterGain(text string)
	EnterTrialDuration(text string)
	Annotate(note string, kind core.AnnotationType)
	DeleteAnnotation(id string)
}
