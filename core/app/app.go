package app

import (
	"log"
	"sync"

	"github.com/pkg/errors"

	"github.com/scopelab/eegscope/core"
	"github.com/scopelab/eegscope/core/cfg"
	"github.com/scopelab/eegscope/core/store"
	"github.com/scopelab/eegscope/core/viewer"
)

// New returns the application controller for the given recording. The key
// identifies the session in the store.
func New(configuration cfg.Configuration, recording core.Recording, key string) *Controller {
	return &Controller{
		configuration: configuration,
		recording:     recording,
		key:           key,
	}
}

// Controller for the application.
type Controller struct {
	configuration cfg.Configuration
	recording     core.Recording
	key           string

	*mainLoop

	done         chan struct{}
	subProcesses *sync.WaitGroup
}

// Startup the application.
func (c *Controller) Startup() {
	c.done = make(chan struct{})
	c.subProcesses = new(sync.WaitGroup)

	trialDuration := c.recording.Config.TrialDuration
	if trialDuration < 1 {
		trialDuration = c.configuration.DefaultTrialDuration
	}
	v := viewer.New(c.recording, c.configuration.DefaultGain, trialDuration, c.configuration.Settle())

	sessionStore, err := store.New(c.configuration.StoreDir)
	if err != nil {
		log.Fatal(err)
	}
	snapshot, err := sessionStore.Load(c.key)
	switch {
	case err == nil:
		v.Restore(snapshot)
	case errors.Is(err, store.ErrNotFound):
	default:
		log.Printf("cannot restore session %s: %v", c.key, err)
	}
	v.OnSnapshot(func(snapshot core.Snapshot) {
		if err := sessionStore.Save(c.key, snapshot); err != nil {
			log.Printf("cannot persist session %s: %v", c.key, err)
		}
	})

	c.mainLoop = newMainLoop(v,
		core.Px(c.configuration.CanvasWidth),
		core.Px(c.configuration.CanvasHeight),
		c.configuration.PixelRatio,
		c.configuration.Settle(),
	)
	c.subProcesses.Add(1)
	go func() {
		defer c.subProcesses.Done()
		c.mainLoop.Run(c.done)
	}()
	c.Refresh()
}

// Shutdown the application.
func (c *Controller) Shutdown() {
	close(c.done)
	c.subProcesses.Wait()
}
