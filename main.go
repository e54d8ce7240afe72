package main

import (
	"flag"
	"log"
	"os"

	"github.com/scopelab/eegscope/core"
	"github.com/scopelab/eegscope/core/cfg"
	"github.com/scopelab/eegscope/core/dataset"
	"github.com/scopelab/eegscope/core/dsp"
	"github.com/scopelab/eegscope/ui/app"
)

var (
	dataFlag   = flag.String("data", "", "recording file, plain text or gzip, with an optional .json sidecar")
	demoFlag   = flag.Bool("demo", false, "view a synthetic demo recording instead of a file")
	configFlag = flag.String("config", "", "configuration file, overrides the default location")
	storeFlag  = flag.String("store", "", "session store directory, overrides the configuration")
	outFlag    = flag.String("out", "", "output directory for rendered views, overrides the configuration")
	exportFlag = flag.Bool("export", false, "render every trial into the output directory and exit")
)

func main() {
	flag.Parse()

	configuration, err := loadConfiguration()
	if err != nil {
		log.Println(err)
		configuration = cfg.Static()
	}
	if *storeFlag != "" {
		configuration.StoreDir = *storeFlag
	}
	if *outFlag != "" {
		configuration.OutDir = *outFlag
	}
	if err := os.MkdirAll(configuration.OutDir, 0755); err != nil {
		log.Fatal(err)
	}

	recording, key, err := loadRecording(configuration)
	if err != nil {
		log.Fatal(err)
	}

	if *exportFlag {
		if err := app.Export(configuration, recording, key, configuration.OutDir); err != nil {
			log.Fatal(err)
		}
		return
	}

	app.Run(configuration, recording, key, os.Stdin, os.Stdout)
}

func loadConfiguration() (cfg.Configuration, error) {
	if *configFlag != "" {
		return cfg.Load(*configFlag)
	}
	return cfg.LoadDefault()
}

func loadRecording(configuration cfg.Configuration) (core.Recording, string, error) {
	if *demoFlag {
		return demoRecording(configuration), "demo", nil
	}
	if *dataFlag == "" {
		flag.Usage()
		os.Exit(2)
	}
	fallback := core.RecordingConfig{TrialDuration: configuration.DefaultTrialDuration}
	recording, err := dataset.Load(*dataFlag, fallback)
	return recording, dataset.Key(*dataFlag), err
}

// demoRecording synthesizes one minute of two-channel data: a 10Hz alpha
// band with noise, and a 4Hz delta band with a 50Hz mains artifact.
func demoRecording(configuration cfg.Configuration) core.Recording {
	const rate = 256
	n := 60 * rate
	alpha := dsp.Mix(
		dsp.Tone(n, rate, 10, 30),
		dsp.Noise(n, 8, 1),
	)
	delta := dsp.Mix(
		dsp.Tone(n, rate, 4, 50),
		dsp.Tone(n, rate, 50, 5),
		dsp.Noise(n, 6, 2),
	)

	matrix := make(core.SampleMatrix, n)
	for i := 0; i < n; i++ {
		matrix[i] = []float64{alpha[i], delta[i]}
	}
	return core.Recording{
		Matrix: matrix,
		Config: core.RecordingConfig{
			SampleRate:    rate,
			ChannelCount:  2,
			TrialDuration: configuration.DefaultTrialDuration,
			Orientation:   core.RowsAreTime,
			Patient:       "demo",
			ChannelNames:  []string{"alpha", "delta"},
		},
	}
}
