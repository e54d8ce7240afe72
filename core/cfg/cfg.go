package cfg

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// Configuration carries the application settings of the viewer.
type Configuration struct {
	DefaultGain          float64 `json:"defaultGain"`
	DefaultTrialDuration int     `json:"defaultTrialDurationSec"`
	SettleMs             int     `json:"settleMs"`
	CanvasWidth          int     `json:"canvasWidth"`
	CanvasHeight         int     `json:"canvasHeight"`
	PixelRatio           float64 `json:"pixelRatio"`
	StoreDir             string  `json:"storeDir"`
	OutDir               string  `json:"outDir"`
}

// Settle is the debounce interval for free-text inputs.
func (c Configuration) Settle() time.Duration {
	return time.Duration(c.SettleMs) * time.Millisecond
}

// Static returns the built-in default configuration.
func Static() Configuration {
	return Configuration{
		DefaultGain:          1.0,
		DefaultTrialDuration: 5,
		SettleMs:             500,
		CanvasWidth:          1200,
		CanvasHeight:         800,
		PixelRatio:           1.0,
		StoreDir:             "sessions",
		OutDir:               ".",
	}
}

// Load reads the configuration from the given JSON file. Missing fields keep
// their static default.
func Load(path string) (Configuration, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, errors.Wrap(err, "cannot read configuration")
	}

	result := Static()
	if err := json.Unmarshal(raw, &result); err != nil {
		return Configuration{}, errors.Wrapf(err, "cannot parse configuration %s", path)
	}
	return result.normalized(), nil
}

// LoadDefault reads the configuration from the user's configuration
// directory. A missing file yields the static defaults.
func LoadDefault() (Configuration, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return Static(), nil
	}
	path := filepath.Join(dir, "eegscope", "conf.json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Static(), nil
	}
	return Load(path)
}

func (c Configuration) normalized() Configuration {
	defaults := Static()
	if c.DefaultTrialDuration < 1 {
		c.DefaultTrialDuration = defaults.DefaultTrialDuration
	}
	if c.SettleMs < 1 {
		c.SettleMs = defaults.SettleMs
	}
	if c.CanvasWidth < 100 {
		c.CanvasWidth = defaults.CanvasWidth
	}
	if c.CanvasHeight < 100 {
		c.CanvasHeight = defaults.CanvasHeight
	}
	if c.PixelRatio <= 0 {
		c.PixelRatio = defaults.PixelRatio
	}
	return c
}
