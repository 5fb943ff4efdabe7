// Package config loads frame pacing settings from TOML or YAML files
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/framepace/pacing"
	"github.com/lixenwraith/framepace/parameter"
)

// ErrUnknownFormat is returned for config files that are neither TOML nor YAML
var ErrUnknownFormat = errors.New("config: unknown file format")

// Duration is a time.Duration read from a Go duration string such as "50ms"
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("config: parse duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Pacing section
type Pacing struct {
	Mode          pacing.Mode `toml:"mode" yaml:"mode"`
	SpinThreshold Duration    `toml:"spin_threshold" yaml:"spin_threshold"`
}

// Display section; Monitors lists refresh rates in millihertz for the static source
type Display struct {
	Monitors []uint32 `toml:"monitors" yaml:"monitors"`
}

// Simulation section
type Simulation struct {
	TickInterval Duration `toml:"tick_interval" yaml:"tick_interval"`
}

// Log section
type Log struct {
	Debug bool `toml:"debug" yaml:"debug"`
}

// Audio section
type Audio struct {
	Metronome bool `toml:"metronome" yaml:"metronome"`
}

// Config is the complete demo configuration
type Config struct {
	Pacing     Pacing     `toml:"pacing" yaml:"pacing"`
	Display    Display    `toml:"display" yaml:"display"`
	Simulation Simulation `toml:"simulation" yaml:"simulation"`
	Log        Log        `toml:"log" yaml:"log"`
	Audio      Audio      `toml:"audio" yaml:"audio"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Pacing: Pacing{
			Mode:          pacing.Auto(),
			SpinThreshold: Duration(parameter.DefaultSpinThreshold),
		},
		Display: Display{
			Monitors: []uint32{60000},
		},
		Simulation: Simulation{
			TickInterval: Duration(parameter.SimulationTickInterval),
		},
	}
}

// Load reads path over the defaults, choosing the decoder by extension
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("config: decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: decode %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges that decoding cannot
func (c Config) Validate() error {
	if err := c.Pacing.Mode.Validate(); err != nil {
		return err
	}
	if c.Pacing.SpinThreshold < 0 || c.Pacing.SpinThreshold.Std() > parameter.MaxSpinThreshold {
		return fmt.Errorf("spin_threshold %v outside [0, %v]", c.Pacing.SpinThreshold.Std(), parameter.MaxSpinThreshold)
	}
	if c.Simulation.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %v", c.Simulation.TickInterval.Std())
	}
	return nil
}
