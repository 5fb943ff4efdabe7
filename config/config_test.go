package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/framepace/pacing"
	"github.com/lixenwraith/framepace/parameter"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Pacing.Mode != pacing.Auto() {
		t.Errorf("Expected Auto mode, got %v", cfg.Pacing.Mode)
	}
	if cfg.Simulation.TickInterval.Std() != parameter.SimulationTickInterval {
		t.Errorf("Expected tick interval %v, got %v", parameter.SimulationTickInterval, cfg.Simulation.TickInterval.Std())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to validate, got %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "pace.toml", `
[pacing]
mode = "144fps"
spin_threshold = "500us"

[display]
monitors = [60000, 143856]

[simulation]
tick_interval = "20ms"

[log]
debug = true

[audio]
metronome = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Pacing.Mode != pacing.FromFramerate(144) {
		t.Errorf("Expected 144 fps mode, got %v", cfg.Pacing.Mode)
	}
	if cfg.Pacing.SpinThreshold.Std() != 500*time.Microsecond {
		t.Errorf("Expected spin threshold 500us, got %v", cfg.Pacing.SpinThreshold.Std())
	}
	if len(cfg.Display.Monitors) != 2 || cfg.Display.Monitors[1] != 143856 {
		t.Errorf("Expected two monitors, got %v", cfg.Display.Monitors)
	}
	if cfg.Simulation.TickInterval.Std() != 20*time.Millisecond {
		t.Errorf("Expected tick interval 20ms, got %v", cfg.Simulation.TickInterval.Std())
	}
	if !cfg.Log.Debug || !cfg.Audio.Metronome {
		t.Errorf("Expected debug and metronome enabled, got %+v %+v", cfg.Log, cfg.Audio)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "pace.yaml", `
pacing:
  mode: off
display:
  monitors: [75000]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Pacing.Mode != pacing.Off() {
		t.Errorf("Expected Off mode, got %v", cfg.Pacing.Mode)
	}
	if len(cfg.Display.Monitors) != 1 || cfg.Display.Monitors[0] != 75000 {
		t.Errorf("Expected one 75Hz monitor, got %v", cfg.Display.Monitors)
	}
	// Unset sections keep defaults
	if cfg.Simulation.TickInterval.Std() != parameter.SimulationTickInterval {
		t.Errorf("Expected default tick interval, got %v", cfg.Simulation.TickInterval.Std())
	}
}

func TestLoadFixedDuration(t *testing.T) {
	path := writeFile(t, "pace.yml", "pacing:\n  mode: 16ms\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d, ok := cfg.Pacing.Mode.Frametime(); !ok || d != 16*time.Millisecond {
		t.Errorf("Expected fixed 16ms, got %v", cfg.Pacing.Mode)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad mode", "a.toml", "[pacing]\nmode = \"fast\"\n"},
		{"zero framerate", "b.toml", "[pacing]\nmode = \"0fps\"\n"},
		{"spin too long", "c.yaml", "pacing:\n  spin_threshold: 1s\n"},
		{"zero tick", "d.yaml", "simulation:\n  tick_interval: 0s\n"},
		{"bad duration", "e.toml", "[simulation]\ntick_interval = \"soon\"\n"},
		{"malformed toml", "f.toml", "[pacing\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.file, tt.content)); err == nil {
				t.Errorf("Expected error for %s", tt.name)
			}
		})
	}
}

func TestLoadUnknownFormat(t *testing.T) {
	_, err := Load(writeFile(t, "pace.json", "{}"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}
