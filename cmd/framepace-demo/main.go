package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/lixenwraith/framepace/audio"
	"github.com/lixenwraith/framepace/clock"
	"github.com/lixenwraith/framepace/config"
	"github.com/lixenwraith/framepace/engine"
	"github.com/lixenwraith/framepace/pacing"
)

type options struct {
	configPath string
	mode       string
	refresh    []float64
	spin       time.Duration
	debug      bool
	click      bool
	headless   bool
	frames     int
	work       time.Duration
}

func parseFlags(args []string) (options, *pflag.FlagSet, error) {
	var opts options
	fs := pflag.NewFlagSet("framepace-demo", pflag.ContinueOnError)
	fs.StringVarP(&opts.configPath, "config", "c", "", "config file (.toml, .yaml)")
	fs.StringVarP(&opts.mode, "mode", "m", "", "pacing mode: auto, off, <n>fps or a duration")
	fs.Float64SliceVar(&opts.refresh, "refresh", nil, "monitor refresh rates in Hz for auto mode")
	fs.DurationVar(&opts.spin, "spin", 0, "spin tail of each sleep")
	fs.BoolVarP(&opts.debug, "debug", "d", false, "write debug log to logs/framepace.log")
	fs.BoolVar(&opts.click, "click", false, "metronome click every paced second")
	fs.BoolVar(&opts.headless, "headless", false, "run without the terminal scene")
	fs.IntVar(&opts.frames, "frames", 600, "frames to pace in headless mode")
	fs.DurationVar(&opts.work, "work", 2*time.Millisecond, "simulated render work per headless frame")
	err := fs.Parse(args)
	return opts, fs, err
}

// resolveConfig layers explicitly set flags over the config file or defaults
func resolveConfig(opts options, fs *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if fs.Changed("mode") {
		m, err := pacing.ParseMode(opts.mode)
		if err != nil {
			return cfg, err
		}
		cfg.Pacing.Mode = m
	}
	if fs.Changed("refresh") {
		cfg.Display.Monitors = cfg.Display.Monitors[:0]
		for _, hz := range opts.refresh {
			if hz <= 0 {
				return cfg, fmt.Errorf("refresh rate must be positive, got %v", hz)
			}
			cfg.Display.Monitors = append(cfg.Display.Monitors, uint32(hz*1000))
		}
	}
	if fs.Changed("spin") {
		cfg.Pacing.SpinThreshold = config.Duration(opts.spin)
	}
	if fs.Changed("debug") {
		cfg.Log.Debug = opts.debug
	}
	if fs.Changed("click") {
		cfg.Audio.Metronome = opts.click
	}

	return cfg, cfg.Validate()
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\nFRAMEPACE CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	opts, fs, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	cfg, err := resolveConfig(opts, fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, logFile := setupLogging(cfg.Log.Debug)
	if logFile != nil {
		defer logFile.Close()
	}

	// Render loop runs on this goroutine; pin it so the timer slack applies to its sleeps
	runtime.LockOSThread()
	if err := clock.ReduceTimerSlack(); err != nil {
		logger.Warn("timer slack unchanged", "error", err)
	}

	source, closeSource, err := newDisplaySource(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Display source: %v\n", err)
		os.Exit(1)
	}
	defer closeSource()

	eng, err := pacing.New(
		pacing.WithClock(clock.NewSystemWithSpin(cfg.Pacing.SpinThreshold.Std())),
		pacing.WithDisplay(source),
		pacing.WithLogger(logger),
		pacing.WithMode(cfg.Pacing.Mode),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create pacing engine: %v\n", err)
		os.Exit(1)
	}

	var metronome *audio.Metronome
	if cfg.Audio.Metronome {
		metronome = audio.NewMetronome()
		if err := metronome.Initialize(); err != nil {
			logger.Warn("audio unavailable, metronome silent", "error", err)
		}
		defer metronome.Cleanup()
	}

	headless := opts.headless || !term.IsTerminal(int(os.Stdout.Fd()))
	logger.Debug("starting", "mode", cfg.Pacing.Mode.String(), "headless", headless, "monitors", cfg.Display.Monitors)

	if headless {
		runHeadless(eng, cfg, metronome, opts.frames, opts.work, os.Stdout)
		return
	}

	if err := runScene(eng, cfg, metronome, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Terminal scene: %v\n", err)
		os.Exit(1)
	}
}

// startSimulation runs Engine.Tick on the simulation pipeline
func startSimulation(eng *pacing.Engine, cfg config.Config, step func(), frameReady <-chan struct{}) (*engine.ClockScheduler, <-chan struct{}) {
	cs, updateDone := engine.NewClockScheduler(func() {
		eng.Tick()
		if step != nil {
			step()
		}
	}, cfg.Simulation.TickInterval.Std(), frameReady, eng.Registry())
	cs.Start()
	return cs, updateDone
}
