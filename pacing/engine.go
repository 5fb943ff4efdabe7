// Package pacing limits and smooths the rate at which a render loop produces
// frames.
//
// An Engine joins two pipelines. The simulation side owns Settings and calls
// Tick once per update to propagate the mode and recompute the target
// frametime. The render side calls Pacer.Pace at the tail of every frame.
// Three values cross between them: the settings mirror, the frametime target
// and the stats. Every access to them is a TryLock; contention skips the read
// or write for that cycle and never blocks either pipeline.
package pacing

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/framepace/clock"
	"github.com/lixenwraith/framepace/display"
	"github.com/lixenwraith/framepace/status"
)

// Engine wires settings, shared state and the pacer
type Engine struct {
	settings *Settings
	mirror   *SettingsMirror
	target   *FrametimeTarget
	stats    *Stats
	pacer    *Pacer

	clock    clock.Clock
	source   display.Source
	logger   *slog.Logger
	registry *status.Registry
	initial  Mode

	// Simulation-local
	detected  bool
	statMode  *status.AtomicString
	statTicks *atomic.Int64
}

// Option configures an Engine
type Option func(*Engine)

// WithClock sets the time source and sleep primitive; default clock.NewSystem()
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithDisplay sets the window/monitor source used in Auto mode
func WithDisplay(src display.Source) Option {
	return func(e *Engine) { e.source = src }
}

// WithLogger sets the debug logger; default discards
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRegistry sets the diagnostics registry the pacer mirrors into
func WithRegistry(r *status.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithMode sets the initial configured mode; it reaches the render side on the first Tick
func WithMode(m Mode) Option {
	return func(e *Engine) { e.initial = m }
}

// New builds an Engine; the mirror starts at Auto and the target at zero
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		settings: NewSettings(),
		mirror:   NewSettingsMirror(),
		target:   NewFrametimeTarget(),
		stats:    NewStats(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.clock == nil {
		e.clock = clock.NewSystem()
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	if e.registry == nil {
		e.registry = status.NewRegistry()
	}
	if err := e.settings.Set(e.initial); err != nil {
		return nil, err
	}

	e.statMode = e.registry.Strings.Get("pacing.mode")
	e.statTicks = e.registry.Ints.Get("pacing.ticks")
	e.statMode.Store(Auto().String())
	e.pacer = NewPacer(e.clock, e.mirror, e.target, e.stats, e.registry)

	return e, nil
}

// Settings returns the host-facing configuration
func (e *Engine) Settings() *Settings { return e.settings }

// Stats returns the shared diagnostics record
func (e *Engine) Stats() *Stats { return e.stats }

// Target returns the shared frametime target
func (e *Engine) Target() *FrametimeTarget { return e.target }

// Mirror returns the render-side settings replica
func (e *Engine) Mirror() *SettingsMirror { return e.mirror }

// Pacer returns the render-side control loop
func (e *Engine) Pacer() *Pacer { return e.pacer }

// Registry returns the diagnostics registry
func (e *Engine) Registry() *status.Registry { return e.registry }

// Tick runs the simulation-side step: propagate settings, then recompute the target
// Call from the simulation pipeline only, once per update
func (e *Engine) Tick() {
	e.statTicks.Add(1)

	mode, gen, pending := e.settings.pending()
	if pending {
		if e.mirror.tryStore(mode) {
			e.settings.markSynced(gen)
			e.statMode.Store(mode.String())
			e.logger.Debug("pacing mode propagated", "mode", mode.String())
		}
		// Contended: still pending, retried next tick
	}

	e.updateTarget(mode)
}

func (e *Engine) updateTarget(mode Mode) {
	next, ok := e.frametimeFor(mode)
	if !ok {
		return
	}

	// Contended writes are dropped; the next tick recomputes and retries
	if changed, _ := e.target.tryStoreIfChanged(next); changed {
		e.logger.Debug("pacing target changed", "target", next, "mode", mode.String())
	}
}

// frametimeFor returns the target for mode, or false to leave the current target as is
func (e *Engine) frametimeFor(mode Mode) (time.Duration, bool) {
	switch mode.Kind() {
	case KindFixed:
		return mode.Frametime()
	case KindAuto:
		d, ok := display.Detect(e.source)
		if !ok {
			if e.detected {
				e.logger.Debug("refresh rate unavailable, keeping previous target")
			}
			e.detected = false
			return 0, false
		}
		if !e.detected {
			e.logger.Debug("refresh rate detected", "frametime", d)
		}
		e.detected = true
		return d, true
	default:
		// Off: the pacer gates sleeping on the mirror, a stale target is harmless
		return 0, false
	}
}
