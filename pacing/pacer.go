package pacing

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/framepace/clock"
	"github.com/lixenwraith/framepace/parameter"
	"github.com/lixenwraith/framepace/status"
)

// Cycle describes one pacing step
type Cycle struct {
	// Elapsed is the work time since the previous cycle ended, before sleeping
	Elapsed time.Duration
	// Target is the frametime read for this cycle; zero when degraded
	Target time.Duration
	// Sleep is the requested wait after drift compensation
	Sleep time.Duration
	// Total is the complete cycle duration including the wait
	Total time.Duration
	// Oversleep is how far Total overran Target
	Oversleep time.Duration
	// Slept reports whether the blocking wait was issued
	Slept bool
	// Degraded reports that a shared value was contended and pacing was skipped
	Degraded bool
}

// SleepDuration is the drift-compensated wait: max(0, target - elapsed - priorOversleep)
// Subtracting the previous cycle's oversleep keeps overshoot from accumulating across cycles
func SleepDuration(target, elapsed, priorOversleep time.Duration) time.Duration {
	return saturatingSub(target, elapsed+priorOversleep)
}

func saturatingSub(a, b time.Duration) time.Duration {
	if b >= a {
		return 0
	}
	return a - b
}

// Pacer is the render-side control loop
// Pace must be called once per frame after all of that frame's render work is submitted;
// it consumes the remainder of the frame budget at the tail of the frame.
// A Pacer belongs to the render pipeline and is not safe for concurrent use.
type Pacer struct {
	clock  clock.Clock
	timer  FrameTimer
	mirror *SettingsMirror
	target *FrametimeTarget
	stats  *Stats

	// Cached metric pointers
	statFrameTime *status.AtomicDuration
	statOversleep *status.AtomicDuration
	statSleep     *status.AtomicDuration
	statTarget    *status.AtomicDuration
	statFPS       *status.AtomicFloat
	statFPSAvg    *status.AtomicFloat
	statCycles    *atomic.Int64
	statDegraded  *atomic.Int64
}

// NewPacer creates a pacer whose timer starts now
func NewPacer(c clock.Clock, mirror *SettingsMirror, target *FrametimeTarget, stats *Stats, reg *status.Registry) *Pacer {
	if reg == nil {
		reg = status.NewRegistry()
	}
	p := &Pacer{
		clock:         c,
		mirror:        mirror,
		target:        target,
		stats:         stats,
		statFrameTime: reg.Durations.Get("pacing.frame_time"),
		statOversleep: reg.Durations.Get("pacing.oversleep"),
		statSleep:     reg.Durations.Get("pacing.sleep"),
		statTarget:    reg.Durations.Get("pacing.target"),
		statFPS:       reg.Floats.Get("pacing.fps"),
		statFPSAvg:    reg.Floats.Get("pacing.fps_avg"),
		statCycles:    reg.Ints.Get("pacing.cycles"),
		statDegraded:  reg.Ints.Get("pacing.degraded"),
	}
	p.timer.Reset(c.Now())
	return p
}

// Pace sleeps out the rest of the frame and publishes the cycle's stats
func (p *Pacer) Pace() Cycle {
	var cyc Cycle

	start := p.timer.SleepEnd()
	cyc.Elapsed = max(p.clock.Now().Sub(start), 0)

	target, targetOK := p.target.Load()
	prior, priorOK := p.stats.Oversleep()
	cyc.Degraded = !targetOK || !priorOK

	if !cyc.Degraded {
		cyc.Target = target
		cyc.Sleep = SleepDuration(target, cyc.Elapsed, prior)
		if p.mirror.Enabled() {
			p.clock.Sleep(cyc.Sleep)
			cyc.Slept = true
		}
	}

	end := p.clock.Now()
	cyc.Total = max(end.Sub(start), 0)
	p.timer.Reset(end)

	p.stats.publishFrameTime(cyc.Elapsed)
	if targetOK {
		cyc.Target = target
		cyc.Oversleep = saturatingSub(cyc.Total, target)
		p.stats.publishOversleep(cyc.Oversleep)
	}

	p.record(cyc)
	return cyc
}

// Timer returns the render-local frame timer
func (p *Pacer) Timer() *FrameTimer {
	return &p.timer
}

func (p *Pacer) record(cyc Cycle) {
	p.statFrameTime.Store(cyc.Elapsed)
	p.statOversleep.Store(cyc.Oversleep)
	p.statSleep.Store(cyc.Sleep)
	p.statTarget.Store(cyc.Target)
	if cyc.Total > 0 {
		fps := float64(time.Second) / float64(cyc.Total)
		p.statFPS.Set(fps)
		p.statFPSAvg.Smooth(fps, parameter.FPSSmoothing)
	}
	p.statCycles.Add(1)
	if cyc.Degraded {
		p.statDegraded.Add(1)
	}
}
