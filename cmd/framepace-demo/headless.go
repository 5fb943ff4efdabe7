package main

import (
	"fmt"
	"io"
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/framepace/audio"
	"github.com/lixenwraith/framepace/config"
	"github.com/lixenwraith/framepace/pacing"
	"github.com/lixenwraith/framepace/status"
)

// headlessSummary aggregates paced cycles
type headlessSummary struct {
	frames   int
	total    time.Duration
	minTotal time.Duration
	maxTotal time.Duration
	degraded int
	sumSq    float64
}

func (s *headlessSummary) add(cyc pacing.Cycle) {
	if s.frames == 0 || cyc.Total < s.minTotal {
		s.minTotal = cyc.Total
	}
	if cyc.Total > s.maxTotal {
		s.maxTotal = cyc.Total
	}
	s.frames++
	s.total += cyc.Total
	s.sumSq += float64(cyc.Total) * float64(cyc.Total)
	if cyc.Degraded {
		s.degraded++
	}
}

func (s *headlessSummary) mean() time.Duration {
	if s.frames == 0 {
		return 0
	}
	return s.total / time.Duration(s.frames)
}

func (s *headlessSummary) stddev() time.Duration {
	if s.frames == 0 {
		return 0
	}
	m := float64(s.mean())
	v := s.sumSq/float64(s.frames) - m*m
	return time.Duration(math.Sqrt(math.Max(v, 0)))
}

// runHeadless paces frames of simulated work and prints a summary
func runHeadless(eng *pacing.Engine, cfg config.Config, metronome *audio.Metronome, frames int, work time.Duration, out io.Writer) {
	// One synchronous tick so the first frames already see the configured mode
	eng.Tick()

	frameReady := make(chan struct{}, 1)
	cs, updateDone := startSimulation(eng, cfg, nil, frameReady)
	defer cs.Stop()

	pacer := eng.Pacer()
	var sum headlessSummary
	for i := 0; i < frames; i++ {
		if work > 0 {
			time.Sleep(work)
		}

		cyc := pacer.Pace()
		sum.add(cyc)
		if metronome != nil {
			metronome.Frame(cyc.Total)
		}

		select {
		case <-updateDone:
		default:
		}
		select {
		case frameReady <- struct{}{}:
		default:
		}
	}

	writeSummary(out, eng, &sum)
}

func writeSummary(out io.Writer, eng *pacing.Engine, sum *headlessSummary) {
	mode := eng.Settings().Mode()
	target, _ := eng.Target().Load()

	fmt.Fprintf(out, "mode      %s\n", mode)
	fmt.Fprintf(out, "target    %v\n", target)
	fmt.Fprintf(out, "frames    %d (degraded %d)\n", sum.frames, sum.degraded)
	fmt.Fprintf(out, "frametime mean %v  stddev %v  min %v  max %v\n", sum.mean(), sum.stddev(), sum.minTotal, sum.maxTotal)
	if m := sum.mean(); m > 0 {
		fmt.Fprintf(out, "fps       %.2f\n", float64(time.Second)/float64(m))
	}

	fmt.Fprintln(out, "metrics")
	writeRegistry(out, eng.Registry())
}

func writeRegistry(out io.Writer, reg *status.Registry) {
	reg.Durations.Range(func(k string, v *status.AtomicDuration) {
		fmt.Fprintf(out, "  %-20s %v\n", k, v.Load())
	})
	reg.Floats.Range(func(k string, v *status.AtomicFloat) {
		fmt.Fprintf(out, "  %-20s %.2f\n", k, v.Get())
	})
	reg.Ints.Range(func(k string, v *atomic.Int64) {
		fmt.Fprintf(out, "  %-20s %d\n", k, v.Load())
	})
	reg.Strings.Range(func(k string, v *status.AtomicString) {
		fmt.Fprintf(out, "  %-20s %s\n", k, v.Load())
	})
}
