// Package audio provides an audible check of frame pacing: a metronome that
// clicks once per second of paced frame time.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/framepace/parameter"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Metronome accumulates paced frame durations and clicks every beat
// A steady click means frame totals sum to wall time; drift or stutter is audible
type Metronome struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	output      sync.Locker // guards mixer against the speaker goroutine
	initialized bool

	beat    time.Duration
	elapsed time.Duration
	beats   uint64
}

// NewMetronome creates a metronome with the default beat
func NewMetronome() *Metronome {
	return &Metronome{
		mixer:  &beep.Mixer{},
		output: speakerLock{},
		beat:   parameter.MetronomeBeat,
	}
}

// Initialize sets up the audio system
func (m *Metronome) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Cleanup stops pending clicks
func (m *Metronome) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	// beep has no speaker Close; clearing the mixer silences everything queued
	// The speaker goroutine streams the mixer, so changes go under its lock
	m.output.Lock()
	m.mixer.Clear()
	m.output.Unlock()
	m.initialized = false
}

// Frame adds one paced frame duration and reports whether a beat boundary was crossed
// Counting and clicking work without an audio device; only the sound is skipped
func (m *Metronome) Frame(total time.Duration) bool {
	if total <= 0 {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.elapsed += total
	if m.elapsed < m.beat {
		return false
	}

	// Large stalls collapse to a single click
	m.elapsed %= m.beat
	m.beats++

	if m.initialized {
		click := beep.Take(sampleRate.N(parameter.MetronomeClickDuration), NewClickGenerator(sampleRate, parameter.MetronomeFrequency))
		m.output.Lock()
		m.mixer.Add(click)
		m.output.Unlock()
	}
	return true
}

// Beats returns the number of clicks so far
func (m *Metronome) Beats() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.beats
}

// speakerLock adapts the speaker's package-level lock to sync.Locker
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// ClickGenerator generates a short decaying tone
type ClickGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewClickGenerator creates a click generator at freq Hz
func NewClickGenerator(sr beep.SampleRate, freq float64) *ClickGenerator {
	return &ClickGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *ClickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Exponential decay, ~5ms time constant
		envelope := math.Exp(-t / 0.005)
		sample := 0.3 * envelope * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ClickGenerator) Err() error {
	return nil
}
