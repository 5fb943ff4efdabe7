package pacing

import (
	"sync"
	"time"
)

// guarded is a single value crossing the simulation/render boundary
// Access is TryLock only: a held lock means skip this cycle, never wait
type guarded[T comparable] struct {
	mu sync.Mutex
	v  T
}

func (g *guarded[T]) tryLoad() (T, bool) {
	if !g.mu.TryLock() {
		var zero T
		return zero, false
	}
	v := g.v
	g.mu.Unlock()
	return v, true
}

func (g *guarded[T]) tryStore(v T) bool {
	if !g.mu.TryLock() {
		return false
	}
	g.v = v
	g.mu.Unlock()
	return true
}

// tryStoreIfChanged reports whether the value changed and whether the lock was acquired
func (g *guarded[T]) tryStoreIfChanged(v T) (changed, acquired bool) {
	if !g.mu.TryLock() {
		return false, false
	}
	defer g.mu.Unlock()
	if g.v == v {
		return false, true
	}
	g.v = v
	return true, true
}

// SettingsMirror is the render-side replica of the active Mode
// Written by the simulation tick, read by the Pacer every frame
type SettingsMirror struct {
	mode guarded[Mode]
}

// NewSettingsMirror creates a mirror holding Auto
func NewSettingsMirror() *SettingsMirror {
	return &SettingsMirror{}
}

// Mode returns the mirrored mode, or false when the lock is held
func (s *SettingsMirror) Mode() (Mode, bool) {
	return s.mode.tryLoad()
}

// Enabled reports whether pacing should sleep; contention reads as enabled
func (s *SettingsMirror) Enabled() bool {
	m, ok := s.mode.tryLoad()
	if !ok {
		return true
	}
	return m.Enabled()
}

func (s *SettingsMirror) tryStore(m Mode) bool {
	return s.mode.tryStore(m)
}

// FrametimeTarget is the active pacing target; zero means no target known yet
type FrametimeTarget struct {
	d guarded[time.Duration]
}

// NewFrametimeTarget creates a zero target
func NewFrametimeTarget() *FrametimeTarget {
	return &FrametimeTarget{}
}

// Load returns the target, or false when the lock is held
func (t *FrametimeTarget) Load() (time.Duration, bool) {
	return t.d.tryLoad()
}

func (t *FrametimeTarget) tryStoreIfChanged(d time.Duration) (changed, acquired bool) {
	if d < 0 {
		d = 0
	}
	return t.d.tryStoreIfChanged(d)
}

// StatsSnapshot is a diagnostics view of the last published cycle
type StatsSnapshot struct {
	// FrameTime is the pre-sleep work duration of the last cycle
	FrameTime time.Duration
	// Oversleep is how far the last full cycle overran the target
	Oversleep time.Duration
}

// Stats is the last measured frame time and oversleep, each independently lockable
type Stats struct {
	frameTime guarded[time.Duration]
	oversleep guarded[time.Duration]
}

// NewStats creates zeroed stats
func NewStats() *Stats {
	return &Stats{}
}

// FrameTime returns the last published frame time, or false when the lock is held
func (s *Stats) FrameTime() (time.Duration, bool) {
	return s.frameTime.tryLoad()
}

// Oversleep returns the last published oversleep, or false when the lock is held
func (s *Stats) Oversleep() (time.Duration, bool) {
	return s.oversleep.tryLoad()
}

// Snapshot reads both fields without blocking; false if either lock is held
func (s *Stats) Snapshot() (StatsSnapshot, bool) {
	ft, ok := s.frameTime.tryLoad()
	if !ok {
		return StatsSnapshot{}, false
	}
	over, ok := s.oversleep.tryLoad()
	if !ok {
		return StatsSnapshot{}, false
	}
	return StatsSnapshot{FrameTime: ft, Oversleep: over}, true
}

func (s *Stats) publishFrameTime(d time.Duration) bool {
	return s.frameTime.tryStore(max(d, 0))
}

func (s *Stats) publishOversleep(d time.Duration) bool {
	return s.oversleep.tryStore(max(d, 0))
}
