package pacing

import "sync/atomic"

// settingsState is an immutable (mode, generation) pair swapped in whole
type settingsState struct {
	mode Mode
	gen  uint64 // bumped on every effective change
}

// Settings is the host-facing source of truth for the pacing mode
// Set may be called from any goroutine and never blocks; Engine.Tick propagates
// changes to the render side. Zero value holds Auto.
type Settings struct {
	state  atomic.Pointer[settingsState]
	synced atomic.Uint64 // gen last written into the mirror
}

// NewSettings creates settings holding Auto
func NewSettings() *Settings {
	return &Settings{}
}

func (s *Settings) load() settingsState {
	if p := s.state.Load(); p != nil {
		return *p
	}
	return settingsState{}
}

// Mode returns the configured mode
func (s *Settings) Mode() Mode {
	return s.load().mode
}

// Set replaces the mode; an equal mode is a no-op
func (s *Settings) Set(m Mode) error {
	if err := m.Validate(); err != nil {
		return err
	}
	for {
		cur := s.state.Load()
		var prev settingsState
		if cur != nil {
			prev = *cur
		}
		if prev.mode == m {
			return nil
		}
		if s.state.CompareAndSwap(cur, &settingsState{mode: m, gen: prev.gen + 1}) {
			return nil
		}
	}
}

// pending returns the mode and its generation, and whether the mirror is behind
func (s *Settings) pending() (Mode, uint64, bool) {
	st := s.load()
	return st.mode, st.gen, st.gen != s.synced.Load()
}

// markSynced records that generation gen reached the mirror
// A Set racing the propagation leaves a newer gen pending
func (s *Settings) markSynced(gen uint64) {
	for {
		cur := s.synced.Load()
		if gen <= cur || s.synced.CompareAndSwap(cur, gen) {
			return
		}
	}
}
