// Package display detects the refresh interval of the monitors hosting the
// application's windows.
//
// Monitor enumeration is a capability supplied by the host (SDL, a windowing
// toolkit, or a static list from configuration). Detection is a pure function
// of what that capability reports.
package display

import (
	"time"

	"github.com/lixenwraith/framepace/parameter"
)

// Monitor reports its refresh rate in millihertz, or false when unknown
type Monitor interface {
	RefreshRateMillihertz() (uint32, bool)
}

// Window reports the monitor it currently occupies, or false when unknown
type Window interface {
	CurrentMonitor() (Monitor, bool)
}

// Source enumerates the application's open windows
type Source interface {
	Windows() []Window
}

// Detect returns the target frametime for the slowest monitor hosting any open window
// Returns false when no window yields a usable refresh rate; callers keep their previous target
func Detect(src Source) (time.Duration, bool) {
	if src == nil {
		return 0, false
	}

	var lowest uint32
	found := false
	for _, w := range src.Windows() {
		if w == nil {
			continue
		}
		m, ok := w.CurrentMonitor()
		if !ok || m == nil {
			continue
		}
		mhz, ok := m.RefreshRateMillihertz()
		if !ok {
			continue
		}
		// A rate the margin swallows is as good as unknown; it must not mask usable monitors
		if _, ok := FrametimeFromMillihertz(mhz); !ok {
			continue
		}
		if !found || mhz < lowest {
			lowest = mhz
			found = true
		}
	}
	if !found {
		return 0, false
	}

	return FrametimeFromMillihertz(lowest)
}

// FrametimeFromMillihertz converts a reported refresh rate to a conservative frametime
// The rate is reduced by parameter.RefreshRateMarginHz first: integer-rounded rates may overstate
// the true rate, and a target shorter than the real interval chases an unreachable cadence
func FrametimeFromMillihertz(mhz uint32) (time.Duration, bool) {
	hz := float64(mhz)/parameter.MillihertzPerHertz - parameter.RefreshRateMarginHz
	if hz <= 0 {
		return 0, false
	}
	return time.Duration(float64(time.Second) / hz), true
}
