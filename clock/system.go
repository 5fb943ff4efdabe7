package clock

import (
	"runtime"
	"time"

	"github.com/lixenwraith/framepace/parameter"
)

// System is the production Clock backed by the OS monotonic clock
type System struct {
	spinThreshold time.Duration
}

// NewSystem creates a System clock with the default spin threshold
func NewSystem() *System {
	return &System{spinThreshold: parameter.DefaultSpinThreshold}
}

// NewSystemWithSpin creates a System clock spinning for the final spin of each sleep
// Values are clamped to [0, parameter.MaxSpinThreshold]
func NewSystemWithSpin(spin time.Duration) *System {
	if spin < 0 {
		spin = 0
	}
	if spin > parameter.MaxSpinThreshold {
		spin = parameter.MaxSpinThreshold
	}
	return &System{spinThreshold: spin}
}

// SpinThreshold returns the spin tail length
func (s *System) SpinThreshold() time.Duration {
	return s.spinThreshold
}

// Now returns the current time with monotonic clock reading
func (s *System) Now() time.Time {
	return time.Now()
}

// Sleep blocks for d: kernel sleep for d minus the spin threshold, then yield-spin to the deadline
func (s *System) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	deadline := time.Now().Add(d)

	if bulk := d - s.spinThreshold; bulk > 0 {
		osSleep(bulk)
	}

	for time.Now().Before(deadline) {
		runtime.Gosched()
	}
}
