package status

import (
	"sync/atomic"
	"time"
)

// AtomicDuration provides atomic time.Duration access
// Zero value is ready to use (represents 0)
type AtomicDuration struct {
	ns atomic.Int64
}

// Store sets the duration atomically
func (d *AtomicDuration) Store(val time.Duration) {
	d.ns.Store(int64(val))
}

// Load returns the duration atomically
func (d *AtomicDuration) Load() time.Duration {
	return time.Duration(d.ns.Load())
}
