// Package clock provides the monotonic time source and high-resolution sleep
// primitive used by the frame pacer.
//
// OS sleeps wake late by an amount that depends on scheduler granularity and
// timer slack. System sleeps the bulk of a request in the kernel and spins the
// final SpinThreshold, trading a small amount of CPU for wakeup accuracy.
package clock

import "time"

// Clock is a monotonic time source with a blocking sleep
type Clock interface {
	// Now returns the current time with a monotonic reading
	Now() time.Time

	// Sleep blocks the calling goroutine for at least d; d <= 0 returns immediately
	Sleep(d time.Duration)
}
