package pacing

import "time"

// FrameTimer records when the previous pacing cycle ended
// Owned by the render pipeline; not safe for concurrent use
type FrameTimer struct {
	sleepEnd time.Time
}

// Reset moves the cycle start to now
func (t *FrameTimer) Reset(now time.Time) {
	t.sleepEnd = now
}

// SleepEnd returns the end of the previous cycle
func (t *FrameTimer) SleepEnd() time.Time {
	return t.sleepEnd
}
