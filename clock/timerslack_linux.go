//go:build linux

package clock

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/lixenwraith/framepace/parameter"
)

// ReduceTimerSlack lowers the calling thread's timer slack so kernel sleeps wake closer to their deadline
// Slack is per-thread; call from a goroutine locked to its OS thread for the setting to stick
func ReduceTimerSlack() error {
	if err := unix.Prctl(unix.PR_SET_TIMERSLACK, parameter.TimerSlack, 0, 0, 0); err != nil {
		return fmt.Errorf("set timer slack: %w", err)
	}
	return nil
}
