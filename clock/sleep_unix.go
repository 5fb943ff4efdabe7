//go:build unix

package clock

import (
	"time"

	"golang.org/x/sys/unix"
)

// osSleep issues nanosleep directly, resuming with the remainder when interrupted
func osSleep(d time.Duration) {
	req := unix.NsecToTimespec(d.Nanoseconds())
	var rem unix.Timespec
	for {
		err := unix.Nanosleep(&req, &rem)
		if err != unix.EINTR {
			return
		}
		req = rem
	}
}
