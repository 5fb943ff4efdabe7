//go:build !unix

package clock

import "time"

func osSleep(d time.Duration) {
	time.Sleep(d)
}
