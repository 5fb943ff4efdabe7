//go:build !linux

package clock

// ReduceTimerSlack is a no-op outside Linux
func ReduceTimerSlack() error {
	return nil
}
