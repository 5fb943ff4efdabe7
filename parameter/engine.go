package parameter

import "time"

// Simulation & Render Timing
const (
	// SimulationTickInterval is the simulation pipeline update interval (clock tick)
	SimulationTickInterval = 50 * time.Millisecond

	// FrameSyncTimeoutTicks is the number of tick intervals the scheduler waits for a frame-ready signal
	FrameSyncTimeoutTicks = 2

	// MaxTicksBehind is the number of intervals the scheduler may fall behind before resyncing its deadline
	MaxTicksBehind = 2
)

// Refresh Rate Detection
const (
	// RefreshRateMarginHz is subtracted from the reported refresh rate before inverting
	// OS APIs round to integer Hz; the margin keeps the target at or above the true interval
	RefreshRateMarginHz = 0.5

	// MillihertzPerHertz converts monitor-reported millihertz to Hz
	MillihertzPerHertz = 1000.0
)

// Sleep Precision
const (
	// DefaultSpinThreshold is the tail of a sleep spent spinning instead of in the OS scheduler
	// 200us covers typical Linux/macOS wakeup latency once timer slack is reduced
	DefaultSpinThreshold = 200 * time.Microsecond

	// MaxSpinThreshold bounds configured spin tails; longer tails burn CPU without gaining accuracy
	MaxSpinThreshold = 4 * time.Millisecond

	// TimerSlack is the per-thread timer slack requested on Linux (nanoseconds)
	TimerSlack = 1
)

// Diagnostics
const (
	// FPSSmoothing is the moving-average weight of each cycle in the pacing.fps_avg metric
	FPSSmoothing = 0.1
)

// Metronome
const (
	// MetronomeBeat is the paced-time interval between metronome clicks
	MetronomeBeat = time.Second

	// MetronomeClickDuration is the length of a single click
	MetronomeClickDuration = 30 * time.Millisecond

	// MetronomeFrequency is the click tone frequency in Hz
	MetronomeFrequency = 1760.0
)
