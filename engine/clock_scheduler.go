// Package engine runs the simulation pipeline on a fixed tick alongside a
// host-driven render loop.
package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/framepace/parameter"
	"github.com/lixenwraith/framepace/status"
)

// ClockScheduler runs the simulation step on a fixed tick
// Deadlines advance by whole intervals for drift correction and resync after falling too far behind
type ClockScheduler struct {
	tick         func()
	tickInterval time.Duration

	nextTickDeadline time.Time
	mu               sync.RWMutex

	tickCount atomic.Uint64

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Frame synchronization channels
	frameReady <-chan struct{} // Receive signal that a frame was rendered; nil disables gating
	updateDone chan<- struct{} // Send signal that an update is complete

	// Cached metric pointers
	statTicks  *atomic.Int64
	statResync *atomic.Int64
}

// NewClockScheduler creates a scheduler calling tick every tickInterval
// Receives frameReady sync (receive) channel and returns the updateDone (receive) channel
func NewClockScheduler(
	tick func(),
	tickInterval time.Duration,
	frameReady <-chan struct{},
	reg *status.Registry,
) (*ClockScheduler, <-chan struct{}) {
	if tickInterval <= 0 {
		tickInterval = parameter.SimulationTickInterval
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	updateDone := make(chan struct{}, 1)

	cs := &ClockScheduler{
		tick:         tick,
		tickInterval: tickInterval,
		frameReady:   frameReady,
		updateDone:   updateDone,
		stopChan:     make(chan struct{}),
		statTicks:    reg.Ints.Get("engine.ticks"),
		statResync:   reg.Ints.Get("engine.resyncs"),
	}

	return cs, updateDone
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		Go(cs.schedulerLoop)
	}
}

// Stop halts the scheduler loop and waits for the in-flight tick
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
		}
	})
}

// TickCount returns the number of completed ticks
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// schedulerLoop runs the main scheduling loop
func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.mu.Lock()
	cs.nextTickDeadline = time.Now().Add(cs.tickInterval)
	cs.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		default:
		}

		now := time.Now()

		cs.mu.RLock()
		deadline := cs.nextTickDeadline
		cs.mu.RUnlock()

		if !now.Before(deadline) {
			if !cs.awaitFrame() {
				return
			}

			cs.tick()

			cs.mu.Lock()
			cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)
			if now.Sub(cs.nextTickDeadline) > cs.tickInterval*parameter.MaxTicksBehind {
				cs.nextTickDeadline = now.Add(cs.tickInterval)
				cs.statResync.Add(1)
			}
			deadline = cs.nextTickDeadline
			cs.mu.Unlock()

			cs.statTicks.Store(int64(cs.tickCount.Add(1)))

			select {
			case cs.updateDone <- struct{}{}:
			default:
			}
		}

		sleepDuration := deadline.Sub(time.Now())
		if sleepDuration <= 0 {
			continue
		}

		timer.Reset(sleepDuration)
		select {
		case <-timer.C:
		case <-cs.stopChan:
			return
		}
	}
}

// awaitFrame waits for the render side to consume the previous update, bounded by the sync timeout
// Returns false when stopped while waiting
func (cs *ClockScheduler) awaitFrame() bool {
	if cs.frameReady == nil {
		return true
	}
	select {
	case <-cs.frameReady:
	case <-time.After(cs.tickInterval * parameter.FrameSyncTimeoutTicks):
	case <-cs.stopChan:
		return false
	}
	return true
}
