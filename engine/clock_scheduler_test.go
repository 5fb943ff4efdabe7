package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/lixenwraith/framepace/status"
)

func TestClockSchedulerTicks(t *testing.T) {
	var count atomic.Int32
	reg := status.NewRegistry()
	cs, updateDone := NewClockScheduler(func() { count.Add(1) }, 5*time.Millisecond, nil, reg)

	cs.Start()
	for i := 0; i < 3; i++ {
		select {
		case <-updateDone:
		case <-time.After(time.Second):
			t.Fatalf("Expected update signal %d within 1s", i)
		}
	}
	cs.Stop()

	if got := count.Load(); got < 3 {
		t.Errorf("Expected at least 3 ticks, got %d", got)
	}
	if got := cs.TickCount(); got != uint64(count.Load()) {
		t.Errorf("Expected TickCount %d to match tick calls %d", got, count.Load())
	}
	if got := reg.Ints.Get("engine.ticks").Load(); got != int64(cs.TickCount()) {
		t.Errorf("Expected engine.ticks metric %d, got %d", cs.TickCount(), got)
	}
}

func TestClockSchedulerStopHaltsTicks(t *testing.T) {
	var count atomic.Int32
	cs, _ := NewClockScheduler(func() { count.Add(1) }, 2*time.Millisecond, nil, nil)

	cs.Start()
	time.Sleep(20 * time.Millisecond)
	cs.Stop()

	after := count.Load()
	time.Sleep(20 * time.Millisecond)
	if got := count.Load(); got != after {
		t.Errorf("Expected no ticks after Stop, got %d more", got-after)
	}

	// Idempotent
	cs.Stop()
}

func TestClockSchedulerStopWithoutStart(t *testing.T) {
	cs, _ := NewClockScheduler(func() {}, time.Millisecond, nil, nil)

	done := make(chan struct{})
	go func() {
		cs.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Expected Stop on an idle scheduler to return")
	}
}

func TestClockSchedulerWaitsForFrame(t *testing.T) {
	var count atomic.Int32
	frameReady := make(chan struct{}, 1)
	interval := 10 * time.Millisecond
	cs, updateDone := NewClockScheduler(func() { count.Add(1) }, interval, frameReady, nil)

	frameReady <- struct{}{}
	cs.Start()
	defer cs.Stop()

	select {
	case <-updateDone:
	case <-time.After(time.Second):
		t.Fatal("Expected first update after frame signal")
	}

	// No frame signal: the next tick is held until the sync timeout expires
	start := time.Now()
	select {
	case <-updateDone:
	case <-time.After(time.Second):
		t.Fatal("Expected update after frame sync timeout")
	}
	if waited := time.Since(start); waited < interval {
		t.Errorf("Expected tick to wait for the frame signal, waited only %v", waited)
	}
}

func TestClockSchedulerDefaultInterval(t *testing.T) {
	cs, _ := NewClockScheduler(func() {}, 0, nil, nil)
	if cs.tickInterval <= 0 {
		t.Errorf("Expected default tick interval, got %v", cs.tickInterval)
	}
}
