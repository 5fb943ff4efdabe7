package status

import (
	"sync"
	"testing"
	"time"
)

func TestMetricMapGetCachesPointer(t *testing.T) {
	m := NewMetricMap[AtomicDuration]()

	a := m.Get("pacing.frame_time")
	b := m.Get("pacing.frame_time")
	if a != b {
		t.Error("Expected repeated Get to return the same pointer")
	}

	a.Store(3 * time.Millisecond)
	if got := b.Load(); got != 3*time.Millisecond {
		t.Errorf("Expected 3ms through cached pointer, got %v", got)
	}
	if !m.Has("pacing.frame_time") || m.Has("missing") {
		t.Error("Has reported wrong membership")
	}
}

func TestMetricMapRangeSorted(t *testing.T) {
	m := NewMetricMap[AtomicString]()
	m.Get("c").Store("3")
	m.Get("a").Store("1")
	m.Get("b").Store("2")

	var keys []string
	m.Range(func(key string, cell *AtomicString) {
		keys = append(keys, key+"="+cell.Load())
	})

	want := []string{"a=1", "b=2", "c=3"}
	if len(keys) != len(want) {
		t.Fatalf("Expected %d keys, got %v", len(want), keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Range order mismatch at %d: got %q want %q", i, keys[i], want[i])
		}
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[AtomicDuration]()

	var wg sync.WaitGroup
	ptrs := make([]*AtomicDuration, 32)
	for i := range ptrs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ptrs[i] = m.Get("shared")
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(ptrs); i++ {
		if ptrs[i] != ptrs[0] {
			t.Fatal("Concurrent Get returned distinct cells for one key")
		}
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 cell, got %d", m.Count())
	}
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	if s.Load() != "" {
		t.Error("Expected zero value to load empty string")
	}
	s.Store("this value is definitely longer than the limit")
	if got := s.Load(); len(got) != MaxStringLen {
		t.Errorf("Expected truncation to %d bytes, got %q", MaxStringLen, got)
	}
}

func TestAtomicFloat(t *testing.T) {
	var f AtomicFloat
	f.Set(59.94)
	if got := f.Get(); got != 59.94 {
		t.Errorf("Expected 59.94, got %v", got)
	}
}

func TestRegistryTotalCount(t *testing.T) {
	r := NewRegistry()
	r.Durations.Get("d")
	r.Ints.Get("i")
	r.Floats.Get("f")
	r.Strings.Get("s")
	r.Strings.Get("s")

	if got := r.TotalCount(); got != 4 {
		t.Errorf("Expected 4 metrics, got %d", got)
	}
}

func TestAtomicFloatSmooth(t *testing.T) {
	var f AtomicFloat

	if got := f.Smooth(60, 0.5); got != 60 {
		t.Errorf("Expected first sample to seed the average, got %v", got)
	}
	if got := f.Smooth(40, 0.5); got != 50 {
		t.Errorf("Expected average 50, got %v", got)
	}
	if got := f.Get(); got != 50 {
		t.Errorf("Expected Get 50, got %v", got)
	}
}

func TestAtomicStringTruncatesOnRuneBoundary(t *testing.T) {
	var s AtomicString

	long := "abcdefghijklmnopqrstuvwxyz"
	s.Store(long)
	if got := s.Load(); got != long[:MaxStringLen] {
		t.Errorf("Expected %q, got %q", long[:MaxStringLen], got)
	}

	// 23 ASCII bytes then a 2-byte rune straddling the limit
	straddle := "abcdefghijklmnopqrstuvw" + "é"
	s.Store(straddle)
	if got := s.Load(); got != straddle[:23] {
		t.Errorf("Expected multi-byte rune dropped whole, got %q", got)
	}
}
