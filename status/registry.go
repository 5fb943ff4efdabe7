// Package status is a lock-free diagnostics registry.
// Writers cache metric pointers at construction and store to atomics on the hot path;
// readers (overlays, logs, headless dumps) range over the maps at their own pace.
package status

import "sync/atomic"

// Registry is the central metrics facade
type Registry struct {
	Durations *MetricMap[AtomicDuration]
	Ints      *MetricMap[atomic.Int64]
	Floats    *MetricMap[AtomicFloat]
	Strings   *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Durations: NewMetricMap[AtomicDuration](),
		Ints:      NewMetricMap[atomic.Int64](),
		Floats:    NewMetricMap[AtomicFloat](),
		Strings:   NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Durations.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}
