package unsure

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordCombine is called after each pairwise rule evaluation.
	// err is nil if successful.
	RecordCombine(rule Rule, duration time.Duration, err error)

	// RecordConflict is called after each standalone conflict computation.
	// total reports whether K was within tolerance of 1.
	RecordConflict(duration time.Duration, total bool, err error)

	// RecordFusion is called after each multisource fusion.
	// sources is the number of BOEs folded into the receiver.
	RecordFusion(rule Rule, sources int, duration time.Duration, err error)

	// RecordUpdate is called after each CUE update step.
	RecordUpdate(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCombine(Rule, time.Duration, error)     {}
func (NoopMetricsCollector) RecordConflict(time.Duration, bool, error)    {}
func (NoopMetricsCollector) RecordFusion(Rule, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordUpdate(time.Duration, error)            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CombineCount      atomic.Int64
	CombineErrors     atomic.Int64
	CombineTotalNanos atomic.Int64
	ConflictCount     atomic.Int64
	ConflictTotal     atomic.Int64
	ConflictErrors    atomic.Int64
	FusionCount       atomic.Int64
	FusionSources     atomic.Int64
	FusionErrors      atomic.Int64
	FusionTotalNanos  atomic.Int64
	UpdateCount       atomic.Int64
	UpdateErrors      atomic.Int64
}

// RecordCombine implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCombine(_ Rule, duration time.Duration, err error) {
	b.CombineCount.Add(1)
	b.CombineTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CombineErrors.Add(1)
	}
}

// RecordConflict implements MetricsCollector.
func (b *BasicMetricsCollector) RecordConflict(_ time.Duration, total bool, err error) {
	b.ConflictCount.Add(1)
	if total {
		b.ConflictTotal.Add(1)
	}
	if err != nil {
		b.ConflictErrors.Add(1)
	}
}

// RecordFusion implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFusion(_ Rule, sources int, duration time.Duration, err error) {
	b.FusionCount.Add(1)
	b.FusionSources.Add(int64(sources))
	b.FusionTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FusionErrors.Add(1)
	}
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(_ time.Duration, err error) {
	b.UpdateCount.Add(1)
	if err != nil {
		b.UpdateErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CombineCount:    b.CombineCount.Load(),
		CombineErrors:   b.CombineErrors.Load(),
		CombineAvgNanos: avg(b.CombineTotalNanos.Load(), b.CombineCount.Load()),
		ConflictCount:   b.ConflictCount.Load(),
		ConflictTotal:   b.ConflictTotal.Load(),
		ConflictErrors:  b.ConflictErrors.Load(),
		FusionCount:     b.FusionCount.Load(),
		FusionSources:   b.FusionSources.Load(),
		FusionErrors:    b.FusionErrors.Load(),
		FusionAvgNanos:  avg(b.FusionTotalNanos.Load(), b.FusionCount.Load()),
		UpdateCount:     b.UpdateCount.Load(),
		UpdateErrors:    b.UpdateErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CombineCount    int64
	CombineErrors   int64
	CombineAvgNanos int64
	ConflictCount   int64
	ConflictTotal   int64
	ConflictErrors  int64
	FusionCount     int64
	FusionSources   int64
	FusionErrors    int64
	FusionAvgNanos  int64
	UpdateCount     int64
	UpdateErrors    int64
}
