package hpograph

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems.
// NewPrometheusCollector returns a Prometheus-backed implementation.
type MetricsCollector interface {
	// RecordOpen is called after a snapshot was loaded and decoded.
	RecordOpen(duration time.Duration, err error)

	// RecordSave is called after a snapshot was encoded and written.
	// size is the number of bytes written.
	RecordSave(size int, duration time.Duration, err error)

	// RecordSimilarity is called after a single term or group similarity.
	RecordSimilarity(duration time.Duration, err error)

	// RecordBatch is called after each batch job. items is the number of
	// outer elements scored.
	RecordBatch(op string, items int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOpen(time.Duration, error)                {}
func (NoopMetricsCollector) RecordSave(int, time.Duration, error)           {}
func (NoopMetricsCollector) RecordSimilarity(time.Duration, error)          {}
func (NoopMetricsCollector) RecordBatch(string, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	OpenCount            atomic.Int64
	OpenErrors           atomic.Int64
	OpenTotalNanos       atomic.Int64
	SaveCount            atomic.Int64
	SaveErrors           atomic.Int64
	SaveBytes            atomic.Int64
	SimilarityCount      atomic.Int64
	SimilarityErrors     atomic.Int64
	SimilarityTotalNanos atomic.Int64
	BatchCount           atomic.Int64
	BatchErrors          atomic.Int64
	BatchItems           atomic.Int64
	BatchTotalNanos      atomic.Int64
}

// RecordOpen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOpen(duration time.Duration, err error) {
	b.OpenCount.Add(1)
	b.OpenTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.OpenErrors.Add(1)
	}
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(size int, _ time.Duration, err error) {
	b.SaveCount.Add(1)
	if err != nil {
		b.SaveErrors.Add(1)
		return
	}
	b.SaveBytes.Add(int64(size))
}

// RecordSimilarity implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSimilarity(duration time.Duration, err error) {
	b.SimilarityCount.Add(1)
	b.SimilarityTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SimilarityErrors.Add(1)
	}
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(_ string, items int, duration time.Duration, err error) {
	b.BatchCount.Add(1)
	b.BatchItems.Add(int64(items))
	b.BatchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BatchErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		OpenCount:          b.OpenCount.Load(),
		OpenErrors:         b.OpenErrors.Load(),
		OpenAvgNanos:       avg(b.OpenTotalNanos.Load(), b.OpenCount.Load()),
		SaveCount:          b.SaveCount.Load(),
		SaveErrors:         b.SaveErrors.Load(),
		SaveBytes:          b.SaveBytes.Load(),
		SimilarityCount:    b.SimilarityCount.Load(),
		SimilarityErrors:   b.SimilarityErrors.Load(),
		SimilarityAvgNanos: avg(b.SimilarityTotalNanos.Load(), b.SimilarityCount.Load()),
		BatchCount:         b.BatchCount.Load(),
		BatchErrors:        b.BatchErrors.Load(),
		BatchItems:         b.BatchItems.Load(),
		BatchAvgNanos:      avg(b.BatchTotalNanos.Load(), b.BatchCount.Load()),
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
	OpenCount          int64
	OpenErrors         int64
	OpenAvgNanos       int64
	SaveCount          int64
	SaveErrors         int64
	SaveBytes          int64
	SimilarityCount    int64
	SimilarityErrors   int64
	SimilarityAvgNanos int64
	BatchCount         int64
	BatchErrors        int64
	BatchItems         int64
	BatchAvgNanos      int64
}
