// Package metrics tracks what a stemma run did and how fast.
package metrics

import (
	"fmt"
	"sync/atomic"
	"time"
)

// RunMetrics tracks counters for one command run. Counters are atomic
// because indexer workers update them concurrently.
type RunMetrics struct {
	// Timing
	StartTime time.Time
	EndTime   time.Time

	// Counters
	WordsStemmed   atomic.Int64
	DocsIndexed    atomic.Int64
	MemoHits       atomic.Int64
	MemoMisses     atomic.Int64
	CacheHits      atomic.Int64
	CacheMisses    atomic.Int64
	IndexRebuilds  atomic.Int64
	ResultsPrinted atomic.Int64
}

// NewRunMetrics creates a new metrics instance.
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{
		StartTime: time.Now(),
	}
}

// RecordEnd marks the end of the run.
func (m *RunMetrics) RecordEnd() {
	m.EndTime = time.Now()
}

// TotalDuration returns the run duration so far, or the full duration once
// RecordEnd has been called.
func (m *RunMetrics) TotalDuration() time.Duration {
	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}
	return m.EndTime.Sub(m.StartTime)
}

// AddMemo records memo lookups, typically a delta of search.MemoStats.
func (m *RunMetrics) AddMemo(hits, misses int64) {
	m.MemoHits.Add(hits)
	m.MemoMisses.Add(misses)
}

// MemoHitRate returns the in-process memo hit percentage.
func (m *RunMetrics) MemoHitRate() float64 {
	return rate(m.MemoHits.Load(), m.MemoMisses.Load())
}

// CacheHitRate returns the persistent cache hit percentage.
func (m *RunMetrics) CacheHitRate() float64 {
	return rate(m.CacheHits.Load(), m.CacheMisses.Load())
}

func rate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// String returns a single-line summary of the run.
func (m *RunMetrics) String() string {
	s := fmt.Sprintf("📊 Stemmed %d words, indexed %d docs in %v (memo: %d/%d hits, %.0f%%)",
		m.WordsStemmed.Load(),
		m.DocsIndexed.Load(),
		m.TotalDuration().Round(time.Microsecond),
		m.MemoHits.Load(),
		m.MemoHits.Load()+m.MemoMisses.Load(),
		m.MemoHitRate(),
	)
	if cacheTotal := m.CacheHits.Load() + m.CacheMisses.Load(); cacheTotal > 0 {
		s += fmt.Sprintf(" (cache: %d/%d hits, %.0f%%)", m.CacheHits.Load(), cacheTotal, m.CacheHitRate())
	}
	return s
}

// Print outputs the metrics to stdout.
func (m *RunMetrics) Print() {
	fmt.Println(m.String())
}
