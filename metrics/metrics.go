// Package metrics provides the small set of in-process metric primitives
// used by the oracle dispatcher. Counter and Gauge are lock-free; Histogram
// takes a mutex per observation.
package metrics

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// Counter is a monotonically increasing count.
type Counter struct {
	value atomic.Int64
}

// NewCounter returns a zero Counter.
func NewCounter() *Counter {
	return new(Counter)
}

// Inc adds one.
func (c *Counter) Inc() { c.value.Add(1) }

// Add adds n. Negative n is ignored.
func (c *Counter) Add(n int64) {
	if n > 0 {
		c.value.Add(n)
	}
}

// Value returns the current count.
func (c *Counter) Value() int64 { return c.value.Load() }

// Gauge is a value that can move in both directions.
type Gauge struct {
	value atomic.Int64
}

// NewGauge returns a zero Gauge.
func NewGauge() *Gauge {
	return new(Gauge)
}

// Set stores v.
func (g *Gauge) Set(v int64) { g.value.Store(v) }

// Value returns the current value.
func (g *Gauge) Value() int64 { return g.value.Load() }

// Histogram summarizes observations by count, sum, min and max.
type Histogram struct {
	mu    sync.Mutex
	count int64
	sum   float64
	min   float64
	max   float64
}

// NewHistogram returns an empty Histogram.
func NewHistogram() *Histogram {
	return &Histogram{
		min: math.MaxFloat64,
		max: -math.MaxFloat64,
	}
}

// Observe records v.
func (h *Histogram) Observe(v float64) {
	h.mu.Lock()
	h.count++
	h.sum += v
	h.min = math.Min(h.min, v)
	h.max = math.Max(h.max, v)
	h.mu.Unlock()
}

// Summary is a point-in-time view of a Histogram.
type Summary struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
}

// Mean returns Sum/Count, or zero for an empty summary.
func (s Summary) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Summary returns the current observations. Min and Max are zero while the
// histogram is empty.
func (h *Histogram) Summary() Summary {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.count == 0 {
		return Summary{}
	}
	return Summary{Count: h.count, Sum: h.sum, Min: h.min, Max: h.max}
}

// Timer measures one operation and records its duration, in microseconds,
// into a Histogram.
type Timer struct {
	start time.Time
	hist  *Histogram
}

// NewTimer starts a timer recording into h. A nil h only measures.
func NewTimer(h *Histogram) *Timer {
	return &Timer{start: time.Now(), hist: h}
}

// Stop records and returns the elapsed time.
func (t *Timer) Stop() time.Duration {
	d := time.Since(t.start)
	if t.hist != nil {
		t.hist.Observe(float64(d.Microseconds()))
	}
	return d
}
