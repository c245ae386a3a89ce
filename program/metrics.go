package main

import (
	"fmt"
	"time"
)

type durationRing struct {
	buf   []time.Duration
	idx   int
	count int
}

func newDurationRing(n int) *durationRing {
	if n < 1 {
		n = 1
	}
	return &durationRing{buf: make([]time.Duration, n)}
}

func (r *durationRing) add(d time.Duration) {
	r.buf[r.idx] = d
	r.idx = (r.idx + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

type durationStats struct {
	last time.Duration
	max  time.Duration
	avg  time.Duration
	n    int
}

func (r *durationRing) snapshot() durationStats {
	if r.count == 0 {
		return durationStats{}
	}
	var sum, longest time.Duration
	for _, d := range r.buf[:r.count] {
		sum += d
		longest = max(longest, d)
	}
	lastIdx := r.idx - 1
	if lastIdx < 0 {
		lastIdx = len(r.buf) - 1
	}
	return durationStats{
		last: r.buf[lastIdx],
		max:  longest,
		avg:  sum / time.Duration(r.count),
		n:    r.count,
	}
}

// requestCounter tracks one kind of backend request.
type requestCounter struct {
	ok      uint64
	failed  uint64
	latency *durationRing
	lastAt  time.Time
}

func newRequestCounter(window int) *requestCounter {
	return &requestCounter{latency: newDurationRing(window)}
}

func (c *requestCounter) observe(at time.Time, d time.Duration, err error) {
	if err != nil {
		c.failed++
	} else {
		c.ok++
	}
	c.latency.add(d)
	c.lastAt = at
}

func (c *requestCounter) String() string {
	if c.ok+c.failed == 0 {
		return "n/a"
	}
	s := c.latency.snapshot()
	return fmt.Sprintf("%d ok / %d failed, last %s avg %s max %s",
		c.ok, c.failed,
		formatMetricDuration(s.last),
		formatMetricDuration(s.avg),
		formatMetricDuration(s.max),
	)
}

// requestMetrics is only touched from the Update goroutine.
type requestMetrics struct {
	enabled bool
	fetch   *requestCounter
	sync    *requestCounter
}

func newRequestMetrics(window int, enabled bool) *requestMetrics {
	return &requestMetrics{
		enabled: enabled,
		fetch:   newRequestCounter(window),
		sync:    newRequestCounter(window),
	}
}

func (m *requestMetrics) observeFetch(d time.Duration, err error) {
	if !m.enabled {
		return
	}
	m.fetch.observe(time.Now(), d, err)
}

func (m *requestMetrics) observeSync(d time.Duration, err error) {
	if !m.enabled {
		return
	}
	m.sync.observe(time.Now(), d, err)
}

func formatMetricDuration(d time.Duration) string {
	if d <= 0 {
		return "0ms"
	}
	if d < time.Second {
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
