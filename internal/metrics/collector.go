// Package metrics provides in-memory statistics for SDK operations.
package metrics

import (
	"sync"
	"time"
)

// Operation names recorded by the service clients.
const (
	OpAnalyzeEmotion   = "emotion.analyze"
	OpGenerateDialogue = "dialogue.generate"
	OpCreateMemory     = "memory.create"
	OpSearchMemories   = "memory.search"
	OpGetContext       = "memory.context"
	OpGetMemories      = "memory.list"
)

type operation struct {
	count    int64
	failures int64
	total    time.Duration
	min      time.Duration
	max      time.Duration
}

// Collector aggregates per-operation latency and outcome counts.
// Safe for concurrent use by overlapping in-flight requests.
type Collector struct {
	mu    sync.Mutex
	start time.Time
	ops   map[string]*operation
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		start: time.Now(),
		ops:   make(map[string]*operation),
	}
}

// Record adds one completed round trip for the named operation.
func (c *Collector) Record(op string, elapsed time.Duration, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	o := c.ops[op]
	if o == nil {
		o = &operation{min: elapsed, max: elapsed}
		c.ops[op] = o
	}
	o.count++
	if !ok {
		o.failures++
	}
	o.total += elapsed
	if elapsed < o.min {
		o.min = elapsed
	}
	if elapsed > o.max {
		o.max = elapsed
	}
}

// OperationSnapshot provides computed stats for one operation.
type OperationSnapshot struct {
	Count    int64
	Failures int64
	AvgMs    float64
	MinMs    int64
	MaxMs    int64
	TotalMs  int64
}

// Snapshot is the full collector state at a point in time.
type Snapshot struct {
	UptimeSeconds float64
	Operations    map[string]OperationSnapshot
}

// Snapshot returns a copy of the current statistics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		UptimeSeconds: time.Since(c.start).Seconds(),
		Operations:    make(map[string]OperationSnapshot, len(c.ops)),
	}
	for name, o := range c.ops {
		s := OperationSnapshot{
			Count:    o.count,
			Failures: o.failures,
			MinMs:    o.min.Milliseconds(),
			MaxMs:    o.max.Milliseconds(),
			TotalMs:  o.total.Milliseconds(),
		}
		if o.count > 0 {
			s.AvgMs = float64(o.total.Milliseconds()) / float64(o.count)
		}
		snap.Operations[name] = s
	}
	return snap
}
