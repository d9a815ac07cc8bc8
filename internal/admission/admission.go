// Package admission bounds the number of analyses in flight. Excess requests
// are rejected immediately rather than queued.
package admission

import (
	"sync"

	"golang.org/x/sync/semaphore"
)

// Gate is a non-blocking concurrency gate over a weighted semaphore.
type Gate struct {
	sem   *semaphore.Weighted
	limit int64
}

// NewGate creates a gate admitting at most limit concurrent holders.
func NewGate(limit int) *Gate {
	if limit < 1 {
		limit = 1
	}
	return &Gate{
		sem:   semaphore.NewWeighted(int64(limit)),
		limit: int64(limit),
	}
}

// TryAcquire claims one slot without blocking. The second return is false
// when the gate is full. A returned ticket must be released exactly once;
// Release is idempotent so deferring it on every exit path is safe.
func (g *Gate) TryAcquire() (*Ticket, bool) {
	if !g.sem.TryAcquire(1) {
		return nil, false
	}
	return &Ticket{gate: g}, true
}

// Limit returns the configured concurrency limit.
func (g *Gate) Limit() int {
	return int(g.limit)
}

// Ticket represents one held slot of the gate.
type Ticket struct {
	gate *Gate
	once sync.Once
}

// Release returns the slot to the gate. Safe to call more than once; only
// the first call releases.
func (t *Ticket) Release() {
	if t == nil {
		return
	}
	t.once.Do(func() {
		t.gate.sem.Release(1)
	})
}
