package viz

import (
	"sync/atomic"
	"time"
)

// Clock returns the current time. Tests substitute a manual clock.
type Clock func() time.Time

// neverMarked is the stored timestamp of a gate that has not fired yet.
const neverMarked = -1

// Gate tracks one owner's last publish time against a shared [Limiter].
//
// The timestamp is stored atomically in Unix milliseconds, so readers never
// see torn values. Concurrent TryAcquire calls on one gate may both succeed
// in a race; the cap is approximate by contract.
type Gate struct {
	limiter *Limiter
	clock   Clock
	last    atomic.Int64
}

// NewGate returns a gate that is immediately ready. A nil clock uses time.Now.
func NewGate(l *Limiter, clock Clock) *Gate {
	if l == nil {
		l = Default()
	}

	if clock == nil {
		clock = time.Now
	}

	g := &Gate{limiter: l, clock: clock}
	g.last.Store(neverMarked)

	return g
}

// Limiter returns the shared limiter.
func (g *Gate) Limiter() *Limiter { return g.limiter }

// Ready reports whether at least one limiter interval has passed since the last Mark.
func (g *Gate) Ready() bool {
	return g.readyAt(g.clock().UnixMilli())
}

// Mark records now as the last publish time.
func (g *Gate) Mark() {
	g.last.Store(g.clock().UnixMilli())
}

// TryAcquire marks the gate and returns true if it was ready.
func (g *Gate) TryAcquire() bool {
	now := g.clock().UnixMilli()
	if !g.readyAt(now) {
		return false
	}

	g.last.Store(now)

	return true
}

// Reset makes the gate ready again.
func (g *Gate) Reset() {
	g.last.Store(neverMarked)
}

func (g *Gate) readyAt(nowMs int64) bool {
	last := g.last.Load()
	if last == neverMarked {
		return true
	}

	return nowMs-last >= g.limiter.Interval().Milliseconds()
}
