package viz

import (
	"sync"
	"time"
)

// Collector is an in-memory [Publisher] that records every snapshot it
// receives. It applies no throttling of its own.
type Collector struct {
	mu        sync.Mutex
	clock     Clock
	envelopes []Envelope
}

// NewCollector returns an empty collector. A nil clock uses time.Now.
func NewCollector(clock Clock) *Collector {
	if clock == nil {
		clock = time.Now
	}

	return &Collector{clock: clock}
}

// Publish implements [Publisher].
func (c *Collector) Publish(levels []float64, playing bool) bool {
	env := NewEnvelope(levels, playing, c.clock())

	c.mu.Lock()
	c.envelopes = append(c.envelopes, env)
	c.mu.Unlock()

	return true
}

// Envelopes returns a copy of the recorded snapshots in publish order.
func (c *Collector) Envelopes() []Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]Envelope(nil), c.envelopes...)
}

// Len returns the number of recorded snapshots.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.envelopes)
}

// Last returns the most recent snapshot.
func (c *Collector) Last() (Envelope, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.envelopes) == 0 {
		return Envelope{}, false
	}

	return c.envelopes[len(c.envelopes)-1], true
}

// Reset discards recorded snapshots.
func (c *Collector) Reset() {
	c.mu.Lock()
	c.envelopes = nil
	c.mu.Unlock()
}
