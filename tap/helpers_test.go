package tap

import (
	"sync"
	"testing"
	"time"

	"github.com/cwbudde/algo-spectap/internal/testutil"
	"github.com/cwbudde/algo-spectap/viz"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

var stereo48k = Format{SampleRate: 48000, Channels: 2, Encoding: EncodingPCM16}

// newTestProcessor returns a configured processor publishing into a collector
// that shares its manual clock.
func newTestProcessor(t *testing.T, in Format, opts ...Option) (*Processor, *viz.Collector, *manualClock) {
	t.Helper()

	clock := newManualClock()
	col := viz.NewCollector(clock.Now)

	opts = append([]Option{WithLimiter(viz.NewLimiter(30)), WithClock(clock.Now)}, opts...)
	p := New(col, opts...)

	if _, err := p.Configure(in); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	return p, col, clock
}

// monoFrame encodes a 512-sample tone as mono PCM16.
func monoFrame(freq float64) []byte {
	return testutil.PCM16(testutil.DeterministicSine(freq, 48000, 1.0, 512))
}

// drain feeds each chunk and concatenates the output.
func drain(p *Processor, chunks [][]byte, between func()) []byte {
	var out []byte
	for _, c := range chunks {
		p.QueueInput(c)
		out = append(out, p.Output()...)
		if between != nil {
			between()
		}
	}
	return out
}
