package viz

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cwbudde/algo-spectap/internal/logging"
	"github.com/sirupsen/logrus"
)

const defaultQueueSize = 4

// BusOption configures a Bus.
type BusOption func(*busConfig)

type busConfig struct {
	queueSize int
	clock     Clock
	logger    logrus.FieldLogger
}

// WithQueueSize sets how many envelopes may wait for delivery before new
// publishes are dropped.
func WithQueueSize(n int) BusOption {
	return func(c *busConfig) {
		if n > 0 {
			c.queueSize = n
		}
	}
}

// WithBusClock sets the clock used by the publish gate and envelope timestamps.
func WithBusClock(clock Clock) BusOption {
	return func(c *busConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithBusLogger sets the logger used by the delivery goroutine.
func WithBusLogger(logger logrus.FieldLogger) BusOption {
	return func(c *busConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// BusStats counts publish outcomes.
type BusStats struct {
	Published uint64 // accepted into the queue
	Throttled uint64 // rejected by the publish gate
	Dropped   uint64 // rejected because the queue was full or the bus closed
	Delivered uint64 // handed to a subscriber
}

type subscription struct {
	fn func(Envelope)
}

// Bus delivers level envelopes to a single subscriber on its own goroutine.
//
// Publish never blocks: it re-checks the bus's own gate against the shared
// limiter, copies the levels and enqueues them, dropping the snapshot when
// the queue is full. With no subscriber registered, Publish is a no-op.
type Bus struct {
	gate   *Gate
	queue  chan Envelope
	logger logrus.FieldLogger

	sub atomic.Pointer[subscription]

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started atomic.Bool
	closed  atomic.Bool

	published atomic.Uint64
	throttled atomic.Uint64
	dropped   atomic.Uint64
	delivered atomic.Uint64
}

// NewBus returns a stopped bus throttled by l. A nil limiter uses Default().
func NewBus(l *Limiter, opts ...BusOption) *Bus {
	cfg := busConfig{
		queueSize: defaultQueueSize,
		logger:    logging.Discard(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Bus{
		gate:   NewGate(l, cfg.clock),
		queue:  make(chan Envelope, cfg.queueSize),
		logger: cfg.logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the delivery goroutine. Calling Start more than once is a no-op.
func (b *Bus) Start() error {
	if b.closed.Load() {
		return ErrBusClosed
	}

	if !b.started.CompareAndSwap(false, true) {
		return nil
	}

	b.wg.Add(1)
	go b.run()

	return nil
}

// Close stops delivery and waits for the delivery goroutine to exit. Pending
// envelopes are discarded. Publishing after Close is a silent no-op.
func (b *Bus) Close() {
	if !b.closed.CompareAndSwap(false, true) {
		return
	}

	b.cancel()
	b.wg.Wait()
}

// Subscribe registers fn as the subscriber, replacing any previous one.
// fn runs on the delivery goroutine. The returned cancel function removes fn
// if it is still registered.
func (b *Bus) Subscribe(fn func(Envelope)) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	s := &subscription{fn: fn}
	b.sub.Store(s)

	return func() {
		b.sub.CompareAndSwap(s, nil)
	}
}

// Publish implements [Publisher].
func (b *Bus) Publish(levels []float64, playing bool) bool {
	if b.closed.Load() {
		b.dropped.Add(1)
		return false
	}

	if b.sub.Load() == nil {
		return false
	}

	if !b.gate.TryAcquire() {
		b.throttled.Add(1)
		return false
	}

	env := NewEnvelope(levels, playing, b.now())

	select {
	case b.queue <- env:
		b.published.Add(1)
		return true
	default:
		b.dropped.Add(1)
		return false
	}
}

// Stats returns a snapshot of the publish counters.
func (b *Bus) Stats() BusStats {
	return BusStats{
		Published: b.published.Load(),
		Throttled: b.throttled.Load(),
		Dropped:   b.dropped.Load(),
		Delivered: b.delivered.Load(),
	}
}

// Gate returns the bus's publish gate.
func (b *Bus) Gate() *Gate { return b.gate }

func (b *Bus) run() {
	defer b.wg.Done()

	for {
		select {
		case <-b.ctx.Done():
			return
		case env := <-b.queue:
			b.deliver(env)
		}
	}
}

func (b *Bus) deliver(env Envelope) {
	s := b.sub.Load()
	if s == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.logger.WithField("panic", r).Warn("viz: subscriber panicked")
		}
	}()

	s.fn(env)
	b.delivered.Add(1)
}

func (b *Bus) now() time.Time {
	return b.gate.clock()
}
