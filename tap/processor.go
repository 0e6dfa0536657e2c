package tap

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-spectap/dsp/buffer"
	"github.com/cwbudde/algo-spectap/dsp/core"
	"github.com/cwbudde/algo-spectap/dsp/smooth"
	"github.com/cwbudde/algo-spectap/dsp/spectrum"
	"github.com/cwbudde/algo-spectap/viz"
	"github.com/sirupsen/logrus"
)

// Stats counts processor activity since construction.
type Stats struct {
	// FramesAnalyzed counts frames that ran through the filter bank.
	FramesAnalyzed uint64
	// FramesSkipped counts complete frames dropped by the analysis gate.
	FramesSkipped uint64
	// Failures counts frames whose analysis or publishing failed.
	Failures uint64
	// Published counts snapshots accepted by the publisher.
	Published uint64
}

// Processor is a pass-through audio processor that publishes smoothed band
// levels for the stream flowing through it.
type Processor struct {
	pub    viz.Publisher
	logger logrus.FieldLogger
	gate   *viz.Gate

	playing atomic.Bool
	bands   atomic.Int32
	alpha   atomic.Uint64

	format  Format
	active  bool
	frame   *buffer.Frame
	layout  spectrum.Layout
	bank    *spectrum.Bank
	raw     []float64
	ema     *smooth.EMA
	applied int
	onFrame func([]float64)

	out    []byte
	ended  bool
	warned bool

	analyzed  atomic.Uint64
	skipped   atomic.Uint64
	failures  atomic.Uint64
	published atomic.Uint64
}

// New returns an unconfigured processor that publishes to pub. A nil pub
// discards every snapshot.
func New(pub viz.Publisher, opts ...Option) *Processor {
	cfg := ApplyOptions(opts...)

	if pub == nil {
		pub = viz.PublisherFunc(func([]float64, bool) bool { return false })
	}

	p := &Processor{
		pub:     pub,
		logger:  cfg.Logger,
		gate:    viz.NewGate(cfg.Limiter, cfg.Clock),
		frame:   buffer.NewFrame(cfg.FrameSize),
		bank:    spectrum.NewBank(cfg.Window),
		raw:     make([]float64, cfg.Bands),
		ema:     smooth.NewEMA(cfg.Bands, cfg.Smoothing),
		applied: cfg.Bands,
	}
	p.bands.Store(int32(cfg.Bands))
	p.alpha.Store(math.Float64bits(cfg.Smoothing))
	p.onFrame = p.analyzeFrame

	return p
}

// Configure adopts the input format and returns the output format, which is
// always identical. Any partial frame is discarded. A changed sample rate or
// band count also recomputes the band layout and drops the cached window.
//
// Encodings other than 16-bit PCM are accepted and passed through without
// analysis. Only negative sample rates or channel counts are rejected.
func (p *Processor) Configure(in Format) (Format, error) {
	if in.SampleRate < 0 || in.Channels < 0 {
		return Format{}, fmt.Errorf("%w: %s", ErrUnhandledFormat, in)
	}

	bands := int(p.bands.Load())
	changed := in.SampleRate != p.format.SampleRate || bands != p.applied

	p.format = in
	p.active = in.Analyzable()
	p.warned = false
	p.frame.Reset()

	if changed || p.layout.Len() == 0 {
		p.applyBands(bands)
	}

	p.logger.WithFields(logrus.Fields{
		"sample_rate": in.SampleRate,
		"channels":    in.Channels,
		"encoding":    in.Encoding.String(),
		"bands":       p.layout.Len(),
		"active":      p.active,
	}).Debug("tap configured")

	return in, nil
}

// Format returns the current input format.
func (p *Processor) Format() Format { return p.format }

// Active reports whether input is being analyzed.
func (p *Processor) Active() bool { return p.active }

// QueueInput copies in to the pending output and feeds the analysis path.
// It returns the number of bytes consumed, which is always len(in).
func (p *Processor) QueueInput(in []byte) int {
	if len(in) == 0 {
		return 0
	}

	p.appendOutput(in)

	if p.active {
		p.ingest(in)
	}

	return len(in)
}

// QueueEndOfStream marks the input as finished.
func (p *Processor) QueueEndOfStream() { p.ended = true }

// Output returns the pending output and marks it consumed. The returned
// slice aliases an internal buffer and is valid until the next call to
// QueueInput, Flush or Reset.
func (p *Processor) Output() []byte {
	out := p.out
	p.out = p.out[:0]

	return out
}

// IsEnded reports whether end of stream was queued and all output was consumed.
func (p *Processor) IsEnded() bool {
	return p.ended && len(p.out) == 0
}

// Flush discards pending output, any partial frame and the end-of-stream
// mark. The band layout and smoothed levels are kept.
func (p *Processor) Flush() {
	p.out = p.out[:0]
	p.ended = false
	p.frame.Reset()
}

// Reset flushes, forgets the input format and zeroes the smoothed levels.
func (p *Processor) Reset() {
	p.Flush()
	p.format = Format{}
	p.active = false
	p.layout = spectrum.Layout{}
	p.ema.Reset()
	p.gate.Reset()
}

// SetPlaying sets the playing flag attached to published snapshots.
func (p *Processor) SetPlaying(playing bool) { p.playing.Store(playing) }

// Playing returns the playing flag.
func (p *Processor) Playing() bool { return p.playing.Load() }

// SetBandCount requests a new band count, applied at the next frame
// boundary. Values below 1 are ignored.
func (p *Processor) SetBandCount(n int) {
	if n < 1 || n > math.MaxInt32 {
		return
	}

	p.bands.Store(int32(n))
}

// BandCount returns the requested band count.
func (p *Processor) BandCount() int { return int(p.bands.Load()) }

// SetSmoothing sets the EMA factor, clamped to [0.05, 0.9].
func (p *Processor) SetSmoothing(alpha float64) {
	p.alpha.Store(math.Float64bits(smooth.ClampAlpha(alpha)))
}

// Smoothing returns the EMA factor.
func (p *Processor) Smoothing() float64 {
	return math.Float64frombits(p.alpha.Load())
}

// Layout returns the current band layout. It is empty while unconfigured or
// when the format yields no valid layout. The layout is modified in place by
// the audio goroutine, so only that goroutine may call Layout.
func (p *Processor) Layout() *spectrum.Layout { return &p.layout }

// Levels appends the current smoothed levels to dst. It reads live state and
// must be called from the audio goroutine; other goroutines receive levels
// through the publisher.
func (p *Processor) Levels(dst []float64) []float64 {
	return append(dst, p.ema.Levels()...)
}

// Stats returns a snapshot of the activity counters.
func (p *Processor) Stats() Stats {
	return Stats{
		FramesAnalyzed: p.analyzed.Load(),
		FramesSkipped:  p.skipped.Load(),
		Failures:       p.failures.Load(),
		Published:      p.published.Load(),
	}
}

func (p *Processor) appendOutput(in []byte) {
	start := len(p.out)
	need := start + len(in)

	switch {
	case start == 0:
		p.out = core.EnsureBytes(p.out, need)
	case cap(p.out) >= need:
		p.out = p.out[:need]
	default:
		grown := make([]byte, need, 2*need)
		copy(grown, p.out)
		p.out = grown
	}

	copy(p.out[start:], in)
}

// ingest feeds the analysis path. Failures inside it never reach the caller.
func (p *Processor) ingest(in []byte) {
	defer func() {
		if r := recover(); r != nil {
			p.frame.Reset()
			p.fail(fmt.Errorf("tap: analysis panic: %v", r))
		}
	}()

	p.frame.AppendPCM16(in, p.format.Channels, p.onFrame)
}

func (p *Processor) analyzeFrame(frame []float64) {
	if bands := int(p.bands.Load()); bands != p.applied {
		p.applyBands(bands)
	}

	if p.layout.Len() == 0 {
		return
	}

	if !p.gate.Ready() {
		p.skipped.Add(1)
		return
	}

	p.ema.SetAlpha(p.Smoothing())

	if err := p.bank.Analyze(frame, &p.layout, p.raw); err != nil {
		p.fail(err)
		return
	}

	p.analyzed.Add(1)
	p.ema.Update(p.raw)
	p.gate.Mark()

	if p.pub.Publish(p.ema.Levels(), p.playing.Load()) {
		p.published.Add(1)
	}
}

// applyBands recomputes the layout for the current sample rate and resizes
// the per-band state. An invalid combination leaves the layout empty.
func (p *Processor) applyBands(bands int) {
	p.applied = bands
	p.bank.InvalidateWindow()

	p.raw = core.EnsureLen(p.raw, bands)
	p.ema.Resize(bands)

	if err := p.layout.Recompute(float64(p.format.SampleRate), bands); err != nil {
		p.logger.WithFields(logrus.Fields{
			"sample_rate": p.format.SampleRate,
			"bands":       bands,
		}).WithError(err).Debug("tap layout unavailable")
	}
}

func (p *Processor) fail(err error) {
	p.failures.Add(1)

	if p.warned {
		return
	}

	p.warned = true
	p.logger.WithError(err).Warn("tap analysis failed; further failures are suppressed until reconfigure")
}
