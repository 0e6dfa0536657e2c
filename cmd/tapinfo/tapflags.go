package main

import (
	"flag"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cwbudde/algo-spectap/dsp/window"
	"github.com/cwbudde/algo-spectap/internal/config"
	"github.com/cwbudde/algo-spectap/tap"
	"github.com/cwbudde/algo-spectap/viz"
)

// newFlagSet returns a flag set for a command writing errors to e.stderr.
func (e *env) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("tapinfo "+name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

// bindTap registers the tap settings on fs. Configured values become the
// flag defaults, so explicit flags override the file.
func bindTap(fs *flag.FlagSet, t *config.Tap) {
	fs.IntVar(&t.FrameSize, "frame", t.FrameSize, "analysis frame length in samples")
	fs.IntVar(&t.Bands, "bands", t.Bands, "number of display bands")
	fs.Float64Var(&t.Smoothing, "smoothing", t.Smoothing, "EMA factor in [0.05, 0.9]")
	fs.IntVar(&t.MaxFPS, "fps", t.MaxFPS, "publish rate cap in [5, 60]")
	fs.StringVar(&t.Window, "window", t.Window, "analysis window (hann, hamming, blackman, rectangular)")
}

// bindInput registers the input format settings on fs.
func bindInput(fs *flag.FlagSet, in *config.Input) {
	fs.IntVar(&in.SampleRate, "rate", in.SampleRate, "sample rate in Hz")
	fs.IntVar(&in.Channels, "channels", in.Channels, "interleaved channel count")
	fs.StringVar(&in.Encoding, "encoding", in.Encoding, "sample encoding (pcm16 is analyzed, others pass through)")
	fs.IntVar(&in.ChunkBytes, "chunk", in.ChunkBytes, "bytes per QueueInput call")
}

// newProcessor builds a configured tap from the command configuration.
func (e *env) newProcessor(pub viz.Publisher, limiter *viz.Limiter, clock viz.Clock) (*tap.Processor, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	win, err := window.ParseType(e.cfg.Tap.Window)
	if err != nil {
		return nil, err
	}

	enc, err := tap.ParseEncoding(e.cfg.Input.Encoding)
	if err != nil {
		return nil, err
	}

	p := tap.New(pub,
		tap.WithFrameSize(e.cfg.Tap.FrameSize),
		tap.WithBands(e.cfg.Tap.Bands),
		tap.WithSmoothing(e.cfg.Tap.Smoothing),
		tap.WithWindow(win),
		tap.WithLimiter(limiter),
		tap.WithClock(clock),
		tap.WithLogger(e.log),
	)

	format := tap.Format{
		SampleRate: e.cfg.Input.SampleRate,
		Channels:   e.cfg.Input.Channels,
		Encoding:   enc,
	}

	if _, err := p.Configure(format); err != nil {
		return nil, fmt.Errorf("configure %s: %w", format, err)
	}

	return p, nil
}

// mediaClock reports stream time: a fixed origin plus the duration of the
// sample frames fed so far. Offline runs use it so the rate cap applies to
// audio time rather than to how fast the input is read.
type mediaClock struct {
	origin time.Time
	rate   int
	frames atomic.Int64
}

func newMediaClock(rate int) *mediaClock {
	return &mediaClock{origin: time.Unix(0, 0).UTC(), rate: rate}
}

func (c *mediaClock) Now() time.Time {
	return c.origin.Add(c.Elapsed())
}

// Elapsed returns the stream time covered so far.
func (c *mediaClock) Elapsed() time.Duration {
	return time.Duration(c.frames.Load() * int64(time.Second) / int64(c.rate))
}

func (c *mediaClock) Advance(frames int) {
	c.frames.Add(int64(frames))
}
