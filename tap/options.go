package tap

import (
	"github.com/cwbudde/algo-spectap/dsp/core"
	"github.com/cwbudde/algo-spectap/dsp/smooth"
	"github.com/cwbudde/algo-spectap/dsp/window"
	"github.com/cwbudde/algo-spectap/internal/logging"
	"github.com/cwbudde/algo-spectap/viz"
	"github.com/sirupsen/logrus"
)

// Config defines the construction-time settings of a Processor.
type Config struct {
	core.ProcessorConfig
	Smoothing float64
	Window    window.Type
	Limiter   *viz.Limiter
	Clock     viz.Clock
	Logger    logrus.FieldLogger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the defaults: 512-sample frames, 16 bands, smoothing
// 0.5, Hann window and the process-wide limiter.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig: core.DefaultProcessorConfig(),
		Smoothing:       smooth.DefaultAlpha,
		Window:          window.TypeHann,
	}
}

// WithFrameSize sets the analysis frame length in mono samples.
func WithFrameSize(n int) Option {
	return func(cfg *Config) {
		core.WithFrameSize(n)(&cfg.ProcessorConfig)
	}
}

// WithBands sets the initial band count.
func WithBands(n int) Option {
	return func(cfg *Config) {
		core.WithBands(n)(&cfg.ProcessorConfig)
	}
}

// WithSmoothing sets the EMA factor, clamped to [0.05, 0.9].
func WithSmoothing(alpha float64) Option {
	return func(cfg *Config) {
		cfg.Smoothing = smooth.ClampAlpha(alpha)
	}
}

// WithWindow selects the taper applied before analysis.
func WithWindow(t window.Type) Option {
	return func(cfg *Config) {
		cfg.Window = t
	}
}

// WithLimiter shares l with the processor's analysis gate.
func WithLimiter(l *viz.Limiter) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Limiter = l
		}
	}
}

// WithClock sets the clock used by the analysis gate.
func WithClock(clock viz.Clock) Option {
	return func(cfg *Config) {
		if clock != nil {
			cfg.Clock = clock
		}
	}
}

// WithLogger sets the logger for configuration and failure events.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(cfg *Config) {
		if logger != nil {
			cfg.Logger = logger
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.Limiter == nil {
		cfg.Limiter = viz.Default()
	}

	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}

	return cfg
}
