package core

// ProcessorConfig defines the analysis settings shared by streaming analyzers.
// The sample rate is not part of it; analyzers take it from the negotiated
// stream format.
type ProcessorConfig struct {
	FrameSize int
	Bands     int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns defaults tuned for a coarse bar display.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		FrameSize: 512,
		Bands:     16,
	}
}

// WithFrameSize sets the analysis frame length in mono samples.
func WithFrameSize(frameSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if frameSize > 1 {
			cfg.FrameSize = frameSize
		}
	}
}

// WithBands sets the number of display bands.
func WithBands(bands int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if bands > 0 {
			cfg.Bands = bands
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
