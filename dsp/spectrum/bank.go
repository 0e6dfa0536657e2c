package spectrum

import (
	"github.com/cwbudde/algo-spectap/dsp/core"
	"github.com/cwbudde/algo-spectap/dsp/window"
)

// Bank evaluates one Goertzel detector per band of a [Layout] over a single
// frame and converts the results to display levels.
//
// The frame is DC-corrected and windowed once into a scratch buffer owned by
// the bank, so windowing costs O(N) regardless of the band count. After the
// first frame of a given length and band count, Analyze does not allocate.
//
// A Bank is not safe for concurrent use.
type Bank struct {
	win       *window.Cache
	scratch   []float64
	detectors []Goertzel
}

// NewBank returns a bank that tapers frames with window type t.
func NewBank(t window.Type) *Bank {
	return &Bank{win: window.NewCache(t)}
}

// Window returns the bank's window cache.
func (b *Bank) Window() *window.Cache { return b.win }

// InvalidateWindow drops the cached window so it is regenerated on the next frame.
func (b *Bank) InvalidateWindow() { b.win.Invalidate() }

// Analyze writes one boosted level in [0,1] per band of layout into levels.
// frame is not modified.
func (b *Bank) Analyze(frame []float64, layout *Layout, levels []float64) error {
	n := len(frame)
	if n < 2 {
		return errFrameTooShort
	}

	bands := layout.Len()
	if bands == 0 {
		return ErrInvalidLayout
	}

	if len(levels) < bands {
		return errLevelsTooShort
	}

	b.prepare(frame)

	if len(b.detectors) < bands {
		b.detectors = make([]Goertzel, bands)
	}

	sampleRate := layout.SampleRate()
	centers := layout.Centers()
	coeffs := layout.Coeffs()
	half := float64(n) / 2

	for i := range bands {
		g := &b.detectors[i]
		g.frequency = centers[i]
		g.sampleRate = sampleRate
		g.coeff = coeffs[i]
		g.Reset()
		g.ProcessBlock(b.scratch)

		mag := g.Magnitude() / half
		levels[i] = core.Clamp(DBToLevel(MagnitudeToDB(mag))*Boost(i, bands), 0, 1)
	}

	return nil
}

// prepare copies frame into scratch with the mean removed and applies the window.
func (b *Bank) prepare(frame []float64) {
	n := len(frame)
	b.scratch = core.EnsureLen(b.scratch, n)

	sum := 0.0
	for _, x := range frame {
		sum += x
	}

	mean := sum / float64(n)
	for i, x := range frame {
		b.scratch[i] = x - mean
	}

	b.win.ApplyInPlace(b.scratch)
}
