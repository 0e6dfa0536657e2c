package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-spectap/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// Reference computes band levels from a full FFT of the frame. The level for
// each band is read from the bin nearest to the band center, after the same
// DC removal, windowing, normalization and boost as [Bank].
//
// It exists to validate Bank output and to inspect layouts offline; it is
// considerably more expensive per frame for small band counts.
type Reference struct {
	size int
	plan *algofft.Plan[complex128]
	win  *window.Cache

	in  []complex128
	out []complex128
	re  []float64
	im  []float64
	mag []float64
}

// NewReference prepares an FFT reference analyzer for frames of length size.
func NewReference(size int, t window.Type) (*Reference, error) {
	if size < 2 {
		return nil, errFrameTooShort
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum: reference fft plan: %w", err)
	}

	bins := size/2 + 1

	return &Reference{
		size: size,
		plan: plan,
		win:  window.NewCache(t),
		in:   make([]complex128, size),
		out:  make([]complex128, size),
		re:   make([]float64, bins),
		im:   make([]float64, bins),
		mag:  make([]float64, bins),
	}, nil
}

// Size returns the frame length.
func (r *Reference) Size() int { return r.size }

// Magnitudes returns |X[k]| for bins 0..size/2 of the last analyzed frame.
func (r *Reference) Magnitudes() []float64 { return r.mag }

// Analyze writes one level per band of layout into levels.
func (r *Reference) Analyze(frame []float64, layout *Layout, levels []float64) error {
	if len(frame) != r.size {
		return fmt.Errorf("spectrum: reference frame length %d, want %d", len(frame), r.size)
	}

	bands := layout.Len()
	if bands == 0 {
		return ErrInvalidLayout
	}

	if len(levels) < bands {
		return errLevelsTooShort
	}

	if err := r.transform(frame); err != nil {
		return err
	}

	binHz := layout.SampleRate() / float64(r.size)
	half := float64(r.size) / 2
	last := len(r.mag) - 1

	for i, f := range layout.Centers() {
		k := int(math.Round(f / binHz))
		k = min(max(k, 0), last)
		levels[i] = clampUnit(DBToLevel(MagnitudeToDB(r.mag[k]/half)) * Boost(i, bands))
	}

	return nil
}

func (r *Reference) transform(frame []float64) error {
	sum := 0.0
	for _, x := range frame {
		sum += x
	}

	mean := sum / float64(r.size)
	coeffs := r.win.Coefficients(r.size)

	for i, x := range frame {
		r.in[i] = complex((x-mean)*coeffs[i], 0)
	}

	if err := r.plan.Forward(r.out, r.in); err != nil {
		return fmt.Errorf("spectrum: reference forward: %w", err)
	}

	for k := range r.re {
		r.re[k] = real(r.out[k])
		r.im[k] = imag(r.out[k])
	}

	vecmath.Magnitude(r.mag, r.re, r.im)

	return nil
}
