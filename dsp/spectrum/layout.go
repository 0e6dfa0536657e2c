package spectrum

import (
	"fmt"
	"math"
)

const (
	// MinBandHz is the center of the lowest band.
	MinBandHz = 60.0
	// MaxBandHz caps the center of the highest band.
	MaxBandHz = 10000.0
	// NyquistMargin keeps the top band this far below Nyquist.
	NyquistMargin = 1000.0
	// NyquistCap limits every center to this fraction of Nyquist.
	NyquistCap = 0.98

	// minSpanHz is the smallest usable fMax-fMin span before the fallback
	// top frequency is used.
	minSpanHz = 200.0
	// fallbackTop is the fraction of Nyquist used when the span is too narrow.
	fallbackTop = 0.9
)

// Layout holds log-spaced band center frequencies and the matching Goertzel
// recurrence coefficients for one sample rate.
//
// Centers are strictly increasing for two or more bands and never exceed
// NyquistCap times the Nyquist frequency.
type Layout struct {
	sampleRate float64
	centers    []float64
	coeffs     []float64
}

// NewLayout computes a band layout for sampleRate and bands.
func NewLayout(sampleRate float64, bands int) (*Layout, error) {
	l := &Layout{}
	if err := l.Recompute(sampleRate, bands); err != nil {
		return nil, err
	}

	return l, nil
}

// Recompute replaces the layout in place, reusing slice capacity. On error the
// layout is left empty.
func (l *Layout) Recompute(sampleRate float64, bands int) error {
	l.centers = l.centers[:0]
	l.coeffs = l.coeffs[:0]
	l.sampleRate = 0

	if bands < 1 || sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: sampleRate=%v bands=%d", ErrInvalidLayout, sampleRate, bands)
	}

	nyquist := sampleRate / 2
	fMin := MinBandHz
	fMax := math.Min(MaxBandHz, nyquist-NyquistMargin)
	if fMax <= fMin+minSpanHz {
		fMax = nyquist * fallbackTop
	}

	ratio := 1.0
	if bands > 1 {
		ratio = math.Pow(fMax/fMin, 1/float64(bands-1))
		if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio <= 1 {
			return fmt.Errorf("%w: sampleRate=%v bands=%d ratio=%v", ErrInvalidLayout, sampleRate, bands, ratio)
		}
	}

	if cap(l.centers) < bands {
		l.centers = make([]float64, bands)
		l.coeffs = make([]float64, bands)
	} else {
		l.centers = l.centers[:bands]
		l.coeffs = l.coeffs[:bands]
	}

	limit := nyquist * NyquistCap
	f := fMin
	for i := range bands {
		c := math.Min(f, limit)
		l.centers[i] = c
		l.coeffs[i] = RecurrenceCoeff(c, sampleRate)
		f *= ratio
	}

	l.sampleRate = sampleRate

	return nil
}

// Len returns the number of bands; zero for an uncomputed layout.
func (l *Layout) Len() int {
	if l == nil {
		return 0
	}

	return len(l.centers)
}

// SampleRate returns the sample rate the layout was computed for.
func (l *Layout) SampleRate() float64 { return l.sampleRate }

// Centers returns the band center frequencies in Hz. The slice is owned by the layout.
func (l *Layout) Centers() []float64 { return l.centers }

// Coeffs returns the per-band recurrence coefficients. The slice is owned by the layout.
func (l *Layout) Coeffs() []float64 { return l.coeffs }
