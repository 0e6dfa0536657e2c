// Package smooth provides one-pole smoothing of per-band display levels.
package smooth

import (
	"math"

	"github.com/cwbudde/algo-spectap/dsp/core"
)

const (
	// MinAlpha and MaxAlpha bound the smoothing factor.
	MinAlpha = 0.05
	MaxAlpha = 0.9
	// DefaultAlpha is used when no factor is configured.
	DefaultAlpha = 0.5
)

// EMA applies state += (input - state) * alpha to each band independently.
// A larger alpha follows the input faster.
//
// The state persists across updates and is read directly as the smoothed
// output. EMA is owned by one goroutine.
type EMA struct {
	alpha float64
	state []float64
}

// NewEMA returns a smoother for bands levels, all starting at zero.
func NewEMA(bands int, alpha float64) *EMA {
	e := &EMA{state: make([]float64, max(bands, 0))}
	e.SetAlpha(alpha)

	return e
}

// ClampAlpha limits alpha to [MinAlpha, MaxAlpha]; NaN maps to DefaultAlpha.
func ClampAlpha(alpha float64) float64 {
	if math.IsNaN(alpha) {
		return DefaultAlpha
	}

	return core.Clamp(alpha, MinAlpha, MaxAlpha)
}

// SetAlpha updates the smoothing factor, clamped to [MinAlpha, MaxAlpha].
func (e *EMA) SetAlpha(alpha float64) {
	e.alpha = ClampAlpha(alpha)
}

// Alpha returns the current smoothing factor.
func (e *EMA) Alpha() float64 { return e.alpha }

// Len returns the number of bands.
func (e *EMA) Len() int { return len(e.state) }

// Update folds one set of levels into the state. Extra input values beyond
// Len() are ignored.
func (e *EMA) Update(levels []float64) {
	n := min(len(levels), len(e.state))
	for i := range n {
		e.state[i] = core.FlushDenormals(e.state[i] + (levels[i]-e.state[i])*e.alpha)
	}
}

// Levels returns the live smoothed state. Callers must copy it before handing
// it to another goroutine.
func (e *EMA) Levels() []float64 { return e.state }

// Resize changes the band count, keeping the state of surviving bands and
// zeroing new ones.
func (e *EMA) Resize(bands int) {
	bands = max(bands, 0)
	old := len(e.state)

	if cap(e.state) >= bands {
		e.state = e.state[:bands]
	} else {
		grown := make([]float64, bands)
		copy(grown, e.state)
		e.state = grown
	}

	if bands > old {
		core.Zero(e.state[old:])
	}
}

// Reset zeroes all bands.
func (e *EMA) Reset() {
	core.Zero(e.state)
}
