package viz

import (
	"sync/atomic"
	"time"

	"github.com/cwbudde/algo-spectap/dsp/core"
)

const (
	// MinFPS and MaxFPS bound the publish rate.
	MinFPS = 5
	MaxFPS = 60
	// DefaultFPS is the publish rate of a new Limiter.
	DefaultFPS = 30
)

// Limiter holds a frames-per-second cap shared by any number of gates.
// Changes take effect immediately for every holder. It is safe for
// concurrent use.
type Limiter struct {
	fps atomic.Int32
}

var defaultLimiter = NewLimiter(DefaultFPS)

// Default returns the process-wide limiter.
func Default() *Limiter { return defaultLimiter }

// NewLimiter returns a limiter capped at fps, clamped to [MinFPS, MaxFPS].
func NewLimiter(fps int) *Limiter {
	l := &Limiter{}
	l.SetMaxFPS(fps)

	return l
}

// SetMaxFPS updates the cap, clamped to [MinFPS, MaxFPS].
func (l *Limiter) SetMaxFPS(fps int) {
	l.fps.Store(int32(core.ClampInt(fps, MinFPS, MaxFPS)))
}

// MaxFPS returns the current cap.
func (l *Limiter) MaxFPS() int {
	return int(l.fps.Load())
}

// Interval returns the minimum spacing between publishes, floor(1000/fps) ms.
func (l *Limiter) Interval() time.Duration {
	return time.Duration(1000/l.MaxFPS()) * time.Millisecond
}
