package viz

import "time"

// Envelope is an immutable snapshot of band levels handed across goroutines.
type Envelope struct {
	Levels  []float64
	Playing bool
	At      time.Time
}

// NewEnvelope copies levels into a fresh envelope.
func NewEnvelope(levels []float64, playing bool, at time.Time) Envelope {
	return Envelope{
		Levels:  append([]float64(nil), levels...),
		Playing: playing,
		At:      at,
	}
}

// Publisher receives level snapshots from an analyzer. Implementations must
// not retain levels after returning and must not block. The result reports
// whether the snapshot was accepted for delivery.
type Publisher interface {
	Publish(levels []float64, playing bool) bool
}

// PublisherFunc adapts a function to [Publisher].
type PublisherFunc func(levels []float64, playing bool) bool

// Publish calls f.
func (f PublisherFunc) Publish(levels []float64, playing bool) bool {
	return f(levels, playing)
}
