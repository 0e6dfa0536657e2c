// Package tap implements an inline audio spectrum tap.
//
// A [Processor] sits in a host audio pipeline. Every byte queued into it is
// copied unchanged to its output, while 16-bit PCM input is also downmixed
// into fixed-length frames, analyzed into log-spaced band levels, smoothed and
// published to a [viz.Publisher] at a rate bounded by a shared [viz.Limiter].
//
// Configure, QueueInput, QueueEndOfStream, Output, Flush, Reset, Layout and
// Levels must be called from the single goroutine that drives the pipeline. SetPlaying,
// SetBandCount, SetSmoothing and Stats may be called from any goroutine;
// band count changes are applied at the next frame boundary.
package tap
