package buffer

import "encoding/binary"

// pcm16Scale normalizes signed 16-bit samples to [-1, 1).
const pcm16Scale = 1.0 / 32768

// Frame accumulates mono samples until it holds exactly Size() of them.
//
// A Frame is owned by a single goroutine. The slice handed to the onFull
// callback is the frame's own storage and is only valid for the duration of
// the callback.
type Frame struct {
	samples []float64
	fill    int
}

// NewFrame returns an empty frame of the given size. Sizes below 1 are raised to 1.
func NewFrame(size int) *Frame {
	return &Frame{samples: make([]float64, max(size, 1))}
}

// Size returns the frame capacity in samples.
func (f *Frame) Size() int { return len(f.samples) }

// Len returns the number of samples accumulated so far.
func (f *Frame) Len() int { return f.fill }

// Samples returns the accumulated samples.
func (f *Frame) Samples() []float64 { return f.samples[:f.fill] }

// Reset discards accumulated samples.
func (f *Frame) Reset() { f.fill = 0 }

// Resize changes the frame size, reusing capacity when possible, and
// discards accumulated samples.
func (f *Frame) Resize(size int) {
	size = max(size, 1)
	if cap(f.samples) >= size {
		f.samples = f.samples[:size]
	} else {
		f.samples = make([]float64, size)
	}

	f.fill = 0
}

// Push appends one sample. When the frame fills, onFull is invoked with the
// complete frame and the frame is emptied. It reports whether a frame completed.
func (f *Frame) Push(x float64, onFull func([]float64)) bool {
	f.samples[f.fill] = x
	f.fill++

	if f.fill < len(f.samples) {
		return false
	}

	f.fill = 0
	if onFull != nil {
		onFull(f.samples)
	}

	return true
}

// AppendPCM16 downmixes interleaved little-endian signed 16-bit PCM by taking
// the first channel of every sample frame, normalizing it by 1/32768 and
// pushing it into the frame. Trailing bytes that do not form a whole sample
// frame are ignored. It returns the number of sample frames consumed.
func (f *Frame) AppendPCM16(b []byte, channels int, onFull func([]float64)) int {
	if channels < 1 {
		return 0
	}

	stride := 2 * channels
	n := 0

	for pos := 0; pos+stride <= len(b); pos += stride {
		v := int16(binary.LittleEndian.Uint16(b[pos:]))
		f.Push(float64(v)*pcm16Scale, onFull)
		n++
	}

	return n
}
