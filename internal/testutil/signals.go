package testutil

import (
	"encoding/binary"
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// PCM16 encodes float samples in [-1,1] as little-endian signed 16-bit PCM.
// Values are scaled by 32767 and clipped.
func PCM16(samples []float64) []byte {
	out := make([]byte, 2*len(samples))
	for i, v := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(toInt16(v)))
	}
	return out
}

// PCM16Interleaved encodes equally long channel slices as interleaved
// little-endian signed 16-bit PCM. Shorter channels are zero padded.
func PCM16Interleaved(channels ...[]float64) []byte {
	if len(channels) == 0 {
		return nil
	}

	frames := 0
	for _, ch := range channels {
		frames = max(frames, len(ch))
	}

	out := make([]byte, 2*frames*len(channels))
	pos := 0
	for i := range frames {
		for _, ch := range channels {
			v := 0.0
			if i < len(ch) {
				v = ch[i]
			}
			binary.LittleEndian.PutUint16(out[pos:], uint16(toInt16(v)))
			pos += 2
		}
	}
	return out
}

// Chunks splits b into consecutive pieces with the given sizes, cycling
// through sizes until b is exhausted. Zero or negative sizes are treated as 1.
func Chunks(b []byte, sizes ...int) [][]byte {
	if len(sizes) == 0 {
		return [][]byte{b}
	}

	var out [][]byte
	for i := 0; len(b) > 0; i++ {
		n := max(sizes[i%len(sizes)], 1)
		n = min(n, len(b))
		out = append(out, b[:n])
		b = b[n:]
	}
	return out
}

func toInt16(v float64) int16 {
	s := math.Round(v * 32767)
	if s > math.MaxInt16 {
		s = math.MaxInt16
	}
	if s < math.MinInt16 {
		s = math.MinInt16
	}
	return int16(s)
}
