package main

import (
	"encoding/binary"
	"math"
)

func sine(freq, sampleRate, amp float64, n int) []float64 {
	out := make([]float64, max(n, 0))
	step := 2 * math.Pi * freq / sampleRate
	for i := range out {
		out[i] = amp * math.Sin(step*float64(i))
	}
	return out
}

// encodePCM16 writes samples as little-endian 16-bit PCM, duplicated to
// every channel.
func encodePCM16(samples []float64, channels int) []byte {
	channels = max(channels, 1)
	out := make([]byte, 2*channels*len(samples))
	pos := 0
	for _, v := range samples {
		s := int16(math.Round(math.Max(-1, math.Min(1, v)) * math.MaxInt16))
		for range channels {
			binary.LittleEndian.PutUint16(out[pos:], uint16(s))
			pos += 2
		}
	}
	return out
}
