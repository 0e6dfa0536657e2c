package tap

import (
	"fmt"
	"strings"
)

// Encoding identifies the sample encoding of a PCM stream.
type Encoding int

const (
	EncodingInvalid Encoding = iota
	EncodingPCM8
	EncodingPCM16
	EncodingPCM24
	EncodingPCM32
	EncodingPCMFloat
)

var encodingNames = map[Encoding]string{
	EncodingInvalid:  "invalid",
	EncodingPCM8:     "pcm8",
	EncodingPCM16:    "pcm16",
	EncodingPCM24:    "pcm24",
	EncodingPCM32:    "pcm32",
	EncodingPCMFloat: "float",
}

var encodingBytes = map[Encoding]int{
	EncodingPCM8:     1,
	EncodingPCM16:    2,
	EncodingPCM24:    3,
	EncodingPCM32:    4,
	EncodingPCMFloat: 4,
}

// String returns the lower-case encoding name.
func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}

	return fmt.Sprintf("encoding(%d)", int(e))
}

// ParseEncoding resolves an encoding name as returned by [Encoding.String].
func ParseEncoding(name string) (Encoding, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for e, n := range encodingNames {
		if n == name && e != EncodingInvalid {
			return e, nil
		}
	}

	return EncodingInvalid, fmt.Errorf("tap: unknown encoding %q", name)
}

// Format describes a PCM stream negotiated with the host pipeline.
type Format struct {
	SampleRate int
	Channels   int
	Encoding   Encoding
}

// BytesPerFrame returns the size of one interleaved sample frame, or 0 if
// the format is incomplete.
func (f Format) BytesPerFrame() int {
	return encodingBytes[f.Encoding] * max(f.Channels, 0)
}

// Analyzable reports whether the tap can analyze this format.
func (f Format) Analyzable() bool {
	return f.Encoding == EncodingPCM16 && f.SampleRate > 0 && f.Channels > 0
}

func (f Format) String() string {
	return fmt.Sprintf("%d Hz, %d ch, %s", f.SampleRate, f.Channels, f.Encoding)
}
