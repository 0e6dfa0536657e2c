// Package cpu reports the SIMD extensions available to the vector kernels
// behind window application and magnitude computation.
//
// Detection runs once and is cached.
package cpu

import (
	"strings"
	"sync"
)

// SIMDLevel names an instruction set extension. Levels are ordered within an
// architecture only.
type SIMDLevel int

const (
	SIMDNone SIMDLevel = iota
	SIMDSSE2
	SIMDAVX
	SIMDAVX2
	SIMDAVX512
	SIMDNEON
)

// String returns a human-readable name for the SIMD level.
func (s SIMDLevel) String() string {
	switch s {
	case SIMDNone:
		return "None"
	case SIMDSSE2:
		return "SSE2"
	case SIMDAVX:
		return "AVX"
	case SIMDAVX2:
		return "AVX2"
	case SIMDAVX512:
		return "AVX-512"
	case SIMDNEON:
		return "NEON"
	default:
		return "Unknown"
	}
}

// Features describes the CPU capabilities relevant to kernel selection.
type Features struct {
	HasSSE2   bool
	HasAVX    bool
	HasAVX2   bool
	HasAVX512 bool
	HasNEON   bool

	Architecture string
}

var (
	detected   Features
	detectOnce sync.Once
)

// Detect returns the features of the current CPU.
func Detect() Features {
	detectOnce.Do(func() {
		detected = detectFeaturesImpl()
	})

	return detected
}

// Best returns the most capable level supported by f.
func (f Features) Best() SIMDLevel {
	switch {
	case f.HasAVX512:
		return SIMDAVX512
	case f.HasAVX2:
		return SIMDAVX2
	case f.HasAVX:
		return SIMDAVX
	case f.HasSSE2:
		return SIMDSSE2
	case f.HasNEON:
		return SIMDNEON
	default:
		return SIMDNone
	}
}

// Supports reports whether f can run kernels built for level.
func (f Features) Supports(level SIMDLevel) bool {
	switch level {
	case SIMDNone:
		return true
	case SIMDSSE2:
		return f.HasSSE2
	case SIMDAVX:
		return f.HasAVX
	case SIMDAVX2:
		return f.HasAVX2
	case SIMDAVX512:
		return f.HasAVX512
	case SIMDNEON:
		return f.HasNEON
	default:
		return false
	}
}

// Levels returns every supported level above SIMDNone in ascending order.
func (f Features) Levels() []SIMDLevel {
	var out []SIMDLevel
	for l := SIMDSSE2; l <= SIMDNEON; l++ {
		if f.Supports(l) {
			out = append(out, l)
		}
	}
	return out
}

// String formats f as "arch: level, level".
func (f Features) String() string {
	levels := f.Levels()
	if len(levels) == 0 {
		return f.Architecture + ": generic"
	}

	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.String()
	}

	return f.Architecture + ": " + strings.Join(names, ", ")
}
