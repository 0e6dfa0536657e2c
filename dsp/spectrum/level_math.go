//go:build !fastmath

package spectrum

import "math"

func mathLog10(x float64) float64 {
	return math.Log10(x)
}

func mathSqrt(x float64) float64 {
	return math.Sqrt(x)
}
