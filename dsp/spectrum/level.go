package spectrum

import "math"

const (
	// MinDB is the bottom of the displayed dBFS window; it maps to level 0.
	MinDB = -60.0
	// BoostMax is the extra gain applied to the highest band.
	BoostMax = 0.08
	// Epsilon keeps the logarithm finite for silent frames.
	Epsilon = 1e-9
)

// MagnitudeToDB converts a normalized magnitude to dBFS, clamped to <= 0.
func MagnitudeToDB(mag float64) float64 {
	db := 20 * mathLog10(mag+Epsilon)
	if db > 0 {
		db = 0
	}

	return db
}

// DBToLevel maps the MinDB..0 dB window linearly onto 0..1 without clamping
// the lower end.
func DBToLevel(db float64) float64 {
	return (db - MinDB) / -MinDB
}

// LevelFromMagnitude returns the display level for a magnitude normalized to
// full scale (1.0 = 0 dBFS), clamped to [0,1].
func LevelFromMagnitude(mag float64) float64 {
	return clampUnit(DBToLevel(MagnitudeToDB(mag)))
}

// Boost returns the tilt applied to band i of n: 1 at the lowest band rising
// linearly to 1+BoostMax at the highest.
func Boost(i, n int) float64 {
	if n < 2 {
		return 1
	}

	return 1 + BoostMax*float64(i)/float64(n-1)
}

func clampUnit(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}

	if v > 1 {
		return 1
	}

	return v
}
