package spectrum

import "errors"

var (
	// ErrInvalidLayout is returned when a sample rate and band count cannot
	// produce a strictly increasing set of band centers.
	ErrInvalidLayout = errors.New("spectrum: invalid band layout")

	errFrameTooShort  = errors.New("spectrum: frame must contain at least 2 samples")
	errLevelsTooShort = errors.New("spectrum: levels slice shorter than band count")
)
