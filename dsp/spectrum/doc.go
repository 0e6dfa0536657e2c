// Package spectrum provides coarse, display-oriented spectral estimation.
//
// The core of the package is a bank of Goertzel single-frequency detectors
// evaluated over one windowed frame at a set of log-spaced band centers
// ([Layout]). Each detector output is mapped from dBFS onto a bounded [0,1]
// display level. A [Reference] analyzer computes the same levels from a full
// FFT and is intended for cross-checking, not for the real-time path.
package spectrum
