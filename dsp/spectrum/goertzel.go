package spectrum

import (
	"fmt"
	"math"
)

// Goertzel implements the Goertzel algorithm for single-bin frequency analysis.
//
// The Goertzel algorithm is an efficient way to evaluate individual terms
// of the Discrete Fourier Transform (DFT) without computing the entire FFT.
// A bank of Goertzel filters is cheaper than a transform when the number of
// frequencies of interest is small relative to the block length.
//
// The analyzer is stateful and accumulates information from each processed
// sample. Power() and Magnitude() evaluate the frequency component based on
// all samples processed since the last Reset().
//
// Spectral leakage occurs if the target frequency does not align with an
// integer number of cycles within the processed block. Windowing the input
// signal before processing reduces leakage at the cost of widening the
// main lobe.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
}

// NewGoertzel creates a new Goertzel analyzer for the target frequency.
//
// frequency must be between 0 and sampleRate/2.
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}

	if frequency < 0 || frequency > sampleRate/2 || math.IsNaN(frequency) || math.IsInf(frequency, 0) {
		return nil, fmt.Errorf("goertzel: frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	g := &Goertzel{}
	g.tune(frequency, sampleRate)

	return g, nil
}

// RecurrenceCoeff returns the Goertzel feedback coefficient 2*cos(2*pi*f/fs).
func RecurrenceCoeff(frequency, sampleRate float64) float64 {
	return 2 * math.Cos(2*math.Pi*frequency/sampleRate)
}

func (g *Goertzel) tune(frequency, sampleRate float64) {
	g.frequency = frequency
	g.sampleRate = sampleRate
	g.coeff = RecurrenceCoeff(frequency, sampleRate)
}

// Reset clears the internal state.
func (g *Goertzel) Reset() {
	g.s0 = 0
	g.s1 = 0
}

// ProcessSample updates the internal state with a single input sample.
func (g *Goertzel) ProcessSample(input float64) {
	s := input + g.coeff*g.s0 - g.s1
	g.s1 = g.s0
	g.s0 = s
}

// ProcessBlock updates the internal state with a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1

	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
}

// Power returns the squared magnitude of the frequency component.
//
// The result is equivalent to |X[k]|^2 from a DFT of the same block length.
// Rounding can push the value slightly below zero for silent input.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns the magnitude of the frequency component.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}

	return mathSqrt(p)
}

// SetFrequency updates the target frequency.
func (g *Goertzel) SetFrequency(frequency float64) error {
	if frequency < 0 || frequency > g.sampleRate/2 || math.IsNaN(frequency) || math.IsInf(frequency, 0) {
		return fmt.Errorf("goertzel: frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	g.tune(frequency, g.sampleRate)

	return nil
}

// Frequency returns the current target frequency.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// SampleRate returns the current sample rate.
func (g *Goertzel) SampleRate() float64 { return g.sampleRate }

// Coeff returns the recurrence coefficient.
func (g *Goertzel) Coeff() float64 { return g.coeff }
