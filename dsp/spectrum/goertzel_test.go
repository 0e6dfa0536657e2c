package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-spectap/internal/testutil"
)

func TestGoertzel_Basic(t *testing.T) {
	sampleRate := 48000.0
	freq0 := 1000.0
	length := 1024
	sig := testutil.DeterministicSine(freq0, sampleRate, 1.0, length)

	goertzel, err := NewGoertzel(freq0, sampleRate)
	if err != nil {
		t.Fatalf("NewGoertzel: %v", err)
	}

	goertzel.ProcessBlock(sig)
	pwr := goertzel.Power()

	// Compare with a direct DFT calculation at that exact frequency.
	var dft complex128

	for n, x := range sig {
		angle := -2 * math.Pi * freq0 / sampleRate * float64(n)
		dft += complex(x, 0) * cmplx.Exp(complex(0, angle))
	}

	wantP := real(dft)*real(dft) + imag(dft)*imag(dft)

	// Use a relative tolerance for power as it can grow large
	if math.Abs(pwr-wantP) > 1e-7*wantP {
		t.Errorf("Power mismatch: got %v, want %v (diff %v)", pwr, wantP, math.Abs(pwr-wantP))
	}

	mag := goertzel.Magnitude()

	wantMag := cmplx.Abs(dft)
	if math.Abs(mag-wantMag) > 1e-7*wantMag {
		t.Errorf("Magnitude mismatch: got %v, want %v (diff %v)", mag, wantMag, math.Abs(mag-wantMag))
	}
}

func TestGoertzel_SampleByBlockParity(t *testing.T) {
	sig := testutil.DeterministicNoise(7, 0.5, 300)

	a, _ := NewGoertzel(2500, 44100)
	b, _ := NewGoertzel(2500, 44100)

	a.ProcessBlock(sig)
	for _, x := range sig {
		b.ProcessSample(x)
	}

	if a.Power() != b.Power() {
		t.Fatalf("block power %v != sample power %v", a.Power(), b.Power())
	}
}

func TestGoertzel_Reset(t *testing.T) {
	goertzel, _ := NewGoertzel(1000, 48000)
	goertzel.ProcessSample(1.0)

	if goertzel.Power() == 0 {
		t.Error("Power should be non-zero after processing")
	}

	goertzel.Reset()

	if goertzel.Power() != 0 {
		t.Error("Power should be zero after reset")
	}
}

func TestGoertzel_Setters(t *testing.T) {
	goertzel, _ := NewGoertzel(1000, 48000)

	if err := goertzel.SetFrequency(2000); err != nil {
		t.Errorf("SetFrequency: %v", err)
	}

	if goertzel.Frequency() != 2000 {
		t.Errorf("Frequency: got %v, want 2000", goertzel.Frequency())
	}

	if goertzel.Coeff() != RecurrenceCoeff(2000, 48000) {
		t.Errorf("Coeff not retuned: %v", goertzel.Coeff())
	}

	if goertzel.SampleRate() != 48000 {
		t.Errorf("SampleRate: got %v, want 48000", goertzel.SampleRate())
	}

	if err := goertzel.SetFrequency(-1); err == nil {
		t.Error("SetFrequency should fail for negative frequency")
	}

	if err := goertzel.SetFrequency(24001); err == nil {
		t.Error("SetFrequency should fail for frequency > fs/2")
	}
}

func TestGoertzel_InvalidConstruction(t *testing.T) {
	if _, err := NewGoertzel(100, 0); err == nil {
		t.Error("expected error for zero sample rate")
	}

	if _, err := NewGoertzel(math.NaN(), 48000); err == nil {
		t.Error("expected error for NaN frequency")
	}
}

func TestGoertzel_DC(t *testing.T) {
	goertzel, _ := NewGoertzel(0, 48000)
	goertzel.ProcessBlock(testutil.DC(1.0, 100))

	// DFT sum for DC of 1.0 is 100. Power is 100^2 = 10000.
	if pwr := goertzel.Power(); math.Abs(pwr-10000) > 1e-9 {
		t.Errorf("DC power mismatch: got %v, want 10000", pwr)
	}
}

func TestGoertzel_SilenceMagnitude(t *testing.T) {
	goertzel, _ := NewGoertzel(1000, 48000)
	goertzel.ProcessBlock(make([]float64, 512))

	if goertzel.Magnitude() != 0 {
		t.Errorf("Magnitude = %v, want 0 for silence", goertzel.Magnitude())
	}
}
