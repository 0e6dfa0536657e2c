package spectrum

import (
	"errors"
	"math"
	"testing"
)

func TestLayout_Deterministic48k16(t *testing.T) {
	l, err := NewLayout(48000, 16)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}

	centers := l.Centers()
	if len(centers) != 16 {
		t.Fatalf("len = %d, want 16", len(centers))
	}

	if math.Abs(centers[0]-60) > 1e-9 {
		t.Errorf("first center = %v, want 60", centers[0])
	}

	if math.Abs(centers[15]-10000) > 1e-6 {
		t.Errorf("last center = %v, want 10000", centers[15])
	}

	// Spot-check the geometric progression.
	ratio := math.Pow(10000.0/60.0, 1.0/15.0)
	for i, c := range centers {
		want := 60 * math.Pow(ratio, float64(i))
		if math.Abs(c-want) > 1e-6*want {
			t.Errorf("center[%d] = %v, want %v", i, c, want)
		}
	}

	for i, c := range l.Coeffs() {
		want := 2 * math.Cos(2*math.Pi*centers[i]/48000)
		if math.Abs(c-want) > 1e-15 {
			t.Errorf("coeff[%d] = %v, want %v", i, c, want)
		}
	}
}

func TestLayout_Monotonic(t *testing.T) {
	rates := []float64{2000, 8000, 11025, 16000, 22050, 44100, 48000, 96000, 192000}
	for _, fs := range rates {
		for bands := 2; bands <= 64; bands++ {
			l, err := NewLayout(fs, bands)
			if err != nil {
				t.Fatalf("NewLayout(%v, %d): %v", fs, bands, err)
			}

			limit := fs / 2 * NyquistCap
			c := l.Centers()
			for i := range c {
				if c[i] > limit {
					t.Fatalf("fs=%v bands=%d: center[%d]=%v above %v", fs, bands, i, c[i], limit)
				}
				if i > 0 && c[i] <= c[i-1] {
					t.Fatalf("fs=%v bands=%d: center[%d]=%v not above %v", fs, bands, i, c[i], c[i-1])
				}
			}
		}
	}
}

func TestLayout_NarrowSpanFallback(t *testing.T) {
	// Nyquist 1000 Hz: the margin rule leaves no room, so the top band falls
	// back to 90% of Nyquist.
	l, err := NewLayout(2000, 4)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}

	c := l.Centers()
	if math.Abs(c[len(c)-1]-900) > 1e-9 {
		t.Fatalf("last center = %v, want 900", c[len(c)-1])
	}
}

func TestLayout_SingleBand(t *testing.T) {
	l, err := NewLayout(44100, 1)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}

	if l.Len() != 1 || l.Centers()[0] != MinBandHz {
		t.Fatalf("centers = %v, want [60]", l.Centers())
	}
}

func TestLayout_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		fs    float64
		bands int
	}{
		{"zero rate", 0, 16},
		{"negative rate", -48000, 16},
		{"nan rate", math.NaN(), 16},
		{"inf rate", math.Inf(1), 16},
		{"no bands", 48000, 0},
		{"below min band", 100, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLayout(tt.fs, tt.bands)
			if !errors.Is(err, ErrInvalidLayout) {
				t.Fatalf("err = %v, want ErrInvalidLayout", err)
			}
		})
	}
}

func TestLayout_RecomputeReusesAndClearsOnError(t *testing.T) {
	l, _ := NewLayout(48000, 32)
	before := &l.Centers()[0]

	if err := l.Recompute(44100, 16); err != nil {
		t.Fatalf("Recompute: %v", err)
	}

	if &l.Centers()[0] != before {
		t.Error("expected capacity reuse on shrink")
	}

	if l.SampleRate() != 44100 || l.Len() != 16 {
		t.Fatalf("rate=%v len=%d", l.SampleRate(), l.Len())
	}

	if err := l.Recompute(0, 16); err == nil {
		t.Fatal("expected error")
	}

	if l.Len() != 0 {
		t.Fatalf("len = %d after failed recompute, want 0", l.Len())
	}

	var nilLayout *Layout
	if nilLayout.Len() != 0 {
		t.Fatal("nil layout should report zero bands")
	}
}
