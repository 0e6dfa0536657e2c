package window

import (
	"testing"

	"github.com/cwbudde/algo-spectap/internal/testutil"
)

func TestCacheReusesCoefficients(t *testing.T) {
	c := NewCache(TypeHann)

	a := c.Coefficients(256)
	b := c.Coefficients(256)

	if &a[0] != &b[0] {
		t.Fatal("expected identical backing array for repeated length")
	}

	if c.Hits() != 1 || c.Misses() != 1 {
		t.Fatalf("hits=%d misses=%d, want 1/1", c.Hits(), c.Misses())
	}
}

func TestCacheRegeneratesOnLengthChange(t *testing.T) {
	c := NewCache(TypeHann)
	c.Coefficients(512)

	w := c.Coefficients(128)
	testutil.RequireSliceNearlyEqual(t, w, Generate(TypeHann, 128), 1e-15)

	w = c.Coefficients(512)
	testutil.RequireSliceNearlyEqual(t, w, Generate(TypeHann, 512), 1e-15)

	if c.Misses() != 3 {
		t.Fatalf("misses=%d, want 3", c.Misses())
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache(TypeHann)
	c.Coefficients(64)
	c.Invalidate()
	c.Coefficients(64)

	if c.Misses() != 2 {
		t.Fatalf("misses=%d, want 2", c.Misses())
	}
}

func TestCacheApplyTo(t *testing.T) {
	c := NewCache(TypeHann)
	src := testutil.Ones(16)
	dst := make([]float64, 16)

	if err := c.ApplyTo(dst, src); err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, dst, Generate(TypeHann, 16), 1e-15)

	for i, v := range src {
		if v != 1 {
			t.Fatalf("src[%d] modified: %v", i, v)
		}
	}

	if err := c.ApplyTo(make([]float64, 4), src); err == nil {
		t.Fatal("expected error for short dst")
	}
}

func TestCacheZeroLength(t *testing.T) {
	c := NewCache(TypeHann)
	if w := c.Coefficients(0); w != nil {
		t.Fatalf("got %v, want nil", w)
	}
}
