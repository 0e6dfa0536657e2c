package window

import "github.com/cwbudde/algo-vecmath"

// Cache holds the coefficients of one window type for the most recently
// requested length. Coefficients are regenerated only when the length changes
// or after Invalidate.
//
// A Cache is owned by a single goroutine; it performs no locking.
type Cache struct {
	typ    Type
	coeffs []float64
	valid  bool

	hits   int
	misses int
}

// NewCache returns an empty cache for window type t.
func NewCache(t Type) *Cache {
	return &Cache{typ: t}
}

// Type returns the cached window type.
func (c *Cache) Type() Type { return c.typ }

// Coefficients returns window coefficients of length n. The returned slice is
// owned by the cache and must not be modified.
func (c *Cache) Coefficients(n int) []float64 {
	if n <= 0 {
		return nil
	}

	if c.valid && len(c.coeffs) == n {
		c.hits++
		return c.coeffs
	}

	c.misses++

	if cap(c.coeffs) >= n {
		c.coeffs = c.coeffs[:n]
	} else {
		c.coeffs = make([]float64, n)
	}

	fill(c.typ, c.coeffs)
	c.valid = true

	return c.coeffs
}

// ApplyTo writes src multiplied by the window of len(src) into dst.
// dst must be at least as long as src.
func (c *Cache) ApplyTo(dst, src []float64) error {
	if len(dst) < len(src) {
		return errMismatchedLength
	}

	if len(src) == 0 {
		return nil
	}

	return ApplyCoefficients(dst[:len(src)], src, c.Coefficients(len(src)))
}

// Invalidate forces regeneration on the next request.
func (c *Cache) Invalidate() {
	c.valid = false
}

// Hits returns how many requests were served from the cache.
func (c *Cache) Hits() int { return c.hits }

// Misses returns how many requests regenerated coefficients.
func (c *Cache) Misses() int { return c.misses }

// ApplyInPlace multiplies buf by the window of len(buf).
func (c *Cache) ApplyInPlace(buf []float64) {
	if len(buf) == 0 {
		return
	}

	vecmath.MulBlockInPlace(buf, c.Coefficients(len(buf)))
}
