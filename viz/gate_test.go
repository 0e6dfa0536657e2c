package viz

import (
	"testing"
	"time"
)

func TestGateSpacing(t *testing.T) {
	for _, fps := range []int{5, 24, 30, 60} {
		clock := newManualClock()
		g := NewGate(NewLimiter(fps), clock.Now)
		minGap := int64(1000 / fps)

		var stamps []int64
		for range 2000 {
			if g.TryAcquire() {
				stamps = append(stamps, clock.Now().UnixMilli())
			}
			clock.Advance(time.Millisecond)
		}

		if len(stamps) < 2 {
			t.Fatalf("fps=%d: only %d publishes", fps, len(stamps))
		}

		for i := 1; i < len(stamps); i++ {
			if gap := stamps[i] - stamps[i-1]; gap < minGap {
				t.Fatalf("fps=%d: gap %d ms < %d ms", fps, gap, minGap)
			}
		}
	}
}

func TestGateReadyAndMark(t *testing.T) {
	clock := newManualClock()
	g := NewGate(NewLimiter(10), clock.Now)

	if !g.Ready() {
		t.Fatal("new gate should be ready")
	}

	g.Mark()
	if g.Ready() {
		t.Fatal("gate should not be ready right after Mark")
	}

	clock.Advance(99 * time.Millisecond)
	if g.Ready() {
		t.Fatal("gate ready before interval elapsed")
	}

	clock.Advance(time.Millisecond)
	if !g.Ready() {
		t.Fatal("gate should be ready after interval")
	}

	// Ready does not consume the slot.
	if !g.Ready() {
		t.Fatal("Ready should be side-effect free")
	}
}

func TestGateSharedLimiterChangeIsImmediate(t *testing.T) {
	clock := newManualClock()
	l := NewLimiter(5)
	a := NewGate(l, clock.Now)
	b := NewGate(l, clock.Now)

	a.Mark()
	b.Mark()
	clock.Advance(20 * time.Millisecond)

	if a.Ready() || b.Ready() {
		t.Fatal("gates should wait 200 ms at 5 fps")
	}

	l.SetMaxFPS(60)

	if !a.Ready() || !b.Ready() {
		t.Fatal("gates should follow the new 16 ms interval")
	}
}

func TestGateReset(t *testing.T) {
	clock := newManualClock()
	g := NewGate(NewLimiter(5), clock.Now)

	g.Mark()
	g.Reset()

	if !g.Ready() {
		t.Fatal("gate should be ready after Reset")
	}
}

func TestGateDefaults(t *testing.T) {
	g := NewGate(nil, nil)
	if g.Limiter() != Default() {
		t.Fatal("nil limiter should use Default()")
	}

	if !g.TryAcquire() {
		t.Fatal("first TryAcquire should succeed")
	}
}
