package geometry

import "testing"

func TestLooseEqual_Identity(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 0.0001, 1920, -1080.5} {
		if !LooseEqual(v, v) {
			t.Fatalf("expected LooseEqual(%g, %g) to be true", v, v)
		}
	}
}

func TestLooseEqualEps_ZeroEpsilonIsExact(t *testing.T) {
	if !LooseEqualEps(5, 5, 0) {
		t.Fatalf("expected equal values to pass with eps=0")
	}
	if LooseEqualEps(5, 5.0000001, 0) {
		t.Fatalf("expected unequal values to fail with eps=0")
	}
}

func TestLooseEqual_WithinTolerance(t *testing.T) {
	// Base is |a|/2 + |b| = 500 + 1014 = 1514, so 1% allows a gap of 15.14.
	if !LooseEqualEps(1000, 1000, 0.01) {
		t.Fatalf("exact match rejected")
	}
	if !LooseEqualEps(1000, 1014, 0.01) {
		t.Fatalf("expected 1000 ~ 1014 within 1%%")
	}
	if LooseEqualEps(1000, 1020, 0.01) {
		t.Fatalf("expected 1000 !~ 1020 within 1%%")
	}
	if LooseEqualEps(1000, 1100, 0.01) {
		t.Fatalf("expected 1000 !~ 1100 within 1%%")
	}
}

func TestLooseEqualEps_AsymmetricBase(t *testing.T) {
	// The tolerance base weighs b double, so swapping the arguments can
	// flip the result near the boundary.
	a, b := 100.0, 120.0
	eps := 0.12
	// base(a,b) = 50 + 120 = 170 -> gap 20 <= 20.4, true
	if !LooseEqualEps(a, b, eps) {
		t.Fatalf("expected LooseEqualEps(%g, %g, %g) to be true", a, b, eps)
	}
	// base(b,a) = 60 + 100 = 160 -> gap 20 > 19.2, false
	if LooseEqualEps(b, a, eps) {
		t.Fatalf("expected LooseEqualEps(%g, %g, %g) to be false", b, a, eps)
	}
}

func TestLooseEqualRect(t *testing.T) {
	a := Rect{X: 100, Y: 200, Width: 800, Height: 600}
	if !LooseEqualRect(a, a) {
		t.Fatalf("rect should loosely equal itself")
	}
	b := a
	b.Width = 900
	if LooseEqualRect(a, b) {
		t.Fatalf("rects with a 100px width gap should not match")
	}
}
