package geometry

import (
	"math"
	"testing"
)

const threshold = 5

func reframeX(t *testing.T, win, src, dst Span) (Span, Rule) {
	t.Helper()
	out, rule, err := ReframeAxis(win, src, dst, threshold)
	if err != nil {
		t.Fatalf("unexpected reframe error: %v", err)
	}
	return out, rule
}

func TestReframeAxis_OversizedFillsDestination(t *testing.T) {
	cases := []struct {
		name     string
		win, dst Span
	}{
		{"slightly wider", Span{0, 1300}, Span{0, 1200}},
		{"much wider", Span{-500, 4000}, Span{100, 1000}},
		{"offset destination", Span{0, 2000}, Span{1920, 1280}},
	}
	src := Span{0, 2560}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, rule := reframeX(t, tc.win, src, tc.dst)
			if rule != RuleOversized {
				t.Fatalf("expected oversized rule, got %v", rule)
			}
			if out.Size != tc.dst.Size || out.Start != tc.dst.Start {
				t.Fatalf("expected %+v, got %+v", tc.dst, out)
			}
		})
	}
}

func TestReframeAxis_MaximizedStaysMaximized(t *testing.T) {
	// Window exactly matching the old screen extent maps to exactly the
	// new screen extent, whatever the new size is. A destination smaller
	// than the window is claimed by the oversized rule first; the
	// placement is the same fill either way.
	win := Span{0, 1000}
	src := Span{0, 1000}
	cases := []struct {
		dst  Span
		rule Rule
	}{
		{Span{0, 1200}, RuleMaximized},
		{Span{1000, 800}, RuleOversized},
		{Span{-300, 2560}, RuleMaximized},
	}
	for _, tc := range cases {
		out, rule := reframeX(t, win, src, tc.dst)
		if rule != tc.rule {
			t.Fatalf("expected %v rule for dst %+v, got %v", tc.rule, tc.dst, rule)
		}
		if out != tc.dst {
			t.Fatalf("expected %+v, got %+v", tc.dst, out)
		}
	}
}

func TestReframeAxis_NearMaximizedWithinTolerance(t *testing.T) {
	// 998 vs 1000 is within the relative tolerance.
	out, rule := reframeX(t, Span{1, 998}, Span{0, 1000}, Span{0, 1200})
	if rule != RuleMaximized {
		t.Fatalf("expected maximized rule, got %v", rule)
	}
	if out.Size != 1200 {
		t.Fatalf("expected size 1200, got %g", out.Size)
	}
}

func TestReframeAxis_InteriorKeepsSlackRatio(t *testing.T) {
	// 300px margin each side on a 1000px screen; destination slack is
	// 1100 against an old slack of 600, so the margin scales by 11/6.
	out, rule := reframeX(t, Span{300, 400}, Span{0, 1000}, Span{0, 1500})
	if rule != RuleInterior {
		t.Fatalf("expected interior rule, got %v", rule)
	}
	if out.Start != 550 || out.Size != 400 {
		t.Fatalf("expected start=550 size=400, got %+v", out)
	}
}

func TestReframeAxis_InteriorIsContinuous(t *testing.T) {
	// As the destination size approaches the source size the window must
	// approach its original position.
	win := Span{280, 400}
	src := Span{0, 1000}
	for _, delta := range []float64{100, 10, 1, 0.1, 0.001} {
		dst := Span{0, 1000 + delta}
		out, rule := reframeX(t, win, src, dst)
		if rule != RuleInterior {
			t.Fatalf("expected interior rule at delta %g, got %v", delta, rule)
		}
		drift := math.Abs(out.Start - win.Start)
		// Margin scales by slack ratio, so drift is bounded by the
		// margin share of the added slack.
		if drift > delta {
			t.Fatalf("start drifted %g for a size delta of %g", drift, delta)
		}
	}
}

func TestReframeAxis_FlushStart(t *testing.T) {
	cases := []struct {
		name string
		win  Span
	}{
		{"exactly flush", Span{0, 800}},
		{"flush within threshold", Span{4, 800}},
		{"entirely before screen", Span{-900, 800}},
		{"shifted off the start", Span{-100, 700}},
	}
	src := Span{0, 1000}
	dst := Span{0, 1200}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, rule := reframeX(t, tc.win, src, dst)
			if rule != RuleFlushStart {
				t.Fatalf("expected flush-start rule, got %v", rule)
			}
			if out.Start != 0 || out.Size != tc.win.Size {
				t.Fatalf("expected start=0 size=%g, got %+v", tc.win.Size, out)
			}
		})
	}
}

func TestReframeAxis_FlushEnd(t *testing.T) {
	cases := []struct {
		name      string
		win       Span
		wantStart float64
	}{
		{"exactly flush", Span{950, 50}, 1150},
		{"flush within threshold", Span{947, 50}, 1150},
		{"entirely past screen", Span{1100, 300}, 900},
		{"shifted off the end", Span{800, 300}, 900},
	}
	src := Span{0, 1000}
	dst := Span{0, 1200}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, rule := reframeX(t, tc.win, src, dst)
			if rule != RuleFlushEnd {
				t.Fatalf("expected flush-end rule, got %v", rule)
			}
			if out.Start != tc.wantStart || out.Size != tc.win.Size {
				t.Fatalf("expected start=%g size=%g, got %+v", tc.wantStart, tc.win.Size, out)
			}
		})
	}
}

func TestReframeAxis_OverflowBothEdgesCenters(t *testing.T) {
	// Wider than the visible region on both sides but still narrower
	// than the destination.
	out, rule := reframeX(t, Span{-50, 1100}, Span{0, 1000}, Span{0, 2000})
	if rule != RuleOverflowBoth {
		t.Fatalf("expected overflow-both rule, got %v", rule)
	}
	if out.Start != 450 || out.Size != 1100 {
		t.Fatalf("expected start=450 size=1100, got %+v", out)
	}
}

func TestReframeAxis_RulesAreExhaustive(t *testing.T) {
	// Sweep a dense grid of window positions and sizes over asymmetric
	// source and destination screens; the unclassified branch must never
	// be reached.
	src := Span{Start: 100, Size: 1000}
	dst := Span{Start: -200, Size: 1440}
	for start := -400.0; start <= 1600; start += 7 {
		for size := 10.0; size <= 1600; size += 13 {
			_, rule, err := ReframeAxis(Span{start, size}, src, dst, threshold)
			if err != nil || rule == RuleUnclassified {
				t.Fatalf("unclassified placement for start=%g size=%g", start, size)
			}
		}
	}
}

func TestReframe_ComposesBothAxes(t *testing.T) {
	win := Rect{X: 0, Y: 300, Width: 800, Height: 400}
	src := Rect{X: 0, Y: 0, Width: 1000, Height: 1000}
	dst := Rect{X: 0, Y: 0, Width: 1200, Height: 1500}

	out, err := Reframe(win, src, dst, threshold)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Horizontal: flush-left. Vertical: interior, margin 300 each side,
	// slack scales 600 -> 1100.
	want := Rect{X: 0, Y: 550, Width: 800, Height: 400}
	if out != want {
		t.Fatalf("expected %v, got %v", want, out)
	}
}

func TestScaleFrame(t *testing.T) {
	screen := Rect{X: 1920, Y: 0, Width: 1000, Height: 800}
	half := Rect{X: 50, Y: 0, Width: 50, Height: 100}
	got := ScaleFrame(half, screen)
	want := Rect{X: 2420, Y: 0, Width: 500, Height: 800}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}

	full := ScaleFrame(Maximize, screen)
	if full != screen {
		t.Fatalf("expected maximize to cover the screen, got %v", full)
	}
}
