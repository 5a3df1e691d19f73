package geometry

import "fmt"

// Rule identifies which branch of the axis placement policy produced a
// result. Exposed so callers can log placement decisions and tests can
// assert on the classification.
type Rule int

const (
	RuleOversized Rule = iota + 1
	RuleMaximized
	RuleInterior
	RuleFlushStart
	RuleFlushEnd
	RuleOverflowBoth
	RuleUnclassified
)

func (r Rule) String() string {
	switch r {
	case RuleOversized:
		return "oversized"
	case RuleMaximized:
		return "maximized"
	case RuleInterior:
		return "interior"
	case RuleFlushStart:
		return "flush-start"
	case RuleFlushEnd:
		return "flush-end"
	case RuleOverflowBoth:
		return "overflow-both"
	case RuleUnclassified:
		return "unclassified"
	}
	return fmt.Sprintf("rule(%d)", int(r))
}

// ErrUnclassified is returned by ReframeAxis when none of the placement
// rules matched. The accompanying span is a safe leading-edge fallback;
// hitting this branch means the rule set failed to partition the input.
var ErrUnclassified = fmt.Errorf("window position matched no placement rule")

// ReframeAxis maps a window's extent along one axis from a source screen
// onto a destination screen. win, src and dst are spans along the same
// axis (x/width or y/height); edgeThreshold is the distance in device
// units within which a window edge counts as snapped to a screen edge.
//
// Rules are tried in priority order; the first match wins:
//
//  1. wider than the destination: fill it
//  2. maximized on the source (within tolerance): stay maximized
//  3. interior with margin on both sides: keep the proportional position
//     within the available slack
//  4. flush with or hanging off the leading edge: snap to the leading edge
//  5. flush with or hanging off the trailing edge: snap to the trailing edge
//  6. overflowing both edges: center
//
// A span that matches none of the rules is snapped to the leading edge and
// reported via ErrUnclassified.
func ReframeAxis(win, src, dst Span, edgeThreshold float64) (Span, Rule, error) {
	startDelta := win.Start - src.Start
	endDelta := win.End() - src.End()

	switch {
	case win.Size > dst.Size:
		return Span{Start: dst.Start, Size: dst.Size}, RuleOversized, nil

	// The maximized check is relative, not threshold-based: feeding a
	// device-unit threshold into the relative tolerance would classify
	// every window as maximized.
	case LooseEqual(win.Size, src.Size):
		return Span{Start: dst.Start, Size: dst.Size}, RuleMaximized, nil

	case startDelta >= edgeThreshold && endDelta <= -edgeThreshold:
		// Margin on both sides. Map the leading margin through the ratio
		// of the destination's slack to the source's slack, so a window a
		// third of the way into the old slack lands a third of the way
		// into the new slack.
		scale := (dst.Size - win.Size) / (src.Size - win.Size)
		return Span{Start: startDelta*scale + dst.Start, Size: win.Size}, RuleInterior, nil

	case abs(startDelta) <= edgeThreshold || win.End() <= src.Start || (startDelta < 0 && endDelta < 0):
		return Span{Start: dst.Start, Size: win.Size}, RuleFlushStart, nil

	case abs(endDelta) <= edgeThreshold || win.Start >= src.End() || (startDelta > 0 && endDelta > 0):
		return Span{Start: dst.End() - win.Size, Size: win.Size}, RuleFlushEnd, nil

	case startDelta < 0 && endDelta > 0:
		return Span{Start: dst.Start + (dst.Size-win.Size)/2, Size: win.Size}, RuleOverflowBoth, nil
	}

	return Span{Start: dst.Start, Size: win.Size}, RuleUnclassified, ErrUnclassified
}

// Reframe maps a full window frame from a source screen onto a destination
// screen, running the axis policy independently for x/width and y/height.
// The two axis results are composed into the returned rect; any
// unclassified axis is reported through the error while the rect still
// carries the fallback placement.
func Reframe(win, src, dst Rect, edgeThreshold float64) (Rect, error) {
	h, _, errH := ReframeAxis(win.Horizontal(), src.Horizontal(), dst.Horizontal(), edgeThreshold)
	v, _, errV := ReframeAxis(win.Vertical(), src.Vertical(), dst.Vertical(), edgeThreshold)
	if errH != nil {
		return Compose(h, v), fmt.Errorf("horizontal axis: %w", errH)
	}
	if errV != nil {
		return Compose(h, v), fmt.Errorf("vertical axis: %w", errV)
	}
	return Compose(h, v), nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
