package geometry

import "fmt"

// Rect describes a rectangular region. Values are device units when the
// rect is a screen or window frame, or 0-100 percentages when the rect is
// a binding frame. Coordinates are top-left origin throughout.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Maximize is the full-frame percentage rect used by bindings that want a
// window to cover the whole destination screen.
var Maximize = Rect{X: 0, Y: 0, Width: 100, Height: 100}

// Span is one axis of a Rect: a start coordinate and an extent.
type Span struct {
	Start float64
	Size  float64
}

// End returns Start + Size.
func (s Span) End() float64 {
	return s.Start + s.Size
}

// Horizontal returns the x/width axis of the rect.
func (r Rect) Horizontal() Span {
	return Span{Start: r.X, Size: r.Width}
}

// Vertical returns the y/height axis of the rect.
func (r Rect) Vertical() Span {
	return Span{Start: r.Y, Size: r.Height}
}

// Compose builds a Rect back from its two axis spans.
func Compose(h, v Span) Rect {
	return Rect{X: h.Start, Y: v.Start, Width: h.Size, Height: v.Size}
}

// LooseEqualRect compares two rects field by field with the default
// tolerance.
func LooseEqualRect(a, b Rect) bool {
	return LooseEqual(a.X, b.X) &&
		LooseEqual(a.Y, b.Y) &&
		LooseEqual(a.Width, b.Width) &&
		LooseEqual(a.Height, b.Height)
}

// ScaleFrame maps a percentage frame (0-100 per field) onto a screen's
// usable frame, producing a device-unit rect.
func ScaleFrame(pct Rect, screen Rect) Rect {
	return Rect{
		X:      screen.X + screen.Width*pct.X/100,
		Y:      screen.Y + screen.Height*pct.Y/100,
		Width:  screen.Width * pct.Width / 100,
		Height: screen.Height * pct.Height / 100,
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}
