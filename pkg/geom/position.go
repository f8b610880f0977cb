package geom

import "fmt"

// Position is an axis-aligned rectangle in screen coordinates.
// Y grows downwards, so Top <= Bottom and Left <= Right for a valid rectangle.
type Position struct {
	Top    float64 `json:"top" yaml:"top"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
	Right  float64 `json:"right" yaml:"right"`
}

// Rect builds a Position from an origin and a size.
func Rect(x, y, w, h float64) Position {
	return Position{Top: y, Bottom: y + h, Left: x, Right: x + w}
}

// Width returns the horizontal span of the rectangle.
func (p Position) Width() float64 { return p.Right - p.Left }

// Height returns the vertical span of the rectangle.
func (p Position) Height() float64 { return p.Bottom - p.Top }

// CenterX returns the horizontal center point.
func (p Position) CenterX() float64 { return (p.Left + p.Right) / 2 }

// CenterY returns the vertical center point.
func (p Position) CenterY() float64 { return (p.Top + p.Bottom) / 2 }

// Outset returns the rectangle grown by d on every side.
// Negative values shrink it.
func (p Position) Outset(d float64) Position {
	return Position{Top: p.Top - d, Bottom: p.Bottom + d, Left: p.Left - d, Right: p.Right + d}
}

// Valid reports whether Top <= Bottom and Left <= Right.
func (p Position) Valid() bool {
	return p.Top <= p.Bottom && p.Left <= p.Right
}

// MustValid panics when p is inverted. Hit-testing never validates its
// inputs; callers that want a fail-fast precondition call this while
// assembling geometry.
func MustValid(p Position) Position {
	if !p.Valid() {
		panic(fmt.Sprintf("geom: inverted rectangle %+v", p))
	}
	return p
}
