package geom

// Band is the vertical zone of a rectangle a point falls into.
type Band int

const (
	BandNone Band = iota
	BandTop
	BandMiddle
	BandBottom
)

func (b Band) String() string {
	switch b {
	case BandTop:
		return "top"
	case BandMiddle:
		return "middle"
	case BandBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Side is the horizontal half of a rectangle a point falls into.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Inside reports whether (x, y) lies strictly inside p grown by spacing.
func Inside(x, y float64, p Position, spacing float64) bool {
	return y > p.Top-spacing && y < p.Bottom+spacing &&
		x > p.Left-spacing && x < p.Right+spacing
}

// InMiddle reports whether y lies between the top and bottom folds.
// The top boundary is exclusive and the bottom boundary inclusive.
func InMiddle(y float64, p Position, foldHeight float64) bool {
	return y > p.Top+foldHeight && y <= p.Bottom-foldHeight
}

// InTopFold reports whether y lies in the top fold, which starts spacing
// above the rectangle and ends foldHeight below its top edge (inclusive).
func InTopFold(y float64, p Position, foldHeight, spacing float64) bool {
	return y >= p.Top-spacing && y <= p.Top+foldHeight
}

// InBottomFold reports whether y lies in the bottom fold, which starts
// foldHeight above the bottom edge (exclusive) and ends spacing below it.
func InBottomFold(y float64, p Position, foldHeight, spacing float64) bool {
	return y > p.Bottom-foldHeight && y <= p.Bottom+spacing
}

// VerticalBand classifies y against p. The middle band is tested first,
// then the top fold, then the bottom fold, so overlapping folds (offsetY
// above 0.5) resolve in that order.
func VerticalBand(y float64, p Position, foldHeight, spacing float64) Band {
	switch {
	case InMiddle(y, p, foldHeight):
		return BandMiddle
	case InTopFold(y, p, foldHeight, spacing):
		return BandTop
	case InBottomFold(y, p, foldHeight, spacing):
		return BandBottom
	default:
		return BandNone
	}
}

// InLeftFold reports whether x lies within foldWidth of the left edge,
// allowing spacing of slack outside it.
func InLeftFold(x float64, p Position, foldWidth, spacing float64) bool {
	return x >= p.Left-spacing && x <= p.Left+foldWidth
}

// InRightFold reports whether x lies within foldWidth of the right edge,
// allowing spacing of slack outside it.
func InRightFold(x float64, p Position, foldWidth, spacing float64) bool {
	return x <= p.Right+spacing && x >= p.Right-foldWidth
}

// ChildSide classifies x against a child rectangle using a fold of
// offsetX times the child's width. The left fold wins when both match.
func ChildSide(x float64, p Position, offsetX, spacing float64) Side {
	foldWidth := p.Width() * offsetX
	switch {
	case InLeftFold(x, p, foldWidth, spacing):
		return SideLeft
	case InRightFold(x, p, foldWidth, spacing):
		return SideRight
	default:
		return SideNone
	}
}

// HalfSide splits p at left+foldWidth. Points on the split are left.
func HalfSide(x float64, p Position, foldWidth float64) Side {
	if x <= p.Left+foldWidth {
		return SideLeft
	}
	return SideRight
}
