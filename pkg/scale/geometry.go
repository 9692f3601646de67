package scale

// Size is a logical width/height pair in baseline units.
type Size struct {
	W, H int
}

// Scale returns the size rendered at the given factor.
func (s Size) Scale(factor float64) Size {
	return Size{W: Scale(s.W, factor), H: Scale(s.H, factor)}
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.W == 0 && s.H == 0
}

// Point is a logical coordinate pair in baseline units.
type Point struct {
	X, Y int
}

// Scale returns the point rendered at the given factor.
func (p Point) Scale(factor float64) Point {
	return Point{X: Scale(p.X, factor), Y: Scale(p.Y, factor)}
}

// Insets are logical edge paddings in baseline units.
type Insets struct {
	Top, Left, Bottom, Right int
}

// Scale returns the insets rendered at the given factor.
func (in Insets) Scale(factor float64) Insets {
	return Insets{
		Top:    Scale(in.Top, factor),
		Left:   Scale(in.Left, factor),
		Bottom: Scale(in.Bottom, factor),
		Right:  Scale(in.Right, factor),
	}
}

// Rect is a logical rectangle in baseline units.
type Rect struct {
	X, Y, W, H int
}

// Scale returns the rectangle rendered at the given factor, scaling both
// position and size.
func (r Rect) Scale(factor float64) Rect {
	return Rect{
		X: Scale(r.X, factor),
		Y: Scale(r.Y, factor),
		W: Scale(r.W, factor),
		H: Scale(r.H, factor),
	}
}
