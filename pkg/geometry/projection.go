package geometry

// Projection binds a Transformer to a concrete target box on a surface.
// Offset translates the box; Width and Height are the box extents.
type Projection struct {
	Transformer
	Offset Point
	Width  float64
	Height float64
}

// Project creates a projection of t onto a width x height box at offset
func Project(t Transformer, offset Point, width, height float64) Projection {
	return Projection{Transformer: t, Offset: offset, Width: width, Height: height}
}

// X maps a timestamp to an absolute pixel column
func (p Projection) X(mts int64) float64 {
	return p.Offset.X + p.Transformer.X(mts, p.Width)
}

// Y maps a value to an absolute pixel row
func (p Projection) Y(v float64) float64 {
	return p.Offset.Y + p.Transformer.Y(v, p.Height)
}

// Point maps a (timestamp, value) pair to an absolute pixel
func (p Projection) Point(mts int64, v float64) Point {
	return Point{X: p.X(mts), Y: p.Y(v)}
}

// MTS maps an absolute pixel column back to a timestamp
func (p Projection) MTS(x float64) int64 {
	return p.Transformer.MTS(x-p.Offset.X, p.Width)
}

// Value maps an absolute pixel row back to a value
func (p Projection) Value(y float64) float64 {
	return p.Transformer.Value(y-p.Offset.Y, p.Height)
}

// Bounds returns the projected box
func (p Projection) Bounds() Rect {
	return Rect{X: p.Offset.X, Y: p.Offset.Y, W: p.Width, H: p.Height}
}
