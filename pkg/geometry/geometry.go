// Package geometry maps chart data (timestamps and prices) into pixel space.
package geometry

import "math"

// Point is a pixel coordinate, origin top-left
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p - q
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Size is a pixel extent
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Empty reports whether the size covers no area
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Rect is an axis aligned pixel rectangle
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies within r, edges included
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// DistanceToSegment returns the pixel distance from p to the segment ab
func DistanceToSegment(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	if dx == 0 && dy == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / (dx*dx + dy*dy)
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}
