// Package surface defines the drawing surfaces the chart engine renders onto
// and ships two implementations: a Recorder that keeps every draw call and a
// Raster backed by go-chart that produces PNG images.
package surface

import "github.com/raykavin/tradechart/pkg/geometry"

// Align is the horizontal anchor of a text label
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Surface is a layer the engine exclusively owns. Every affected update clears
// it and redraws it wholesale.
type Surface interface {
	Size() geometry.Size
	Clear()
	Polyline(color Color, points ...geometry.Point)
	FillRect(color Color, rect geometry.Rect)
	Circle(color Color, center geometry.Point, radius float64)
	Text(color Color, body string, at geometry.Point, align Align)
	MeasureText(body string) float64
}

// HLine strokes a horizontal line across [x0, x1] at row y
func HLine(s Surface, color Color, x0, x1, y float64) {
	s.Polyline(color, geometry.Point{X: x0, Y: y}, geometry.Point{X: x1, Y: y})
}

// VLine strokes a vertical line across [y0, y1] at column x
func VLine(s Surface, color Color, x, y0, y1 float64) {
	s.Polyline(color, geometry.Point{X: x, Y: y0}, geometry.Point{X: x, Y: y1})
}

// alignedX shifts x so that a label of the given width honours align
func alignedX(x, width float64, align Align) float64 {
	switch align {
	case AlignCenter:
		return x - width/2
	case AlignRight:
		return x - width
	default:
		return x
	}
}
