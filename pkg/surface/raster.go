package surface

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/raykavin/tradechart/pkg/geometry"
	"github.com/wcharczuk/go-chart/v2"
)

// Raster is a Surface backed by a go-chart PNG renderer. Clear swaps in a
// fresh transparent renderer.
type Raster struct {
	width    int
	height   int
	fontSize float64
	renderer chart.Renderer
}

// NewRaster creates a transparent raster surface
func NewRaster(width, height int, fontSize float64) (*Raster, error) {
	r := &Raster{width: width, height: height, fontSize: fontSize}
	if err := r.reset(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Raster) reset() error {
	renderer, err := chart.PNG(r.width, r.height)
	if err != nil {
		return fmt.Errorf("failed to create png renderer: %w", err)
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("failed to load default font: %w", err)
	}

	renderer.SetFont(font)
	renderer.SetFontSize(r.fontSize)
	r.renderer = renderer
	return nil
}

// Resize changes the surface size and clears it
func (r *Raster) Resize(width, height int) error {
	r.width, r.height = width, height
	return r.reset()
}

// Size implements Surface
func (r *Raster) Size() geometry.Size {
	return geometry.Size{W: float64(r.width), H: float64(r.height)}
}

// Clear implements Surface. A renderer that cannot be recreated keeps the
// previous contents; the failure can only come from the font loader, which
// already succeeded in NewRaster.
func (r *Raster) Clear() {
	_ = r.reset()
}

// Polyline implements Surface
func (r *Raster) Polyline(color Color, points ...geometry.Point) {
	if len(points) < 2 {
		return
	}

	r.renderer.SetStrokeColor(color.drawing())
	r.renderer.SetStrokeWidth(1)
	r.renderer.MoveTo(px(points[0].X), px(points[0].Y))
	for _, p := range points[1:] {
		r.renderer.LineTo(px(p.X), px(p.Y))
	}
	r.renderer.Stroke()
	r.renderer.ResetStyle()
}

// FillRect implements Surface. Negative extents are normalized.
func (r *Raster) FillRect(color Color, rect geometry.Rect) {
	if rect.W < 0 {
		rect.X, rect.W = rect.X+rect.W, -rect.W
	}
	if rect.H < 0 {
		rect.Y, rect.H = rect.Y+rect.H, -rect.H
	}

	r.renderer.SetFillColor(color.drawing())
	r.renderer.MoveTo(px(rect.X), px(rect.Y))
	r.renderer.LineTo(px(rect.X+rect.W), px(rect.Y))
	r.renderer.LineTo(px(rect.X+rect.W), px(rect.Y+rect.H))
	r.renderer.LineTo(px(rect.X), px(rect.Y+rect.H))
	r.renderer.Close()
	r.renderer.Fill()
	r.renderer.ResetStyle()
}

// Circle implements Surface
func (r *Raster) Circle(color Color, center geometry.Point, radius float64) {
	r.renderer.SetFillColor(color.drawing())
	r.renderer.SetStrokeColor(color.drawing())
	r.renderer.Circle(radius, px(center.X), px(center.Y))
	r.renderer.FillStroke()
	r.renderer.ResetStyle()
}

// Text implements Surface
func (r *Raster) Text(color Color, body string, at geometry.Point, align Align) {
	r.renderer.SetFontColor(color.drawing())
	r.renderer.SetFontSize(r.fontSize)
	x := alignedX(at.X, r.MeasureText(body), align)
	r.renderer.Text(body, px(x), px(at.Y))
	r.renderer.ResetStyle()
}

// MeasureText implements Surface
func (r *Raster) MeasureText(body string) float64 {
	r.renderer.SetFontSize(r.fontSize)
	return float64(r.renderer.MeasureText(body).Width())
}

// WritePNG encodes the surface contents
func (r *Raster) WritePNG(w io.Writer) error {
	return r.renderer.Save(w)
}

// Image decodes the surface contents into an image
func (r *Raster) Image() (image.Image, error) {
	var buf bytes.Buffer
	if err := r.renderer.Save(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode layer: %w", err)
	}
	return png.Decode(&buf)
}

func px(v float64) int {
	return int(math.Round(v))
}
