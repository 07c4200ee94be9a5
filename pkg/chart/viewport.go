package chart

import (
	"math"

	"github.com/raykavin/tradechart/pkg/config"
	"github.com/raykavin/tradechart/pkg/geometry"
)

// halfPixel keeps one pixel wide strokes on the pixel grid
const halfPixel = 0.5

// Viewport owns the pan state and pixel size of the primary plot and the
// zoom level expressed as a visible candle count
type Viewport struct {
	pan          geometry.Point
	origin       geometry.Point
	size         geometry.Size
	widthCandles int
	zoom         config.Zoom
	margins      config.Margins
}

// NewViewport creates a viewport at the configured default zoom
func NewViewport(zoom config.Zoom, margins config.Margins) Viewport {
	return Viewport{
		widthCandles: max(zoom.MinCandles, zoom.DefaultCandles),
		zoom:         zoom,
		margins:      margins,
	}
}

// SetPixelSize derives the plot size from the host surface dimensions
func (v *Viewport) SetPixelSize(width, height float64) {
	v.size = geometry.Size{
		W: math.Max(0, width-v.margins.Right),
		H: math.Max(0, height-v.margins.Bottom-v.margins.AxisBottom-halfPixel),
	}
}

// Size returns the primary plot size
func (v Viewport) Size() geometry.Size { return v.size }

// PanOffset returns the uncommitted drag offset
func (v Viewport) PanOffset() geometry.Point { return v.pan }

// Origin returns the committed pan
func (v Viewport) Origin() geometry.Point { return v.origin }

// EffectivePan is the committed pan plus the drag in progress
func (v Viewport) EffectivePan() geometry.Point { return v.pan.Add(v.origin) }

// WidthCandles returns the zoom level
func (v Viewport) WidthCandles() int { return v.widthCandles }

// Pan sets the uncommitted offset of the drag in progress
func (v *Viewport) Pan(dx float64) {
	v.pan.X = dx
}

// CommitPan folds the drag offset into the origin. The origin never goes
// right of the newest candle.
func (v *Viewport) CommitPan() {
	v.origin = v.origin.Add(v.pan)
	v.origin.X = math.Max(0, v.origin.X)
	v.pan = geometry.Point{}
}

// CancelPan drops the drag offset
func (v *Viewport) CancelPan() {
	v.pan = geometry.Point{}
}

// Zoom steps the visible candle count. Positive directions zoom out (more
// candles), negative directions zoom in down to the configured floor.
func (v *Viewport) Zoom(direction int) {
	switch {
	case direction > 0:
		v.widthCandles += v.zoom.Step
	case direction < 0:
		v.widthCandles = max(v.zoom.MinCandles, v.widthCandles-v.zoom.Step)
	}
}

// CandleWidth is the pixel pitch of one candle, never below one pixel
func (v Viewport) CandleWidth() float64 {
	if v.widthCandles <= 0 {
		return 1
	}
	return math.Max(1, v.size.W/float64(v.widthCandles))
}
