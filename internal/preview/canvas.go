package preview

import (
	"fmt"
	"io"

	"github.com/raykavin/tradechart/pkg/chart"
	"github.com/raykavin/tradechart/pkg/surface"
)

// Canvas is the set of raster layers a headless chart renders onto
type Canvas struct {
	ohlc      *surface.Raster
	axis      *surface.Raster
	indicator *surface.Raster
	drawing   *surface.Raster
	orders    *surface.Raster
	crosshair *surface.Raster
}

// NewCanvas allocates every layer at width x height
func NewCanvas(width, height int, fontSize float64) (*Canvas, error) {
	c := &Canvas{}
	for _, layer := range c.slots() {
		raster, err := surface.NewRaster(width, height, fontSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create canvas layer: %w", err)
		}
		*layer = raster
	}
	return c, nil
}

func (c *Canvas) slots() []**surface.Raster {
	return []**surface.Raster{&c.axis, &c.ohlc, &c.indicator, &c.orders, &c.drawing, &c.crosshair}
}

// layers returns the rasters bottom to top
func (c *Canvas) layers() []*surface.Raster {
	out := make([]*surface.Raster, 0, 6)
	for _, layer := range c.slots() {
		out = append(out, *layer)
	}
	return out
}

// Surfaces binds the layers to the chart render passes
func (c *Canvas) Surfaces() chart.Surfaces {
	return chart.Surfaces{
		OHLC:      c.ohlc,
		Axis:      c.axis,
		Indicator: c.indicator,
		Drawing:   c.drawing,
		Orders:    c.orders,
		Crosshair: c.crosshair,
	}
}

// Resize reallocates every layer. The chart must re-render afterwards.
func (c *Canvas) Resize(width, height int) error {
	for _, layer := range c.layers() {
		if err := layer.Resize(width, height); err != nil {
			return err
		}
	}
	return nil
}

// WritePNG flattens the layers over background
func (c *Canvas) WritePNG(w io.Writer, background surface.Color) error {
	return surface.ComposePNG(w, background, c.layers()...)
}
