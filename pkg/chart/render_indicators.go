package chart

import (
	"github.com/raykavin/tradechart/pkg/core"
	"github.com/raykavin/tradechart/pkg/geometry"
	"github.com/raykavin/tradechart/pkg/indicator"
	"github.com/raykavin/tradechart/pkg/surface"
)

const rsiScale = 100

func (c *Chart) renderIndicators(f Frame) {
	s := c.surfaces.Indicator
	s.Clear()
	if !f.Drawable() {
		return
	}

	settings := f.Layout.Settings(c.series, c.cfg.Indicators)
	for _, setting := range settings {
		series := c.series[setting.Index]
		values := f.Series[setting.Index][f.Warmup[setting.Index]:]
		candles := f.Candles[f.Warmup[setting.Index]:]
		color := c.colors[setting.Index]

		if setting.Slot < 0 {
			c.drawSeries(s, f.Price, candles, values, color)
		} else {
			c.renderSlot(s, f, series.Spec, setting.Slot, candles, values, color)
		}

		s.Text(c.theme.indicatorLabel, setting.Name,
			geometry.Point{X: c.cfg.Indicators.LabelX, Y: setting.Y + c.cfg.Axis.FontSize}, surface.AlignLeft)
	}

	if c.callbacks.OnUpdateIndicatorSettings != nil {
		c.callbacks.OnUpdateIndicatorSettings(settings, f.Layout.OHLCHeight, f.Layout.SlotHeight)
	}
}

// renderSlot draws an external indicator in its own band below the time
// axis. RSI slots use a fixed 0..100 scale with the configured bands; other
// slots scale to their warmed up data and mark the minimum.
func (c *Chart) renderSlot(s surface.Surface, f Frame, spec indicator.Spec, slot int,
	candles core.Candles, values core.Series[float64], color surface.Color) {

	logical, right := f.Price.LogicalWidth(), f.Price.RightMTS()

	var (
		transformer geometry.Transformer
		references  []float64
	)

	if spec.Kind.RenderType == indicator.RenderRSI {
		transformer = geometry.NewRangeTransformer(0, rsiScale, logical, right)
		references = c.cfg.Indicators.RSIBands
	} else {
		transformer = geometry.NewTransformer(values, logical, right)
		references = []float64{transformer.Min()}
	}

	p := geometry.Project(transformer, geometry.Point{Y: f.Layout.SlotTop(slot)}, f.Price.Width, f.Layout.SlotHeight)

	for _, ref := range references {
		y := p.Y(ref)
		surface.HLine(s, c.theme.axisTick, 0, f.Layout.Plot.W, y)
		s.Text(c.theme.axisLabel, FormatAxisTick(ref), geometry.Point{X: f.Layout.Plot.W + 5, Y: y}, surface.AlignLeft)
	}

	c.drawSeries(s, p, candles, values, color)
}

// drawSeries strokes values against the candle timestamps. Callers pass the
// series with its warm up already trimmed, so zero is a real value.
func (c *Chart) drawSeries(s surface.Surface, p geometry.Projection, candles core.Candles,
	values core.Series[float64], color surface.Color) {

	points := make([]geometry.Point, 0, len(values))
	for i, v := range values {
		if i >= len(candles) {
			break
		}
		points = append(points, p.Point(candles[i].MTS, v))
	}
	s.Polyline(color, points...)
}
