package chart

import (
	"github.com/raykavin/tradechart/pkg/geometry"
	"github.com/raykavin/tradechart/pkg/surface"
)

const yLabelGap = 10

func (c *Chart) renderAxes(f Frame) {
	s := c.surfaces.Axis
	s.Clear()
	if !f.Drawable() {
		return
	}

	c.renderXAxis(s, f)
	c.renderYAxis(s, f)
}

func (c *Chart) renderXAxis(s surface.Surface, f Frame) {
	axis := c.cfg.Axis
	plotW, ohlcHeight := f.Layout.Plot.W, f.Layout.OHLCHeight
	labelY := ohlcHeight + axis.FontSize + axis.LabelMargin

	surface.HLine(s, c.theme.axis, 0, plotW, ohlcHeight)

	left, right := f.Candles[0].MTS, f.Candles[len(f.Candles)-1].MTS
	ticks, divisor := XTicks(left, right, axis.XTickCount)

	for _, tick := range ticks {
		x := f.Price.X(tick)
		if x < 0 || x > plotW {
			continue
		}

		surface.VLine(s, c.theme.axisTick, x, 0, ohlcHeight)
		s.Text(c.theme.axisLabel, timeLabel(tick, divisor, axis.TimeLayout, axis.DayLayout),
			geometry.Point{X: x, Y: labelY}, surface.AlignCenter)
	}
}

func (c *Chart) renderYAxis(s surface.Surface, f Frame) {
	plotW, ohlcHeight := f.Layout.Plot.W, f.Layout.OHLCHeight

	surface.VLine(s, c.theme.axis, plotW, 0, ohlcHeight)

	for _, tick := range YTicks(f.Price.Min(), f.Price.Max(), c.cfg.Axis.YTickCount) {
		y := f.Price.Y(tick)
		surface.HLine(s, c.theme.axisTick, 0, plotW, y)
		s.Text(c.theme.axisLabel, FormatAxisTick(tick), geometry.Point{X: plotW + yLabelGap, Y: y}, surface.AlignLeft)
	}
}
