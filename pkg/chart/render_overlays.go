package chart

import (
	"fmt"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/raykavin/tradechart/pkg/core"
	"github.com/raykavin/tradechart/pkg/geometry"
	"github.com/raykavin/tradechart/pkg/surface"
)

const (
	crosshairBoxHeight  = 14
	crosshairBoxBottom  = 17
	crosshairTextBottom = 5
	crosshairPadding    = 4
	levelLabelX         = 5
	levelLabelLift      = 3
)

// renderDrawings redraws the annotations and, while the pointer hovers
// without dragging, the crosshair
func (c *Chart) renderDrawings(f Frame) {
	s := c.surfaces.Drawing
	s.Clear()

	crosshair := c.surfaces.Crosshair
	if crosshair != nil {
		crosshair.Clear()
	} else {
		crosshair = s
	}

	if !f.Drawable() {
		return
	}

	c.drawings.Render(s, f.Price, c.theme.drawing)

	if c.hover != nil && !c.dragging {
		c.renderCrosshair(crosshair, f, *c.hover)
	}
}

func (c *Chart) renderCrosshair(s surface.Surface, f Frame, at geometry.Point) {
	bottom := s.Size().H

	surface.VLine(s, c.theme.crosshair, at.X, 0, bottom)
	surface.HLine(s, c.theme.crosshair, 0, f.Layout.Plot.W, at.Y)

	mts := f.Price.MTS(at.X)
	label := time.UnixMilli(mts).UTC().Format(c.cfg.Axis.HoverLayout)
	width := s.MeasureText(label) + crosshairPadding*2

	s.FillRect(c.theme.crosshairBox, geometry.Rect{
		X: at.X - width/2,
		Y: bottom - crosshairBoxBottom,
		W: width,
		H: crosshairBoxHeight,
	})
	s.Text(c.theme.crosshairText, label, geometry.Point{X: at.X, Y: bottom - crosshairTextBottom}, surface.AlignCenter)

	if candle, ok := f.Candles.Nearest(mts); ok && c.callbacks.OnHoveredCandle != nil {
		c.callbacks.OnHoveredCandle(candle)
	}
}

// renderOrders draws the resting orders and the open position as price
// levels. Levels outside the visible price range are skipped.
func (c *Chart) renderOrders(f Frame) {
	s := c.surfaces.Orders
	s.Clear()
	if !f.Drawable() {
		return
	}

	orders := lo.Filter(c.orders, func(o core.Order, _ int) bool {
		return f.Price.InRange(o.Price)
	})
	position := c.position != nil && c.position.Amount != 0 && f.Price.InRange(c.position.BasePrice)
	if len(orders) == 0 && !position {
		return
	}

	for _, order := range orders {
		color := c.theme.sellOrder
		if order.Buy() {
			color = c.theme.buyOrder
		}
		c.drawLevel(s, f, color, order.Price, fmt.Sprintf("%s @ %s", formatAmount(order.Amount), FormatAxisTick(order.Price)))
	}

	if position {
		color := c.theme.shortPosition
		if c.position.Long() {
			color = c.theme.longPosition
		}
		c.drawLevel(s, f, color, c.position.BasePrice,
			fmt.Sprintf("position %s @ %s", formatAmount(c.position.Amount), FormatAxisTick(c.position.BasePrice)))
	}
}

func (c *Chart) drawLevel(s surface.Surface, f Frame, color surface.Color, price float64, label string) {
	y := f.Price.Y(price)
	surface.HLine(s, color, 0, f.Layout.Plot.W, y)
	s.Text(color, label, geometry.Point{X: levelLabelX, Y: y - levelLabelLift}, surface.AlignLeft)
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
