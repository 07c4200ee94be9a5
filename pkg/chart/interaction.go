package chart

import "github.com/raykavin/tradechart/pkg/geometry"

// PointerDown offers the event to the drawing tools first. When no
// annotation claims it, a viewport drag starts at the pointer.
func (c *Chart) PointerDown(at geometry.Point) {
	f := c.Frame()
	if c.drawings.PointerDown(f.Price, at) {
		c.renderDrawings(f)
		return
	}

	c.dragging = true
	c.dragStart = at
}

// PointerMove pans while dragging and otherwise only refreshes the drawing
// layer with the new hover position
func (c *Chart) PointerMove(at geometry.Point) {
	c.hover = &at

	if !c.dragging {
		f := c.Frame()
		c.drawings.PointerMove(f.Price, at)
		c.renderDrawings(f)
		return
	}

	c.viewport.Pan(at.X - c.dragStart.X)
	c.checkLoadMore()
	c.Render()
}

// PointerUp commits the drag and forwards the event to the active drawing
func (c *Chart) PointerUp() {
	c.drawings.PointerUp(c.Frame().Price)

	if c.dragging {
		c.viewport.CommitPan()
		c.dragging = false
	}

	c.Render()
}

// PointerLeave hides the crosshair and abandons a drag in progress
func (c *Chart) PointerLeave() {
	c.hover = nil

	if c.dragging {
		c.viewport.CancelPan()
		c.dragging = false
		c.Render()
		return
	}

	c.renderDrawings(c.Frame())
}

// Wheel zooms the viewport; positive deltas zoom out. It returns true so the
// host suppresses the default scroll.
func (c *Chart) Wheel(deltaY float64) bool {
	switch {
	case deltaY > 0:
		c.viewport.Zoom(1)
	case deltaY < 0:
		c.viewport.Zoom(-1)
	default:
		return true
	}

	c.log.WithField("width_candles", c.viewport.WidthCandles()).Debug("viewport zoomed")
	c.checkLoadMore()
	c.Render()
	return true
}

// checkLoadMore signals the host once each time the window moves past the
// oldest buffered candle. The signal re-arms when the window comes back or
// new data arrives.
func (c *Chart) checkLoadMore() {
	width := c.viewport.WidthCandles()
	offset := CandleOffset(c.viewport.EffectivePan().X, c.viewport.CandleWidth())

	needed := offset + width - len(c.candles)
	if needed <= 0 {
		c.loadMore = false
		return
	}
	if c.loadMore {
		return
	}

	c.loadMore = true
	count := max(needed, width)

	c.log.WithField("count", count).Debug("requesting older candles")
	if c.callbacks.OnLoadMore != nil {
		c.callbacks.OnLoadMore(count)
	}
}
