package drawing

import (
	"github.com/raykavin/tradechart/pkg/geometry"
	"github.com/raykavin/tradechart/pkg/surface"
)

// ParallelLines is a channel: a base segment plus a copy shifted by a price
// offset. Placing takes three pointer downs: two for the base, one for the
// offset.
type ParallelLines struct {
	base
	anchors  [2]Anchor
	offset   float64
	fixed    int
	dragging int
}

const dragOffset = 2

// NewParallelLines creates a channel in the placing state
func NewParallelLines() *ParallelLines {
	return &ParallelLines{base: newBase(StatePlacing), dragging: -1}
}

// ParallelLinesBetween creates a committed channel
func ParallelLinesBetween(a, b Anchor, offset float64) *ParallelLines {
	return &ParallelLines{
		base:     newBase(StateCommitted),
		anchors:  [2]Anchor{a, b},
		offset:   offset,
		fixed:    3,
		dragging: -1,
	}
}

func (pl *ParallelLines) Tool() Tool { return ToolParallelLines }

// Anchors returns the base segment endpoints
func (pl *ParallelLines) Anchors() [2]Anchor { return pl.anchors }

// Offset returns the price distance of the parallel segment
func (pl *ParallelLines) Offset() float64 { return pl.offset }

// priceAt interpolates the base segment at mts
func (pl *ParallelLines) priceAt(mts int64) float64 {
	a, b := pl.anchors[0], pl.anchors[1]
	if a.MTS == b.MTS {
		return a.Price
	}
	return a.Price + (b.Price-a.Price)*float64(mts-a.MTS)/float64(b.MTS-a.MTS)
}

func (pl *ParallelLines) OnPointerDown(p geometry.Projection, at geometry.Point) bool {
	switch pl.state {
	case StatePlacing:
		anchor := anchorAt(p, at)
		switch pl.fixed {
		case 0:
			pl.anchors = [2]Anchor{anchor, anchor}
		case 1:
			pl.anchors[1] = anchor
		default:
			pl.offset = anchor.Price - pl.priceAt(anchor.MTS)
			pl.state = StateCommitted
		}
		pl.fixed++
		return true

	case StateCommitted:
		a, b, c, d := pl.points(p)
		switch {
		case near(a, at):
			pl.dragging = 0
		case near(b, at):
			pl.dragging = 1
		case geometry.DistanceToSegment(at, c, d) <= handleRadius:
			pl.dragging = dragOffset
		default:
			return false
		}
		pl.state = StateEditing
		return true
	}

	return false
}

func (pl *ParallelLines) OnPointerMove(p geometry.Projection, at geometry.Point) {
	anchor := anchorAt(p, at)

	switch pl.state {
	case StatePlacing:
		switch pl.fixed {
		case 1:
			pl.anchors[1] = anchor
		case 2:
			pl.offset = anchor.Price - pl.priceAt(anchor.MTS)
		}
	case StateEditing:
		if pl.dragging == dragOffset {
			pl.offset = anchor.Price - pl.priceAt(anchor.MTS)
		} else if pl.dragging >= 0 {
			pl.anchors[pl.dragging] = anchor
		}
	}
}

func (pl *ParallelLines) OnPointerUp(geometry.Projection) {
	if pl.state == StateEditing {
		pl.state = StateCommitted
		pl.dragging = -1
	}
}

// Preempt keeps the channel once its base segment is fixed
func (pl *ParallelLines) Preempt() bool {
	if pl.state == StatePlacing && pl.fixed < 2 {
		return false
	}
	pl.fixed = 3
	pl.state = StateCommitted
	pl.dragging = -1
	return true
}

// points returns the base endpoints followed by the shifted endpoints
func (pl *ParallelLines) points(p geometry.Projection) (a, b, c, d geometry.Point) {
	a = p.Point(pl.anchors[0].MTS, pl.anchors[0].Price)
	b = p.Point(pl.anchors[1].MTS, pl.anchors[1].Price)
	c = p.Point(pl.anchors[0].MTS, pl.anchors[0].Price+pl.offset)
	d = p.Point(pl.anchors[1].MTS, pl.anchors[1].Price+pl.offset)
	return a, b, c, d
}

func (pl *ParallelLines) Render(s surface.Surface, p geometry.Projection, style Style) {
	if pl.fixed == 0 {
		return
	}

	color := pl.color(style)
	a, b, c, d := pl.points(p)
	s.Polyline(color, a, b)
	if pl.fixed >= 2 {
		s.Polyline(color, c, d)
	}

	if pl.IsActive() {
		drawHandles(s, style, a, b)
	}
}
