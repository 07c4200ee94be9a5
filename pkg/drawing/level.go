package drawing

import (
	"math"

	"github.com/raykavin/tradechart/pkg/geometry"
	"github.com/raykavin/tradechart/pkg/surface"
)

// HorizontalLine marks a price level across the whole plot
type HorizontalLine struct {
	base
	price   float64
	hovered bool
}

// NewHorizontalLine creates a horizontal line in the placing state
func NewHorizontalLine() *HorizontalLine {
	return &HorizontalLine{base: newBase(StatePlacing)}
}

// HorizontalLineAt creates a committed horizontal line
func HorizontalLineAt(price float64) *HorizontalLine {
	return &HorizontalLine{base: newBase(StateCommitted), price: price}
}

func (h *HorizontalLine) Tool() Tool { return ToolHorizontalLine }

// Price returns the marked level
func (h *HorizontalLine) Price() float64 { return h.price }

func (h *HorizontalLine) OnPointerDown(p geometry.Projection, at geometry.Point) bool {
	switch h.state {
	case StatePlacing:
		h.price = p.Value(at.Y)
		h.state = StateCommitted
		return true
	case StateCommitted:
		if math.Abs(p.Y(h.price)-at.Y) <= handleRadius {
			h.state = StateEditing
			return true
		}
	}
	return false
}

func (h *HorizontalLine) OnPointerMove(p geometry.Projection, at geometry.Point) {
	if h.IsActive() {
		h.price = p.Value(at.Y)
		h.hovered = true
	}
}

func (h *HorizontalLine) OnPointerUp(geometry.Projection) {
	if h.state == StateEditing {
		h.state = StateCommitted
	}
}

// Preempt discards a line that was never placed
func (h *HorizontalLine) Preempt() bool {
	if h.state == StatePlacing {
		return false
	}
	h.state = StateCommitted
	return true
}

func (h *HorizontalLine) Render(s surface.Surface, p geometry.Projection, style Style) {
	if h.state == StatePlacing && !h.hovered {
		return
	}

	bounds := p.Bounds()
	surface.HLine(s, h.color(style), bounds.X, bounds.X+bounds.W, p.Y(h.price))
}

// VerticalLine marks a point in time across the whole plot
type VerticalLine struct {
	base
	mts     int64
	hovered bool
}

// NewVerticalLine creates a vertical line in the placing state
func NewVerticalLine() *VerticalLine {
	return &VerticalLine{base: newBase(StatePlacing)}
}

// VerticalLineAt creates a committed vertical line
func VerticalLineAt(mts int64) *VerticalLine {
	return &VerticalLine{base: newBase(StateCommitted), mts: mts}
}

func (v *VerticalLine) Tool() Tool { return ToolVerticalLine }

// MTS returns the marked timestamp
func (v *VerticalLine) MTS() int64 { return v.mts }

func (v *VerticalLine) OnPointerDown(p geometry.Projection, at geometry.Point) bool {
	switch v.state {
	case StatePlacing:
		v.mts = p.MTS(at.X)
		v.state = StateCommitted
		return true
	case StateCommitted:
		if math.Abs(p.X(v.mts)-at.X) <= handleRadius {
			v.state = StateEditing
			return true
		}
	}
	return false
}

func (v *VerticalLine) OnPointerMove(p geometry.Projection, at geometry.Point) {
	if v.IsActive() {
		v.mts = p.MTS(at.X)
		v.hovered = true
	}
}

func (v *VerticalLine) OnPointerUp(geometry.Projection) {
	if v.state == StateEditing {
		v.state = StateCommitted
	}
}

// Preempt discards a line that was never placed
func (v *VerticalLine) Preempt() bool {
	if v.state == StatePlacing {
		return false
	}
	v.state = StateCommitted
	return true
}

func (v *VerticalLine) Render(s surface.Surface, p geometry.Projection, style Style) {
	if v.state == StatePlacing && !v.hovered {
		return
	}

	bounds := p.Bounds()
	surface.VLine(s, v.color(style), p.X(v.mts), bounds.Y, bounds.Y+bounds.H)
}
