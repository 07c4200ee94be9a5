package drawing

import (
	"github.com/raykavin/tradechart/pkg/geometry"
	"github.com/raykavin/tradechart/pkg/surface"
)

// Line is a two point segment. Placing takes two pointer downs; the second
// anchor follows the pointer in between.
type Line struct {
	base
	anchors  [2]Anchor
	fixed    int
	dragging int
}

// NewLine creates a line in the placing state
func NewLine() *Line {
	return &Line{base: newBase(StatePlacing), dragging: -1}
}

// LineBetween creates a committed line
func LineBetween(a, b Anchor) *Line {
	return &Line{base: newBase(StateCommitted), anchors: [2]Anchor{a, b}, fixed: 2, dragging: -1}
}

func (l *Line) Tool() Tool { return ToolLine }

// Anchors returns both endpoints
func (l *Line) Anchors() [2]Anchor { return l.anchors }

// Fixed returns how many anchors have been placed
func (l *Line) Fixed() int { return l.fixed }

func (l *Line) OnPointerDown(p geometry.Projection, at geometry.Point) bool {
	switch l.state {
	case StatePlacing:
		anchor := anchorAt(p, at)
		l.anchors[l.fixed] = anchor
		if l.fixed == 0 {
			l.anchors[1] = anchor
		}

		l.fixed++
		if l.fixed == len(l.anchors) {
			l.state = StateCommitted
		}
		return true

	case StateCommitted:
		for i, anchor := range l.anchors {
			if near(p.Point(anchor.MTS, anchor.Price), at) {
				l.state = StateEditing
				l.dragging = i
				return true
			}
		}
	}

	return false
}

func (l *Line) OnPointerMove(p geometry.Projection, at geometry.Point) {
	switch {
	case l.state == StatePlacing && l.fixed == 1:
		l.anchors[1] = anchorAt(p, at)
	case l.state == StateEditing && l.dragging >= 0:
		l.anchors[l.dragging] = anchorAt(p, at)
	}
}

func (l *Line) OnPointerUp(geometry.Projection) {
	if l.state == StateEditing {
		l.state = StateCommitted
		l.dragging = -1
	}
}

// Preempt keeps the line once its first anchor is fixed, using the
// pointer-tracked second anchor
func (l *Line) Preempt() bool {
	switch l.state {
	case StateEditing:
		l.state = StateCommitted
		l.dragging = -1
		return true
	case StatePlacing:
		if l.fixed == 0 {
			return false
		}
		l.fixed = len(l.anchors)
		l.state = StateCommitted
		return true
	}
	return true
}

func (l *Line) Render(s surface.Surface, p geometry.Projection, style Style) {
	if l.fixed == 0 {
		return
	}

	a := p.Point(l.anchors[0].MTS, l.anchors[0].Price)
	b := p.Point(l.anchors[1].MTS, l.anchors[1].Price)
	s.Polyline(l.color(style), a, b)

	if l.IsActive() {
		drawHandles(s, style, a, b)
	}
}
