// Package drawing implements the user drawn annotations and the tool state
// machine that creates and edits them.
package drawing

import (
	"math"

	"github.com/google/uuid"
	"github.com/raykavin/tradechart/pkg/geometry"
	"github.com/raykavin/tradechart/pkg/surface"
)

// State is the local lifecycle state of an annotation
type State string

const (
	StateIdle      State = "idle"
	StatePlacing   State = "placing"
	StateEditing   State = "editing"
	StateCommitted State = "committed"
	StateCancelled State = "cancelled"
)

// Tool names an annotation variant
type Tool string

const (
	ToolLine           Tool = "line"
	ToolHorizontalLine Tool = "horizontal_line"
	ToolVerticalLine   Tool = "vertical_line"
	ToolParallelLines  Tool = "parallel_lines"
)

// Tools lists the selectable tools
var Tools = []Tool{ToolLine, ToolHorizontalLine, ToolVerticalLine, ToolParallelLines}

// Anchor is a point in data space
type Anchor struct {
	MTS   int64   `json:"mts"`
	Price float64 `json:"price"`
}

// Style carries the colors annotations render with
type Style struct {
	Color        surface.Color
	Active       surface.Color
	HandleRadius float64
}

// Annotation is a drawing primitive. Pointer handlers receive the
// projection of the primary plot so they can map pixels to anchors.
type Annotation interface {
	ID() string
	Tool() Tool
	State() State
	IsActive() bool
	Render(s surface.Surface, p geometry.Projection, style Style)
	// OnPointerDown reports whether the annotation consumed the event. A
	// committed annotation consumes it when the pointer grabs one of its
	// handles, entering the editing state.
	OnPointerDown(p geometry.Projection, at geometry.Point) bool
	OnPointerMove(p geometry.Projection, at geometry.Point)
	OnPointerUp(p geometry.Projection)
	// Preempt is called when another tool takes over. It returns false when
	// the annotation has too little geometry to survive and must be
	// discarded.
	Preempt() bool
	Cancel()
}

// handleRadius is the grab distance, in pixels, of annotation handles
const handleRadius = 6.0

type base struct {
	id    string
	state State
}

func newBase(state State) base {
	return base{id: uuid.NewString(), state: state}
}

func (b *base) ID() string     { return b.id }
func (b *base) State() State   { return b.state }
func (b *base) IsActive() bool { return b.state == StatePlacing || b.state == StateEditing }
func (b *base) Cancel()        { b.state = StateCancelled }

// color picks the active color while the annotation is being placed or edited
func (b *base) color(style Style) surface.Color {
	if b.IsActive() {
		return style.Active
	}
	return style.Color
}

func anchorAt(p geometry.Projection, at geometry.Point) Anchor {
	return Anchor{MTS: p.MTS(at.X), Price: p.Value(at.Y)}
}

func near(a, b geometry.Point) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= handleRadius
}

func drawHandles(s surface.Surface, style Style, points ...geometry.Point) {
	radius := style.HandleRadius
	if radius <= 0 {
		radius = 3
	}
	for _, point := range points {
		s.Circle(style.Active, point, radius)
	}
}
