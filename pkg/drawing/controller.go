package drawing

import (
	"errors"
	"fmt"

	"github.com/StudioSol/set"
	"github.com/raykavin/tradechart/pkg/geometry"
	"github.com/raykavin/tradechart/pkg/logger"
	"github.com/raykavin/tradechart/pkg/surface"
)

var ErrUnknownTool = errors.New("unknown drawing tool")

// Controller owns the annotation list and routes pointer events to the one
// active annotation. It is idle when no annotation is active.
type Controller struct {
	log    logger.Logger
	order  *set.LinkedHashSetString
	byID   map[string]Annotation
	active Annotation
}

// NewController creates an idle controller
func NewController(log logger.Logger) *Controller {
	return &Controller{
		log:   log,
		order: set.NewLinkedHashSetString(),
		byID:  make(map[string]Annotation),
	}
}

// New creates a placing annotation for tool
func New(tool Tool) (Annotation, error) {
	switch tool {
	case ToolLine:
		return NewLine(), nil
	case ToolHorizontalLine:
		return NewHorizontalLine(), nil
	case ToolVerticalLine:
		return NewVerticalLine(), nil
	case ToolParallelLines:
		return NewParallelLines(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, tool)
	}
}

// State returns the state of the active annotation, or idle
func (c *Controller) State() State {
	if c.active == nil {
		return StateIdle
	}
	return c.active.State()
}

// Active returns the active annotation, if any
func (c *Controller) Active() Annotation { return c.active }

// Select starts placing a new annotation for tool, preempting the active one
func (c *Controller) Select(tool Tool) (Annotation, error) {
	annotation, err := New(tool)
	if err != nil {
		return nil, err
	}

	c.preempt()
	c.add(annotation)
	c.active = annotation

	c.log.WithField("tool", tool).Debug("drawing tool selected")
	return annotation, nil
}

// Cancel discards the active annotation
func (c *Controller) Cancel() {
	if c.active == nil {
		return
	}

	c.log.WithField("tool", c.active.Tool()).Debug("drawing tool cancelled")
	c.discard(c.active)
}

// Replace swaps the annotation list. Annotations still being placed or
// edited are finalized or discarded like on a tool change.
func (c *Controller) Replace(annotations []Annotation) {
	c.active = nil
	c.order = set.NewLinkedHashSetString()
	c.byID = make(map[string]Annotation, len(annotations))

	for _, annotation := range annotations {
		if annotation.IsActive() && !annotation.Preempt() {
			annotation.Cancel()
			continue
		}
		c.add(annotation)
	}
}

// Annotations returns the annotations in render order
func (c *Controller) Annotations() []Annotation {
	out := make([]Annotation, 0, c.order.Length())
	for id := range c.order.Iter() {
		out = append(out, c.byID[id])
	}
	return out
}

// PointerDown forwards to the active annotation, or lets the topmost
// committed annotation grab the pointer for editing. It reports whether the
// event was consumed.
func (c *Controller) PointerDown(p geometry.Projection, at geometry.Point) bool {
	if c.active != nil {
		consumed := c.active.OnPointerDown(p, at)
		c.settle()
		return consumed
	}

	annotations := c.Annotations()
	for i := len(annotations) - 1; i >= 0; i-- {
		if annotations[i].OnPointerDown(p, at) {
			c.active = annotations[i]
			c.log.WithField("tool", c.active.Tool()).Debug("drawing edit started")
			return true
		}
	}

	return false
}

// PointerMove forwards to the active annotation and reports whether one
// received the event
func (c *Controller) PointerMove(p geometry.Projection, at geometry.Point) bool {
	if c.active == nil {
		return false
	}

	c.active.OnPointerMove(p, at)
	return true
}

// PointerUp forwards to the active annotation
func (c *Controller) PointerUp(p geometry.Projection) {
	if c.active == nil {
		return
	}

	c.active.OnPointerUp(p)
	c.settle()
}

// Render draws every annotation in insertion order
func (c *Controller) Render(s surface.Surface, p geometry.Projection, style Style) {
	for _, annotation := range c.Annotations() {
		annotation.Render(s, p, style)
	}
}

// settle releases the active slot once the annotation has committed
func (c *Controller) settle() {
	if c.active != nil && !c.active.IsActive() {
		c.log.WithField("tool", c.active.Tool()).Debug("drawing committed")
		c.active = nil
	}
}

func (c *Controller) preempt() {
	if c.active == nil {
		return
	}

	if c.active.Preempt() {
		c.log.WithField("tool", c.active.Tool()).Debug("drawing finalized by tool change")
		c.active = nil
		return
	}

	c.log.WithField("tool", c.active.Tool()).Debug("drawing discarded by tool change")
	c.discard(c.active)
}

func (c *Controller) add(annotation Annotation) {
	c.order.Add(annotation.ID())
	c.byID[annotation.ID()] = annotation
}

func (c *Controller) discard(annotation Annotation) {
	annotation.Cancel()
	c.order.Remove(annotation.ID())
	delete(c.byID, annotation.ID())
	if c.active == annotation {
		c.active = nil
	}
}
