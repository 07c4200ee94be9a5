package surface

import "github.com/raykavin/tradechart/pkg/geometry"

// OpKind identifies a recorded draw call
type OpKind string

const (
	OpPolyline OpKind = "polyline"
	OpFillRect OpKind = "fill_rect"
	OpCircle   OpKind = "circle"
	OpText     OpKind = "text"
)

// Op is one recorded draw call
type Op struct {
	Kind   OpKind
	Color  Color
	Points []geometry.Point
	Rect   geometry.Rect
	Radius float64
	Text   string
	Align  Align
}

// Recorder is a Surface that keeps the draw calls issued since the last Clear.
// It backs headless hosts and tests.
type Recorder struct {
	size     geometry.Size
	fontSize float64
	ops      []Op
	clears   int
}

// NewRecorder creates a recorder of the given pixel size
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{size: geometry.Size{W: width, H: height}, fontSize: 12}
}

// Size implements Surface
func (r *Recorder) Size() geometry.Size { return r.size }

// Resize changes the recorded surface size
func (r *Recorder) Resize(width, height float64) {
	r.size = geometry.Size{W: width, H: height}
}

// Clear implements Surface
func (r *Recorder) Clear() {
	r.ops = r.ops[:0]
	r.clears++
}

// Polyline implements Surface
func (r *Recorder) Polyline(color Color, points ...geometry.Point) {
	if len(points) < 2 {
		return
	}
	r.ops = append(r.ops, Op{Kind: OpPolyline, Color: color, Points: append([]geometry.Point(nil), points...)})
}

// FillRect implements Surface
func (r *Recorder) FillRect(color Color, rect geometry.Rect) {
	r.ops = append(r.ops, Op{Kind: OpFillRect, Color: color, Rect: rect})
}

// Circle implements Surface
func (r *Recorder) Circle(color Color, center geometry.Point, radius float64) {
	r.ops = append(r.ops, Op{Kind: OpCircle, Color: color, Points: []geometry.Point{center}, Radius: radius})
}

// Text implements Surface
func (r *Recorder) Text(color Color, body string, at geometry.Point, align Align) {
	r.ops = append(r.ops, Op{Kind: OpText, Color: color, Text: body, Points: []geometry.Point{at}, Align: align})
}

// MeasureText approximates the label width from the font size
func (r *Recorder) MeasureText(body string) float64 {
	return float64(len(body)) * r.fontSize * 0.6
}

// Ops returns the draw calls recorded since the last Clear
func (r *Recorder) Ops() []Op { return r.ops }

// OpsOf returns the recorded draw calls of one kind
func (r *Recorder) OpsOf(kind OpKind) []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the bodies of every recorded text call
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.OpsOf(OpText) {
		out = append(out, op.Text)
	}
	return out
}

// Clears returns how many times the surface was cleared
func (r *Recorder) Clears() int { return r.clears }
