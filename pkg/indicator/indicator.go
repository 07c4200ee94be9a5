// Package indicator defines the capability contract chart indicators
// implement, the bundled reference variants and the pipeline that turns a
// candle history into one value series per configured indicator.
package indicator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/raykavin/tradechart/pkg/core"
)

// DataType tells the pipeline what an indicator consumes
type DataType string

const (
	DataCandle DataType = "candle"
	DataTrade  DataType = "trade"
)

// WholeCandle is the data key of indicators that consume every OHLCV field
const WholeCandle = "*"

// Placement selects where an indicator renders
type Placement string

const (
	Overlay  Placement = "overlay"
	External Placement = "external"
)

// RenderType selects the external slot decoration
type RenderType string

const (
	RenderLine RenderType = "line"
	RenderRSI  RenderType = "rsi"
)

// Input is one ingestion. Scalar carries the keyed field for indicators
// bound to a single OHLCV field; Candle is always populated.
type Input struct {
	Candle core.Candle
	Trade  core.Trade
	Scalar float64
}

// Indicator is a stateful series calculator fed in chronological order
type Indicator interface {
	Name() string
	DataType() DataType
	DataKey() string
	Add(in Input)
	// Value returns the value after the last Add. Values before warm up may
	// be NaN; the pipeline normalizes them.
	Value() float64
}

// MaxPeriod bounds window arguments so a spec cannot allocate unbounded buffers
const MaxPeriod = 10000

var ErrInvalidArgument = errors.New("invalid indicator argument")

// ArgDef describes one positional argument. A zero Max leaves the value
// unbounded.
type ArgDef struct {
	Label   string  `json:"label"`
	Default float64 `json:"default"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Integer bool    `json:"integer"`
}

func periodArg(def float64) ArgDef {
	return ArgDef{Label: "Period", Default: def, Min: 1, Max: MaxPeriod, Integer: true}
}

func (a ArgDef) validate(v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return fmt.Errorf("%w: %s must be finite", ErrInvalidArgument, a.Label)
	case a.Integer && v != math.Trunc(v):
		return fmt.Errorf("%w: %s must be a whole number, got %v", ErrInvalidArgument, a.Label, v)
	case a.Max > 0 && (v < a.Min || v > a.Max):
		return fmt.Errorf("%w: %s must be between %v and %v, got %v", ErrInvalidArgument, a.Label, a.Min, a.Max, v)
	}
	return nil
}

// Meta is the static UI description of a kind
type Meta struct {
	ID         string     `json:"id"`
	Label      string     `json:"label"`
	Placement  Placement  `json:"placement"`
	RenderType RenderType `json:"render_type"`
	Args       []ArgDef   `json:"args"`
}

// Kind is an indicator variant: metadata plus a constructor
type Kind struct {
	Meta
	Build func(args []float64) Indicator
}

// Defaults returns the default argument list
func (k Kind) Defaults() []float64 {
	out := make([]float64, len(k.Args))
	for i, arg := range k.Args {
		out[i] = arg.Default
	}
	return out
}

// Spec pairs a kind with its arguments and display color
type Spec struct {
	Kind  Kind
	Args  []float64
	Color string
}

// NewSpec creates a spec for kind, filling missing arguments with defaults
func NewSpec(kind Kind, color string, args ...float64) Spec {
	return Spec{Kind: kind, Args: args, Color: color}
}

// Arguments returns Args padded with the kind defaults
func (s Spec) Arguments() []float64 {
	out := s.Kind.Defaults()
	copy(out, s.Args)
	if len(s.Args) > len(out) {
		out = append(out, s.Args[len(out):]...)
	}
	return out
}

// Validate checks every argument against the kind definition. Extra
// arguments past the definition only need to be finite.
func (s Spec) Validate() error {
	for i, arg := range s.Args {
		def := ArgDef{Label: fmt.Sprintf("argument %d", i+1)}
		if i < len(s.Kind.Args) {
			def = s.Kind.Args[i]
		}
		if err := def.validate(arg); err != nil {
			return fmt.Errorf("indicator %s: %w", s.Kind.ID, err)
		}
	}
	return nil
}

// New instantiates a fresh indicator for the spec
func (s Spec) New() Indicator {
	return s.Kind.Build(s.Arguments())
}

// External reports whether the spec renders in its own slot
func (s Spec) External() bool {
	return s.Kind.Placement == External
}

// String renders the spec in the id:arg,arg form accepted by ParseSpec
func (s Spec) String() string {
	args := s.Arguments()
	if len(args) == 0 {
		return s.Kind.ID
	}

	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = strconv.FormatFloat(arg, 'f', -1, 64)
	}
	return s.Kind.ID + ":" + strings.Join(parts, ",")
}

// Series is the computed output of one spec, aligned one value per candle
type Series struct {
	Spec   Spec
	Name   string
	Values core.Series[float64]
	// Start is the index of the first value past warm up. Values before it
	// are placeholders; len(Values) when the indicator never warmed up.
	Start   int
	Skipped bool
}

// Settings is the layout of one indicator reported to the host so it can
// place labels and menus
type Settings struct {
	Index     int       `json:"index"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Args      []float64 `json:"args"`
	Placement Placement `json:"placement"`
	// Slot is the external slot index, -1 for overlays
	Slot int `json:"slot"`
	// Y is the label row on the chart
	Y float64 `json:"y"`
}

func periodName(label string, period int) string {
	return fmt.Sprintf("%s(%d)", label, period)
}

// period reads a window argument, clamped to [1, MaxPeriod] for specs that
// skipped Validate
func period(args []float64, at int) int {
	if at >= len(args) || !(args[at] >= 1) {
		return 1
	}
	return int(math.Min(args[at], MaxPeriod))
}
