package indicator

import (
	"math"

	"github.com/markcheno/go-talib"
	"github.com/raykavin/tradechart/pkg/core"
)

// SMAKind is a simple moving average over one OHLCV field
var SMAKind = Kind{
	Meta: Meta{
		ID:         "sma",
		Label:      "SMA",
		Placement:  Overlay,
		RenderType: RenderLine,
		Args:       []ArgDef{periodArg(20)},
	},
	Build: func(args []float64) Indicator { return NewSMA(period(args, 0), core.KeyClose) },
}

// EMAKind is an exponential moving average seeded by the SMA of its first period
var EMAKind = Kind{
	Meta: Meta{
		ID:         "ema",
		Label:      "EMA",
		Placement:  Overlay,
		RenderType: RenderLine,
		Args:       []ArgDef{periodArg(20)},
	},
	Build: func(args []float64) Indicator { return NewEMA(period(args, 0), core.KeyClose) },
}

// WMAKind is a linearly weighted moving average
var WMAKind = Kind{
	Meta: Meta{
		ID:         "wma",
		Label:      "WMA",
		Placement:  Overlay,
		RenderType: RenderLine,
		Args:       []ArgDef{periodArg(20)},
	},
	Build: func(args []float64) Indicator { return NewWMA(period(args, 0), core.KeyClose) },
}

// SMA averages the last period values with a running sum
type SMA struct {
	period int
	key    string
	window *ring
	sum    float64
}

func NewSMA(period int, key string) *SMA {
	return &SMA{period: period, key: key, window: newRing(period)}
}

func (s *SMA) Name() string       { return periodName("SMA", s.period) }
func (s *SMA) DataType() DataType { return DataCandle }
func (s *SMA) DataKey() string    { return s.key }

func (s *SMA) Add(in Input) {
	evicted, full := s.window.push(in.Scalar)
	if full {
		s.sum -= evicted
	}
	s.sum += in.Scalar
}

func (s *SMA) Value() float64 {
	if !s.window.full() {
		return math.NaN()
	}
	return s.sum / float64(s.period)
}

// EMA smooths with multiplier 2/(period+1) once the SMA seed is available
type EMA struct {
	period     int
	key        string
	multiplier float64
	count      int
	sum        float64
	current    float64
}

func NewEMA(period int, key string) *EMA {
	return &EMA{period: period, key: key, multiplier: 2 / float64(period+1)}
}

func (e *EMA) Name() string       { return periodName("EMA", e.period) }
func (e *EMA) DataType() DataType { return DataCandle }
func (e *EMA) DataKey() string    { return e.key }

func (e *EMA) Add(in Input) {
	e.count++

	if e.count <= e.period {
		e.sum += in.Scalar
		if e.count == e.period {
			e.current = e.sum / float64(e.period)
		}
		return
	}

	e.current = in.Scalar*e.multiplier + e.current*(1-e.multiplier)
}

func (e *EMA) Value() float64 {
	if e.count < e.period {
		return math.NaN()
	}
	return e.current
}

// WMA delegates the weighting to talib over the buffered window
type WMA struct {
	period int
	key    string
	window *ring
}

func NewWMA(period int, key string) *WMA {
	return &WMA{period: period, key: key, window: newRing(period)}
}

func (w *WMA) Name() string       { return periodName("WMA", w.period) }
func (w *WMA) DataType() DataType { return DataCandle }
func (w *WMA) DataKey() string    { return w.key }

func (w *WMA) Add(in Input) {
	w.window.push(in.Scalar)
}

func (w *WMA) Value() float64 {
	if !w.window.full() {
		return math.NaN()
	}

	values := talib.Wma(w.window.values(), w.period)
	return values[len(values)-1]
}
