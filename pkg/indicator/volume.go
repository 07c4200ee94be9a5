package indicator

import (
	"math"

	"github.com/raykavin/tradechart/pkg/core"
	"gonum.org/v1/gonum/stat"
)

// OBVKind is on balance volume
var OBVKind = Kind{
	Meta: Meta{
		ID:         "obv",
		Label:      "OBV",
		Placement:  External,
		RenderType: RenderLine,
	},
	Build: func([]float64) Indicator { return NewOBV() },
}

// StdDevKind is the sample standard deviation of the close
var StdDevKind = Kind{
	Meta: Meta{
		ID:         "stddev",
		Label:      "StdDev",
		Placement:  External,
		RenderType: RenderLine,
		Args:       []ArgDef{periodArg(20)},
	},
	Build: func(args []float64) Indicator { return NewStdDev(period(args, 0), core.KeyClose) },
}

// TradeVolumeKind accumulates traded amount. It consumes trades, which the
// candle pipeline does not feed, so it always computes to a skipped series.
var TradeVolumeKind = Kind{
	Meta: Meta{
		ID:         "tradevol",
		Label:      "Trade Volume",
		Placement:  External,
		RenderType: RenderLine,
	},
	Build: func([]float64) Indicator { return &TradeVolume{} },
}

// OBV adds volume on up closes and subtracts it on down closes
type OBV struct {
	count     int
	prevClose float64
	current   float64
}

func NewOBV() *OBV { return &OBV{} }

func (o *OBV) Name() string       { return "OBV" }
func (o *OBV) DataType() DataType { return DataCandle }
func (o *OBV) DataKey() string    { return WholeCandle }

func (o *OBV) Add(in Input) {
	o.count++
	if o.count > 1 {
		switch {
		case in.Candle.Close > o.prevClose:
			o.current += in.Candle.Volume
		case in.Candle.Close < o.prevClose:
			o.current -= in.Candle.Volume
		}
	}
	o.prevClose = in.Candle.Close
}

func (o *OBV) Value() float64 { return o.current }

// StdDev measures dispersion over the buffered window with gonum
type StdDev struct {
	period int
	key    string
	window *ring
}

func NewStdDev(period int, key string) *StdDev {
	return &StdDev{period: period, key: key, window: newRing(period)}
}

func (s *StdDev) Name() string       { return periodName("StdDev", s.period) }
func (s *StdDev) DataType() DataType { return DataCandle }
func (s *StdDev) DataKey() string    { return s.key }

func (s *StdDev) Add(in Input) {
	s.window.push(in.Scalar)
}

func (s *StdDev) Value() float64 {
	if !s.window.full() || s.period < 2 {
		return math.NaN()
	}
	return stat.StdDev(s.window.values(), nil)
}

// TradeVolume sums absolute trade amounts
type TradeVolume struct {
	total float64
}

func (t *TradeVolume) Name() string       { return "Trade Volume" }
func (t *TradeVolume) DataType() DataType { return DataTrade }
func (t *TradeVolume) DataKey() string    { return "amount" }

func (t *TradeVolume) Add(in Input) {
	t.total += math.Abs(in.Trade.Amount)
}

func (t *TradeVolume) Value() float64 { return t.total }
