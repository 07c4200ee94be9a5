package indicator

import (
	"math"

	"github.com/markcheno/go-talib"
	"github.com/raykavin/tradechart/pkg/core"
)

// RSIKind is the relative strength index with Wilder smoothing
var RSIKind = Kind{
	Meta: Meta{
		ID:         "rsi",
		Label:      "RSI",
		Placement:  External,
		RenderType: RenderRSI,
		Args:       []ArgDef{periodArg(14)},
	},
	Build: func(args []float64) Indicator { return NewRSI(period(args, 0), core.KeyClose) },
}

// WillRKind is Williams %R over the whole candle
var WillRKind = Kind{
	Meta: Meta{
		ID:         "willr",
		Label:      "%R",
		Placement:  External,
		RenderType: RenderLine,
		Args:       []ArgDef{periodArg(14)},
	},
	Build: func(args []float64) Indicator { return NewWillR(period(args, 0)) },
}

// RSI seeds the average gain and loss with the first period deltas, then
// applies Wilder smoothing
type RSI struct {
	period    int
	key       string
	count     int
	prevClose float64
	avgGain   float64
	avgLoss   float64
	current   float64
}

func NewRSI(period int, key string) *RSI {
	return &RSI{period: period, key: key}
}

func (r *RSI) Name() string       { return periodName("RSI", r.period) }
func (r *RSI) DataType() DataType { return DataCandle }
func (r *RSI) DataKey() string    { return r.key }

func (r *RSI) Add(in Input) {
	price := in.Scalar
	r.count++

	if r.count == 1 {
		r.prevClose = price
		return
	}

	delta := price - r.prevClose
	r.prevClose = price

	gain, loss := 0.0, 0.0
	if delta > 0 {
		gain = delta
	} else {
		loss = -delta
	}

	p := float64(r.period)
	if r.count <= r.period+1 {
		r.avgGain += gain
		r.avgLoss += loss
		if r.count < r.period+1 {
			return
		}
		r.avgGain /= p
		r.avgLoss /= p
	} else {
		r.avgGain = (r.avgGain*(p-1) + gain) / p
		r.avgLoss = (r.avgLoss*(p-1) + loss) / p
	}

	if r.avgLoss == 0 {
		r.current = 100
		return
	}
	r.current = 100 - 100/(1+r.avgGain/r.avgLoss)
}

func (r *RSI) Value() float64 {
	if r.count <= r.period {
		return math.NaN()
	}
	return r.current
}

// WillR buffers highs, lows and closes and lets talib compute the last value
type WillR struct {
	period int
	highs  *ring
	lows   *ring
	closes *ring
}

func NewWillR(period int) *WillR {
	return &WillR{period: period, highs: newRing(period), lows: newRing(period), closes: newRing(period)}
}

func (w *WillR) Name() string       { return periodName("%R", w.period) }
func (w *WillR) DataType() DataType { return DataCandle }
func (w *WillR) DataKey() string    { return WholeCandle }

func (w *WillR) Add(in Input) {
	w.highs.push(in.Candle.High)
	w.lows.push(in.Candle.Low)
	w.closes.push(in.Candle.Close)
}

func (w *WillR) Value() float64 {
	if !w.closes.full() {
		return math.NaN()
	}

	values := talib.WillR(w.highs.values(), w.lows.values(), w.closes.values(), w.period)
	return values[len(values)-1]
}
