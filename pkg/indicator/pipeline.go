package indicator

import (
	"math"

	"github.com/raykavin/tradechart/pkg/core"
)

// Compute runs every spec over the full candle history and returns one
// series per spec, in spec order. Each series has exactly len(candles)
// values; non-finite values become zero and the first finite one sets
// Start. Trade consuming specs produce a zero series flagged as Skipped.
func Compute(candles core.Candles, specs []Spec) []Series {
	out := make([]Series, len(specs))
	instances := make([]Indicator, len(specs))

	for i, spec := range specs {
		instances[i] = spec.New()
		out[i] = Series{
			Spec:    spec,
			Name:    instances[i].Name(),
			Values:  make(core.Series[float64], len(candles)),
			Start:   len(candles),
			Skipped: instances[i].DataType() == DataTrade,
		}
	}

	for c, candle := range candles {
		for i, ind := range instances {
			if out[i].Skipped {
				continue
			}

			in := Input{Candle: candle}
			if key := ind.DataKey(); key != WholeCandle {
				in.Scalar, _ = candle.Field(key)
			}

			ind.Add(in)
			value := ind.Value()
			if out[i].Start == len(candles) && !math.IsNaN(value) && !math.IsInf(value, 0) {
				out[i].Start = c
			}
			out[i].Values[c] = core.Finite(value)
		}
	}

	return out
}

// ExternalCount returns how many series claim an external slot
func ExternalCount(series []Series) int {
	count := 0
	for _, s := range series {
		if !s.Skipped && s.Spec.External() {
			count++
		}
	}
	return count
}
