package feed

import (
	"math"

	"github.com/raykavin/tradechart/pkg/core"
)

// HeikinAshi smooths candles into their Heikin-Ashi form. The first candle
// seeds the open with its own open and close.
//
//	close = (open + high + low + close) / 4
//	open  = (previous open + previous close) / 2
//	high  = max(high, open, close)
//	low   = min(low, open, close)
func HeikinAshi(candles core.Candles) core.Candles {
	out := make(core.Candles, len(candles))

	for i, candle := range candles {
		prevOpen, prevClose := candle.Open, candle.Close
		if i > 0 {
			prevOpen, prevClose = out[i-1].Open, out[i-1].Close
		}

		smoothed := candle
		smoothed.Open = (prevOpen + prevClose) / 2
		smoothed.Close = (candle.Open + candle.High + candle.Low + candle.Close) / 4
		smoothed.High = math.Max(candle.High, math.Max(smoothed.Open, smoothed.Close))
		smoothed.Low = math.Min(candle.Low, math.Min(smoothed.Open, smoothed.Close))
		out[i] = smoothed
	}

	return out
}
