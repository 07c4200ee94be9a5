package chart

import (
	"math"

	"github.com/samber/lo"

	"github.com/raykavin/tradechart/pkg/core"
	"github.com/raykavin/tradechart/pkg/indicator"
)

// Window is the visible index range [Start, End) of the candle history.
// The newest candle is still forming and sits outside the window.
type Window struct {
	Start  int
	End    int
	Offset int
}

// Len returns the number of visible candles
func (w Window) Len() int { return w.End - w.Start }

// CandleOffset converts a pan distance into whole candles. Only panning
// towards history moves the window.
func CandleOffset(panX, candleWidth float64) int {
	if panX <= 0 || candleWidth <= 0 {
		return 0
	}
	return int(math.Floor(panX / candleWidth))
}

// VisibleRange returns the window of widthCandles ending offset candles
// before the newest one, clamped to [0, n]
func VisibleRange(n, widthCandles, offset int) Window {
	end := max(0, n-1-offset)
	start := max(0, n-1-widthCandles-offset)
	return Window{Start: min(start, end), End: end, Offset: offset}
}

// VisibleCandles slices the candle history to w
func VisibleCandles(candles core.Candles, w Window) core.Candles {
	if w.End > len(candles) {
		return nil
	}
	return candles[w.Start:w.End]
}

// VisibleIndicatorSeries applies w to every series in lockstep with the
// candle window
func VisibleIndicatorSeries(series []indicator.Series, w Window) []core.Series[float64] {
	out := make([]core.Series[float64], len(series))
	for i, s := range series {
		out[i] = s.Values.Slice(w.Start, w.End)
	}
	return out
}

// VisibleWarmup returns, per series, how many leading values of the window
// are still warming up
func VisibleWarmup(series []indicator.Series, w Window) []int {
	return lo.Map(series, func(s indicator.Series, _ int) int {
		return min(w.Len(), max(0, s.Start-w.Start))
	})
}
