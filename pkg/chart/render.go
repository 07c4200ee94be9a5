package chart

import (
	"math"

	"github.com/samber/lo"

	"github.com/raykavin/tradechart/pkg/core"
	"github.com/raykavin/tradechart/pkg/geometry"
	"github.com/raykavin/tradechart/pkg/indicator"
	"github.com/raykavin/tradechart/pkg/surface"
)

const (
	// minVisibleCandles is the smallest window any pass will draw
	minVisibleCandles = 2
	candleBodyRatio   = 0.7
)

// Frame is the read-only snapshot of engine state every render pass works
// from. Passes never touch the viewport directly.
type Frame struct {
	Window  Window
	Candles core.Candles
	Series  []core.Series[float64]
	// Warmup counts the leading placeholder values of each visible series
	Warmup      []int
	Layout      Layout
	CandleWidth float64
	// Price maps (mts, price) onto the OHLC area. Its width stops half a
	// candle short of the plot so the newest body is not clipped.
	Price geometry.Projection
}

// Drawable reports whether the frame holds enough candles to render
func (f Frame) Drawable() bool { return len(f.Candles) >= minVisibleCandles }

// Frame computes the snapshot for the current viewport and data
func (c *Chart) Frame() Frame {
	candleWidth := c.viewport.CandleWidth()
	offset := CandleOffset(c.viewport.EffectivePan().X, candleWidth)
	window := VisibleRange(len(c.candles), c.viewport.WidthCandles(), offset)
	visible := VisibleCandles(c.candles, window)

	layout := NewLayout(
		c.viewport.Size(),
		indicator.ExternalCount(c.series),
		c.cfg.Indicators.SlotHeight,
		c.cfg.Margins.AxisBottom,
	)

	var rightMTS int64
	if last, ok := visible.Last(); ok {
		rightMTS = last.MTS
	}

	values := append(visible.Highs(), visible.Lows()...)
	transformer := geometry.NewTransformer(values, c.logicalWidth(visible), rightMTS)

	return Frame{
		Window:      window,
		Candles:     visible,
		Series:      VisibleIndicatorSeries(c.series, window),
		Warmup:      VisibleWarmup(c.series, window),
		Layout:      layout,
		CandleWidth: candleWidth,
		Price: geometry.Project(
			transformer,
			geometry.Point{},
			math.Max(0, layout.Plot.W-candleWidth/2),
			layout.OHLCHeight,
		),
	}
}

// logicalWidth is the time span covered by the zoom level. Without a known
// time frame it falls back to the spacing of the visible candles.
func (c *Chart) logicalWidth(visible core.Candles) float64 {
	width, err := core.TimeFrameWidth(c.timeFrame)
	if err != nil && len(visible) >= minVisibleCandles {
		width = visible[1].MTS - visible[0].MTS
	}
	return float64(int64(c.viewport.WidthCandles()) * width)
}

// Render runs every pass in order
func (c *Chart) Render() {
	f := c.Frame()

	c.renderOHLC(f)
	c.renderTrades(f)
	c.renderIndicators(f)
	c.renderAxes(f)
	c.renderDrawings(f)
	c.renderOrders(f)
}

func (c *Chart) renderOHLC(f Frame) {
	s := c.surfaces.OHLC
	s.Clear()
	if !f.Drawable() {
		return
	}

	_, maxVolume, _ := f.Candles.Volumes().Extent()
	body := math.Max(1, f.CandleWidth*candleBodyRatio)
	ohlcHeight := f.Layout.OHLCHeight
	volumeHeight := ohlcHeight * c.cfg.VolumeHeight

	for _, candle := range f.Candles {
		x := f.Price.X(candle.MTS)
		bodyColor, volumeColor := c.theme.candle(candle.Rising())

		if maxVolume > 0 {
			h := candle.Volume / maxVolume * volumeHeight
			s.FillRect(volumeColor, geometry.Rect{X: x - body/2, Y: ohlcHeight - h, W: body, H: h})
		}

		surface.VLine(s, bodyColor, x, f.Price.Y(candle.High), f.Price.Y(candle.Low))

		top := f.Price.Y(math.Max(candle.Open, candle.Close))
		bottom := f.Price.Y(math.Min(candle.Open, candle.Close))
		s.FillRect(bodyColor, geometry.Rect{X: x - body/2, Y: top, W: body, H: math.Max(1, bottom-top)})
	}
}

func (c *Chart) renderTrades(f Frame) {
	if !f.Drawable() || len(c.trades) == 0 {
		return
	}

	first, last := f.Candles[0].MTS, f.Candles[len(f.Candles)-1].MTS
	visible := lo.Filter(c.trades, func(t core.Trade, _ int) bool {
		return t.MTS >= first && t.MTS <= last
	})

	for _, trade := range visible {
		color := c.theme.sellMarker
		if trade.Buy() {
			color = c.theme.buyMarker
		}
		c.surfaces.OHLC.Circle(color, f.Price.Point(trade.MTS, trade.Price), c.cfg.TradeRadius)
	}
}
