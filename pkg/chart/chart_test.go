package chart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raykavin/tradechart/pkg/config"
	"github.com/raykavin/tradechart/pkg/core"
	"github.com/raykavin/tradechart/pkg/drawing"
	"github.com/raykavin/tradechart/pkg/geometry"
	"github.com/raykavin/tradechart/pkg/indicator"
	"github.com/raykavin/tradechart/pkg/logger"
	"github.com/raykavin/tradechart/pkg/surface"
)

type layers struct {
	ohlc, axis, indicator, drawing, orders *surface.Recorder
}

func (l layers) surfaces() Surfaces {
	return Surfaces{
		OHLC:      l.ohlc,
		Axis:      l.axis,
		Indicator: l.indicator,
		Drawing:   l.drawing,
		Orders:    l.orders,
	}
}

func newLayers() layers {
	return layers{
		ohlc:      surface.NewRecorder(800, 600),
		axis:      surface.NewRecorder(800, 600),
		indicator: surface.NewRecorder(800, 600),
		drawing:   surface.NewRecorder(800, 600),
		orders:    surface.NewRecorder(800, 600),
	}
}

func newChart(t *testing.T, options ...Option) (*Chart, layers) {
	t.Helper()

	l := newLayers()
	c, err := New(logger.Nop(), l.surfaces(), options...)
	require.NoError(t, err)
	require.NoError(t, c.Mount())
	return c, l
}

func fiveCandles() core.Candles {
	return core.Candles{
		core.NewCandle([6]float64{0, 10, 12, 13, 9, 100}),
		core.NewCandle([6]float64{60000, 12, 11, 14, 10, 80}),
		core.NewCandle([6]float64{120000, 11, 15, 16, 10, 120}),
		core.NewCandle([6]float64{180000, 15, 14, 16, 13, 90}),
		core.NewCandle([6]float64{240000, 14, 16, 17, 13, 110}),
	}
}

func TestNew(t *testing.T) {
	t.Run("missing surface", func(t *testing.T) {
		l := newLayers()
		s := l.surfaces()
		s.Orders = nil

		_, err := New(logger.Nop(), s)
		require.ErrorIs(t, err, ErrMissingSurface)
		require.ErrorContains(t, err, "orders")
	})

	t.Run("crosshair surface is optional", func(t *testing.T) {
		_, err := New(nil, newLayers().surfaces())
		require.NoError(t, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := config.Default()
		cfg.Zoom.MinCandles = 0

		_, err := New(logger.Nop(), newLayers().surfaces(), WithConfig(cfg))
		require.Error(t, err)
	})

	t.Run("invalid indicator color", func(t *testing.T) {
		_, err := New(logger.Nop(), newLayers().surfaces(),
			WithIndicators(indicator.NewSpec(indicator.SMAKind, "chartreuse")))
		require.Error(t, err)
	})

	t.Run("dimensions default to the ohlc surface", func(t *testing.T) {
		c, err := New(logger.Nop(), newLayers().surfaces())
		require.NoError(t, err)
		assert.InDelta(t, 749.5, c.Viewport().Size().W, 1e-9)
	})
}

func TestMount(t *testing.T) {
	c, l := newChart(t, WithCandles(fiveCandles(), "1m"))
	assert.True(t, c.Mounted())
	assert.Equal(t, 1, l.ohlc.Clears())

	err := c.Mount()
	require.ErrorIs(t, err, ErrAlreadyMounted)
}

func TestUpdatesBeforeMountDoNotRender(t *testing.T) {
	l := newLayers()
	c, err := New(logger.Nop(), l.surfaces())
	require.NoError(t, err)

	c.UpdateData(fiveCandles(), "1m")
	c.UpdateDimensions(640, 480)
	assert.Zero(t, l.ohlc.Clears())
	assert.Len(t, c.Candles(), 5)
}

func TestFrame_PriceAxis(t *testing.T) {
	c, _ := newChart(t, WithCandles(fiveCandles(), "1m"))
	f := c.Frame()

	require.Len(t, f.Candles, 4)
	assert.InDelta(t, 0, f.Price.Y(16), 1e-9)
	assert.InDelta(t, f.Layout.OHLCHeight, f.Price.Y(9), 1e-9)
	assert.InDelta(t, f.Price.Width, f.Price.X(180000), 1e-9)

	prev := f.Price.X(f.Candles[0].MTS)
	for _, candle := range f.Candles[1:] {
		x := f.Price.X(candle.MTS)
		require.GreaterOrEqual(t, x, prev)
		prev = x
	}
}

func TestFrame_EqualWindows(t *testing.T) {
	c, _ := newChart(t,
		WithCandles(candleRange(300), "1m"),
		WithIndicators(
			indicator.NewSpec(indicator.SMAKind, ""),
			indicator.NewSpec(indicator.WillRKind, ""),
		),
	)

	for _, x := range []float64{0, 40, 400, 4000, 40000} {
		c.PointerDown(geometry.Point{X: 0, Y: 100})
		c.PointerMove(geometry.Point{X: x, Y: 100})

		f := c.Frame()
		for _, values := range f.Series {
			require.Len(t, values, len(f.Candles), "pan %v", x)
		}
		c.PointerUp()
	}
}

func TestRender_EmptyData(t *testing.T) {
	c, l := newChart(t, WithIndicators(indicator.NewSpec(indicator.RSIKind, "")))

	require.NotPanics(t, func() {
		c.UpdateData(core.Candles{}, "")
		c.PointerDown(geometry.Point{X: 10, Y: 10})
		c.PointerMove(geometry.Point{X: 50, Y: 10})
		c.PointerUp()
		c.PointerMove(geometry.Point{X: 60, Y: 20})
		c.PointerLeave()
		c.Wheel(1)
		c.Wheel(-1)
		c.UpdateTrades([]core.Trade{{MTS: 0, Price: 1, Amount: 1}})
		c.UpdateOrders([]core.Order{{Price: 1, Amount: 1}})
		c.UpdatePosition(&core.Position{BasePrice: 1, Amount: 1})
	})

	for _, r := range []*surface.Recorder{l.ohlc, l.axis, l.indicator, l.drawing, l.orders} {
		assert.Empty(t, r.Ops())
	}
}

func TestRender_SingleVisibleCandleIsNoop(t *testing.T) {
	_, l := newChart(t, WithCandles(fiveCandles()[:2], "1m"))
	assert.Empty(t, l.ohlc.Ops())
	assert.Empty(t, l.axis.Ops())
}

func TestRender_OHLC(t *testing.T) {
	_, l := newChart(t,
		WithCandles(fiveCandles(), "1m"),
		WithTrades(
			core.Trade{MTS: 60000, Price: 11, Amount: 0.5},
			core.Trade{MTS: 120000, Price: 15, Amount: -0.5},
			core.Trade{MTS: 240000, Price: 16, Amount: 1},
		),
	)

	// volume bar, wick and body per visible candle
	assert.Len(t, l.ohlc.OpsOf(surface.OpPolyline), 4)
	assert.Len(t, l.ohlc.OpsOf(surface.OpFillRect), 8)

	circles := l.ohlc.OpsOf(surface.OpCircle)
	require.Len(t, circles, 2)
	cfg := config.Default()
	assert.Equal(t, surface.MustParseColor(cfg.Colors.BuyMarker), circles[0].Color)
	assert.Equal(t, surface.MustParseColor(cfg.Colors.SellMarker), circles[1].Color)
	assert.Equal(t, cfg.TradeRadius, circles[0].Radius)
}

func TestRender_VolumeBarsStayLow(t *testing.T) {
	c, l := newChart(t, WithCandles(fiveCandles(), "1m"))
	f := c.Frame()
	limit := f.Layout.OHLCHeight * config.Default().VolumeHeight

	cfg := config.Default()
	volumeColors := []surface.Color{
		surface.MustParseColor(cfg.Colors.RisingVolume),
		surface.MustParseColor(cfg.Colors.FallingVolume),
	}

	var tallest float64
	for _, op := range l.ohlc.OpsOf(surface.OpFillRect) {
		if op.Color != volumeColors[0] && op.Color != volumeColors[1] {
			continue
		}
		assert.InDelta(t, f.Layout.OHLCHeight, op.Rect.Y+op.Rect.H, 1e-9)
		tallest = max(tallest, op.Rect.H)
	}
	assert.InDelta(t, limit, tallest, 1e-9)
}

func TestRender_Axes(t *testing.T) {
	_, l := newChart(t, WithCandles(fiveCandles(), "1m"))

	texts := l.axis.Texts()
	assert.Contains(t, texts, "Jan 01")
	assert.Contains(t, texts, "00:03")
	assert.Contains(t, texts, "9")
	assert.Len(t, texts, 4+8)
}

func TestRender_Indicators(t *testing.T) {
	var (
		settings   []indicator.Settings
		ohlcHeight float64
		slotHeight float64
	)

	_, l := newChart(t,
		WithCandles(candleRange(60), "1m"),
		WithIndicators(
			indicator.NewSpec(indicator.SMAKind, "#abcdef", 5),
			indicator.NewSpec(indicator.RSIKind, ""),
			indicator.NewSpec(indicator.StdDevKind, ""),
		),
		WithCallbacks(Callbacks{
			OnUpdateIndicatorSettings: func(s []indicator.Settings, ohlc, slot float64) {
				settings, ohlcHeight, slotHeight = s, ohlc, slot
			},
		}),
	)

	require.Len(t, settings, 3)
	assert.InDelta(t, 524.5-200, ohlcHeight, 1e-9)
	assert.InDelta(t, 100, slotHeight, 1e-9)

	texts := l.indicator.Texts()
	assert.Contains(t, texts, "SMA(5)")
	assert.Contains(t, texts, "RSI(14)")
	assert.Contains(t, texts, "StdDev(20)")
	assert.Contains(t, texts, "30")
	assert.Contains(t, texts, "70")

	cfg := config.Default()
	var sma, rsi bool
	for _, op := range l.indicator.OpsOf(surface.OpPolyline) {
		switch op.Color {
		case surface.MustParseColor("#abcdef"):
			sma = true
		case surface.MustParseColor(cfg.Indicators.Palette[1]):
			rsi = true
		}
	}
	assert.True(t, sma)
	assert.True(t, rsi)
}

func TestRender_IndicatorZeroIsNotAGap(t *testing.T) {
	// alternating closes keep OBV bouncing between 0 and 10
	candles := make(core.Candles, 40)
	for i := range candles {
		price := 10 + float64(i%2)
		candles[i] = core.Candle{MTS: int64(i) * 60000, Open: price, Close: price, High: price + 1, Low: price - 1, Volume: 10}
	}

	c, l := newChart(t,
		WithCandles(candles, "1m"),
		WithIndicators(
			indicator.NewSpec(indicator.OBVKind, "#123456"),
			indicator.NewSpec(indicator.SMAKind, "#654321", 10),
		),
	)

	f := c.Frame()
	require.True(t, f.Drawable())

	lines := map[surface.Color][]surface.Op{}
	for _, op := range l.indicator.OpsOf(surface.OpPolyline) {
		lines[op.Color] = append(lines[op.Color], op)
	}

	obv := lines[surface.MustParseColor("#123456")]
	require.Len(t, obv, 1)
	assert.Len(t, obv[0].Points, f.Window.Len())

	// the SMA line starts once its first period has been seen
	sma := lines[surface.MustParseColor("#654321")]
	require.Len(t, sma, 1)
	assert.Len(t, sma[0].Points, f.Window.Len()-max(0, 9-f.Window.Start))
}

func TestUpdateIndicators_RejectsInvalidArguments(t *testing.T) {
	c, _ := newChart(t,
		WithCandles(candleRange(30), "1m"),
		WithIndicators(indicator.NewSpec(indicator.EMAKind, "", 5)),
	)

	err := c.UpdateIndicators([]indicator.Spec{indicator.NewSpec(indicator.SMAKind, "", 1e19)})
	require.ErrorIs(t, err, indicator.ErrInvalidArgument)
	require.Len(t, c.Series(), 1)
	assert.Equal(t, "EMA(5)", c.Series()[0].Name)
}

func TestRender_SlotHeightHalves(t *testing.T) {
	cfg := config.Default()
	cfg.Indicators.SlotHeight = 1000

	var slots []float64
	c, _ := newChart(t,
		WithConfig(cfg),
		WithCandles(candleRange(60), "1m"),
		WithIndicators(indicator.NewSpec(indicator.RSIKind, "")),
		WithCallbacks(Callbacks{
			OnUpdateIndicatorSettings: func(_ []indicator.Settings, _, slot float64) {
				slots = append(slots, slot)
			},
		}),
	)

	require.NoError(t, c.UpdateIndicators([]indicator.Spec{
		indicator.NewSpec(indicator.RSIKind, ""),
		indicator.NewSpec(indicator.WillRKind, ""),
	}))

	require.Len(t, slots, 2)
	assert.InDelta(t, slots[0]/2, slots[1], 1e-9)
}

func TestRender_Orders(t *testing.T) {
	c, l := newChart(t,
		WithCandles(fiveCandles(), "1m"),
		WithOrders(core.Order{Price: 12, Amount: 1}, core.Order{Price: 50, Amount: -1}),
	)

	assert.Equal(t, []string{"1 @ 12"}, l.orders.Texts())

	c.UpdateOrders(nil)
	assert.Empty(t, l.orders.Ops())

	c.UpdatePosition(&core.Position{BasePrice: 10, Amount: -2})
	assert.Equal(t, []string{"position -2 @ 10"}, l.orders.Texts())
	assert.Equal(t, surface.MustParseColor(config.Default().Colors.ShortPosition), l.orders.Ops()[0].Color)

	c.UpdatePosition(&core.Position{BasePrice: 100, Amount: 1})
	assert.Empty(t, l.orders.Ops())
}

func TestInteraction_LoadMore(t *testing.T) {
	cfg := config.Default()
	cfg.Zoom.DefaultCandles = 50

	var requests []int
	c, _ := newChart(t,
		WithConfig(cfg),
		WithCandles(candleRange(100), "1m"),
		WithCallbacks(Callbacks{OnLoadMore: func(count int) { requests = append(requests, count) }}),
	)

	c.PointerDown(geometry.Point{X: 0, Y: 100})
	for x := 0.0; x <= 900; x++ {
		c.PointerMove(geometry.Point{X: x, Y: 100})
	}
	require.Equal(t, []int{50}, requests)

	c.PointerMove(geometry.Point{X: 100, Y: 100})
	c.PointerMove(geometry.Point{X: 900, Y: 100})
	assert.Equal(t, []int{50, 50}, requests)

	c.UpdateData(candleRange(200), "")
	c.PointerMove(geometry.Point{X: 901, Y: 100})
	assert.Len(t, requests, 2)
}

func TestInteraction_Wheel(t *testing.T) {
	c, _ := newChart(t, WithCandles(candleRange(500), "1m"))
	width := c.Viewport().WidthCandles()

	assert.True(t, c.Wheel(120))
	assert.Equal(t, width+10, c.Viewport().WidthCandles())

	for i := 0; i < 100; i++ {
		assert.True(t, c.Wheel(-120))
	}
	assert.Equal(t, 10, c.Viewport().WidthCandles())

	assert.True(t, c.Wheel(0))
	assert.Equal(t, 10, c.Viewport().WidthCandles())
}

func TestInteraction_PanCommit(t *testing.T) {
	c, _ := newChart(t, WithCandles(candleRange(500), "1m"))

	c.PointerDown(geometry.Point{X: 100, Y: 100})
	c.PointerMove(geometry.Point{X: 160, Y: 100})
	assert.Equal(t, 60.0, c.Viewport().PanOffset().X)
	c.PointerUp()
	assert.Equal(t, 60.0, c.Viewport().Origin().X)
	assert.Zero(t, c.Viewport().PanOffset().X)

	c.PointerDown(geometry.Point{X: 100, Y: 100})
	c.PointerMove(geometry.Point{X: 300, Y: 100})
	c.PointerLeave()
	assert.Equal(t, 60.0, c.Viewport().EffectivePan().X)
	assert.False(t, c.dragging)
}

func TestInteraction_Crosshair(t *testing.T) {
	var hovered []core.Candle
	c, l := newChart(t,
		WithCandles(fiveCandles(), "1m"),
		WithCallbacks(Callbacks{OnHoveredCandle: func(candle core.Candle) { hovered = append(hovered, candle) }}),
	)

	x := c.Frame().Price.X(120000)
	c.PointerMove(geometry.Point{X: x, Y: 100})

	require.NotEmpty(t, hovered)
	assert.Equal(t, int64(120000), hovered[len(hovered)-1].MTS)
	assert.Equal(t, []string{"1970-01-01 00:02:00"}, l.drawing.Texts())

	c.PointerLeave()
	assert.Empty(t, l.drawing.Ops())
}

func TestInteraction_DedicatedCrosshairSurface(t *testing.T) {
	l := newLayers()
	crosshair := surface.NewRecorder(800, 600)
	s := l.surfaces()
	s.Crosshair = crosshair

	c, err := New(logger.Nop(), s, WithCandles(fiveCandles(), "1m"))
	require.NoError(t, err)
	require.NoError(t, c.Mount())

	c.PointerMove(geometry.Point{X: 200, Y: 100})
	assert.NotEmpty(t, crosshair.Ops())
	assert.Empty(t, l.drawing.Ops())
}

func TestInteraction_LineTool(t *testing.T) {
	c, l := newChart(t, WithCandles(fiveCandles(), "1m"))

	annotation, err := c.SelectTool(drawing.ToolLine)
	require.NoError(t, err)
	assert.Equal(t, drawing.StatePlacing, c.Drawings().State())

	c.PointerDown(geometry.Point{X: 100, Y: 100})
	assert.False(t, c.dragging)
	assert.Equal(t, drawing.StatePlacing, annotation.State())

	c.PointerMove(geometry.Point{X: 200, Y: 150})
	c.PointerDown(geometry.Point{X: 300, Y: 200})
	c.PointerUp()

	require.Equal(t, drawing.StateCommitted, annotation.State())
	assert.Equal(t, drawing.StateIdle, c.Drawings().State())
	assert.Zero(t, c.Viewport().Origin().X)

	line := annotation.(*drawing.Line)
	before := line.Anchors()

	_, err = c.SelectTool(drawing.ToolHorizontalLine)
	require.NoError(t, err)
	c.PointerDown(geometry.Point{X: 500, Y: 50})
	c.PointerUp()

	assert.Equal(t, drawing.StateCommitted, annotation.State())
	if diff := cmp.Diff(before, line.Anchors()); diff != "" {
		t.Errorf("committed line changed (-want +got):\n%s", diff)
	}
	assert.Len(t, c.Drawings().Annotations(), 2)
	assert.NotEmpty(t, l.drawing.OpsOf(surface.OpPolyline))
}

func TestInteraction_CancelTool(t *testing.T) {
	c, _ := newChart(t, WithCandles(fiveCandles(), "1m"))

	_, err := c.SelectTool(drawing.ToolParallelLines)
	require.NoError(t, err)
	c.CancelTool()

	assert.Equal(t, drawing.StateIdle, c.Drawings().State())
	assert.Empty(t, c.Drawings().Annotations())

	_, err = c.SelectTool("circle")
	require.ErrorIs(t, err, drawing.ErrUnknownTool)
}

func TestUpdateAnnotations(t *testing.T) {
	c, l := newChart(t, WithCandles(fiveCandles(), "1m"),
		WithAnnotations(drawing.HorizontalLineAt(12)))
	require.Len(t, c.Drawings().Annotations(), 1)
	require.Len(t, l.drawing.OpsOf(surface.OpPolyline), 1)

	c.UpdateAnnotations([]drawing.Annotation{
		drawing.VerticalLineAt(60000),
		drawing.LineBetween(drawing.Anchor{MTS: 0, Price: 10}, drawing.Anchor{MTS: 180000, Price: 15}),
	})
	assert.Len(t, c.Drawings().Annotations(), 2)
	assert.Len(t, l.drawing.OpsOf(surface.OpPolyline), 2)
}

func TestRequestTimeFrame(t *testing.T) {
	var requested []string
	c, _ := newChart(t, WithCallbacks(Callbacks{
		OnTimeFrameChange: func(tf string) { requested = append(requested, tf) },
	}))

	require.NoError(t, c.RequestTimeFrame("5m"))
	require.ErrorIs(t, c.RequestTimeFrame("7m"), core.ErrInvalidTimeFrame)
	assert.Equal(t, []string{"5m"}, requested)
}

func TestUpdateIndicators_KeepsCallerSpecs(t *testing.T) {
	c, _ := newChart(t, WithCandles(candleRange(30), "1m"))

	specs := []indicator.Spec{indicator.NewSpec(indicator.EMAKind, "")}
	require.NoError(t, c.UpdateIndicators(specs))

	assert.Empty(t, specs[0].Color)
	require.Len(t, c.Series(), 1)
	assert.Equal(t, config.Default().Indicators.Palette[0], c.Series()[0].Spec.Color)
	assert.Len(t, c.Series()[0].Values, 30)
}
