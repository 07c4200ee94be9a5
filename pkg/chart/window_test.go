package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raykavin/tradechart/pkg/config"
	"github.com/raykavin/tradechart/pkg/core"
	"github.com/raykavin/tradechart/pkg/geometry"
	"github.com/raykavin/tradechart/pkg/indicator"
)

func candleRange(n int) core.Candles {
	out := make(core.Candles, n)
	for i := range out {
		price := 100 + float64(i%7)
		out[i] = core.Candle{
			MTS:    int64(i) * 60000,
			Open:   price,
			Close:  price + 1,
			High:   price + 2,
			Low:    price - 1,
			Volume: 10 + float64(i),
		}
	}
	return out
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name          string
		n, width, off int
		want          Window
	}{
		{"newest excluded", 10, 5, 0, Window{Start: 4, End: 9}},
		{"panned", 10, 5, 3, Window{Start: 1, End: 6, Offset: 3}},
		{"past history", 10, 5, 20, Window{Start: 0, End: 0, Offset: 20}},
		{"short history", 3, 5, 0, Window{Start: 0, End: 2}},
		{"empty", 0, 5, 0, Window{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisibleRange(tt.n, tt.width, tt.off))
		})
	}
}

func TestCandleOffset(t *testing.T) {
	assert.Equal(t, 2, CandleOffset(25, 10))
	assert.Equal(t, 0, CandleOffset(9.99, 10))
	assert.Equal(t, 0, CandleOffset(-50, 10))
	assert.Equal(t, 0, CandleOffset(50, 0))
}

func TestVisibleWindows_EqualLength(t *testing.T) {
	candles := candleRange(120)
	series := indicator.Compute(candles, []indicator.Spec{
		indicator.NewSpec(indicator.SMAKind, "#fff", 5),
		indicator.NewSpec(indicator.RSIKind, "#fff"),
		indicator.NewSpec(indicator.TradeVolumeKind, "#fff"),
	})

	for _, width := range []int{1, 10, 50, 119, 500} {
		for _, offset := range []int{0, 1, 30, 118, 119, 400} {
			w := VisibleRange(len(candles), width, offset)
			visible := VisibleCandles(candles, w)
			for _, values := range VisibleIndicatorSeries(series, w) {
				require.Len(t, values, len(visible), "width=%d offset=%d", width, offset)
			}
		}
	}
}

func TestVisibleWarmup(t *testing.T) {
	series := []indicator.Series{{Start: 0}, {Start: 5}, {Start: 30}, {Start: 100}}

	assert.Equal(t, []int{0, 0, 10, 20}, VisibleWarmup(series, Window{Start: 20, End: 40}))
	assert.Equal(t, []int{0, 5, 20, 20}, VisibleWarmup(series, Window{Start: 0, End: 20}))
}

func TestLayout(t *testing.T) {
	plot := geometry.Size{W: 800, H: 500}

	t.Run("no external", func(t *testing.T) {
		l := NewLayout(plot, 0, 100, 50)
		assert.Equal(t, 500.0, l.OHLCHeight)
		assert.Zero(t, l.SlotHeight)
	})

	t.Run("uncapped", func(t *testing.T) {
		l := NewLayout(plot, 2, 100, 50)
		assert.Equal(t, 300.0, l.OHLCHeight)
		assert.Equal(t, 100.0, l.SlotHeight)
		assert.Equal(t, 450.0, l.SlotTop(1))
	})

	t.Run("two external slots halve the slot height", func(t *testing.T) {
		one := NewLayout(plot, 1, 300, 50)
		two := NewLayout(plot, 2, 300, 50)
		assert.Equal(t, 250.0, one.OHLCHeight)
		assert.Equal(t, one.OHLCHeight, two.OHLCHeight)
		assert.InDelta(t, one.SlotHeight/2, two.SlotHeight, 1e-9)
	})
}

func TestLayout_Settings(t *testing.T) {
	cfg := config.Default().Indicators
	series := indicator.Compute(candleRange(10), []indicator.Spec{
		indicator.NewSpec(indicator.SMAKind, "#111"),
		indicator.NewSpec(indicator.RSIKind, "#222"),
		indicator.NewSpec(indicator.TradeVolumeKind, "#333"),
		indicator.NewSpec(indicator.EMAKind, "#444", 9),
	})

	l := NewLayout(geometry.Size{W: 800, H: 500}, indicator.ExternalCount(series), cfg.SlotHeight, 50)
	settings := l.Settings(series, cfg)
	require.Len(t, settings, 3)

	assert.Equal(t, 0, settings[0].Index)
	assert.Equal(t, -1, settings[0].Slot)
	assert.Equal(t, l.OHLCHeight-cfg.LabelStep(), settings[0].Y)

	assert.Equal(t, 1, settings[1].Index)
	assert.Equal(t, 0, settings[1].Slot)
	assert.Equal(t, l.SlotTop(0), settings[1].Y)
	assert.Equal(t, indicator.External, settings[1].Placement)

	assert.Equal(t, 3, settings[2].Index)
	assert.Equal(t, "EMA(9)", settings[2].Name)
	assert.Equal(t, "#444", settings[2].Color)
	assert.Equal(t, []float64{9}, settings[2].Args)
	assert.Equal(t, l.OHLCHeight-2*cfg.LabelStep(), settings[2].Y)
}
