package indicator

import (
	"fmt"
	"math"
	"testing"

	"github.com/raykavin/tradechart/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rising(n int) core.Candles {
	candles := make(core.Candles, n)
	for i := range candles {
		price := float64(i + 1)
		candles[i] = core.Candle{
			MTS:    int64(i) * 60000,
			Open:   price - 0.5,
			Close:  price,
			High:   price + 1,
			Low:    price - 1,
			Volume: 10,
		}
	}
	return candles
}

func TestCompute(t *testing.T) {
	candles := rising(5)
	specs := []Spec{
		NewSpec(SMAKind, "#fff", 3),
		NewSpec(EMAKind, "#fff", 3),
		NewSpec(WMAKind, "#fff", 3),
		NewSpec(RSIKind, "#fff", 2),
		NewSpec(StdDevKind, "#fff", 3),
		NewSpec(OBVKind, "#fff"),
	}

	series := Compute(candles, specs)
	require.Len(t, series, len(specs))
	for _, s := range series {
		require.Len(t, s.Values, len(candles), s.Name)
		require.False(t, s.Skipped)
	}

	assert.Equal(t, []float64{0, 0, 2, 3, 4}, series[0].Values.Values())
	assert.Equal(t, []float64{0, 0, 2, 3, 4}, series[1].Values.Values())
	assert.InDeltaSlice(t, []float64{0, 0, 14.0 / 6, 20.0 / 6, 26.0 / 6}, series[2].Values.Values(), 1e-9)
	assert.Equal(t, []float64{0, 0, 100, 100, 100}, series[3].Values.Values())
	assert.InDeltaSlice(t, []float64{0, 0, 1, 1, 1}, series[4].Values.Values(), 1e-9)
	assert.Equal(t, []float64{0, 10, 20, 30, 40}, series[5].Values.Values())

	starts := make([]int, len(series))
	for i, s := range series {
		starts[i] = s.Start
	}
	assert.Equal(t, []int{2, 2, 2, 2, 2, 0}, starts)

	assert.Equal(t, "SMA(3)", series[0].Name)
	assert.Equal(t, "RSI(2)", series[3].Name)
}

func TestCompute_SkipsTradeIndicators(t *testing.T) {
	series := Compute(rising(4), []Spec{NewSpec(TradeVolumeKind, ""), NewSpec(RSIKind, "")})

	require.True(t, series[0].Skipped)
	require.Equal(t, []float64{0, 0, 0, 0}, series[0].Values.Values())
	require.Equal(t, 4, series[0].Start)
	require.False(t, series[1].Skipped)
	require.Equal(t, 1, ExternalCount(series))
}

func TestCompute_Empty(t *testing.T) {
	series := Compute(nil, []Spec{NewSpec(EMAKind, "")})
	require.Len(t, series, 1)
	require.Empty(t, series[0].Values)
}

func TestRSI_Wilder(t *testing.T) {
	rsi := NewRSI(2, core.KeyClose)
	for _, v := range []float64{10, 11, 10} {
		rsi.Add(Input{Scalar: v})
	}
	// seed: gains 1, losses 1 over two deltas
	require.InDelta(t, 50.0, rsi.Value(), 1e-9)

	rsi.Add(Input{Scalar: 12})
	// gain (0.5*1+2)/2 = 1.25, loss (0.5*1+0)/2 = 0.25
	require.InDelta(t, 100-100/(1+5.0), rsi.Value(), 1e-9)
}

func TestWillR(t *testing.T) {
	w := NewWillR(2)
	w.Add(Input{Candle: core.Candle{High: 10, Low: 5, Close: 8}})
	require.True(t, math.IsNaN(w.Value()))

	w.Add(Input{Candle: core.Candle{High: 12, Low: 6, Close: 9}})
	// highest 12, lowest 5
	require.InDelta(t, -100*(12.0-9)/(12-5), w.Value(), 1e-9)
}

func TestSpec(t *testing.T) {
	spec := NewSpec(EMAKind, "#f00")
	require.Equal(t, []float64{20}, spec.Arguments())
	require.Equal(t, "ema:20", spec.String())
	require.False(t, spec.External())
	require.True(t, NewSpec(RSIKind, "").External())
	require.Equal(t, "obv", NewSpec(OBVKind, "").String())
}

func TestParseSpec(t *testing.T) {
	spec, err := ParseSpec("EMA:50@#ff0")
	require.NoError(t, err)
	require.Equal(t, "ema", spec.Kind.ID)
	require.Equal(t, []float64{50}, spec.Args)
	require.Equal(t, "#ff0", spec.Color)

	spec, err = ParseSpec("rsi")
	require.NoError(t, err)
	require.Equal(t, []float64{14}, spec.Arguments())

	_, err = ParseSpec("macd:12")
	require.ErrorIs(t, err, ErrUnknownKind)

	_, err = ParseSpec("sma:ten")
	require.Error(t, err)
}

func TestParseSpec_RejectsBadPeriods(t *testing.T) {
	for _, raw := range []string{"sma:1e19", "ema:0", "rsi:-3", "wma:2.5", "stddev:NaN", "willr:10001"} {
		_, err := ParseSpec(raw)
		require.ErrorIs(t, err, ErrInvalidArgument, raw)
	}

	spec, err := ParseSpec("sma:10000")
	require.NoError(t, err)
	require.Equal(t, "SMA(10000)", spec.New().Name())
}

func TestCompute_ClampsUnvalidatedPeriods(t *testing.T) {
	specs := []Spec{NewSpec(SMAKind, "", 1e19), NewSpec(RSIKind, "", math.NaN())}
	require.Error(t, specs[0].Validate())

	var series []Series
	require.NotPanics(t, func() { series = Compute(rising(5), specs) })
	assert.Equal(t, fmt.Sprintf("SMA(%d)", MaxPeriod), series[0].Name)
	assert.Equal(t, "RSI(1)", series[1].Name)
	assert.Equal(t, 5, series[0].Start)
}

func TestRegister_CaseInsensitive(t *testing.T) {
	kind := SMAKind
	kind.ID = "HostSMA"
	Register(kind)
	t.Cleanup(func() { delete(kinds, "hostsma") })

	found, ok := Lookup("hostsma")
	require.True(t, ok)
	assert.Equal(t, "hostsma", found.ID)

	spec, err := ParseSpec("HOSTSMA:5")
	require.NoError(t, err)
	assert.Equal(t, "hostsma:5", spec.String())
}

func TestKinds(t *testing.T) {
	ids := make([]string, 0)
	for _, kind := range Kinds() {
		ids = append(ids, kind.ID)
	}
	require.Equal(t, []string{"ema", "obv", "rsi", "sma", "stddev", "tradevol", "willr", "wma"}, ids)
}

func TestRing(t *testing.T) {
	r := newRing(3)
	for _, v := range []float64{1, 2} {
		r.push(v)
	}
	require.Equal(t, []float64{1, 2}, r.values())

	r.push(3)
	evicted, full := r.push(4)
	require.True(t, full)
	require.Equal(t, 1.0, evicted)
	require.Equal(t, []float64{2, 3, 4}, r.values())
}
