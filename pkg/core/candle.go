package core

import (
	"fmt"
	"strconv"
	"time"
)

// Candle keys accepted by Candle.Field
const (
	KeyOpen   = "open"
	KeyClose  = "close"
	KeyHigh   = "high"
	KeyLow    = "low"
	KeyVolume = "volume"
)

// Candle represents a single OHLCV bucket. MTS is the bucket open time in
// milliseconds since the epoch.
type Candle struct {
	MTS    int64   `json:"mts"`
	Open   float64 `json:"open"`
	Close  float64 `json:"close"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Volume float64 `json:"volume"`
}

// NewCandle builds a candle from the [mts, open, close, high, low, volume]
// tuple layout used by most exchange feeds
func NewCandle(values [6]float64) Candle {
	return Candle{
		MTS:    int64(values[0]),
		Open:   values[1],
		Close:  values[2],
		High:   values[3],
		Low:    values[4],
		Volume: values[5],
	}
}

// Time returns the candle open time
func (c Candle) Time() time.Time { return time.UnixMilli(c.MTS) }

// Rising reports whether the candle closed at or above its open
func (c Candle) Rising() bool { return c.Close >= c.Open }

// IsEmpty checks if the candle contains no significant data
func (c Candle) IsEmpty() bool { return c.MTS == 0 && c.Close == 0 && c.Open == 0 && c.Volume == 0 }

// Field returns the OHLCV value stored under key. Unknown keys return false.
func (c Candle) Field(key string) (float64, bool) {
	switch key {
	case KeyOpen:
		return c.Open, true
	case KeyClose:
		return c.Close, true
	case KeyHigh:
		return c.High, true
	case KeyLow:
		return c.Low, true
	case KeyVolume:
		return c.Volume, true
	default:
		return 0, false
	}
}

// ToSlice converts a candle to a string slice for serialization
// with the specified decimal precision
func (c Candle) ToSlice(precision int) []string {
	return []string{
		fmt.Sprintf("%d", c.MTS),
		strconv.FormatFloat(c.Open, 'f', precision, 64),
		strconv.FormatFloat(c.Close, 'f', precision, 64),
		strconv.FormatFloat(c.High, 'f', precision, 64),
		strconv.FormatFloat(c.Low, 'f', precision, 64),
		strconv.FormatFloat(c.Volume, 'f', precision, 64),
	}
}

// Candles is an ascending, timestamp-unique candle sequence
type Candles []Candle

// Last returns the newest candle, or false when the sequence is empty
func (cs Candles) Last() (Candle, bool) {
	if len(cs) == 0 {
		return Candle{}, false
	}
	return cs[len(cs)-1], true
}

// Highs returns the high of every candle
func (cs Candles) Highs() Series[float64] {
	out := make(Series[float64], len(cs))
	for i, c := range cs {
		out[i] = c.High
	}
	return out
}

// Lows returns the low of every candle
func (cs Candles) Lows() Series[float64] {
	out := make(Series[float64], len(cs))
	for i, c := range cs {
		out[i] = c.Low
	}
	return out
}

// Volumes returns the volume of every candle
func (cs Candles) Volumes() Series[float64] {
	out := make(Series[float64], len(cs))
	for i, c := range cs {
		out[i] = c.Volume
	}
	return out
}

// Nearest returns the candle whose timestamp is closest to mts. The sequence
// must be sorted ascending.
func (cs Candles) Nearest(mts int64) (Candle, bool) {
	if len(cs) == 0 {
		return Candle{}, false
	}

	lo, hi := 0, len(cs)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if cs[mid].MTS < mts {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	if lo > 0 && mts-cs[lo-1].MTS <= cs[lo].MTS-mts {
		return cs[lo-1], true
	}
	return cs[lo], true
}
