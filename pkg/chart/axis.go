package chart

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	minuteMS = int64(time.Minute / time.Millisecond)
	hourMS   = int64(time.Hour / time.Millisecond)
	dayMS    = 24 * hourMS
)

// XTicks picks a 1 minute, 1 hour or 1 day granularity for the visible
// range so the tick count stays under count, and aligns the first tick to
// a multiple of it
func XTicks(leftMTS, rightMTS int64, count int) (ticks []int64, divisor int64) {
	span := float64(rightMTS - leftMTS)
	divisor = minuteMS

	if days := span / float64(dayMS); days > 1 && days < float64(count) {
		divisor = dayMS
	} else if hours := span / float64(hourMS); hours > 1 && hours < float64(count) {
		divisor = hourMS
	}

	first := leftMTS - leftMTS%divisor
	for i := 0; i < count; i++ {
		ticks = append(ticks, first+int64(i)*divisor)
		if first+int64(i+1)*divisor > rightMTS {
			break
		}
	}

	return ticks, divisor
}

// YTicks spaces count ticks evenly from lo towards hi
func YTicks(lo, hi float64, count int) []float64 {
	if count <= 0 {
		return nil
	}

	step := (hi - lo) / float64(count)
	ticks := make([]float64, count)
	for i := range ticks {
		ticks[i] = lo + step*float64(i)
	}
	return ticks
}

// FormatAxisTick renders a price or indicator value compactly, with k, m
// and b suffixes for large magnitudes
func FormatAxisTick(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return trimFloat(v/1e9) + "b"
	case abs >= 1e6:
		return trimFloat(v/1e6) + "m"
	case abs >= 1e4:
		return trimFloat(v/1e3) + "k"
	case abs >= 100:
		return strconv.FormatFloat(math.Floor(v), 'f', 0, 64)
	default:
		return trimFloat(v)
	}
}

func trimFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// timeLabel formats an x tick. Day ticks and midnight ticks show the date.
func timeLabel(mts, divisor int64, timeLayout, dayLayout string) string {
	t := time.UnixMilli(mts).UTC()
	if divisor >= dayMS || (t.Hour() == 0 && t.Minute() == 0) {
		return t.Format(dayLayout)
	}
	return t.Format(timeLayout)
}
