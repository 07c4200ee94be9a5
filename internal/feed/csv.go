// Package feed loads candle and trade history from CSV files and serves it
// to the chart in pages, oldest data last.
package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/raykavin/tradechart/pkg/core"
)

var ErrEmptyFile = errors.New("empty csv file")

var (
	// headerless files use the exchange export layout, timestamps in seconds
	defaultCandleHeaders = map[string]int{
		"time": 0, "open": 1, "close": 2, "low": 3, "high": 4, "volume": 5,
	}
	defaultTradeHeaders = map[string]int{
		"mts": 0, "price": 1, "amount": 2,
	}
)

// parseHeaders returns the column index of every header. The second return
// is false when the first row is data.
func parseHeaders(row []string, defaults map[string]int) (map[string]int, bool) {
	if _, err := strconv.ParseFloat(row[0], 64); err == nil {
		return defaults, false
	}

	headers := make(map[string]int, len(row))
	for i, header := range row {
		headers[strings.ToLower(strings.TrimSpace(header))] = i
	}
	return headers, true
}

func readRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	return rows, nil
}

// LoadCandles reads an OHLCV file. A "time" column holds seconds and an
// "mts" column milliseconds. Rows must be sorted by timestamp.
func LoadCandles(path string) (core.Candles, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}

	headers, hasHeaders := parseHeaders(rows[0], defaultCandleHeaders)
	if hasHeaders {
		rows = rows[1:]
	}

	candles := make(core.Candles, 0, len(rows))
	for i, row := range rows {
		candle, err := parseCandle(row, headers)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+1, err)
		}

		if n := len(candles); n > 0 && candle.MTS <= candles[n-1].MTS {
			return nil, fmt.Errorf("%w: %s line %d", core.ErrUnsortedCandles, path, i+1)
		}
		candles = append(candles, candle)
	}

	return candles, nil
}

func parseCandle(row []string, headers map[string]int) (core.Candle, error) {
	var (
		candle core.Candle
		err    error
	)

	if candle.MTS, err = timestamp(row, headers); err != nil {
		return core.Candle{}, err
	}

	fields := []struct {
		key  string
		dest *float64
	}{
		{core.KeyOpen, &candle.Open},
		{core.KeyClose, &candle.Close},
		{core.KeyHigh, &candle.High},
		{core.KeyLow, &candle.Low},
		{core.KeyVolume, &candle.Volume},
	}

	for _, field := range fields {
		if *field.dest, err = column(row, headers, field.key); err != nil {
			return core.Candle{}, err
		}
	}

	return candle, nil
}

// LoadTrades reads a trade file with mts, price and amount columns
func LoadTrades(path string) ([]core.Trade, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}

	headers, hasHeaders := parseHeaders(rows[0], defaultTradeHeaders)
	if hasHeaders {
		rows = rows[1:]
	}

	trades := make([]core.Trade, 0, len(rows))
	for i, row := range rows {
		var trade core.Trade
		if trade.MTS, err = timestamp(row, headers); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+1, err)
		}
		if trade.Price, err = column(row, headers, "price"); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+1, err)
		}
		if trade.Amount, err = column(row, headers, "amount"); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+1, err)
		}
		trades = append(trades, trade)
	}

	return trades, nil
}

func timestamp(row []string, headers map[string]int) (int64, error) {
	if _, ok := headers["mts"]; ok {
		mts, err := column(row, headers, "mts")
		return int64(mts), err
	}

	seconds, err := column(row, headers, "time")
	return int64(seconds) * 1000, err
}

func column(row []string, headers map[string]int, key string) (float64, error) {
	index, ok := headers[key]
	if !ok || index >= len(row) {
		return 0, fmt.Errorf("missing column %q", key)
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(row[index]), 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", key, err)
	}
	return value, nil
}

// Limit keeps the candles that opened within duration of the newest one
func Limit(candles core.Candles, duration time.Duration) core.Candles {
	last, ok := candles.Last()
	if !ok {
		return candles
	}

	start := last.MTS - duration.Milliseconds()
	return lo.Filter(candles, func(candle core.Candle, _ int) bool {
		return candle.MTS > start
	})
}

// Resample aggregates candles into buckets of the target time frame. The
// last bucket may be incomplete; the chart treats it as still forming.
func Resample(candles core.Candles, timeFrame string) (core.Candles, error) {
	width, err := core.TimeFrameWidth(timeFrame)
	if err != nil {
		return nil, err
	}

	out := make(core.Candles, 0, len(candles))
	for _, candle := range candles {
		bucket := candle.MTS - candle.MTS%width

		n := len(out)
		if n == 0 || out[n-1].MTS != bucket {
			candle.MTS = bucket
			out = append(out, candle)
			continue
		}

		current := &out[n-1]
		current.High = max(current.High, candle.High)
		current.Low = min(current.Low, candle.Low)
		current.Close = candle.Close
		current.Volume += candle.Volume
	}

	return out, nil
}
