package feed

import (
	"encoding/csv"
	"io"

	"github.com/raykavin/tradechart/pkg/core"
)

var csvHeaders = []string{"mts", "open", "close", "high", "low", "volume"}

// Precision returns the largest number of decimal places used by any price
// or volume in candles
func Precision(candles core.Candles) int {
	var precision int64
	for _, c := range candles {
		for _, v := range []float64{c.Open, c.Close, c.High, c.Low, c.Volume} {
			precision = max(precision, core.NumDecPlaces(v))
		}
	}
	return int(precision)
}

// WriteCandles writes candles as a headed CSV file that LoadCandles reads
// back, keeping the precision of the input values
func WriteCandles(w io.Writer, candles core.Candles) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeaders); err != nil {
		return err
	}

	precision := Precision(candles)
	for _, candle := range candles {
		if err := writer.Write(candle.ToSlice(precision)); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
