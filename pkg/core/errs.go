package core

import "errors"

var (
	ErrInvalidTimeFrame = errors.New("invalid time frame")
	ErrUnsortedCandles  = errors.New("candles are not sorted by timestamp")
)
