package geometry

import "math"

// Transformer maps timestamps and values of a visible data window to pixels.
//
// X is proportional to the time elapsed before the rightmost visible
// timestamp: X(rightMTS) is the full target width and older timestamps move
// left, so appending candles shifts history naturally. Y interpolates
// linearly between the window minimum and maximum; by default larger values
// map to smaller pixel rows (top-left origin).
type Transformer struct {
	min          float64
	max          float64
	logicalWidth float64
	rightMTS     int64
	flipped      bool
}

// NewTransformer captures the extent of values. logicalWidth is the visible
// time span in milliseconds and rightMTS the rightmost visible timestamp.
func NewTransformer(values []float64, logicalWidth float64, rightMTS int64) Transformer {
	t := Transformer{logicalWidth: logicalWidth, rightMTS: rightMTS}

	for i, v := range values {
		if i == 0 || v < t.min {
			t.min = v
		}
		if i == 0 || v > t.max {
			t.max = v
		}
	}

	return t
}

// NewRangeTransformer builds a transformer from an explicit value range
func NewRangeTransformer(lo, hi, logicalWidth float64, rightMTS int64) Transformer {
	return Transformer{min: lo, max: hi, logicalWidth: logicalWidth, rightMTS: rightMTS}
}

// Flipped returns a copy whose Y grows upward, for panels anchored at the
// bottom-left corner
func (t Transformer) Flipped() Transformer {
	t.flipped = !t.flipped
	return t
}

// Min returns the lowest value in range
func (t Transformer) Min() float64 { return t.min }

// Max returns the highest value in range
func (t Transformer) Max() float64 { return t.max }

// RightMTS returns the rightmost visible timestamp
func (t Transformer) RightMTS() int64 { return t.rightMTS }

// LogicalWidth returns the visible time span in milliseconds
func (t Transformer) LogicalWidth() float64 { return t.logicalWidth }

// delta is the value range; a flat window counts as one unit so Y never divides by zero
func (t Transformer) delta() float64 {
	if d := t.max - t.min; d != 0 {
		return d
	}
	return 1
}

// X maps a timestamp to a pixel column within targetWidth
func (t Transformer) X(mts int64, targetWidth float64) float64 {
	if t.logicalWidth == 0 {
		return targetWidth
	}
	return (t.logicalWidth - float64(t.rightMTS-mts)) / t.logicalWidth * targetWidth
}

// MTS is the inverse of X
func (t Transformer) MTS(x, targetWidth float64) int64 {
	if targetWidth == 0 {
		return t.rightMTS
	}
	return t.rightMTS - int64(math.Round(t.logicalWidth*(1-x/targetWidth)))
}

// Y maps a value to a pixel row within targetHeight
func (t Transformer) Y(v, targetHeight float64) float64 {
	scaled := (v - t.min) / t.delta() * targetHeight
	if t.flipped {
		return scaled
	}
	return targetHeight - scaled
}

// Value is the inverse of Y
func (t Transformer) Value(y, targetHeight float64) float64 {
	if targetHeight == 0 {
		return t.min
	}
	if !t.flipped {
		y = targetHeight - y
	}
	return t.min + y/targetHeight*t.delta()
}

// InRange reports whether v lies within the transformer's value range
func (t Transformer) InRange(v float64) bool {
	return v >= t.min && v <= t.max
}
