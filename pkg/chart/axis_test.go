package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXTicks(t *testing.T) {
	tests := []struct {
		name        string
		left, right int64
		divisor     int64
		want        []int64
	}{
		{
			name:    "minutes aligned to the granularity",
			left:    90000,
			right:   5 * minuteMS,
			divisor: minuteMS,
			want:    []int64{60000, 120000, 180000, 240000, 300000},
		},
		{
			name:    "hours",
			left:    0,
			right:   3 * hourMS,
			divisor: hourMS,
			want:    []int64{0, hourMS, 2 * hourMS, 3 * hourMS},
		},
		{
			name:    "days",
			left:    dayMS / 2,
			right:   3 * dayMS,
			divisor: dayMS,
			want:    []int64{0, dayMS, 2 * dayMS, 3 * dayMS},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks, divisor := XTicks(tt.left, tt.right, 12)
			assert.Equal(t, tt.divisor, divisor)
			assert.Equal(t, tt.want, ticks)
		})
	}

	t.Run("capped at count", func(t *testing.T) {
		ticks, divisor := XTicks(0, hourMS, 12)
		assert.Equal(t, minuteMS, divisor)
		assert.Len(t, ticks, 12)
	})
}

func TestYTicks(t *testing.T) {
	assert.Equal(t, []float64{0, 10, 20, 30, 40, 50, 60, 70}, YTicks(0, 80, 8))
	assert.Nil(t, YTicks(0, 80, 0))
}

func TestFormatAxisTick(t *testing.T) {
	tests := map[float64]string{
		0:  "0",
		12: "12",
		12.5:     "12.5",
		0.1234:   "0.12",
		150.7:    "150",
		9999:  "9999",
		15000: "15k",
		-20000:   "-20k",
		2500000: "2.5m",
		3e9:      "3b",
		1.25e10:  "12.5b",
	}

	for in, want := range tests {
		assert.Equal(t, want, FormatAxisTick(in), "%v", in)
	}
}

func TestTimeLabel(t *testing.T) {
	assert.Equal(t, "Jan 01", timeLabel(0, minuteMS, "15:04", "Jan 02"))
	assert.Equal(t, "01:30", timeLabel(90*minuteMS, minuteMS, "15:04", "Jan 02"))
	assert.Equal(t, "Jan 02", timeLabel(dayMS+hourMS, dayMS, "15:04", "Jan 02"))
}
