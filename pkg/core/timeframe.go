package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/xhit/go-str2duration/v2"
)

// TimeFrames lists the supported candle widths in display order
var TimeFrames = []string{"1m", "5m", "15m", "30m", "1h", "3h", "6h", "12h", "1D", "7D", "14D", "1M"}

const monthDays = 30

// ParseTimeFrame converts a time frame identifier such as "5m", "1h", "1D"
// or "1M" into its duration. Day and month suffixes are upper case; "M"
// is a 30 day month.
func ParseTimeFrame(tf string) (time.Duration, error) {
	if tf == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidTimeFrame)
	}

	if strings.HasSuffix(tf, "M") {
		n, err := strconv.Atoi(strings.TrimSuffix(tf, "M"))
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("%w: %s", ErrInvalidTimeFrame, tf)
		}
		return time.Duration(n*monthDays) * 24 * time.Hour, nil
	}

	d, err := str2duration.ParseDuration(strings.ToLower(tf))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidTimeFrame, tf, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTimeFrame, tf)
	}

	return d, nil
}

// TimeFrameWidth returns the candle width of tf in milliseconds
func TimeFrameWidth(tf string) (int64, error) {
	d, err := ParseTimeFrame(tf)
	if err != nil {
		return 0, err
	}
	return d.Milliseconds(), nil
}

// IsKnownTimeFrame reports whether tf is one of TimeFrames
func IsKnownTimeFrame(tf string) bool {
	return lo.Contains(TimeFrames, tf)
}
