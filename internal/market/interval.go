package market

import (
	"strings"
	"time"
)

// Interval is a bar resolution token
type Interval string

const (
	Interval1m  Interval = "1m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1H  Interval = "1H"
	Interval1D  Interval = "1D"
	Interval1W  Interval = "1W"
	Interval1M  Interval = "1M"
)

// Intervals lists every supported token in ascending resolution
var Intervals = []Interval{
	Interval1m, Interval5m, Interval15m, Interval30m,
	Interval1H, Interval1D, Interval1W, Interval1M,
}

// ParseInterval accepts the canonical tokens plus common aliases. "1m" is
// minutes and "1M" months; other tokens are case-insensitive.
func ParseInterval(s string) (Interval, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Interval1D, nil
	}
	switch raw {
	case "1m", "m":
		return Interval1m, nil
	case "1M", "M":
		return Interval1M, nil
	}

	switch strings.ToLower(raw) {
	case "5m":
		return Interval5m, nil
	case "15m":
		return Interval15m, nil
	case "30m":
		return Interval30m, nil
	case "1h", "h", "60m":
		return Interval1H, nil
	case "1d", "d", "day", "daily":
		return Interval1D, nil
	case "1w", "w", "week", "weekly":
		return Interval1W, nil
	case "month", "monthly", "1mo":
		return Interval1M, nil
	}
	return "", InvalidInput("unknown interval %q", s)
}

// Intraday reports whether bars are finer than one day
func (iv Interval) Intraday() bool {
	switch iv {
	case Interval1m, Interval5m, Interval15m, Interval30m, Interval1H:
		return true
	}
	return false
}

// Step is the nominal spacing between bars
func (iv Interval) Step() time.Duration {
	switch iv {
	case Interval1m:
		return time.Minute
	case Interval5m:
		return 5 * time.Minute
	case Interval15m:
		return 15 * time.Minute
	case Interval30m:
		return 30 * time.Minute
	case Interval1H:
		return time.Hour
	case Interval1W:
		return 7 * 24 * time.Hour
	case Interval1M:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

func (iv Interval) String() string {
	return string(iv)
}
