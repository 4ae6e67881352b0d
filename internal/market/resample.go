package market

import (
	"sort"
	"time"
)

// SortBars orders bars by time ascending and drops duplicate timestamps,
// keeping the last occurrence
func SortBars(bars []Bar) []Bar {
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && out[n-1].Time.Equal(b.Time) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

// Clip keeps bars whose time falls in [from, to]
func Clip(bars []Bar, from, to time.Time) []Bar {
	out := make([]Bar, 0, len(bars))
	for _, b := range bars {
		if b.Time.Before(from) || b.Time.After(to) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Resample aggregates sorted bars into iv buckets. Bars already at the
// requested resolution pass through unchanged.
func Resample(bars []Bar, iv Interval) []Bar {
	if len(bars) == 0 {
		return bars
	}
	out := make([]Bar, 0, len(bars))
	var cur Bar
	var key time.Time
	for i, b := range bars {
		k := bucket(b.Time, iv)
		if i == 0 || !k.Equal(key) {
			if i > 0 {
				out = append(out, cur)
			}
			key = k
			cur = NewBar(k, b.Open, b.High, b.Low, b.Close, b.Volume)
			continue
		}
		if b.High > cur.High {
			cur.High = b.High
		}
		if b.Low < cur.Low {
			cur.Low = b.Low
		}
		cur.Close = b.Close
		cur.Volume += b.Volume
	}
	return append(out, cur)
}

func bucket(t time.Time, iv Interval) time.Time {
	t = t.In(Location)
	switch iv {
	case Interval1W:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location)
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case Interval1M:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, Location)
	case Interval1D:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Location)
	default:
		return t.Truncate(iv.Step())
	}
}
