package market

import (
	"strings"
	"time"
)

// DefaultHistoryDays is the lookback used when start_date is omitted
const DefaultHistoryDays = 90

// DateRange is an inclusive calendar range in exchange time
type DateRange struct {
	From time.Time
	To   time.Time
}

// StartDate formats From as YYYY-MM-DD
func (r DateRange) StartDate() string { return r.From.Format(DateLayout) }

// EndDate formats To as YYYY-MM-DD
func (r DateRange) EndDate() string { return r.To.Format(DateLayout) }

// ParseDate parses YYYY-MM-DD in exchange time
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), Location)
	if err != nil {
		return time.Time{}, InvalidInput("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseDateRange resolves optional start/end strings against now. Missing
// end means today, missing start means DefaultHistoryDays before end.
// To is moved to the last instant of its day so bars on that date are kept.
func ParseDateRange(start, end string, now time.Time) (DateRange, error) {
	now = now.In(Location)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, Location)
	if strings.TrimSpace(end) != "" {
		t, err := ParseDate(end)
		if err != nil {
			return DateRange{}, err
		}
		to = t
	}

	from := to.AddDate(0, 0, -DefaultHistoryDays)
	if strings.TrimSpace(start) != "" {
		t, err := ParseDate(start)
		if err != nil {
			return DateRange{}, err
		}
		from = t
	}

	if from.After(to) {
		return DateRange{}, InvalidInput("start_date %s is after end_date %s", from.Format(DateLayout), to.Format(DateLayout))
	}

	return DateRange{From: from, To: to.Add(24*time.Hour - time.Nanosecond)}, nil
}
