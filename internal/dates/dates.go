// Package dates holds the calendar helpers used by the day view: midnight
// normalization, the 7-day navigation window and date parameter parsing.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const Layout = "2006-01-02"

var (
	ErrMissingDate = errors.New("date is required")
	ErrInvalidDate = errors.New("date must be an ISO 8601 date")
)

// accepted ISO 8601 shapes; fractional seconds are accepted by time.Parse
// after the seconds field without being named in the layout.
var layouts = []string{
	Layout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// Midnight drops the time of day and returns the calendar date of t as a
// UTC midnight instant, which is how dates are stored.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func TodayAtMidnight() time.Time {
	return Midnight(time.Now())
}

// Range returns start-3d ... start+3d in increasing order.
func Range(start time.Time) []time.Time {
	out := make([]time.Time, 0, 7)
	for diff := -3; diff <= 3; diff++ {
		out = append(out, start.AddDate(0, 0, diff))
	}
	return out
}

func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissingDate
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Midnight(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func Format(t time.Time) string {
	return t.Format(Layout)
}
