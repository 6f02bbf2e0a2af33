package calculator

import (
	"fmt"
	"time"
)

// MonthLayout is the layout of a month bucket, e.g. "2026-03".
const MonthLayout = "2006-01"

// MonthOf returns the YYYY-MM bucket a calendar date falls into.
func MonthOf(date time.Time) string {
	return date.Format(MonthLayout)
}

// ParseMonth validates a YYYY-MM bucket and returns the first day of that month in UTC.
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return time.Time{}, fmt.Errorf("month must be YYYY-MM: %q", month)
	}
	return t, nil
}
