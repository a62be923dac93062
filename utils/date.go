package utils

import (
	"strings"
	"time"
)

const (
	// CompactDateLayout is the YYYYMMDD layout used by the daily feeds.
	CompactDateLayout = "20060102"
	// DayDateLayout is used for axis labels.
	DayDateLayout = "2006-01-02"

	Day  = 24 * time.Hour
	Week = 7 * Day
)

// ParseCompactDate parses a YYYYMMDD date as midnight UTC.
func ParseCompactDate(s string) (time.Time, error) {
	return time.ParseInLocation(CompactDateLayout, strings.TrimSpace(s), time.UTC)
}

// Midnight drops the clock part of t, keeping its location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MondayOnOrBefore returns midnight of the Monday of the week t falls in.
func MondayOnOrBefore(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return Midnight(t).AddDate(0, 0, -offset)
}

// DaySpan is the number of calendar days covered from first to last, both
// inclusive. It is zero when last is before first.
func DaySpan(first, last time.Time) int {
	first, last = Midnight(first), Midnight(last)
	if last.Before(first) {
		return 0
	}
	return int(last.Sub(first).Round(time.Hour)/Day) + 1
}
