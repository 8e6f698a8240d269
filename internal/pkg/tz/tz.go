// Package tz handles the fixed business timezone. Event timestamps are
// stored in UTC; every business rule (date bucketing, lateness thresholds,
// workable-day enumeration) is evaluated at a fixed offset with no DST.
package tz

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Zone builds a fixed-offset location from an offset in minutes, e.g.
// -420 for UTC-7.
func Zone(offsetMinutes int) *time.Location {
	name := fmt.Sprintf("UTC%+d", offsetMinutes/60)
	return time.FixedZone(name, offsetMinutes*60)
}

// LocalDate returns the calendar date of t in loc, formatted YYYY-MM-DD.
func LocalDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// MinutesSinceMidnight returns the local wall-clock time of t in loc as
// minutes since midnight.
func MinutesSinceMidnight(t time.Time, loc *time.Location) int {
	local := t.In(loc)
	return local.Hour()*60 + local.Minute()
}

// ParseClock parses a wall-clock string like "08:11" into minutes since
// midnight.
func ParseClock(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// DateRange enumerates every calendar date in [start, end] inclusive as
// YYYY-MM-DD strings.
func DateRange(start, end string) ([]string, error) {
	from, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(end)
	if err != nil {
		return nil, err
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}

// IsWeekday reports whether a YYYY-MM-DD date falls on Monday through
// Friday.
func IsWeekday(date string) bool {
	d, err := ParseDate(date)
	if err != nil {
		return false
	}
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Weekdays filters a date list down to Monday through Friday.
func Weekdays(dates []string) []string {
	var out []string
	for _, d := range dates {
		if IsWeekday(d) {
			out = append(out, d)
		}
	}
	return out
}
