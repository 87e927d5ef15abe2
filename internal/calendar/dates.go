package calendar

import (
	"time"
)

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

// ParseDateString parses a date string in YYYY-MM-DD format.
// The result is midnight UTC.
func ParseDateString(dateStr string) (time.Time, error) {
	return time.Parse(DateLayout, dateStr)
}

// FormatDate formats a date as YYYY-MM-DD
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// Midnight returns the calendar day of t as midnight UTC.
//
// The wall-clock date of t is kept, so 2024-02-20T23:30-05:00 becomes
// 2024-02-20T00:00Z rather than the UTC instant's date.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// secondsPerDay is exact between two UTC midnights.
const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the number of whole days from start to end.
// Both values are compared at day granularity; the result is negative
// when end falls before start. Counting Unix seconds keeps spans longer
// than time.Duration can hold (about 292 years) exact.
func DaysBetween(start, end time.Time) int {
	return int((Midnight(end).Unix() - Midnight(start).Unix()) / secondsPerDay)
}

// addDays returns the midnight-normalized date n days after t.
func addDays(t time.Time, n int) time.Time {
	return Midnight(t).AddDate(0, 0, n)
}

// mod returns the non-negative remainder of a divided by n.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
