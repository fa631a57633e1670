// Package calendar holds month arithmetic shared by scheduling and trend windows.
package calendar

import "time"

// AddMonths adds months to t, clamping the day to the last day of the target
// month instead of overflowing into the next one (Aug 31 - 6 months is Feb 29).
// The clock time and location of t are kept.
func AddMonths(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	day := min(t.Day(), DaysIn(first.Year(), first.Month()))
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
