// Package recurring contains recurring transaction scheduling use cases.
package recurring

import (
	"fmt"
	"time"

	"github.com/finance-tracker/recurring/internal/domain/calendar"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

// NextRun computes the next occurrence of a cadence after from.
// The result is always strictly later than from. An interval below 1 is treated as 1.
//
// Weekly day constraints use a Monday-start week (0 is Sunday, the last day of the week).
// Monthly day constraints are clamped to the last day of the target month, as is
// month and year arithmetic (Jan 31 + 1 month is Feb 28/29).
func NextRun(cadence entity.CadenceKind, interval int, from time.Time, dayOfWeek, dayOfMonth *int) (time.Time, error) {
	if interval <= 0 {
		interval = 1
	}

	switch cadence {
	case entity.CadenceDaily, entity.CadenceCustom:
		return from.AddDate(0, 0, interval), nil

	case entity.CadenceWeekly:
		base := from.AddDate(0, 0, 7*interval)
		if dayOfWeek == nil {
			return base, nil
		}
		next := withWeekday(base, *dayOfWeek)
		if !next.After(from) {
			next = next.AddDate(0, 0, 7)
		}
		return next, nil

	case entity.CadenceMonthly:
		base := calendar.AddMonths(from, interval)
		if dayOfMonth == nil {
			return base, nil
		}
		next := withDayOfMonth(base, *dayOfMonth)
		if !next.After(from) {
			next = withDayOfMonth(calendar.AddMonths(withDayOfMonth(next, 1), 1), *dayOfMonth)
		}
		return next, nil

	case entity.CadenceYearly:
		return calendar.AddMonths(from, 12*interval), nil
	}

	return time.Time{}, domainerror.NewRecurringError(
		domainerror.ErrCodeInvalidCadence,
		fmt.Sprintf("unsupported cadence %q", cadence),
		domainerror.ErrInvalidCadence,
	)
}

// withWeekday moves t to the given weekday inside t's Monday-start week.
func withWeekday(t time.Time, weekday int) time.Time {
	weekday = ((weekday % 7) + 7) % 7
	daysFromMonday := (int(t.Weekday()) + 6) % 7
	offset := (weekday + 6) % 7
	return t.AddDate(0, 0, offset-daysFromMonday)
}

// withDayOfMonth sets the day of month, clamped to the month's length.
func withDayOfMonth(t time.Time, day int) time.Time {
	if day < 1 {
		day = 1
	}
	if last := calendar.DaysIn(t.Year(), t.Month()); day > last {
		day = last
	}
	return time.Date(t.Year(), t.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
