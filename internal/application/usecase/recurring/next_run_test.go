package recurring

import (
	"errors"
	"testing"
	"time"

	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

func TestNextRun(t *testing.T) {
	tests := []struct {
		name       string
		cadence    entity.CadenceKind
		interval   int
		from       time.Time
		dayOfWeek  *int
		dayOfMonth *int
		expected   time.Time
	}{
		{
			name:     "daily with interval 3",
			cadence:  entity.CadenceDaily,
			interval: 3,
			from:     date(2024, time.January, 4),
			expected: date(2024, time.January, 7),
		},
		{
			name:     "zero interval is treated as one",
			cadence:  entity.CadenceDaily,
			interval: 0,
			from:     date(2024, time.January, 4),
			expected: date(2024, time.January, 5),
		},
		{
			name:     "custom advances in days",
			cadence:  entity.CadenceCustom,
			interval: 10,
			from:     date(2024, time.February, 25),
			expected: date(2024, time.March, 6),
		},
		{
			name:     "weekly without day constraint",
			cadence:  entity.CadenceWeekly,
			interval: 2,
			from:     date(2024, time.January, 3),
			expected: date(2024, time.January, 17),
		},
		{
			name:      "weekly moves to monday inside the target week",
			cadence:   entity.CadenceWeekly,
			interval:  1,
			from:      date(2024, time.January, 3), // Wednesday
			dayOfWeek: intPtr(1),
			expected:  date(2024, time.January, 8),
		},
		{
			name:      "weekly sunday is the last day of the week",
			cadence:   entity.CadenceWeekly,
			interval:  1,
			from:      date(2024, time.January, 3),
			dayOfWeek: intPtr(0),
			expected:  date(2024, time.January, 14),
		},
		{
			name:     "monthly clamps to month end",
			cadence:  entity.CadenceMonthly,
			interval: 1,
			from:     date(2024, time.January, 31),
			expected: date(2024, time.February, 29),
		},
		{
			name:       "monthly with day of month",
			cadence:    entity.CadenceMonthly,
			interval:   1,
			from:       date(2024, time.January, 20),
			dayOfMonth: intPtr(15),
			expected:   date(2024, time.February, 15),
		},
		{
			name:       "monthly day 31 clamps in short months",
			cadence:    entity.CadenceMonthly,
			interval:   2,
			from:       date(2024, time.February, 10),
			dayOfMonth: intPtr(31),
			expected:   date(2024, time.April, 30),
		},
		{
			name:     "yearly from leap day",
			cadence:  entity.CadenceYearly,
			interval: 1,
			from:     date(2024, time.February, 29),
			expected: date(2025, time.February, 28),
		},
		{
			name:     "yearly keeps time of day",
			cadence:  entity.CadenceYearly,
			interval: 1,
			from:     time.Date(2023, time.June, 1, 9, 30, 0, 0, time.UTC),
			expected: time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextRun(tt.cadence, tt.interval, tt.from, tt.dayOfWeek, tt.dayOfMonth)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("NextRun() = %s, want %s", got.Format(time.RFC3339), tt.expected.Format(time.RFC3339))
			}
		})
	}
}

func TestNextRun_AlwaysAfterFrom(t *testing.T) {
	cadences := []entity.CadenceKind{
		entity.CadenceDaily,
		entity.CadenceWeekly,
		entity.CadenceMonthly,
		entity.CadenceYearly,
		entity.CadenceCustom,
	}
	start := date(2023, time.December, 20)

	for _, cadence := range cadences {
		for interval := 1; interval <= 3; interval++ {
			for offset := 0; offset < 45; offset++ {
				from := start.AddDate(0, 0, offset)
				for day := 0; day <= 6; day++ {
					next, err := NextRun(cadence, interval, from, intPtr(day), intPtr(day*5+1))
					if err != nil {
						t.Fatalf("%s: unexpected error: %v", cadence, err)
					}
					if !next.After(from) {
						t.Fatalf("%s interval %d from %s: got %s, not after from",
							cadence, interval, from.Format("2006-01-02"), next.Format("2006-01-02"))
					}
				}
			}
		}
	}
}

func TestNextRun_UnknownCadence(t *testing.T) {
	_, err := NextRun(entity.CadenceKind("HOURLY"), 1, date(2024, time.January, 1), nil, nil)
	if !errors.Is(err, domainerror.ErrInvalidCadence) {
		t.Fatalf("expected ErrInvalidCadence, got %v", err)
	}

	var recErr *domainerror.RecurringError
	if !errors.As(err, &recErr) || recErr.Code != domainerror.ErrCodeInvalidCadence {
		t.Errorf("expected RecurringError with code %s, got %v", domainerror.ErrCodeInvalidCadence, err)
	}
}
