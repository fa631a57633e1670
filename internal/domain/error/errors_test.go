package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestRecurringError_WrapsSentinel(t *testing.T) {
	err := NewRecurringError(ErrCodeInvalidCadence, "cadence must be one of DAILY, WEEKLY, MONTHLY, YEARLY, CUSTOM", ErrInvalidCadence)

	if !errors.Is(err, ErrInvalidCadence) {
		t.Error("expected errors.Is to match ErrInvalidCadence")
	}

	wrapped := fmt.Errorf("create definition: %w", err)
	var recErr *RecurringError
	if !errors.As(wrapped, &recErr) {
		t.Fatal("expected errors.As to find RecurringError")
	}
	if recErr.Code != ErrCodeInvalidCadence {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidCadence, recErr.Code)
	}
	if recErr.Error() != "cadence must be one of DAILY, WEEKLY, MONTHLY, YEARLY, CUSTOM: invalid cadence" {
		t.Errorf("unexpected message: %s", recErr.Error())
	}
}

func TestTrendError_MessageWithoutCause(t *testing.T) {
	err := NewTrendError(ErrCodeInvalidPeriod, "period must be: daily, weekly, monthly, or yearly", nil)

	if err.Error() != "period must be: daily, weekly, monthly, or yearly" {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if err.Unwrap() != nil {
		t.Error("expected nil cause")
	}
}
