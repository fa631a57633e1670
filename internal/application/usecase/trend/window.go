// Package trend contains spending trend use cases.
package trend

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/calendar"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

// DefaultWindowMonths is how far back the window starts when no start date is given.
// The start day is clamped to the target month, so Aug 31 starts on Feb 29.
const DefaultWindowMonths = 6

// TrendWindow selects the transactions a trend is computed over.
// Nil dates and type fall back to the defaults applied by resolve.
type TrendWindow struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Period     entity.TrendPeriod
	CategoryID *uuid.UUID
	Type       *entity.TransactionType
}

// resolvedWindow is a TrendWindow with defaults applied and the previous window derived.
type resolvedWindow struct {
	Start         time.Time
	End           time.Time
	PreviousStart time.Time
	Period        entity.TrendPeriod
	CategoryID    *uuid.UUID
	Type          entity.TransactionType
}

// resolve applies the window defaults. The previous window has the same duration
// and ends right before Start.
func (w TrendWindow) resolve(now time.Time) (*resolvedWindow, error) {
	end := now
	if w.EndDate != nil {
		end = *w.EndDate
	}
	start := calendar.AddMonths(end, -DefaultWindowMonths)
	if w.StartDate != nil {
		start = *w.StartDate
	}

	if end.Before(start) {
		return nil, domainerror.NewTrendError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must be after start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	transactionType := entity.TransactionTypeExpense
	if w.Type != nil {
		transactionType = *w.Type
	}

	return &resolvedWindow{
		Start:         start,
		End:           end,
		PreviousStart: start.Add(-end.Sub(start)),
		Period:        w.Period,
		CategoryID:    w.CategoryID,
		Type:          transactionType,
	}, nil
}

// currentFilter selects approved transactions in [Start, End].
func (w *resolvedWindow) currentFilter(userID uuid.UUID, categoryIDs []uuid.UUID) adapter.TransactionFilter {
	status := entity.TransactionStatusApproved
	transactionType := w.Type
	return adapter.TransactionFilter{
		UserID:      userID,
		StartDate:   &w.Start,
		EndDate:     &w.End,
		CategoryIDs: categoryIDs,
		Type:        &transactionType,
		Status:      &status,
	}
}

// previousFilter selects approved transactions in [PreviousStart, Start).
func (w *resolvedWindow) previousFilter(userID uuid.UUID, categoryIDs []uuid.UUID) adapter.TransactionFilter {
	status := entity.TransactionStatusApproved
	transactionType := w.Type
	return adapter.TransactionFilter{
		UserID:      userID,
		StartDate:   &w.PreviousStart,
		EndBefore:   &w.Start,
		CategoryIDs: categoryIDs,
		Type:        &transactionType,
		Status:      &status,
	}
}
