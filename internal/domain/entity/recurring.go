package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CadenceKind is the repeat pattern of a recurring definition.
type CadenceKind string

const (
	CadenceDaily   CadenceKind = "DAILY"
	CadenceWeekly  CadenceKind = "WEEKLY"
	CadenceMonthly CadenceKind = "MONTHLY"
	CadenceYearly  CadenceKind = "YEARLY"
	CadenceCustom  CadenceKind = "CUSTOM"
)

// ParseCadenceKind normalizes s and reports whether it names a known cadence.
func ParseCadenceKind(s string) (CadenceKind, bool) {
	kind := CadenceKind(strings.ToUpper(strings.TrimSpace(s)))
	return kind, kind.IsValid()
}

// IsValid reports whether the cadence kind is one of the supported values.
func (k CadenceKind) IsValid() bool {
	switch k {
	case CadenceDaily, CadenceWeekly, CadenceMonthly, CadenceYearly, CadenceCustom:
		return true
	}
	return false
}

// occurrenceDateLayout is the date part of an occurrence key.
const occurrenceDateLayout = "2006-01-02"

// RecurringDefinition describes a transaction that repeats on a cadence.
// NextRunAt is the authoritative due marker: the definition is due when NextRunAt <= evaluation time.
type RecurringDefinition struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	CategoryID  *uuid.UUID
	Cadence     CadenceKind
	Interval    int
	DayOfWeek   *int // 0-6, 0 is Sunday
	DayOfMonth  *int // 1-31
	MonthOfYear *int // 1-12, reserved
	LastRunAt   *time.Time
	NextRunAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewRecurringDefinition creates a new RecurringDefinition entity. The caller computes nextRunAt.
func NewRecurringDefinition(
	userID uuid.UUID,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
	categoryID *uuid.UUID,
	cadence CadenceKind,
	interval int,
	dayOfWeek, dayOfMonth, monthOfYear *int,
	nextRunAt time.Time,
) *RecurringDefinition {
	now := time.Now().UTC()
	if interval <= 0 {
		interval = 1
	}

	return &RecurringDefinition{
		ID:          uuid.New(),
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Type:        transactionType,
		CategoryID:  categoryID,
		Cadence:     cadence,
		Interval:    interval,
		DayOfWeek:   dayOfWeek,
		DayOfMonth:  dayOfMonth,
		MonthOfYear: monthOfYear,
		NextRunAt:   nextRunAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsDue reports whether the definition should fire at the given evaluation time.
func (d *RecurringDefinition) IsDue(at time.Time) bool {
	return !d.NextRunAt.After(at)
}

// OccurrenceKey identifies the occurrence for the currently scheduled due date.
// It stays stable until NextRunAt advances, so a retried run finds the same key.
func (d *RecurringDefinition) OccurrenceKey() string {
	return d.ID.String() + ":" + d.NextRunAt.Format(occurrenceDateLayout)
}

// MarkRun records a completed run and the next scheduled date.
func (d *RecurringDefinition) MarkRun(ranAt, nextRunAt time.Time) {
	d.LastRunAt = &ranAt
	d.NextRunAt = nextRunAt
	d.UpdatedAt = time.Now().UTC()
}
