package recurring

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

// MaxDescriptionLength is the maximum allowed length for definition descriptions.
const MaxDescriptionLength = 255

// DefinitionOutput represents a recurring definition in use case outputs.
type DefinitionOutput struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	CategoryID  *uuid.UUID
	Cadence     entity.CadenceKind
	Interval    int
	DayOfWeek   *int
	DayOfMonth  *int
	MonthOfYear *int
	LastRunAt   *time.Time
	NextRunAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func toDefinitionOutput(d *entity.RecurringDefinition) *DefinitionOutput {
	return &DefinitionOutput{
		ID:          d.ID,
		UserID:      d.UserID,
		Description: d.Description,
		Amount:      d.Amount,
		Type:        d.Type,
		CategoryID:  d.CategoryID,
		Cadence:     d.Cadence,
		Interval:    d.Interval,
		DayOfWeek:   d.DayOfWeek,
		DayOfMonth:  d.DayOfMonth,
		MonthOfYear: d.MonthOfYear,
		LastRunAt:   d.LastRunAt,
		NextRunAt:   d.NextRunAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// cadenceFields groups the inputs that determine a definition's schedule.
type cadenceFields struct {
	Cadence     entity.CadenceKind
	Interval    int
	DayOfWeek   *int
	DayOfMonth  *int
	MonthOfYear *int
}

// validateCadence rejects unknown cadences and out-of-range day constraints.
// A zero interval defaults to 1.
func validateCadence(rawCadence string, interval int, dayOfWeek, dayOfMonth, monthOfYear *int) (*cadenceFields, error) {
	cadence, ok := entity.ParseCadenceKind(rawCadence)
	if !ok {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidCadence,
			"cadence must be one of DAILY, WEEKLY, MONTHLY, YEARLY, CUSTOM",
			domainerror.ErrInvalidCadence,
		)
	}

	if interval < 0 {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidInterval,
			"interval must be a positive integer",
			domainerror.ErrInvalidInterval,
		)
	}
	if interval == 0 {
		interval = 1
	}

	if dayOfWeek != nil && (*dayOfWeek < 0 || *dayOfWeek > 6) {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidDayOfWeek,
			"day_of_week must be between 0 (Sunday) and 6 (Saturday)",
			domainerror.ErrInvalidDayOfWeek,
		)
	}

	if dayOfMonth != nil && (*dayOfMonth < 1 || *dayOfMonth > 31) {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidDayOfMonth,
			"day_of_month must be between 1 and 31",
			domainerror.ErrInvalidDayOfMonth,
		)
	}

	if monthOfYear != nil && (*monthOfYear < 1 || *monthOfYear > 12) {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidMonthOfYear,
			"month_of_year must be between 1 and 12",
			domainerror.ErrInvalidMonthOfYear,
		)
	}

	return &cadenceFields{
		Cadence:     cadence,
		Interval:    interval,
		DayOfWeek:   dayOfWeek,
		DayOfMonth:  dayOfMonth,
		MonthOfYear: monthOfYear,
	}, nil
}

// validateDetails checks the transaction fields copied onto every occurrence.
func validateDetails(description string, amount decimal.Decimal, transactionType entity.TransactionType) error {
	if description == "" || len(description) > MaxDescriptionLength {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeRecurringDescription,
			fmt.Sprintf("description must be between 1 and %d characters", MaxDescriptionLength),
			nil,
		)
	}

	if amount.IsZero() {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurringAmount,
			"amount must not be zero",
			nil,
		)
	}

	if !transactionType.IsValid() {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurringType,
			"type must be 'expense' or 'income'",
			nil,
		)
	}

	return nil
}

// ensureOwner checks that the definition belongs to the user.
func ensureOwner(definition *entity.RecurringDefinition, userID uuid.UUID) error {
	if definition.UserID != userID {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeNotAuthorizedRecurring,
			"not authorized to access this recurring definition",
			domainerror.ErrNotAuthorizedToModifyRecurring,
		)
	}
	return nil
}
