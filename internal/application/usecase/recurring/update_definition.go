package recurring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// UpdateDefinitionInput represents the input for recurring definition update.
// Nil fields are left unchanged.
type UpdateDefinitionInput struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Description     *string
	Amount          *decimal.Decimal
	Type            *entity.TransactionType
	CategoryID      *uuid.UUID
	ClearCategory   bool
	Cadence         *string
	Interval        *int
	DayOfWeek       *int
	ClearDayOfWeek  bool
	DayOfMonth      *int
	ClearDayOfMonth bool
	MonthOfYear     *int
}

// changesSchedule reports whether the input touches any field that feeds NextRun.
func (in UpdateDefinitionInput) changesSchedule() bool {
	return in.Cadence != nil || in.Interval != nil ||
		in.DayOfWeek != nil || in.ClearDayOfWeek ||
		in.DayOfMonth != nil || in.ClearDayOfMonth
}

// UpdateDefinitionOutput represents the output of recurring definition update.
type UpdateDefinitionOutput struct {
	Definition *DefinitionOutput
}

// UpdateDefinitionUseCase handles recurring definition edits.
type UpdateDefinitionUseCase struct {
	definitionRepo adapter.RecurringDefinitionRepository
	categoryRepo   adapter.CategoryRepository
	clock          adapter.Clock
}

// NewUpdateDefinitionUseCase creates a new UpdateDefinitionUseCase instance.
func NewUpdateDefinitionUseCase(
	definitionRepo adapter.RecurringDefinitionRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *UpdateDefinitionUseCase {
	return &UpdateDefinitionUseCase{
		definitionRepo: definitionRepo,
		categoryRepo:   categoryRepo,
		clock:          clock,
	}
}

// Execute applies the edit. When the schedule changes, the next run is recomputed from the
// last run (or from now if the definition never ran) so the original cycle anchor is kept.
func (uc *UpdateDefinitionUseCase) Execute(ctx context.Context, input UpdateDefinitionInput) (*UpdateDefinitionOutput, error) {
	definition, err := uc.definitionRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if err := ensureOwner(definition, input.UserID); err != nil {
		return nil, err
	}

	description := definition.Description
	if input.Description != nil {
		description = *input.Description
	}
	amount := definition.Amount
	if input.Amount != nil {
		amount = *input.Amount
	}
	transactionType := definition.Type
	if input.Type != nil {
		transactionType = *input.Type
	}
	if err := validateDetails(description, amount, transactionType); err != nil {
		return nil, err
	}

	categoryID := definition.CategoryID
	switch {
	case input.ClearCategory:
		categoryID = nil
	case input.CategoryID != nil:
		if err := checkCategory(ctx, uc.categoryRepo, *input.CategoryID, input.UserID); err != nil {
			return nil, err
		}
		categoryID = input.CategoryID
	}

	cadence := string(definition.Cadence)
	if input.Cadence != nil {
		cadence = *input.Cadence
	}
	interval := definition.Interval
	if input.Interval != nil {
		interval = *input.Interval
	}
	dayOfWeek := definition.DayOfWeek
	if input.ClearDayOfWeek {
		dayOfWeek = nil
	} else if input.DayOfWeek != nil {
		dayOfWeek = input.DayOfWeek
	}
	dayOfMonth := definition.DayOfMonth
	if input.ClearDayOfMonth {
		dayOfMonth = nil
	} else if input.DayOfMonth != nil {
		dayOfMonth = input.DayOfMonth
	}
	monthOfYear := definition.MonthOfYear
	if input.MonthOfYear != nil {
		monthOfYear = input.MonthOfYear
	}

	fields, err := validateCadence(cadence, interval, dayOfWeek, dayOfMonth, monthOfYear)
	if err != nil {
		return nil, err
	}

	definition.Description = description
	definition.Amount = amount
	definition.Type = transactionType
	definition.CategoryID = categoryID
	definition.Cadence = fields.Cadence
	definition.Interval = fields.Interval
	definition.DayOfWeek = fields.DayOfWeek
	definition.DayOfMonth = fields.DayOfMonth
	definition.MonthOfYear = fields.MonthOfYear

	if input.changesSchedule() {
		anchor := uc.clock.Now().UTC()
		if definition.LastRunAt != nil {
			anchor = *definition.LastRunAt
		}
		nextRunAt, err := NextRun(fields.Cadence, fields.Interval, anchor, fields.DayOfWeek, fields.DayOfMonth)
		if err != nil {
			return nil, err
		}
		definition.NextRunAt = nextRunAt
	}
	definition.UpdatedAt = time.Now().UTC()

	if err := uc.definitionRepo.Update(ctx, definition); err != nil {
		return nil, fmt.Errorf("failed to update recurring definition: %w", err)
	}

	return &UpdateDefinitionOutput{Definition: toDefinitionOutput(definition)}, nil
}
