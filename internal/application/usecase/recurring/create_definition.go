package recurring

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

// CreateDefinitionInput represents the input for recurring definition creation.
type CreateDefinitionInput struct {
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	CategoryID  *uuid.UUID
	Cadence     string
	Interval    int
	DayOfWeek   *int
	DayOfMonth  *int
	MonthOfYear *int
}

// CreateDefinitionOutput represents the output of recurring definition creation.
type CreateDefinitionOutput struct {
	Definition *DefinitionOutput
}

// CreateDefinitionUseCase handles recurring definition creation.
type CreateDefinitionUseCase struct {
	definitionRepo adapter.RecurringDefinitionRepository
	categoryRepo   adapter.CategoryRepository
	clock          adapter.Clock
}

// NewCreateDefinitionUseCase creates a new CreateDefinitionUseCase instance.
func NewCreateDefinitionUseCase(
	definitionRepo adapter.RecurringDefinitionRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *CreateDefinitionUseCase {
	return &CreateDefinitionUseCase{
		definitionRepo: definitionRepo,
		categoryRepo:   categoryRepo,
		clock:          clock,
	}
}

// Execute validates the definition and schedules its first run from the current time.
func (uc *CreateDefinitionUseCase) Execute(ctx context.Context, input CreateDefinitionInput) (*CreateDefinitionOutput, error) {
	if err := validateDetails(input.Description, input.Amount, input.Type); err != nil {
		return nil, err
	}

	fields, err := validateCadence(input.Cadence, input.Interval, input.DayOfWeek, input.DayOfMonth, input.MonthOfYear)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if err := checkCategory(ctx, uc.categoryRepo, *input.CategoryID, input.UserID); err != nil {
			return nil, err
		}
	}

	nextRunAt, err := NextRun(fields.Cadence, fields.Interval, uc.clock.Now().UTC(), fields.DayOfWeek, fields.DayOfMonth)
	if err != nil {
		return nil, err
	}

	definition := entity.NewRecurringDefinition(
		input.UserID,
		input.Description,
		input.Amount,
		input.Type,
		input.CategoryID,
		fields.Cadence,
		fields.Interval,
		fields.DayOfWeek,
		fields.DayOfMonth,
		fields.MonthOfYear,
		nextRunAt,
	)

	if err := uc.definitionRepo.Create(ctx, definition); err != nil {
		return nil, fmt.Errorf("failed to create recurring definition: %w", err)
	}

	return &CreateDefinitionOutput{Definition: toDefinitionOutput(definition)}, nil
}

// checkCategory verifies that the category exists and belongs to the user.
func checkCategory(ctx context.Context, categoryRepo adapter.CategoryRepository, categoryID, userID uuid.UUID) error {
	category, err := categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return domainerror.NewRecurringError(
				domainerror.ErrCodeRecurringCategory,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return fmt.Errorf("failed to find category: %w", err)
	}

	if !category.OwnedBy(userID) {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeRecurringCategory,
			"category does not belong to user",
			domainerror.ErrCategoryNotOwnedByUser,
		)
	}

	return nil
}
