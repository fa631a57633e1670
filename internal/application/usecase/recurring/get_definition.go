package recurring

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

// GetDefinitionInput represents the input for fetching one recurring definition.
type GetDefinitionInput struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

// GetDefinitionUseCase returns a single recurring definition owned by the user.
type GetDefinitionUseCase struct {
	definitionRepo adapter.RecurringDefinitionRepository
}

// NewGetDefinitionUseCase creates a new GetDefinitionUseCase instance.
func NewGetDefinitionUseCase(definitionRepo adapter.RecurringDefinitionRepository) *GetDefinitionUseCase {
	return &GetDefinitionUseCase{definitionRepo: definitionRepo}
}

// Execute fetches the definition.
func (uc *GetDefinitionUseCase) Execute(ctx context.Context, input GetDefinitionInput) (*DefinitionOutput, error) {
	definition, err := uc.definitionRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if err := ensureOwner(definition, input.UserID); err != nil {
		return nil, err
	}
	return toDefinitionOutput(definition), nil
}

// notFoundOr converts a missing-definition error to a typed error and wraps anything else.
func notFoundOr(err error) error {
	if errors.Is(err, domainerror.ErrRecurringDefinitionNotFound) {
		return domainerror.NewRecurringError(
			domainerror.ErrCodeRecurringNotFound,
			"recurring definition not found",
			domainerror.ErrRecurringDefinitionNotFound,
		)
	}
	return fmt.Errorf("failed to find recurring definition: %w", err)
}
