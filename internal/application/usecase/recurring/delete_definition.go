package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
)

// DeleteDefinitionInput represents the input for recurring definition deletion.
type DeleteDefinitionInput struct {
	ID     uuid.UUID
	UserID uuid.UUID
}

// DeleteDefinitionUseCase deletes a recurring definition.
// Occurrences already materialized are kept.
type DeleteDefinitionUseCase struct {
	definitionRepo adapter.RecurringDefinitionRepository
}

// NewDeleteDefinitionUseCase creates a new DeleteDefinitionUseCase instance.
func NewDeleteDefinitionUseCase(definitionRepo adapter.RecurringDefinitionRepository) *DeleteDefinitionUseCase {
	return &DeleteDefinitionUseCase{definitionRepo: definitionRepo}
}

// Execute performs the deletion.
func (uc *DeleteDefinitionUseCase) Execute(ctx context.Context, input DeleteDefinitionInput) error {
	definition, err := uc.definitionRepo.FindByID(ctx, input.ID)
	if err != nil {
		return notFoundOr(err)
	}
	if err := ensureOwner(definition, input.UserID); err != nil {
		return err
	}

	if err := uc.definitionRepo.Delete(ctx, input.ID); err != nil {
		return fmt.Errorf("failed to delete recurring definition: %w", err)
	}
	return nil
}
