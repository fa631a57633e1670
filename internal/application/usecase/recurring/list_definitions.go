package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
)

// ListDefinitionsInput represents the input for listing recurring definitions.
type ListDefinitionsInput struct {
	UserID uuid.UUID
}

// ListDefinitionsOutput represents the output of listing recurring definitions.
type ListDefinitionsOutput struct {
	Definitions []*DefinitionOutput
}

// ListDefinitionsUseCase lists the user's recurring definitions.
type ListDefinitionsUseCase struct {
	definitionRepo adapter.RecurringDefinitionRepository
}

// NewListDefinitionsUseCase creates a new ListDefinitionsUseCase instance.
func NewListDefinitionsUseCase(definitionRepo adapter.RecurringDefinitionRepository) *ListDefinitionsUseCase {
	return &ListDefinitionsUseCase{definitionRepo: definitionRepo}
}

// Execute lists definitions ordered by next run.
func (uc *ListDefinitionsUseCase) Execute(ctx context.Context, input ListDefinitionsInput) (*ListDefinitionsOutput, error) {
	definitions, err := uc.definitionRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring definitions: %w", err)
	}

	outputs := make([]*DefinitionOutput, len(definitions))
	for i, d := range definitions {
		outputs[i] = toDefinitionOutput(d)
	}
	return &ListDefinitionsOutput{Definitions: outputs}, nil
}
