package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
)

// DeleteTransactionInput identifies the transaction to remove.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// DeleteTransactionUseCase soft-deletes a user's transaction.
// Deleted occurrences keep their occurrence key, so the scheduler never writes them again.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

func NewDeleteTransactionUseCase(transactionRepo adapter.TransactionRepository) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{transactionRepo: transactionRepo}
}

func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	transaction, err := findOwned(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return err
	}

	if err := uc.transactionRepo.Delete(ctx, transaction.ID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if transaction.RecurringDefinitionID != nil {
		slog.Info("Recurring occurrence deleted",
			"transaction_id", transaction.ID,
			"definition_id", *transaction.RecurringDefinitionID,
		)
	}
	return nil
}
