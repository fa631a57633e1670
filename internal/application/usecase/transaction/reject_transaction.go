package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
)

// RejectTransactionInput represents the input for rejecting a pending occurrence.
type RejectTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// RejectTransactionUseCase discards a pending occurrence.
// The row is soft-deleted, so its occurrence key keeps the scheduler from recreating it.
type RejectTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewRejectTransactionUseCase creates a new RejectTransactionUseCase instance.
func NewRejectTransactionUseCase(transactionRepo adapter.TransactionRepository) *RejectTransactionUseCase {
	return &RejectTransactionUseCase{transactionRepo: transactionRepo}
}

// Execute performs the rejection.
func (uc *RejectTransactionUseCase) Execute(ctx context.Context, input RejectTransactionInput) error {
	if _, err := findPending(ctx, uc.transactionRepo, input.TransactionID, input.UserID); err != nil {
		return err
	}

	if err := uc.transactionRepo.Delete(ctx, input.TransactionID); err != nil {
		return fmt.Errorf("failed to reject transaction: %w", err)
	}
	return nil
}
