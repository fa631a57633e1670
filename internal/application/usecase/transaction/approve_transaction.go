package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
)

// ApproveTransactionInput represents the input for approving a pending occurrence.
type ApproveTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// ApproveTransactionUseCase confirms a pending occurrence so it counts toward trends.
type ApproveTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewApproveTransactionUseCase creates a new ApproveTransactionUseCase instance.
func NewApproveTransactionUseCase(transactionRepo adapter.TransactionRepository) *ApproveTransactionUseCase {
	return &ApproveTransactionUseCase{transactionRepo: transactionRepo}
}

// Execute moves the transaction from PENDING_APPROVAL to APPROVED.
func (uc *ApproveTransactionUseCase) Execute(ctx context.Context, input ApproveTransactionInput) (*TransactionOutput, error) {
	transaction, err := findPending(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}

	transaction.Approve()
	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to approve transaction: %w", err)
	}

	return toTransactionOutput(transaction, nil), nil
}
