package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
	// MaxNotesLength is the maximum allowed length for transaction notes.
	MaxNotesLength = 1000
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	CategoryID  *uuid.UUID
	Notes       string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute performs the transaction creation. Manually entered transactions are approved immediately.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	// Validate description length
	if input.Description == "" || len(input.Description) > MaxDescriptionLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must be between 1 and %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	// Validate notes length
	if len(input.Notes) > MaxNotesLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrNotesTooLong,
		)
	}

	if input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	if input.Amount.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must not be zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	// Validate transaction type
	if !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	// Validate category ownership if provided
	var category *entity.Category
	if input.CategoryID != nil {
		cat, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return nil, domainerror.NewTransactionError(
					domainerror.ErrCodeTxnCategoryNotFound,
					"category not found",
					domainerror.ErrCategoryNotFoundForTransaction,
				)
			}
			return nil, fmt.Errorf("failed to find category: %w", err)
		}

		if !cat.OwnedBy(input.UserID) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotOwned,
				"category does not belong to user",
				domainerror.ErrCategoryNotOwnedByUser,
			)
		}

		category = cat
	}

	transaction := entity.NewTransaction(
		input.UserID,
		input.Date,
		input.Description,
		input.Amount,
		input.Type,
		input.CategoryID,
		input.Notes,
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &CreateTransactionOutput{
		Transaction: toTransactionOutput(transaction, category),
	}, nil
}
