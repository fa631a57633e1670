package trend

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// GetSpendingTrendInput represents the input for a spending trend.
// With Window.CategoryID set the trend covers that category and all of its subcategories.
type GetSpendingTrendInput struct {
	UserID uuid.UUID
	Window TrendWindow
}

// GetSpendingTrendUseCase computes a bucketed spending trend and compares it with the previous window.
type GetSpendingTrendUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	clock           adapter.Clock
}

// NewGetSpendingTrendUseCase creates a new GetSpendingTrendUseCase instance.
func NewGetSpendingTrendUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *GetSpendingTrendUseCase {
	return &GetSpendingTrendUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		clock:           clock,
	}
}

// Execute retrieves the trend. Store errors are logged and returned unmodified.
func (uc *GetSpendingTrendUseCase) Execute(ctx context.Context, input GetSpendingTrendInput) (*entity.SpendingTrend, error) {
	// 1. Apply window defaults
	window, err := input.Window.resolve(uc.clock.Now().UTC())
	if err != nil {
		return nil, err
	}

	// 2. Expand the category filter to its subcategories
	var categoryIDs []uuid.UUID
	if window.CategoryID != nil {
		categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID)
		if err != nil {
			slog.Error("Failed to fetch categories for spending trend",
				"user_id", input.UserID,
				"category_id", *window.CategoryID,
				"error", err,
			)
			return nil, err
		}
		categoryIDs = Subtree(categories, *window.CategoryID)
	}

	// 3. Current window
	current, err := uc.transactionRepo.FindAllByFilter(ctx, window.currentFilter(input.UserID, categoryIDs))
	if err != nil {
		slog.Error("Failed to fetch transactions for spending trend",
			"user_id", input.UserID,
			"start_date", window.Start,
			"end_date", window.End,
			"error", err,
		)
		return nil, err
	}

	// 4. Previous window, totals only
	previous, err := uc.transactionRepo.FindAllByFilter(ctx, window.previousFilter(input.UserID, categoryIDs))
	if err != nil {
		slog.Error("Failed to fetch previous window for spending trend",
			"user_id", input.UserID,
			"start_date", window.PreviousStart,
			"end_before", window.Start,
			"error", err,
		)
		return nil, err
	}

	trend := buildTrend(window, current, sumAmounts(previous))
	return &trend, nil
}
