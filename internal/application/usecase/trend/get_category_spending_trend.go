package trend

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// GetCategorySpendingTrendInput represents the input for per-category spending trends.
// When Window.CategoryID is set, only that top-level category is returned.
type GetCategorySpendingTrendInput struct {
	UserID uuid.UUID
	Window TrendWindow
}

// GetCategorySpendingTrendUseCase rolls transactions up to their top-level category
// and computes one trend per category.
type GetCategorySpendingTrendUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	clock           adapter.Clock
}

// NewGetCategorySpendingTrendUseCase creates a new GetCategorySpendingTrendUseCase instance.
func NewGetCategorySpendingTrendUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *GetCategorySpendingTrendUseCase {
	return &GetCategorySpendingTrendUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		clock:           clock,
	}
}

// categoryAccumulator collects the current-window transactions of one top-level category.
type categoryAccumulator struct {
	category     *entity.Category
	total        decimal.Decimal
	children     map[uuid.UUID]bool
	transactions []*entity.Transaction
}

// Execute retrieves the per-category trends, sorted by total amount descending.
// Categories without transactions in the current window are omitted.
func (uc *GetCategorySpendingTrendUseCase) Execute(
	ctx context.Context,
	input GetCategorySpendingTrendInput,
) ([]*entity.CategorySpendingTrend, error) {
	window, err := input.Window.resolve(uc.clock.Now().UTC())
	if err != nil {
		return nil, err
	}

	// 1. Fetch both windows and the hierarchy concurrently
	var (
		current   []*entity.Transaction
		previous  []*entity.Transaction
		topLevel  []*entity.Category
		parentMap CategoryParentMap
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = uc.transactionRepo.FindAllByFilter(gctx, window.currentFilter(input.UserID, nil))
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = uc.transactionRepo.FindAllByFilter(gctx, window.previousFilter(input.UserID, nil))
		return err
	})
	g.Go(func() error {
		var err error
		topLevel, err = uc.categoryRepo.FindTopLevelByUser(gctx, input.UserID)
		return err
	})
	g.Go(func() error {
		categories, err := uc.categoryRepo.FindByUser(gctx, input.UserID)
		if err != nil {
			return err
		}
		parentMap = BuildParentMap(categories)
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("Failed to fetch data for category spending trend",
			"user_id", input.UserID,
			"start_date", window.Start,
			"end_date", window.End,
			"error", err,
		)
		return nil, err
	}

	// 2. One accumulator per top-level category
	accumulators := make(map[uuid.UUID]*categoryAccumulator, len(topLevel))
	for _, c := range topLevel {
		accumulators[c.ID] = &categoryAccumulator{
			category: c,
			total:    decimal.Zero,
			children: make(map[uuid.UUID]bool),
		}
	}

	// 3. Roll current transactions up to their top-level ancestor
	for _, txn := range current {
		if txn.CategoryID == nil {
			slog.Warn("Skipping uncategorized transaction in category trend", "transaction_id", txn.ID)
			continue
		}
		rootID, ok := parentMap[*txn.CategoryID]
		if !ok {
			slog.Warn("Skipping transaction with unresolvable category",
				"transaction_id", txn.ID,
				"category_id", *txn.CategoryID,
			)
			continue
		}
		acc, ok := accumulators[rootID]
		if !ok {
			slog.Warn("Skipping transaction whose top-level category is unknown",
				"transaction_id", txn.ID,
				"category_id", *txn.CategoryID,
				"top_level_id", rootID,
			)
			continue
		}
		acc.total = acc.total.Add(txn.Amount)
		acc.children[*txn.CategoryID] = true
		acc.transactions = append(acc.transactions, txn)
	}

	// 4. Build a trend for every category with activity
	results := make([]*entity.CategorySpendingTrend, 0, len(accumulators))
	for _, acc := range accumulators {
		if len(acc.children) == 0 {
			continue
		}
		if window.CategoryID != nil && acc.category.ID != *window.CategoryID {
			continue
		}

		previousTotal := decimal.Zero
		for _, txn := range previous {
			if txn.CategoryID != nil && acc.children[*txn.CategoryID] {
				previousTotal = previousTotal.Add(txn.Amount)
			}
		}

		results = append(results, &entity.CategorySpendingTrend{
			SpendingTrend: buildTrend(window, acc.transactions, previousTotal),
			CategoryID:    acc.category.ID,
			CategoryName:  acc.category.Name,
			CategoryColor: acc.category.Color,
		})
	}

	// 5. Highest spend first
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].TotalAmount.Equal(results[j].TotalAmount) {
			return results[i].CategoryName < results[j].CategoryName
		}
		return results[i].TotalAmount.GreaterThan(results[j].TotalAmount)
	})

	return results, nil
}
