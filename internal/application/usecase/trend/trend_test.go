package trend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// memoryTransactions answers FindAllByFilter with the same semantics as the SQL repository.
type memoryTransactions struct {
	adapter.TransactionRepository
	transactions []*entity.Transaction
	err          error
}

func (m *memoryTransactions) FindAllByFilter(_ context.Context, f adapter.TransactionFilter) ([]*entity.Transaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []*entity.Transaction
	for _, t := range m.transactions {
		if t.UserID != f.UserID {
			continue
		}
		if f.StartDate != nil && t.Date.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && t.Date.After(*f.EndDate) {
			continue
		}
		if f.EndBefore != nil && !t.Date.Before(*f.EndBefore) {
			continue
		}
		if f.Type != nil && t.Type != *f.Type {
			continue
		}
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		if len(f.CategoryIDs) > 0 && !containsID(f.CategoryIDs, t.CategoryID) {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func containsID(ids []uuid.UUID, id *uuid.UUID) bool {
	if id == nil {
		return false
	}
	for _, candidate := range ids {
		if candidate == *id {
			return true
		}
	}
	return false
}

type memoryCategories struct {
	adapter.CategoryRepository
	categories []*entity.Category
	err        error
}

func (m *memoryCategories) FindByUser(context.Context, uuid.UUID) ([]*entity.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

func (m *memoryCategories) FindTopLevelByUser(context.Context, uuid.UUID) ([]*entity.Category, error) {
	var result []*entity.Category
	for _, c := range m.categories {
		if c.IsTopLevel() {
			result = append(result, c)
		}
	}
	return result, nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func expense(userID uuid.UUID, on time.Time, amount int64, categoryID *uuid.UUID) *entity.Transaction {
	return entity.NewTransaction(userID, on, "expense", decimal.NewFromInt(amount), entity.TransactionTypeExpense, categoryID, "")
}

func TestBucketKey(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		period   entity.TrendPeriod
		expected string
	}{
		{name: "daily", date: date(2024, time.March, 15), period: entity.TrendPeriodDaily, expected: "2024-03-15"},
		{name: "monthly", date: date(2024, time.March, 15), period: entity.TrendPeriodMonthly, expected: "2024-03"},
		{name: "yearly", date: date(2024, time.March, 15), period: entity.TrendPeriodYearly, expected: "2024"},
		{name: "weekly is unpadded", date: date(2024, time.February, 28), period: entity.TrendPeriodWeekly, expected: "2024-9"},
		{name: "weekly uses ISO year", date: date(2024, time.December, 30), period: entity.TrendPeriodWeekly, expected: "2025-1"},
		{name: "unknown falls back to daily", date: date(2024, time.March, 15), period: "quarterly", expected: "2024-03-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BucketKey(tt.date, tt.period); got != tt.expected {
				t.Errorf("BucketKey() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		previous  int64
		change    string
		direction entity.TrendDirection
	}{
		{name: "no previous spend", total: 500, previous: 0, change: "0", direction: entity.TrendStable},
		{name: "exactly +5 is stable", total: 105, previous: 100, change: "5", direction: entity.TrendStable},
		{name: "exactly -5 is stable", total: 95, previous: 100, change: "-5", direction: entity.TrendStable},
		{name: "above +5 is up", total: 106, previous: 100, change: "6", direction: entity.TrendUp},
		{name: "below -5 is down", total: 50, previous: 100, change: "-50", direction: entity.TrendDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change, direction := compare(decimal.NewFromInt(tt.total), decimal.NewFromInt(tt.previous))
			if !change.Equal(decimal.RequireFromString(tt.change)) {
				t.Errorf("change = %s, want %s", change, tt.change)
			}
			if direction != tt.direction {
				t.Errorf("direction = %s, want %s", direction, tt.direction)
			}
		})
	}
}

func TestGetSpendingTrend_DefaultWindow(t *testing.T) {
	userID := uuid.New()
	pending := expense(userID, date(2024, time.April, 1), 999, nil)
	pending.Status = entity.TransactionStatusPendingApproval
	income := entity.NewTransaction(userID, date(2024, time.April, 2), "salary", decimal.NewFromInt(5000), entity.TransactionTypeIncome, nil, "")

	repo := &memoryTransactions{transactions: []*entity.Transaction{
		expense(userID, date(2024, time.March, 15), 100, nil),
		expense(userID, date(2024, time.May, 20), 50, nil),
		expense(userID, date(2023, time.October, 15), 100, nil),
		expense(uuid.New(), date(2024, time.March, 15), 70, nil),
		pending,
		income,
	}}

	uc := NewGetSpendingTrendUseCase(repo, &memoryCategories{}, fixedClock{now: date(2024, time.July, 1)})
	trend, err := uc.Execute(context.Background(), GetSpendingTrendInput{
		UserID: userID,
		Window: TrendWindow{Period: entity.TrendPeriodMonthly},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !trend.StartDate.Equal(date(2024, time.January, 1)) {
		t.Errorf("start = %s, want 2024-01-01", trend.StartDate)
	}
	if !trend.TotalAmount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("total = %s, want 150", trend.TotalAmount)
	}
	if !trend.PreviousTotalAmount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("previous = %s, want 100", trend.PreviousTotalAmount)
	}
	if !trend.PercentageChange.Equal(decimal.NewFromInt(50)) {
		t.Errorf("change = %s, want 50", trend.PercentageChange)
	}
	if trend.Trend != entity.TrendUp {
		t.Errorf("trend = %s, want up", trend.Trend)
	}

	if len(trend.Buckets) != 2 || trend.Buckets[0].Key != "2024-03" || trend.Buckets[1].Key != "2024-05" {
		t.Fatalf("unexpected buckets: %+v", trend.Buckets)
	}
}

func TestGetSpendingTrend_PreviousWindowExcludesStart(t *testing.T) {
	userID := uuid.New()
	start := date(2024, time.February, 1)
	end := date(2024, time.February, 11)

	repo := &memoryTransactions{transactions: []*entity.Transaction{
		expense(userID, start, 40, nil),                          // current window only
		expense(userID, date(2024, time.January, 22), 10, nil),   // previous window start, inclusive
		expense(userID, date(2024, time.January, 21), 1000, nil), // before the previous window
	}}

	uc := NewGetSpendingTrendUseCase(repo, &memoryCategories{}, fixedClock{now: date(2024, time.July, 1)})
	trend, err := uc.Execute(context.Background(), GetSpendingTrendInput{
		UserID: userID,
		Window: TrendWindow{StartDate: &start, EndDate: &end, Period: entity.TrendPeriodDaily},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !trend.TotalAmount.Equal(decimal.NewFromInt(40)) || !trend.PreviousTotalAmount.Equal(decimal.NewFromInt(10)) {
		t.Errorf("total = %s previous = %s, want 40 and 10", trend.TotalAmount, trend.PreviousTotalAmount)
	}
}

func TestGetSpendingTrend_Errors(t *testing.T) {
	userID := uuid.New()
	start := date(2024, time.March, 1)
	end := date(2024, time.February, 1)

	uc := NewGetSpendingTrendUseCase(&memoryTransactions{}, &memoryCategories{}, fixedClock{now: date(2024, time.July, 1)})
	_, err := uc.Execute(context.Background(), GetSpendingTrendInput{
		UserID: userID,
		Window: TrendWindow{StartDate: &start, EndDate: &end},
	})
	if !errors.Is(err, domainerror.ErrInvalidDateRange) {
		t.Errorf("expected invalid date range, got %v", err)
	}

	storeErr := errors.New("query timeout")
	uc = NewGetSpendingTrendUseCase(&memoryTransactions{err: storeErr}, &memoryCategories{}, fixedClock{now: date(2024, time.July, 1)})
	_, err = uc.Execute(context.Background(), GetSpendingTrendInput{UserID: userID})
	if err != storeErr {
		t.Errorf("expected store error unchanged, got %v", err)
	}
}

func TestBuildParentMap(t *testing.T) {
	userID := uuid.New()
	root := entity.NewCategory(userID, "Home", "#111111", entity.CategoryTypeExpense, nil)
	middle := entity.NewCategory(userID, "Utilities", "#222222", entity.CategoryTypeExpense, &root.ID)
	leaf := entity.NewCategory(userID, "Electricity", "#333333", entity.CategoryTypeExpense, &middle.ID)

	missing := uuid.New()
	orphan := entity.NewCategory(userID, "Orphan", "#444444", entity.CategoryTypeExpense, &missing)

	loopA := entity.NewCategory(userID, "A", "#555555", entity.CategoryTypeExpense, nil)
	loopB := entity.NewCategory(userID, "B", "#666666", entity.CategoryTypeExpense, &loopA.ID)
	loopA.ParentID = &loopB.ID

	parents := BuildParentMap([]*entity.Category{root, middle, leaf, orphan, loopA, loopB})

	if parents[leaf.ID] != root.ID || parents[middle.ID] != root.ID || parents[root.ID] != root.ID {
		t.Errorf("expected the chain to resolve to the root, got %v", parents)
	}
	if _, ok := parents[orphan.ID]; ok {
		t.Errorf("orphan category must not resolve")
	}
	if parents[loopA.ID] != loopA.ID || parents[loopB.ID] != loopB.ID {
		t.Errorf("cycle members must map to themselves, got %v %v", parents[loopA.ID], parents[loopB.ID])
	}
}

func TestGetCategorySpendingTrend(t *testing.T) {
	userID := uuid.New()
	home := entity.NewCategory(userID, "Home", "#111111", entity.CategoryTypeExpense, nil)
	utilities := entity.NewCategory(userID, "Utilities", "#222222", entity.CategoryTypeExpense, &home.ID)
	electricity := entity.NewCategory(userID, "Electricity", "#333333", entity.CategoryTypeExpense, &utilities.ID)
	food := entity.NewCategory(userID, "Food", "#444444", entity.CategoryTypeExpense, nil)
	travel := entity.NewCategory(userID, "Travel", "#555555", entity.CategoryTypeExpense, nil)

	transactions := &memoryTransactions{transactions: []*entity.Transaction{
		expense(userID, date(2024, time.March, 3), 120, &electricity.ID),
		expense(userID, date(2024, time.March, 9), 80, &home.ID),
		expense(userID, date(2024, time.April, 9), 300, &food.ID),
		expense(userID, date(2024, time.April, 10), 25, nil),
		expense(userID, date(2023, time.November, 1), 100, &electricity.ID),
		expense(userID, date(2023, time.November, 2), 500, &travel.ID),
	}}
	categories := &memoryCategories{categories: []*entity.Category{home, utilities, electricity, food, travel}}

	uc := NewGetCategorySpendingTrendUseCase(transactions, categories, fixedClock{now: date(2024, time.July, 1)})
	results, err := uc.Execute(context.Background(), GetCategorySpendingTrendInput{
		UserID: userID,
		Window: TrendWindow{Period: entity.TrendPeriodMonthly},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 categories with activity, got %d", len(results))
	}
	if results[0].CategoryID != food.ID || results[1].CategoryID != home.ID {
		t.Errorf("expected food then home, got %s then %s", results[0].CategoryName, results[1].CategoryName)
	}

	homeTrend := results[1]
	if !homeTrend.TotalAmount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("home total = %s, want 200", homeTrend.TotalAmount)
	}
	// Only electricity contributed this window, so its previous spend is the comparison base.
	if !homeTrend.PreviousTotalAmount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("home previous = %s, want 100", homeTrend.PreviousTotalAmount)
	}
	if homeTrend.Trend != entity.TrendUp || !homeTrend.PercentageChange.Equal(decimal.NewFromInt(100)) {
		t.Errorf("home trend = %s %s, want up 100", homeTrend.Trend, homeTrend.PercentageChange)
	}
	if len(homeTrend.Buckets) != 1 || homeTrend.Buckets[0].Key != "2024-03" {
		t.Errorf("unexpected home buckets: %+v", homeTrend.Buckets)
	}

	foodTrend := results[0]
	if foodTrend.Trend != entity.TrendStable || !foodTrend.PercentageChange.IsZero() {
		t.Errorf("food without previous spend must be stable, got %s %s", foodTrend.Trend, foodTrend.PercentageChange)
	}
}

func TestGetCategorySpendingTrend_CategoryFilter(t *testing.T) {
	userID := uuid.New()
	home := entity.NewCategory(userID, "Home", "#111111", entity.CategoryTypeExpense, nil)
	food := entity.NewCategory(userID, "Food", "#444444", entity.CategoryTypeExpense, nil)

	transactions := &memoryTransactions{transactions: []*entity.Transaction{
		expense(userID, date(2024, time.March, 3), 120, &home.ID),
		expense(userID, date(2024, time.April, 9), 300, &food.ID),
	}}
	categories := &memoryCategories{categories: []*entity.Category{home, food}}

	uc := NewGetCategorySpendingTrendUseCase(transactions, categories, fixedClock{now: date(2024, time.July, 1)})
	results, err := uc.Execute(context.Background(), GetCategorySpendingTrendInput{
		UserID: userID,
		Window: TrendWindow{Period: entity.TrendPeriodMonthly, CategoryID: &home.ID},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].CategoryID != home.ID {
		t.Errorf("expected only home, got %+v", results)
	}
}

func TestGetSpendingTrend_CategoryIncludesSubcategories(t *testing.T) {
	userID := uuid.New()
	home := entity.NewCategory(userID, "Home", "#111111", entity.CategoryTypeExpense, nil)
	rent := entity.NewCategory(userID, "Rent", "#222222", entity.CategoryTypeExpense, &home.ID)
	deposit := entity.NewCategory(userID, "Deposit", "#333333", entity.CategoryTypeExpense, &rent.ID)
	food := entity.NewCategory(userID, "Food", "#444444", entity.CategoryTypeExpense, nil)

	transactions := &memoryTransactions{transactions: []*entity.Transaction{
		expense(userID, date(2024, time.March, 3), 100, &home.ID),
		expense(userID, date(2024, time.March, 5), 900, &rent.ID),
		expense(userID, date(2024, time.April, 1), 50, &deposit.ID),
		expense(userID, date(2024, time.April, 9), 300, &food.ID),
		expense(userID, date(2023, time.October, 15), 200, &rent.ID), // previous window
	}}
	categories := &memoryCategories{categories: []*entity.Category{home, rent, deposit, food}}
	uc := NewGetSpendingTrendUseCase(transactions, categories, fixedClock{now: date(2024, time.July, 1)})

	tests := []struct {
		name     string
		category uuid.UUID
		total    int64
		previous int64
	}{
		{name: "top-level category", category: home.ID, total: 1050, previous: 200},
		{name: "nested category", category: rent.ID, total: 950, previous: 200},
		{name: "leaf category", category: deposit.ID, total: 50, previous: 0},
		{name: "unrelated category", category: food.ID, total: 300, previous: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend, err := uc.Execute(context.Background(), GetSpendingTrendInput{
				UserID: userID,
				Window: TrendWindow{Period: entity.TrendPeriodMonthly, CategoryID: &tt.category},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !trend.TotalAmount.Equal(decimal.NewFromInt(tt.total)) {
				t.Errorf("total = %s, want %d", trend.TotalAmount, tt.total)
			}
			if !trend.PreviousTotalAmount.Equal(decimal.NewFromInt(tt.previous)) {
				t.Errorf("previous = %s, want %d", trend.PreviousTotalAmount, tt.previous)
			}
		})
	}
}

func TestGetSpendingTrend_CategoryFetchError(t *testing.T) {
	categoryID := uuid.New()
	storeErr := errors.New("connection reset")
	uc := NewGetSpendingTrendUseCase(&memoryTransactions{}, &memoryCategories{err: storeErr}, fixedClock{now: date(2024, time.July, 1)})

	_, err := uc.Execute(context.Background(), GetSpendingTrendInput{
		UserID: uuid.New(),
		Window: TrendWindow{CategoryID: &categoryID},
	})
	if err != storeErr {
		t.Errorf("expected store error unchanged, got %v", err)
	}
}

func TestGetSpendingTrend_DefaultStartClampsToMonthEnd(t *testing.T) {
	userID := uuid.New()
	transactions := &memoryTransactions{transactions: []*entity.Transaction{
		expense(userID, date(2024, time.February, 29), 100, nil),
	}}
	uc := NewGetSpendingTrendUseCase(transactions, &memoryCategories{}, fixedClock{now: date(2024, time.August, 31)})

	trend, err := uc.Execute(context.Background(), GetSpendingTrendInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !trend.StartDate.Equal(date(2024, time.February, 29)) {
		t.Errorf("start = %s, want 2024-02-29", trend.StartDate)
	}
	if !trend.TotalAmount.Equal(decimal.NewFromInt(100)) || !trend.PreviousTotalAmount.IsZero() {
		t.Errorf("total = %s previous = %s, want 100 and 0", trend.TotalAmount, trend.PreviousTotalAmount)
	}
}

func TestSubtree(t *testing.T) {
	userID := uuid.New()
	root := entity.NewCategory(userID, "Home", "#111111", entity.CategoryTypeExpense, nil)
	child := entity.NewCategory(userID, "Rent", "#222222", entity.CategoryTypeExpense, &root.ID)
	grandchild := entity.NewCategory(userID, "Deposit", "#333333", entity.CategoryTypeExpense, &child.ID)
	other := entity.NewCategory(userID, "Food", "#444444", entity.CategoryTypeExpense, nil)

	loopA := entity.NewCategory(userID, "A", "#555555", entity.CategoryTypeExpense, nil)
	loopB := entity.NewCategory(userID, "B", "#666666", entity.CategoryTypeExpense, &loopA.ID)
	loopA.ParentID = &loopB.ID

	categories := []*entity.Category{root, child, grandchild, other, loopA, loopB}

	ids := Subtree(categories, root.ID)
	if len(ids) != 3 || ids[0] != root.ID || ids[1] != child.ID || ids[2] != grandchild.ID {
		t.Errorf("unexpected subtree: %v", ids)
	}
	if ids := Subtree(categories, loopA.ID); len(ids) != 2 {
		t.Errorf("cycle must stop after both members, got %v", ids)
	}
	if ids := Subtree(categories, uuid.New()); len(ids) != 1 {
		t.Errorf("unknown id must return only itself, got %v", ids)
	}
}
