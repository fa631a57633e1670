package transaction

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

type memoryTransactions struct {
	adapter.TransactionRepository
	rows    map[uuid.UUID]*entity.Transaction
	deleted map[uuid.UUID]bool
}

func newMemoryTransactions(rows ...*entity.Transaction) *memoryTransactions {
	m := &memoryTransactions{rows: make(map[uuid.UUID]*entity.Transaction), deleted: make(map[uuid.UUID]bool)}
	for _, r := range rows {
		m.rows[r.ID] = r
	}
	return m
}

func (m *memoryTransactions) Create(_ context.Context, t *entity.Transaction) error {
	m.rows[t.ID] = t
	return nil
}

func (m *memoryTransactions) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	t, ok := m.rows[id]
	if !ok || m.deleted[id] {
		return nil, domainerror.ErrTransactionNotFound
	}
	return t, nil
}

func (m *memoryTransactions) Update(_ context.Context, t *entity.Transaction) error {
	m.rows[t.ID] = t
	return nil
}

func (m *memoryTransactions) Delete(_ context.Context, id uuid.UUID) error {
	m.deleted[id] = true
	return nil
}

type memoryCategories struct {
	adapter.CategoryRepository
	rows map[uuid.UUID]*entity.Category
}

func (m *memoryCategories) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	c, ok := m.rows[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return c, nil
}

func pendingOccurrence(userID uuid.UUID) *entity.Transaction {
	def := entity.NewRecurringDefinition(
		userID, "Rent", decimal.NewFromInt(1200), entity.TransactionTypeExpense, nil,
		entity.CadenceMonthly, 1, nil, nil, nil, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
	)
	return entity.NewOccurrence(def, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))
}

func TestCreateTransaction(t *testing.T) {
	userID := uuid.New()
	owned := entity.NewCategory(userID, "Food", "#22C55E", entity.CategoryTypeExpense, nil)
	foreign := entity.NewCategory(uuid.New(), "Food", "#22C55E", entity.CategoryTypeExpense, nil)
	categories := &memoryCategories{rows: map[uuid.UUID]*entity.Category{owned.ID: owned, foreign.ID: foreign}}
	missing := uuid.New()

	tests := []struct {
		name         string
		input        CreateTransactionInput
		expectedCode domainerror.TransactionErrorCode
	}{
		{
			name: "approved with category",
			input: CreateTransactionInput{
				UserID: userID, Date: time.Now(), Description: "Groceries",
				Amount: decimal.NewFromInt(80), Type: entity.TransactionTypeExpense, CategoryID: &owned.ID,
			},
		},
		{
			name: "invalid type",
			input: CreateTransactionInput{
				UserID: userID, Date: time.Now(), Description: "Groceries",
				Amount: decimal.NewFromInt(80), Type: "transfer",
			},
			expectedCode: domainerror.ErrCodeInvalidTransactionType,
		},
		{
			name: "zero amount",
			input: CreateTransactionInput{
				UserID: userID, Date: time.Now(), Description: "Groceries",
				Amount: decimal.Zero, Type: entity.TransactionTypeExpense,
			},
			expectedCode: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name: "unknown category",
			input: CreateTransactionInput{
				UserID: userID, Date: time.Now(), Description: "Groceries",
				Amount: decimal.NewFromInt(80), Type: entity.TransactionTypeExpense, CategoryID: &missing,
			},
			expectedCode: domainerror.ErrCodeTxnCategoryNotFound,
		},
		{
			name: "category of another user",
			input: CreateTransactionInput{
				UserID: userID, Date: time.Now(), Description: "Groceries",
				Amount: decimal.NewFromInt(80), Type: entity.TransactionTypeExpense, CategoryID: &foreign.ID,
			},
			expectedCode: domainerror.ErrCodeTxnCategoryNotOwned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewCreateTransactionUseCase(newMemoryTransactions(), categories)
			output, err := uc.Execute(context.Background(), tt.input)

			if tt.expectedCode != "" {
				var txnErr *domainerror.TransactionError
				if !errors.As(err, &txnErr) || txnErr.Code != tt.expectedCode {
					t.Fatalf("expected code %s, got %v", tt.expectedCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.Transaction.Status != entity.TransactionStatusApproved {
				t.Errorf("status = %s, want APPROVED", output.Transaction.Status)
			}
			if output.Transaction.CategoryName != "Food" {
				t.Errorf("expected category in output, got %q", output.Transaction.CategoryName)
			}
		})
	}
}

func TestApproveTransaction(t *testing.T) {
	userID := uuid.New()
	occurrence := pendingOccurrence(userID)
	repo := newMemoryTransactions(occurrence)
	uc := NewApproveTransactionUseCase(repo)

	if _, err := uc.Execute(context.Background(), ApproveTransactionInput{TransactionID: occurrence.ID, UserID: uuid.New()}); !errors.Is(err, domainerror.ErrNotAuthorizedToModifyTransaction) {
		t.Errorf("expected not authorized, got %v", err)
	}

	output, err := uc.Execute(context.Background(), ApproveTransactionInput{TransactionID: occurrence.ID, UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Status != entity.TransactionStatusApproved {
		t.Errorf("status = %s, want APPROVED", output.Status)
	}

	_, err = uc.Execute(context.Background(), ApproveTransactionInput{TransactionID: occurrence.ID, UserID: userID})
	if !errors.Is(err, domainerror.ErrTransactionNotPending) {
		t.Errorf("expected not pending on second approval, got %v", err)
	}
}

func TestRejectTransaction(t *testing.T) {
	userID := uuid.New()
	occurrence := pendingOccurrence(userID)
	approved := entity.NewTransaction(userID, time.Now(), "Coffee", decimal.NewFromInt(5), entity.TransactionTypeExpense, nil, "")
	repo := newMemoryTransactions(occurrence, approved)
	uc := NewRejectTransactionUseCase(repo)

	if err := uc.Execute(context.Background(), RejectTransactionInput{TransactionID: approved.ID, UserID: userID}); !errors.Is(err, domainerror.ErrTransactionNotPending) {
		t.Errorf("expected not pending, got %v", err)
	}
	if err := uc.Execute(context.Background(), RejectTransactionInput{TransactionID: occurrence.ID, UserID: userID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.deleted[occurrence.ID] {
		t.Errorf("expected the occurrence to be deleted")
	}
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	uc := NewDeleteTransactionUseCase(newMemoryTransactions())
	err := uc.Execute(context.Background(), DeleteTransactionInput{TransactionID: uuid.New(), UserID: uuid.New()})

	var txnErr *domainerror.TransactionError
	if !errors.As(err, &txnErr) || txnErr.Code != domainerror.ErrCodeTransactionNotFound {
		t.Errorf("expected not found code, got %v", err)
	}
}
