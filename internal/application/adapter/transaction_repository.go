package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// TransactionFilter narrows transaction queries. Nil fields do not filter.
// Trend windows combine StartDate with EndDate, or StartDate with EndBefore.
type TransactionFilter struct {
	UserID      uuid.UUID
	StartDate   *time.Time // inclusive
	EndDate     *time.Time // inclusive
	EndBefore   *time.Time // exclusive, used for previous-window queries
	CategoryIDs []uuid.UUID
	Type        *entity.TransactionType
	Status      *entity.TransactionStatus

	// RecurringDefinitionID narrows the result to the occurrences of one definition.
	RecurringDefinitionID *uuid.UUID
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionListResult is one page of transactions joined with their category.
type TransactionListResult struct {
	Transactions []*entity.TransactionWithCategory
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionRepository persists transactions, including the PENDING_APPROVAL
// occurrences written by the recurring scheduler.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entity.Transaction) error

	// CreateOccurrence writes a materialized occurrence unless its occurrence
	// key is already taken, soft-deleted rows included. It reports whether a
	// row was written.
	CreateOccurrence(ctx context.Context, transaction *entity.Transaction) (bool, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*TransactionListResult, error)

	// FindAllByFilter returns every match ordered by date ascending, unpaginated.
	// Trend aggregation reads whole windows through it.
	FindAllByFilter(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)

	Update(ctx context.Context, transaction *entity.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
}
