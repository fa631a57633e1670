// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(model.TransactionFromEntity(transaction)).Error
}

// CreateOccurrence inserts the occurrence unless its key is already taken.
// Soft-deleted rows count, so a rejected occurrence is not recreated.
func (r *transactionRepository) CreateOccurrence(ctx context.Context, transaction *entity.Transaction) (bool, error) {
	if transaction.OccurrenceKey == nil {
		return true, r.Create(ctx, transaction)
	}

	var count int64
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&model.TransactionModel{}).
		Where("occurrence_key = ?", *transaction.OccurrenceKey).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if err := r.Create(ctx, transaction); err != nil {
		// Lost a race with a concurrent run on the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// applyFilter adds the filter conditions to a transactions query.
func applyFilter(query *gorm.DB, filter adapter.TransactionFilter) *gorm.DB {
	query = query.Where("user_id = ?", filter.UserID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if filter.EndBefore != nil {
		query = query.Where("date < ?", *filter.EndBefore)
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.RecurringDefinitionID != nil {
		query = query.Where("recurring_definition_id = ?", *filter.RecurringDefinitionID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	return query
}

// FindByFilter retrieves transactions based on filter criteria with pagination.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	query := applyFilter(r.db.WithContext(ctx).Model(&model.TransactionModel{}), filter)

	// Get total count
	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	// Calculate pagination
	offset := (pagination.Page - 1) * pagination.Limit
	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	if totalPages == 0 {
		totalPages = 1
	}

	// Fetch transactions with category preloaded
	var transactionModels []model.TransactionModel
	result := query.
		Preload("Category").
		Order("date DESC, created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	return &adapter.TransactionListResult{
		Transactions: model.TransactionsWithCategory(transactionModels),
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   totalPages,
	}, nil
}

// FindAllByFilter retrieves every matching transaction ordered by date ascending.
func (r *transactionRepository) FindAllByFilter(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := applyFilter(r.db.WithContext(ctx).Model(&model.TransactionModel{}), filter).
		Order("date ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	return model.TransactionsToEntities(transactionModels), nil
}

// Update updates an existing transaction in the database.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	transactionModel.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Omit("Category").Save(transactionModel).Error
}

// Delete soft-deletes a transaction from the database.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}
