// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// TransactionModel is the transactions table. Rows written by the recurring
// scheduler carry RecurringDefinitionID and a unique OccurrenceKey; rejected
// occurrences stay behind as soft-deleted rows so the key is never reused.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_user_date,priority:1"`
	Date        time.Time       `gorm:"type:date;not null;index:idx_transactions_user_date,priority:2"`
	Description string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type        string          `gorm:"type:varchar(10);not null"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Notes       string          `gorm:"type:text"`
	Status      string          `gorm:"type:varchar(20);not null;default:'APPROVED';index"`

	RecurringDefinitionID *uuid.UUID `gorm:"type:uuid;index"`
	OccurrenceKey         *string    `gorm:"type:varchar(64);uniqueIndex"`

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Category is only populated by queries that Preload it.
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts the row into a domain Transaction.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:                    m.ID,
		UserID:                m.UserID,
		Date:                  m.Date,
		Description:           m.Description,
		Amount:                m.Amount,
		Type:                  entity.TransactionType(m.Type),
		CategoryID:            m.CategoryID,
		Notes:                 m.Notes,
		Status:                entity.TransactionStatus(m.Status),
		RecurringDefinitionID: m.RecurringDefinitionID,
		OccurrenceKey:         m.OccurrenceKey,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

// TransactionsToEntities converts a result set, preserving order.
func TransactionsToEntities(rows []TransactionModel) []*entity.Transaction {
	transactions := make([]*entity.Transaction, len(rows))
	for i := range rows {
		transactions[i] = rows[i].ToEntity()
	}
	return transactions
}

// TransactionsWithCategory converts rows loaded with Preload("Category").
func TransactionsWithCategory(rows []TransactionModel) []*entity.TransactionWithCategory {
	transactions := make([]*entity.TransactionWithCategory, len(rows))
	for i := range rows {
		transactions[i] = &entity.TransactionWithCategory{Transaction: rows[i].ToEntity()}
		if rows[i].Category != nil {
			transactions[i].Category = rows[i].Category.ToEntity()
		}
	}
	return transactions
}

// TransactionFromEntity maps a domain Transaction onto a row.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:                    transaction.ID,
		UserID:                transaction.UserID,
		Date:                  transaction.Date,
		Description:           transaction.Description,
		Amount:                transaction.Amount,
		Type:                  string(transaction.Type),
		CategoryID:            transaction.CategoryID,
		Notes:                 transaction.Notes,
		Status:                string(transaction.Status),
		RecurringDefinitionID: transaction.RecurringDefinitionID,
		OccurrenceKey:         transaction.OccurrenceKey,
		CreatedAt:             transaction.CreatedAt,
		UpdatedAt:             transaction.UpdatedAt,
	}
}
