// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the transaction type is a known value.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// TransactionStatus represents the approval state of a transaction.
// Only approved transactions count toward summaries and trends.
type TransactionStatus string

const (
	TransactionStatusApproved        TransactionStatus = "APPROVED"
	TransactionStatusPendingApproval TransactionStatus = "PENDING_APPROVAL"
)

// Transaction represents a financial transaction in the Finance Tracker system.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	CategoryID  *uuid.UUID // Optional, can be uncategorized
	Notes       string
	Status      TransactionStatus

	// Set only on occurrences materialized from a recurring definition.
	RecurringDefinitionID *uuid.UUID
	OccurrenceKey         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTransaction creates a new approved Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
	categoryID *uuid.UUID,
	notes string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        transactionType,
		CategoryID:  categoryID,
		Notes:       notes,
		Status:      TransactionStatusApproved,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewOccurrence creates a pending transaction materialized from a recurring definition.
// The occurrence is dated at the evaluation date and keyed by the definition's scheduled due date.
func NewOccurrence(definition *RecurringDefinition, date time.Time) *Transaction {
	now := time.Now().UTC()
	definitionID := definition.ID
	key := definition.OccurrenceKey()

	return &Transaction{
		ID:                    uuid.New(),
		UserID:                definition.UserID,
		Date:                  date,
		Description:           definition.Description,
		Amount:                definition.Amount,
		Type:                  definition.Type,
		CategoryID:            definition.CategoryID,
		Status:                TransactionStatusPendingApproval,
		RecurringDefinitionID: &definitionID,
		OccurrenceKey:         &key,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// IsPending reports whether the transaction still awaits user confirmation.
func (t *Transaction) IsPending() bool {
	return t.Status == TransactionStatusPendingApproval
}

// Approve moves a pending transaction to the approved state.
func (t *Transaction) Approve() {
	t.Status = TransactionStatusApproved
	t.UpdatedAt = time.Now().UTC()
}

// TransactionWithCategory represents a transaction with its associated category.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
}
