package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// RecurringDefinitionModel represents the recurring_definitions table in the database.
type RecurringDefinitionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type        string          `gorm:"type:varchar(10);not null"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Cadence     string          `gorm:"type:varchar(10);not null"`
	Interval    int             `gorm:"column:interval_count;not null;default:1"`
	DayOfWeek   *int            `gorm:"type:smallint"`
	DayOfMonth  *int            `gorm:"type:smallint"`
	MonthOfYear *int            `gorm:"type:smallint"`
	LastRunAt   *time.Time      `gorm:"type:timestamp"`
	NextRunAt   time.Time       `gorm:"type:timestamp;not null;index"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the RecurringDefinitionModel.
func (RecurringDefinitionModel) TableName() string {
	return "recurring_definitions"
}

// ToEntity converts a RecurringDefinitionModel to a domain RecurringDefinition entity.
func (m *RecurringDefinitionModel) ToEntity() *entity.RecurringDefinition {
	return &entity.RecurringDefinition{
		ID:          m.ID,
		UserID:      m.UserID,
		Description: m.Description,
		Amount:      m.Amount,
		Type:        entity.TransactionType(m.Type),
		CategoryID:  m.CategoryID,
		Cadence:     entity.CadenceKind(m.Cadence),
		Interval:    m.Interval,
		DayOfWeek:   m.DayOfWeek,
		DayOfMonth:  m.DayOfMonth,
		MonthOfYear: m.MonthOfYear,
		LastRunAt:   m.LastRunAt,
		NextRunAt:   m.NextRunAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// RecurringDefinitionFromEntity creates a RecurringDefinitionModel from a domain entity.
func RecurringDefinitionFromEntity(d *entity.RecurringDefinition) *RecurringDefinitionModel {
	return &RecurringDefinitionModel{
		ID:          d.ID,
		UserID:      d.UserID,
		Description: d.Description,
		Amount:      d.Amount,
		Type:        string(d.Type),
		CategoryID:  d.CategoryID,
		Cadence:     string(d.Cadence),
		Interval:    d.Interval,
		DayOfWeek:   d.DayOfWeek,
		DayOfMonth:  d.DayOfMonth,
		MonthOfYear: d.MonthOfYear,
		LastRunAt:   d.LastRunAt,
		NextRunAt:   d.NextRunAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
