package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// RecurringDefinitionRepository defines persistence operations for recurring definitions.
type RecurringDefinitionRepository interface {
	Create(ctx context.Context, definition *entity.RecurringDefinition) error

	// FindByID returns domainerror.ErrRecurringDefinitionNotFound when missing.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringDefinition, error)

	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringDefinition, error)

	// FindDue returns every definition, across users, whose next run is at or before the given time.
	FindDue(ctx context.Context, at time.Time) ([]*entity.RecurringDefinition, error)

	Update(ctx context.Context, definition *entity.RecurringDefinition) error

	// UpdateRunDates persists only the last-run and next-run fields.
	UpdateRunDates(ctx context.Context, id uuid.UUID, lastRunAt, nextRunAt time.Time) error

	Delete(ctx context.Context, id uuid.UUID) error
}
