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

// recurringDefinitionRepository implements the adapter.RecurringDefinitionRepository interface.
type recurringDefinitionRepository struct {
	db *gorm.DB
}

// NewRecurringDefinitionRepository creates a new recurring definition repository instance.
func NewRecurringDefinitionRepository(db *gorm.DB) adapter.RecurringDefinitionRepository {
	return &recurringDefinitionRepository{db: db}
}

func (r *recurringDefinitionRepository) Create(ctx context.Context, definition *entity.RecurringDefinition) error {
	return r.db.WithContext(ctx).Create(model.RecurringDefinitionFromEntity(definition)).Error
}

func (r *recurringDefinitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringDefinition, error) {
	var definitionModel model.RecurringDefinitionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&definitionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecurringDefinitionNotFound
		}
		return nil, result.Error
	}
	return definitionModel.ToEntity(), nil
}

func (r *recurringDefinitionRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringDefinition, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

// FindDue returns definitions of every user due at or before at, oldest first.
func (r *recurringDefinitionRepository) FindDue(ctx context.Context, at time.Time) ([]*entity.RecurringDefinition, error) {
	return r.find(r.db.WithContext(ctx).Where("next_run_at <= ?", at))
}

func (r *recurringDefinitionRepository) find(query *gorm.DB) ([]*entity.RecurringDefinition, error) {
	var definitionModels []model.RecurringDefinitionModel
	if err := query.Order("next_run_at ASC, created_at ASC").Find(&definitionModels).Error; err != nil {
		return nil, err
	}

	definitions := make([]*entity.RecurringDefinition, len(definitionModels))
	for i := range definitionModels {
		definitions[i] = definitionModels[i].ToEntity()
	}
	return definitions, nil
}

func (r *recurringDefinitionRepository) Update(ctx context.Context, definition *entity.RecurringDefinition) error {
	return r.db.WithContext(ctx).Save(model.RecurringDefinitionFromEntity(definition)).Error
}

// UpdateRunDates writes only the scheduling columns so a concurrent edit of other fields is kept.
func (r *recurringDefinitionRepository) UpdateRunDates(ctx context.Context, id uuid.UUID, lastRunAt, nextRunAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.RecurringDefinitionModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_run_at": lastRunAt,
			"next_run_at": nextRunAt,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecurringDefinitionNotFound
	}
	return nil
}

func (r *recurringDefinitionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.RecurringDefinitionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecurringDefinitionNotFound
	}
	return nil
}
