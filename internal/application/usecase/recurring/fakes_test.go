package recurring

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type fakeDefinitionRepo struct {
	definitions map[uuid.UUID]*entity.RecurringDefinition
	findDueErr  error
	updateErr   map[uuid.UUID]error
}

func newFakeDefinitionRepo(defs ...*entity.RecurringDefinition) *fakeDefinitionRepo {
	repo := &fakeDefinitionRepo{
		definitions: make(map[uuid.UUID]*entity.RecurringDefinition),
		updateErr:   make(map[uuid.UUID]error),
	}
	for _, d := range defs {
		repo.definitions[d.ID] = d
	}
	return repo
}

func (r *fakeDefinitionRepo) Create(_ context.Context, d *entity.RecurringDefinition) error {
	r.definitions[d.ID] = d
	return nil
}

func (r *fakeDefinitionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.RecurringDefinition, error) {
	d, ok := r.definitions[id]
	if !ok {
		return nil, domainerror.ErrRecurringDefinitionNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *fakeDefinitionRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.RecurringDefinition, error) {
	var result []*entity.RecurringDefinition
	for _, d := range r.definitions {
		if d.UserID == userID {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].NextRunAt.Before(result[j].NextRunAt) })
	return result, nil
}

func (r *fakeDefinitionRepo) FindDue(_ context.Context, at time.Time) ([]*entity.RecurringDefinition, error) {
	if r.findDueErr != nil {
		return nil, r.findDueErr
	}
	var result []*entity.RecurringDefinition
	for _, d := range r.definitions {
		if d.IsDue(at) {
			clone := *d
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].NextRunAt.Before(result[j].NextRunAt) })
	return result, nil
}

func (r *fakeDefinitionRepo) Update(_ context.Context, d *entity.RecurringDefinition) error {
	r.definitions[d.ID] = d
	return nil
}

func (r *fakeDefinitionRepo) UpdateRunDates(_ context.Context, id uuid.UUID, lastRunAt, nextRunAt time.Time) error {
	if err := r.updateErr[id]; err != nil {
		return err
	}
	d, ok := r.definitions[id]
	if !ok {
		return domainerror.ErrRecurringDefinitionNotFound
	}
	d.LastRunAt = &lastRunAt
	d.NextRunAt = nextRunAt
	return nil
}

func (r *fakeDefinitionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.definitions, id)
	return nil
}

type fakeTransactionRepo struct {
	transactions []*entity.Transaction
	keys         map[string]bool
	createErr    map[uuid.UUID]error
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{
		keys:      make(map[string]bool),
		createErr: make(map[uuid.UUID]error),
	}
}

func (r *fakeTransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	r.transactions = append(r.transactions, t)
	return nil
}

func (r *fakeTransactionRepo) CreateOccurrence(_ context.Context, t *entity.Transaction) (bool, error) {
	if t.RecurringDefinitionID != nil {
		if err := r.createErr[*t.RecurringDefinitionID]; err != nil {
			return false, err
		}
	}
	if r.keys[*t.OccurrenceKey] {
		return false, nil
	}
	r.keys[*t.OccurrenceKey] = true
	r.transactions = append(r.transactions, t)
	return true, nil
}

func (r *fakeTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for _, t := range r.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (r *fakeTransactionRepo) FindByFilter(context.Context, adapter.TransactionFilter, adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeTransactionRepo) FindAllByFilter(context.Context, adapter.TransactionFilter) ([]*entity.Transaction, error) {
	return r.transactions, nil
}

func (r *fakeTransactionRepo) Update(context.Context, *entity.Transaction) error { return nil }

func (r *fakeTransactionRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return c, nil
}

func (r *fakeCategoryRepo) FindByUser(context.Context, uuid.UUID) ([]*entity.Category, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) FindTopLevelByUser(context.Context, uuid.UUID) ([]*entity.Category, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) ExistsByNameAndUser(context.Context, string, uuid.UUID) (bool, error) {
	return false, nil
}

func (r *fakeCategoryRepo) CountChildren(context.Context, uuid.UUID) (int64, error) { return 0, nil }

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

type recordingMetrics struct {
	runs []adapter.RecurringRunStats
}

func (m *recordingMetrics) ObserveRun(stats adapter.RecurringRunStats) {
	m.runs = append(m.runs, stats)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }
