//go:build integration

package steps

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/recurring/internal/domain/entity"
	"github.com/finance-tracker/recurring/internal/integration/persistence/model"
)

const dateLayout = "2006-01-02"

func (t *testContext) aCategoryExists(name string) error {
	return t.createCategory(name, nil)
}

func (t *testContext) aCategoryExistsUnder(name, parent string) error {
	parentID, ok := t.categories[parent]
	if !ok {
		return fmt.Errorf("parent category %q was not created", parent)
	}
	return t.createCategory(name, &parentID)
}

func (t *testContext) createCategory(name string, parentID *uuid.UUID) error {
	category := entity.NewCategory(t.currentUserID, name, "#22C55E", entity.CategoryTypeExpense, parentID)
	if err := suite.db.DbConn.Create(model.CategoryFromEntity(category)).Error; err != nil {
		return err
	}
	t.categories[name] = category.ID
	return nil
}

func (t *testContext) anApprovedTransaction(transactionType, amount, date, categoryName string) error {
	categoryID, ok := t.categories[categoryName]
	if !ok {
		return fmt.Errorf("category %q was not created", categoryName)
	}

	parsedDate, err := time.Parse(dateLayout, date)
	if err != nil {
		return err
	}
	parsedAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	return suite.db.DbConn.Create(&model.TransactionModel{
		ID:          uuid.New(),
		UserID:      t.currentUserID,
		Date:        parsedDate,
		Description: "Seeded " + categoryName,
		Amount:      parsedAmount,
		Type:        transactionType,
		CategoryID:  &categoryID,
		Status:      string(entity.TransactionStatusApproved),
		CreatedAt:   now,
		UpdatedAt:   now,
	}).Error
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	tableModel, ok := suite.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	var count int64
	if err := suite.db.DbConn.Model(tableModel).Count(&count).Error; err != nil {
		return err
	}
	if int(count) != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	tableModel, ok := suite.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(tableModel).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := suite.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	if count := entitySlicePtr.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}
