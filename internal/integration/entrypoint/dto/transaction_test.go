package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/recurring/internal/application/usecase/transaction"
	"github.com/finance-tracker/recurring/internal/domain/entity"
)

func TestToTransactionResponse(t *testing.T) {
	categoryID := uuid.New()
	definitionID := uuid.New()

	t.Run("pending occurrence with category", func(t *testing.T) {
		response := ToTransactionResponse(&transaction.TransactionOutput{
			ID:                    uuid.New(),
			Date:                  time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
			Description:           "Rent",
			Amount:                decimal.RequireFromString("1200.5"),
			Type:                  entity.TransactionTypeExpense,
			CategoryID:            &categoryID,
			CategoryName:          "Home",
			CategoryColor:         "#112233",
			Status:                entity.TransactionStatusPendingApproval,
			RecurringDefinitionID: &definitionID,
		})

		assert.Equal(t, "2024-03-01", response.Date)
		assert.Equal(t, "1200.50", response.Amount)
		assert.Equal(t, "PENDING_APPROVAL", response.Status)
		require.NotNil(t, response.CategoryID)
		assert.Equal(t, categoryID.String(), *response.CategoryID)
		assert.Equal(t, "Home", response.CategoryName)
		require.NotNil(t, response.RecurringDefinitionID)
		assert.Equal(t, definitionID.String(), *response.RecurringDefinitionID)
	})

	t.Run("uncategorized manual entry", func(t *testing.T) {
		response := ToTransactionResponse(&transaction.TransactionOutput{
			ID:     uuid.New(),
			Amount: decimal.NewFromInt(5),
			Type:   entity.TransactionTypeIncome,
			Status: entity.TransactionStatusApproved,
		})

		body, err := json.Marshal(response)
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(body, &fields))
		for _, key := range []string{"category_id", "category_name", "category_color", "recurring_definition_id", "user_id"} {
			assert.NotContains(t, fields, key)
		}
		assert.Equal(t, "5.00", fields["amount"])
	})
}
