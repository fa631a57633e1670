package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/recurring/internal/application/usecase/recurring"
)

// CreateRecurringRequest represents the request body for recurring definition creation.
type CreateRecurringRequest struct {
	Description string          `json:"description" binding:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type" binding:"required,oneof=expense income"`
	CategoryID  *string         `json:"category_id,omitempty"`
	Cadence     string          `json:"cadence" binding:"required"`
	Interval    int             `json:"interval,omitempty" binding:"omitempty,min=1"`
	DayOfWeek   *int            `json:"day_of_week,omitempty"`
	DayOfMonth  *int            `json:"day_of_month,omitempty"`
	MonthOfYear *int            `json:"month_of_year,omitempty"`
}

// UpdateRecurringRequest represents the request body for recurring definition update.
type UpdateRecurringRequest struct {
	Description     *string          `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Type            *string          `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	CategoryID      *string          `json:"category_id,omitempty"`
	ClearCategory   bool             `json:"clear_category,omitempty"`
	Cadence         *string          `json:"cadence,omitempty"`
	Interval        *int             `json:"interval,omitempty"`
	DayOfWeek       *int             `json:"day_of_week,omitempty"`
	ClearDayOfWeek  bool             `json:"clear_day_of_week,omitempty"`
	DayOfMonth      *int             `json:"day_of_month,omitempty"`
	ClearDayOfMonth bool             `json:"clear_day_of_month,omitempty"`
	MonthOfYear     *int             `json:"month_of_year,omitempty"`
}

// ProcessDueRequest represents the optional body of a scheduler trigger.
type ProcessDueRequest struct {
	Date string `json:"date,omitempty"`
}

// RecurringResponse represents a single recurring definition in API responses.
type RecurringResponse struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Amount      string     `json:"amount"`
	Type        string     `json:"type"`
	CategoryID  *string    `json:"category_id,omitempty"`
	Cadence     string     `json:"cadence"`
	Interval    int        `json:"interval"`
	DayOfWeek   *int       `json:"day_of_week,omitempty"`
	DayOfMonth  *int       `json:"day_of_month,omitempty"`
	MonthOfYear *int       `json:"month_of_year,omitempty"`
	LastRunAt   *time.Time `json:"last_run_at,omitempty"`
	NextRunAt   time.Time  `json:"next_run_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RecurringListResponse represents the response for listing recurring definitions.
type RecurringListResponse struct {
	Definitions []RecurringResponse `json:"recurring_transactions"`
}

// ProcessDueResponse summarizes a scheduler run.
type ProcessDueResponse struct {
	EvaluationDate      time.Time `json:"evaluation_date"`
	Due                 int       `json:"due"`
	Created             int       `json:"created"`
	AlreadyMaterialized int       `json:"already_materialized"`
	Failed              int       `json:"failed"`
}

// ToRecurringResponse converts a DefinitionOutput to a RecurringResponse DTO.
func ToRecurringResponse(d *recurring.DefinitionOutput) RecurringResponse {
	response := RecurringResponse{
		ID:          d.ID.String(),
		Description: d.Description,
		Amount:      d.Amount.StringFixed(2),
		Type:        string(d.Type),
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
	response.CategoryID = optionalID(d.CategoryID)
	return response
}

// ToRecurringListResponse converts a ListDefinitionsOutput to a RecurringListResponse DTO.
func ToRecurringListResponse(output *recurring.ListDefinitionsOutput) RecurringListResponse {
	definitions := make([]RecurringResponse, len(output.Definitions))
	for i, d := range output.Definitions {
		definitions[i] = ToRecurringResponse(d)
	}
	return RecurringListResponse{Definitions: definitions}
}

// ToProcessDueResponse converts a ProcessDueOutput to a ProcessDueResponse DTO.
func ToProcessDueResponse(output *recurring.ProcessDueOutput) ProcessDueResponse {
	return ProcessDueResponse{
		EvaluationDate:      output.EvaluationDate,
		Due:                 output.Due,
		Created:             output.Created,
		AlreadyMaterialized: output.AlreadyMaterialized,
		Failed:              output.Failed,
	}
}
