package controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/usecase/trend"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/dto"
)

// TrendController handles spending trend endpoints.
type TrendController struct {
	spendingUseCase *trend.GetSpendingTrendUseCase
	categoryUseCase *trend.GetCategorySpendingTrendUseCase
}

// NewTrendController creates a new trend controller instance.
func NewTrendController(
	spendingUseCase *trend.GetSpendingTrendUseCase,
	categoryUseCase *trend.GetCategorySpendingTrendUseCase,
) *TrendController {
	return &TrendController{
		spendingUseCase: spendingUseCase,
		categoryUseCase: categoryUseCase,
	}
}

// Spending handles GET /trends/spending requests.
func (c *TrendController) Spending(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	window, err := parseTrendWindow(ctx)
	if err != nil {
		c.handleTrendError(ctx, err)
		return
	}

	output, err := c.spendingUseCase.Execute(ctx.Request.Context(), trend.GetSpendingTrendInput{
		UserID: userID,
		Window: window,
	})
	if err != nil {
		c.handleTrendError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSpendingTrendResponse(output))
}

// Categories handles GET /trends/categories requests.
func (c *TrendController) Categories(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	window, err := parseTrendWindow(ctx)
	if err != nil {
		c.handleTrendError(ctx, err)
		return
	}

	output, err := c.categoryUseCase.Execute(ctx.Request.Context(), trend.GetCategorySpendingTrendInput{
		UserID: userID,
		Window: window,
	})
	if err != nil {
		c.handleTrendError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryTrendListResponse(output))
}

// parseTrendWindow reads start_date, end_date, period, category_id and type from the query.
// The period defaults to monthly.
func parseTrendWindow(ctx *gin.Context) (trend.TrendWindow, error) {
	window := trend.TrendWindow{Period: entity.TrendPeriodMonthly}

	dates := []struct {
		param  string
		target **time.Time
	}{
		{param: "start_date", target: &window.StartDate},
		{param: "end_date", target: &window.EndDate},
	}
	for _, d := range dates {
		raw := ctx.Query(d.param)
		if raw == "" {
			continue
		}
		date, err := parseDate(raw)
		if err != nil {
			return window, domainerror.NewTrendError(
				domainerror.ErrCodeInvalidDateFormat,
				d.param+" must be a date in YYYY-MM-DD format",
				domainerror.ErrInvalidDateFormat,
			)
		}
		*d.target = &date
	}

	if raw := ctx.Query("period"); raw != "" {
		period := entity.TrendPeriod(strings.ToLower(raw))
		if !period.IsValid() {
			return window, domainerror.NewTrendError(
				domainerror.ErrCodeInvalidPeriod,
				"period must be: daily, weekly, monthly, or yearly",
				domainerror.ErrInvalidPeriod,
			)
		}
		window.Period = period
	}

	if raw := ctx.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return window, domainerror.NewTrendError(domainerror.ErrCodeInvalidTrendCategory, "invalid category_id", err)
		}
		window.CategoryID = &id
	}

	if raw := ctx.Query("type"); raw != "" {
		txnType := entity.TransactionType(strings.ToLower(raw))
		if !txnType.IsValid() {
			return window, domainerror.NewTrendError(domainerror.ErrCodeInvalidTrendType, "type must be expense or income", nil)
		}
		window.Type = &txnType
	}

	return window, nil
}

// handleTrendError handles trend errors and returns appropriate HTTP responses.
func (c *TrendController) handleTrendError(ctx *gin.Context, err error) {
	var trendErr *domainerror.TrendError
	if errors.As(err, &trendErr) {
		status := http.StatusBadRequest
		if trendErr.Code == domainerror.ErrCodeTrendInternalError {
			status = http.StatusInternalServerError
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: trendErr.Message,
			Code:  string(trendErr.Code),
		})
		return
	}

	internalError(ctx)
}
