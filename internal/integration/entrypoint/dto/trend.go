package dto

import (
	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// TrendBucketResponse represents one bucket of a spending trend.
type TrendBucketResponse struct {
	Key    string `json:"key"`
	Start  string `json:"start"`
	Amount string `json:"amount"`
	Count  int    `json:"count"`
}

// SpendingTrendResponse represents a spending trend in API responses.
type SpendingTrendResponse struct {
	Period              string                `json:"period"`
	StartDate           string                `json:"start_date"`
	EndDate             string                `json:"end_date"`
	Buckets             []TrendBucketResponse `json:"buckets"`
	TotalAmount         string                `json:"total_amount"`
	PreviousTotalAmount string                `json:"previous_total_amount"`
	PercentageChange    string                `json:"percentage_change"`
	Trend               string                `json:"trend"`
}

// CategorySpendingTrendResponse represents the trend of one top-level category.
type CategorySpendingTrendResponse struct {
	CategoryID    string `json:"category_id"`
	CategoryName  string `json:"category_name"`
	CategoryColor string `json:"category_color"`
	SpendingTrendResponse
}

// CategoryTrendListResponse represents the response for per-category trends.
type CategoryTrendListResponse struct {
	Categories []CategorySpendingTrendResponse `json:"categories"`
}

// ToSpendingTrendResponse converts a domain SpendingTrend to a SpendingTrendResponse DTO.
func ToSpendingTrendResponse(trend *entity.SpendingTrend) SpendingTrendResponse {
	buckets := make([]TrendBucketResponse, len(trend.Buckets))
	for i, b := range trend.Buckets {
		buckets[i] = TrendBucketResponse{
			Key:    b.Key,
			Start:  b.Start.Format(DateLayout),
			Amount: b.Amount.StringFixed(2),
			Count:  b.Count,
		}
	}

	return SpendingTrendResponse{
		Period:              string(trend.Period),
		StartDate:           trend.StartDate.Format(DateLayout),
		EndDate:             trend.EndDate.Format(DateLayout),
		Buckets:             buckets,
		TotalAmount:         trend.TotalAmount.StringFixed(2),
		PreviousTotalAmount: trend.PreviousTotalAmount.StringFixed(2),
		PercentageChange:    trend.PercentageChange.StringFixed(2),
		Trend:               string(trend.Trend),
	}
}

// ToCategoryTrendListResponse converts per-category trends to a CategoryTrendListResponse DTO.
func ToCategoryTrendListResponse(trends []*entity.CategorySpendingTrend) CategoryTrendListResponse {
	categories := make([]CategorySpendingTrendResponse, len(trends))
	for i, t := range trends {
		categories[i] = CategorySpendingTrendResponse{
			CategoryID:            t.CategoryID.String(),
			CategoryName:          t.CategoryName,
			CategoryColor:         t.CategoryColor,
			SpendingTrendResponse: ToSpendingTrendResponse(&t.SpendingTrend),
		}
	}
	return CategoryTrendListResponse{Categories: categories}
}
