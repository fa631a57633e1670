package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TrendPeriod is the bucket granularity of a spending trend.
type TrendPeriod string

const (
	TrendPeriodDaily   TrendPeriod = "daily"
	TrendPeriodWeekly  TrendPeriod = "weekly"
	TrendPeriodMonthly TrendPeriod = "monthly"
	TrendPeriodYearly  TrendPeriod = "yearly"
)

// IsValid reports whether the period is one of the supported granularities.
func (p TrendPeriod) IsValid() bool {
	switch p {
	case TrendPeriodDaily, TrendPeriodWeekly, TrendPeriodMonthly, TrendPeriodYearly:
		return true
	}
	return false
}

// TrendDirection classifies the change against the previous window.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// TrendBucket holds the accumulated amount of the transactions sharing a bucket key.
type TrendBucket struct {
	Key    string
	Start  time.Time // earliest transaction date in the bucket
	Amount decimal.Decimal
	Count  int
}

// SpendingTrend is the aggregated trend for one window.
type SpendingTrend struct {
	Period              TrendPeriod
	StartDate           time.Time
	EndDate             time.Time
	Buckets             []TrendBucket
	TotalAmount         decimal.Decimal
	PreviousTotalAmount decimal.Decimal
	PercentageChange    decimal.Decimal
	Trend               TrendDirection
}

// CategorySpendingTrend is a SpendingTrend rolled up to one top-level category.
type CategorySpendingTrend struct {
	SpendingTrend
	CategoryID    uuid.UUID
	CategoryName  string
	CategoryColor string
}
