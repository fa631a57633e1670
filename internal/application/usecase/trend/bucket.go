package trend

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/recurring/internal/domain/entity"
)

// Percentage change above which (or below whose negation) a trend counts as up or down.
var trendThreshold = decimal.NewFromInt(5)

var hundred = decimal.NewFromInt(100)

// BucketKey returns the bucket a date falls into for the given period.
// Weekly keys use the ISO year and an unpadded ISO week number, e.g. "2024-9".
// Unknown periods use the daily format.
func BucketKey(date time.Time, period entity.TrendPeriod) string {
	switch period {
	case entity.TrendPeriodWeekly:
		year, week := date.ISOWeek()
		return fmt.Sprintf("%d-%d", year, week)
	case entity.TrendPeriodMonthly:
		return date.Format("2006-01")
	case entity.TrendPeriodYearly:
		return date.Format("2006")
	default:
		return date.Format("2006-01-02")
	}
}

// bucketTransactions groups transactions by bucket key, ordered by the earliest date in each bucket.
func bucketTransactions(transactions []*entity.Transaction, period entity.TrendPeriod) []entity.TrendBucket {
	index := make(map[string]int)
	buckets := make([]entity.TrendBucket, 0)

	for _, txn := range transactions {
		key := BucketKey(txn.Date, period)
		i, ok := index[key]
		if !ok {
			index[key] = len(buckets)
			buckets = append(buckets, entity.TrendBucket{Key: key, Start: txn.Date, Amount: decimal.Zero})
			i = len(buckets) - 1
		}
		b := &buckets[i]
		b.Amount = b.Amount.Add(txn.Amount)
		b.Count++
		if txn.Date.Before(b.Start) {
			b.Start = txn.Date
		}
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})
	return buckets
}

func sumAmounts(transactions []*entity.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range transactions {
		total = total.Add(txn.Amount)
	}
	return total
}

// compare returns the percentage change against the previous total and its direction.
// A zero previous total always yields 0 and stable.
func compare(total, previous decimal.Decimal) (decimal.Decimal, entity.TrendDirection) {
	if previous.IsZero() {
		return decimal.Zero, entity.TrendStable
	}

	change := total.Sub(previous).Div(previous).Mul(hundred)
	switch {
	case change.GreaterThan(trendThreshold):
		return change.Round(2), entity.TrendUp
	case change.LessThan(trendThreshold.Neg()):
		return change.Round(2), entity.TrendDown
	default:
		return change.Round(2), entity.TrendStable
	}
}

// buildTrend assembles a SpendingTrend from the current transactions and the previous total.
func buildTrend(window *resolvedWindow, current []*entity.Transaction, previousTotal decimal.Decimal) entity.SpendingTrend {
	total := sumAmounts(current)
	change, direction := compare(total, previousTotal)

	return entity.SpendingTrend{
		Period:              window.Period,
		StartDate:           window.Start,
		EndDate:             window.End,
		Buckets:             bucketTransactions(current, window.Period),
		TotalAmount:         total,
		PreviousTotalAmount: previousTotal,
		PercentageChange:    change,
		Trend:               direction,
	}
}
