package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hemanthscode/fintrack/internal/types"
	"github.com/shopspring/decimal"
)

// Spent returns the authoritative sum of all concrete expense transactions
// that count against the budget in its current period. Templates and
// savings-linked transactions are excluded.
//
// This is the recomputation the alert evaluator uses to correct incremental
// drift in Progress.
func (b Budget) Spent() (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := DB.Model(&Transaction{}).
		Select("SUM(amount)").
		Where("user_id = ? AND type = ? AND category = ? AND is_recurring = ? AND savings_goal_id IS NULL",
			b.UserID, types.TypeExpense, b.Category, false).
		Where("date >= ? AND date <= ?", b.StartDate, b.EndDate).
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing transactions for budget %s failed: %w", b.ID, err)
	}

	return sum.Decimal, nil
}

// TransactionsSum returns the summed amount of all concrete transactions of
// one type for a user in the given time window.
func TransactionsSum(userID uuid.UUID, t types.TransactionType, from, until time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := DB.Model(&Transaction{}).
		Select("SUM(amount)").
		Where("user_id = ? AND type = ? AND is_recurring = ?", userID, t, false).
		Where("date >= ? AND date < ?", from, until).
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing %s transactions failed: %w", t, err)
	}

	return sum.Decimal, nil
}

// CategoryTotal is the aggregated amount for one category.
type CategoryTotal struct {
	Category string          `json:"category" example:"food"`
	Total    decimal.Decimal `json:"total" example:"312.77"`
}

// CategoryTotals returns per-category sums of all concrete transactions of
// one type for a user in the given time window, largest first.
func CategoryTotals(userID uuid.UUID, t types.TransactionType, from, until time.Time) ([]CategoryTotal, error) {
	totals := []CategoryTotal{}

	err := DB.Model(&Transaction{}).
		Select("category, SUM(amount) AS total").
		Where("user_id = ? AND type = ? AND is_recurring = ?", userID, t, false).
		Where("date >= ? AND date < ?", from, until).
		Group("category").
		Order("total DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("aggregating %s transactions by category failed: %w", t, err)
	}

	return totals, nil
}
