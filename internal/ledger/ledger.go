// Package ledger keeps budget progress in sync with transaction writes.
//
// All functions here are best-effort: callers log returned errors and move
// on, a failing progress update must never fail the transaction write that
// triggered it.
package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hemanthscode/fintrack/internal/models"
	"github.com/hemanthscode/fintrack/internal/types"
	"github.com/shopspring/decimal"
)

// Apply adds delta to the progress of the user's active budget for the
// category. Negative deltas reverse earlier applications and clamp at zero.
//
// Not finding a matching active budget is a no-op, not an error.
func Apply(userID uuid.UUID, category string, delta decimal.Decimal, now time.Time) error {
	var budget models.Budget

	err := models.DB.
		Where("user_id = ? AND type = ? AND category = ?", userID, types.BudgetTypeBudget, category).
		Where("start_date <= ? AND end_date >= ?", now, now).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			return nil
		}
		return err
	}

	return adjust(&budget, delta)
}

// ApplySavings adds delta to the progress of a savings goal, clamping at zero.
func ApplySavings(goalID uuid.UUID, delta decimal.Decimal) error {
	var goal models.Budget

	err := models.DB.First(&goal, "id = ? AND type = ?", goalID, types.BudgetTypeSavings).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			return nil
		}
		return err
	}

	return adjust(&goal, delta)
}

// Record applies a freshly written transaction to the matching budget.
//
// Savings-linked transactions credit the linked goal regardless of their
// type. Everything else only moves a budget when it is an expense.
func Record(t models.Transaction, now time.Time) error {
	return applySigned(t, t.Amount, now)
}

// Reverse withdraws a deleted (or about to be rewritten) transaction from the
// matching budget.
func Reverse(t models.Transaction, now time.Time) error {
	return applySigned(t, t.Amount.Neg(), now)
}

func applySigned(t models.Transaction, delta decimal.Decimal, now time.Time) error {
	// Templates are rules, not cash movements
	if t.IsRecurring {
		return nil
	}

	if t.SavingsGoalID != nil {
		return ApplySavings(*t.SavingsGoalID, delta)
	}

	if t.Type != types.TypeExpense {
		return nil
	}

	return Apply(t.UserID, t.Category, delta, now)
}

func adjust(budget *models.Budget, delta decimal.Decimal) error {
	progress := budget.Progress.Add(delta)
	if progress.IsNegative() {
		progress = decimal.Zero
	}

	return models.DB.Model(budget).Update("progress", progress).Error
}
