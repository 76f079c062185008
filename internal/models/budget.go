package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hemanthscode/fintrack/internal/recurrence"
	"github.com/hemanthscode/fintrack/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultAlertThreshold is the percentage of the budget amount at which an
// alert email is sent if none is configured.
const DefaultAlertThreshold = 80

// BudgetStatus is the derived state of a budget. It is computed on read and
// never stored.
type BudgetStatus string

const (
	BudgetStatusActive   BudgetStatus = "active"
	BudgetStatusWarning  BudgetStatus = "warning"
	BudgetStatusExceeded BudgetStatus = "exceeded"
	BudgetStatusExpired  BudgetStatus = "expired"
)

// Budget is a spending limit for an expense category or, when Type is
// savings, a savings target. Progress accumulates from matching transactions
// and manual contributions.
type Budget struct {
	DefaultModel
	UserID         uuid.UUID `gorm:"index"`
	User           User      `json:"-"`
	Type           types.BudgetType
	Name           string
	Category       string // Expense category, only used when Type is budget
	Amount         decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Period         types.Period
	StartDate      time.Time
	EndDate        time.Time
	Progress       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	AlertThreshold uint            // Percentage of Amount at which an alert is sent
	AlertSent      bool
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000.
func (b *Budget) AfterFind(tx *gorm.DB) (err error) {
	err = b.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	b.StartDate = b.StartDate.In(time.UTC)
	b.EndDate = b.EndDate.In(time.UTC)
	return nil
}

// BeforeSave validates the budget and fills in defaults.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Category = strings.TrimSpace(b.Category)

	if !b.Type.Valid() {
		return ErrBudgetTypeInvalid
	}

	if !b.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if !b.Period.Valid() {
		return ErrPeriodInvalid
	}

	switch b.Type {
	case types.BudgetTypeBudget:
		if b.Category == "" || !types.CategoryValid(b.Category, types.TypeExpense) {
			return ErrCategoryRequired
		}
	case types.BudgetTypeSavings:
		// Savings goals are not bound to a category
		b.Category = ""
	}

	if b.StartDate.IsZero() {
		b.StartDate = time.Now().In(time.UTC)
	} else {
		b.StartDate = b.StartDate.In(time.UTC)
	}

	if b.EndDate.IsZero() {
		b.EndDate = recurrence.PeriodEnd(b.StartDate, b.Period)
	} else {
		b.EndDate = b.EndDate.In(time.UTC)
	}

	if b.EndDate.Before(b.StartDate) {
		return ErrEndBeforeStart
	}

	if b.AlertThreshold == 0 {
		b.AlertThreshold = DefaultAlertThreshold
	}
	if b.AlertThreshold > 100 {
		return ErrThresholdOutOfRange
	}

	if b.Progress.IsNegative() {
		b.Progress = decimal.Zero
	}

	return nil
}

// Status derives the budget state for the given time.
func (b Budget) Status(now time.Time) BudgetStatus {
	if b.EndDate.Before(now) {
		return BudgetStatusExpired
	}

	percentage := b.Percentage()
	switch {
	case percentage.GreaterThanOrEqual(decimal.NewFromInt(100)):
		return BudgetStatusExceeded
	case percentage.GreaterThanOrEqual(decimal.NewFromInt(int64(b.AlertThreshold))):
		return BudgetStatusWarning
	}

	return BudgetStatusActive
}

// Percentage returns the progress as a percentage of the amount.
func (b Budget) Percentage() decimal.Decimal {
	if b.Amount.IsZero() {
		return decimal.Zero
	}

	return b.Progress.Div(b.Amount).Mul(decimal.NewFromInt(100))
}

// Remaining returns the amount left before the budget is used up. It is
// negative once the budget is exceeded.
func (b Budget) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.Progress)
}

// Rollover resets the budget for a fresh period starting at now. The end date
// is recomputed from the new start date.
func (b *Budget) Rollover(now time.Time) {
	b.StartDate = now
	b.EndDate = recurrence.PeriodEnd(now, b.Period)
	b.Progress = decimal.Zero
	b.AlertSent = false
}
