package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hemanthscode/fintrack/internal/types"
	"gorm.io/gorm"
)

// MatchRule maps transaction descriptions to categories. Rules are evaluated
// in ascending priority order; the first glob match wins. They run before the
// AI categorizer so that user-defined rules always take precedence.
type MatchRule struct {
	DefaultModel
	UserID   uuid.UUID `gorm:"index"`
	User     User      `json:"-"`
	Priority uint
	Match    string // Glob pattern matched against the transaction description
	Category string // Expense category to assign
}

// BeforeSave validates the rule.
func (r *MatchRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)
	r.Category = strings.TrimSpace(r.Category)

	if !types.CategoryValid(r.Category, types.TypeExpense) {
		return ErrCategoryInvalid
	}

	return nil
}
