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

// Transaction represents a single money movement or, when IsRecurring is set,
// the template of a recurring series.
//
// Templates are rules, not cash movements: they are excluded from all sums and
// the ledger. The materialization job turns them into concrete instances which
// reference their template through TemplateID.
type Transaction struct {
	DefaultModel
	UserID        uuid.UUID `gorm:"index"`
	User          User      `json:"-"`
	Type          types.TransactionType
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Category      string
	Date          time.Time `gorm:"uniqueIndex:transaction_occurrence"`
	Description   string
	Tags          []string `gorm:"serializer:json"`
	ReceiptURL    string
	SavingsGoalID *uuid.UUID // Optional link to a savings goal this transaction contributes to
	SavingsGoal   *Budget    `json:"-" gorm:"foreignKey:SavingsGoalID"`

	// Recurrence fields. All null for one-off transactions. A template's
	// NextOccurrence is null iff the series has permanently ended.
	IsRecurring    bool
	Frequency      *types.Frequency
	NextOccurrence *time.Time
	RecurrenceEnd  *time.Time
	// TemplateID links a materialized instance back to its template. The
	// unique index over (template_id, date) makes materialization safe to
	// re-run: a second instance for the same occurrence is rejected.
	TemplateID *uuid.UUID `gorm:"uniqueIndex:transaction_occurrence"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	if t.NextOccurrence != nil {
		next := t.NextOccurrence.In(time.UTC)
		t.NextOccurrence = &next
	}
	if t.RecurrenceEnd != nil {
		end := t.RecurrenceEnd.In(time.UTC)
		t.RecurrenceEnd = &end
	}

	return nil
}

// BeforeSave validates the transaction and normalizes its fields.
func (t *Transaction) BeforeSave(tx *gorm.DB) (err error) {
	t.Description = strings.TrimSpace(t.Description)
	t.Category = strings.TrimSpace(t.Category)

	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if !types.CategoryValid(t.Category, t.Type) {
		return ErrCategoryInvalid
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	if t.IsRecurring {
		if t.Frequency == nil || !t.Frequency.Valid() {
			return ErrFrequencyInvalid
		}

		if t.NextOccurrence != nil {
			next := t.NextOccurrence.In(time.UTC)
			t.NextOccurrence = &next
		}
		if t.RecurrenceEnd != nil {
			end := t.RecurrenceEnd.In(time.UTC)
			t.RecurrenceEnd = &end
		}
	} else {
		// One-off transactions and materialized instances never carry
		// recurrence configuration
		t.Frequency = nil
		t.NextOccurrence = nil
		t.RecurrenceEnd = nil
	}

	// Ensure that the savings goal ID is nil and not a pointer to a nil UUID
	// when it is not set
	if t.SavingsGoalID != nil && *t.SavingsGoalID == uuid.Nil {
		t.SavingsGoalID = nil
	}

	if t.SavingsGoalID != nil {
		var goal Budget
		err := tx.First(&goal, "id = ?", *t.SavingsGoalID).Error
		if err != nil || goal.Type != types.BudgetTypeSavings {
			return ErrSavingsGoalInvalid
		}
	}

	return nil
}

// BeforeCreate defaults a template's first occurrence to its date.
func (t *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	err = t.DefaultModel.BeforeCreate(tx)
	if err != nil {
		return err
	}

	if t.IsRecurring && t.NextOccurrence == nil {
		date := t.Date
		t.NextOccurrence = &date
	}

	return nil
}

// AfterDelete cascades the deletion of a template to all of its future-dated
// instances. Already materialized past instances stay.
func (t *Transaction) AfterDelete(tx *gorm.DB) error {
	if !t.IsRecurring {
		return nil
	}

	return tx.
		Where("template_id = ? AND date > ?", t.ID, time.Now().In(time.UTC)).
		Delete(&Transaction{}).Error
}

// Schedule returns the recurrence schedule of a template.
func (t Transaction) Schedule() recurrence.Schedule {
	return recurrence.Schedule{
		Frequency:      derefFrequency(t.Frequency),
		NextOccurrence: t.NextOccurrence,
		EndDate:        t.RecurrenceEnd,
	}
}

// SetSchedule writes a recurrence schedule back to the template.
func (t *Transaction) SetSchedule(s recurrence.Schedule) {
	t.NextOccurrence = s.NextOccurrence
	t.RecurrenceEnd = s.EndDate
}

// Instance returns the concrete transaction for the template's occurrence at
// the given date.
func (t Transaction) Instance(date time.Time) Transaction {
	id := t.ID

	return Transaction{
		UserID:        t.UserID,
		Type:          t.Type,
		Amount:        t.Amount,
		Category:      t.Category,
		Date:          date,
		Description:   t.Description,
		Tags:          t.Tags,
		ReceiptURL:    t.ReceiptURL,
		SavingsGoalID: t.SavingsGoalID,
		TemplateID:    &id,
	}
}

func derefFrequency(f *types.Frequency) types.Frequency {
	if f == nil {
		return ""
	}

	return *f
}
