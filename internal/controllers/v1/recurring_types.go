package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hemanthscode/fintrack/internal/models"
	"github.com/hemanthscode/fintrack/internal/types"
	"github.com/shopspring/decimal"
)

type RecurringEditable struct {
	Type          types.TransactionType `json:"type" example:"expense"`
	Amount        decimal.Decimal       `json:"amount" example:"1200"`
	Category      string                `json:"category" example:"housing"`
	Description   string                `json:"description" example:"Rent"`
	Tags          []string              `json:"tags" example:"home"`
	Frequency     types.Frequency       `json:"frequency" example:"monthly"`
	StartDate     time.Time             `json:"startDate" example:"2024-01-31T00:00:00Z"` // Date of the first occurrence
	EndDate       *time.Time            `json:"endDate" example:"2024-12-31T00:00:00Z"`   // Optional last date instances may be created for
	SavingsGoalID *uuid.UUID            `json:"savingsGoalId" example:"f9e873c2-fb96-4367-bfb6-7ecd9bf4a6b5"`
}

func (editable RecurringEditable) model(userID uuid.UUID) models.Transaction {
	frequency := editable.Frequency

	return models.Transaction{
		UserID:        userID,
		Type:          editable.Type,
		Amount:        editable.Amount,
		Category:      editable.Category,
		Date:          editable.StartDate,
		Description:   editable.Description,
		Tags:          editable.Tags,
		SavingsGoalID: editable.SavingsGoalID,
		IsRecurring:   true,
		Frequency:     &frequency,
		RecurrenceEnd: editable.EndDate,
	}
}

type RecurringListResponse struct {
	Data       []RecurringTransaction `json:"data"`                                                          // List of recurring templates
	Error      *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination            `json:"pagination"`                                                    // Pagination information
}

type RecurringCreateResponse struct {
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []RecurringResponse `json:"data"`                                                          // List of created templates
}

func (t *RecurringCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, RecurringResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RecurringResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this template
	Data  *RecurringTransaction `json:"data"`                                                          // The template data, if creation was successful
}

type RecurringLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/recurring/c8d20038-f394-48e5-aa04-2ad1df9df160"`          // The template itself
	Upcoming string `json:"upcoming" example:"https://example.com/api/v1/recurring/c8d20038-f394-48e5-aa04-2ad1df9df160/upcoming"` // Preview of the next occurrences
}

// RecurringTransaction is the API representation of a recurring template.
type RecurringTransaction struct {
	models.DefaultModel
	RecurringEditable
	NextOccurrence *time.Time     `json:"nextOccurrence" example:"2024-04-30T00:00:00Z"` // Next date an instance will be created for, null once the series has ended
	Active         bool           `json:"active" example:"true"`                         // False once the series has permanently ended
	Links          RecurringLinks `json:"links"`
}

func newRecurringTransaction(c *gin.Context, model models.Transaction) RecurringTransaction {
	url := c.GetString(string(models.DBContextURL))

	var frequency types.Frequency
	if model.Frequency != nil {
		frequency = *model.Frequency
	}

	return RecurringTransaction{
		DefaultModel: model.DefaultModel,
		RecurringEditable: RecurringEditable{
			Type:          model.Type,
			Amount:        model.Amount,
			Category:      model.Category,
			Description:   model.Description,
			Tags:          model.Tags,
			Frequency:     frequency,
			StartDate:     model.Date,
			EndDate:       model.RecurrenceEnd,
			SavingsGoalID: model.SavingsGoalID,
		},
		NextOccurrence: model.NextOccurrence,
		Active:         model.NextOccurrence != nil,
		Links: RecurringLinks{
			Self:     fmt.Sprintf("%s/v1/recurring/%s", url, model.ID),
			Upcoming: fmt.Sprintf("%s/v1/recurring/%s/upcoming", url, model.ID),
		},
	}
}

// RecurringQueryFilter contains the fields that recurring templates can be
// filtered with.
type RecurringQueryFilter struct {
	Type      string `form:"type"`                       // By type
	Category  string `form:"category"`                   // By category
	Frequency string `form:"frequency"`                  // By frequency
	Active    bool   `form:"active" filterField:"false"` // Only templates that still produce instances
	Offset    uint   `form:"offset" filterField:"false"` // The offset of the first template returned. Defaults to 0.
	Limit     int    `form:"limit" filterField:"false"`  // Maximum number of templates to return. Defaults to 50.
}

// model returns a models.Transaction struct that represents the query filter.
func (f RecurringQueryFilter) model() models.Transaction {
	var frequency *types.Frequency
	if f.Frequency != "" {
		fr := types.Frequency(f.Frequency)
		frequency = &fr
	}

	return models.Transaction{
		Type:      types.TransactionType(f.Type),
		Category:  f.Category,
		Frequency: frequency,
	}
}

// UpcomingOccurrence is one entry in the occurrence preview of a template.
type UpcomingOccurrence struct {
	Date   time.Time       `json:"date" example:"2024-04-30T00:00:00Z"`
	Amount decimal.Decimal `json:"amount" example:"1200"`
}

type UpcomingResponse struct {
	Error *string              `json:"error" example:"the count query parameter must be between 1 and 60"` // The error, if any occurred
	Data  []UpcomingOccurrence `json:"data"`                                                               // The upcoming occurrences, oldest first
}
