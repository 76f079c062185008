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

type BudgetEditable struct {
	Type           types.BudgetType `json:"type" example:"budget"`                     // budget for a spending limit, savings for a savings target
	Name           string           `json:"name" example:"Groceries"`                  // Name of the budget
	Category       string           `json:"category" example:"food"`                   // Expense category, only used for spending limits
	Amount         decimal.Decimal  `json:"amount" example:"400"`                      // The limit or savings target
	Period         types.Period     `json:"period" example:"monthly"`                  // Length of one budget period
	StartDate      time.Time        `json:"startDate" example:"2024-03-01T00:00:00Z"`  // Start of the current period, defaults to now
	EndDate        time.Time        `json:"endDate" example:"2024-03-31T00:00:00Z"`    // End of the current period, defaults to start plus one period
	Progress       decimal.Decimal  `json:"progress" example:"123.45"`                 // Amount spent or saved in the current period
	AlertThreshold uint             `json:"alertThreshold" example:"80"`               // Percentage of the amount at which an alert is sent, defaults to 80
}

func (editable BudgetEditable) model(userID uuid.UUID) models.Budget {
	return models.Budget{
		UserID:         userID,
		Type:           editable.Type,
		Name:           editable.Name,
		Category:       editable.Category,
		Amount:         editable.Amount,
		Period:         editable.Period,
		StartDate:      editable.StartDate,
		EndDate:        editable.EndDate,
		Progress:       editable.Progress,
		AlertThreshold: editable.AlertThreshold,
	}
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetCreateResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []BudgetResponse `json:"data"`                                                          // List of created budgets
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this budget
	Data  *Budget `json:"data"`                                                          // The budget data, if creation was successful
}

type BudgetLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/budgets/95685c82-53c6-455d-b235-f49960b73b21"`              // The budget itself
	Progress string `json:"progress" example:"https://example.com/api/v1/budgets/95685c82-53c6-455d-b235-f49960b73b21/progress"` // Endpoint to add progress manually
}

// Budget is the API representation of a budget.
type Budget struct {
	models.DefaultModel
	BudgetEditable
	Status     models.BudgetStatus `json:"status" example:"warning"`        // Derived state of the budget for the current period
	Percentage decimal.Decimal     `json:"percentage" example:"85"`         // Progress as a percentage of the amount
	Remaining  decimal.Decimal     `json:"remaining" example:"60"`          // Amount left before the budget is used up, negative once exceeded
	AlertSent  bool                `json:"alertSent" example:"false"`       // Whether an alert mail went out for the current period
	Links      BudgetLinks         `json:"links"`
}

func newBudget(c *gin.Context, model models.Budget) Budget {
	url := c.GetString(string(models.DBContextURL))

	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			Type:           model.Type,
			Name:           model.Name,
			Category:       model.Category,
			Amount:         model.Amount,
			Period:         model.Period,
			StartDate:      model.StartDate,
			EndDate:        model.EndDate,
			Progress:       model.Progress,
			AlertThreshold: model.AlertThreshold,
		},
		Status:     model.Status(time.Now()),
		Percentage: model.Percentage(),
		Remaining:  model.Remaining(),
		AlertSent:  model.AlertSent,
		Links: BudgetLinks{
			Self:     fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
			Progress: fmt.Sprintf("%s/v1/budgets/%s/progress", url, model.ID),
		},
	}
}

// BudgetQueryFilter contains the fields that budgets can be filtered with.
type BudgetQueryFilter struct {
	Type     string `form:"type"`                       // By type
	Category string `form:"category"`                   // By category
	Name     string `form:"name" filterField:"false"`   // By name, fuzzy
	Active   bool   `form:"active" filterField:"false"` // Only budgets whose period has not ended
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first budget returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of budgets to return. Defaults to 50.
}

// model returns a models.Budget struct that represents the query filter.
func (f BudgetQueryFilter) model() models.Budget {
	return models.Budget{
		Type:     types.BudgetType(f.Type),
		Category: f.Category,
	}
}

// ProgressRequest is the body for manual progress contributions.
type ProgressRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required" example:"50"` // Amount to add to the progress, must be larger than zero
}

// SummaryTotals aggregates the budgets of one type.
type SummaryTotals struct {
	Count     int             `json:"count" example:"4"`       // Number of budgets
	Amount    decimal.Decimal `json:"amount" example:"1400"`   // Sum of the limits or targets
	Progress  decimal.Decimal `json:"progress" example:"760"`  // Sum of the progress
	Remaining decimal.Decimal `json:"remaining" example:"640"` // Sum of the remaining amounts
}

// Summary is the aggregated state of all current budgets of the user.
type Summary struct {
	Budgets  SummaryTotals `json:"budgets"`  // Totals over the spending limits
	Savings  SummaryTotals `json:"savings"`  // Totals over the savings goals
	Exceeded int           `json:"exceeded" example:"1"` // Number of spending limits that are exceeded
}

type SummaryResponse struct {
	Error *string  `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
	Data  *Summary `json:"data"`                                                                // The summary data
}
