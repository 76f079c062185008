package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hemanthscode/fintrack/internal/httputil"
	"github.com/hemanthscode/fintrack/internal/models"
	"github.com/hemanthscode/fintrack/internal/types"
	"github.com/shopspring/decimal"
)

type TransactionEditable struct {
	Type          types.TransactionType `json:"type" example:"expense"`
	Amount        decimal.Decimal       `json:"amount" example:"14.50"`
	Category      string                `json:"category" example:"food"` // Empty categories are filled in by match rules or the AI categorizer
	Date          time.Time             `json:"date" example:"2024-03-14T00:00:00Z"`
	Description   string                `json:"description" example:"Lunch at the corner place"`
	Tags          []string              `json:"tags" example:"work,lunch"`
	ReceiptURL    string                `json:"receiptUrl" example:"/data/receipts/d3cc2e6f.jpg"`
	SavingsGoalID *uuid.UUID            `json:"savingsGoalId" example:"f9e873c2-fb96-4367-bfb6-7ecd9bf4a6b5"` // Optional link to a savings goal this transaction contributes to
}

func (editable TransactionEditable) model(userID uuid.UUID) models.Transaction {
	return models.Transaction{
		UserID:        userID,
		Type:          editable.Type,
		Amount:        editable.Amount,
		Category:      editable.Category,
		Date:          editable.Date,
		Description:   editable.Description,
		Tags:          editable.Tags,
		ReceiptURL:    editable.ReceiptURL,
		SavingsGoalID: editable.SavingsGoalID,
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                                          // The transaction data, if creation was successful
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the API representation of a transaction.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	TemplateID *uuid.UUID       `json:"templateId" example:"c8d20038-f394-48e5-aa04-2ad1df9df160"` // The template this instance was materialized from
	Links      TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Type:          model.Type,
			Amount:        model.Amount,
			Category:      model.Category,
			Date:          model.Date,
			Description:   model.Description,
			Tags:          model.Tags,
			ReceiptURL:    model.ReceiptURL,
			SavingsGoalID: model.SavingsGoalID,
		},
		TemplateID: model.TemplateID,
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

// TransactionQueryFilter contains the fields that transactions can be filtered with.
type TransactionQueryFilter struct {
	Type              string          `form:"type"`                                  // By type
	Category          string          `form:"category"`                              // By category
	FromDate          time.Time       `form:"fromDate" filterField:"false"`          // Transactions at or after this date
	UntilDate         time.Time       `form:"untilDate" filterField:"false"`         // Transactions before or at this date
	AmountMoreOrEqual decimal.Decimal `form:"amountMoreOrEqual" filterField:"false"` // Amount of the transaction is greater than or equal to this amount
	AmountLessOrEqual decimal.Decimal `form:"amountLessOrEqual" filterField:"false"` // Amount of the transaction is less than or equal to this amount
	Description       string          `form:"description" filterField:"false"`       // Description contains this string
	Tag               string          `form:"tag" filterField:"false"`               // Has this tag
	SavingsGoalID     string          `form:"savingsGoal"`                           // By ID of the savings goal they contribute to
	Offset            uint            `form:"offset" filterField:"false"`            // The offset of the first transaction returned. Defaults to 0.
	Limit             int             `form:"limit" filterField:"false"`             // Maximum number of transactions to return. Defaults to 50.
}

// model returns a models.Transaction struct that represents the query filter.
func (f TransactionQueryFilter) model() (models.Transaction, error) {
	var savingsGoalID *uuid.UUID
	if f.SavingsGoalID != "" {
		id, err := uuid.Parse(f.SavingsGoalID)
		if err != nil {
			return models.Transaction{}, httputil.ErrInvalidUUID
		}
		savingsGoalID = &id
	}

	return models.Transaction{
		Type:          types.TransactionType(f.Type),
		Category:      f.Category,
		SavingsGoalID: savingsGoalID,
	}, nil
}
