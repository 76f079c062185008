package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hemanthscode/fintrack/internal/httputil"
	"github.com/hemanthscode/fintrack/internal/ledger"
	"github.com/hemanthscode/fintrack/internal/models"
	"github.com/hemanthscode/fintrack/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransactions)
	}

	// Import
	{
		r.OPTIONS("/import", httputil.OptionsPost)
		r.POST("/import", co.ImportTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

// @Summary		Get transactions
// @Description	Returns a list of the transactions of the authenticated user. Recurring templates are not included, see /v1/recurring.
// @Tags			Transactions
// @Produce		json
// @Success		200					{object}	TransactionListResponse
// @Failure		400					{object}	TransactionListResponse
// @Failure		500					{object}	TransactionListResponse
// @Param			type				query		string	false	"Filter by type"
// @Param			category			query		string	false	"Filter by category"
// @Param			fromDate			query		string	false	"Transactions at or after this date"
// @Param			untilDate			query		string	false	"Transactions before or at this date"
// @Param			amountMoreOrEqual	query		string	false	"Amount is greater than or equal to this"
// @Param			amountLessOrEqual	query		string	false	"Amount is less than or equal to this"
// @Param			description			query		string	false	"Description contains this string"
// @Param			tag					query		string	false	"Has this tag"
// @Param			savingsGoal			query		string	false	"Filter by savings goal ID"
// @Param			offset				query		uint	false	"The offset of the first transaction returned. Defaults to 0."
// @Param			limit				query		int		false	"Maximum number of transactions to return. Defaults to 50."
// @Router			/v1/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	user := currentUser(c)

	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &s})
		return
	}

	// Get the parameters set in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &e})
		return
	}

	q := models.DB.
		Order("date DESC, created_at DESC").
		Where("user_id = ? AND is_recurring = ?", user.ID, false).
		Where(&model, queryFields...)

	if !filter.FromDate.IsZero() {
		q = q.Where("date >= ?", filter.FromDate)
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("date <= ?", filter.UntilDate)
	}

	if slices.Contains(setFields, "AmountMoreOrEqual") {
		q = q.Where("amount >= ?", filter.AmountMoreOrEqual)
	}

	if slices.Contains(setFields, "AmountLessOrEqual") {
		q = q.Where("amount <= ?", filter.AmountLessOrEqual)
	}

	if filter.Description != "" {
		q = q.Where("description LIKE ?", fmt.Sprintf("%%%s%%", filter.Description))
	}

	// Tags are stored as a JSON array, so we match the quoted element
	if filter.Tag != "" {
		q = q.Where("tags LIKE ?", fmt.Sprintf("%%%q%%", filter.Tag))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 transactions and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var transactions []models.Transaction
	err = q.Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	data := make([]Transaction, 0)
	for _, transaction := range transactions {
		data = append(data, newTransaction(c, transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Create transactions
// @Description	Creates transactions from the list of submitted transaction data. The response code is the highest response code number that a single transaction creation would have caused. If it is not equal to 201, at least one transaction has an error.
// @Tags			Transactions
// @Produce		json
// @Success		201				{object}	TransactionCreateResponse
// @Failure		400				{object}	TransactionCreateResponse
// @Failure		404				{object}	TransactionCreateResponse
// @Failure		500				{object}	TransactionCreateResponse
// @Param			transactions	body		[]TransactionEditable	true	"Transactions"
// @Router			/v1/transactions [post]
func (co Controller) CreateTransactions(c *gin.Context) {
	var editables []TransactionEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, TransactionCreateResponse{Error: &e})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TransactionCreateResponse{}

	for _, editable := range editables {
		model, err := co.createTransaction(c, editable.model(currentUser(c).ID))

		// Append the error or the successfully created transaction to the response list
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newTransaction(c, model)
		r.Data = append(r.Data, TransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	transaction, err := getTransaction(c, false)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	data := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Update transaction
// @Description	Updates an existing transaction. Only values to be updated need to be specified.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		string				true	"ID formatted as string"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	transaction, err := getTransaction(c, false)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: &e})
		return
	}

	var data TransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: &e})
		return
	}

	// The budget ledger needs the state before the update to reverse it
	before := transaction

	err = models.DB.Model(&transaction).Select("", updateFields...).Updates(data.model(transaction.UserID)).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	now := time.Now()
	recordLedger(ledger.Reverse, before, now)
	recordLedger(ledger.Record, transaction, now)

	apiResource := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &apiResource})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	transaction, err := getTransaction(c, false)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	recordLedger(ledger.Reverse, transaction, time.Now())

	c.JSON(http.StatusNoContent, gin.H{})
}

// getTransaction binds the ID from the URL and loads the transaction,
// scoped to the authenticated user.
func getTransaction(c *gin.Context, recurring bool) (models.Transaction, error) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		return models.Transaction{}, httputil.ErrInvalidUUID
	}

	var transaction models.Transaction
	err := models.DB.First(&transaction, "id = ? AND user_id = ? AND is_recurring = ?", uri.ID, currentUser(c).ID, recurring).Error
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

// createTransaction creates a single transaction after filling in its
// category and updates the budget ledger.
func (co Controller) createTransaction(c *gin.Context, transaction models.Transaction) (models.Transaction, error) {
	if transaction.Category == "" {
		transaction.Category = co.categorize(c, transaction)
	}

	err := models.DB.Create(&transaction).Error
	if err != nil {
		return models.Transaction{}, err
	}

	recordLedger(ledger.Record, transaction, time.Now())

	return transaction, nil
}

// categorize determines the category for a transaction without one. Match
// rules win over the AI categorizer, "other" is the fallback for both.
func (co Controller) categorize(c *gin.Context, transaction models.Transaction) string {
	if transaction.Type == "" || transaction.Description == "" {
		return "other"
	}

	// Match rules assign expense categories, so they never apply to income
	if transaction.Type == types.TypeExpense {
		var rules []models.MatchRule
		err := models.DB.
			Where("user_id = ?", transaction.UserID).
			Order("priority ASC, match ASC").
			Find(&rules).Error
		if err == nil {
			for _, rule := range rules {
				if glob.Glob(rule.Match, transaction.Description) {
					return rule.Category
				}
			}
		}
	}

	if co.AI.Enabled() {
		category, err := co.AI.Categorize(c.Request.Context(), transaction.Description, transaction.Type)
		if err == nil {
			return category
		}

		log.Warn().Err(err).Msg("AI categorization failed, falling back to 'other'")
	}

	return "other"
}

// recordLedger applies a transaction to the budget ledger. Ledger updates are
// best-effort, a failure never fails the request that caused it.
func recordLedger(apply func(models.Transaction, time.Time) error, transaction models.Transaction, now time.Time) {
	err := apply(transaction, now)
	if err != nil {
		log.Error().Err(err).Str("transaction", transaction.ID.String()).Msg("budget ledger update failed")
	}
}
