package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hemanthscode/fintrack/internal/httputil"
	"github.com/hemanthscode/fintrack/internal/models"
	"github.com/hemanthscode/fintrack/internal/types"
	"golang.org/x/exp/slices"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetBudgets)
		r.POST("", co.CreateBudgets)
	}

	// Summary over all budgets
	{
		r.OPTIONS("/summary", httputil.OptionsGet)
		r.GET("/summary", co.GetBudgetSummary)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetBudget)
		r.PATCH("/:id", co.UpdateBudget)
		r.DELETE("/:id", co.DeleteBudget)
	}

	// Manual progress contributions
	{
		r.OPTIONS("/:id/progress", httputil.OptionsPost)
		r.POST("/:id/progress", co.AddBudgetProgress)
	}
}

// @Summary		Get budgets
// @Description	Returns a list of the budgets and savings goals of the authenticated user
// @Tags			Budgets
// @Produce		json
// @Success		200			{object}	BudgetListResponse
// @Failure		400			{object}	BudgetListResponse
// @Failure		500			{object}	BudgetListResponse
// @Param			type		query		string	false	"Filter by type"
// @Param			category	query		string	false	"Filter by category"
// @Param			name		query		string	false	"Filter by name, fuzzy"
// @Param			active		query		bool	false	"Only budgets whose period has not ended"
// @Param			offset		query		uint	false	"The offset of the first budget returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of budgets to return. Defaults to 50."
// @Router			/v1/budgets [get]
func (co Controller) GetBudgets(c *gin.Context) {
	user := currentUser(c)

	var filter BudgetQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, BudgetListResponse{Error: &s})
		return
	}

	// Get the parameters set in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()

	q := models.DB.
		Order("name ASC").
		Where("user_id = ?", user.ID).
		Where(&model, queryFields...)

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	}

	if slices.Contains(setFields, "Active") && filter.Active {
		q = q.Where("end_date >= ?", time.Now())
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 budgets and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var budgets []models.Budget
	err := q.Find(&budgets).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetListResponse{Error: &e})
		return
	}

	data := make([]Budget, 0)
	for _, budget := range budgets {
		data = append(data, newBudget(c, budget))
	}

	c.JSON(http.StatusOK, BudgetListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Create budgets
// @Description	Creates budgets from the list of submitted budget data. The response code is the highest response code number that a single budget creation would have caused. If it is not equal to 201, at least one budget has an error.
// @Tags			Budgets
// @Produce		json
// @Success		201		{object}	BudgetCreateResponse
// @Failure		400		{object}	BudgetCreateResponse
// @Failure		500		{object}	BudgetCreateResponse
// @Param			budgets	body		[]BudgetEditable	true	"Budgets"
// @Router			/v1/budgets [post]
func (co Controller) CreateBudgets(c *gin.Context) {
	var editables []BudgetEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BudgetCreateResponse{Error: &e})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := BudgetCreateResponse{}

	for _, editable := range editables {
		model := editable.model(currentUser(c).ID)

		err := models.DB.Create(&model).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newBudget(c, model)
		r.Data = append(r.Data, BudgetResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get budget
// @Description	Returns a specific budget
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	BudgetResponse
// @Failure		404	{object}	BudgetResponse
// @Failure		500	{object}	BudgetResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/budgets/{id} [get]
func (co Controller) GetBudget(c *gin.Context) {
	budget, err := getBudget(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Update budget
// @Description	Updates an existing budget. Only values to be updated need to be specified. The progress must not exceed the amount when it is set directly.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			id		path		string			true	"ID formatted as string"
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets/{id} [patch]
func (co Controller) UpdateBudget(c *gin.Context) {
	budget, err := getBudget(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BudgetEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{Error: &e})
		return
	}

	var data BudgetEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{Error: &e})
		return
	}

	// Accumulated transaction deltas may push the progress past the amount,
	// setting it past the amount directly is rejected
	if slices.Contains(updateFields, any("Progress")) {
		amount := budget.Amount
		if slices.Contains(updateFields, any("Amount")) {
			amount = data.Amount
		}

		if data.Progress.GreaterThan(amount) {
			e := models.ErrProgressExceedsAmount.Error()
			c.JSON(http.StatusBadRequest, BudgetResponse{Error: &e})
			return
		}
	}

	err = models.DB.Model(&budget).Select("", updateFields...).Updates(data.model(budget.UserID)).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	apiResource := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &apiResource})
}

// @Summary		Delete budget
// @Description	Deletes a budget
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/budgets/{id} [delete]
func (co Controller) DeleteBudget(c *gin.Context) {
	budget, err := getBudget(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&budget).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, gin.H{})
}

// @Summary		Add progress
// @Description	Adds a manual contribution to the progress of a budget or savings goal. The amount must be larger than zero, budgets whose period has ended are rejected.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200			{object}	BudgetResponse
// @Failure		400			{object}	BudgetResponse
// @Failure		404			{object}	BudgetResponse
// @Failure		500			{object}	BudgetResponse
// @Param			id			path		string			true	"ID formatted as string"
// @Param			progress	body		ProgressRequest	true	"Contribution"
// @Router			/v1/budgets/{id}/progress [post]
func (co Controller) AddBudgetProgress(c *gin.Context) {
	budget, err := getBudget(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	var request ProgressRequest
	err = httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{Error: &e})
		return
	}

	if !request.Amount.IsPositive() {
		e := errProgressNotPositive.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{Error: &e})
		return
	}

	if budget.EndDate.Before(time.Now()) {
		e := models.ErrBudgetExpired.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{Error: &e})
		return
	}

	budget.Progress = budget.Progress.Add(request.Amount)
	err = models.DB.Model(&budget).Update("progress", budget.Progress).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	apiResource := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &apiResource})
}

// @Summary		Get budget summary
// @Description	Returns aggregated totals over the current budgets and savings goals of the authenticated user
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	SummaryResponse
// @Failure		500	{object}	SummaryResponse
// @Router			/v1/budgets/summary [get]
func (co Controller) GetBudgetSummary(c *gin.Context) {
	user := currentUser(c)
	now := time.Now()

	var budgets []models.Budget
	err := models.DB.
		Where("user_id = ? AND end_date >= ?", user.ID, now).
		Find(&budgets).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SummaryResponse{Error: &e})
		return
	}

	var summary Summary
	for _, budget := range budgets {
		totals := &summary.Budgets
		if budget.Type == types.BudgetTypeSavings {
			totals = &summary.Savings
		} else if budget.Status(now) == models.BudgetStatusExceeded {
			summary.Exceeded++
		}

		totals.Count++
		totals.Amount = totals.Amount.Add(budget.Amount)
		totals.Progress = totals.Progress.Add(budget.Progress)
		totals.Remaining = totals.Remaining.Add(budget.Remaining())
	}

	c.JSON(http.StatusOK, SummaryResponse{Data: &summary})
}

// getBudget binds the ID from the URL and loads the budget, scoped to the
// authenticated user.
func getBudget(c *gin.Context) (models.Budget, error) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		return models.Budget{}, httputil.ErrInvalidUUID
	}

	var budget models.Budget
	err := models.DB.First(&budget, "id = ? AND user_id = ?", uri.ID, currentUser(c).ID).Error
	if err != nil {
		return models.Budget{}, err
	}

	return budget, nil
}
