package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hemanthscode/fintrack/internal/httputil"
	"github.com/hemanthscode/fintrack/internal/models"
	"github.com/hemanthscode/fintrack/internal/recurrence"
	"golang.org/x/exp/slices"
)

// RegisterRecurringRoutes registers the routes for recurring templates with
// the RouterGroup that is passed.
func (co Controller) RegisterRecurringRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetRecurringTransactions)
		r.POST("", co.CreateRecurringTransactions)
	}

	// Template with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", co.GetRecurringTransaction)
		r.PATCH("/:id", co.UpdateRecurringTransaction)
		r.DELETE("/:id", co.DeleteRecurringTransaction)
	}

	// Occurrence preview and cancellation
	{
		r.OPTIONS("/:id/upcoming", httputil.OptionsGet)
		r.GET("/:id/upcoming", co.GetUpcomingOccurrences)

		r.OPTIONS("/:id/cancel", httputil.OptionsPost)
		r.POST("/:id/cancel", co.CancelRecurringTransaction)
	}
}

// @Summary		Get recurring templates
// @Description	Returns a list of the recurring templates of the authenticated user
// @Tags			Recurring
// @Produce		json
// @Success		200			{object}	RecurringListResponse
// @Failure		400			{object}	RecurringListResponse
// @Failure		500			{object}	RecurringListResponse
// @Param			type		query		string	false	"Filter by type"
// @Param			category	query		string	false	"Filter by category"
// @Param			frequency	query		string	false	"Filter by frequency"
// @Param			active		query		bool	false	"Only templates that still produce instances"
// @Param			offset		query		uint	false	"The offset of the first template returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of templates to return. Defaults to 50."
// @Router			/v1/recurring [get]
func (co Controller) GetRecurringTransactions(c *gin.Context) {
	user := currentUser(c)

	var filter RecurringQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, RecurringListResponse{Error: &s})
		return
	}

	// Get the parameters set in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()

	q := models.DB.
		Order("date ASC").
		Where("user_id = ? AND is_recurring = ?", user.ID, true).
		Where(&model, queryFields...)

	if slices.Contains(setFields, "Active") {
		if filter.Active {
			q = q.Where("next_occurrence IS NOT NULL")
		} else {
			q = q.Where("next_occurrence IS NULL")
		}
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 templates and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var templates []models.Transaction
	err := q.Find(&templates).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringListResponse{Error: &e})
		return
	}

	data := make([]RecurringTransaction, 0)
	for _, template := range templates {
		data = append(data, newRecurringTransaction(c, template))
	}

	c.JSON(http.StatusOK, RecurringListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Create recurring templates
// @Description	Creates recurring templates from the list of submitted template data. The response code is the highest response code number that a single creation would have caused. Instances are created by the materialization job, not by this endpoint.
// @Tags			Recurring
// @Produce		json
// @Success		201			{object}	RecurringCreateResponse
// @Failure		400			{object}	RecurringCreateResponse
// @Failure		404			{object}	RecurringCreateResponse
// @Failure		500			{object}	RecurringCreateResponse
// @Param			templates	body		[]RecurringEditable	true	"Templates"
// @Router			/v1/recurring [post]
func (co Controller) CreateRecurringTransactions(c *gin.Context) {
	var editables []RecurringEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, RecurringCreateResponse{Error: &e})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := RecurringCreateResponse{}

	for _, editable := range editables {
		model := editable.model(currentUser(c).ID)

		err := models.DB.Create(&model).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newRecurringTransaction(c, model)
		r.Data = append(r.Data, RecurringResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get recurring template
// @Description	Returns a specific recurring template
// @Tags			Recurring
// @Produce		json
// @Success		200	{object}	RecurringResponse
// @Failure		400	{object}	RecurringResponse
// @Failure		404	{object}	RecurringResponse
// @Failure		500	{object}	RecurringResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/recurring/{id} [get]
func (co Controller) GetRecurringTransaction(c *gin.Context) {
	template, err := getTransaction(c, true)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringResponse{Error: &e})
		return
	}

	data := newRecurringTransaction(c, template)
	c.JSON(http.StatusOK, RecurringResponse{Data: &data})
}

// @Summary		Update recurring template
// @Description	Updates a recurring template. Only values to be updated need to be specified. Templates whose series has ended can no longer be changed.
// @Tags			Recurring
// @Accept			json
// @Produce		json
// @Success		200			{object}	RecurringResponse
// @Failure		400			{object}	RecurringResponse
// @Failure		404			{object}	RecurringResponse
// @Failure		500			{object}	RecurringResponse
// @Param			id			path		string				true	"ID formatted as string"
// @Param			template	body		RecurringEditable	true	"Template"
// @Router			/v1/recurring/{id} [patch]
func (co Controller) UpdateRecurringTransaction(c *gin.Context) {
	template, err := getTransaction(c, true)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringResponse{Error: &e})
		return
	}

	if template.Schedule().State(time.Now()) == recurrence.Ended {
		e := models.ErrRecurrenceEnded.Error()
		c.JSON(http.StatusBadRequest, RecurringResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RecurringEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, RecurringResponse{Error: &e})
		return
	}

	var data RecurringEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, RecurringResponse{Error: &e})
		return
	}

	// The editable names the columns differently than the model
	for i, field := range updateFields {
		switch field {
		case "StartDate":
			updateFields[i] = "Date"
		case "EndDate":
			updateFields[i] = "RecurrenceEnd"
		}
	}

	update := data.model(template.UserID)

	// A new start date restarts the series there
	if slices.Contains(updateFields, any("Date")) {
		update.NextOccurrence = &update.Date
		updateFields = append(updateFields, "NextOccurrence")
	}

	err = models.DB.Model(&template).Select("", updateFields...).Updates(update).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringResponse{Error: &e})
		return
	}

	apiResource := newRecurringTransaction(c, template)
	c.JSON(http.StatusOK, RecurringResponse{Data: &apiResource})
}

// @Summary		Delete recurring template
// @Description	Deletes a recurring template and the instances it created for future dates. Past instances are kept.
// @Tags			Recurring
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/recurring/{id} [delete]
func (co Controller) DeleteRecurringTransaction(c *gin.Context) {
	template, err := getTransaction(c, true)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&template).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, gin.H{})
}

// @Summary		Get upcoming occurrences
// @Description	Returns a preview of the next occurrences of a recurring template. No instances are created. A template whose series ends before the requested count returns fewer entries.
// @Tags			Recurring
// @Produce		json
// @Success		200		{object}	UpcomingResponse
// @Failure		400		{object}	UpcomingResponse
// @Failure		404		{object}	UpcomingResponse
// @Failure		500		{object}	UpcomingResponse
// @Param			id		path		string	true	"ID formatted as string"
// @Param			count	query		int		false	"Number of occurrences to preview. Defaults to 5, at most 60."
// @Router			/v1/recurring/{id}/upcoming [get]
func (co Controller) GetUpcomingOccurrences(c *gin.Context) {
	template, err := getTransaction(c, true)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UpcomingResponse{Error: &e})
		return
	}

	count := 5
	if v := c.Query("count"); v != "" {
		count, err = strconv.Atoi(v)
		if err != nil || count < 1 || count > 60 {
			e := errCountParameter.Error()
			c.JSON(http.StatusBadRequest, UpcomingResponse{Error: &e})
			return
		}
	}

	data := make([]UpcomingOccurrence, 0)
	for _, date := range template.Schedule().Upcoming(count) {
		data = append(data, UpcomingOccurrence{Date: date, Amount: template.Amount})
	}

	c.JSON(http.StatusOK, UpcomingResponse{Data: data})
}

// @Summary		Cancel recurring template
// @Description	Permanently ends the series of a recurring template. Existing instances are kept, no further ones will be created. Cancelling is final, a cancelled template cannot be reactivated.
// @Tags			Recurring
// @Produce		json
// @Success		200	{object}	RecurringResponse
// @Failure		400	{object}	RecurringResponse
// @Failure		404	{object}	RecurringResponse
// @Failure		500	{object}	RecurringResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/recurring/{id}/cancel [post]
func (co Controller) CancelRecurringTransaction(c *gin.Context) {
	template, err := getTransaction(c, true)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringResponse{Error: &e})
		return
	}

	now := time.Now()
	if template.Schedule().State(now) == recurrence.Ended {
		e := models.ErrRecurrenceEnded.Error()
		c.JSON(http.StatusBadRequest, RecurringResponse{Error: &e})
		return
	}

	template.SetSchedule(template.Schedule().Cancelled(now))
	err = models.DB.Save(&template).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringResponse{Error: &e})
		return
	}

	apiResource := newRecurringTransaction(c, template)
	c.JSON(http.StatusOK, RecurringResponse{Data: &apiResource})
}
