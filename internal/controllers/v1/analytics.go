package v1

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hemanthscode/fintrack/internal/httputil"
	"github.com/hemanthscode/fintrack/internal/models"
	"github.com/hemanthscode/fintrack/internal/types"
	"github.com/shopspring/decimal"
)

// RegisterAnalyticsRoutes registers the routes for analytics with
// the RouterGroup that is passed.
func (co Controller) RegisterAnalyticsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/monthly", httputil.OptionsGet)
	r.GET("/monthly", co.GetMonthlyAnalytics)

	r.OPTIONS("/insights", httputil.OptionsGet)
	r.GET("/insights", co.GetInsights)
}

// MonthlyAnalytics aggregates the concrete transactions of one calendar month.
// Recurring templates are not cash movements and are never included.
type MonthlyAnalytics struct {
	Month      types.Month            `json:"month" example:"2024-03-01T00:00:00Z"`
	Income     decimal.Decimal        `json:"income" example:"3500"`
	Expenses   decimal.Decimal        `json:"expenses" example:"2143.5"`
	Net        decimal.Decimal        `json:"net" example:"1356.5"` // Income minus expenses, negative in months that overspend
	Categories []models.CategoryTotal `json:"categories"`           // Expenses by category, largest first
}

type MonthlyAnalyticsResponse struct {
	Error *string           `json:"error" example:"the month query parameter must be formatted as YYYY-MM"` // The error, if any occurred
	Data  *MonthlyAnalytics `json:"data"`                                                                   // The monthly aggregates
}

type InsightsResponse struct {
	Error *string `json:"error" example:"the assistant is not available, no AI backend is configured"` // The error, if any occurred
	Data  *string `json:"data"`                                                                        // The generated commentary
}

// @Summary		Get monthly analytics
// @Description	Returns income, expenses and a per-category breakdown for one calendar month
// @Tags			Analytics
// @Produce		json
// @Success		200		{object}	MonthlyAnalyticsResponse
// @Failure		400		{object}	MonthlyAnalyticsResponse
// @Failure		500		{object}	MonthlyAnalyticsResponse
// @Param			month	query		string	false	"The month formatted as YYYY-MM. Defaults to the current month."
// @Router			/v1/analytics/monthly [get]
func (co Controller) GetMonthlyAnalytics(c *gin.Context) {
	data, err := co.monthlyAnalytics(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthlyAnalyticsResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, MonthlyAnalyticsResponse{Data: &data})
}

// @Summary		Get insights
// @Description	Returns an AI generated commentary over the spending of one calendar month
// @Tags			Analytics
// @Produce		json
// @Success		200		{object}	InsightsResponse
// @Failure		400		{object}	InsightsResponse
// @Failure		500		{object}	InsightsResponse
// @Failure		503		{object}	InsightsResponse
// @Param			month	query		string	false	"The month formatted as YYYY-MM. Defaults to the current month."
// @Router			/v1/analytics/insights [get]
func (co Controller) GetInsights(c *gin.Context) {
	if !co.AI.Enabled() {
		e := errChatDisabled.Error()
		c.JSON(http.StatusServiceUnavailable, InsightsResponse{Error: &e})
		return
	}

	data, err := co.monthlyAnalytics(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InsightsResponse{Error: &e})
		return
	}

	insights, err := co.AI.Insights(c.Request.Context(), analyticsSummary(data))
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, InsightsResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, InsightsResponse{Data: &insights})
}

// monthlyAnalytics aggregates the month requested in the query string,
// defaulting to the current one.
func (co Controller) monthlyAnalytics(c *gin.Context) (MonthlyAnalytics, error) {
	user := currentUser(c)

	month := types.MonthOf(time.Now())
	if v := c.Query("month"); v != "" {
		var err error
		month, err = types.ParseMonth(v)
		if err != nil {
			return MonthlyAnalytics{}, errMonthInvalid
		}
	}

	from := time.Time(month)
	until := time.Time(month.Next())

	income, err := models.TransactionsSum(user.ID, types.TypeIncome, from, until)
	if err != nil {
		return MonthlyAnalytics{}, err
	}

	expenses, err := models.TransactionsSum(user.ID, types.TypeExpense, from, until)
	if err != nil {
		return MonthlyAnalytics{}, err
	}

	categories, err := models.CategoryTotals(user.ID, types.TypeExpense, from, until)
	if err != nil {
		return MonthlyAnalytics{}, err
	}

	return MonthlyAnalytics{
		Month:      month,
		Income:     income,
		Expenses:   expenses,
		Net:        income.Sub(expenses),
		Categories: categories,
	}, nil
}

// analyticsSummary renders monthly aggregates as plain text for the AI.
func analyticsSummary(a MonthlyAnalytics) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Month: %s\n", a.Month)
	fmt.Fprintf(&b, "Income: %s\n", a.Income)
	fmt.Fprintf(&b, "Expenses: %s\n", a.Expenses)
	fmt.Fprintf(&b, "Net: %s\n", a.Net)

	if len(a.Categories) > 0 {
		b.WriteString("Expenses by category:\n")
		for _, category := range a.Categories {
			fmt.Fprintf(&b, "- %s: %s\n", category.Category, category.Total)
		}
	}

	return b.String()
}
