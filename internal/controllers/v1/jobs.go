package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hemanthscode/fintrack/internal/httputil"
	"github.com/hemanthscode/fintrack/internal/jobs"
)

// RegisterJobRoutes registers the routes for manually triggering the
// background jobs with the RouterGroup that is passed.
func (co Controller) RegisterJobRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/materialize", httputil.OptionsPost)
	r.POST("/materialize", co.RunMaterialization)

	r.OPTIONS("/alerts", httputil.OptionsPost)
	r.POST("/alerts", co.RunAlertEvaluation)

	r.OPTIONS("/rollover", httputil.OptionsPost)
	r.POST("/rollover", co.RunRollover)
}

type MaterializationResponse struct {
	Data *jobs.MaterializationSummary `json:"data"` // Counters of the completed run
}

type AlertRunResponse struct {
	Data *jobs.AlertSummary `json:"data"` // Counters of the completed run
}

type RolloverResponse struct {
	Data *jobs.RolloverSummary `json:"data"` // Counters of the completed run
}

// @Summary		Run materialization
// @Description	Runs the materialization of due recurring templates immediately instead of waiting for the schedule. The run covers all users. Re-running is safe, an occurrence is never materialized twice.
// @Tags			Jobs
// @Produce		json
// @Success		200	{object}	MaterializationResponse
// @Router			/v1/jobs/materialize [post]
func (co Controller) RunMaterialization(c *gin.Context) {
	summary := co.Jobs.MaterializeDue()
	c.JSON(http.StatusOK, MaterializationResponse{Data: &summary})
}

// @Summary		Run alert evaluation
// @Description	Recomputes the progress of all current budgets from their transactions and sends alert mails for the ones crossing their threshold. The run covers all users.
// @Tags			Jobs
// @Produce		json
// @Success		200	{object}	AlertRunResponse
// @Router			/v1/jobs/alerts [post]
func (co Controller) RunAlertEvaluation(c *gin.Context) {
	summary := co.Jobs.EvaluateAlerts()
	c.JSON(http.StatusOK, AlertRunResponse{Data: &summary})
}

// @Summary		Run rollover
// @Description	Rolls all budgets whose period has ended over into a fresh period. The run covers all users.
// @Tags			Jobs
// @Produce		json
// @Success		200	{object}	RolloverResponse
// @Router			/v1/jobs/rollover [post]
func (co Controller) RunRollover(c *gin.Context) {
	summary := co.Jobs.RolloverExpired()
	c.JSON(http.StatusOK, RolloverResponse{Data: &summary})
}
