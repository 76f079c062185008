// Package jobs implements the background sweeps over transactions and
// budgets. Every sweep isolates per-item failures: one broken template or
// budget is logged and counted, the rest of the candidate set is still
// processed.
package jobs

import (
	"github.com/hemanthscode/fintrack/internal/mail"
)

// Jobs bundles the background sweeps with their collaborators.
type Jobs struct {
	Mail mail.Sender
}

// New returns jobs using the given alert sender.
func New(sender mail.Sender) *Jobs {
	return &Jobs{Mail: sender}
}

// MaterializationSummary is the result of one materialization sweep.
type MaterializationSummary struct {
	Processed int `json:"processed" example:"4"` // Templates that materialized at least one instance
	Errors    int `json:"errors" example:"0"`    // Templates that failed
}

// AlertSummary is the result of one alert evaluation sweep.
type AlertSummary struct {
	Checked int `json:"checked" example:"12"` // Budgets evaluated
	Alerts  int `json:"alerts" example:"1"`   // Notifications sent
	Errors  int `json:"errors" example:"0"`   // Budgets or notifications that failed
}

// RolloverSummary is the result of one period rollover sweep.
type RolloverSummary struct {
	Rolled int `json:"rolled" example:"2"` // Budgets reset to a fresh period
	Errors int `json:"errors" example:"0"` // Budgets that failed
}
