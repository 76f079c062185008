package jobs

import (
	"time"

	"github.com/hemanthscode/fintrack/internal/mail"
	"github.com/hemanthscode/fintrack/internal/models"
	"github.com/hemanthscode/fintrack/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// EvaluateAlerts recomputes the progress of every budget that has not alerted
// in its current period and sends one notification per budget that crossed
// its threshold.
//
// The recomputation from the transaction set is authoritative: it overwrites
// any drift the incremental ledger updates may have accumulated.
func (j *Jobs) EvaluateAlerts() AlertSummary {
	now := time.Now().In(time.UTC)
	summary := AlertSummary{}

	var budgets []models.Budget
	err := models.DB.
		Where("type = ? AND alert_sent = ? AND end_date >= ?", types.BudgetTypeBudget, false, now).
		Find(&budgets).Error
	if err != nil {
		log.Error().Err(err).Msg("loading budgets for alert evaluation failed")
		summary.Errors++
		return summary
	}

	for i := range budgets {
		sent, err := j.evaluateBudget(&budgets[i])
		if err != nil {
			log.Error().Err(err).Str("budget", budgets[i].ID.String()).Msg("evaluating budget failed")
			summary.Errors++
			continue
		}

		summary.Checked++
		if sent {
			summary.Alerts++
		}
	}

	log.Info().
		Int("checked", summary.Checked).
		Int("alerts", summary.Alerts).
		Int("errors", summary.Errors).
		Msg("alert evaluation finished")

	return summary
}

func (j *Jobs) evaluateBudget(budget *models.Budget) (bool, error) {
	spent, err := budget.Spent()
	if err != nil {
		return false, err
	}

	budget.Progress = spent
	err = models.DB.Model(budget).Update("progress", spent).Error
	if err != nil {
		return false, err
	}

	threshold := decimal.NewFromInt(int64(budget.AlertThreshold))
	if budget.Percentage().LessThan(threshold) {
		return false, nil
	}

	var user models.User
	err = models.DB.First(&user, "id = ?", budget.UserID).Error
	if err != nil {
		return false, err
	}

	err = j.Mail.Send(mail.Alert{
		Recipient: user.Email,
		Category:  budget.Category,
		Spent:     budget.Progress,
		Limit:     budget.Amount,
	})
	if err != nil {
		// A failed notification stays unmarked so the next sweep retries it
		return false, err
	}

	return true, models.DB.Model(budget).Update("alert_sent", true).Error
}

// RolloverExpired resets every budget whose period has passed: the start date
// moves to now, the end date is recomputed from the period, progress and the
// alert flag are cleared. Savings goals are long-running targets and are
// never reset.
func (j *Jobs) RolloverExpired() RolloverSummary {
	now := time.Now().In(time.UTC)
	summary := RolloverSummary{}

	var budgets []models.Budget
	err := models.DB.
		Where("type = ? AND end_date < ?", types.BudgetTypeBudget, now).
		Find(&budgets).Error
	if err != nil {
		log.Error().Err(err).Msg("loading expired budgets failed")
		summary.Errors++
		return summary
	}

	for i := range budgets {
		budgets[i].Rollover(now)

		err := models.DB.Save(&budgets[i]).Error
		if err != nil {
			log.Error().Err(err).Str("budget", budgets[i].ID.String()).Msg("rolling budget over failed")
			summary.Errors++
			continue
		}

		summary.Rolled++
	}

	log.Info().
		Int("rolled", summary.Rolled).
		Int("errors", summary.Errors).
		Msg("rollover sweep finished")

	return summary
}
