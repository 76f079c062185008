package jobs

import (
	"errors"
	"time"

	"github.com/hemanthscode/fintrack/internal/ledger"
	"github.com/hemanthscode/fintrack/internal/models"
	"github.com/rs/zerolog/log"
)

// MaterializeDue creates concrete transactions for all recurring templates
// with a pending occurrence and advances each template past the occurrences
// it materialized.
//
// The sweep is safe to re-run: the unique index over (template_id, date)
// rejects a second instance for an occurrence that was already materialized,
// in which case the template is only advanced.
func (j *Jobs) MaterializeDue() MaterializationSummary {
	now := time.Now().In(time.UTC)
	summary := MaterializationSummary{}

	var templates []models.Transaction
	err := models.DB.
		Where("is_recurring = ? AND next_occurrence IS NOT NULL AND next_occurrence <= ?", true, now).
		Where("recurrence_end IS NULL OR recurrence_end >= ?", now).
		Find(&templates).Error
	if err != nil {
		log.Error().Err(err).Msg("loading due recurring templates failed")
		summary.Errors++
		return summary
	}

	for i := range templates {
		err := j.materializeTemplate(&templates[i], now)
		if err != nil {
			log.Error().Err(err).Str("template", templates[i].ID.String()).Msg("materializing template failed")
			summary.Errors++
			continue
		}

		summary.Processed++
	}

	log.Info().
		Int("processed", summary.Processed).
		Int("errors", summary.Errors).
		Msg("materialization sweep finished")

	return summary
}

// materializeTemplate creates one instance per pending occurrence. Each
// occurrence is committed together with the advanced template before the next
// one is considered, so a crash mid-template never skips or doubles an
// occurrence.
func (j *Jobs) materializeTemplate(template *models.Transaction, now time.Time) error {
	for {
		schedule := template.Schedule()
		if !schedule.Due(now) {
			return nil
		}

		occurrence := *schedule.NextOccurrence

		instance := template.Instance(occurrence)
		err := models.DB.Create(&instance).Error
		if err != nil && !errors.Is(err, models.ErrInstanceExists) {
			return err
		}
		if errors.Is(err, models.ErrInstanceExists) {
			log.Debug().
				Str("template", template.ID.String()).
				Time("occurrence", occurrence).
				Msg("instance already materialized, only advancing template")
		} else {
			// Best-effort: a failing progress update never aborts materialization
			if err := ledger.Record(instance, now); err != nil {
				log.Error().Err(err).Str("transaction", instance.ID.String()).Msg("updating budget progress failed")
			}
		}

		template.SetSchedule(schedule.Advanced(now))
		err = models.DB.Save(template).Error
		if err != nil {
			return err
		}
	}
}
