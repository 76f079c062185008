// Package scheduler runs the background jobs on cron schedules.
//
// The scheduler is an explicit service: jobs are registered at startup, there
// is no package-level state.
package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Scheduler invokes registered jobs on their cron expressions.
type Scheduler struct {
	cron *cron.Cron
}

// New returns a stopped scheduler.
func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{log.Logger}),
		)),
	}
}

// Add registers a job under the given cron expression.
func (s *Scheduler) Add(name, spec string, job func()) error {
	_, err := s.cron.AddFunc(spec, func() {
		log.Debug().Str("job", name).Msg("starting scheduled job")
		job()
	})
	if err != nil {
		return err
	}

	log.Info().Str("job", name).Str("schedule", spec).Msg("job scheduled")
	return nil
}

// Start begins invoking jobs in a background goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler. Jobs that are already running continue to
// completion.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// cronLogger adapts zerolog to the cron logging interface.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
