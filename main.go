package main

import (
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/hemanthscode/fintrack/internal/ai"
	v1 "github.com/hemanthscode/fintrack/internal/controllers/v1"
	"github.com/hemanthscode/fintrack/internal/jobs"
	"github.com/hemanthscode/fintrack/internal/mail"
	"github.com/hemanthscode/fintrack/internal/models"
	"github.com/hemanthscode/fintrack/internal/router"
	"github.com/hemanthscode/fintrack/internal/scheduler"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// The background job schedules, in the server's local time.
const (
	materializeSchedule = "0 1 * * *"   // daily at 01:00
	alertSchedule       = "0 */6 * * *" // every six hours
	rolloverSchedule    = "30 0 * * *"  // daily at 00:30
)

func main() {
	// Load a .env file if one exists. The environment always wins.
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Create data directory
	dataDir := filepath.Join(".", "data")
	err := os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database and migrate the schema
	err = models.Connect(filepath.Join(dataDir, "fintrack.db"))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// The API base URL is needed to build absolute links in responses
	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		apiURL = "http://localhost:8080"
	}

	baseURL, err := url.Parse(apiURL)
	if err != nil {
		log.Fatal().Str("API_URL", apiURL).Msg("API_URL is not a valid URL")
	}

	co := v1.Controller{
		AI:   ai.NewFromEnv(),
		Jobs: jobs.New(mail.NewFromEnv()),
	}

	r, err := router.Config(baseURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	router.AttachRoutes(co, r.Group("/"))

	// Background jobs: materialization of due recurring templates, budget
	// alert evaluation and period rollovers
	s := scheduler.New()
	for _, job := range []struct {
		name string
		spec string
		run  func()
	}{
		{"materialize", materializeSchedule, func() { co.Jobs.MaterializeDue() }},
		{"alerts", alertSchedule, func() { co.Jobs.EvaluateAlerts() }},
		{"rollover", rolloverSchedule, func() { co.Jobs.RolloverExpired() }},
	} {
		if err := s.Add(job.name, job.spec, job.run); err != nil {
			log.Fatal().Str("job", job.name).Msg(err.Error())
		}
	}

	s.Start()
	defer s.Stop()

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
