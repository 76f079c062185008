// Package mail delivers budget alert notifications.
package mail

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	gomail "github.com/wneessen/go-mail"
)

// An Alert is the payload of a budget threshold notification.
type Alert struct {
	Recipient string
	Category  string
	Spent     decimal.Decimal
	Limit     decimal.Decimal
}

// Sender delivers alerts. Implementations must be safe for concurrent use.
type Sender interface {
	Send(alert Alert) error
}

// NewFromEnv returns an SMTP sender configured from the SMTP_* environment
// variables, or a no-op sender when SMTP_HOST is not set.
func NewFromEnv() Sender {
	host, ok := os.LookupEnv("SMTP_HOST")
	if !ok {
		log.Info().Msg("SMTP_HOST is not set, budget alerts will not be delivered")
		return NopSender{}
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}

	return &SMTPSender{
		Host:     host,
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SMTPSender delivers alerts over SMTP.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Send delivers one alert email.
func (s *SMTPSender) Send(alert Alert) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(alert.Recipient); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	percentage := decimal.Zero
	if alert.Limit.IsPositive() {
		percentage = alert.Spent.Div(alert.Limit).Mul(decimal.NewFromInt(100)).Round(0)
	}

	msg.Subject(fmt.Sprintf("Budget alert: %s at %s%%", alert.Category, percentage))
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"You have spent %s of your %s budget of %s (%s%%).\n\nFinTrack",
		alert.Spent, alert.Category, alert.Limit, percentage,
	))

	client, err := gomail.NewClient(s.Host,
		gomail.WithPort(s.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.Username),
		gomail.WithPassword(s.Password),
	)
	if err != nil {
		return fmt.Errorf("creating mail client failed: %w", err)
	}

	return client.DialAndSend(msg)
}

// NopSender drops all alerts. Used when no SMTP server is configured.
type NopSender struct{}

// Send logs the alert instead of delivering it.
func (NopSender) Send(alert Alert) error {
	log.Debug().
		Str("recipient", alert.Recipient).
		Str("category", alert.Category).
		Msg("mail delivery disabled, dropping alert")
	return nil
}
