package v1

import (
	"errors"
	"net/http"

	"github.com/hemanthscode/fintrack/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Authentication errors
var (
	errNoToken      = errors.New("this endpoint requires a bearer token in the Authorization header")
	errTokenInvalid = errors.New("the bearer token is invalid or has expired")
)

// Query parameter errors
var (
	errMonthInvalid   = errors.New("the month query parameter must be formatted as YYYY-MM")
	errCountParameter = errors.New("the count query parameter must be between 1 and 60")
)

// Upload errors
var (
	errNoFilePost       = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix  = errors.New("this endpoint only supports files of the following types")
	errFileNotAnImage   = errors.New("this endpoint only supports image files")
	errReceiptsDisabled = errors.New("receipt parsing is not available, no AI backend is configured")
)

// Assistant errors
var (
	errNoMessages   = errors.New("the chat request must contain at least one message")
	errChatDisabled = errors.New("the assistant is not available, no AI backend is configured")
)

// Budget errors
var (
	errProgressNotPositive = errors.New("the amount added to the progress must be larger than zero")
)
