package posts

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/scribe/internal/reviews"
	"github.com/JaimeStill/scribe/workflow"
)

// Domain errors for post operations.
var (
	ErrInvalidRequest = errors.New("invalid request body")
	ErrEmptyBatch     = errors.New("batch requires at least one input")
)

// MapHTTPStatus maps post domain errors, including wrapped workflow and
// review errors, to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, ErrEmptyBatch),
		errors.Is(err, workflow.ErrInvalidSource),
		errors.Is(err, workflow.ErrNotSuspended):
		return http.StatusBadRequest
	case errors.Is(err, reviews.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, reviews.ErrExpired):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}
