package reviews

import (
	"errors"
	"net/http"
)

// Domain errors for pending-review operations.
var (
	ErrNotFound = errors.New("pending review not found")
	ErrExpired  = errors.New("pending review expired")
)

// MapHTTPStatus maps review domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrExpired) {
		return http.StatusGone
	}
	return http.StatusInternalServerError
}
