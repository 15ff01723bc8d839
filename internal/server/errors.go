// Package server provides the HTTP scrape service.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrValidation indicates request validation failure. Message is what the
// client sees.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrScrape indicates the posting could not be scraped.
type ErrScrape struct {
	URL   string
	Cause error
}

func (e *ErrScrape) Error() string {
	return fmt.Sprintf("scrape failed for %s: %v", e.URL, e.Cause)
}

func (e *ErrScrape) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var ve *ErrValidation
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
