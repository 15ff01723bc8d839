// Package ingestion turns a submitted job URL into a normalized JobRecord,
// either through the remote scrape endpoint or the offline placeholder path.
package ingestion

import "fmt"

// ValidationError is returned when a submitted URL is rejected before any
// state changes.
type ValidationError struct {
	URL    string
	Reason string
	Cause  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid job URL %q: %s", e.URL, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// ScrapeError is returned when the scrape endpoint fails or its response
// cannot be decoded. StatusCode is 0 for transport and decode failures.
type ScrapeError struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *ScrapeError) Error() string {
	msg := e.Message
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("Error: %d", e.StatusCode)
		if e.Message != "" {
			msg += ": " + e.Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("scrape failed for %s: %s: %v", e.URL, msg, e.Cause)
	}
	return fmt.Sprintf("scrape failed for %s: %s", e.URL, msg)
}

func (e *ScrapeError) Unwrap() error {
	return e.Cause
}
