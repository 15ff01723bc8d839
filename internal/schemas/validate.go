// Package schemas validates persisted snapshots and structured scrape
// responses against the embedded JSON Schemas.
package schemas

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/job-tracker/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// maxReported caps the field errors rendered by ValidationError.Error.
const maxReported = 5

// ValidationError lists the fields a document got wrong.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError is one violation. Field is a dotted path, "(root)" for the
// document itself.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	parts := make([]string, 0, min(len(ve.Errors), maxReported)+1)
	for i, fe := range ve.Errors {
		if i == maxReported {
			parts = append(parts, fmt.Sprintf("and %d more", len(ve.Errors)-maxReported))
			break
		}
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return fmt.Sprintf("%s: %s", ve.Schema, strings.Join(parts, "; "))
}

// DocumentError is returned when the document is not JSON at all.
type DocumentError struct {
	Schema string
	Cause  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: unreadable document: %v", e.Schema, e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// Schema is an embedded schema compiled on first use.
type Schema struct {
	name   string
	source string

	once     sync.Once
	compiled *gojsonschema.Schema
	err      error
}

var (
	jobRecords     = &Schema{name: "job_records.schema.json", source: schemas.JobRecords}
	scrapeResponse = &Schema{name: "scrape_response.schema.json", source: schemas.ScrapeResponse}
)

// ValidateJobRecords validates a serialized trackedJobs snapshot.
func ValidateJobRecords(data []byte) error {
	return jobRecords.Validate(data)
}

// ValidateScrapeResponse validates a structured scrape endpoint response body.
func ValidateScrapeResponse(data []byte) error {
	return scrapeResponse.Validate(data)
}

// Validate checks data against s.
func (s *Schema) Validate(data []byte) error {
	s.once.Do(func() {
		s.compiled, s.err = gojsonschema.NewSchema(gojsonschema.NewStringLoader(s.source))
	})
	if s.err != nil {
		return fmt.Errorf("compile %s: %w", s.name, s.err)
	}

	result, err := s.compiled.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &DocumentError{Schema: s.name, Cause: err}
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Schema: s.name, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}
