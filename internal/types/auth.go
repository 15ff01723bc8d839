//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// LoginRequest represents a login attempt against the session gate.
// The password is accepted as given; login is not verified against any backend.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password"`
}

// SessionMarker is the persisted proof of a logged-in session.
type SessionMarker struct {
	Username string `json:"username" validate:"required"`
	Token    string `json:"token,omitempty"`
}

// SubmitJobRequest is a user submission of a job-posting URL.
type SubmitJobRequest struct {
	URL string `json:"url" validate:"required,url,contains=linkedin.com/jobs/"`
}

// ScrapeRequest is the payload accepted by the scrape endpoint.
type ScrapeRequest struct {
	URL    string `json:"url" validate:"required,startswith=https://www.linkedin.com/jobs/"`
	Format string `json:"format,omitempty" validate:"omitempty,oneof=json csv JSON CSV"`
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SessionMarker using the validator.
func (m *SessionMarker) Validate() error {
	validate := validator.New()
	return validate.Struct(m)
}

// Validate validates the SubmitJobRequest using the validator.
func (r *SubmitJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ScrapeRequest using the validator.
func (r *ScrapeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
