// Package types provides type definitions for structured data used throughout the job tracker.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"slices"
	"time"
)

// Defaults applied when the scraped source has no value for a field.
const (
	DefaultTitle       = "Unknown Title"
	DefaultCompany     = "Unknown Company"
	DefaultDescription = "No description available"
	DefaultLocation    = "Unknown Location"
	DefaultUnknown     = "Unknown"
	DefaultUnspecified = "Not specified"
)

// JobRecord is one tracked job application. The JSON form is the persisted
// snapshot format.
type JobRecord struct {
	ID               string     `json:"id"`
	URL              string     `json:"url"`
	Title            string     `json:"title"`
	Company          string     `json:"company"`
	Location         string     `json:"location"`
	JobType          string     `json:"jobType"`
	DatePosted       string     `json:"datePosted"`
	Applicants       string     `json:"applicants"`
	ExperienceLevel  string     `json:"experienceLevel"`
	SalaryRange      string     `json:"salaryRange"`
	WorkMode         string     `json:"workMode"`
	Skills           []string   `json:"skills"`
	Responsibilities []string   `json:"responsibilities"`
	Description      string     `json:"description"`
	DateApplied      time.Time  `json:"dateApplied"`
	Status           Status     `json:"status"`
	Favorite         bool       `json:"favorite"`
	Reminder         bool       `json:"reminder"`
	Notes            string     `json:"notes"`
	InterviewDate    *time.Time `json:"interviewDate"`
}

// JobFields holds the scraped, human-facing fields of a posting before it
// becomes a record. Empty strings mean "absent".
type JobFields struct {
	Title            string
	Company          string
	Description      string
	Location         string
	JobType          string
	DatePosted       string
	Applicants       string
	Skills           []string
	ExperienceLevel  string
	Responsibilities []string
	SalaryRange      string
	WorkMode         string
}

// NewJobRecord builds a fresh record for url from scraped fields, filling
// defaults and the tracking fields a new application starts with.
func NewJobRecord(id, url string, f JobFields, appliedAt time.Time) *JobRecord {
	skills := f.Skills
	if skills == nil {
		skills = []string{}
	}
	responsibilities := f.Responsibilities
	if responsibilities == nil {
		responsibilities = []string{}
	}

	return &JobRecord{
		ID:               id,
		URL:              url,
		Title:            orDefault(f.Title, DefaultTitle),
		Company:          orDefault(f.Company, DefaultCompany),
		Description:      orDefault(f.Description, DefaultDescription),
		Location:         orDefault(f.Location, DefaultLocation),
		JobType:          orDefault(f.JobType, DefaultUnknown),
		DatePosted:       orDefault(f.DatePosted, DefaultUnknown),
		Applicants:       orDefault(f.Applicants, DefaultUnknown),
		ExperienceLevel:  orDefault(f.ExperienceLevel, DefaultUnknown),
		SalaryRange:      orDefault(f.SalaryRange, DefaultUnspecified),
		WorkMode:         orDefault(f.WorkMode, DefaultUnspecified),
		Skills:           skills,
		Responsibilities: responsibilities,
		DateApplied:      appliedAt,
		Status:           InitialStatus,
		Favorite:         false,
		Reminder:         false,
		Notes:            "",
		InterviewDate:    nil,
	}
}

// Clone returns a deep copy of r.
func (r JobRecord) Clone() JobRecord {
	out := r
	out.Skills = slices.Clone(r.Skills)
	out.Responsibilities = slices.Clone(r.Responsibilities)
	if r.InterviewDate != nil {
		t := *r.InterviewDate
		out.InterviewDate = &t
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
