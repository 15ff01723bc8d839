package ingestion

import (
	"context"
	"time"

	"github.com/jonathan/job-tracker/internal/types"
)

// PlaceholderFields returns the fixed posting used when no session is active.
func PlaceholderFields() types.JobFields {
	return types.JobFields{
		Title:            "Software Developer",
		Company:          "Example Tech Inc",
		Description:      "This is a mock job description that would be scraped from LinkedIn.",
		Location:         "Remote",
		JobType:          "Full-time",
		DatePosted:       "2 days ago",
		Applicants:       "25 applicants",
		Skills:           []string{"JavaScript", "React", "Node.js"},
		ExperienceLevel:  "Mid-level",
		Responsibilities: []string{"Develop web applications", "Collaborate with team"},
		SalaryRange:      "$100,000 - $130,000",
		WorkMode:         "Remote",
	}
}

// placeholder waits delay, then returns PlaceholderFields. It returns early
// with ctx.Err() if ctx is cancelled first.
func placeholder(ctx context.Context, delay time.Duration) (types.JobFields, error) {
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return types.JobFields{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return types.JobFields{}, err
	}
	return PlaceholderFields(), nil
}
