//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobRecord_Defaults(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := NewJobRecord("id-1", "https://www.linkedin.com/jobs/view/1", JobFields{}, now)

	assert.Equal(t, "id-1", rec.ID)
	assert.Equal(t, "https://www.linkedin.com/jobs/view/1", rec.URL)
	assert.Equal(t, DefaultTitle, rec.Title)
	assert.Equal(t, DefaultCompany, rec.Company)
	assert.Equal(t, DefaultDescription, rec.Description)
	assert.Equal(t, DefaultLocation, rec.Location)
	assert.Equal(t, DefaultUnknown, rec.JobType)
	assert.Equal(t, DefaultUnknown, rec.DatePosted)
	assert.Equal(t, DefaultUnknown, rec.Applicants)
	assert.Equal(t, DefaultUnknown, rec.ExperienceLevel)
	assert.Equal(t, DefaultUnspecified, rec.SalaryRange)
	assert.Equal(t, DefaultUnspecified, rec.WorkMode)
	assert.Empty(t, rec.Skills)
	assert.NotNil(t, rec.Skills)
	assert.Empty(t, rec.Responsibilities)
	assert.Equal(t, now, rec.DateApplied)
	assert.Equal(t, StatusApplied, rec.Status)
	assert.False(t, rec.Favorite)
	assert.False(t, rec.Reminder)
	assert.Empty(t, rec.Notes)
	assert.Nil(t, rec.InterviewDate)
}

func TestNewJobRecord_KeepsProvidedFields(t *testing.T) {
	rec := NewJobRecord("id-2", "u", JobFields{
		Title:   "Backend Engineer",
		Company: "Acme Corp",
		Skills:  []string{"Go", "SQL"},
	}, time.Now())

	assert.Equal(t, "Backend Engineer", rec.Title)
	assert.Equal(t, "Acme Corp", rec.Company)
	assert.Equal(t, []string{"Go", "SQL"}, rec.Skills)
}

func TestJobRecord_CloneIsDeep(t *testing.T) {
	interview := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	rec := JobRecord{Skills: []string{"Go"}, InterviewDate: &interview}

	clone := rec.Clone()
	clone.Skills[0] = "Rust"
	*clone.InterviewDate = interview.Add(time.Hour)

	assert.Equal(t, "Go", rec.Skills[0])
	assert.Equal(t, interview, *rec.InterviewDate)
}

func TestJobRecord_JSONFieldNames(t *testing.T) {
	rec := NewJobRecord("id", "u", JobFields{}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"id", "url", "jobType", "datePosted", "experienceLevel",
		"salaryRange", "workMode", "dateApplied", "interviewDate", "favorite", "reminder"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "applied", raw["status"])
	assert.Nil(t, raw["interviewDate"])
}
