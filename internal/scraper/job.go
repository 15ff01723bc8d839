package scraper

import (
	"encoding/csv"
	"fmt"
	"hash/fnv"
	"io"
	"strings"

	"github.com/jonathan/job-tracker/internal/types"
)

// Placeholders for fields the page does not carry.
const (
	NotSpecified = "Not specified"
	NotAvailable = "Not available"
	Unknown      = "Unknown"
)

// JobInfo is one scraped posting. Analysis fields stay empty when no
// analyzer is configured or the analysis failed.
type JobInfo struct {
	Title       string
	Company     string
	Description string
	Location    string
	DatePosted  string
	JobType     string
	Applicants  string
	URL         string

	Skills           []string
	ExperienceLevel  string
	Responsibilities []string
	SalaryRange      string
	WorkMode         string
}

// Clone returns a copy that shares no slices with j.
func (j JobInfo) Clone() JobInfo {
	j.Skills = append([]string(nil), j.Skills...)
	j.Responsibilities = append([]string(nil), j.Responsibilities...)
	return j
}

// CSVRecord returns the value row in types.ScrapeColumns order.
func (j JobInfo) CSVRecord() []string {
	return []string{
		j.Title,
		j.Company,
		j.Description,
		j.Location,
		j.DatePosted,
		j.JobType,
		j.Applicants,
		j.URL,
		strings.Join(j.Skills, types.ListSeparator),
		j.ExperienceLevel,
		strings.Join(j.Responsibilities, types.ListSeparator),
		j.SalaryRange,
		j.WorkMode,
	}
}

// WriteCSV writes the header and the single value row.
func (j JobInfo) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(types.ScrapeColumns); err != nil {
		return err
	}
	if err := cw.Write(j.CSVRecord()); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// URLHash is the stable identifier the service derives from a posting URL.
func URLHash(url string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(url))
	return fmt.Sprintf("%016x", h.Sum64())
}

// Response is the record-shaped JSON body of the scrape endpoint. Tracking
// fields carry the values a fresh record starts with; dateApplied is left
// for the client to fill.
type Response struct {
	ID               string       `json:"id"`
	URL              string       `json:"url"`
	Title            string       `json:"title"`
	Company          string       `json:"company"`
	DateApplied      *string      `json:"dateApplied"`
	Status           types.Status `json:"status"`
	Description      string       `json:"description"`
	Location         string       `json:"location"`
	JobType          string       `json:"jobType"`
	DatePosted       string       `json:"datePosted"`
	Applicants       string       `json:"applicants"`
	Skills           []string     `json:"skills"`
	ExperienceLevel  string       `json:"experienceLevel"`
	Responsibilities []string     `json:"responsibilities"`
	SalaryRange      string       `json:"salaryRange"`
	WorkMode         string       `json:"workMode"`
	Favorite         bool         `json:"favorite"`
	Reminder         bool         `json:"reminder"`
	Notes            string       `json:"notes"`
	InterviewDate    *string      `json:"interviewDate"`
}

// Response converts j into the JSON body, defaulting absent fields to "Unknown".
func (j JobInfo) Response() Response {
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}
	responsibilities := j.Responsibilities
	if responsibilities == nil {
		responsibilities = []string{}
	}
	return Response{
		ID:               URLHash(j.URL),
		URL:              j.URL,
		Title:            orUnknown(j.Title),
		Company:          orUnknown(j.Company),
		Status:           types.InitialStatus,
		Description:      j.Description,
		Location:         orUnknown(j.Location),
		JobType:          orUnknown(j.JobType),
		DatePosted:       orUnknown(j.DatePosted),
		Applicants:       orUnknown(j.Applicants),
		Skills:           skills,
		ExperienceLevel:  orUnknown(j.ExperienceLevel),
		Responsibilities: responsibilities,
		SalaryRange:      orUnknown(j.SalaryRange),
		WorkMode:         orUnknown(j.WorkMode),
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unknown
	}
	return s
}
