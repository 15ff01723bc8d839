package ingestion

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-tracker/internal/schemas"
	"github.com/jonathan/job-tracker/internal/types"
)

// Decode converts either result variant into scraped fields.
func Decode(result ScrapeResult) (types.JobFields, error) {
	switch r := result.(type) {
	case TabularResult:
		return DecodeTabular(r.Text)
	case StructuredResult:
		return DecodeStructured(r.Body)
	default:
		return types.JobFields{}, fmt.Errorf("unsupported scrape result %T", result)
	}
}

// DecodeTabular reads the first record after the header. Header labels and
// values are matched by position and trimmed; unknown labels are ignored.
func DecodeTabular(text string) (types.JobFields, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return types.JobFields{}, fmt.Errorf("missing header line: %w", err)
	}
	values, err := r.Read()
	if err == io.EOF {
		return types.JobFields{}, fmt.Errorf("missing value line")
	}
	if err != nil {
		return types.JobFields{}, fmt.Errorf("malformed value line: %w", err)
	}

	cells := make(map[string]string, len(header))
	for i, label := range header {
		label = strings.TrimSpace(strings.TrimPrefix(label, "\ufeff"))
		if i < len(values) {
			cells[label] = strings.TrimSpace(values[i])
		} else {
			cells[label] = ""
		}
	}

	return types.JobFields{
		Title:            cells[types.LabelTitle],
		Company:          cells[types.LabelCompany],
		Description:      cells[types.LabelDescription],
		Location:         cells[types.LabelLocation],
		JobType:          cells[types.LabelJobType],
		DatePosted:       cells[types.LabelDatePosted],
		Applicants:       cells[types.LabelApplicants],
		Skills:           SplitList(cells[types.LabelSkills]),
		ExperienceLevel:  cells[types.LabelExperienceLevel],
		Responsibilities: SplitList(cells[types.LabelResponsibilities]),
		SalaryRange:      cells[types.LabelSalaryRange],
		WorkMode:         cells[types.LabelWorkMode],
	}, nil
}

// structuredKeys pairs each human-readable label with the camelCase record
// key some endpoints emit instead.
var structuredKeys = struct {
	title, company, description, location, jobType, datePosted, applicants,
	skills, experienceLevel, responsibilities, salaryRange, workMode [2]string
}{
	title:            [2]string{types.LabelTitle, "title"},
	company:          [2]string{types.LabelCompany, "company"},
	description:      [2]string{types.LabelDescription, "description"},
	location:         [2]string{types.LabelLocation, "location"},
	jobType:          [2]string{types.LabelJobType, "jobType"},
	datePosted:       [2]string{types.LabelDatePosted, "datePosted"},
	applicants:       [2]string{types.LabelApplicants, "applicants"},
	skills:           [2]string{types.LabelSkills, "skills"},
	experienceLevel:  [2]string{types.LabelExperienceLevel, "experienceLevel"},
	responsibilities: [2]string{types.LabelResponsibilities, "responsibilities"},
	salaryRange:      [2]string{types.LabelSalaryRange, "salaryRange"},
	workMode:         [2]string{types.LabelWorkMode, "workMode"},
}

// DecodeStructured reads a JSON object response. Each field comes from its
// human-readable key, falling back to the camelCase key. Lists may be arrays
// or ;-joined strings.
func DecodeStructured(body []byte) (types.JobFields, error) {
	if err := schemas.ValidateScrapeResponse(body); err != nil {
		return types.JobFields{}, err
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return types.JobFields{}, fmt.Errorf("failed to parse response: %w", err)
	}

	k := structuredKeys
	return types.JobFields{
		Title:            text(obj, k.title),
		Company:          text(obj, k.company),
		Description:      text(obj, k.description),
		Location:         text(obj, k.location),
		JobType:          text(obj, k.jobType),
		DatePosted:       text(obj, k.datePosted),
		Applicants:       text(obj, k.applicants),
		Skills:           list(obj, k.skills),
		ExperienceLevel:  text(obj, k.experienceLevel),
		Responsibilities: list(obj, k.responsibilities),
		SalaryRange:      text(obj, k.salaryRange),
		WorkMode:         text(obj, k.workMode),
	}, nil
}

func text(obj map[string]json.RawMessage, keys [2]string) string {
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func list(obj map[string]json.RawMessage, keys [2]string) []string {
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var items []string
		if err := json.Unmarshal(raw, &items); err == nil && items != nil {
			return trimAll(items)
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return SplitList(s)
		}
	}
	return []string{}
}

// SplitList splits a ;-joined cell, trimming entries and dropping empty ones.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return trimAll(strings.Split(s, types.ListSeparator))
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
