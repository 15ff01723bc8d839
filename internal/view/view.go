// Package view derives the displayed page of records: filter, then sort, then paginate.
package view

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jonathan/job-tracker/internal/types"
)

// FilterAll keeps every status.
const FilterAll = "all"

// DefaultPageSize is used when Query.PageSize is not positive.
const DefaultPageSize = 10

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sortable field names.
const (
	FieldTitle           = "title"
	FieldCompany         = "company"
	FieldLocation        = "location"
	FieldStatus          = "status"
	FieldJobType         = "jobType"
	FieldDatePosted      = "datePosted"
	FieldApplicants      = "applicants"
	FieldExperienceLevel = "experienceLevel"
	FieldSalaryRange     = "salaryRange"
	FieldWorkMode        = "workMode"
	FieldDateApplied     = "dateApplied"
	FieldInterviewDate   = "interviewDate"
	FieldReminder        = "reminder"
)

type comparator func(a, b *types.JobRecord) int

func byString(get func(r *types.JobRecord) string) comparator {
	return func(a, b *types.JobRecord) int { return strings.Compare(get(a), get(b)) }
}

func byTime(get func(r *types.JobRecord) time.Time) comparator {
	return func(a, b *types.JobRecord) int { return get(a).Compare(get(b)) }
}

var comparators = map[string]comparator{
	FieldTitle:           byString(func(r *types.JobRecord) string { return r.Title }),
	FieldCompany:         byString(func(r *types.JobRecord) string { return r.Company }),
	FieldLocation:        byString(func(r *types.JobRecord) string { return r.Location }),
	FieldStatus:          byString(func(r *types.JobRecord) string { return string(r.Status) }),
	FieldJobType:         byString(func(r *types.JobRecord) string { return r.JobType }),
	FieldDatePosted:      byString(func(r *types.JobRecord) string { return r.DatePosted }),
	FieldApplicants:      byString(func(r *types.JobRecord) string { return r.Applicants }),
	FieldExperienceLevel: byString(func(r *types.JobRecord) string { return r.ExperienceLevel }),
	FieldSalaryRange:     byString(func(r *types.JobRecord) string { return r.SalaryRange }),
	FieldWorkMode:        byString(func(r *types.JobRecord) string { return r.WorkMode }),
	FieldDateApplied:     byTime(func(r *types.JobRecord) time.Time { return r.DateApplied }),
	FieldInterviewDate: byTime(func(r *types.JobRecord) time.Time {
		// nil sorts as the epoch
		if r.InterviewDate == nil {
			return time.Unix(0, 0)
		}
		return *r.InterviewDate
	}),
	FieldReminder: func(a, b *types.JobRecord) int { return compareBool(a.Reminder, b.Reminder) },
}

// SortFields returns the accepted sort field names, sorted.
func SortFields() []string {
	fields := make([]string, 0, len(comparators))
	for f := range comparators {
		fields = append(fields, f)
	}
	slices.Sort(fields)
	return fields
}

// Query selects and orders a page of records.
type Query struct {
	Filter    string // "all" or a status value
	Search    string // case-insensitive substring; overrides Filter when non-empty
	SortField string
	Direction Direction
	Page      int // 1-based
	PageSize  int
}

// Validate rejects unknown filter, sort field and direction values.
func (q Query) Validate() error {
	if q.Filter != "" && q.Filter != FilterAll {
		if _, err := types.ParseStatus(q.Filter); err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
	}
	if _, ok := comparators[q.SortField]; q.SortField != "" && !ok {
		return fmt.Errorf("unknown sort field %q (valid: %s)", q.SortField, strings.Join(SortFields(), ", "))
	}
	switch q.Direction {
	case "", Asc, Desc:
	default:
		return fmt.Errorf("unknown sort direction %q", q.Direction)
	}
	return nil
}

// Page is one page of the derived view.
type Page struct {
	Records    []types.JobRecord
	TotalPages int
	TotalCount int // records after filtering
}

// Apply filters, sorts and paginates records. The input slice is not modified.
func Apply(records []types.JobRecord, q Query) Page {
	filtered := Filter(records, q.Filter, q.Search)
	Sort(filtered, q.SortField, q.Direction)

	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	return Page{
		Records:    Paginate(filtered, q.Page, size),
		TotalPages: (len(filtered) + size - 1) / size,
		TotalCount: len(filtered),
	}
}

// Filter returns the matching records as a new slice. A non-empty search
// matches title, company or location case-insensitively and ignores filter.
// The term is used as given, so whitespace is searched for like any text.
func Filter(records []types.JobRecord, filter, search string) []types.JobRecord {
	out := make([]types.JobRecord, 0, len(records))

	if search != "" {
		term := strings.ToLower(search)
		for _, r := range records {
			if strings.Contains(strings.ToLower(r.Title), term) ||
				strings.Contains(strings.ToLower(r.Company), term) ||
				strings.Contains(strings.ToLower(r.Location), term) {
				out = append(out, r)
			}
		}
		return out
	}

	for _, r := range records {
		if filter == "" || filter == FilterAll || string(r.Status) == filter {
			out = append(out, r)
		}
	}
	return out
}

// Sort orders records in place: favorites first, then by field in the given
// direction. Ties keep their relative order. An unknown or empty field only
// groups favorites.
func Sort(records []types.JobRecord, field string, dir Direction) {
	cmpField := comparators[field]
	slices.SortStableFunc(records, func(a, b types.JobRecord) int {
		if a.Favorite != b.Favorite {
			if a.Favorite {
				return -1
			}
			return 1
		}
		if cmpField == nil {
			return 0
		}
		c := cmpField(&a, &b)
		if dir == Desc {
			return -c
		}
		return c
	})
}

// Paginate returns page (1-based) of size records. Out-of-range pages,
// including page < 1, are empty.
func Paginate(records []types.JobRecord, page, size int) []types.JobRecord {
	if page < 1 || size < 1 || len(records) == 0 {
		return []types.JobRecord{}
	}
	// Compare page indexes so huge pages cannot overflow the offset.
	if page-1 > (len(records)-1)/size {
		return []types.JobRecord{}
	}
	start := (page - 1) * size
	end := start + min(size, len(records)-start)
	return records[start:end]
}

func compareBool(a, b bool) int {
	return cmp.Compare(boolInt(a), boolInt(b))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
