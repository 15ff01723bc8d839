package view

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/jonathan/job-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id, title, company, location string, status types.Status) types.JobRecord {
	return types.JobRecord{
		ID:          id,
		URL:         "https://www.linkedin.com/jobs/view/" + id,
		Title:       title,
		Company:     company,
		Location:    location,
		Status:      status,
		DateApplied: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func ids(records []types.JobRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func fixture() []types.JobRecord {
	return []types.JobRecord{
		rec("1", "Backend Engineer", "Acme", "Berlin", types.StatusApplied),
		rec("2", "Data Analyst", "Globex", "Remote", types.StatusInterviewing),
		rec("3", "Frontend Engineer", "Initech", "Austin", types.StatusApplied),
		rec("4", "Product Manager", "Acme Labs", "London", types.StatusRejected),
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		search string
		want   []string
	}{
		{"all", "all", "", []string{"1", "2", "3", "4"}},
		{"empty filter means all", "", "", []string{"1", "2", "3", "4"}},
		{"by status", "applied", "", []string{"1", "3"}},
		{"status with no matches", "accepted", "", []string{}},
		{"search title case-insensitive", "all", "ENGINEER", []string{"1", "3"}},
		{"search company", "all", "acme", []string{"1", "4"}},
		{"search location", "all", "remote", []string{"2"}},
		{"search overrides filter", "rejected", "engineer", []string{"1", "3"}},
		{"search no match", "all", "plumber", []string{}},
		{"whitespace search overrides filter", "rejected", " ", []string{"1", "2", "3", "4"}},
		{"search keeps surrounding spaces", "all", " engineer ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(fixture(), tt.filter, tt.search)))
		})
	}
}

func TestSort_FavoritesFirst(t *testing.T) {
	records := fixture()
	records[2].Favorite = true // Frontend Engineer

	Sort(records, FieldTitle, Asc)
	assert.Equal(t, []string{"3", "1", "2", "4"}, ids(records))

	Sort(records, FieldTitle, Desc)
	assert.Equal(t, []string{"3", "4", "2", "1"}, ids(records))
}

func TestSort_Fields(t *testing.T) {
	early := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	records := fixture()
	records[0].DateApplied = late
	records[1].DateApplied = early
	records[2].InterviewDate = &late
	records[3].InterviewDate = &early
	records[1].Reminder = true

	tests := []struct {
		field string
		dir   Direction
		want  []string
	}{
		{FieldCompany, Asc, []string{"1", "4", "2", "3"}},
		{FieldLocation, Asc, []string{"3", "1", "4", "2"}},
		{FieldStatus, Asc, []string{"1", "3", "2", "4"}},
		{FieldDateApplied, Asc, []string{"3", "4", "2", "1"}},
		{FieldDateApplied, Desc, []string{"1", "2", "3", "4"}},
		{FieldInterviewDate, Asc, []string{"1", "2", "4", "3"}},
		{FieldReminder, Asc, []string{"1", "3", "4", "2"}},
		{FieldReminder, Desc, []string{"2", "1", "3", "4"}},
		{"", Asc, []string{"1", "2", "3", "4"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%s", tt.field, tt.dir), func(t *testing.T) {
			sorted := append([]types.JobRecord(nil), records...)
			Sort(sorted, tt.field, tt.dir)
			assert.Equal(t, tt.want, ids(sorted))
		})
	}
}

func TestSort_Stable(t *testing.T) {
	records := []types.JobRecord{
		rec("a", "Same", "X", "", types.StatusApplied),
		rec("b", "Same", "X", "", types.StatusApplied),
		rec("c", "Same", "X", "", types.StatusApplied),
	}
	Sort(records, FieldTitle, Desc)
	assert.Equal(t, []string{"a", "b", "c"}, ids(records))
}

func TestPaginate(t *testing.T) {
	records := make([]types.JobRecord, 23)
	for i := range records {
		records[i] = rec(fmt.Sprint(i), "T", "C", "L", types.StatusApplied)
	}

	tests := []struct {
		name    string
		page    int
		size    int
		wantLen int
		first   string
	}{
		{"first page", 1, 10, 10, "0"},
		{"last partial page", 3, 10, 3, "20"},
		{"past the end", 4, 10, 0, ""},
		{"zero page", 0, 10, 0, ""},
		{"negative page", -1, 10, 0, ""},
		{"huge page", math.MaxInt/10 + 2, 10, 0, ""},
		{"max page", math.MaxInt, 1, 0, ""},
		{"huge size", 1, math.MaxInt, 23, "0"},
		{"huge size second page", 2, math.MaxInt, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(records, tt.page, tt.size)
			require.Len(t, got, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.first, got[0].ID)
			}
		})
	}
}

func TestApply(t *testing.T) {
	records := make([]types.JobRecord, 0, 25)
	for i := 0; i < 25; i++ {
		status := types.StatusApplied
		if i%5 == 0 {
			status = types.StatusResponded
		}
		records = append(records, rec(fmt.Sprintf("%02d", i), fmt.Sprintf("Job %02d", i), "Acme", "Remote", status))
	}

	page := Apply(records, Query{Filter: "all", SortField: FieldTitle, Direction: Asc, Page: 3})
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 25, page.TotalCount)
	assert.Equal(t, []string{"20", "21", "22", "23", "24"}, ids(page.Records))

	page = Apply(records, Query{Filter: "responded", SortField: FieldTitle, Direction: Desc, Page: 1, PageSize: 2})
	assert.Equal(t, 5, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, []string{"20", "15"}, ids(page.Records))

	page = Apply(records, Query{Filter: "accepted", Page: 1})
	assert.Equal(t, 0, page.TotalPages)
	assert.Empty(t, page.Records)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	records := fixture()
	records[3].Favorite = true
	before := ids(records)

	_ = Apply(records, Query{Filter: "all", SortField: FieldTitle, Direction: Desc, Page: 1})
	assert.Equal(t, before, ids(records))
}

func TestQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		q       Query
		wantErr bool
	}{
		{"zero value", Query{}, false},
		{"full", Query{Filter: "interviewing", SortField: FieldDateApplied, Direction: Desc}, false},
		{"bad filter", Query{Filter: "offer"}, true},
		{"bad field", Query{SortField: "salary"}, true},
		{"bad direction", Query{Direction: "up"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
