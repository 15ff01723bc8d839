// Package report renders tracked records for people: CSV export and
// side-by-side comparison.
package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/job-tracker/internal/types"
)

// Tracking columns appended after the scraped ones in an export.
const (
	LabelStatus        = "Status"
	LabelDateApplied   = "Date Applied"
	LabelFavorite      = "Favorite"
	LabelReminder      = "Reminder"
	LabelNotes         = "Notes"
	LabelInterviewDate = "Interview Date"
)

// ExportColumns returns the header of a record export.
func ExportColumns() []string {
	cols := append([]string(nil), types.ScrapeColumns...)
	return append(cols,
		LabelStatus, LabelDateApplied, LabelFavorite, LabelReminder, LabelNotes, LabelInterviewDate)
}

// exportRow returns the cells of r in ExportColumns order.
func exportRow(r types.JobRecord) []string {
	interview := ""
	if r.InterviewDate != nil {
		interview = r.InterviewDate.Format(time.RFC3339)
	}
	return []string{
		r.Title,
		r.Company,
		r.Description,
		r.Location,
		r.DatePosted,
		r.JobType,
		r.Applicants,
		r.URL,
		strings.Join(r.Skills, types.ListSeparator),
		r.ExperienceLevel,
		strings.Join(r.Responsibilities, types.ListSeparator),
		r.SalaryRange,
		r.WorkMode,
		string(r.Status),
		r.DateApplied.Format(time.RFC3339),
		strconv.FormatBool(r.Favorite),
		strconv.FormatBool(r.Reminder),
		r.Notes,
		interview,
	}
}

// WriteCSV writes a header and one row per record.
func WriteCSV(w io.Writer, records []types.JobRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns()); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(exportRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
