// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-tracker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

//nolint:errcheck // verbose output; write errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobRecord outputs a summary of a newly ingested record.
func (p *Printer) PrintJobRecord(r *types.JobRecord) {
	if r == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Title:     %s\n", r.Title)
	fmt.Fprintf(&sb, "Company:   %s\n", r.Company)
	fmt.Fprintf(&sb, "Location:  %s\n", r.Location)
	fmt.Fprintf(&sb, "Type:      %s\n", r.JobType)
	fmt.Fprintf(&sb, "Level:     %s\n", r.ExperienceLevel)
	fmt.Fprintf(&sb, "Work mode: %s\n", r.WorkMode)
	fmt.Fprintf(&sb, "Salary:    %s\n", r.SalaryRange)

	writeList(&sb, "Skills", r.Skills)
	writeList(&sb, "Responsibilities", r.Responsibilities)

	p.printBox("INGESTED JOB", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScrapingStatus outputs the ingestion counters.
func (p *Printer) PrintScrapingStatus(s types.ScrapingStatus) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Completed:    %d\n", s.CompletedJobs)
	fmt.Fprintf(&sb, "In queue:     %d\n", s.JobsInQueue)
	fmt.Fprintf(&sb, "Last scraped: %s", s.LastScrapedLabel())
	if s.Error != nil {
		fmt.Fprintf(&sb, "\nLast error:   %s", *s.Error)
	}
	p.printBox("SCRAPING STATUS", sb.String())
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s:\n", label)
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", items[i])
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
}

// truncate shortens s to width runes, marking the cut with "...".
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
