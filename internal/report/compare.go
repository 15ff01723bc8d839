package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jonathan/job-tracker/internal/llm"
	"github.com/jonathan/job-tracker/internal/types"
)

// FieldComparison is one row of a comparison.
type FieldComparison struct {
	Field string `json:"field"`
	Job1  string `json:"job1"`
	Job2  string `json:"job2"`
	Same  bool   `json:"same"`
}

// Comparison lines up two records field by field. The description is left
// out of Fields; Summary holds the optional LLM write-up.
type Comparison struct {
	Job1    types.JobRecord   `json:"-"`
	Job2    types.JobRecord   `json:"-"`
	Fields  []FieldComparison `json:"fields"`
	Summary string            `json:"summary,omitempty"`
}

// Compare builds the field-by-field comparison of a and b.
func Compare(a, b types.JobRecord) *Comparison {
	cols := ExportColumns()
	rowA, rowB := exportRow(a), exportRow(b)

	c := &Comparison{Job1: a, Job2: b}
	for i, field := range cols {
		if field == types.LabelDescription {
			continue
		}
		c.Fields = append(c.Fields, FieldComparison{
			Field: field,
			Job1:  rowA[i],
			Job2:  rowB[i],
			Same:  rowA[i] == rowB[i],
		})
	}
	return c
}

// Differences returns the fields whose values differ.
func (c *Comparison) Differences() []FieldComparison {
	var out []FieldComparison
	for _, f := range c.Fields {
		if !f.Same {
			out = append(out, f)
		}
	}
	return out
}

// Summarize asks the LLM for a prose comparison of the two descriptions.
func (c *Comparison) Summarize(ctx context.Context, client llm.Client) error {
	summary, err := llm.CompareDescriptions(ctx, client,
		llm.ComparisonSubject{Title: c.Job1.Title, Company: c.Job1.Company, Description: c.Job1.Description},
		llm.ComparisonSubject{Title: c.Job2.Title, Company: c.Job2.Company, Description: c.Job2.Description},
	)
	if err != nil {
		return err
	}
	c.Summary = summary
	return nil
}

// WriteTable prints the comparison as aligned columns, then the summary.
func (c *Comparison) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "FIELD\tJOB 1\tJOB 2\tSAME\n")
	for _, f := range c.Fields {
		same := "no"
		if f.Same {
			same = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Field, oneLine(f.Job1), oneLine(f.Job2), same)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if c.Summary != "" {
		if _, err := fmt.Fprintf(w, "\n%s\n", c.Summary); err != nil {
			return err
		}
	}
	return nil
}

// oneLine keeps multi-line notes from breaking the table.
func oneLine(s string) string {
	r := []rune(strings.Join(strings.Fields(s), " "))
	if len(r) > 60 {
		return string(r[:57]) + "..."
	}
	return string(r)
}
