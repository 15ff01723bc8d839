package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/types"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show every field of a tracked job",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the record as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(_ context.Context, app *App) error {
		r, err := app.resolve(args[0])
		if err != nil {
			return err
		}
		if showJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(r)
		}
		printRecord(cmd.OutOrStdout(), r)
		return nil
	})
}

func printRecord(w io.Writer, r types.JobRecord) {
	field := func(label, value string) {
		fmt.Fprintf(w, "%-18s %s\n", label+":", value)
	}
	field("ID", r.ID)
	field("Title", r.Title)
	field("Company", r.Company)
	field("Location", r.Location)
	field("URL", r.URL)
	field("Status", string(r.Status))
	field("Date Applied", r.DateApplied.Local().Format("2006-01-02 15:04"))
	field("Interview", interviewLabel(r))
	field("Favorite", yesNo(r.Favorite))
	field("Reminder", yesNo(r.Reminder))
	field("Job Type", r.JobType)
	field("Date Posted", r.DatePosted)
	field("Applicants", r.Applicants)
	field("Experience Level", r.ExperienceLevel)
	field("Salary Range", r.SalaryRange)
	field("Work Mode", r.WorkMode)
	field("Skills", strings.Join(r.Skills, ", "))
	if len(r.Responsibilities) > 0 {
		fmt.Fprintln(w, "Responsibilities:")
		for _, item := range r.Responsibilities {
			fmt.Fprintf(w, "  - %s\n", item)
		}
	}
	if r.Notes != "" {
		fmt.Fprintf(w, "\nNotes:\n%s\n", r.Notes)
	}
	fmt.Fprintf(w, "\nDescription:\n%s\n", r.Description)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
