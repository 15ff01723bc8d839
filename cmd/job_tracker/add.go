package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/observability"
	"github.com/jonathan/job-tracker/internal/store"
)

var addCmd = &cobra.Command{
	Use:   "add <linkedin-job-url>",
	Short: "Track a new job application",
	Long: "Scrape a LinkedIn job posting and add it to the tracked list with status \"applied\". " +
		"Without a login a placeholder record is created instead.",
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, app *App) error {
		if !app.gate.IsAuthenticated() {
			fmt.Fprintln(cmd.ErrOrStderr(), "Not logged in: using placeholder data. Run 'job_tracker login' to scrape postings.")
		}

		record, err := app.adapter.Ingest(ctx, args[0])
		if err != nil {
			return err
		}

		err = app.store.Add(ctx, *record)
		var dup *store.DuplicateURLError
		if errors.As(err, &dup) {
			return fmt.Errorf("already tracking this posting as %s", shortID(dup.ExistingID))
		}
		if err := keepGoing(err); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Added %s: %s at %s (%s)\n", shortID(record.ID), record.Title, record.Company, record.Status)
		if app.cfg.Verbose {
			printer := observability.NewPrinter(cmd.ErrOrStderr())
			printer.PrintJobRecord(record)
			printer.PrintScrapingStatus(app.adapter.Status())
		}
		return nil
	})
}
