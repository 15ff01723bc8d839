package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/report"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all tracked jobs as CSV",
	Long:  "Write every tracked job as CSV, in insertion order. Writes to stdout unless --out is given.",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file path (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(_ context.Context, app *App) error {
		records := app.store.Records()

		var w io.Writer = cmd.OutOrStdout()
		if exportOut != "" {
			if dir := filepath.Dir(exportOut); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer func() { _ = f.Close() }()
			w = f
		}

		if err := report.WriteCSV(w, records); err != nil {
			return err
		}
		if exportOut != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d jobs to %s\n", len(records), exportOut)
		}
		return nil
	})
}
