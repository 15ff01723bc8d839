package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/report"
)

var (
	compareAI   bool
	compareJSON bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <id1> <id2>",
	Short: "Compare two tracked jobs side by side",
	Long:  "Compare two tracked jobs field by field. With --ai the descriptions are also compared by Gemini.",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().BoolVar(&compareAI, "ai", false, "Add an LLM summary of the descriptions (needs GEMINI_API_KEY)")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "Print the comparison as JSON")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, app *App) error {
		a, err := app.resolve(args[0])
		if err != nil {
			return err
		}
		b, err := app.resolve(args[1])
		if err != nil {
			return err
		}
		if a.ID == b.ID {
			return fmt.Errorf("cannot compare a job with itself")
		}

		c := report.Compare(a, b)
		if compareAI {
			client, err := app.llmClient(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()
			if err := c.Summarize(ctx, client); err != nil {
				return fmt.Errorf("failed to summarize: %w", err)
			}
		}

		if compareJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(c)
		}
		return c.WriteTable(cmd.OutOrStdout())
	})
}
