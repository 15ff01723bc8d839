package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/types"
	"github.com/jonathan/job-tracker/internal/view"
)

var (
	listFilter   string
	listSearch   string
	listSort     string
	listDir      string
	listPage     int
	listPageSize int
	listJSON     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked jobs",
	Long: "List tracked jobs one page at a time. Favorites always come first. A search term " +
		"matches title, company or location and ignores --filter.",
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", view.FilterAll, "Status to show, or \"all\"")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Case-insensitive search over title, company and location")
	listCmd.Flags().StringVar(&listSort, "sort", view.FieldDateApplied, "Field to sort by")
	listCmd.Flags().StringVar(&listDir, "dir", string(view.Desc), "Sort direction: asc or desc")
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "Page number, starting at 1")
	listCmd.Flags().IntVar(&listPageSize, "page-size", 0, "Jobs per page (default from config)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print the page as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(_ context.Context, app *App) error {
		pageSize := listPageSize
		if pageSize <= 0 {
			pageSize = app.cfg.PageSize
		}
		q := view.Query{
			Filter:    listFilter,
			Search:    listSearch,
			SortField: listSort,
			Direction: view.Direction(listDir),
			Page:      listPage,
			PageSize:  pageSize,
		}
		if err := q.Validate(); err != nil {
			return err
		}

		page := view.Apply(app.store.Records(), q)
		out := cmd.OutOrStdout()

		if listJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(page)
		}

		if page.TotalCount == 0 {
			fmt.Fprintln(out, "No jobs found.")
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\t\tTITLE\tCOMPANY\tLOCATION\tSTATUS\tAPPLIED\tINTERVIEW")
		for _, r := range page.Records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				shortID(r.ID), marks(r), r.Title, r.Company, r.Location, r.Status,
				r.DateApplied.Local().Format("2006-01-02"), interviewLabel(r))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nPage %d of %d (%d jobs)\n", q.Page, page.TotalPages, page.TotalCount)
		return nil
	})
}

// marks renders the favorite and reminder flags.
func marks(r types.JobRecord) string {
	m := ""
	if r.Favorite {
		m += "*"
	}
	if r.Reminder {
		m += "!"
	}
	return m
}

func interviewLabel(r types.JobRecord) string {
	if r.InterviewDate == nil {
		return "-"
	}
	return r.InterviewDate.Local().Format("2006-01-02 15:04")
}
