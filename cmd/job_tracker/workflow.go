package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/store"
	"github.com/jonathan/job-tracker/internal/types"
)

var interviewClear bool

var advanceCmd = &cobra.Command{
	Use:   "advance <id>",
	Short: "Move a job to the next status",
	Long:  "Advance the status: applied -> responded -> interviewing -> accepted -> rejected -> applied.",
	Args:  cobra.ExactArgs(1),
	RunE: recordCommand(func(ctx context.Context, app *App, r types.JobRecord, _ []string) (string, error) {
		if err := keepGoing(app.store.Advance(ctx, r.ID)); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: %s -> %s", shortID(r.ID), r.Status, r.Status.Next()), nil
	}),
}

var setStatusCmd = &cobra.Command{
	Use:   "set-status <id> <status>",
	Short: "Set the status of a job directly",
	Args:  cobra.ExactArgs(2),
	RunE: recordCommand(func(ctx context.Context, app *App, r types.JobRecord, args []string) (string, error) {
		status, err := types.ParseStatus(strings.ToLower(args[0]))
		if err != nil {
			return "", err
		}
		if err := keepGoing(app.store.Update(ctx, r.ID, store.Patch{Status: &status})); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: %s", shortID(r.ID), status), nil
	}),
}

var favoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Toggle the favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE: recordCommand(func(ctx context.Context, app *App, r types.JobRecord, _ []string) (string, error) {
		if err := keepGoing(app.store.ToggleFavorite(ctx, r.ID)); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: favorite %s", shortID(r.ID), onOff(!r.Favorite)), nil
	}),
}

var reminderCmd = &cobra.Command{
	Use:   "reminder <id>",
	Short: "Toggle the reminder flag",
	Args:  cobra.ExactArgs(1),
	RunE: recordCommand(func(ctx context.Context, app *App, r types.JobRecord, _ []string) (string, error) {
		if err := keepGoing(app.store.ToggleReminder(ctx, r.ID)); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: reminder %s", shortID(r.ID), onOff(!r.Reminder)), nil
	}),
}

var notesCmd = &cobra.Command{
	Use:   "notes <id> [text...]",
	Short: "Replace the notes of a job",
	Long:  "Replace the notes of a job with the remaining arguments. With no text the notes are cleared.",
	Args:  cobra.MinimumNArgs(1),
	RunE: recordCommand(func(ctx context.Context, app *App, r types.JobRecord, args []string) (string, error) {
		notes := strings.Join(args, " ")
		if err := keepGoing(app.store.SetNotes(ctx, r.ID, notes)); err != nil {
			return "", err
		}
		if notes == "" {
			return fmt.Sprintf("%s: notes cleared", shortID(r.ID)), nil
		}
		return fmt.Sprintf("%s: notes saved", shortID(r.ID)), nil
	}),
}

var interviewCmd = &cobra.Command{
	Use:   "interview <id> [datetime]",
	Short: "Set or clear the interview date",
	Long: "Set the interview date. Accepted forms are 2006-01-02, \"2006-01-02 15:04\" and RFC 3339; " +
		"dates without a zone are local time.",
	Args: cobra.RangeArgs(1, 2),
	RunE: recordCommand(func(ctx context.Context, app *App, r types.JobRecord, args []string) (string, error) {
		switch {
		case interviewClear && len(args) > 0:
			return "", fmt.Errorf("give a datetime or --clear, not both")
		case !interviewClear && len(args) == 0:
			return "", fmt.Errorf("a datetime or --clear is required")
		}

		if interviewClear {
			if err := keepGoing(app.store.SetInterviewDate(ctx, r.ID, nil)); err != nil {
				return "", err
			}
			return fmt.Sprintf("%s: interview date cleared", shortID(r.ID)), nil
		}

		at, err := parseDateTime(args[0])
		if err != nil {
			return "", err
		}
		if err := keepGoing(app.store.SetInterviewDate(ctx, r.ID, &at)); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: interview on %s", shortID(r.ID), at.Format("2006-01-02 15:04")), nil
	}),
}

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Stop tracking a job",
	Args:    cobra.ExactArgs(1),
	RunE: recordCommand(func(ctx context.Context, app *App, r types.JobRecord, _ []string) (string, error) {
		if err := keepGoing(app.store.Remove(ctx, r.ID)); err != nil {
			return "", err
		}
		return fmt.Sprintf("Removed %s: %s at %s", shortID(r.ID), r.Title, r.Company), nil
	}),
}

func init() {
	interviewCmd.Flags().BoolVar(&interviewClear, "clear", false, "Remove the interview date")
	rootCmd.AddCommand(advanceCmd, setStatusCmd, favoriteCmd, reminderCmd, notesCmd, interviewCmd, removeCmd)
}

// recordCommand resolves args[0] to a record and passes the remaining args to fn.
func recordCommand(fn func(ctx context.Context, app *App, r types.JobRecord, args []string) (string, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *App) error {
			r, err := app.resolve(args[0])
			if err != nil {
				return err
			}
			msg, err := fn(ctx, app, r, args[1:])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		})
	}
}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q (use 2006-01-02, \"2006-01-02 15:04\" or RFC 3339)", s)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
