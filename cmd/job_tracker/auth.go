package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/types"
)

var (
	loginUsername string
	loginPassword string
	whoamiToken   bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Start a session so new jobs are scraped",
	Long: "Record a logged-in session. The password is not verified. When JWT_SECRET is set " +
		"the session carries a signed token that is forwarded to the scrape endpoint.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, app *App) error {
			req := types.LoginRequest{Username: loginUsername, Password: loginPassword}
			if err := app.gate.Login(ctx, req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", app.gate.Username())
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, app *App) error {
			if err := app.gate.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the session state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(_ context.Context, app *App) error {
			out := cmd.OutOrStdout()
			if !app.gate.IsAuthenticated() {
				fmt.Fprintln(out, "Not logged in")
				return nil
			}
			fmt.Fprintf(out, "Logged in as %s\n", app.gate.Username())
			if whoamiToken {
				if token := app.gate.Token(); token != "" {
					fmt.Fprintln(out, token)
				} else {
					fmt.Fprintln(out, "(no session token)")
				}
			}
			return nil
		})
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username (required)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (not verified)")
	_ = loginCmd.MarkFlagRequired("username")

	whoamiCmd.Flags().BoolVar(&whoamiToken, "token", false, "Also print the session token")

	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
