package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/llm"
	"github.com/jonathan/job-tracker/internal/scraper"
	"github.com/jonathan/job-tracker/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the LinkedIn scrape service",
	Long: `Run the HTTP scrape service used by 'add' when logged in.

Endpoints:
  POST /api/scrape-job  {"url": "...", "format": "json|csv"}
  GET  /health

Set USE_BROWSER=true to render sign-in walled pages with headless Chrome and
GEMINI_API_KEY to fill skills, level, salary and work mode from the description.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(ctx context.Context, app *App) error {
		addr := app.cfg.ListenAddr
		if serveAddr != "" {
			addr = serveAddr
		}

		opts := scraper.Options{
			UseBrowser: app.cfg.UseBrowser,
			Verbose:    app.cfg.Verbose,
		}
		if app.cfg.APIKey != "" {
			client, err := llm.NewClient(ctx, llm.DefaultConfig(), app.cfg.APIKey)
			if err != nil {
				return fmt.Errorf("failed to create LLM client: %w", err)
			}
			defer func() { _ = client.Close() }()
			opts.Analyzer = &scraper.LLMAnalyzer{Client: client}
		} else {
			log.Printf("[serve] GEMINI_API_KEY not set: description analysis disabled")
		}

		jobs := scraper.New(opts)
		defer func() { _ = jobs.Close() }()

		srv, err := server.New(server.Config{
			Addr:    addr,
			Scraper: jobs,
			Tokens:  app.tokens,
			Verbose: app.cfg.Verbose,
		})
		if err != nil {
			return err
		}
		return srv.Start(ctx)
	})
}
