package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-tracker/internal/config"
	"github.com/jonathan/job-tracker/internal/ingestion"
	"github.com/jonathan/job-tracker/internal/llm"
	"github.com/jonathan/job-tracker/internal/session"
	"github.com/jonathan/job-tracker/internal/storage"
	"github.com/jonathan/job-tracker/internal/store"
	"github.com/jonathan/job-tracker/internal/types"
)

// App is the wired application state for one command invocation.
type App struct {
	cfg     *config.Config
	kv      storage.KV
	tokens  *session.TokenService // nil without a JWT secret
	gate    *session.Gate
	store   *store.Store
	adapter *ingestion.Adapter
}

// loadConfig resolves configuration: flags over file over environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("storage") {
		cfg.Storage = storageOpt
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDirOpt
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openApp opens storage and restores the session and record list.
func openApp(cmd *cobra.Command) (*App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()

	kv, err := storage.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	if cfg.Verbose {
		log.Printf("[VERBOSE] %s storage at %s", cfg.Storage, cfg.DataDir)
	}

	jwtCfg, err := cfg.JWT()
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	app := &App{cfg: cfg, kv: kv}
	if jwtCfg != nil {
		app.tokens = session.NewTokenService(jwtCfg)
		app.gate = session.Open(ctx, kv, app.tokens)
	} else {
		app.gate = session.Open(ctx, kv, nil)
	}

	app.store = store.New(kv)
	app.store.Load(ctx)
	app.adapter = ingestion.NewAdapterFromConfig(cfg, app.gate)
	return app, nil
}

// Close releases storage.
func (a *App) Close() error {
	return a.kv.Close()
}

// withApp runs fn with an opened App and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("[store] failed to close storage: %v", err)
		}
	}()
	return fn(cmd.Context(), app)
}

// resolve finds a record by full ID or a unique ID prefix.
func (a *App) resolve(ref string) (types.JobRecord, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return types.JobRecord{}, fmt.Errorf("job ID is required")
	}
	if r, ok := a.store.Get(ref); ok {
		return r, nil
	}

	var matches []types.JobRecord
	for _, r := range a.store.Records() {
		if strings.HasPrefix(r.ID, ref) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return types.JobRecord{}, fmt.Errorf("no job with ID %q", ref)
	case 1:
		return matches[0], nil
	default:
		return types.JobRecord{}, fmt.Errorf("job ID prefix %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// llmClient creates a Gemini client from the configured API key.
func (a *App) llmClient(ctx context.Context) (llm.Client, error) {
	if a.cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required for AI features")
	}
	return llm.NewClient(ctx, llm.DefaultConfig(), a.cfg.APIKey)
}

// keepGoing downgrades a failed snapshot write to a warning. The mutation
// stays applied in memory for the rest of the command.
func keepGoing(err error) error {
	var persistErr *store.PersistError
	if errors.As(err, &persistErr) {
		log.Printf("[store] WARNING: %v", err)
		return nil
	}
	return err
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
