package ingestion

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/job-tracker/internal/config"
	"github.com/jonathan/job-tracker/internal/types"
)

// Session reports whether the remote path may be used and which token to send.
type Session interface {
	IsAuthenticated() bool
	Token() string
}

// Scraper fetches a scrape result for a job URL.
type Scraper interface {
	Scrape(ctx context.Context, jobURL, token string) (ScrapeResult, error)
}

// Options configures an Adapter.
type Options struct {
	MockDelay time.Duration
	Verbose   bool

	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// Adapter converts submitted URLs into new JobRecords.
type Adapter struct {
	session  Session
	scraper  Scraper
	exporter Exporter
	tracker  *Tracker
	opts     Options
}

// NewAdapter wires an adapter. exporter may be nil, in which case tabular
// responses are not saved.
func NewAdapter(session Session, scraper Scraper, exporter Exporter, opts Options) *Adapter {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Adapter{
		session:  session,
		scraper:  scraper,
		exporter: exporter,
		tracker:  &Tracker{},
		opts:     opts,
	}
}

// NewAdapterFromConfig builds the adapter with the HTTP client and directory
// exporter described by cfg.
func NewAdapterFromConfig(cfg *config.Config, session Session) *Adapter {
	client := NewClient(cfg.ScrapeEndpoint, time.Duration(cfg.ScrapeTimeout))
	exporter := NewDirExporter(cfg.ExportDirectory())
	return NewAdapter(session, client, exporter, Options{
		MockDelay: time.Duration(cfg.MockDelay),
		Verbose:   cfg.Verbose,
	})
}

// Status returns the current scraping status.
func (a *Adapter) Status() types.ScrapingStatus {
	return a.tracker.Snapshot()
}

// Ingest validates jobURL and produces a new record for it. It does not add
// the record to any store.
func (a *Adapter) Ingest(ctx context.Context, jobURL string) (*types.JobRecord, error) {
	jobURL = strings.TrimSpace(jobURL)
	if err := ValidateURL(jobURL); err != nil {
		return nil, err
	}

	a.tracker.Begin()

	var (
		fields types.JobFields
		err    error
	)
	if a.session != nil && a.session.IsAuthenticated() {
		fields, err = a.scrape(ctx, jobURL)
	} else {
		if a.opts.Verbose {
			log.Printf("[VERBOSE] No session, using placeholder data for %s", jobURL)
		}
		fields, err = placeholder(ctx, a.opts.MockDelay)
	}
	if err != nil {
		a.tracker.Fail(err.Error())
		return nil, err
	}

	now := a.opts.Now()
	record := types.NewJobRecord(a.opts.NewID(), jobURL, fields, now)
	a.tracker.Succeed(now)
	return record, nil
}

func (a *Adapter) scrape(ctx context.Context, jobURL string) (types.JobFields, error) {
	if a.opts.Verbose {
		log.Printf("[VERBOSE] Requesting scrape for %s", jobURL)
	}

	result, err := a.scraper.Scrape(ctx, jobURL, a.session.Token())
	if err != nil {
		var se *ScrapeError
		if errors.As(err, &se) {
			return types.JobFields{}, err
		}
		return types.JobFields{}, &ScrapeError{URL: jobURL, Message: "request failed", Cause: err}
	}

	fields, err := Decode(result)
	if err != nil {
		return types.JobFields{}, &ScrapeError{URL: jobURL, Message: "could not decode response", Cause: err}
	}

	if tab, ok := result.(TabularResult); ok && a.exporter != nil {
		path, err := a.exporter.Export(tab.Text)
		if err != nil {
			log.Printf("[ingest] export of scrape response failed: %v", err)
		} else if a.opts.Verbose {
			log.Printf("[VERBOSE] Saved scrape response to %s", path)
		}
	}

	return fields, nil
}

// ValidateURL checks a submission: non-empty, an absolute URL, and a
// LinkedIn job posting.
func ValidateURL(jobURL string) error {
	req := types.SubmitJobRequest{URL: jobURL}
	err := req.Validate()
	if err == nil {
		return nil
	}

	reason := "Please enter a valid LinkedIn job URL"
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "required":
			reason = "URL is required"
		case "url":
			reason = "URL must be absolute"
		case "contains":
			reason = "URL must be a LinkedIn job posting (linkedin.com/jobs/)"
		}
	}
	return &ValidationError{URL: jobURL, Reason: reason, Cause: err}
}
