package scraper

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/job-tracker/internal/fetch"
	"github.com/jonathan/job-tracker/internal/llm"
)

// FetchFunc returns the HTML of a page.
type FetchFunc func(ctx context.Context, url string) (string, error)

// Analyzer summarizes a job description.
type Analyzer interface {
	Analyze(ctx context.Context, description string) (*llm.Analysis, error)
}

// LLMAnalyzer analyzes descriptions with an LLM client.
type LLMAnalyzer struct {
	Client llm.Client
}

// Analyze implements Analyzer.
func (a *LLMAnalyzer) Analyze(ctx context.Context, description string) (*llm.Analysis, error) {
	return llm.AnalyzeDescription(ctx, a.Client, description)
}

// Options configures a Scraper. Nil funcs fall back to the fetch package.
type Options struct {
	Fetch  FetchFunc
	Render FetchFunc
	// UseBrowser enables the headless-browser fallback.
	UseBrowser bool
	// Analyzer is optional; without one the analysis fields stay empty.
	Analyzer Analyzer
	Verbose  bool
}

// Scraper scrapes job pages, caching results per URL. Concurrent calls for
// one URL share a single scrape.
type Scraper struct {
	opts     Options
	group    singleflight.Group
	renderer *fetch.Renderer // nil when Options.Render was supplied

	mu    sync.RWMutex
	cache map[string]JobInfo
}

// New creates a Scraper.
func New(opts Options) *Scraper {
	verbose := opts.Verbose
	if opts.Fetch == nil {
		opts.Fetch = httpFetch(fetch.NewFetcher(nil), verbose)
	}
	s := &Scraper{opts: opts, cache: make(map[string]JobInfo)}
	if s.opts.Render == nil {
		s.renderer = fetch.NewRenderer(fetch.RenderOptions{
			WaitSelector: ".top-card-layout, .jobs-unified-top-card",
			Verbose:      verbose,
		})
		s.opts.Render = s.renderer.Render
	}
	return s
}

// Close stops the headless browser, if one was started.
func (s *Scraper) Close() error {
	if s.renderer == nil {
		return nil
	}
	return s.renderer.Close()
}

func httpFetch(f *fetch.Fetcher, verbose bool) FetchFunc {
	return func(ctx context.Context, url string) (string, error) {
		result, err := f.Fetch(ctx, url)
		if err != nil {
			return "", err
		}
		if result.AuthWall && verbose {
			log.Printf("[scraper] %s redirected to sign-in at %s", url, result.FinalURL)
		}
		return result.HTML, nil
	}
}

// Scrape returns the job information for url, from the cache when present.
func (s *Scraper) Scrape(ctx context.Context, url string) (JobInfo, error) {
	if info, ok := s.cached(url); ok {
		if s.opts.Verbose {
			log.Printf("[scraper] cache hit for %s", url)
		}
		return info, nil
	}

	// The shared scrape must outlive any one caller's cancellation.
	ch := s.group.DoChan(url, func() (any, error) {
		if info, ok := s.cached(url); ok {
			return info, nil
		}
		info, err := s.scrape(context.WithoutCancel(ctx), url)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cache[url] = info
		s.mu.Unlock()
		return info, nil
	})

	select {
	case <-ctx.Done():
		return JobInfo{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return JobInfo{}, res.Err
		}
		return res.Val.(JobInfo).Clone(), nil
	}
}

// Forget drops url from the cache.
func (s *Scraper) Forget(url string) {
	s.mu.Lock()
	delete(s.cache, url)
	s.mu.Unlock()
}

func (s *Scraper) cached(url string) (JobInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.cache[url]
	if !ok {
		return JobInfo{}, false
	}
	return info.Clone(), true
}

func (s *Scraper) scrape(ctx context.Context, url string) (JobInfo, error) {
	html, err := s.opts.Fetch(ctx, url)
	if err != nil {
		if !s.opts.UseBrowser {
			return JobInfo{}, fmt.Errorf("error accessing the job listing: %w", err)
		}
		log.Printf("[scraper] HTTP fetch failed for %s, trying browser: %v", url, err)
		return s.scrapeRendered(ctx, url)
	}

	info, err := Extract(html, url)
	if err != nil {
		return JobInfo{}, fmt.Errorf("could not extract job data: %w", err)
	}

	if s.opts.UseBrowser && NeedsBrowser(html, info) {
		if s.opts.Verbose {
			log.Printf("[scraper] static page for %s looks incomplete, rendering", url)
		}
		rendered, err := s.scrapeRendered(ctx, url)
		if err == nil {
			info = rendered
		} else {
			log.Printf("[scraper] browser fallback failed for %s: %v", url, err)
			s.analyze(ctx, &info)
		}
		return info, nil
	}

	s.analyze(ctx, &info)
	return info, nil
}

func (s *Scraper) scrapeRendered(ctx context.Context, url string) (JobInfo, error) {
	html, err := s.opts.Render(ctx, url)
	if err != nil {
		return JobInfo{}, fmt.Errorf("error accessing the job listing: %w", err)
	}
	info, err := Extract(html, url)
	if err != nil {
		return JobInfo{}, fmt.Errorf("could not extract job data: %w", err)
	}
	s.analyze(ctx, &info)
	return info, nil
}

// analyze fills the analysis fields. Failures are logged and leave them empty.
func (s *Scraper) analyze(ctx context.Context, info *JobInfo) {
	if s.opts.Analyzer == nil || info.Description == NotAvailable {
		return
	}
	if s.opts.Verbose {
		log.Printf("[scraper] analyzing description for %s", info.URL)
	}
	a, err := s.opts.Analyzer.Analyze(ctx, info.Description)
	if err != nil {
		log.Printf("[scraper] analysis failed for %s: %v", info.URL, err)
		return
	}
	info.Skills = []string(a.Skills)
	info.ExperienceLevel = a.ExperienceLevel
	info.Responsibilities = []string(a.Responsibilities)
	info.SalaryRange = a.SalaryRange
	info.WorkMode = a.WorkMode
}
