// Package fetch downloads job pages and turns their HTML into text for the
// scrape service.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultTimeout bounds one page request.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxBodyBytes caps how much of a page is read.
	DefaultMaxBodyBytes = 5 << 20
	// DefaultUserAgent identifies the scrape service.
	DefaultUserAgent = "Mozilla/5.0 (compatible; JobTracker/1.0)"
)

// Result is a fetched page.
type Result struct {
	URL         string
	FinalURL    string // after redirects
	HTML        string
	ContentType string
	StatusCode  int
	// AuthWall is set when LinkedIn redirected to its sign-in page.
	AuthWall bool
}

// Error is a failed fetch. StatusCode is zero when no response arrived.
type Error struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures a Fetcher.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	Headers      map[string]string
	MaxBodyBytes int64
}

// DefaultOptions returns the options used for job pages. Accept-Language
// keeps LinkedIn from serving a localized top card.
func DefaultOptions() *Options {
	return &Options{
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		MaxBodyBytes: DefaultMaxBodyBytes,
		Headers: map[string]string{
			"Accept":          "text/html,application/xhtml+xml",
			"Accept-Language": "en-US,en;q=0.9",
		},
	}
}

// Fetcher issues page requests over one reusable http.Client.
type Fetcher struct {
	client *http.Client
	opts   Options
}

// NewFetcher creates a Fetcher. A nil opts means DefaultOptions.
func NewFetcher(opts *Options) *Fetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	o := *opts
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Fetcher{client: &http.Client{Timeout: o.Timeout}, opts: o}
}

// URL fetches one page with a throwaway Fetcher.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	return NewFetcher(opts).Fetch(ctx, urlStr)
}

// Fetch retrieves urlStr. On a non-200 status the partial Result is returned
// alongside the error.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	for key, value := range f.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBodyBytes))
	if err != nil {
		return nil, &Error{URL: urlStr, StatusCode: resp.StatusCode, Message: "failed to read body", Cause: err}
	}

	result := &Result{
		URL:         urlStr,
		FinalURL:    resp.Request.URL.String(),
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
		AuthWall:    isAuthWall(resp.Request.URL),
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return result, &Error{URL: urlStr, StatusCode: resp.StatusCode, Message: "rate limited by site"}
	case resp.StatusCode != http.StatusOK:
		return result, &Error{URL: urlStr, StatusCode: resp.StatusCode, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return result, nil
}

// isAuthWall reports whether u is one of LinkedIn's sign-in interstitials.
func isAuthWall(u *url.URL) bool {
	if DetectPlatform(u.String()) != PlatformLinkedIn {
		return false
	}
	for _, prefix := range []string{"/authwall", "/login", "/signup", "/checkpoint"} {
		if strings.HasPrefix(u.Path, prefix) {
			return true
		}
	}
	return false
}

// ParseDocument parses HTML into a goquery document.
func ParseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// FirstText returns the trimmed text of the first element matching selector,
// or "". A comma-separated group matches in document order.
func FirstText(doc *goquery.Document, selector string) string {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	return cleanWhitespace(sel.Text())
}

// ExtractMainText returns the text of the first element matching one of
// contentSelectors, or of the body, after dropping page chrome and any
// noiseSelectors.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := ParseDocument(html)
	if err != nil {
		return "", err
	}

	doc.Find("nav, footer, header, script, style, noscript, .ad, .advertisement, .sidebar, .popup").Remove()
	if len(noiseSelectors) > 0 {
		doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
	}

	content := doc.Find("body")
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	return cleanWhitespace(content.Text()), nil
}

// JobPostingSelectors returns description selectors for job boards without a
// known layout.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		"#job-description",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
	}
}

// cleanWhitespace trims every line and drops blank ones.
func cleanWhitespace(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
