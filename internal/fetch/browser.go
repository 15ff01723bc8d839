// Package fetch - browser.go renders pages that build their content with
// JavaScript in a shared headless Chrome.
package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the shortest description text accepted from a static
// fetch. Anything shorter is re-fetched in the browser.
const MinContentLength = 500

// DefaultBrowserTimeout bounds a single render.
const DefaultBrowserTimeout = 30 * time.Second

// showMoreButton expands LinkedIn's truncated description.
const showMoreButton = `.show-more-less-html__button--more`

// ShouldUseBrowser reports whether extracted text is too short to be the real
// posting, as happens on client-rendered pages and sign-in walls.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// RenderOptions configures a Renderer.
type RenderOptions struct {
	Timeout time.Duration
	// WaitSelector is awaited after the body is ready. A missing element is
	// not an error. Empty skips the wait.
	WaitSelector string
	Verbose      bool
}

// Renderer keeps one headless Chrome and opens a tab per render. Chrome is
// started on first use. Requires Chrome or Chromium on the host.
type Renderer struct {
	opts RenderOptions

	mu         sync.Mutex
	browserCtx context.Context
	shutdown   func()
}

// NewRenderer creates a Renderer. Call Close to stop Chrome.
func NewRenderer(opts RenderOptions) *Renderer {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultBrowserTimeout
	}
	return &Renderer{opts: opts}
}

func (r *Renderer) browser() (context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browserCtx != nil {
		return r.browserCtx, nil
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(),
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	if r.opts.Verbose {
		log.Printf("[BROWSER] headless Chrome started")
	}

	r.browserCtx = browserCtx
	r.shutdown = func() {
		cancelBrowser()
		cancelAlloc()
	}
	return browserCtx, nil
}

// Render loads url in a new tab and returns the rendered HTML. Cancelling ctx
// closes the tab.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	browserCtx, err := r.browser()
	if err != nil {
		return "", err
	}
	if r.opts.Verbose {
		log.Printf("[BROWSER] rendering %s", url)
	}

	tabCtx, closeTab := chromedp.NewContext(browserCtx)
	defer closeTab()
	stop := context.AfterFunc(ctx, closeTab)
	defer stop()
	tabCtx, cancel := context.WithTimeout(tabCtx, r.opts.Timeout)
	defer cancel()

	var html string
	if err := chromedp.Run(tabCtx, r.actions(url, &html)...); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	if r.opts.Verbose {
		log.Printf("[BROWSER] rendered %s: %d bytes", url, len(html))
	}
	return html, nil
}

func (r *Renderer) actions(url string, html *string) []chromedp.Action {
	actions := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	}
	if sel := r.opts.WaitSelector; sel != "" {
		// The top card never appears on a sign-in wall.
		wait := r.opts.Timeout / 3
		actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
			waitCtx, cancel := context.WithTimeout(ctx, wait)
			defer cancel()
			if err := chromedp.WaitVisible(sel, chromedp.ByQuery).Do(waitCtx); err != nil && r.opts.Verbose {
				log.Printf("[BROWSER] %s not visible: %v", sel, err)
			}
			return nil
		}))
	}
	return append(actions,
		chromedp.ActionFunc(func(ctx context.Context) error {
			_ = chromedp.Click(showMoreButton, chromedp.ByQuery, chromedp.AtLeast(0)).Do(ctx)
			return nil
		}),
		chromedp.OuterHTML("html", html),
	)
}

// Close stops Chrome if it was started. The Renderer may be reused after.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.shutdown != nil {
		r.shutdown()
		r.browserCtx, r.shutdown = nil, nil
	}
	return nil
}
