package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/job-tracker/internal/types"
)

// ScrapeResult is the endpoint's answer, tagged by representation.
type ScrapeResult interface {
	isScrapeResult()
}

// TabularResult is a CSV response: a header line and a value line.
type TabularResult struct {
	Text string
}

// StructuredResult is a JSON object response.
type StructuredResult struct {
	Body []byte
}

func (TabularResult) isScrapeResult()    {}
func (StructuredResult) isScrapeResult() {}

// maxResponseBytes caps how much of a scrape response is read.
const maxResponseBytes = 4 << 20

// Client calls the remote scrape endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client for endpoint. timeout bounds each call; zero
// means no timeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Scrape asks the endpoint to scrape jobURL, requesting CSV. token, when set,
// is sent as a bearer credential.
func (c *Client) Scrape(ctx context.Context, jobURL, token string) (ScrapeResult, error) {
	payload, err := json.Marshal(types.ScrapeRequest{URL: jobURL, Format: "csv"})
	if err != nil {
		return nil, &ScrapeError{URL: jobURL, Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &ScrapeError{URL: jobURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ScrapeError{URL: jobURL, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &ScrapeError{URL: jobURL, StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ScrapeError{URL: jobURL, StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "text/csv") {
		return TabularResult{Text: string(body)}, nil
	}
	return StructuredResult{Body: body}, nil
}

// errorMessage pulls {"error": "..."} out of a failure body when present.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		return payload.Error
	}
	return ""
}
