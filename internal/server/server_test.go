package server

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-tracker/internal/config"
	"github.com/jonathan/job-tracker/internal/ingestion"
	"github.com/jonathan/job-tracker/internal/scraper"
	"github.com/jonathan/job-tracker/internal/server/ratelimit"
	"github.com/jonathan/job-tracker/internal/session"
	"github.com/jonathan/job-tracker/internal/types"
)

const jobURL = "https://www.linkedin.com/jobs/view/12345"

type fakeScraper struct {
	mu   sync.Mutex
	info scraper.JobInfo
	err  error
	urls []string
}

func (f *fakeScraper) Scrape(_ context.Context, url string) (scraper.JobInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	if f.err != nil {
		return scraper.JobInfo{}, f.err
	}
	info := f.info
	info.URL = url
	return info, nil
}

func sampleInfo() scraper.JobInfo {
	return scraper.JobInfo{
		Title:            "Senior Go Engineer",
		Company:          "Acme Corp",
		Description:      "Build services, and more",
		Location:         "Berlin",
		DatePosted:       "2 days ago",
		JobType:          "Full-time",
		Applicants:       "Over 200 applicants",
		Skills:           []string{"Go", "SQL"},
		ExperienceLevel:  "senior",
		Responsibilities: []string{"Design APIs"},
		SalaryRange:      "€90k",
		WorkMode:         "hybrid",
	}
}

func noLimits() *ratelimit.Config {
	cfg := ratelimit.DefaultConfig()
	cfg.Enabled = false
	return cfg
}

func newTestServer(t *testing.T, cfg Config) http.Handler {
	t.Helper()
	if cfg.RateLimit == nil {
		cfg.RateLimit = noLimits()
	}
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s.Handler()
}

func post(t *testing.T, h http.Handler, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/scrape-job", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestNew_RequiresScraper(t *testing.T) {
	_, err := New(Config{RateLimit: noLimits()})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer(t, Config{Scraper: &fakeScraper{}})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestScrapeJob_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"empty body", "", "URL is required"},
		{"missing url", `{"format":"csv"}`, "URL is required"},
		{"blank url", `{"url":"   "}`, "URL is required"},
		{"not json", `url=x`, "invalid JSON body"},
		{"other site", `{"url":"https://example.com/jobs/1"}`, "Invalid LinkedIn job URL"},
		{"linkedin but not jobs", `{"url":"https://www.linkedin.com/in/someone"}`, "Invalid LinkedIn job URL"},
		{"plain http", `{"url":"http://www.linkedin.com/jobs/view/1"}`, "Invalid LinkedIn job URL"},
		{"unknown format", `{"url":"` + jobURL + `","format":"xml"}`, "format must be json or csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeScraper{info: sampleInfo()}
			h := newTestServer(t, Config{Scraper: fake})

			w := post(t, h, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantMsg, errorBody(t, w))
			assert.Empty(t, fake.urls)
		})
	}
}

func TestScrapeJob_JSON(t *testing.T) {
	fake := &fakeScraper{info: sampleInfo()}
	h := newTestServer(t, Config{Scraper: fake})

	w := post(t, h, `{"url":"`+jobURL+`"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, scraper.URLHash(jobURL), body["id"])
	assert.Equal(t, jobURL, body["url"])
	assert.Equal(t, "Senior Go Engineer", body["title"])
	assert.Equal(t, "applied", body["status"])
	assert.Nil(t, body["dateApplied"])
	assert.Nil(t, body["interviewDate"])
	assert.Equal(t, []any{"Go", "SQL"}, body["skills"])
	assert.Equal(t, false, body["favorite"])
	assert.Equal(t, []string{jobURL}, fake.urls)
}

func TestScrapeJob_CSV(t *testing.T) {
	h := newTestServer(t, Config{Scraper: &fakeScraper{info: sampleInfo()}})

	w := post(t, h, `{"url":"`+jobURL+`","format":"CSV"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Equal(t, "attachment;filename=job-"+scraper.URLHash(jobURL)+".csv", w.Header().Get("Content-Disposition"))

	rows, err := csv.NewReader(bytes.NewReader(w.Body.Bytes())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, types.ScrapeColumns, rows[0])
	assert.Equal(t, "Build services, and more", rows[1][2])
	assert.Equal(t, jobURL, rows[1][7])
	assert.Equal(t, "Go;SQL", rows[1][8])
}

func TestScrapeJob_ScrapeFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"generic", errors.New("error accessing the job listing: boom"), http.StatusInternalServerError},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, Config{Scraper: &fakeScraper{err: tt.err}})

			w := post(t, h, `{"url":"`+jobURL+`"}`)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.err.Error(), errorBody(t, w))
		})
	}
}

func TestScrapeJob_RequiresTokenWhenConfigured(t *testing.T) {
	tokens := session.NewTokenService(&config.JWTConfig{Secret: "test-secret-that-is-long-enough", ExpirationHours: 1})
	token, err := tokens.GenerateToken("ada")
	require.NoError(t, err)

	h := newTestServer(t, Config{Scraper: &fakeScraper{info: sampleInfo()}, Tokens: tokens})
	body := `{"url":"` + jobURL + `"}`

	w := post(t, h, body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", errorBody(t, w))

	w = post(t, h, body, "Authorization", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = post(t, h, body, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)

	// Health stays open.
	hw := httptest.NewRecorder()
	h.ServeHTTP(hw, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, hw.Code)
}

func TestScrapeJob_RateLimited(t *testing.T) {
	limits := ratelimit.DefaultConfig()
	limits.CleanupInterval = 0
	limits.EndpointConfigs = []ratelimit.EndpointConfig{
		{Path: ratelimit.ScrapePath, Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
	}
	h := newTestServer(t, Config{Scraper: &fakeScraper{info: sampleInfo()}, RateLimit: limits})
	body := `{"url":"` + jobURL + `"}`

	w := post(t, h, body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = post(t, h, body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, Config{Scraper: &fakeScraper{}})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/scrape-job", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

// The ingestion client must be able to consume both response formats.
func TestScrapeJob_RoundTripThroughIngestionClient(t *testing.T) {
	h := newTestServer(t, Config{Scraper: &fakeScraper{info: sampleInfo()}})
	ts := httptest.NewServer(h)
	defer ts.Close()

	client := ingestion.NewClient(ts.URL+"/api/scrape-job", 5*time.Second)
	result, err := client.Scrape(context.Background(), jobURL, "")
	require.NoError(t, err)

	fields, err := ingestion.Decode(result)
	require.NoError(t, err)
	assert.Equal(t, "Senior Go Engineer", fields.Title)
	assert.Equal(t, "Acme Corp", fields.Company)
	assert.Equal(t, []string{"Go", "SQL"}, fields.Skills)
	assert.Equal(t, []string{"Design APIs"}, fields.Responsibilities)
	assert.Equal(t, "hybrid", fields.WorkMode)
}

func TestStructuredResponseDecodes(t *testing.T) {
	body, err := json.Marshal(sampleInfo().Response())
	require.NoError(t, err)

	fields, err := ingestion.DecodeStructured(body)
	require.NoError(t, err)
	assert.Equal(t, "Senior Go Engineer", fields.Title)
	assert.Equal(t, []string{"Go", "SQL"}, fields.Skills)
	assert.Equal(t, "senior", fields.ExperienceLevel)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrValidation{Field: "url", Message: "x"}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(&ErrScrape{URL: jobURL, Cause: errors.New("x")}))
	assert.Equal(t, http.StatusGatewayTimeout, HTTPStatus(&ErrScrape{URL: jobURL, Cause: context.DeadlineExceeded}))
	assert.Equal(t, "validation error: url - bad", (&ErrValidation{Field: "url", Message: "bad"}).Error())
}
