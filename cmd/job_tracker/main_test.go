package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-tracker/internal/scraper"
	"github.com/jonathan/job-tracker/internal/types"
	"github.com/jonathan/job-tracker/internal/view"
)

const (
	jobURL1 = "https://www.linkedin.com/jobs/view/1111"
	jobURL2 = "https://www.linkedin.com/jobs/view/2222"
)

// setupEnv points the CLI at a fresh data directory with no delays.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("JOB_TRACKER_DATA_DIR", dir)
	t.Setenv("JOB_TRACKER_STORAGE", "file")
	t.Setenv("MOCK_SCRAPE_DELAY", "0")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("SCRAPE_ENDPOINT", "http://127.0.0.1:1/api/scrape-job")
	return dir
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// run executes the root command in-process and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "job_tracker %s", strings.Join(args, " "))
	return out
}

func listJSONPage(t *testing.T, args ...string) view.Page {
	t.Helper()
	out := mustRun(t, append([]string{"list", "--json"}, args...)...)
	var page view.Page
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	return page
}

func showRecord(t *testing.T, id string) types.JobRecord {
	t.Helper()
	out := mustRun(t, "show", id, "--json")
	var r types.JobRecord
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	return r
}

func TestAdd_PlaceholderWhenLoggedOut(t *testing.T) {
	setupEnv(t)

	out := mustRun(t, "add", jobURL1)
	assert.Contains(t, out, "Software Developer at Example Tech Inc (applied)")

	page := listJSONPage(t)
	require.Len(t, page.Records, 1)
	r := page.Records[0]
	assert.Equal(t, jobURL1, r.URL)
	assert.Equal(t, types.StatusApplied, r.Status)
	assert.Equal(t, []string{"JavaScript", "React", "Node.js"}, r.Skills)

	_, err := run(t, "add", jobURL1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already tracking")
	assert.Len(t, listJSONPage(t).Records, 1)
}

func TestAdd_RejectsInvalidURL(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		name string
		url  string
	}{
		{"not linkedin", "https://example.com/jobs/view/1"},
		{"relative", "linkedin.com/jobs/view/1"},
		{"blank", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "add", tt.url)
			assert.Error(t, err)
		})
	}
	assert.Empty(t, listJSONPage(t).Records)
}

func TestWorkflowCommands(t *testing.T) {
	setupEnv(t)
	mustRun(t, "add", jobURL1)
	id := listJSONPage(t).Records[0].ID
	short := shortID(id)

	assert.Contains(t, mustRun(t, "advance", short), "applied -> responded")
	assert.Equal(t, types.StatusResponded, showRecord(t, id).Status)

	mustRun(t, "set-status", id, "Interviewing")
	assert.Equal(t, types.StatusInterviewing, showRecord(t, id).Status)

	_, err := run(t, "set-status", id, "offer")
	assert.Error(t, err)

	assert.Contains(t, mustRun(t, "favorite", id), "favorite on")
	assert.Contains(t, mustRun(t, "reminder", id), "reminder on")
	mustRun(t, "notes", id, "call", "back", "friday")
	mustRun(t, "interview", id, "2024-05-01 14:30")

	r := showRecord(t, id)
	assert.True(t, r.Favorite)
	assert.True(t, r.Reminder)
	assert.Equal(t, "call back friday", r.Notes)
	require.NotNil(t, r.InterviewDate)
	assert.True(t, time.Date(2024, 5, 1, 14, 30, 0, 0, time.Local).Equal(*r.InterviewDate))

	_, err = run(t, "interview", id, "2024-06-01", "--clear")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
	r = showRecord(t, id)
	require.NotNil(t, r.InterviewDate)
	assert.True(t, time.Date(2024, 5, 1, 14, 30, 0, 0, time.Local).Equal(*r.InterviewDate))

	assert.Contains(t, mustRun(t, "favorite", id), "favorite off")
	mustRun(t, "notes", id)
	mustRun(t, "interview", id, "--clear")

	r = showRecord(t, id)
	assert.False(t, r.Favorite)
	assert.Empty(t, r.Notes)
	assert.Nil(t, r.InterviewDate)

	_, err = run(t, "interview", id)
	assert.Error(t, err)

	assert.Contains(t, mustRun(t, "remove", id), "Removed")
	assert.Empty(t, listJSONPage(t).Records)
}

func TestResolve_Errors(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "show", "deadbeef")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no job with ID")

	_, err = run(t, "advance", " ")
	assert.Error(t, err)
}

func TestList_TableAndValidation(t *testing.T) {
	setupEnv(t)

	assert.Contains(t, mustRun(t, "list"), "No jobs found.")

	mustRun(t, "add", jobURL1)
	mustRun(t, "add", jobURL2)

	out := mustRun(t, "list", "--sort", "title", "--dir", "asc")
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Page 1 of 1 (2 jobs)")

	page := listJSONPage(t, "--page-size", "1", "--page", "2")
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Records, 1)

	page = listJSONPage(t, "--filter", "rejected")
	assert.Equal(t, 0, page.TotalCount)

	page = listJSONPage(t, "--filter", "rejected", "--search", "example tech")
	assert.Equal(t, 2, page.TotalCount)

	for _, args := range [][]string{
		{"list", "--sort", "salary"},
		{"list", "--dir", "up"},
		{"list", "--filter", "offer"},
	} {
		_, err := run(t, args...)
		assert.Error(t, err, strings.Join(args, " "))
	}
}

func TestSessionCommands(t *testing.T) {
	setupEnv(t)

	assert.Contains(t, mustRun(t, "whoami"), "Not logged in")

	_, err := run(t, "login")
	assert.Error(t, err)

	assert.Contains(t, mustRun(t, "login", "--username", "alice"), "Logged in as alice")
	out := mustRun(t, "whoami", "--token")
	assert.Contains(t, out, "Logged in as alice")
	assert.Contains(t, out, "(no session token)")

	mustRun(t, "logout")
	assert.Contains(t, mustRun(t, "whoami"), "Not logged in")
}

func TestAdd_ScrapesWhenLoggedIn(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("JWT_SECRET", "test-secret-for-cli-sessions")

	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req types.ScrapeRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		info := scraper.JobInfo{
			Title:            "Platform Engineer",
			Company:          "Initech",
			Description:      "Keep the lights on.",
			Location:         "Austin, TX",
			DatePosted:       "1 week ago",
			JobType:          "Full-time",
			Applicants:       "Over 200 applicants",
			URL:              req.URL,
			Skills:           []string{"Go", "Kubernetes"},
			ExperienceLevel:  "senior",
			Responsibilities: []string{"Run clusters"},
			SalaryRange:      "Not specified",
			WorkMode:         "hybrid",
		}
		_ = info.WriteCSV(w)
	}))
	defer ts.Close()
	t.Setenv("SCRAPE_ENDPOINT", ts.URL)

	mustRun(t, "login", "-u", "alice")
	out := mustRun(t, "add", jobURL1)
	assert.Contains(t, out, "Platform Engineer at Initech")
	assert.True(t, strings.HasPrefix(gotAuth, "Bearer "), "token forwarded: %q", gotAuth)

	r := listJSONPage(t).Records[0]
	assert.Equal(t, []string{"Go", "Kubernetes"}, r.Skills)
	assert.Equal(t, "hybrid", r.WorkMode)

	// tabular responses are also saved to the export directory
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	require.NoError(t, err)
	assert.NotEmpty(t, files)
}

func TestAdd_ScrapeFailureAddsNothing(t *testing.T) {
	setupEnv(t)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to scrape job data"}`))
	}))
	defer ts.Close()
	t.Setenv("SCRAPE_ENDPOINT", ts.URL)

	mustRun(t, "login", "-u", "alice")
	_, err := run(t, "add", jobURL1)
	require.Error(t, err)
	assert.Empty(t, listJSONPage(t).Records)
}

func TestExport(t *testing.T) {
	dir := setupEnv(t)
	mustRun(t, "add", jobURL1)

	out := mustRun(t, "export")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Job Title,Company Name"))

	path := filepath.Join(dir, "out", "jobs.csv")
	mustRun(t, "export", "--out", path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, out, string(data))
}

func TestCompare(t *testing.T) {
	setupEnv(t)
	mustRun(t, "add", jobURL1)
	mustRun(t, "add", jobURL2)
	page := listJSONPage(t)
	require.Len(t, page.Records, 2)
	a, b := page.Records[0].ID, page.Records[1].ID

	out := mustRun(t, "compare", a, b)
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, jobURL1)
	assert.Contains(t, out, jobURL2)

	out = mustRun(t, "compare", a, b, "--json")
	var got struct {
		Fields []struct {
			Field string `json:"field"`
			Same  bool   `json:"same"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	for _, f := range got.Fields {
		if f.Field == types.LabelURL {
			assert.False(t, f.Same)
		}
		if f.Field == types.LabelTitle {
			assert.True(t, f.Same)
		}
	}

	_, err := run(t, "compare", a, a)
	assert.Error(t, err)

	_, err = run(t, "compare", a, b, "--ai")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestDataDirFlagOverridesEnv(t *testing.T) {
	setupEnv(t)
	other := t.TempDir()

	mustRun(t, "--data-dir", other, "add", jobURL1)
	assert.Empty(t, listJSONPage(t).Records)
	assert.Len(t, listJSONPage(t, "--data-dir", other).Records, 1)
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2024-05-01", want: time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)},
		{in: "2024-05-01 09:15", want: time.Date(2024, 5, 1, 9, 15, 0, 0, time.Local)},
		{in: "2024-05-01T09:15", want: time.Date(2024, 5, 1, 9, 15, 0, 0, time.Local)},
		{in: "2024-05-01T09:15:00Z", want: time.Date(2024, 5, 1, 9, 15, 0, 0, time.UTC)},
		{in: "next tuesday", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDateTime(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}
