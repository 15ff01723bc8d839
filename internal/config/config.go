// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/job-tracker/internal/storage"
)

// Defaults
const (
	DefaultScrapeEndpoint = "http://localhost:5000/api/scrape-job"
	DefaultScrapeTimeout  = 30 * time.Second
	DefaultMockDelay      = 1500 * time.Millisecond
	DefaultPageSize       = 10
	DefaultListenAddr     = ":5000"
	DefaultDataDirName    = ".job-tracker"
)

// Duration is a time.Duration that reads from JSON as "30s" or as milliseconds.
type Duration time.Duration

// UnmarshalJSON accepts a Go duration string or a number of milliseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var ms int64
	if err := json.Unmarshal(data, &ms); err != nil {
		return fmt.Errorf("duration must be a string or milliseconds: %w", err)
	}
	*d = Duration(time.Duration(ms) * time.Millisecond)
	return nil
}

// MarshalJSON writes the duration as a Go duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config represents the job tracker configuration. Values come from the
// environment and may be overlaid by a JSON file; CLI flags win over both.
type Config struct {
	// Storage
	Storage   string `json:"storage,omitempty"`    // file or sqlite
	DataDir   string `json:"data_dir,omitempty"`   // Directory holding snapshots
	ExportDir string `json:"export_dir,omitempty"` // Where scraped CSV responses are written

	// Ingestion
	ScrapeEndpoint string   `json:"scrape_endpoint,omitempty"` // Remote scrape endpoint URL
	ScrapeTimeout  Duration `json:"scrape_timeout,omitempty"`  // HTTP client timeout for scrape calls
	MockDelay      Duration `json:"mock_delay,omitempty"`      // Delay before the placeholder record is returned

	// Listing
	PageSize int `json:"page_size,omitempty"`

	// Session tokens
	JWTSecret          string `json:"jwt_secret,omitempty"`
	JWTExpirationHours int    `json:"jwt_expiration_hours,omitempty"`

	// Scrape service
	ListenAddr string `json:"listen_addr,omitempty"`
	APIKey     string `json:"api_key,omitempty"`     // Gemini API key for description analysis
	UseBrowser bool   `json:"use_browser,omitempty"` // Fall back to headless browser for short pages
	Verbose    bool   `json:"verbose,omitempty"`     // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	dataDir := DefaultDataDirName
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, DefaultDataDirName)
	}
	return Config{
		Storage:            storage.BackendFile,
		DataDir:            dataDir,
		ScrapeEndpoint:     DefaultScrapeEndpoint,
		ScrapeTimeout:      Duration(DefaultScrapeTimeout),
		MockDelay:          Duration(DefaultMockDelay),
		PageSize:           DefaultPageSize,
		JWTExpirationHours: defaultExpirationHours,
		ListenAddr:         DefaultListenAddr,
	}
}

// FromEnv returns Defaults overridden by environment variables.
func FromEnv() (*Config, error) {
	cfg := Defaults()

	setString(&cfg.Storage, "JOB_TRACKER_STORAGE")
	setString(&cfg.DataDir, "JOB_TRACKER_DATA_DIR")
	setString(&cfg.ExportDir, "JOB_TRACKER_EXPORT_DIR")
	setString(&cfg.ScrapeEndpoint, "SCRAPE_ENDPOINT")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.ListenAddr, "JOB_TRACKER_ADDR")
	setString(&cfg.APIKey, "GEMINI_API_KEY")

	if err := setDuration(&cfg.ScrapeTimeout, "SCRAPE_TIMEOUT"); err != nil {
		return nil, err
	}
	if err := setDuration(&cfg.MockDelay, "MOCK_SCRAPE_DELAY"); err != nil {
		return nil, err
	}
	if err := setInt(&cfg.PageSize, "JOB_TRACKER_PAGE_SIZE"); err != nil {
		return nil, err
	}
	if err := setInt(&cfg.JWTExpirationHours, "JWT_EXPIRATION_HOURS"); err != nil {
		return nil, err
	}
	if v := os.Getenv("USE_BROWSER"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid USE_BROWSER: %v", err)
		}
		cfg.UseBrowser = b
	}

	return &cfg, nil
}

// Load reads the environment and, when path is set, overlays the JSON config
// file on top. The result is validated.
func Load(path string) (*Config, error) {
	env, err := FromEnv()
	if err != nil {
		return nil, err
	}

	cfg := *env
	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = file.MergeWithDefaults(*env)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.Storage {
	case storage.BackendFile, storage.BackendSQLite:
	default:
		return fmt.Errorf("config error: 'storage' must be %q or %q, got %q", storage.BackendFile, storage.BackendSQLite, c.Storage)
	}

	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("config error: 'data_dir' is required")
	}
	if strings.TrimSpace(c.ScrapeEndpoint) == "" {
		return fmt.Errorf("config error: 'scrape_endpoint' is required")
	}

	// Validate numeric ranges
	if c.PageSize < 1 {
		return fmt.Errorf("config error: 'page_size' must be at least 1")
	}
	if c.ScrapeTimeout < 0 {
		return fmt.Errorf("config error: 'scrape_timeout' must be non-negative")
	}
	if c.MockDelay < 0 {
		return fmt.Errorf("config error: 'mock_delay' must be non-negative")
	}
	if c.JWTSecret != "" && c.JWTExpirationHours < 1 {
		return fmt.Errorf("config error: 'jwt_expiration_hours' must be at least 1")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values over the environment.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Storage == "" {
		result.Storage = defaults.Storage
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.ExportDir == "" {
		result.ExportDir = defaults.ExportDir
	}
	if result.ScrapeEndpoint == "" {
		result.ScrapeEndpoint = defaults.ScrapeEndpoint
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}

	// Numeric fields: use default if zero
	if result.ScrapeTimeout == 0 {
		result.ScrapeTimeout = defaults.ScrapeTimeout
	}
	if result.MockDelay == 0 {
		result.MockDelay = defaults.MockDelay
	}
	if result.PageSize == 0 {
		result.PageSize = defaults.PageSize
	}
	if result.JWTExpirationHours == 0 {
		result.JWTExpirationHours = defaults.JWTExpirationHours
	}

	// Bool fields: cannot distinguish unset from false, so true on either side wins
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// ExportDirectory returns where scraped CSV files go: ExportDir, or the data
// directory when unset.
func (c *Config) ExportDirectory() string {
	if c.ExportDir != "" {
		return c.ExportDir
	}
	return c.DataDir
}

// JWT returns the token configuration, or nil when no secret is configured.
func (c *Config) JWT() (*JWTConfig, error) {
	if c.JWTSecret == "" {
		return nil, nil
	}
	jc := &JWTConfig{Secret: c.JWTSecret, ExpirationHours: c.JWTExpirationHours, Issuer: TokenIssuer}
	if err := jc.Validate(); err != nil {
		return nil, err
	}
	return jc, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %v", key, err)
	}
	*dst = n
	return nil
}

// setDuration accepts "30s"-style values or bare milliseconds.
func setDuration(dst *Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	if ms, err := strconv.Atoi(v); err == nil {
		*dst = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %v", key, err)
	}
	*dst = Duration(d)
	return nil
}
