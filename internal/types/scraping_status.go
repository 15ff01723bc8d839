//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// ScrapingStatus is the process-local progress of ingestion requests.
// It is never persisted.
type ScrapingStatus struct {
	LastScraped   time.Time `json:"lastScraped"` // zero value means never
	JobsInQueue   int       `json:"jobsInQueue"`
	CompletedJobs int       `json:"completedJobs"`
	IsProcessing  bool      `json:"isProcessing"`
	Error         *string   `json:"error"`
}

// LastScrapedLabel renders LastScraped for display.
func (s ScrapingStatus) LastScrapedLabel() string {
	if s.LastScraped.IsZero() {
		return "Never"
	}
	return s.LastScraped.Local().Format("2006-01-02 15:04:05")
}
