package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Exporter saves the raw text of a tabular scrape response.
type Exporter interface {
	Export(text string) (string, error)
}

// DirExporter writes job-<unix-millis>.csv files into a directory.
type DirExporter struct {
	Dir string
	now func() time.Time
}

// NewDirExporter creates an exporter writing into dir.
func NewDirExporter(dir string) *DirExporter {
	return &DirExporter{Dir: dir, now: time.Now}
}

// Export writes text and returns the file path.
func (e *DirExporter) Export(text string) (string, error) {
	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	now := time.Now
	if e.now != nil {
		now = e.now
	}
	path := filepath.Join(e.Dir, fmt.Sprintf("job-%d.csv", now().UnixMilli()))
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
