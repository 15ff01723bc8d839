package ingestion

import (
	"sync"
	"time"

	"github.com/jonathan/job-tracker/internal/types"
)

// Tracker maintains the process-local ScrapingStatus.
type Tracker struct {
	mu     sync.Mutex
	status types.ScrapingStatus
}

// Begin records a request entering the queue.
func (t *Tracker) Begin() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status.JobsInQueue++
	t.status.IsProcessing = true
}

// Succeed records a completed request.
func (t *Tracker) Succeed(at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.leave()
	t.status.CompletedJobs++
	t.status.LastScraped = at
	t.status.Error = nil
}

// Fail records a failed request with its message.
func (t *Tracker) Fail(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.leave()
	t.status.Error = &msg
}

// leave decrements the queue, never below zero. Callers hold t.mu.
func (t *Tracker) leave() {
	if t.status.JobsInQueue > 0 {
		t.status.JobsInQueue--
	}
	t.status.IsProcessing = t.status.JobsInQueue > 0
}

// Snapshot returns a copy of the current status.
func (t *Tracker) Snapshot() types.ScrapingStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.status
	if t.status.Error != nil {
		msg := *t.status.Error
		out.Error = &msg
	}
	return out
}
