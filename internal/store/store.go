// Package store owns the list of tracked job records and keeps it persisted.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jonathan/job-tracker/internal/schemas"
	"github.com/jonathan/job-tracker/internal/storage"
	"github.com/jonathan/job-tracker/internal/types"
)

// DuplicateURLError is returned by Add when a record with the same URL is
// already tracked. The store is left unchanged.
type DuplicateURLError struct {
	URL        string
	ExistingID string
}

func (e *DuplicateURLError) Error() string {
	return fmt.Sprintf("job already tracked: %s (id %s)", e.URL, e.ExistingID)
}

// PersistError is returned when a mutation was applied in memory but the
// snapshot could not be written.
type PersistError struct {
	Op    string
	Cause error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist after %s: %v", e.Op, e.Cause)
}

func (e *PersistError) Unwrap() error {
	return e.Cause
}

// Patch is a partial update. Nil fields are left alone. ID, URL and
// DateApplied are not patchable.
type Patch struct {
	Status             *types.Status
	Favorite           *bool
	Reminder           *bool
	Notes              *string
	InterviewDate      *time.Time
	ClearInterviewDate bool
}

// Store holds job records in insertion order. Every mutation writes the whole
// list to the backing KV under storage.KeyTrackedJobs.
type Store struct {
	mu      sync.RWMutex
	kv      storage.KV
	records []types.JobRecord
}

// New creates an empty store backed by kv. Call Load to restore a snapshot.
func New(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Load replaces the in-memory list with the persisted snapshot. A missing or
// malformed snapshot yields an empty list; Load never fails.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil

	data, err := s.kv.Get(ctx, storage.KeyTrackedJobs)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		log.Printf("[store] could not read %s, starting empty: %v", storage.KeyTrackedJobs, err)
		return
	}

	if err := schemas.ValidateJobRecords(data); err != nil {
		log.Printf("[store] ignoring malformed snapshot: %v", err)
		return
	}

	var records []types.JobRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("[store] ignoring malformed snapshot: %v", err)
		return
	}
	s.records = records
}

// Records returns a copy of all records in insertion order.
func (s *Store) Records() []types.JobRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.JobRecord, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

// Len returns the number of tracked records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Get returns the record with id.
func (s *Store) Get(id string) (types.JobRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.records[i].Clone(), true
	}
	return types.JobRecord{}, false
}

// Add appends a record. A record whose URL is already tracked is rejected
// with *DuplicateURLError and nothing is written. So is one with an unknown
// status, since it would fail validation on the next Load.
func (s *Store) Add(ctx context.Context, record types.JobRecord) error {
	if !record.Status.Valid() {
		return fmt.Errorf("invalid status %q", record.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.URL == record.URL {
			return &DuplicateURLError{URL: record.URL, ExistingID: r.ID}
		}
		if r.ID == record.ID {
			return fmt.Errorf("record id %s already exists", record.ID)
		}
	}

	s.records = append(s.records, record.Clone())
	return s.persist(ctx, "add")
}

// Update applies patch to the record with id. Unknown ids are a no-op.
func (s *Store) Update(ctx context.Context, id string, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	r := &s.records[i]
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return fmt.Errorf("invalid status %q", *patch.Status)
		}
		r.Status = *patch.Status
	}
	if patch.Favorite != nil {
		r.Favorite = *patch.Favorite
	}
	if patch.Reminder != nil {
		r.Reminder = *patch.Reminder
	}
	if patch.Notes != nil {
		r.Notes = *patch.Notes
	}
	if patch.ClearInterviewDate {
		r.InterviewDate = nil
	} else if patch.InterviewDate != nil {
		t := *patch.InterviewDate
		r.InterviewDate = &t
	}

	return s.persist(ctx, "update")
}

// Remove deletes the record with id. Unknown ids are a no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	return s.persist(ctx, "remove")
}

// Advance moves the record to the next workflow status.
func (s *Store) Advance(ctx context.Context, id string) error {
	r, ok := s.Get(id)
	if !ok {
		return nil
	}
	next := r.Status.Next()
	return s.Update(ctx, id, Patch{Status: &next})
}

// ToggleFavorite flips the favorite flag.
func (s *Store) ToggleFavorite(ctx context.Context, id string) error {
	r, ok := s.Get(id)
	if !ok {
		return nil
	}
	v := !r.Favorite
	return s.Update(ctx, id, Patch{Favorite: &v})
}

// ToggleReminder flips the reminder flag.
func (s *Store) ToggleReminder(ctx context.Context, id string) error {
	r, ok := s.Get(id)
	if !ok {
		return nil
	}
	v := !r.Reminder
	return s.Update(ctx, id, Patch{Reminder: &v})
}

// SetNotes replaces the notes.
func (s *Store) SetNotes(ctx context.Context, id, notes string) error {
	return s.Update(ctx, id, Patch{Notes: &notes})
}

// SetInterviewDate sets the interview date; nil clears it.
func (s *Store) SetInterviewDate(ctx context.Context, id string, at *time.Time) error {
	if at == nil {
		return s.Update(ctx, id, Patch{ClearInterviewDate: true})
	}
	return s.Update(ctx, id, Patch{InterviewDate: at})
}

func (s *Store) indexOf(id string) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// persist writes the whole list. Callers hold s.mu.
func (s *Store) persist(ctx context.Context, op string) error {
	records := s.records
	if records == nil {
		records = []types.JobRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return &PersistError{Op: op, Cause: err}
	}
	if err := s.kv.Put(ctx, storage.KeyTrackedJobs, data); err != nil {
		log.Printf("[store] persist after %s failed: %v", op, err)
		return &PersistError{Op: op, Cause: err}
	}
	return nil
}
