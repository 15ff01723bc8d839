//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
)

// Status is the application status of a tracked job.
type Status string

// Workflow states, in cycle order.
const (
	StatusApplied      Status = "applied"
	StatusResponded    Status = "responded"
	StatusInterviewing Status = "interviewing"
	StatusAccepted     Status = "accepted"
	StatusRejected     Status = "rejected"
)

// InitialStatus is the status every new record starts in.
const InitialStatus = StatusApplied

// statusCycle is the fixed advance order. rejected wraps back to applied.
var statusCycle = []Status{
	StatusApplied,
	StatusResponded,
	StatusInterviewing,
	StatusAccepted,
	StatusRejected,
}

// Statuses returns all workflow states in cycle order.
func Statuses() []Status {
	out := make([]Status, len(statusCycle))
	copy(out, statusCycle)
	return out
}

// ParseStatus converts a string into a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	for _, st := range statusCycle {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Valid reports whether s is one of the workflow states.
func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Next returns the successor of s in the cycle. Next is total: an invalid
// status restarts the cycle at applied.
func (s Status) Next() Status {
	for i, st := range statusCycle {
		if st == s {
			return statusCycle[(i+1)%len(statusCycle)]
		}
	}
	return InitialStatus
}

func (s Status) String() string {
	return string(s)
}

// UnmarshalJSON rejects statuses outside the workflow.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("status must be a string: %w", err)
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
