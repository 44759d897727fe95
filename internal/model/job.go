package model

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Job status constants.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusTimedOut  = "timed_out"
	StatusRejected  = "rejected"
)

// Probe kind constants.
const (
	KindSleep = "sleep"
	KindRead  = "read"
)

// validTransitions maps each status to the set of statuses it may transition to.
var validTransitions = map[string]map[string]bool{
	StatusPending: {
		StatusRunning:  true,
		StatusFailed:   true,
		StatusRejected: true,
	},
	StatusRunning: {
		StatusCompleted: true,
		StatusFailed:    true,
		StatusTimedOut:  true,
		StatusRejected:  true,
	},
}

// ValidTransition reports whether transitioning from one status to another is allowed.
func ValidTransition(from, to string) bool {
	targets, ok := validTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// IsTerminal reports whether status is a final job state.
func IsTerminal(status string) bool {
	switch status {
	case StatusCompleted, StatusFailed, StatusTimedOut, StatusRejected:
		return true
	}
	return false
}

// NewID generates a new ULID string for use as a job identifier.
func NewID() string {
	return ulid.Make().String()
}

// Job is one deadline-bounded run of a probe, as recorded in the job history.
type Job struct {
	ID         string     `json:"id"`
	Status     string     `json:"status"`
	Kind       string     `json:"kind"`
	Target     string     `json:"target,omitempty"`
	SleepMS    *int       `json:"sleep_ms,omitempty"`
	TimeoutMS  *int       `json:"timeout_ms,omitempty"`
	Signal     *int       `json:"signal,omitempty"`
	Output     []byte     `json:"output,omitempty"`
	Error      string     `json:"error,omitempty"`
	DurationMS *int       `json:"duration_ms,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
