package deadline

import (
	"errors"
	"fmt"
	"syscall"
	"time"
)

var (
	// ErrTimedOut is returned by Outcome.Result when the deadline passed.
	ErrTimedOut = errors.New("operation timed out")
	// ErrNoCapacity is returned by Outcome.Result when no signal could be leased.
	ErrNoCapacity = errors.New("no interrupt signal available")
)

// Status is the terminal state of a run.
type Status int

const (
	StatusSuccess Status = iota
	StatusTimedOut
	StatusNoCapacity
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusTimedOut:
		return "timed_out"
	case StatusNoCapacity:
		return "no_capacity"
	case StatusFailure:
		return "failure"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is the result of one run. Value is only meaningful for
// StatusSuccess; Err is set for every other status.
type Outcome[T any] struct {
	Status  Status
	Value   T
	Err     error
	Signal  syscall.Signal
	Elapsed time.Duration
}

// Result returns the value and a nil error on success, and the zero value
// with ErrTimedOut, ErrNoCapacity or the captured failure otherwise.
func (o Outcome[T]) Result() (T, error) {
	if o.Status == StatusSuccess {
		return o.Value, nil
	}
	var zero T
	return zero, o.Err
}

// PanicError carries a panic recovered from an operation.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("operation panicked: %v", e.Value)
}
