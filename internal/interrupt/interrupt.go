package interrupt

import (
	"errors"
	"syscall"
)

// ErrUnsupported is returned on platforms without a signal-based interrupter.
var ErrUnsupported = errors.New("thread interruption is not supported on this platform")

// Target identifies the OS thread running a job's operation.
type Target struct {
	PID int
	TID int
}

// Interrupter delivers forced interruptions to a blocked worker thread.
//
// Arm must be called from the worker goroutine after runtime.LockOSThread, so
// that the returned Target names the thread that will block. Interrupt may be
// called from any goroutine. Disarm restores the signal to ignored and reports
// whether a delivery was acknowledged while armed.
type Interrupter interface {
	Arm(sig syscall.Signal) (Target, error)
	Interrupt(t Target, sig syscall.Signal) error
	Disarm(sig syscall.Signal) bool
}
