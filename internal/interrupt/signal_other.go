//go:build !(linux && (amd64 || arm64))

package interrupt

import "syscall"

// ReservedSignals returns nil; no signals are leasable on this platform.
func ReservedSignals() []syscall.Signal {
	return nil
}

// Baseline always fails on this platform.
func Baseline(sig syscall.Signal) error {
	return ErrUnsupported
}

// SignalInterrupter is unavailable on this platform.
type SignalInterrupter struct{}

// NewSignalInterrupter returns ErrUnsupported.
func NewSignalInterrupter() (*SignalInterrupter, error) {
	return nil, ErrUnsupported
}

func (s *SignalInterrupter) Arm(sig syscall.Signal) (Target, error) {
	return Target{}, ErrUnsupported
}

func (s *SignalInterrupter) Interrupt(t Target, sig syscall.Signal) error {
	return ErrUnsupported
}

func (s *SignalInterrupter) Disarm(sig syscall.Signal) bool {
	return false
}
