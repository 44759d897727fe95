//go:build linux && (amd64 || arm64)

package interrupt

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Signals 32 and 33 are reserved by the C library and the Go runtime.
const (
	rtSigMin = 34
	rtSigMax = 64
)

const saRestart = 0x10000000

// sigactiont mirrors the kernel's struct sigaction on amd64 and arm64.
type sigactiont struct {
	handler  uintptr
	flags    uint64
	restorer uintptr
	mask     uint64
}

// ReservedSignals returns the real-time signals available for leasing.
func ReservedSignals() []syscall.Signal {
	sigs := make([]syscall.Signal, 0, rtSigMax-rtSigMin+1)
	for s := rtSigMin; s <= rtSigMax; s++ {
		sigs = append(sigs, syscall.Signal(s))
	}
	return sigs
}

// Baseline marks sig as ignored and non-restarting.
func Baseline(sig syscall.Signal) error {
	signal.Ignore(sig)
	return setRestart(sig, false)
}

// SignalInterrupter implements Interrupter with real-time signals.
type SignalInterrupter struct {
	mu    sync.Mutex
	armed map[syscall.Signal]chan os.Signal
}

var _ Interrupter = (*SignalInterrupter)(nil)

// NewSignalInterrupter returns an interrupter backed by tgkill.
func NewSignalInterrupter() (*SignalInterrupter, error) {
	return &SignalInterrupter{armed: make(map[syscall.Signal]chan os.Signal)}, nil
}

// Arm installs the Go handler for sig with SA_RESTART cleared and returns the
// calling thread as the interrupt target.
func (s *SignalInterrupter) Arm(sig syscall.Signal) (Target, error) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sig)
	if err := setRestart(sig, false); err != nil {
		signal.Stop(ch)
		signal.Ignore(sig)
		return Target{}, fmt.Errorf("arm signal %d: %w", sig, err)
	}

	s.mu.Lock()
	s.armed[sig] = ch
	s.mu.Unlock()

	return Target{PID: unix.Getpid(), TID: unix.Gettid()}, nil
}

// Interrupt sends sig to the target thread. A thread that has already exited
// is not an error.
func (s *SignalInterrupter) Interrupt(t Target, sig syscall.Signal) error {
	err := unix.Tgkill(t.PID, t.TID, sig)
	if errors.Is(err, unix.ESRCH) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("tgkill tid %d signal %d: %w", t.TID, sig, err)
	}
	return nil
}

// Disarm restores sig to ignored.
func (s *SignalInterrupter) Disarm(sig syscall.Signal) bool {
	s.mu.Lock()
	ch, ok := s.armed[sig]
	delete(s.armed, sig)
	s.mu.Unlock()

	if !ok {
		signal.Ignore(sig)
		return false
	}

	signal.Stop(ch)
	signal.Ignore(sig)

	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// setRestart toggles SA_RESTART on the currently installed disposition of sig.
func setRestart(sig syscall.Signal, restart bool) error {
	var act sigactiont
	if _, _, errno := unix.RawSyscall6(unix.SYS_RT_SIGACTION,
		uintptr(sig), 0, uintptr(unsafe.Pointer(&act)), unsafe.Sizeof(act.mask), 0, 0); errno != 0 {
		return fmt.Errorf("read sigaction: %w", errno)
	}

	if restart {
		act.flags |= saRestart
	} else {
		act.flags &^= saRestart
	}

	if _, _, errno := unix.RawSyscall6(unix.SYS_RT_SIGACTION,
		uintptr(sig), uintptr(unsafe.Pointer(&act)), 0, unsafe.Sizeof(act.mask), 0, 0); errno != 0 {
		return fmt.Errorf("write sigaction: %w", errno)
	}
	return nil
}
