package deadline

import (
	"runtime"
	"runtime/debug"
	"syscall"

	"github.com/seantiz/nonblock/internal/interrupt"
)

type armResult struct {
	target interrupt.Target
	err    error
}

// worker is the launched half of a job.
type worker[T any] struct {
	sig    syscall.Signal
	result *resultChan[T]
	armed  chan armResult
	done   chan struct{}

	// interrupted is set before done closes.
	interrupted bool
}

// launch starts op on a goroutine locked to its own OS thread. The thread arms
// sig, runs op, publishes the outcome, and disarms sig before done is closed.
// The goroutine never unlocks, so the runtime retires the thread with it.
func launch[T any](in interrupt.Interrupter, sig syscall.Signal, op func() (T, error)) *worker[T] {
	w := &worker[T]{
		sig:    sig,
		result: newResultChan[T](),
		armed:  make(chan armResult, 1),
		done:   make(chan struct{}),
	}

	go func() {
		defer close(w.done)
		runtime.LockOSThread()

		target, err := in.Arm(sig)
		if err != nil {
			var zero T
			w.result.send(zero, err)
			w.armed <- armResult{err: err}
			return
		}
		w.armed <- armResult{target: target}

		defer func() { w.interrupted = in.Disarm(sig) }()

		v, err := call(op)
		w.result.send(v, err)
	}()

	return w
}

// join waits for the worker thread to finish. It has no timeout.
func (w *worker[T]) join() {
	<-w.done
}

// call runs op and converts a panic into a PanicError.
func call[T any](op func() (T, error)) (v T, err error) {
	defer func() {
		if p := recover(); p != nil {
			var zero T
			v, err = zero, &PanicError{Value: p, Stack: debug.Stack()}
		}
	}()
	return op()
}
