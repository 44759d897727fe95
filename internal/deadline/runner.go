package deadline

import (
	"fmt"
	"log/slog"
	"syscall"
	"time"

	"github.com/seantiz/nonblock/internal/interrupt"
	"github.com/seantiz/nonblock/internal/sigpool"
)

// resendInterval is how often an interrupted worker is signalled again while
// the runner waits to join it.
const resendInterval = 10 * time.Millisecond

// Runner runs operations under a deadline. It is safe for concurrent use.
type Runner struct {
	pool   *sigpool.Pool
	intr   interrupt.Interrupter
	logger *slog.Logger
}

// NewRunner creates a runner that leases signals from pool and interrupts
// workers through intr.
func NewRunner(pool *sigpool.Pool, intr interrupt.Interrupter, logger *slog.Logger) *Runner {
	return &Runner{pool: pool, intr: intr, logger: logger}
}

// NewDefaultRunner creates a runner over the process-wide signal pool and the
// platform's signal interrupter.
func NewDefaultRunner(logger *slog.Logger) (*Runner, error) {
	pool, err := sigpool.Default()
	if err != nil {
		return nil, fmt.Errorf("signal pool: %w", err)
	}
	intr, err := interrupt.NewSignalInterrupter()
	if err != nil {
		return nil, fmt.Errorf("signal interrupter: %w", err)
	}
	return NewRunner(pool, intr, logger), nil
}

// Pool returns the runner's signal pool.
func (r *Runner) Pool() *sigpool.Pool {
	return r.pool
}

// Run executes op on a dedicated OS thread and waits up to timeout for it.
//
// If op does not finish in time, its thread is sent the leased signal every
// resendInterval until the thread finishes, however long that takes. Run never
// returns while the operation is still executing.
func Run[T any](r *Runner, timeout time.Duration, op func() (T, error)) Outcome[T] {
	lease := r.pool.Lease()
	defer lease.Release()

	sig, ok := lease.Signal()
	if !ok {
		r.logger.Warn("no free interrupt signal", "pool_size", r.pool.Size())
		jobsTotal.WithLabelValues(StatusNoCapacity.String()).Inc()
		return Outcome[T]{Status: StatusNoCapacity, Err: ErrNoCapacity, Signal: sigpool.Failed}
	}

	signalsLeased.Inc()
	defer signalsLeased.Dec()

	start := time.Now()
	w := launch(r.intr, sig, op)
	a := <-w.armed

	r.logger.Debug("waiting for operation", "signal", int(sig), "timeout_ms", timeout.Milliseconds())
	res, completed := w.result.wait(timeout - time.Since(start))
	elapsed := time.Since(start)
	waitDuration.Observe(elapsed.Seconds())

	if completed {
		w.join()
		if res.err != nil {
			jobsTotal.WithLabelValues(StatusFailure.String()).Inc()
			return Outcome[T]{Status: StatusFailure, Err: res.err, Signal: sig, Elapsed: elapsed}
		}
		jobsTotal.WithLabelValues(StatusSuccess.String()).Inc()
		r.logger.Debug("operation completed", "signal", int(sig), "elapsed_ms", elapsed.Milliseconds())
		return Outcome[T]{Status: StatusSuccess, Value: res.value, Signal: sig, Elapsed: elapsed}
	}

	r.logger.Warn("deadline passed, interrupting operation",
		"signal", int(sig),
		"tid", a.target.TID,
		"timeout_ms", timeout.Milliseconds(),
	)
	joinStart := time.Now()
	sent := r.interruptUntilDone(w.done, a.target, sig)
	w.join()
	reconcileDuration.Observe(time.Since(joinStart).Seconds())

	r.logger.Debug("worker joined after timeout",
		"signal", int(sig),
		"acknowledged", w.interrupted,
		"interrupts", sent,
		"reconcile_ms", time.Since(joinStart).Milliseconds(),
	)

	jobsTotal.WithLabelValues(StatusTimedOut.String()).Inc()
	return Outcome[T]{Status: StatusTimedOut, Err: ErrTimedOut, Signal: sig, Elapsed: elapsed}
}

// RunVoid runs op under timeout and reports whether it completed successfully
// in time. Failures are logged rather than returned.
func (r *Runner) RunVoid(timeout time.Duration, op func() error) bool {
	out := Run(r, timeout, func() (bool, error) {
		if err := op(); err != nil {
			return false, err
		}
		return true, nil
	})

	switch out.Status {
	case StatusSuccess:
		return out.Value
	case StatusFailure:
		r.logger.Error("operation failed", "signal", int(out.Signal), "error", out.Err)
	default:
		r.logger.Warn("operation did not complete", "status", out.Status.String(), "error", out.Err)
	}
	return false
}

// interruptUntilDone signals the worker thread until done closes and returns
// the number of signals delivered. A signal that arrives before the worker
// enters its blocking call is consumed by the handler and wakes nothing, so a
// single delivery is not enough.
func (r *Runner) interruptUntilDone(done <-chan struct{}, t interrupt.Target, sig syscall.Signal) int {
	ticker := time.NewTicker(resendInterval)
	defer ticker.Stop()

	sent := 0
	logged := false
	for {
		if err := r.intr.Interrupt(t, sig); err != nil {
			if !logged {
				r.logger.Error("interrupt worker", "signal", int(sig), "tid", t.TID, "error", err)
				logged = true
			}
		} else {
			sent++
			interruptsTotal.Inc()
		}

		select {
		case <-done:
			return sent
		case <-ticker.C:
		}
	}
}
