package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/seantiz/nonblock/internal/deadline"
	"github.com/seantiz/nonblock/internal/model"
	"github.com/seantiz/nonblock/internal/probe"
	"github.com/seantiz/nonblock/internal/store"
)

const (
	// DefaultTimeout applies when a job does not set timeout_ms.
	DefaultTimeout = 2 * time.Second

	// MaxTimeout is the longest deadline a job may request.
	MaxTimeout = time.Hour
)

// Engine orchestrates deadline-bounded probe jobs.
type Engine struct {
	store          store.Store
	registry       *probe.Registry
	runner         *deadline.Runner
	logger         *slog.Logger
	defaultTimeout time.Duration
	wg             sync.WaitGroup
}

// NewEngine creates a new execution engine. A non-positive defaultTimeout
// falls back to DefaultTimeout.
func NewEngine(s store.Store, reg *probe.Registry, r *deadline.Runner, defaultTimeout time.Duration, logger *slog.Logger) *Engine {
	if defaultTimeout <= 0 {
		defaultTimeout = DefaultTimeout
	}
	return &Engine{
		store:          s,
		registry:       reg,
		runner:         r,
		logger:         logger,
		defaultTimeout: defaultTimeout,
	}
}

// Runner returns the deadline runner jobs execute on.
func (e *Engine) Runner() *deadline.Runner {
	return e.runner
}

// Submit creates a job record and launches execution in a goroutine. The job
// is stored with status "pending" before returning. The goroutine operates on
// a copy of the job to avoid data races with the caller.
func (e *Engine) Submit(ctx context.Context, j *model.Job) error {
	if err := e.store.CreateJob(ctx, j); err != nil {
		return fmt.Errorf("create job: %w", err)
	}

	jCopy := *j
	e.wg.Go(func() {
		e.execute(&jCopy)
	})

	return nil
}

// Run creates a job record, executes it on the calling goroutine, and returns
// the final record.
func (e *Engine) Run(ctx context.Context, j *model.Job) (*model.Job, error) {
	if err := e.store.CreateJob(ctx, j); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	e.execute(j)

	final, err := e.store.GetJob(ctx, j.ID)
	if err != nil {
		return nil, fmt.Errorf("get finished job: %w", err)
	}
	return final, nil
}

// Wait blocks until all submitted jobs are reconciled.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// execute runs the job lifecycle: pending→running→completed/failed/timed_out/rejected.
func (e *Engine) execute(j *model.Job) {
	if err := e.store.UpdateJobStatus(context.Background(), j.ID, model.StatusRunning); err != nil {
		e.logger.Error("failed to transition to running", "job_id", j.ID, "error", err)
		e.finish(j.ID, model.StatusFailed, nil, nil, fmt.Sprintf("failed to start: %v", err), 0)
		return
	}

	timeout := e.defaultTimeout
	if j.TimeoutMS != nil && *j.TimeoutMS > 0 {
		if int64(*j.TimeoutMS) > MaxTimeout.Milliseconds() {
			e.finish(j.ID, model.StatusFailed, nil, nil,
				fmt.Sprintf("timeout_ms %d exceeds %d", *j.TimeoutMS, MaxTimeout.Milliseconds()), 0)
			return
		}
		timeout = time.Duration(*j.TimeoutMS) * time.Millisecond
	}

	spec := probe.Spec{ID: j.ID, Kind: j.Kind, Target: j.Target}
	if j.SleepMS != nil {
		spec.SleepMS = *j.SleepMS
	}

	p, err := e.registry.Resolve(j.Kind)
	if err != nil {
		e.finish(j.ID, model.StatusFailed, nil, nil, fmt.Sprintf("resolve probe: %v", err), 0)
		return
	}
	op, err := p.Prepare(spec)
	if err != nil {
		e.finish(j.ID, model.StatusFailed, nil, nil, fmt.Sprintf("prepare probe: %v", err), 0)
		return
	}

	start := time.Now()
	out := deadline.Run(e.runner, timeout, op)
	total := time.Since(start)

	var sig *int
	if out.Status != deadline.StatusNoCapacity {
		s := int(out.Signal)
		sig = &s
	}

	switch out.Status {
	case deadline.StatusSuccess:
		e.finish(j.ID, model.StatusCompleted, sig, out.Value, "", total)
	case deadline.StatusFailure:
		e.finish(j.ID, model.StatusFailed, sig, nil, out.Err.Error(), total)
	case deadline.StatusTimedOut:
		e.logger.Warn("job timed out", "job_id", j.ID, "kind", j.Kind, "timeout_ms", timeout.Milliseconds())
		e.finish(j.ID, model.StatusTimedOut, sig, nil,
			fmt.Sprintf("timed out after %dms", timeout.Milliseconds()), total)
	case deadline.StatusNoCapacity:
		e.finish(j.ID, model.StatusRejected, nil, nil, out.Err.Error(), 0)
	}
}

// finish records a terminal status with the run's details.
func (e *Engine) finish(id, status string, sig *int, output []byte, errMsg string, d time.Duration) {
	now := time.Now().UTC()
	durationMS := int(d.Milliseconds())

	j := &model.Job{
		ID:         id,
		Status:     status,
		Signal:     sig,
		Output:     output,
		Error:      errMsg,
		DurationMS: &durationMS,
		FinishedAt: &now,
	}

	if err := e.store.UpdateJob(context.Background(), j); err != nil {
		e.logger.Error("failed to update finished job", "job_id", id, "status", status, "error", err)
	}
}
