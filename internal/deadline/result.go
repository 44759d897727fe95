package deadline

import (
	"sync"
	"time"
)

type result[T any] struct {
	value T
	err   error
}

// resultChan is a single-producer, single-consumer slot written at most once.
// Its buffer lets the worker publish without blocking even after the caller
// has stopped waiting.
type resultChan[T any] struct {
	ch   chan result[T]
	once sync.Once
}

func newResultChan[T any]() *resultChan[T] {
	return &resultChan[T]{ch: make(chan result[T], 1)}
}

// send publishes the outcome. Calls after the first are dropped and report false.
func (c *resultChan[T]) send(v T, err error) bool {
	sent := false
	c.once.Do(func() {
		c.ch <- result[T]{value: v, err: err}
		sent = true
	})
	return sent
}

// wait blocks until the result is written or timeout elapses. A non-positive
// timeout only checks whether the result is already there.
func (c *resultChan[T]) wait(timeout time.Duration) (result[T], bool) {
	if timeout <= 0 {
		return c.poll()
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-c.ch:
		return r, true
	case <-timer.C:
		return c.poll()
	}
}

func (c *resultChan[T]) poll() (result[T], bool) {
	select {
	case r := <-c.ch:
		return r, true
	default:
		return result[T]{}, false
	}
}
