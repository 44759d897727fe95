// Package deadline runs operations that may block in a system call with no
// timeout of their own, and stops waiting for them after a deadline.
//
// Each run leases a signal from a sigpool.Pool, starts a worker goroutine
// locked to its own OS thread, and waits on a write-once result channel. If
// the deadline passes first the runner signals the worker's thread and keeps
// re-sending the signal until the worker exits, so a deadline that expires
// while the operation is still setting up still interrupts the blocking call
// it reaches later. The join has no bound:
//
//	LEASING -> RUNNING -> COMPLETED | TIMED_OUT -> RECONCILED
//
// An operation is only interruptible while it is blocked in a raw system call
// that returns EINTR (unix.Read, unix.Nanosleep, unix.Accept and the like).
// CPU-bound code, os.File reads and netpoller-backed I/O retry or never enter
// such a wait; a run wrapping them reports TimedOut only after the operation
// returns on its own. Operations should not hold locks or mutate shared state
// across the blocking call, since the interruption runs none of their cleanup.
package deadline
