// Package engine records and executes probe jobs. Each job is persisted as
// pending, run through the deadline runner on its own OS thread, and updated
// with the outcome: completed, failed, timed_out, or rejected when no
// interrupt signal was free.
package engine
