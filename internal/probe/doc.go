// Package probe provides named blocking operations that can be run through
// the deadline runner: a nanosleep and a raw read of a path. Both issue their
// system calls directly so a forced interruption surfaces as EINTR.
package probe
