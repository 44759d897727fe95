// Package interrupt isolates the platform-specific primitive the deadline
// runner depends on: unblocking one system call in one specific OS thread.
//
// On Linux this is done with a reserved real-time signal. The worker arms the
// signal on its own locked thread (Go handler installed, SA_RESTART cleared),
// and the caller delivers it with tgkill. The handler only acknowledges the
// delivery; the interrupted call returns EINTR and the operation continues
// from there. Nothing here terminates a thread.
package interrupt
