package sigpool

import (
	"sync"
	"syscall"
)

// Lease is scoped ownership of one signal drawn from a Pool.
type Lease struct {
	pool *Pool
	sig  syscall.Signal
	once sync.Once
}

// Signal returns the leased signal, or Failed and false if the pool was empty
// when the lease was taken.
func (l *Lease) Signal() (syscall.Signal, bool) {
	return l.sig, l.sig != Failed
}

// Release returns the signal to the pool. Only the first call has an effect.
func (l *Lease) Release() {
	l.once.Do(func() {
		if l.sig != Failed {
			l.pool.Release(l.sig)
		}
	})
}
