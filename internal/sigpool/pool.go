// Package sigpool leases interrupt signals to deadline-bounded jobs.
//
// A Pool holds a fixed set of signal numbers. Each in-flight job holds one of
// them exclusively through a Lease, so at most Size jobs run at once and
// concurrent jobs never share an interrupt signal.
package sigpool

import (
	"slices"
	"sync"
	"syscall"
)

// Failed is the identifier held by a lease that could not acquire a signal.
const Failed syscall.Signal = -1

// Pool is a mutex-guarded set of free signal identifiers.
type Pool struct {
	mu      sync.Mutex
	members map[syscall.Signal]bool
	free    []syscall.Signal // ascending
}

// New creates a pool holding the given signals. Duplicates and non-positive
// values are dropped.
func New(sigs ...syscall.Signal) *Pool {
	p := &Pool{members: make(map[syscall.Signal]bool, len(sigs))}
	for _, s := range sigs {
		if s <= 0 || p.members[s] {
			continue
		}
		p.members[s] = true
		p.free = append(p.free, s)
	}
	slices.Sort(p.free)
	return p
}

// Acquire removes and returns the smallest free signal. It never blocks: when
// the pool is empty it returns Failed and false.
func (p *Pool) Acquire() (syscall.Signal, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.free) == 0 {
		return Failed, false
	}
	sig := p.free[0]
	p.free = p.free[1:]
	return sig, true
}

// Release returns sig to the pool. Releasing Failed, a signal that is already
// free, or a signal the pool never held has no effect.
func (p *Pool) Release(sig syscall.Signal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.members[sig] {
		return
	}
	i, found := slices.BinarySearch(p.free, sig)
	if found {
		return
	}
	p.free = slices.Insert(p.free, i, sig)
}

// Size reports the number of signals the pool was created with.
func (p *Pool) Size() int {
	return len(p.members)
}

// Available reports the number of signals currently free.
func (p *Pool) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Lease acquires a signal and wraps it in a Lease. The lease must be released
// on every exit path, typically with defer.
func (p *Pool) Lease() *Lease {
	sig, _ := p.Acquire()
	return &Lease{pool: p, sig: sig}
}
