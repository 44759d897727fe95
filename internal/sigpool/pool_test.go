package sigpool

import (
	"sync"
	"syscall"
	"testing"
)

func sigRange(lo, hi int) []syscall.Signal {
	var sigs []syscall.Signal
	for s := lo; s <= hi; s++ {
		sigs = append(sigs, syscall.Signal(s))
	}
	return sigs
}

func TestNewDropsDuplicatesAndInvalid(t *testing.T) {
	p := New(3, 1, 3, 0, -1, 2)
	if p.Size() != 3 {
		t.Errorf("Size = %d, want 3", p.Size())
	}
	if p.Available() != 3 {
		t.Errorf("Available = %d, want 3", p.Available())
	}
}

func TestAcquireSmallestFirst(t *testing.T) {
	p := New(4, 2, 3, 1)

	for _, want := range []syscall.Signal{1, 2, 3, 4} {
		got, ok := p.Acquire()
		if !ok {
			t.Fatalf("Acquire failed, want %d", want)
		}
		if got != want {
			t.Errorf("Acquire = %d, want %d", got, want)
		}
	}

	got, ok := p.Acquire()
	if ok || got != Failed {
		t.Errorf("Acquire on empty pool = (%d, %v), want (Failed, false)", got, ok)
	}
}

func TestReleaseMakesSignalEligibleAgain(t *testing.T) {
	p := New(sigRange(1, 3)...)
	p.Acquire()
	p.Acquire()

	p.Release(1)
	got, _ := p.Acquire()
	if got != 1 {
		t.Errorf("Acquire after release = %d, want 1", got)
	}
}

func TestReleaseIgnoresForeignAndDuplicate(t *testing.T) {
	p := New(sigRange(1, 2)...)

	p.Release(Failed)
	p.Release(9)
	p.Release(1) // already free
	if p.Available() != 2 {
		t.Errorf("Available = %d, want 2", p.Available())
	}

	sig, _ := p.Acquire()
	p.Release(sig)
	p.Release(sig)
	if p.Available() != 2 {
		t.Errorf("Available after double release = %d, want 2", p.Available())
	}
}

func TestConcurrentAcquireNoCollision(t *testing.T) {
	const size = 32
	p := New(sigRange(1, size)...)

	var (
		mu   sync.Mutex
		seen = make(map[syscall.Signal]int)
		fail int
		wg   sync.WaitGroup
	)
	for range size + 8 {
		wg.Go(func() {
			sig, ok := p.Acquire()
			mu.Lock()
			defer mu.Unlock()
			if !ok {
				fail++
				return
			}
			seen[sig]++
		})
	}
	wg.Wait()

	if len(seen) != size {
		t.Errorf("distinct signals acquired = %d, want %d", len(seen), size)
	}
	for sig, n := range seen {
		if n != 1 {
			t.Errorf("signal %d acquired %d times", sig, n)
		}
	}
	if fail != 8 {
		t.Errorf("failed acquisitions = %d, want 8", fail)
	}
}
