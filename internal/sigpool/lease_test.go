package sigpool

import "testing"

func TestLeaseHoldsAndReturnsSignal(t *testing.T) {
	p := New(sigRange(1, 4)...)

	l := p.Lease()
	sig, ok := l.Signal()
	if !ok || sig != 1 {
		t.Fatalf("Signal() = (%d, %v), want (1, true)", sig, ok)
	}
	if p.Available() != 3 {
		t.Errorf("Available while leased = %d, want 3", p.Available())
	}

	l.Release()
	if p.Available() != 4 {
		t.Errorf("Available after release = %d, want 4", p.Available())
	}
}

func TestLeaseReleaseIsIdempotent(t *testing.T) {
	p := New(sigRange(1, 2)...)

	l := p.Lease()
	l.Release()
	other := p.Lease() // takes the same signal back
	l.Release()

	if p.Available() != 1 {
		t.Errorf("Available = %d, want 1 (second release must not free a re-leased signal)", p.Available())
	}
	other.Release()
}

func TestFailedLease(t *testing.T) {
	p := New(1)
	held := p.Lease()
	defer held.Release()

	l := p.Lease()
	sig, ok := l.Signal()
	if ok || sig != Failed {
		t.Errorf("Signal() = (%d, %v), want (Failed, false)", sig, ok)
	}
	l.Release()
	if p.Available() != 0 {
		t.Errorf("Available = %d, want 0", p.Available())
	}
}

func TestSequentialLeasesPreserveCapacity(t *testing.T) {
	p := New(sigRange(1, 4)...)

	for range 100 {
		func() {
			l := p.Lease()
			defer l.Release()
		}()
	}
	for range 100 {
		l := p.Lease()
		l.Release()
		l.Release()
	}

	if p.Available() != p.Size() {
		t.Errorf("Available = %d, want %d", p.Available(), p.Size())
	}
}

func TestDefaultIsSingleton(t *testing.T) {
	a, errA := Default()
	b, errB := Default()
	if a != b {
		t.Error("Default returned different pools")
	}
	if errA != errB {
		t.Errorf("Default errors differ: %v vs %v", errA, errB)
	}
	if errA == nil && a.Available() != a.Size() {
		t.Errorf("Available = %d, want %d", a.Available(), a.Size())
	}
}
