package sigpool

import (
	"fmt"
	"sync"
	"syscall"

	"github.com/seantiz/nonblock/internal/interrupt"
)

var defaultPool = sync.OnceValues(func() (*Pool, error) {
	reserved := interrupt.ReservedSignals()
	sigs := make([]syscall.Signal, 0, len(reserved))
	var firstErr error
	for _, s := range reserved {
		if err := interrupt.Baseline(s); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("baseline signal %d: %w", s, err)
			}
			continue
		}
		sigs = append(sigs, s)
	}
	if len(sigs) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return New(sigs...), nil
})

// Default returns the process-wide pool over the platform's reserved signal
// range. The first call marks every reserved signal ignored and
// non-restarting; signals that cannot be configured are left out. The pool
// lives until process exit.
func Default() (*Pool, error) {
	return defaultPool()
}
