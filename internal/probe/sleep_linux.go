package probe

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

var errInvalidSleep = fmt.Errorf("sleep_ms must be between 1 and %d", MaxSleepMS)

// SleepProbe blocks in nanosleep(2) for the requested duration.
type SleepProbe struct{}

var _ Probe = SleepProbe{}

// Prepare returns an operation that sleeps for spec.SleepMS.
func (SleepProbe) Prepare(spec Spec) (Operation, error) {
	if spec.SleepMS <= 0 || spec.SleepMS > MaxSleepMS {
		return nil, errInvalidSleep
	}
	d := time.Duration(spec.SleepMS) * time.Millisecond

	return func() ([]byte, error) {
		ts := unix.NsecToTimespec(d.Nanoseconds())
		if err := unix.Nanosleep(&ts, nil); err != nil {
			return nil, fmt.Errorf("nanosleep: %w", err)
		}
		return fmt.Appendf(nil, "slept %dms", spec.SleepMS), nil
	}, nil
}

func (SleepProbe) Capabilities() Capabilities {
	return Capabilities{
		Name:          "sleep",
		Description:   "nanosleep(2) for sleep_ms milliseconds",
		Fields:        []string{"sleep_ms"},
		Interruptible: true,
	}
}
