package probe

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// readLimit is the most a read probe returns.
const readLimit = 4096

// StdinTarget makes the read probe use the process's standard input.
const StdinTarget = "-"

var errMissingTarget = errors.New("target is required")

// ReadProbe opens a path and blocks in a single read(2) on it. Opening a FIFO
// with no writer, or reading a pipe or terminal with no data, blocks until
// data arrives or the call is interrupted.
type ReadProbe struct{}

var _ Probe = ReadProbe{}

// Prepare returns an operation that reads up to 4 KiB from spec.Target.
func (ReadProbe) Prepare(spec Spec) (Operation, error) {
	if spec.Target == "" {
		return nil, errMissingTarget
	}
	path := spec.Target

	return func() ([]byte, error) {
		if path == StdinTarget {
			return readFD(0)
		}

		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer unix.Close(fd)
		return readFD(fd)
	}, nil
}

func readFD(fd int) ([]byte, error) {
	buf := make([]byte, readLimit)
	n, err := unix.Read(fd, buf)
	if err != nil {
		return nil, fmt.Errorf("read fd %d: %w", fd, err)
	}
	return buf[:n], nil
}

func (ReadProbe) Capabilities() Capabilities {
	return Capabilities{
		Name:          "read",
		Description:   "open(2) and a single read(2) of target, up to 4 KiB; \"-\" reads stdin",
		Fields:        []string{"target"},
		Interruptible: true,
	}
}
