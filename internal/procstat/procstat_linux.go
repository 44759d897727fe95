package procstat

import (
	"fmt"

	"github.com/prometheus/procfs"
)

// ReadThreads reads the thread count of the current process and
// kernel.threads-max from /proc.
func ReadThreads() (Threads, error) {
	return readThreads(procfs.DefaultMountPoint)
}

func readThreads(mountPoint string) (Threads, error) {
	fs, err := procfs.NewFS(mountPoint)
	if err != nil {
		return Threads{}, fmt.Errorf("open procfs: %w", err)
	}

	self, err := fs.Self()
	if err != nil {
		return Threads{}, fmt.Errorf("read self: %w", err)
	}
	stat, err := self.Stat()
	if err != nil {
		return Threads{}, fmt.Errorf("read self stat: %w", err)
	}

	limits, err := fs.SysctlInts("kernel.threads-max")
	if err != nil {
		return Threads{}, fmt.Errorf("read threads-max: %w", err)
	}
	if len(limits) == 0 {
		return Threads{}, fmt.Errorf("read threads-max: empty value")
	}

	return Threads{Count: stat.NumThreads, Max: limits[0]}, nil
}
