//go:build !linux

package procstat

import "errors"

// ReadThreads is unavailable without /proc.
func ReadThreads() (Threads, error) {
	return Threads{}, errors.New("thread statistics require /proc")
}
