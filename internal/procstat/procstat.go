// Package procstat reports the process's thread usage, which grows by one for
// every deadline job in flight.
package procstat

// Threads describes the process's current thread count against the system
// limit.
type Threads struct {
	Count int `json:"count"`
	Max   int `json:"max"`
}
