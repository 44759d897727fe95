package probe

// Probe builds operations of one kind.
type Probe interface {
	// Prepare validates spec and returns the operation to run. Prepare itself
	// must not block.
	Prepare(spec Spec) (Operation, error)

	// Capabilities describes the probe for listing.
	Capabilities() Capabilities
}

// Operation is a single blocking call. Its output is recorded with the job.
type Operation func() ([]byte, error)

// MaxSleepMS bounds the sleep a single job may request.
const MaxSleepMS = 10 * 60 * 1000

// Spec describes one operation to build.
type Spec struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Target  string `json:"target,omitempty"`
	SleepMS int    `json:"sleep_ms,omitempty"`
}

// Capabilities describes what a probe does and which spec fields it reads.
type Capabilities struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Fields        []string `json:"fields"`
	Interruptible bool     `json:"interruptible"`
}
