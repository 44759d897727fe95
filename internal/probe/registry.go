package probe

import (
	"fmt"
	"sort"
	"sync"
)

// Info pairs a probe kind with its capabilities.
type Info struct {
	Kind         string       `json:"kind"`
	Capabilities Capabilities `json:"capabilities"`
}

// Registry holds registered probes by kind.
type Registry struct {
	mu     sync.RWMutex
	probes map[string]Probe
}

// NewRegistry creates an empty probe registry.
func NewRegistry() *Registry {
	return &Registry{
		probes: make(map[string]Probe),
	}
}

// Register adds a probe to the registry under the given kind.
func (r *Registry) Register(kind string, p Probe) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.probes[kind] = p
}

// Resolve returns the probe registered for kind.
func (r *Registry) Resolve(kind string) (Probe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.probes[kind]
	if !ok {
		return nil, fmt.Errorf("probe %q is not registered", kind)
	}
	return p, nil
}

// List returns all registered probes sorted by kind for a stable API response.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.probes))
	for kind, p := range r.probes {
		infos = append(infos, Info{
			Kind:         kind,
			Capabilities: p.Capabilities(),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Kind < infos[j].Kind
	})
	return infos
}
