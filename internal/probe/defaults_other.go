//go:build !linux

package probe

// RegisterDefaults registers nothing; the built-in probes are Linux-only.
func RegisterDefaults(r *Registry) {}
