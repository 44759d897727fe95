package probe

import "github.com/seantiz/nonblock/internal/model"

// RegisterDefaults registers the built-in probes.
func RegisterDefaults(r *Registry) {
	r.Register(model.KindSleep, SleepProbe{})
	r.Register(model.KindRead, ReadProbe{})
}
