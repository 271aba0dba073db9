package codec

import (
	"log/slog"
)

// Status is the registry's view of one adapter.
type Status struct {
	Name      string
	Available bool
	Reason    string
}

type entry struct {
	adapter Adapter
	err     error
}

// Registry records each adapter once at startup together with whether it
// can run. Callers ask the registry instead of probing libraries mid-run.
type Registry struct {
	entries []entry
	index   map[string]int
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register probes a and records the outcome. Registering a name twice
// replaces the earlier adapter in place.
func (r *Registry) Register(a Adapter) {
	e := entry{adapter: a, err: a.Available()}
	if e.err != nil {
		e.adapter = unavailable{name: a.Name(), err: e.err}
		slog.Debug("codec unavailable", "codec", a.Name(), "reason", e.err)
	}
	if i, ok := r.index[a.Name()]; ok {
		r.entries[i] = e
		return
	}
	r.index[a.Name()] = len(r.entries)
	r.entries = append(r.entries, e)
}

// Disable marks a registered adapter unavailable. Unknown names are
// ignored.
func (r *Registry) Disable(name, reason string) {
	i, ok := r.index[name]
	if !ok {
		return
	}
	err := unavailableErr(name, reason)
	r.entries[i] = entry{adapter: unavailable{name: name, err: err}, err: err}
}

// Available returns nil for a usable adapter.
func (r *Registry) Available(name string) error {
	i, ok := r.index[name]
	if !ok {
		return unavailableErr(name, "not registered")
	}
	return r.entries[i].err
}

// Adapters returns every registered adapter in registration order,
// unavailable ones included. Unavailable adapters answer Available with
// their reason.
func (r *Registry) Adapters() []Adapter {
	out := make([]Adapter, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.adapter
	}
	return out
}

func (r *Registry) Status() []Status {
	out := make([]Status, len(r.entries))
	for i, e := range r.entries {
		s := Status{Name: e.adapter.Name(), Available: e.err == nil}
		if e.err != nil {
			s.Reason = e.err.Error()
		}
		out[i] = s
	}
	return out
}

// NewDefaultRegistry registers every built-in adapter and disables the
// named ones.
func NewDefaultRegistry(disabled ...string) *Registry {
	r := NewRegistry()
	for _, a := range All() {
		r.Register(a)
	}
	for _, name := range disabled {
		if _, ok := r.index[name]; !ok {
			slog.Warn("ignoring unknown codec in disabled list", "codec", name)
			continue
		}
		r.Disable(name, "disabled by configuration")
	}
	return r
}
