// Package stats is the StatsRegistry components register their
// counters with at construction and the terminal simulation flushes
// once at the end of a run -- replacing the teacher's module-level
// Metrics accumulators with an explicit, passed-by-reference registry
// per the design notes. Every rate here is derived from cycle counts
// and tCK, never time.Now: two runs over the same trace must produce
// identical numbers.
package stats

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// ScalarStat is one named, flat numeric statistic.
type ScalarStat struct {
	Name        string
	Description string
	Precision   int
	Value       float64
}

// Inc adds 1 to the stat.
func (s *ScalarStat) Inc() { s.Value++ }

// Add adds delta to the stat.
func (s *ScalarStat) Add(delta float64) { s.Value += delta }

// Set overwrites the stat's value.
func (s *ScalarStat) Set(v float64) { s.Value = v }

// VectorStat is a named statistic with one value per element (e.g.
// one entry per bank, per core).
type VectorStat struct {
	Name        string
	Description string
	Precision   int
	Values      []float64
}

// Add adds delta to element i, growing the slice if needed.
func (v *VectorStat) Add(i int, delta float64) {
	for len(v.Values) <= i {
		v.Values = append(v.Values, 0)
	}
	v.Values[i] += delta
}

// Registry collects every ScalarStat/VectorStat a simulation run
// produces and flushes them in registration order.
type Registry struct {
	scalars    map[string]*ScalarStat
	vectors    map[string]*VectorStat
	scalarKeys []string
	vectorKeys []string

	// mu guards nothing in the registration/Inc/Add hot path -- a
	// single simulation goroutine owns that. It exists only so the
	// optional live Prometheus export (Collector, cmd/dramsim
	// -metrics-addr) can take a consistent snapshot from a second
	// goroutine without racing the simulation loop; Memory.Tick and
	// Collector.Collect both take it, coarse-grained, once per call.
	mu sync.Mutex
}

// Lock and Unlock let a caller that mutates stats from a single
// simulation goroutine (Memory.Tick) exclude a concurrent exporter
// (Collector.Collect) for the duration of one tick or one scrape.
func (r *Registry) Lock()   { r.mu.Lock() }
func (r *Registry) Unlock() { r.mu.Unlock() }

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		scalars: make(map[string]*ScalarStat),
		vectors: make(map[string]*VectorStat),
	}
}

// Scalar registers and returns a new ScalarStat. Panics if name is
// already registered -- a duplicate registration is a programming
// error, not a runtime condition.
func (r *Registry) Scalar(name, description string, precision int) *ScalarStat {
	if _, exists := r.scalars[name]; exists {
		panic(fmt.Sprintf("stats: scalar %q already registered", name))
	}
	s := &ScalarStat{Name: name, Description: description, Precision: precision}
	r.scalars[name] = s
	r.scalarKeys = append(r.scalarKeys, name)
	return s
}

// Vector registers and returns a new VectorStat.
func (r *Registry) Vector(name, description string, precision int) *VectorStat {
	if _, exists := r.vectors[name]; exists {
		panic(fmt.Sprintf("stats: vector %q already registered", name))
	}
	v := &VectorStat{Name: name, Description: description, Precision: precision}
	r.vectors[name] = v
	r.vectorKeys = append(r.vectorKeys, name)
	return v
}

// Scalars returns every registered scalar in registration order.
func (r *Registry) Scalars() []*ScalarStat {
	out := make([]*ScalarStat, len(r.scalarKeys))
	for i, k := range r.scalarKeys {
		out[i] = r.scalars[k]
	}
	return out
}

// Vectors returns every registered vector in registration order.
func (r *Registry) Vectors() []*VectorStat {
	out := make([]*VectorStat, len(r.vectorKeys))
	for i, k := range r.vectorKeys {
		out[i] = r.vectors[k]
	}
	return out
}

// Flush writes "name description value precision" for every scalar,
// then one line per vector element as "name[i] description value
// precision", in registration order.
func (r *Registry) Flush(w io.Writer) error {
	for _, s := range r.Scalars() {
		if _, err := fmt.Fprintf(w, "%s %s %.*f %d\n", s.Name, s.Description, s.Precision, s.Value, s.Precision); err != nil {
			return err
		}
	}
	for _, v := range r.Vectors() {
		for i, val := range v.Values {
			if _, err := fmt.Fprintf(w, "%s[%d] %s %.*f %d\n", v.Name, i, v.Description, v.Precision, val, v.Precision); err != nil {
				return err
			}
		}
	}
	return nil
}

// SortedNames returns every registered scalar and vector name, sorted,
// for tests that assert on registration without depending on order.
func (r *Registry) SortedNames() []string {
	names := make([]string, 0, len(r.scalars)+len(r.vectors))
	for name := range r.scalars {
		names = append(names, name)
	}
	for name := range r.vectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
