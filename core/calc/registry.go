// Package calc holds the calculator registry and built-in load calculators.
//
// A calculator is a pure function from canonical inputs to a load profile.
// Calculators never return errors for well-formed inputs: degenerate values
// are reported via warning strings on the result. A panic from a calculator
// is a programming defect, not a data issue.
package calc

import (
	"sort"
	"sync"

	"energy-quote/core/types"
)

// Calculator computes a load profile for one industry
type Calculator interface {
	// ID is the registry key (e.g. "hotel_load_v1")
	ID() string

	// RequiredQuestions lists the raw question ids the calculator needs the
	// template to declare. Used by structural validation only.
	RequiredQuestions() []string

	// Compute derives a load profile from canonical inputs. Pure,
	// deterministic, no I/O.
	Compute(inputs types.CalcInputs) types.CalcResult
}

// Source supplies calculators by id
type Source interface {
	Get(id string) (Calculator, bool)
}

// Registry is a thread-safe calculator store
type Registry struct {
	mu    sync.RWMutex
	calcs map[string]Calculator
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{calcs: make(map[string]Calculator)}
}

// Register adds a calculator, replacing any previous one with the same id
func (r *Registry) Register(c Calculator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calcs[c.ID()] = c
}

// Get returns the calculator for id
func (r *Registry) Get(id string) (Calculator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.calcs[id]
	return c, ok
}

// IDs lists registered calculator ids, sorted
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.calcs))
	for id := range r.calcs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Default is the registry preloaded with the built-in calculators
var Default = NewRegistry()

// funcCalc adapts a compute function to the Calculator interface
type funcCalc struct {
	id       string
	required []string
	compute  func(types.CalcInputs) types.CalcResult
}

func (f *funcCalc) ID() string                  { return f.id }
func (f *funcCalc) RequiredQuestions() []string { return f.required }
func (f *funcCalc) Compute(in types.CalcInputs) types.CalcResult {
	return f.compute(in)
}

func register(id string, required []string, compute func(types.CalcInputs) types.CalcResult) {
	Default.Register(&funcCalc{id: id, required: required, compute: compute})
}

func floatPtr(f float64) *float64 { return &f }

// dutyCycle returns avg/peak, guarding the zero-peak case
func dutyCycle(avg, peak float64) *float64 {
	if peak <= 0 {
		return floatPtr(0)
	}
	return floatPtr(avg / peak)
}

// sumContributors totals a contributor map in sorted key order so the
// float sum is identical across runs
func sumContributors(m map[string]float64) float64 {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	total := 0.0
	for _, k := range keys {
		total += m[k]
	}
	return total
}
