package concolic

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// SymbolicVariable is a named identity with a declared sort and a current
// concrete seed. Names are unique within a session; re-declaring a name
// with a different sort is an error (spec.md §3).
type SymbolicVariable struct {
	Name string
	Sort Sort
	Seed interface{} // int64, float64, or string, matching Sort
}

// VariableRegistry is the process-wide (append-only, within one session)
// table of declared symbolic variables.
type VariableRegistry struct {
	mu   sync.RWMutex
	vars map[string]SymbolicVariable
}

// NewVariableRegistry returns an empty variable registry.
func NewVariableRegistry() *VariableRegistry {
	return &VariableRegistry{vars: make(map[string]SymbolicVariable)}
}

// Declare registers name with the given sort and seed. Re-declaring an
// existing name with a different sort returns a SortMismatchError; with the
// same sort it updates the seed.
func (r *VariableRegistry) Declare(name string, sort Sort, seed interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.vars[name]; ok && existing.Sort != sort {
		return errors.Wrapf(&SortMismatchError{
			Detail: fmt.Sprintf("variable %q already declared with sort %s, cannot redeclare as %s", name, existing.Sort, sort),
		}, "declare %s", name)
	}
	r.vars[name] = SymbolicVariable{Name: name, Sort: sort, Seed: seed}
	return nil
}

// Lookup returns the declared variable for name, if any.
func (r *VariableRegistry) Lookup(name string) (SymbolicVariable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vars[name]
	return v, ok
}

// UpdateSeed rebinds the concrete seed for an already-declared variable.
// It is a no-op (returns false) if the variable was never declared.
func (r *VariableRegistry) UpdateSeed(name string, seed interface{}) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vars[name]
	if !ok {
		return false
	}
	v.Seed = seed
	r.vars[name] = v
	return true
}

// Names returns the declared variable names in an unspecified order.
func (r *VariableRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.vars))
	for n := range r.vars {
		names = append(names, n)
	}
	return names
}

// Seeds returns the current seed assignment for every declared variable.
func (r *VariableRegistry) Seeds() map[string]interface{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seeds := make(map[string]interface{}, len(r.vars))
	for n, v := range r.vars {
		seeds[n] = v.Seed
	}
	return seeds
}

// Clear removes every declared variable. Used by Session.Reset.
func (r *VariableRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vars = make(map[string]SymbolicVariable)
}
