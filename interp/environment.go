package interp

import (
	"maps"
	"slices"

	"github.com/mattmikolay/rapture/value"
)

// Environment maps names to variables for one call frame. Frames do not
// chain: a subroutine body sees only its parameters, its own name and the
// names it declares extern.
type Environment struct {
	vars map[string]Variable
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]Variable)}
}

// Get returns the variable bound to name. An unbound name is bound to a new
// Simple variable holding Empty, so Get never fails.
func (e *Environment) Get(name string) Variable {
	if v, ok := e.vars[name]; ok {
		return v
	}

	v := NewSimple(value.Empty{})
	e.vars[name] = v

	return v
}

// Lookup returns the variable bound to name without creating one.
func (e *Environment) Lookup(name string) (Variable, bool) {
	v, ok := e.vars[name]

	return v, ok
}

// Set binds name to v, replacing any existing binding.
func (e *Environment) Set(name string, v Variable) {
	e.vars[name] = v
}

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	return slices.Sorted(maps.Keys(e.vars))
}

// Len returns the number of bound names.
func (e *Environment) Len() int { return len(e.vars) }
