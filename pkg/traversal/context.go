package traversal

import (
	"maps"

	"github.com/cockroachdb/errors"
)

// StepContext carries the per-step state of a traversal: positional counters plus the values
// computed by the registered ContextValueComputers.
type StepContext struct {
	// StepNumber is the number of hops from the start item.
	StepNumber int
	// BranchID identifies the branch that delivered the step. The root branch is 0.
	BranchID int
	// BranchDepth is the number of forks between the root branch and this branch.
	BranchDepth int

	IsStartItem       bool
	IsBranchStartItem bool

	// IsStopping is set once the stop conditions have been evaluated for the step.
	IsStopping bool

	values map[string]any
}

func newStartContext() *StepContext {
	return &StepContext{IsStartItem: true, values: make(map[string]any)}
}

func (c *StepContext) child() *StepContext {
	return &StepContext{
		StepNumber:  c.StepNumber + 1,
		BranchID:    c.BranchID,
		BranchDepth: c.BranchDepth,
		values:      make(map[string]any, len(c.values)),
	}
}

// Value returns the value stored under key. Reading a key that was never computed for this step
// is a wiring error and panics.
func (c *StepContext) Value(key string) any {
	v, ok := c.values[key]
	if !ok {
		panic(errors.AssertionFailedf("context value %q read before it was computed", key))
	}
	return v
}

// Lookup returns the value stored under key, if any.
func (c *StepContext) Lookup(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Values returns a copy of every computed value.
func (c *StepContext) Values() map[string]any {
	return maps.Clone(c.values)
}

// ValueAs returns the value stored under key as a V. It panics if the key is missing or holds
// a value of another type.
func ValueAs[V any](c *StepContext, key string) V {
	raw := c.Value(key)
	v, ok := raw.(V)
	if !ok {
		panic(errors.AssertionFailedf("context value %q has type %T", key, raw))
	}
	return v
}
