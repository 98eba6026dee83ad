package vm

import "github.com/empower1/contractvm/internal/types"

// LocalContext is one frame of the lexical scope chain that backs `let`
// bindings and function-parameter binding. Extending the chain walks back
// through parents on lookup and is capped at MaxContextDepth so a
// maliciously or accidentally deep `let` nest can't blow the host stack.
type LocalContext struct {
	parent    *LocalContext
	variables map[string]types.Value
	depth     int
}

// NewLocalContext returns the root of a lexical scope chain.
func NewLocalContext() *LocalContext {
	return &LocalContext{variables: make(map[string]types.Value)}
}

// Extend returns a new child scope one level deeper than c, or
// RuntimeError(MaxContextDepthReached) if c is already at MaxContextDepth.
func (c *LocalContext) Extend() (*LocalContext, error) {
	if c.depth >= MaxContextDepth {
		return nil, NewMaxContextDepthReachedError()
	}
	return &LocalContext{
		parent:    c,
		variables: make(map[string]types.Value),
		depth:     c.depth + 1,
	}, nil
}

// Bind sets name to value in c's own frame, not any ancestor's.
func (c *LocalContext) Bind(name string, value types.Value) {
	c.variables[name] = value
}

// LookupVariable searches c and its ancestors, nearest scope first, and
// returns a clone of the bound value. The clone is shallow (see
// types.Value.Clone): the returned Value struct is a copy, but its IntVal
// still points at the same big.Int as the binding.
func (c *LocalContext) LookupVariable(name string) (types.Value, bool) {
	for scope := c; scope != nil; scope = scope.parent {
		if v, ok := scope.variables[name]; ok {
			return v.Clone(), true
		}
	}
	return types.Value{}, false
}

// Depth reports how many Extend calls separate c from the root.
func (c *LocalContext) Depth() int {
	return c.depth
}
