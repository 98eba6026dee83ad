package vm

import "github.com/empower1/contractvm/internal/types"

// DefinedFunction is the execution-context core's view of a parsed contract
// function: enough to decide whether a caller may invoke it and to run it
// against a set of already-evaluated arguments. The concrete implementation
// (parsed body, parameter list, evaluator wiring) lives in
// internal/callables, which this package never imports — callables depends
// on vm, not the other way around, so Environment can accept any
// implementation of this interface without a cycle.
type DefinedFunction interface {
	Identifier() FunctionIdentifier
	IsPublic() bool
	IsReadOnly() bool
	ExecuteApply(args []types.Value, env *Environment) (types.Value, error)
}

// Contract is a deployed contract's identity plus its context: the
// variables and functions it defines. Non-goal per spec: contract source
// storage and content-addressing live in internal/contracts, which builds
// one of these from parsed source.
type Contract struct {
	Name            string
	Source          string
	ContractContext *ContractContext
}

// ContractContext holds the public surface a deployed contract exposes:
// its top-level variables and function definitions. It is populated once,
// at initialization, and treated as immutable for the remainder of the
// contract's lifetime. Variable lookups return clones; function lookups
// return the registered DefinedFunction itself.
type ContractContext struct {
	Name      string
	variables map[string]types.Value
	functions map[string]DefinedFunction
}

// NewContractContext returns an empty context for a contract named name.
func NewContractContext(name string) *ContractContext {
	return &ContractContext{
		Name:      name,
		variables: make(map[string]types.Value),
		functions: make(map[string]DefinedFunction),
	}
}

// DefineVariable registers a top-level variable binding. Intended to be
// called only while a contract is being initialized.
func (c *ContractContext) DefineVariable(name string, value types.Value) {
	c.variables[name] = value
}

// DefineFunction registers a function definition. Intended to be called
// only while a contract is being initialized.
func (c *ContractContext) DefineFunction(name string, fn DefinedFunction) {
	c.functions[name] = fn
}

// LookupVariable returns a clone of the named top-level variable, if any.
func (c *ContractContext) LookupVariable(name string) (types.Value, bool) {
	v, ok := c.variables[name]
	if !ok {
		return types.Value{}, false
	}
	return v.Clone(), true
}

// LookupFunction returns the named function definition, if any.
func (c *ContractContext) LookupFunction(name string) (DefinedFunction, bool) {
	fn, ok := c.functions[name]
	return fn, ok
}
