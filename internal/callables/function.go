// Package callables implements vm.DefinedFunction: a parsed, named
// contract function ready to be applied to a list of already-evaluated
// arguments.
package callables

import (
	"fmt"

	"github.com/empower1/contractvm/internal/types"
	"github.com/empower1/contractvm/internal/vm"
)

// Function is a user-defined contract function: a parameter list, a body
// expression, and the public/read-only flags the execution core checks
// before letting it be called as a transaction.
type Function struct {
	name      string
	signature string
	params    []string
	body      vm.Expression
	public    bool
	readOnly  bool
	definedIn string
}

// NewFunction builds a Function from its parsed parts. definedIn names the
// contract the function belongs to, used only to build its
// FunctionIdentifier for the call stack.
func NewFunction(name string, params []string, body vm.Expression, public, readOnly bool, definedIn string) *Function {
	return &Function{
		name:      name,
		signature: fmt.Sprintf("(%s %v)", name, params),
		params:    params,
		body:      body,
		public:    public,
		readOnly:  readOnly,
		definedIn: definedIn,
	}
}

// Identifier returns the call-stack identity of this function.
func (f *Function) Identifier() vm.FunctionIdentifier {
	return vm.FunctionIdentifier{Name: f.definedIn + "." + f.name, Signature: f.signature}
}

// IsPublic reports whether this function may be invoked as a transaction.
func (f *Function) IsPublic() bool { return f.public }

// IsReadOnly reports whether this function is disallowed from mutating
// contract state or asset balances.
func (f *Function) IsReadOnly() bool { return f.readOnly }

// ExecuteApply binds args to the function's parameters in a fresh local
// scope and evaluates its body, guarding against direct re-entrancy: a
// function already on the call stack cannot be entered again.
func (f *Function) ExecuteApply(args []types.Value, env *vm.Environment) (types.Value, error) {
	if len(args) != len(f.params) {
		return types.Value{}, vm.NewInterpreterError(fmt.Sprintf("%s expected %d arguments, got %d", f.name, len(f.params), len(args)))
	}

	id := f.Identifier()
	stack := env.CallStack()
	if stack.Contains(id) {
		return types.Value{}, vm.NewInterpreterError(fmt.Sprintf("re-entrant call into %s", f.name))
	}

	stack.Insert(id, true)
	defer func() {
		if err := stack.Remove(id, true); err != nil {
			panic(err)
		}
	}()

	local, err := vm.NewLocalContext().Extend()
	if err != nil {
		return types.Value{}, err
	}
	for i, param := range f.params {
		local.Bind(param, args[i])
	}

	return env.Evaluator().Eval(f.body, env, local)
}
