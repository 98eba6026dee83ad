package vm

import (
	"github.com/empower1/contractvm/internal/types"
)

// Environment packs together everything a single evaluation step needs:
// the current database/asset-map context, the contract whose functions are
// in scope, the call stack, and the identity of whoever is calling. A
// contract-call or a transaction's start each create a new Environment as
// context changes, rather than threading five parameters through every
// eval call individually.
type Environment struct {
	globalContext   *GlobalContext
	contractContext *ContractContext
	callStack       *CallStack
	sender          *types.PrincipalData
	caller          *types.PrincipalData

	parser      Parser
	evaluator   Evaluator
	initializer ContractInitializer
}

// NewEnvironment constructs an Environment from its parts. sender and
// caller may be nil to mean "no principal set" — callers pass a
// *types.PrincipalData rather than an untyped optional because the type
// system already guarantees it holds a principal, unlike the dynamically
// typed value the original design had to check at construction time.
func NewEnvironment(
	global *GlobalContext,
	contract *ContractContext,
	callStack *CallStack,
	sender, caller *types.PrincipalData,
	parser Parser,
	evaluator Evaluator,
	initializer ContractInitializer,
) *Environment {
	return &Environment{
		globalContext:   global,
		contractContext: contract,
		callStack:       callStack,
		sender:          sender,
		caller:          caller,
		parser:          parser,
		evaluator:       evaluator,
		initializer:     initializer,
	}
}

// GlobalContext returns the database/asset-map context this environment is
// evaluating against.
func (e *Environment) GlobalContext() *GlobalContext { return e.globalContext }

// ContractContext returns the contract whose variables and functions are
// in scope.
func (e *Environment) ContractContext() *ContractContext { return e.contractContext }

// CallStack returns the shared call stack for this execution.
func (e *Environment) CallStack() *CallStack { return e.callStack }

// Sender returns the transaction's originating principal, if any.
func (e *Environment) Sender() (types.PrincipalData, bool) {
	if e.sender == nil {
		return types.PrincipalData{}, false
	}
	return *e.sender, true
}

// Caller returns the principal that made the current call, if any — this
// differs from Sender once a contract-call changes `caller` without
// changing `sender`.
func (e *Environment) Caller() (types.PrincipalData, bool) {
	if e.caller == nil {
		return types.PrincipalData{}, false
	}
	return *e.caller, true
}

// Evaluator returns the evaluator this environment dispatches expressions
// to.
func (e *Environment) Evaluator() Evaluator { return e.evaluator }

// Parser returns the parser this environment uses for eval_raw/eval_read_only.
func (e *Environment) Parser() Parser { return e.parser }

// NestAsPrincipal returns a child environment with both sender and caller
// set to principal, sharing everything else with e.
func (e *Environment) NestAsPrincipal(principal types.PrincipalData) *Environment {
	return NewEnvironment(e.globalContext, e.contractContext, e.callStack, &principal, &principal, e.parser, e.evaluator, e.initializer)
}

// NestWithCaller returns a child environment with sender unchanged and
// caller set to principal. Used on a contract-call: the sender who started
// the transaction doesn't change, but the immediate caller does.
func (e *Environment) NestWithCaller(principal types.PrincipalData) *Environment {
	return NewEnvironment(e.globalContext, e.contractContext, e.callStack, e.sender, &principal, e.parser, e.evaluator, e.initializer)
}

// EvalReadOnly parses and evaluates a single expression of program against
// contractName's context, inside a read-only nested scope that is always
// rolled back regardless of outcome.
func (e *Environment) EvalReadOnly(contractName, program string) (types.Value, error) {
	parsed, err := e.parser.Parse(program)
	if err != nil {
		return types.Value{}, err
	}
	if len(parsed) < 1 {
		return types.Value{}, NewParseError("expected a program of at least length 1")
	}

	contract, err := e.globalContext.Database().GetContract(contractName)
	if err != nil {
		return types.Value{}, err
	}

	nested, err := e.globalContext.NestReadOnly()
	if err != nil {
		return types.Value{}, err
	}
	nestedEnv := NewEnvironment(nested, contract.ContractContext, e.callStack, e.sender, e.caller, e.parser, e.evaluator, e.initializer)
	local := NewLocalContext()
	result, evalErr := e.evaluator.Eval(parsed[0], nestedEnv, local)
	nested.RollBack()
	return result, evalErr
}

// EvalRaw parses and evaluates a single expression of program against e's
// own contract context, with no new scope opened.
func (e *Environment) EvalRaw(program string) (types.Value, error) {
	parsed, err := e.parser.Parse(program)
	if err != nil {
		return types.Value{}, err
	}
	if len(parsed) < 1 {
		return types.Value{}, NewParseError("expected a program of at least length 1")
	}
	local := NewLocalContext()
	return e.evaluator.Eval(parsed[0], e, local)
}

// ExecuteContract looks up txName on contractName, verifies it is public,
// resolves args down to literal values, and runs it as a transaction.
func (e *Environment) ExecuteContract(contractName, txName string, args []Expression) (types.Value, error) {
	contract, err := e.globalContext.Database().GetContract(contractName)
	if err != nil {
		return types.Value{}, err
	}

	fn, ok := contract.ContractContext.LookupFunction(txName)
	if !ok {
		return types.Value{}, NewUndefinedFunctionError(txName)
	}
	if !fn.IsPublic() {
		return types.Value{}, NewNonPublicFunctionError(txName)
	}

	values := make([]types.Value, 0, len(args))
	for _, arg := range args {
		v, ok := arg.MatchAtomValue()
		if !ok {
			return types.Value{}, NewInterpreterError("passed non-value expression to execute_contract on " + txName)
		}
		values = append(values, v)
	}

	return e.ExecuteFunctionAsTransaction(fn, values, contract.ContractContext)
}

// ExecuteFunctionAsTransaction runs function against args inside a freshly
// nested scope — read-only if the function is read-only, otherwise
// committed or rolled back based on its result. nextContractContext, if
// non-nil, becomes the contract context functions see while running (used
// for contract-calls); nil keeps e's own contract context.
func (e *Environment) ExecuteFunctionAsTransaction(function DefinedFunction, args []types.Value, nextContractContext *ContractContext) (types.Value, error) {
	makeReadOnly := function.IsReadOnly()

	var nested *GlobalContext
	var err error
	if makeReadOnly {
		nested, err = e.globalContext.NestReadOnly()
	} else {
		nested, err = e.globalContext.Nest()
	}
	if err != nil {
		return types.Value{}, err
	}

	contractContext := nextContractContext
	if contractContext == nil {
		contractContext = e.contractContext
	}

	nestedEnv := NewEnvironment(nested, contractContext, e.callStack, e.sender, e.caller, e.parser, e.evaluator, e.initializer)
	result, evalErr := function.ExecuteApply(args, nestedEnv)

	if makeReadOnly {
		nested.RollBack()
		return result, evalErr
	}
	return nested.HandleTxResult(result, evalErr)
}

// InitializeContract parses contractName's source, builds its
// ContractContext, and stores it — all inside a save point that is
// committed only if initialization succeeds end to end.
func (e *Environment) InitializeContract(contractName, source string) error {
	nested, err := e.globalContext.Nest()
	if err != nil {
		return err
	}

	contract, err := e.initializer.Initialize(contractName, source, nested, e.parser, e.evaluator)
	if err != nil {
		nested.RollBack()
		return err
	}

	if err := nested.Database().InsertContract(contractName, contract); err != nil {
		nested.RollBack()
		return err
	}

	if _, err := nested.Commit(); err != nil {
		return err
	}
	return nil
}
