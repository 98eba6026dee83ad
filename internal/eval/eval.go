// Package eval implements vm.Evaluator: it walks the s-expression tree
// produced by internal/parser, resolving symbols through the active
// LocalContext and ContractContext and dispatching lists to either a
// built-in special form or a user-defined function.
//
// Like internal/parser, this has no direct analogue in the example pack —
// the execution-context core treats evaluation as an external
// collaborator — so the builtin set here is deliberately small: just
// enough special forms to drive the core's save-point and asset-map
// machinery end to end.
package eval

import (
	"math/big"

	"github.com/empower1/contractvm/internal/parser"
	"github.com/empower1/contractvm/internal/types"
	"github.com/empower1/contractvm/internal/vm"
)

// Evaluator implements vm.Evaluator.
type Evaluator struct{}

// New returns a ready-to-use Evaluator.
func New() *Evaluator { return &Evaluator{} }

// Eval evaluates a single parsed expression against env and local.
func (e *Evaluator) Eval(expr vm.Expression, env *vm.Environment, local *vm.LocalContext) (types.Value, error) {
	node, ok := expr.(*parser.Expr)
	if !ok {
		return types.Value{}, vm.NewInterpreterError("eval: expression was not produced by internal/parser")
	}

	if v, ok := node.MatchAtomValue(); ok {
		return v, nil
	}

	if sym, ok := node.IsSymbol(); ok {
		return e.lookupSymbol(sym, env, local)
	}

	if len(node.List) == 0 {
		return types.Value{}, vm.NewInterpreterError("cannot evaluate an empty list")
	}

	head, ok := node.List[0].IsSymbol()
	if !ok {
		return types.Value{}, vm.NewInterpreterError("expression head must name an operator or function")
	}
	args := node.List[1:]

	switch head {
	case "begin":
		return e.evalBegin(args, env, local)
	case "if":
		return e.evalIf(args, env, local)
	case "let":
		return e.evalLet(args, env, local)
	case "+", "-":
		return e.evalArith(head, args, env, local)
	case "ok":
		return e.evalWrap(args, env, local, types.OkResponse)
	case "err":
		return e.evalWrap(args, env, local, types.ErrResponse)
	case "ft-transfer?":
		return e.evalFtTransfer(args, env, local)
	case "contract-call?":
		return e.evalContractCall(args, env, local)
	default:
		return e.evalFunctionCall(head, args, env, local)
	}
}

func (e *Evaluator) lookupSymbol(name string, env *vm.Environment, local *vm.LocalContext) (types.Value, error) {
	if v, ok := local.LookupVariable(name); ok {
		return v, nil
	}
	if v, ok := env.ContractContext().LookupVariable(name); ok {
		return v, nil
	}
	return types.Value{}, vm.NewInterpreterError("use of unbound variable: " + name)
}

func (e *Evaluator) evalBegin(args []*parser.Expr, env *vm.Environment, local *vm.LocalContext) (types.Value, error) {
	if len(args) == 0 {
		return types.Value{}, vm.NewInterpreterError("begin requires at least one expression")
	}
	var result types.Value
	for _, a := range args {
		v, err := e.Eval(a, env, local)
		if err != nil {
			return types.Value{}, err
		}
		result = v
	}
	return result, nil
}

func (e *Evaluator) evalIf(args []*parser.Expr, env *vm.Environment, local *vm.LocalContext) (types.Value, error) {
	if len(args) != 3 {
		return types.Value{}, vm.NewInterpreterError("if requires exactly 3 arguments: condition, then, else")
	}
	cond, err := e.Eval(args[0], env, local)
	if err != nil {
		return types.Value{}, err
	}
	if cond.Kind != types.KindBool {
		return types.Value{}, vm.NewInterpreterError("if condition must evaluate to a bool")
	}
	if cond.BoolVal {
		return e.Eval(args[1], env, local)
	}
	return e.Eval(args[2], env, local)
}

func (e *Evaluator) evalLet(args []*parser.Expr, env *vm.Environment, local *vm.LocalContext) (types.Value, error) {
	if len(args) < 2 {
		return types.Value{}, vm.NewInterpreterError("let requires a binding list and a body")
	}
	bindings := args[0]
	if bindings.List == nil {
		return types.Value{}, vm.NewInterpreterError("let's first argument must be a binding list")
	}

	child, err := local.Extend()
	if err != nil {
		return types.Value{}, err
	}

	for _, binding := range bindings.List {
		if len(binding.List) != 2 {
			return types.Value{}, vm.NewInterpreterError("each let binding must be a (name value) pair")
		}
		name, ok := binding.List[0].IsSymbol()
		if !ok {
			return types.Value{}, vm.NewInterpreterError("let binding name must be a symbol")
		}
		v, err := e.Eval(binding.List[1], env, child)
		if err != nil {
			return types.Value{}, err
		}
		child.Bind(name, v)
	}

	return e.evalBegin(args[1:], env, child)
}

func (e *Evaluator) evalArith(op string, args []*parser.Expr, env *vm.Environment, local *vm.LocalContext) (types.Value, error) {
	if len(args) != 2 {
		return types.Value{}, vm.NewInterpreterError(op + " requires exactly 2 arguments")
	}
	left, err := e.Eval(args[0], env, local)
	if err != nil {
		return types.Value{}, err
	}
	right, err := e.Eval(args[1], env, local)
	if err != nil {
		return types.Value{}, err
	}
	if left.Kind != types.KindInt || right.Kind != types.KindInt {
		return types.Value{}, vm.NewInterpreterError(op + " requires int arguments")
	}

	operand := right.IntVal
	if op == "-" {
		operand = new(big.Int).Neg(right.IntVal)
	}
	sum, err := types.CheckedAddI128(left.IntVal, operand)
	if err != nil {
		return types.Value{}, err
	}
	return types.IntValue(sum), nil
}

func (e *Evaluator) evalWrap(args []*parser.Expr, env *vm.Environment, local *vm.LocalContext, wrap func(types.Value) types.Value) (types.Value, error) {
	if len(args) != 1 {
		return types.Value{}, vm.NewInterpreterError("ok/err requires exactly 1 argument")
	}
	v, err := e.Eval(args[0], env, local)
	if err != nil {
		return types.Value{}, err
	}
	return wrap(v), nil
}

// evalFtTransfer implements `(ft-transfer? asset-name amount sender)`:
// it logs the transfer against the calling contract's asset map and
// returns (ok amount).
func (e *Evaluator) evalFtTransfer(args []*parser.Expr, env *vm.Environment, local *vm.LocalContext) (types.Value, error) {
	if len(args) != 3 {
		return types.Value{}, vm.NewInterpreterError("ft-transfer? requires asset-name, amount, and sender")
	}
	assetName, ok := args[0].IsSymbol()
	if !ok {
		return types.Value{}, vm.NewInterpreterError("ft-transfer?'s first argument must name an asset")
	}
	amount, err := e.Eval(args[1], env, local)
	if err != nil {
		return types.Value{}, err
	}
	if amount.Kind != types.KindInt {
		return types.Value{}, vm.NewInterpreterError("ft-transfer? amount must be an int")
	}
	sender, err := e.Eval(args[2], env, local)
	if err != nil {
		return types.Value{}, err
	}
	if !sender.IsPrincipal() {
		return types.Value{}, vm.NewInterpreterError("ft-transfer? sender must be a principal")
	}

	contractName := env.ContractContext().Name
	if err := env.GlobalContext().LogAssetTransfer(sender.Principal, contractName, assetName, &amount); err != nil {
		return types.Value{}, err
	}
	return types.OkResponse(amount), nil
}

// evalContractCall implements `(contract-call? contract-name function arg...)`,
// delegating to Environment.ExecuteFunctionAsTransaction in a nested
// Environment. This package has no notion of a contract acting as its own
// principal, so the callee sees the same sender as the calling frame rather
// than an identity distinct from it — unlike tx-sender/contract-caller in
// systems that track that distinction, caller here does not change across a
// contract-call boundary.
func (e *Evaluator) evalContractCall(args []*parser.Expr, env *vm.Environment, local *vm.LocalContext) (types.Value, error) {
	if len(args) < 2 {
		return types.Value{}, vm.NewInterpreterError("contract-call? requires a contract name and a function name")
	}
	contractName, ok := args[0].IsSymbol()
	if !ok {
		return types.Value{}, vm.NewInterpreterError("contract-call?'s first argument must name a contract")
	}
	fnName, ok := args[1].IsSymbol()
	if !ok {
		return types.Value{}, vm.NewInterpreterError("contract-call?'s second argument must name a function")
	}

	contract, err := env.GlobalContext().Database().GetContract(contractName)
	if err != nil {
		return types.Value{}, err
	}
	fn, ok := contract.ContractContext.LookupFunction(fnName)
	if !ok {
		return types.Value{}, vm.NewUndefinedFunctionError(fnName)
	}
	if !fn.IsPublic() {
		return types.Value{}, vm.NewNonPublicFunctionError(fnName)
	}

	values, err := e.evalAll(args[2:], env, local)
	if err != nil {
		return types.Value{}, err
	}

	caller, _ := env.Sender()
	calleeEnv := env.NestWithCaller(caller)
	return calleeEnv.ExecuteFunctionAsTransaction(fn, values, contract.ContractContext)
}

func (e *Evaluator) evalFunctionCall(name string, args []*parser.Expr, env *vm.Environment, local *vm.LocalContext) (types.Value, error) {
	fn, ok := env.ContractContext().LookupFunction(name)
	if !ok {
		return types.Value{}, vm.NewUndefinedFunctionError(name)
	}
	values, err := e.evalAll(args, env, local)
	if err != nil {
		return types.Value{}, err
	}
	return fn.ExecuteApply(values, env)
}

func (e *Evaluator) evalAll(args []*parser.Expr, env *vm.Environment, local *vm.LocalContext) ([]types.Value, error) {
	values := make([]types.Value, 0, len(args))
	for _, a := range args {
		v, err := e.Eval(a, env, local)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
