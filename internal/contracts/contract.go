// Package contracts implements vm.ContractInitializer: building a
// vm.Contract by walking a source file's top-level `define-*` forms.
package contracts

import (
	"encoding/hex"

	"lukechampine.com/blake3"

	"github.com/empower1/contractvm/internal/callables"
	"github.com/empower1/contractvm/internal/parser"
	"github.com/empower1/contractvm/internal/vm"
)

// Initializer implements vm.ContractInitializer over internal/parser and
// internal/callables.
type Initializer struct{}

// New returns a ready-to-use Initializer.
func New() *Initializer { return &Initializer{} }

// Initialize parses source's top-level forms and builds the resulting
// contract's ContractContext: `define-public`, `define-private`, and
// `define-read-only` register functions; any other top-level form is
// rejected with an InterpreterError.
func (i *Initializer) Initialize(name, source string, globalCtx *vm.GlobalContext, p vm.Parser, evaluator vm.Evaluator) (*vm.Contract, error) {
	exprs, err := p.Parse(source)
	if err != nil {
		return nil, err
	}

	ctx := vm.NewContractContext(name)
	for _, expr := range exprs {
		node, ok := expr.(*parser.Expr)
		if !ok {
			return nil, vm.NewInterpreterError("contract initialization requires internal/parser expressions")
		}
		if err := i.processTopLevelForm(name, node, ctx); err != nil {
			return nil, err
		}
	}

	return &vm.Contract{Name: name, Source: source, ContractContext: ctx}, nil
}

func (i *Initializer) processTopLevelForm(contractName string, node *parser.Expr, ctx *vm.ContractContext) error {
	if node.List == nil || len(node.List) < 2 {
		return vm.NewInterpreterError("top-level contract forms must be lists of at least 2 elements")
	}
	head, ok := node.List[0].IsSymbol()
	if !ok {
		return vm.NewInterpreterError("top-level form must begin with a symbol")
	}

	switch head {
	case "define-public", "define-private", "define-read-only":
		return i.defineFunction(contractName, head, node.List[1:], ctx)
	default:
		return vm.NewInterpreterError("unsupported top-level form: " + head)
	}
}

func (i *Initializer) defineFunction(contractName, kind string, rest []*parser.Expr, ctx *vm.ContractContext) error {
	if len(rest) != 2 {
		return vm.NewInterpreterError(kind + " requires a signature and a body")
	}
	signature := rest[0]
	body := rest[1]

	if signature.List == nil || len(signature.List) == 0 {
		return vm.NewInterpreterError(kind + "'s signature must be a list starting with the function name")
	}
	fnName, ok := signature.List[0].IsSymbol()
	if !ok {
		return vm.NewInterpreterError(kind + "'s function name must be a symbol")
	}

	var params []string
	for _, paramExpr := range signature.List[1:] {
		var paramName string
		if paramExpr.List != nil && len(paramExpr.List) >= 1 {
			name, ok := paramExpr.List[0].IsSymbol()
			if !ok {
				return vm.NewInterpreterError("parameter name must be a symbol")
			}
			paramName = name
		} else if name, ok := paramExpr.IsSymbol(); ok {
			paramName = name
		} else {
			return vm.NewInterpreterError("malformed parameter in " + kind)
		}
		params = append(params, paramName)
	}

	public := kind == "define-public"
	readOnly := kind == "define-read-only"
	fn := callables.NewFunction(fnName, params, body, public, readOnly, contractName)
	ctx.DefineFunction(fnName, fn)
	return nil
}

// ContentHash returns a content-addressed identifier for contract source,
// used to detect whether a redeploy actually changed anything.
func ContentHash(source string) string {
	sum := blake3.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}
