package vm

import (
	"go.uber.org/zap"

	"github.com/empower1/contractvm/internal/types"
)

// transientContractName is the contract context handed to an Environment
// that hasn't been scoped to any particular contract yet — deploying a new
// contract, or evaluating a raw expression at the top level.
const transientContractName = ":transient:"

// OwnedEnvironment is the entry point into the execution-context core: it
// owns the top-level GlobalContext and CallStack for a single transaction
// and hands out Environment values scoped to whatever sender is executing.
type OwnedEnvironment struct {
	context         *GlobalContext
	defaultContract *ContractContext
	callStack       *CallStack

	parser      Parser
	evaluator   Evaluator
	initializer ContractInitializer
}

// NewOwnedEnvironment opens a root save point on database and returns an
// OwnedEnvironment ready to initialize contracts or execute transactions.
func NewOwnedEnvironment(database Database, parser Parser, evaluator Evaluator, initializer ContractInitializer, logger *zap.SugaredLogger) (*OwnedEnvironment, error) {
	global, err := BeginGlobalContext(database, logger)
	if err != nil {
		return nil, err
	}
	return &OwnedEnvironment{
		context:         global,
		defaultContract: NewContractContext(transientContractName),
		callStack:       NewCallStack(),
		parser:          parser,
		evaluator:       evaluator,
		initializer:     initializer,
	}, nil
}

// GetExecEnvironment returns an Environment scoped to this OwnedEnvironment's
// context, with sender (and caller) set to sender when non-nil.
func (o *OwnedEnvironment) GetExecEnvironment(sender *types.PrincipalData) *Environment {
	return NewEnvironment(o.context, o.defaultContract, o.callStack, sender, sender, o.parser, o.evaluator, o.initializer)
}

// InitializeContract parses and deploys contractContent under
// contractName, committing the root save point on success.
func (o *OwnedEnvironment) InitializeContract(contractName, contractContent string) error {
	exec := o.GetExecEnvironment(nil)
	if err := exec.InitializeContract(contractName, contractContent); err != nil {
		return err
	}
	_, err := o.Commit()
	return err
}

// ExecuteTransaction runs txName on contractName as sender, committing the
// root save point and returning the resulting AssetMap on success.
func (o *OwnedEnvironment) ExecuteTransaction(sender types.PrincipalData, contractName, txName string, args []Expression) (types.Value, *AssetMap, error) {
	exec := o.GetExecEnvironment(&sender)
	result, err := exec.ExecuteContract(contractName, txName, args)
	if err != nil {
		return types.Value{}, nil, err
	}
	assetMap, err := o.Commit()
	if err != nil {
		return types.Value{}, nil, err
	}
	return result, assetMap, nil
}

// Commit finalizes the root save point and returns its accumulated
// AssetMap. Because this is the outermost scope, Commit must yield a
// non-nil map; if it doesn't, the bookkeeping that tracks parent/child
// scopes has a bug.
func (o *OwnedEnvironment) Commit() (*AssetMap, error) {
	assetMap, err := o.context.Commit()
	if err != nil {
		return nil, err
	}
	if assetMap == nil {
		return nil, ErrFailedToConstructAssetTable
	}
	return assetMap, nil
}
