package vm

import (
	"errors"

	"github.com/empower1/contractvm/internal/crypto"
	"github.com/empower1/contractvm/internal/types"
)

// fakeDatabase is a minimal in-memory Database used to exercise
// GlobalContext and Environment without a real storage engine. Each save
// point gets its own copy of the contract table; Commit folds that copy
// back into the parent, RollBack simply lets it be discarded.
type fakeDatabase struct {
	parent      *fakeDatabase
	contracts   map[string]*Contract
	blockHeight uint64
}

func newFakeDatabase() *fakeDatabase {
	return &fakeDatabase{contracts: make(map[string]*Contract)}
}

func (f *fakeDatabase) GetContract(name string) (*Contract, error) {
	c, ok := f.contracts[name]
	if !ok {
		return nil, errors.New("no such contract: " + name)
	}
	return c, nil
}

func (f *fakeDatabase) InsertContract(name string, contract *Contract) error {
	f.contracts[name] = contract
	return nil
}

func (f *fakeDatabase) GetSimmedBlockHeight() (uint64, error) { return f.blockHeight, nil }
func (f *fakeDatabase) GetSimmedBlockTime(height uint64) (uint64, error) {
	return height * 600, nil
}
func (f *fakeDatabase) GetSimmedBlockHeaderHash(height uint64) (string, error) {
	return "header-hash", nil
}
func (f *fakeDatabase) GetSimmedBurnchainBlockHeaderHash(height uint64) (string, error) {
	return "burnchain-hash", nil
}
func (f *fakeDatabase) GetSimmedBlockVRFSeed(height uint64) (string, error) {
	return "vrf-seed", nil
}

func (f *fakeDatabase) BeginSavePoint() (Database, error) {
	child := &fakeDatabase{
		parent:      f,
		contracts:   make(map[string]*Contract, len(f.contracts)),
		blockHeight: f.blockHeight,
	}
	for k, v := range f.contracts {
		child.contracts[k] = v
	}
	return child, nil
}

func (f *fakeDatabase) Commit() error {
	if f.parent != nil {
		f.parent.contracts = f.contracts
	}
	return nil
}

func (f *fakeDatabase) RollBack() error {
	return nil
}

// fakeExpression is a literal value wrapped as an Expression.
type fakeExpression struct {
	value types.Value
	atom  bool
}

func (e fakeExpression) MatchAtomValue() (types.Value, bool) {
	if !e.atom {
		return types.Value{}, false
	}
	return e.value, true
}

// fakeParser returns a fixed expression list, or an error if set.
type fakeParser struct {
	exprs []Expression
	err   error
}

func (p *fakeParser) Parse(source string) ([]Expression, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.exprs, nil
}

// fakeEvaluator dispatches to an injected function so each test can decide
// how evaluation behaves.
type fakeEvaluator struct {
	eval func(expr Expression, env *Environment, local *LocalContext) (types.Value, error)
}

func (e *fakeEvaluator) Eval(expr Expression, env *Environment, local *LocalContext) (types.Value, error) {
	return e.eval(expr, env, local)
}

// fakeFunction is a DefinedFunction whose behavior is fully injected.
type fakeFunction struct {
	id       FunctionIdentifier
	public   bool
	readOnly bool
	apply    func(args []types.Value, env *Environment) (types.Value, error)
}

func (f *fakeFunction) Identifier() FunctionIdentifier { return f.id }
func (f *fakeFunction) IsPublic() bool                 { return f.public }
func (f *fakeFunction) IsReadOnly() bool               { return f.readOnly }
func (f *fakeFunction) ExecuteApply(args []types.Value, env *Environment) (types.Value, error) {
	return f.apply(args, env)
}

// fakeInitializer builds a Contract via an injected function, mimicking
// internal/contracts.Initializer without depending on it.
type fakeInitializer struct {
	build func(name, source string, globalCtx *GlobalContext, parser Parser, evaluator Evaluator) (*Contract, error)
}

func (i *fakeInitializer) Initialize(name, source string, globalCtx *GlobalContext, parser Parser, evaluator Evaluator) (*Contract, error) {
	return i.build(name, source, globalCtx, parser, evaluator)
}

// newTestPrincipal derives a fresh principal from a freshly generated key —
// tests only need distinct, stable identities, not any particular key.
func newTestPrincipal() types.PrincipalData {
	priv, err := crypto.GenerateECDSAKeyPair()
	if err != nil {
		panic(err)
	}
	p, err := types.NewPrincipalFromPublicKey(&priv.PublicKey)
	if err != nil {
		panic(err)
	}
	return p
}
