package vm

//go:generate mockgen -destination=database_mock.go -package=vm github.com/empower1/contractvm/internal/vm Database

import "github.com/empower1/contractvm/internal/types"

// Expression is a single parsed unit of contract source. The execution
// core only ever needs to know whether an already-parsed argument is a
// literal value — everything else about the AST belongs to the parser and
// evaluator, which live outside this package.
type Expression interface {
	MatchAtomValue() (types.Value, bool)
}

// Parser turns contract source text into a sequence of top-level
// expressions. internal/parser provides the implementation actually used
// at runtime; tests can supply a stub.
type Parser interface {
	Parse(source string) ([]Expression, error)
}

// Evaluator runs a single expression against an Environment and
// LocalContext. internal/eval provides the implementation actually used at
// runtime. Accepting this as an interface here, rather than importing
// internal/eval directly, is what keeps vm and eval from forming an import
// cycle: eval needs *Environment and *LocalContext, and those types live
// here.
type Evaluator interface {
	Eval(expr Expression, env *Environment, local *LocalContext) (types.Value, error)
}

// Database is the execution-context core's view of contract storage: a
// transactional key-value store keyed by contract name, plus read access to
// simulated chain-state accessors (block height, block time, and the
// various header hashes contract code may read). A Database returned by
// BeginSavePoint is itself a Database, so GlobalContext.Nest can recurse
// without knowing anything about the underlying storage engine.
type Database interface {
	GetContract(name string) (*Contract, error)
	InsertContract(name string, contract *Contract) error

	GetSimmedBlockHeight() (uint64, error)
	GetSimmedBlockTime(height uint64) (uint64, error)
	GetSimmedBlockHeaderHash(height uint64) (string, error)
	GetSimmedBurnchainBlockHeaderHash(height uint64) (string, error)
	GetSimmedBlockVRFSeed(height uint64) (string, error)

	BeginSavePoint() (Database, error)
	Commit() error
	RollBack() error
}

// ContractInitializer parses and validates a contract's source into a
// Contract ready to be stored. internal/contracts provides the
// implementation actually used at runtime, wired against a Parser and
// Evaluator; a contract's top-level `define-*` forms are processed once, at
// deploy time.
type ContractInitializer interface {
	Initialize(name, source string, globalCtx *GlobalContext, parser Parser, evaluator Evaluator) (*Contract, error)
}
