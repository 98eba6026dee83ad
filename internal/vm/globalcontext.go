package vm

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/empower1/contractvm/internal/types"
)

// GlobalContext is the outermost context for a transaction's execution.
// Logically it never changes across a transaction — but cross-contract
// calls nest it via save points, so the innermost GlobalContext can commit
// or abort independently of the outermost one. It is easiest to think of
// GlobalContext as "the database context": everything that must survive or
// be discarded atomically hangs off it.
type GlobalContext struct {
	parentMap *AssetMap
	database  Database
	readOnly  bool
	assetMap  *AssetMap

	// traceID correlates every log line emitted by this nesting chain back
	// to the top-level transaction that started it.
	traceID string
	logger  *zap.SugaredLogger
}

// NewGlobalContext wraps an already-open Database as a top-level context.
func NewGlobalContext(database Database, logger *zap.SugaredLogger) *GlobalContext {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &GlobalContext{
		database: database,
		assetMap: NewAssetMap(),
		traceID:  uuid.NewString(),
		logger:   logger,
	}
}

// BeginGlobalContext opens a save point on transacter and wraps it as a
// fresh top-level GlobalContext — the entry point OwnedEnvironment uses to
// start a transaction.
func BeginGlobalContext(transacter Database, logger *zap.SugaredLogger) (*GlobalContext, error) {
	db, err := transacter.BeginSavePoint()
	if err != nil {
		return nil, NewInterpreterError("failed to open root save point: " + err.Error())
	}
	return NewGlobalContext(db, logger), nil
}

// TraceID returns the identifier used to correlate this context's log
// output across nested scopes.
func (g *GlobalContext) TraceID() string {
	return g.traceID
}

// LogAssetTransfer records that amount of contractName's assetName moved
// against sender's running total in this scope's AssetMap.
func (g *GlobalContext) LogAssetTransfer(sender types.PrincipalData, contractName, assetName string, amount *types.Value) error {
	id := types.AssetIdentifier{ContractName: contractName, AssetName: assetName}
	if err := g.assetMap.AddTransfer(sender, id, amount.IntVal); err != nil {
		g.logger.Warnw("asset transfer rejected", "trace_id", g.traceID, "sender", sender.String(), "asset", id.String(), "error", err)
		return err
	}
	return nil
}

// GetBlockHeight returns the current simulated block height. A database
// failure here is process-fatal: chain-state reads are assumed to always
// succeed against a correctly operating database, per spec.md.
func (g *GlobalContext) GetBlockHeight() uint64 {
	height, err := g.database.GetSimmedBlockHeight()
	if err != nil {
		panic("failed to obtain the current block height: " + err.Error())
	}
	return height
}

// GetBlockTime returns the simulated block time for height.
func (g *GlobalContext) GetBlockTime(height uint64) uint64 {
	t, err := g.database.GetSimmedBlockTime(height)
	if err != nil {
		panic("failed to obtain the block time for the given block height: " + err.Error())
	}
	return t
}

// GetBlockHeaderHash returns the simulated block header hash for height.
func (g *GlobalContext) GetBlockHeaderHash(height uint64) string {
	hash, err := g.database.GetSimmedBlockHeaderHash(height)
	if err != nil {
		panic("failed to obtain the block header hash for the given block height: " + err.Error())
	}
	return hash
}

// GetBurnchainBlockHeaderHash returns the simulated burnchain block header
// hash for height.
func (g *GlobalContext) GetBurnchainBlockHeaderHash(height uint64) string {
	hash, err := g.database.GetSimmedBurnchainBlockHeaderHash(height)
	if err != nil {
		panic("failed to obtain the burnchain block header hash for the given block height: " + err.Error())
	}
	return hash
}

// GetBlockVRFSeed returns the simulated block VRF seed for height.
func (g *GlobalContext) GetBlockVRFSeed(height uint64) string {
	seed, err := g.database.GetSimmedBlockVRFSeed(height)
	if err != nil {
		panic("failed to obtain the block vrf seed for the given block height: " + err.Error())
	}
	return seed
}

// Database exposes the underlying storage handle for this scope, used by
// contract lookup and initialization.
func (g *GlobalContext) Database() Database {
	return g.database
}

// IsReadOnly reports whether writes are disallowed in this scope.
func (g *GlobalContext) IsReadOnly() bool {
	return g.readOnly
}

// Nest opens a save point one level deeper than g, sharing its trace ID and
// logger. The child inherits g's read-only state, so a scope nested under a
// read-only scope is read-only too.
func (g *GlobalContext) Nest() (*GlobalContext, error) {
	return g.nest(g.readOnly)
}

// NestReadOnly opens a save point one level deeper than g with writes
// disallowed, regardless of g's own read-only state.
func (g *GlobalContext) NestReadOnly() (*GlobalContext, error) {
	return g.nest(true)
}

func (g *GlobalContext) nest(readOnly bool) (*GlobalContext, error) {
	db, err := g.database.BeginSavePoint()
	if err != nil {
		return nil, NewInterpreterError("failed to open nested save point: " + err.Error())
	}
	return &GlobalContext{
		parentMap: g.assetMap,
		database:  db,
		readOnly:  readOnly,
		assetMap:  NewAssetMap(),
		traceID:   g.traceID,
		logger:    g.logger,
	}, nil
}

// Commit finalizes g's database save point and merges its AssetMap into
// its parent's, if any. It returns the AssetMap when g has no parent (it
// is the outermost scope of the transaction) and nil otherwise.
func (g *GlobalContext) Commit() (*AssetMap, error) {
	var outMap *AssetMap
	if g.parentMap != nil {
		if err := g.parentMap.CommitOther(g.assetMap); err != nil {
			return nil, err
		}
	} else {
		outMap = g.assetMap
	}

	if err := g.database.Commit(); err != nil {
		return nil, NewInterpreterError("failed to commit save point: " + err.Error())
	}
	scopesCommitted.Inc()
	return outMap, nil
}

// RollBack discards g's database save point without merging its AssetMap
// anywhere — none of g's writes or asset transfers become visible.
func (g *GlobalContext) RollBack() {
	g.database.RollBack()
	scopesRolledBack.Inc()
}

// HandleTxResult decides the fate of a nested scope given the result of
// evaluating a public function body: a committed Response commits the
// scope, a non-committed Response or an evaluation error rolls it back. A
// successful result that isn't a Response is an UncheckedError: public
// functions must return a response type.
func (g *GlobalContext) HandleTxResult(result types.Value, resultErr error) (types.Value, error) {
	if resultErr != nil {
		g.RollBack()
		return types.Value{}, resultErr
	}
	if !result.IsResponse() {
		g.RollBack()
		return types.Value{}, NewContractMustReturnBooleanError()
	}
	if result.Response.Committed {
		if _, err := g.Commit(); err != nil {
			return types.Value{}, err
		}
	} else {
		g.RollBack()
	}
	return result, nil
}
