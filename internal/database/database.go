// Package database implements vm.Database over a BoltDB-backed contract
// store. BoltDB has no native nested transactions, so save points are kept
// as an in-memory overlay stack instead: BeginSavePoint copies the current view,
// RollBack discards the copy, and Commit either folds the copy back into
// its parent or — at the root — persists it to disk. Only the outermost
// scope ever touches the bolt.DB handle, the same rule
// github.com/alextanhongpin/dbtx applies to nested pgx transactions: only
// the parent of a transaction may commit it.
package database

import (
	"fmt"
	"sync"
	"time"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"

	"github.com/empower1/contractvm/internal/vm"
)

var contractsBucket = []byte("contracts")

// Store is the root, disk-backed handle. It is a vm.Database itself, and
// BeginSavePoint on it (or on any of its descendants) returns an in-memory
// overlay that also satisfies vm.Database.
type Store struct {
	mu          sync.Mutex
	db          *bolt.DB
	parent      *Store
	contracts   map[string]*vm.Contract
	chainHeight uint64

	parser      vm.Parser
	evaluator   vm.Evaluator
	initializer vm.ContractInitializer
	logger      *zap.SugaredLogger
}

// Open opens (creating if necessary) a BoltDB file at path and loads any
// previously deployed contracts into memory, reconstructing each one's
// ContractContext from its persisted source.
func Open(path string, parser vm.Parser, evaluator vm.Evaluator, initializer vm.ContractInitializer, logger *zap.SugaredLogger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open contract store: %w", err)
	}

	store := &Store{
		db:          db,
		contracts:   make(map[string]*vm.Contract),
		parser:      parser,
		evaluator:   evaluator,
		initializer: initializer,
		logger:      logger,
	}

	if err := store.bootstrap(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) bootstrap() error {
	sources := make(map[string]string)
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(contractsBucket)
		if err != nil {
			return err
		}
		return bucket.ForEach(func(name, source []byte) error {
			sources[string(name)] = string(source)
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("bootstrap contract store: %w", err)
	}

	for name, source := range sources {
		global := vm.NewGlobalContext(s, s.logger)
		contract, err := s.initializer.Initialize(name, source, global, s.parser, s.evaluator)
		if err != nil {
			s.logger.Warnw("dropping unparseable contract on load", "contract", name, "error", err)
			continue
		}
		s.contracts[name] = contract
	}
	return nil
}

// Close releases the underlying BoltDB handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetContract returns the live, parsed contract named name.
func (s *Store) GetContract(name string) (*vm.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contract, ok := s.contracts[name]
	if !ok {
		return nil, fmt.Errorf("no such contract: %s", name)
	}
	return contract, nil
}

// InsertContract registers contract under name in this scope's view.
func (s *Store) InsertContract(name string, contract *vm.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contracts[name] = contract
	return nil
}

// GetSimmedBlockHeight returns the simulated current block height.
func (s *Store) GetSimmedBlockHeight() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chainHeight, nil
}

// SetSimmedBlockHeight sets the simulated current block height — used by
// tests to pin chain state, since there is no real consensus layer behind
// this store.
func (s *Store) SetSimmedBlockHeight(height uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chainHeight = height
}

// GetSimmedBlockTime derives a deterministic simulated block time: ten
// minutes per block height, the same cadence Bitcoin-derived chains target.
func (s *Store) GetSimmedBlockTime(height uint64) (uint64, error) {
	const blockIntervalSeconds = 600
	return height * blockIntervalSeconds, nil
}

// GetSimmedBlockHeaderHash returns a deterministic placeholder header hash
// for height, stable within a single process.
func (s *Store) GetSimmedBlockHeaderHash(height uint64) (string, error) {
	return fmt.Sprintf("simmed-block-header-%d", height), nil
}

// GetSimmedBurnchainBlockHeaderHash returns a deterministic placeholder
// burnchain header hash for height.
func (s *Store) GetSimmedBurnchainBlockHeaderHash(height uint64) (string, error) {
	return fmt.Sprintf("simmed-burnchain-header-%d", height), nil
}

// GetSimmedBlockVRFSeed returns a deterministic placeholder VRF seed for
// height.
func (s *Store) GetSimmedBlockVRFSeed(height uint64) (string, error) {
	return fmt.Sprintf("simmed-vrf-seed-%d", height), nil
}

// BeginSavePoint returns an in-memory overlay scoped one level deeper than
// s. Nothing is written to disk until the outermost scope commits.
func (s *Store) BeginSavePoint() (vm.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	child := &Store{
		parent:      s,
		contracts:   make(map[string]*vm.Contract, len(s.contracts)),
		chainHeight: s.chainHeight,
		parser:      s.parser,
		evaluator:   s.evaluator,
		initializer: s.initializer,
		logger:      s.logger,
	}
	for name, contract := range s.contracts {
		child.contracts[name] = contract
	}
	return child, nil
}

// Commit folds this scope's view back into its parent. At the root scope
// (no parent), it persists every contract's source to disk.
func (s *Store) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.parent != nil {
		s.parent.mu.Lock()
		s.parent.contracts = s.contracts
		s.parent.chainHeight = s.chainHeight
		s.parent.mu.Unlock()
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(contractsBucket)
		if err != nil {
			return err
		}
		for name, contract := range s.contracts {
			if err := bucket.Put([]byte(name), []byte(contract.Source)); err != nil {
				return err
			}
		}
		return nil
	})
}

// RollBack discards this scope's view; the parent's state is untouched.
func (s *Store) RollBack() error {
	return nil
}
