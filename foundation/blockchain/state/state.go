// Package state is the core API for the chain and implements all the
// business rules and processing.
package state

import (
	"context"
	"sync"

	"github.com/minechain/minechain/foundation/blockchain/database"
	"github.com/minechain/minechain/foundation/blockchain/database/storage/memory"
	"github.com/minechain/minechain/foundation/blockchain/digest"
	"github.com/minechain/minechain/foundation/blockchain/genesis"
	"github.com/minechain/minechain/foundation/blockchain/mempool"
	"github.com/minechain/minechain/foundation/blockchain/mempool/selector"
	"github.com/minechain/minechain/foundation/blockchain/retarget"
)

// defaultMaxMineAttempts bounds the nonce search when the genesis settings
// don't specify a ceiling.
const defaultMaxMineAttempts = 10_000_000

// =============================================================================

// EventHandler defines a function that is called when events occur in the
// processing of mining and maintaining the chain.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by
// any package providing support for background mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to start the chain.
type Config struct {
	BeneficiaryID  database.AccountID
	Genesis        genesis.Genesis
	Storage        database.Storage
	SelectStrategy string
	Adjuster       retarget.Adjuster
	EvHandler      EventHandler
}

// State manages the blockchain database, the mempool and the consensus
// parameters.
type State struct {
	mu sync.Mutex

	beneficiaryID database.AccountID
	evHandler     EventHandler
	genesis       genesis.Genesis
	difficulty    int

	mempool  *mempool.Mempool
	db       *database.Database
	adjuster retarget.Adjuster

	Worker Worker
}

// New constructs a new chain state. When the underlying storage is empty a
// genesis block carrying the seed transaction is mined and committed, so
// construction can take observable wall time.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	gen := cfg.Genesis
	if gen.MaxMineAttempts == 0 {
		gen.MaxMineAttempts = defaultMaxMineAttempts
	}

	strg := cfg.Storage
	if strg == nil {
		var err error
		strg, err = memory.New()
		if err != nil {
			return nil, err
		}
	}

	db, err := database.New(gen, strg, ev)
	if err != nil {
		return nil, err
	}

	strategy := cfg.SelectStrategy
	if strategy == "" {
		strategy = selector.StrategyFIFO
	}
	mpool, err := mempool.NewWithStrategy(strategy)
	if err != nil {
		return nil, err
	}

	adjuster := cfg.Adjuster
	if adjuster == nil {
		prop := retarget.NewProportional()
		if gen.TargetBlockTime > 0 {
			prop.Target = gen.TargetBlockTime
		}
		adjuster = prop
	}

	state := State{
		beneficiaryID: cfg.BeneficiaryID,
		evHandler:     ev,
		genesis:       gen,
		difficulty:    gen.Difficulty,

		mempool:  mpool,
		db:       db,
		adjuster: adjuster,
	}

	// Bootstrap an empty chain with a mined genesis block.
	if db.BlockCount() == 0 {
		if err := state.mineGenesisBlock(); err != nil {
			return nil, err
		}
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running.

	return &state, nil
}

// Shutdown cleanly brings the chain down.
func (s *State) Shutdown() error {
	defer s.db.Close()

	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}

// =============================================================================

// mineGenesisBlock synthesizes and mines the first block of the chain. The
// block carries a single seed transaction funding the designated recipient
// and links to the zero hash sentinel.
func (s *State) mineGenesisBlock() error {
	s.evHandler("state: mineGenesisBlock: started")
	defer s.evHandler("state: mineGenesisBlock: completed")

	seedAccount, err := database.ToAccountID(s.genesis.SeedAccount)
	if err != nil {
		return err
	}
	seedRecipient, err := database.ToAccountID(s.genesis.SeedRecipient)
	if err != nil {
		return err
	}

	seedTx := database.NewTx(seedAccount, seedRecipient, s.genesis.SeedAmount, 0)

	block, err := database.NewBlock(0, digest.ZeroHash, s.difficulty, []database.Tx{seedTx})
	if err != nil {
		return err
	}

	if _, err := block.POW(context.Background(), s.genesis.MaxMineAttempts, s.evHandler); err != nil {
		return err
	}

	return s.db.ApplyBlock(block)
}
