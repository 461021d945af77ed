// Package database maintains the chain of blocks and an in memory ledger of
// account balances.
package database

import (
	"errors"
	"fmt"
	"sync"

	"github.com/minechain/minechain/foundation/blockchain/genesis"
)

// ErrBlockNotFound is returned when the requested block doesn't exist.
var ErrBlockNotFound = errors.New("block not found")

// Database manages the chain of blocks and the balances of the accounts who
// have transacted on the chain.
type Database struct {
	mu sync.RWMutex

	genesis  genesis.Genesis
	blocks   []Block
	accounts map[AccountID]float64

	storage   Storage
	evHandler func(v string, args ...any)
}

// New constructs a new database, applies the genesis balances and replays
// any blocks found in storage, validating each against its parent.
func New(gen genesis.Genesis, storage Storage, evHandler func(v string, args ...any)) (*Database, error) {
	db := Database{
		genesis:   gen,
		accounts:  make(map[AccountID]float64),
		storage:   storage,
		evHandler: evHandler,
	}

	for accountStr, balance := range gen.Balances {
		accountID, err := ToAccountID(accountStr)
		if err != nil {
			return nil, err
		}
		db.accounts[accountID] = balance
	}

	// Replay blocks from storage. Each block's transactions are re-applied
	// so the ledger matches the chain.
	iter := storage.ForEach()
	for blockData, err := iter.Next(); !iter.Done(); blockData, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		block := ToBlock(blockData)

		if block.Header.Number == 0 {
			if err := block.ValidateGenesisBlock(evHandler); err != nil {
				return nil, err
			}
		} else {
			if len(db.blocks) == 0 {
				return nil, fmt.Errorf("storage starts at block %d, genesis missing", block.Header.Number)
			}
			if err := block.ValidateBlock(db.blocks[len(db.blocks)-1], evHandler); err != nil {
				return nil, err
			}
		}

		db.blocks = append(db.blocks, block)
		db.applyTransactions(block.Trans)
	}

	return &db, nil
}

// Close closes the underlying storage.
func (db *Database) Close() {
	db.storage.Close()
}

// Reset re-initializes the database back to the genesis balances with an
// empty chain.
func (db *Database) Reset() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.storage.Reset(); err != nil {
		return err
	}

	db.blocks = nil
	db.accounts = make(map[AccountID]float64)
	for accountStr, balance := range db.genesis.Balances {
		accountID, err := ToAccountID(accountStr)
		if err != nil {
			return err
		}
		db.accounts[accountID] = balance
	}

	return nil
}

// =============================================================================

// ApplyBlock commits a mined block: the block is written to storage,
// appended to the chain and its transactions are applied to the ledger as a
// single step under the database lock. Nothing is mutated when the storage
// write fails.
func (db *Database) ApplyBlock(block Block) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.storage.Write(NewBlockData(block)); err != nil {
		return err
	}

	db.blocks = append(db.blocks, block)
	db.applyTransactions(block.Trans)

	return nil
}

// applyTransactions walks the transactions in order: a known sender is
// debited value plus fee, the receiver is credited value with the account
// created at zero if absent. Fees reach the miner only through the synthetic
// fee transaction minted at mining time. Callers must hold the lock.
func (db *Database) applyTransactions(trans []Tx) {
	for _, tx := range trans {
		if _, exists := db.accounts[tx.FromID]; exists {
			db.accounts[tx.FromID] -= tx.Value + tx.Fee
		}

		if _, exists := db.accounts[tx.ToID]; !exists {
			db.accounts[tx.ToID] = 0
		}
		db.accounts[tx.ToID] += tx.Value
	}
}

// =============================================================================

// Balance returns the stored balance for the specified account or zero when
// the account has never been seen. Pure lookup, no side effects.
func (db *Database) Balance(accountID AccountID) float64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.accounts[accountID]
}

// CopyAccounts makes a copy of the current account balances.
func (db *Database) CopyAccounts() map[AccountID]float64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	accounts := make(map[AccountID]float64, len(db.accounts))
	for accountID, balance := range db.accounts {
		accounts[accountID] = balance
	}

	return accounts
}

// BlockCount returns the current length of the chain.
func (db *Database) BlockCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.blocks)
}

// LatestBlock returns the current tip of the chain. The zero value is
// returned when the chain is empty.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if len(db.blocks) == 0 {
		return Block{}
	}

	return db.blocks[len(db.blocks)-1]
}

// GetBlock returns the block with the specified number.
func (db *Database) GetBlock(num uint64) (Block, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if num >= uint64(len(db.blocks)) {
		return Block{}, ErrBlockNotFound
	}

	return db.blocks[num], nil
}

// CopyBlocks makes a copy of the current chain of blocks.
func (db *Database) CopyBlocks() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	blocks := make([]Block, len(db.blocks))
	copy(blocks, db.blocks)

	return blocks
}

// CopyHeaders makes a copy of the block headers in chain order.
func (db *Database) CopyHeaders() []BlockHeader {
	db.mu.RLock()
	defer db.mu.RUnlock()

	headers := make([]BlockHeader, len(db.blocks))
	for i, block := range db.blocks {
		headers[i] = block.Header
	}

	return headers
}
