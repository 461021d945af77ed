// Package mempool maintains the pool of submitted but not yet mined
// transactions.
package mempool

import (
	"fmt"
	"sync"

	"github.com/minechain/minechain/foundation/blockchain/database"
	"github.com/minechain/minechain/foundation/blockchain/mempool/selector"
)

// Mempool represents a cache of transactions keyed by their hash. Submission
// order is preserved so blocks can carry the pool in the order it was filled.
type Mempool struct {
	mu       sync.RWMutex
	pool     map[string]database.Tx
	order    []string
	selectFn selector.Func
}

// New constructs a new mempool using the default fifo strategy.
func New() (*Mempool, error) {
	return NewWithStrategy(selector.StrategyFIFO)
}

// NewWithStrategy constructs a new mempool with the specified selection
// strategy.
func NewWithStrategy(strategy string) (*Mempool, error) {
	selectFn, err := selector.Retrieve(strategy)
	if err != nil {
		return nil, err
	}

	mp := Mempool{
		pool:     make(map[string]database.Tx),
		selectFn: selectFn,
	}

	return &mp, nil
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Upsert adds or replaces a transaction in the mempool. A replaced
// transaction keeps its original submission position.
func (mp *Mempool) Upsert(tx database.Tx) (int, error) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	key := tx.HashHex()
	if _, exists := mp.pool[key]; !exists {
		mp.order = append(mp.order, key)
	}
	mp.pool[key] = tx

	return len(mp.pool), nil
}

// Delete removes a transaction from the mempool.
func (mp *Mempool) Delete(tx database.Tx) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	key := tx.HashHex()
	if _, exists := mp.pool[key]; !exists {
		return fmt.Errorf("transaction %q does not exist in the mempool", key)
	}

	delete(mp.pool, key)
	for i, k := range mp.order {
		if k == key {
			mp.order = append(mp.order[:i], mp.order[i+1:]...)
			break
		}
	}

	return nil
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = make(map[string]database.Tx)
	mp.order = nil
}

// Copy returns the transactions in their original submission order.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	trans := make([]database.Tx, 0, len(mp.order))
	for _, key := range mp.order {
		trans = append(trans, mp.pool[key])
	}

	return trans
}

// PickBest uses the configured selection strategy to return the next set of
// transactions for the next block. A howMany of -1 selects everything.
func (mp *Mempool) PickBest(howMany int) []database.Tx {
	return mp.selectFn(mp.Copy(), howMany)
}
