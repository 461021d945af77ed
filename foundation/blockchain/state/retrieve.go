package state

import (
	"github.com/minechain/minechain/foundation/blockchain/database"
	"github.com/minechain/minechain/foundation/blockchain/genesis"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveLatestBlock returns a copy of the current tip of the chain.
func (s *State) RetrieveLatestBlock() database.Block {
	return s.db.LatestBlock()
}

// RetrieveBlocks returns a copy of the full chain in order.
func (s *State) RetrieveBlocks() []database.Block {
	return s.db.CopyBlocks()
}

// RetrieveBlockByNumber returns the block with the specified number.
func (s *State) RetrieveBlockByNumber(num uint64) (database.Block, error) {
	return s.db.GetBlock(num)
}

// QueryBlocksByAccount returns the blocks that carry at least one transaction
// involving the specified account. An empty account returns the full chain.
func (s *State) QueryBlocksByAccount(accountID database.AccountID) []database.Block {
	var out []database.Block

	for _, block := range s.db.CopyBlocks() {
		if accountID == "" {
			out = append(out, block)
			continue
		}
		for _, tx := range block.Trans {
			if tx.FromID == accountID || tx.ToID == accountID {
				out = append(out, block)
				break
			}
		}
	}

	return out
}

// BlockCount returns the current length of the chain.
func (s *State) BlockCount() int {
	return s.db.BlockCount()
}

// RetrieveMempool returns a copy of the pending transactions in submission
// order.
func (s *State) RetrieveMempool() []database.Tx {
	return s.mempool.Copy()
}

// MempoolLength returns the current number of pending transactions.
func (s *State) MempoolLength() int {
	return s.mempool.Count()
}

// RetrieveAccounts returns a copy of the confirmed account balances.
func (s *State) RetrieveAccounts() map[database.AccountID]float64 {
	return s.db.CopyAccounts()
}

// BalanceOf returns the confirmed balance for the specified account, zero
// when the account has never transacted.
func (s *State) BalanceOf(accountID database.AccountID) float64 {
	return s.db.Balance(accountID)
}
