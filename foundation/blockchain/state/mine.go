package state

import (
	"context"

	"github.com/minechain/minechain/foundation/blockchain/database"
)

// MineNewBlock attempts to create a new block with the transactions currently
// in the mempool plus the synthetic coinbase and fee transactions. On success
// the block is committed to the database and the mined transactions are
// removed from the mempool; a transaction submitted while the nonce search
// was running stays pending for the next block. On any failure, cancellation
// or exhaustion included, the mempool is left untouched so the transactions
// can be mined later.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, database.MineStats, error) {
	defer s.evHandler("state: MineNewBlock: completed")

	s.evHandler("state: MineNewBlock: started: mempool[%d]", s.mempool.Count())

	trans := s.mempool.PickBest(-1)
	if len(trans) == 0 {
		return database.Block{}, database.MineStats{}, ErrEmptyMempool
	}

	blockTrans := s.withSyntheticTrans(trans)

	tip := s.db.LatestBlock()
	block, err := database.NewBlock(tip.Header.Number+1, tip.Hash(), s.Difficulty(), blockTrans)
	if err != nil {
		return database.Block{}, database.MineStats{}, err
	}

	stats, err := block.POW(ctx, s.genesis.MaxMineAttempts, s.evHandler)
	if err != nil {
		return database.Block{}, database.MineStats{}, err
	}

	// A cancellation that raced the solution still loses.
	if ctx.Err() != nil {
		return database.Block{}, database.MineStats{}, ctx.Err()
	}

	// Commit the block and clear the pool together so a storage failure
	// can't drop transactions.
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.ApplyBlock(block); err != nil {
		return database.Block{}, database.MineStats{}, err
	}

	for _, tx := range trans {
		s.mempool.Delete(tx)
	}

	s.evHandler("state: MineNewBlock: block[%d] committed: hash[%s]", block.Header.Number, stats.Hash)

	return block, stats, nil
}

// withSyntheticTrans prepends the miner's reward and fee transactions to the
// selected pool transactions. The fee transaction is only minted when the
// pool actually carries fees.
func (s *State) withSyntheticTrans(trans []database.Tx) []database.Tx {
	blockTrans := make([]database.Tx, 0, len(trans)+2)

	reward := database.NewTx(database.CoinbaseAccount, s.beneficiaryID, s.genesis.MiningReward, 0)
	blockTrans = append(blockTrans, reward)

	var feeTotal float64
	for _, tx := range trans {
		feeTotal += tx.Fee
	}
	if feeTotal > 0 {
		blockTrans = append(blockTrans, database.NewTx(database.FeesAccount, s.beneficiaryID, feeTotal, 0))
	}

	return append(blockTrans, trans...)
}

// =============================================================================

// Difficulty returns the difficulty the next block will be mined at.
func (s *State) Difficulty() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.difficulty
}

// AdjustDifficulty runs the configured adjuster over the chain's headers and
// installs the result as the difficulty for the next block.
func (s *State) AdjustDifficulty() int {
	headers := s.db.CopyHeaders()

	s.mu.Lock()
	defer s.mu.Unlock()

	was := s.difficulty
	s.difficulty = s.adjuster.Adjust(s.difficulty, headers)
	if s.difficulty != was {
		s.evHandler("state: AdjustDifficulty: difficulty[%d] -> difficulty[%d]", was, s.difficulty)
	}

	return s.difficulty
}
