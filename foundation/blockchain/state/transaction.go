package state

import (
	"fmt"

	"github.com/minechain/minechain/foundation/blockchain/database"
)

// SubmitTransaction validates a transaction and, when accepted, adds it to
// the mempool. The balance check reflects confirmed state only: multiple
// pending transactions from the same account can each pass individually and
// later overdraw when mined together. Acceptance here does not guarantee the
// transaction will ever be mined.
func (s *State) SubmitTransaction(tx database.Tx) error {
	s.evHandler("state: SubmitTransaction: started: from[%s] to[%s] value[%f]", tx.FromID, tx.ToID, tx.Value)
	defer s.evHandler("state: SubmitTransaction: completed")

	if err := tx.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTransaction, err)
	}

	needed := tx.Value + tx.Fee
	if balance := s.db.Balance(tx.FromID); balance < needed {
		return fmt.Errorf("%w: account %s holds %f, needs %f", ErrInsufficientBalance, tx.FromID, balance, needed)
	}

	n, err := s.mempool.Upsert(tx)
	if err != nil {
		return err
	}

	s.evHandler("state: SubmitTransaction: accepted: tx[%s] mempool[%d]", tx.HashHex(), n)

	if s.Worker != nil {
		s.Worker.SignalStartMining()
	}

	return nil
}
