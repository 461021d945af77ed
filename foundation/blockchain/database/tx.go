package database

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/minechain/minechain/foundation/blockchain/digest"
	"github.com/minechain/minechain/foundation/validate"
)

// Tx is the transactional information between two parties. Once constructed
// a transaction is never mutated.
type Tx struct {
	FromID    AccountID `json:"from" validate:"required,nefield=ToID"`
	ToID      AccountID `json:"to" validate:"required"`
	Value     float64   `json:"value" validate:"gt=0"`
	Fee       float64   `json:"fee" validate:"gte=0"`
	TimeStamp int64     `json:"timestamp"`
}

// NewTx constructs a transaction between two accounts, stamping it with the
// current time.
func NewTx(fromID AccountID, toID AccountID, value float64, fee float64) Tx {
	return Tx{
		FromID:    fromID,
		ToID:      toID,
		Value:     value,
		Fee:       fee,
		TimeStamp: time.Now().UTC().Unix(),
	}
}

// Validate checks the structural rules for a transaction: distinct non-empty
// parties, a positive value and a non-negative fee. Balance sufficiency is
// not checked here, that requires ledger state the transaction doesn't have.
func (tx Tx) Validate() error {
	return validate.Check(tx)
}

// HashHex returns the hex encoded digest of the transaction. The digest is
// computed over a canonical serialization with a fixed field order, so
// identical field values always produce an identical hash.
func (tx Tx) HashHex() string {
	return digest.Hash(tx)
}

// Hash implements the merkle Hashable interface for providing the raw hash
// bytes of a transaction.
func (tx Tx) Hash() ([]byte, error) {
	return hex.DecodeString(tx.HashHex())
}

// Equals implements the merkle Hashable interface for providing an equality
// check between two transactions.
func (tx Tx) Equals(otherTx Tx) bool {
	return tx.HashHex() == otherTx.HashHex()
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%.6f", tx.FromID, tx.ToID, tx.Value)
}
