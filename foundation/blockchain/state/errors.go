package state

import "errors"

// Set of error variables for chain operations. All are local and
// recoverable; none are fatal to the process.
var (

	// ErrInvalidTransaction is returned when a submitted transaction breaks
	// a structural rule: equal sender and receiver, a non-positive value, a
	// negative fee or an empty identifier.
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrInsufficientBalance is returned when the sender's recorded balance
	// is below value plus fee at submission time.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrEmptyMempool is returned when mining is requested with nothing
	// pending.
	ErrEmptyMempool = errors.New("no transactions in mempool")
)
