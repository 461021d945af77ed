// Package selector provides different transaction selection strategies for
// picking transactions out of the mempool for the next block.
package selector

import (
	"fmt"
	"strings"

	"github.com/minechain/minechain/foundation/blockchain/database"
)

// List of supported selection strategies.
const (
	StrategyFIFO = "fifo"
	StrategyFee  = "fee"
)

// Func defines a function that takes transactions in submission order and
// returns the set to mine next. A howMany of -1 selects everything.
type Func func(trans []database.Tx, howMany int) []database.Tx

var strategies = map[string]Func{
	StrategyFIFO: fifoSelect,
	StrategyFee:  feeSelect,
}

// Retrieve returns the selection function for the specified strategy.
func Retrieve(strategy string) (Func, error) {
	fn, exists := strategies[strings.ToLower(strategy)]
	if !exists {
		return nil, fmt.Errorf("strategy %q does not exist", strategy)
	}

	return fn, nil
}
