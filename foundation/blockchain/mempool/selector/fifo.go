package selector

import "github.com/minechain/minechain/foundation/blockchain/database"

// fifoSelect returns transactions in their original submission order. This
// is the default strategy: blocks carry the pool in the order it was filled.
func fifoSelect(trans []database.Tx, howMany int) []database.Tx {
	if howMany == -1 || howMany > len(trans) {
		howMany = len(trans)
	}

	selected := make([]database.Tx, howMany)
	copy(selected, trans[:howMany])

	return selected
}
