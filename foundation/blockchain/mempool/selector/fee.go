package selector

import (
	"sort"

	"github.com/minechain/minechain/foundation/blockchain/database"
)

// feeSelect returns the transactions paying the highest fees first. The sort
// is stable so equal fees keep their submission order.
func feeSelect(trans []database.Tx, howMany int) []database.Tx {
	sorted := make([]database.Tx, len(trans))
	copy(sorted, trans)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Fee > sorted[j].Fee
	})

	if howMany == -1 || howMany > len(sorted) {
		howMany = len(sorted)
	}

	return sorted[:howMany]
}
