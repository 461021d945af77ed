package mempool_test

import (
	"testing"

	"github.com/minechain/minechain/foundation/blockchain/database"
	"github.com/minechain/minechain/foundation/blockchain/mempool"
	"github.com/minechain/minechain/foundation/blockchain/mempool/selector"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestCRUD(t *testing.T) {
	t.Log("Given the need to validate mempool api.")
	{
		t.Logf("\tTest 0:\tWhen handling a set of transactions.")
		{
			txs := []database.Tx{
				{FromID: "miner1", ToID: "alice", Value: 25, Fee: 0.001, TimeStamp: 1},
				{FromID: "alice", ToID: "bob", Value: 5, Fee: 0.05, TimeStamp: 2},
				{FromID: "bob", ToID: "carol", Value: 1, Fee: 0.01, TimeStamp: 3},
			}

			mp, err := mempool.New()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct a mempool: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to construct a mempool.", success)

			for _, tx := range txs {
				if _, err := mp.Upsert(tx); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to add a transaction: %v", failed, err)
				}
			}
			if mp.Count() != len(txs) {
				t.Fatalf("\t%s\tTest 0:\tShould count the added transactions: got %d.", failed, mp.Count())
			}
			t.Logf("\t%s\tTest 0:\tShould be able to add transactions.", success)

			// Re-adding an existing transaction must not grow the pool.
			if n, _ := mp.Upsert(txs[0]); n != len(txs) {
				t.Fatalf("\t%s\tTest 0:\tShould not grow the pool on upsert: got %d.", failed, n)
			}
			t.Logf("\t%s\tTest 0:\tShould not grow the pool on upsert.", success)

			for i, tx := range mp.Copy() {
				if !tx.Equals(txs[i]) {
					t.Fatalf("\t%s\tTest 0:\tShould keep submission order: position %d got %s.", failed, i, tx)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould keep submission order.", success)

			if err := mp.Delete(txs[1]); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to delete a transaction: %v", failed, err)
			}
			if mp.Count() != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould count two transactions after delete: got %d.", failed, mp.Count())
			}
			t.Logf("\t%s\tTest 0:\tShould be able to delete a transaction.", success)

			if err := mp.Delete(txs[1]); err == nil {
				t.Fatalf("\t%s\tTest 0:\tShould not be able to delete a missing transaction.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould not be able to delete a missing transaction.", success)

			mp.Truncate()
			if mp.Count() != 0 {
				t.Fatalf("\t%s\tTest 0:\tShould be able to truncate the pool: got %d.", failed, mp.Count())
			}
			t.Logf("\t%s\tTest 0:\tShould be able to truncate the pool.", success)
		}
	}
}

func TestPickBest(t *testing.T) {
	t.Log("Given the need to validate the selection strategies.")
	{
		txs := []database.Tx{
			{FromID: "miner1", ToID: "alice", Value: 25, Fee: 0.001, TimeStamp: 1},
			{FromID: "alice", ToID: "bob", Value: 5, Fee: 0.05, TimeStamp: 2},
			{FromID: "bob", ToID: "carol", Value: 1, Fee: 0.01, TimeStamp: 3},
		}

		t.Logf("\tTest 0:\tWhen using the fifo strategy.")
		{
			mp, err := mempool.NewWithStrategy(selector.StrategyFIFO)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct a mempool: %v", failed, err)
			}
			for _, tx := range txs {
				mp.Upsert(tx)
			}

			best := mp.PickBest(2)
			if len(best) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould pick two transactions: got %d.", failed, len(best))
			}
			if !best[0].Equals(txs[0]) || !best[1].Equals(txs[1]) {
				t.Fatalf("\t%s\tTest 0:\tShould pick the oldest transactions first.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould pick the oldest transactions first.", success)

			if len(mp.PickBest(-1)) != len(txs) {
				t.Fatalf("\t%s\tTest 0:\tShould pick everything with -1.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould pick everything with -1.", success)
		}

		t.Logf("\tTest 1:\tWhen using the fee strategy.")
		{
			mp, err := mempool.NewWithStrategy(selector.StrategyFee)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to construct a mempool: %v", failed, err)
			}
			for _, tx := range txs {
				mp.Upsert(tx)
			}

			best := mp.PickBest(2)
			if len(best) != 2 {
				t.Fatalf("\t%s\tTest 1:\tShould pick two transactions: got %d.", failed, len(best))
			}
			if best[0].Fee != 0.05 || best[1].Fee != 0.01 {
				t.Fatalf("\t%s\tTest 1:\tShould pick the highest fees first: got %v, %v.", failed, best[0].Fee, best[1].Fee)
			}
			t.Logf("\t%s\tTest 1:\tShould pick the highest fees first.", success)
		}

		t.Logf("\tTest 2:\tWhen using an unknown strategy.")
		{
			if _, err := mempool.NewWithStrategy("guess"); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould not be able to construct a mempool.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould not be able to construct a mempool.", success)
		}
	}
}
