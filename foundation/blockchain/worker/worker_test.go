package worker_test

import (
	"testing"
	"time"

	"github.com/minechain/minechain/foundation/blockchain/database"
	"github.com/minechain/minechain/foundation/blockchain/genesis"
	"github.com/minechain/minechain/foundation/blockchain/state"
	"github.com/minechain/minechain/foundation/blockchain/worker"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func noop(v string, args ...any) {}

func TestBackgroundMining(t *testing.T) {
	t.Log("Given the need to validate background mining.")
	{
		t.Logf("\tTest 0:\tWhen submitting a transaction with a running worker.")
		{
			gen := genesis.Default()
			gen.Difficulty = 1

			st, err := state.New(state.Config{
				BeneficiaryID: "miner1",
				Genesis:       gen,
				EvHandler:     noop,
			})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to construct the state: %v", failed, err)
			}
			defer st.Shutdown()

			worker.Run(st, noop)
			if st.Worker == nil {
				t.Fatalf("\t%s\tTest 0:\tShould register the worker with the state.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould register the worker with the state.", success)

			if err := st.SubmitTransaction(database.NewTx("miner1", "alice", 25, 0.001)); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to submit the transaction: %v", failed, err)
			}

			// The submission signals the worker, so the block should show up
			// without an explicit mining call.
			deadline := time.Now().Add(10 * time.Second)
			for st.BlockCount() < 2 {
				if time.Now().After(deadline) {
					t.Fatalf("\t%s\tTest 0:\tShould mine the block in the background.", failed)
				}
				time.Sleep(10 * time.Millisecond)
			}
			t.Logf("\t%s\tTest 0:\tShould mine the block in the background.", success)

			deadline = time.Now().Add(time.Second)
			for st.MempoolLength() != 0 {
				if time.Now().After(deadline) {
					t.Fatalf("\t%s\tTest 0:\tShould clear the mempool: got %d.", failed, st.MempoolLength())
				}
				time.Sleep(10 * time.Millisecond)
			}
			t.Logf("\t%s\tTest 0:\tShould clear the mempool.", success)

			if bal := st.BalanceOf("alice"); bal != 25 {
				t.Fatalf("\t%s\tTest 0:\tShould settle the balances: got %v.", failed, bal)
			}
			t.Logf("\t%s\tTest 0:\tShould settle the balances.", success)
		}
	}
}
