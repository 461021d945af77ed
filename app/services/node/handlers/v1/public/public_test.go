package public_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/minechain/minechain/app/services/node/handlers"
	"github.com/minechain/minechain/foundation/blockchain/genesis"
	"github.com/minechain/minechain/foundation/blockchain/state"
	"github.com/minechain/minechain/foundation/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*httptest.Server, *state.State) {
	gen := genesis.Default()
	gen.Difficulty = 1

	st, err := state.New(state.Config{
		BeneficiaryID: "miner1",
		Genesis:       gen,
		EvHandler:     func(v string, args ...any) {},
	})
	require.NoError(t, err)
	t.Cleanup(func() { st.Shutdown() })

	mux := handlers.PublicMux(handlers.MuxConfig{
		Shutdown: make(chan os.Signal, 1),
		Log:      zap.NewNop().Sugar(),
		State:    st,
		Evts:     events.New(),
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, st
}

func TestGenesisRoute(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/genesis/list")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var gen genesis.Genesis
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&gen))
	assert.Equal(t, 1, gen.Difficulty)
	assert.Equal(t, 50.0, gen.MiningReward)
}

func TestAddTransactionRoute(t *testing.T) {
	srv, st := newTestServer(t)

	good, _ := json.Marshal(map[string]any{
		"from": "miner1", "to": "alice", "value": 25.0, "fee": 0.001,
	})
	resp, err := http.Post(srv.URL+"/v1/tx/add", "application/json", bytes.NewReader(good))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, st.MempoolLength())

	// A self send breaks the structural rules.
	bad, _ := json.Marshal(map[string]any{
		"from": "miner1", "to": "miner1", "value": 5.0, "fee": 0.0,
	})
	resp, err = http.Post(srv.URL+"/v1/tx/add", "application/json", bytes.NewReader(bad))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// An overdraw is rejected at submission time.
	over, _ := json.Marshal(map[string]any{
		"from": "alice", "to": "bob", "value": 9999.0, "fee": 0.0,
	})
	resp, err = http.Post(srv.URL+"/v1/tx/add", "application/json", bytes.NewReader(over))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	assert.Equal(t, 1, st.MempoolLength())
}

func TestAccountsRoute(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/accounts/list/miner1")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info struct {
		LatestBlock string `json:"latest_block"`
		Uncommitted int    `json:"uncommitted"`
		Accounts    []struct {
			Account string  `json:"account"`
			Balance float64 `json:"balance"`
		} `json:"accounts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))

	require.Len(t, info.Accounts, 1)
	assert.Equal(t, "miner1", info.Accounts[0].Account)
	assert.Equal(t, 100.0, info.Accounts[0].Balance)
	assert.NotEmpty(t, info.LatestBlock)
}

func TestValidateRoute(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/chain/validate")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Valid  bool `json:"valid"`
		Blocks int  `json:"blocks"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Valid)
	assert.Equal(t, 1, result.Blocks)
}

func TestBlocksRoute(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/blocks/list")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var blocks []struct {
		Number        uint64 `json:"number"`
		PrevBlockHash string `json:"prev_block_hash"`
		Transactions  []struct {
			From  string  `json:"from"`
			To    string  `json:"to"`
			Value float64 `json:"value"`
		} `json:"transactions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&blocks))

	require.Len(t, blocks, 1)
	assert.Equal(t, uint64(0), blocks[0].Number)
	require.Len(t, blocks[0].Transactions, 1)
	assert.Equal(t, "genesis", blocks[0].Transactions[0].From)
	assert.Equal(t, "miner1", blocks[0].Transactions[0].To)
	assert.Equal(t, 100.0, blocks[0].Transactions[0].Value)
}
