// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	v1 "github.com/minechain/minechain/business/web/v1"
	"github.com/minechain/minechain/foundation/blockchain/database"
	"github.com/minechain/minechain/foundation/blockchain/state"
	"github.com/minechain/minechain/foundation/events"
	"github.com/minechain/minechain/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of public node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// AddTransaction adds a new user transaction to the mempool.
func (h Handlers) AddTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var userTx newTx
	if err := web.Decode(r, &userTx); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	from, err := database.ToAccountID(userTx.From)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}
	to, err := database.ToAccountID(userTx.To)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	fee := h.State.RetrieveGenesis().TransactionFee
	if userTx.Fee != nil {
		fee = *userTx.Fee
	}

	dbTx := database.NewTx(from, to, userTx.Value, fee)

	h.Log.Infow("add user tran", "traceid", v.TraceID, "from", dbTx.FromID, "to", dbTx.ToID, "value", dbTx.Value, "fee", dbTx.Fee)

	if err := h.State.SubmitTransaction(dbTx); err != nil {
		switch {
		case errors.Is(err, state.ErrInvalidTransaction), errors.Is(err, state.ErrInsufficientBalance):
			return v1.NewRequestError(err, http.StatusBadRequest)
		default:
			return err
		}
	}

	resp := struct {
		Status string `json:"status"`
		Hash   string `json:"hash"`
	}{
		Status: "transaction added to mempool",
		Hash:   dbTx.HashHex(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	mempool := h.State.RetrieveMempool()

	trans := make([]tx, len(mempool))
	for i, tran := range mempool {
		trans[i] = toTxModel(tran)
	}

	return web.Respond(ctx, w, trans, http.StatusOK)
}

// Accounts returns the current confirmed balances, either for all accounts
// or for the single account specified on the route.
func (h Handlers) Accounts(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var accounts []account

	switch acctStr := web.Param(r, "account"); acctStr {
	case "":
		for accountID, balance := range h.State.RetrieveAccounts() {
			accounts = append(accounts, account{Account: accountID, Balance: balance})
		}

	default:
		accountID, err := database.ToAccountID(acctStr)
		if err != nil {
			return v1.NewRequestError(err, http.StatusBadRequest)
		}
		accounts = append(accounts, account{Account: accountID, Balance: h.State.BalanceOf(accountID)})
	}

	ai := accountInfo{
		LatestBlock: h.State.RetrieveLatestBlock().Hash(),
		Uncommitted: h.State.MempoolLength(),
		Accounts:    accounts,
	}

	return web.Respond(ctx, w, ai, http.StatusOK)
}

// BlocksByAccount returns the blocks, either the full chain or only the
// blocks carrying a transaction for the account specified on the route.
func (h Handlers) BlocksByAccount(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var accountID database.AccountID
	if acctStr := web.Param(r, "account"); acctStr != "" {
		var err error
		accountID, err = database.ToAccountID(acctStr)
		if err != nil {
			return v1.NewRequestError(err, http.StatusBadRequest)
		}
	}

	dbBlocks := h.State.QueryBlocksByAccount(accountID)
	if len(dbBlocks) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	blocks := make([]block, len(dbBlocks))
	for i, blk := range dbBlocks {
		trans := make([]tx, len(blk.Trans))
		for j, tran := range blk.Trans {
			trans[j] = toTxModel(tran)
		}

		blocks[i] = block{
			Number:        blk.Header.Number,
			PrevBlockHash: blk.Header.PrevBlockHash,
			TransRoot:     blk.Header.TransRoot,
			Difficulty:    blk.Header.Difficulty,
			Nonce:         blk.Header.Nonce,
			TimeStamp:     blk.Header.TimeStamp,
			Hash:          blk.Hash(),
			Transactions:  trans,
		}
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// ValidateChain re-validates the chain from genesis and reports the result.
func (h Handlers) ValidateChain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := struct {
		Valid  bool   `json:"valid"`
		Blocks int    `json:"blocks"`
		Error  string `json:"error,omitempty"`
	}{
		Valid:  true,
		Blocks: h.State.BlockCount(),
	}

	if err := h.State.Validate(ctx); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SignalMining signals the worker to start a mining operation.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if h.State.Worker != nil {
		h.State.Worker.SignalStartMining()
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining signaled",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// toTxModel converts a database transaction to its response form.
func toTxModel(tran database.Tx) tx {
	return tx{
		From:      tran.FromID,
		To:        tran.ToID,
		Value:     tran.Value,
		Fee:       tran.Fee,
		TimeStamp: tran.TimeStamp,
		Hash:      tran.HashHex(),
	}
}
