package public

import "github.com/minechain/minechain/foundation/blockchain/database"

// newTx is the payload clients post to add a transaction to the mempool. A
// missing fee falls back to the chain's default transaction fee.
type newTx struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Value float64  `json:"value"`
	Fee   *float64 `json:"fee"`
}

type tx struct {
	From      database.AccountID `json:"from"`
	To        database.AccountID `json:"to"`
	Value     float64            `json:"value"`
	Fee       float64            `json:"fee"`
	TimeStamp int64              `json:"timestamp"`
	Hash      string             `json:"hash"`
}

type account struct {
	Account database.AccountID `json:"account"`
	Balance float64            `json:"balance"`
}

type accountInfo struct {
	LatestBlock string    `json:"latest_block"`
	Uncommitted int       `json:"uncommitted"`
	Accounts    []account `json:"accounts"`
}

type block struct {
	Number        uint64 `json:"number"`
	PrevBlockHash string `json:"prev_block_hash"`
	TransRoot     string `json:"trans_root"`
	Difficulty    int    `json:"difficulty"`
	Nonce         uint64 `json:"nonce"`
	TimeStamp     int64  `json:"timestamp"`
	Hash          string `json:"hash"`
	Transactions  []tx   `json:"transactions"`
}
