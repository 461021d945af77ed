// Package genesis maintains access to the genesis settings for the chain.
package genesis

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
)

// Genesis represents the starting settings and balances for the chain.
type Genesis struct {
	ID              uuid.UUID          `json:"id"`                // Unique id for this running instance of the chain.
	Date            time.Time          `json:"date"`              // Time the chain was bootstrapped.
	Difficulty      int                `json:"difficulty"`        // Number of leading zero hex characters a block hash needs.
	MiningReward    float64            `json:"mining_reward"`     // Reward for mining a block.
	TransactionFee  float64            `json:"transaction_fee"`   // Default fee attached to a transaction.
	TargetBlockTime time.Duration      `json:"target_block_time"` // Desired time between blocks for difficulty retargeting.
	MaxMineAttempts uint64             `json:"max_mine_attempts"` // Ceiling on nonce attempts before mining aborts.
	Balances        map[string]float64 `json:"balances"`          // Accounts funded before the genesis block.
	SeedAccount     string             `json:"seed_account"`      // Account the genesis block transfers funds from.
	SeedRecipient   string             `json:"seed_recipient"`    // Account the genesis block transfers funds to.
	SeedAmount      float64            `json:"seed_amount"`       // Amount transferred by the genesis transaction.
}

// Default constructs the genesis settings used when no genesis file exists.
func Default() Genesis {
	return Genesis{
		ID:              uuid.New(),
		Date:            time.Now().UTC(),
		Difficulty:      4,
		MiningReward:    50.0,
		TransactionFee:  0.001,
		TargetBlockTime: 10 * time.Second,
		MaxMineAttempts: 10_000_000,
		Balances: map[string]float64{
			"genesis": 1_000_000.0,
		},
		SeedAccount:   "genesis",
		SeedRecipient: "miner1",
		SeedAmount:    100.0,
	}
}

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Save writes the genesis settings to the specified path.
func (g Genesis) Save(path string) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
