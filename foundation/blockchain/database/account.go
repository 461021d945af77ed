package database

import (
	"errors"
	"strings"
)

// Distinguished accounts used by the chain itself. Coinbase and fees are the
// synthetic senders for the reward and fee transactions minted at mining
// time; they are not funded accounts.
const (
	GenesisAccount  AccountID = "genesis"
	CoinbaseAccount AccountID = "coinbase"
	FeesAccount     AccountID = "fees"
)

// AccountID represents an account in the ledger. Accounts are bare
// identifiers, not cryptographic keys.
type AccountID string

// ToAccountID converts and validates the specified string as an account id.
func ToAccountID(value string) (AccountID, error) {
	if strings.TrimSpace(value) == "" {
		return "", errors.New("account id is empty")
	}

	return AccountID(value), nil
}

// IsZero checks whether the account id is unset.
func (id AccountID) IsZero() bool {
	return id == ""
}
