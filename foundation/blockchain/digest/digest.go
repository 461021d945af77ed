// Package digest provides the hashing support used across the blockchain.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// ZeroHash represents a hash code of zeros. It is used as the previous block
// hash for the genesis block and as the merkle root of an empty block.
const ZeroHash string = "0000000000000000000000000000000000000000000000000000000000000000"

// HashLen is the number of hex characters in an encoded digest.
const HashLen = 64

// Hash returns a unique string for the value. The value is serialized to
// JSON first so the digest is a pure function of the field values in their
// declared order.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Sum returns the hex encoded sha256 digest of the specified string.
func Sum(data string) string {
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
