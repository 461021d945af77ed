package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/minechain/minechain/foundation/blockchain/digest"
	"github.com/minechain/minechain/foundation/blockchain/merkle"
)

// ErrMiningExhausted is returned from POW when the nonce search hits its
// attempt ceiling without meeting the difficulty target. The search can be
// retried, possibly after lowering the difficulty.
var ErrMiningExhausted = errors.New("mining attempt ceiling reached")

// progressInterval is the number of attempts between mining progress events.
const progressInterval = 100_000

// =============================================================================

// BlockHeader represents common information required for each block.
type BlockHeader struct {
	Number        uint64 `json:"number"`          // Block number in the chain, 0 for genesis.
	TimeStamp     int64  `json:"timestamp"`       // Time the block was constructed, seconds since epoch.
	PrevBlockHash string `json:"prev_block_hash"` // Hash of the previous block in the chain.
	TransRoot     string `json:"trans_root"`      // Merkle tree root hash for the transactions in this block.
	Difficulty    int    `json:"difficulty"`      // Number of leading zero hex characters the block hash needs.
	Nonce         uint64 `json:"nonce"`           // Value identified to solve the hash solution.
}

// Block represents a group of transactions batched together. The nonce is
// the only field mutated after construction, and only while mining.
type Block struct {
	Header BlockHeader `json:"header"`
	Trans  []Tx        `json:"trans"`
}

// NewBlock constructs a candidate block for mining. The merkle root is
// computed once here and treated as immutable thereafter.
func NewBlock(number uint64, prevBlockHash string, difficulty int, trans []Tx) (Block, error) {
	root, err := TransRoot(trans)
	if err != nil {
		return Block{}, err
	}

	b := Block{
		Header: BlockHeader{
			Number:        number,
			TimeStamp:     time.Now().UTC().Unix(),
			PrevBlockHash: prevBlockHash,
			TransRoot:     root,
			Difficulty:    difficulty,
			Nonce:         0,
		},
		Trans: trans,
	}

	return b, nil
}

// TransRoot computes the merkle root committing to the ordered transaction
// list. An empty list commits to the zero hash sentinel.
func TransRoot(trans []Tx) (string, error) {
	if len(trans) == 0 {
		return digest.ZeroHash, nil
	}

	tree, err := merkle.NewTree(trans)
	if err != nil {
		return "", err
	}

	return tree.RootHex(), nil
}

// Hash returns the unique hash for the block. The hash is a pure function of
// the header fields and is recomputed on every call so it reflects the
// current nonce.
func (b Block) Hash() string {
	data := fmt.Sprintf("%d%d%s%s%d%d",
		b.Header.Number,
		b.Header.TimeStamp,
		b.Header.PrevBlockHash,
		b.Header.TransRoot,
		b.Header.Difficulty,
		b.Header.Nonce,
	)

	return digest.Sum(data)
}

// =============================================================================

// MineStats captures the result of a successful proof of work search.
type MineStats struct {
	Hash       string        `json:"hash"`
	Nonce      uint64        `json:"nonce"`
	Attempts   uint64        `json:"attempts"`
	Elapsed    time.Duration `json:"elapsed"`
	HashRate   float64       `json:"hash_rate"`
	Difficulty int           `json:"difficulty"`
}

// POW performs the work of mining: the nonce is iterated from its current
// value upward until the block hash meets the difficulty target. The search
// is bounded by maxAttempts and can be cancelled through the context.
// Pointer semantics are being used since a nonce is being discovered.
func (b *Block) POW(ctx context.Context, maxAttempts uint64, ev func(v string, args ...any)) (MineStats, error) {
	ev("database: POW: mining: block[%d] difficulty[%d] txs[%d]", b.Header.Number, b.Header.Difficulty, len(b.Trans))

	start := time.Now()

	var attempts uint64
	for {
		attempts++
		if attempts%progressInterval == 0 {
			ev("database: POW: mining: block[%d] attempts[%d]", b.Header.Number, attempts)
		}

		if ctx.Err() != nil {
			ev("database: POW: mining: block[%d] CANCELLED", b.Header.Number)
			return MineStats{}, ctx.Err()
		}

		hash := b.Hash()
		if !HashMeetsDifficulty(b.Header.Difficulty, hash) {
			if attempts >= maxAttempts {
				ev("database: POW: mining: block[%d] EXHAUSTED: attempts[%d]", b.Header.Number, attempts)
				return MineStats{}, ErrMiningExhausted
			}
			b.Header.Nonce++
			continue
		}

		elapsed := time.Since(start)
		var hashRate float64
		if elapsed > 0 {
			hashRate = float64(attempts) / elapsed.Seconds()
		}

		stats := MineStats{
			Hash:       hash,
			Nonce:      b.Header.Nonce,
			Attempts:   attempts,
			Elapsed:    elapsed,
			HashRate:   hashRate,
			Difficulty: b.Header.Difficulty,
		}

		ev("database: POW: mining: block[%d] SOLVED: hash[%s] nonce[%d] attempts[%d]", b.Header.Number, hash, stats.Nonce, attempts)

		return stats, nil
	}
}

// =============================================================================

// ValidateBlock takes a block and validates it against its parent. The
// block's own hash must meet its own stated difficulty, the stored parent
// hash must match the recomputed parent hash, the block number must be the
// next in sequence and the stored merkle root must match the transactions.
func (b Block) ValidateBlock(prevBlock Block, ev func(v string, args ...any)) error {
	ev("database: ValidateBlock: blk[%d]: check: block hash has been solved", b.Header.Number)

	hash := b.Hash()
	if !HashMeetsDifficulty(b.Header.Difficulty, hash) {
		return fmt.Errorf("block %d hash %s does not meet difficulty %d", b.Header.Number, hash, b.Header.Difficulty)
	}

	ev("database: ValidateBlock: blk[%d]: check: block number is the next number", b.Header.Number)

	if b.Header.Number != prevBlock.Header.Number+1 {
		return fmt.Errorf("block %d is not the next number, exp %d", b.Header.Number, prevBlock.Header.Number+1)
	}

	ev("database: ValidateBlock: blk[%d]: check: parent hash matches parent block", b.Header.Number)

	if b.Header.PrevBlockHash != prevBlock.Hash() {
		return fmt.Errorf("block %d parent hash %s doesn't match parent %s", b.Header.Number, b.Header.PrevBlockHash, prevBlock.Hash())
	}

	ev("database: ValidateBlock: blk[%d]: check: merkle root matches transactions", b.Header.Number)

	root, err := TransRoot(b.Trans)
	if err != nil {
		return err
	}
	if b.Header.TransRoot != root {
		return fmt.Errorf("block %d merkle root %s doesn't match transactions %s", b.Header.Number, b.Header.TransRoot, root)
	}

	return nil
}

// ValidateGenesisBlock validates the first block of the chain: number 0,
// the zero hash sentinel as parent, a solved hash and a matching merkle root.
func (b Block) ValidateGenesisBlock(ev func(v string, args ...any)) error {
	ev("database: ValidateGenesisBlock: check: number, sentinel, hash, merkle root")

	if b.Header.Number != 0 {
		return fmt.Errorf("genesis block number is %d, exp 0", b.Header.Number)
	}

	if b.Header.PrevBlockHash != digest.ZeroHash {
		return fmt.Errorf("genesis parent hash %s is not the zero sentinel", b.Header.PrevBlockHash)
	}

	hash := b.Hash()
	if !HashMeetsDifficulty(b.Header.Difficulty, hash) {
		return fmt.Errorf("genesis hash %s does not meet difficulty %d", hash, b.Header.Difficulty)
	}

	root, err := TransRoot(b.Trans)
	if err != nil {
		return err
	}
	if b.Header.TransRoot != root {
		return fmt.Errorf("genesis merkle root %s doesn't match transactions %s", b.Header.TransRoot, root)
	}

	return nil
}

// HashMeetsDifficulty checks the hash complies with the POW rules: the hex
// string must carry at least difficulty leading zero characters.
func HashMeetsDifficulty(difficulty int, hash string) bool {
	if len(hash) != digest.HashLen {
		return false
	}

	if difficulty < 0 || difficulty > digest.HashLen {
		return false
	}

	for _, r := range hash[:difficulty] {
		if r != '0' {
			return false
		}
	}

	return true
}
