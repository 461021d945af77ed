package genesis_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/minechain/minechain/foundation/blockchain/genesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	gen := genesis.Default()

	assert.Equal(t, 4, gen.Difficulty)
	assert.Equal(t, 50.0, gen.MiningReward)
	assert.Equal(t, 0.001, gen.TransactionFee)
	assert.Equal(t, 1_000_000.0, gen.Balances["genesis"])
	assert.Equal(t, "genesis", gen.SeedAccount)
	assert.Equal(t, "miner1", gen.SeedRecipient)
	assert.Equal(t, 100.0, gen.SeedAmount)
	assert.NotZero(t, gen.ID)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.json")

	gen := genesis.Default()
	require.NoError(t, gen.Save(path))

	loaded, err := genesis.Load(path)
	require.NoError(t, err)

	assert.Equal(t, gen.ID, loaded.ID)
	assert.Equal(t, gen.Difficulty, loaded.Difficulty)
	assert.Equal(t, gen.Balances, loaded.Balances)
	assert.Equal(t, gen.TargetBlockTime, loaded.TargetBlockTime)
	assert.Equal(t, gen.MaxMineAttempts, loaded.MaxMineAttempts)
}

func TestLoadMissing(t *testing.T) {
	_, err := genesis.Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

// A corrupt file must fail with a parse error, not look like a missing file.
// Startup relies on that distinction to refuse a damaged chain configuration.
func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"difficulty": not json`), 0644))

	_, err := genesis.Load(path)
	require.Error(t, err)
	assert.False(t, errors.Is(err, fs.ErrNotExist))
}
