// Package bolt implements the ability to read and write blocks to a bbolt
// key/value database file.
package bolt

import (
	"encoding/binary"
	"encoding/json"
	"errors"

	"github.com/minechain/minechain/foundation/blockchain/database"
	bbolt "go.etcd.io/bbolt"
)

// blocksBucket is the bucket holding the chain, keyed by block number.
var blocksBucket = []byte("blocks")

// Bolt represents the serialization implementation for reading and storing
// blocks in a bbolt database file. This implements the database.Storage
// interface.
type Bolt struct {
	db *bbolt.DB
}

// New constructs a Bolt value for use, opening or creating the database
// file and the blocks bucket.
func New(dbPath string) (*Bolt, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(blocksBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Bolt{db: db}, nil
}

// Close closes the underlying database file.
func (b *Bolt) Close() error {
	return b.db.Close()
}

// Write takes the specified block data and stores it under its block number.
func (b *Bolt) Write(blockData database.BlockData) error {
	data, err := json.Marshal(blockData)
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(blocksBucket)

		if uint64(bkt.Stats().KeyN) != blockData.Header.Number {
			return errors.New("block is out of order")
		}

		return bkt.Put(blockKey(blockData.Header.Number), data)
	})
}

// GetBlock locates and returns the contents of the specified block by number.
func (b *Bolt) GetBlock(num uint64) (database.BlockData, error) {
	var blockData database.BlockData

	err := b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(blocksBucket).Get(blockKey(num))
		if data == nil {
			return errors.New("block does not exist")
		}
		return json.Unmarshal(data, &blockData)
	})
	if err != nil {
		return database.BlockData{}, err
	}

	return blockData, nil
}

// ForEach returns an iterator to walk through all the blocks starting with
// the genesis block.
func (b *Bolt) ForEach() database.Iterator {
	return &boltIterator{storage: b}
}

// Reset drops and recreates the blocks bucket.
func (b *Bolt) Reset() error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(blocksBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(blocksBucket)
		return err
	})
}

// blockKey encodes a block number as a big endian key so the bucket
// iterates in chain order.
func blockKey(num uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, num)
	return key
}

// =============================================================================

// boltIterator represents the iteration implementation for walking through
// and reading blocks in the database file. This implements the
// database.Iterator interface.
type boltIterator struct {
	storage *Bolt  // Access to the bolt storage API.
	current uint64 // Current block number being iterated over.
	eoc     bool   // Represents the iterator is at the end of the chain.
}

// Next retrieves the next block from the database file.
func (bi *boltIterator) Next() (database.BlockData, error) {
	if bi.eoc {
		return database.BlockData{}, errors.New("end of chain")
	}

	blockData, err := bi.storage.GetBlock(bi.current)
	if err != nil {
		bi.eoc = true
	}

	bi.current++

	return blockData, err
}

// Done returns the end of chain value.
func (bi *boltIterator) Done() bool {
	return bi.eoc
}
