// Package snapshot persists a linear chain-view (a sequence of
// target.BlockIndex records) to a BoltDB file, so a retargeting run can be
// replayed against a fixed chain tip without re-deriving it from a full
// node's block store.
package snapshot

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"driftcoin/internal/target"
)

var bucketHeights = []byte("heights") // height (8 bytes BE) -> record

// recordLen is the fixed-width encoding of one BlockIndex: time (int64),
// bits (uint32), chain work (32-byte big-endian unsigned).
const recordLen = 8 + 4 + 32

// Store wraps a BoltDB database holding one bucket of height-keyed
// BlockIndex records.
type Store struct {
	db   *bolt.DB
	Path string
}

// Open opens or creates the snapshot database at dataDir/chain.db.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("snapshot: mkdir: %w", err)
	}
	dbPath := filepath.Join(dataDir, "chain.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketHeights)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("snapshot: create bucket: %w", err)
	}

	return &Store{db: db, Path: dbPath}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func heightKey(h int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(h))
	return b
}

func encodeRecord(idx *target.BlockIndex) []byte {
	b := make([]byte, recordLen)
	binary.BigEndian.PutUint64(b[0:8], uint64(idx.Time))
	binary.BigEndian.PutUint32(b[8:12], idx.Bits)

	work := idx.ChainWork
	if work == nil {
		work = big.NewInt(0)
	}
	work.FillBytes(b[12:44])
	return b
}

func decodeRecord(height int64, b []byte) (*target.BlockIndex, error) {
	if len(b) != recordLen {
		return nil, fmt.Errorf("snapshot: record at height %d has length %d, want %d", height, len(b), recordLen)
	}
	return &target.BlockIndex{
		Height:    height,
		Time:      int64(binary.BigEndian.Uint64(b[0:8])),
		Bits:      binary.BigEndian.Uint32(b[8:12]),
		ChainWork: new(big.Int).SetBytes(b[12:44]),
	}, nil
}

// Put writes every block from idx back to the genesis it descends from,
// following Prev links, in a single transaction.
func (s *Store) Put(idx *target.BlockIndex) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketHeights)
		for node := idx; node != nil; node = node.Prev {
			if err := bucket.Put(heightKey(node.Height), encodeRecord(node)); err != nil {
				return fmt.Errorf("snapshot: put height %d: %w", node.Height, err)
			}
		}
		return nil
	})
}

// Load reconstructs the stored chain-view and returns its tip (the record
// at the greatest height), with Prev links restored. Returns nil, nil if
// the store is empty.
func (s *Store) Load() (*target.BlockIndex, error) {
	nodes := make(map[int64]*target.BlockIndex)
	var maxHeight int64 = -1

	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketHeights)
		return bucket.ForEach(func(k, v []byte) error {
			height := int64(binary.BigEndian.Uint64(k))
			node, err := decodeRecord(height, v)
			if err != nil {
				return err
			}
			nodes[height] = node
			if height > maxHeight {
				maxHeight = height
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if maxHeight < 0 {
		return nil, nil
	}

	for h, node := range nodes {
		if h == 0 {
			continue
		}
		if prev, ok := nodes[h-1]; ok {
			node.Prev = prev
		}
	}

	return nodes[maxHeight], nil
}
