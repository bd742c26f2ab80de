// Package bbolt implements the ports.FilterStorage interface using bbolt
// (embedded B+ tree). The dashboard filter lives in a single "filter" bucket
// as one JSON document. Writes are transactional; a crash mid-write cannot
// corrupt previously committed data.
package bbolt

import (
	"errors"
	"fmt"
	"time"

	"github.com/corey/roost/internal/domain/search"
	"github.com/corey/roost/internal/ports"
	bolt "go.etcd.io/bbolt"
)

// Bucket keys
var (
	bucketFilter = []byte("filter")
	keyState     = []byte("state")
)

// OpenTimeout bounds how long NewStore waits for the file lock held by
// another process (usually a running server).
const OpenTimeout = 1 * time.Second

// Store implements ports.FilterStorage backed by bbolt.
type Store struct {
	db  *bolt.DB
	now func() time.Time
}

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: OpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveFilter makes query the active filter and pushes it onto the history.
// A query that normalizes to nothing clears the active filter and leaves
// the history alone. History entries are unique by canonical form; the
// newest spelling wins and moves to the front.
func (s *Store) SaveFilter(query string) (*ports.FilterState, error) {
	var saved *ports.FilterState
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketFilter)
		if err != nil {
			return err
		}
		state, err := decodeState(b.Get(keyState))
		if err != nil {
			return err
		}

		normalized := search.Normalize(query)
		if normalized == "" {
			state.Query = ""
			state.Normalized = ""
		} else {
			state.Query = query
			state.Normalized = normalized
			state.History = pushHistory(state.History, query, normalized)
		}
		state.UpdatedAt = s.now().UTC()

		data, err := encodeState(state)
		if err != nil {
			return err
		}
		if err := b.Put(keyState, data); err != nil {
			return err
		}
		saved = state
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// LoadFilter returns the stored filter state, or an empty state for a
// fresh database.
func (s *Store) LoadFilter() (*ports.FilterState, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFilter)
		if b == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := b.Get(keyState); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decodeState(data)
}

// ClearFilter removes the active query and the history.
// Idempotent: clearing a fresh database is not an error.
func (s *Store) ClearFilter() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		err := tx.DeleteBucket(bucketFilter)
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return nil
		}
		return err
	})
}
