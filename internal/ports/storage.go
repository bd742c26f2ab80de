// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

import "time"

// MaxFilterHistory bounds the number of recent queries kept in FilterState.
const MaxFilterHistory = 20

// FilterStorage persists the dashboard filter between server restarts.
//
// Crash safety: SaveFilter and ClearFilter must be transactional.
// A crash mid-write must not corrupt previously committed data.
type FilterStorage interface {
	// SaveFilter makes query the active filter and records it in the
	// recent-query history. Returns the state as stored.
	SaveFilter(query string) (*FilterState, error)

	// LoadFilter returns the stored state. A fresh store returns an empty
	// state, never nil.
	LoadFilter() (*FilterState, error)

	// ClearFilter drops the active query and the history.
	// Idempotent: clearing an empty store is not an error.
	ClearFilter() error
}

// FilterState is the persisted dashboard filter.
// Normalized is the canonical form of Query, recomputed on every save.
// History holds raw queries, most recent first, unique by canonical form.
type FilterState struct {
	Query      string    `json:"query"`
	Normalized string    `json:"normalized"`
	History    []string  `json:"history"`
	UpdatedAt  time.Time `json:"updated_at"`
}
