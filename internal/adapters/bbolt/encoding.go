// Encoding for the stored filter state.
//
// The state is one JSON document under filter/state:
//
//	{"query": "My Cool", "normalized": "mycool",
//	 "history": ["My Cool", "blog"], "updated_at": "2026-03-01T12:00:00Z"}
//
// History is kept newest first and is unique by canonical form.
package bbolt

import (
	"encoding/json"
	"fmt"

	"github.com/corey/roost/internal/domain/search"
	"github.com/corey/roost/internal/ports"
)

// encodeState serializes a state for storage.
func encodeState(state *ports.FilterState) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal filter state: %w", err)
	}
	return data, nil
}

// decodeState parses a stored state. nil data yields an empty state.
func decodeState(data []byte) (*ports.FilterState, error) {
	state := &ports.FilterState{History: []string{}}
	if data == nil {
		return state, nil
	}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("unmarshal filter state: %w", err)
	}
	if state.History == nil {
		state.History = []string{}
	}
	return state, nil
}

// pushHistory puts query at the front of history, dropping any older entry
// with the same canonical form, and caps the result at MaxFilterHistory.
func pushHistory(history []string, query, normalized string) []string {
	out := make([]string, 0, len(history)+1)
	out = append(out, query)
	for _, h := range history {
		if search.Normalize(h) == normalized {
			continue
		}
		out = append(out, h)
		if len(out) == ports.MaxFilterHistory {
			break
		}
	}
	return out
}
