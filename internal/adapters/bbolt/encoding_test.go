package bbolt

import (
	"fmt"
	"testing"

	"github.com/corey/roost/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeState_NilIsEmpty(t *testing.T) {
	state, err := decodeState(nil)
	require.NoError(t, err)
	assert.Equal(t, "", state.Query)
	assert.NotNil(t, state.History)
	assert.Empty(t, state.History)
}

func TestDecodeState_NullHistoryBecomesEmpty(t *testing.T) {
	state, err := decodeState([]byte(`{"query":"blog","normalized":"blog","history":null}`))
	require.NoError(t, err)
	assert.Equal(t, "blog", state.Query)
	assert.Equal(t, []string{}, state.History)
}

func TestDecodeState_Corrupt(t *testing.T) {
	_, err := decodeState([]byte(`{"query":`))
	assert.ErrorContains(t, err, "unmarshal filter state")
}

func TestEncodeState_FieldNames(t *testing.T) {
	data, err := encodeState(&ports.FilterState{Query: "My Cool", Normalized: "mycool", History: []string{"My Cool"}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"query":"My Cool"`)
	assert.Contains(t, string(data), `"normalized":"mycool"`)
	assert.Contains(t, string(data), `"history":["My Cool"]`)
}

func TestPushHistory(t *testing.T) {
	got := pushHistory([]string{"blog", "my-cool", "shop"}, "My Cool", "mycool")
	assert.Equal(t, []string{"My Cool", "blog", "shop"}, got)

	var long []string
	for i := 0; i < ports.MaxFilterHistory+5; i++ {
		long = append(long, fmt.Sprintf("q%d", i))
	}
	got = pushHistory(long, "new", "new")
	assert.Len(t, got, ports.MaxFilterHistory)
	assert.Equal(t, "new", got[0])
	assert.Equal(t, "q0", got[1])
}
