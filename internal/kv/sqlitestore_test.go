package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	return store
}

func TestSQLiteStoreSetGetRemove(t *testing.T) {
	store := newTestSQLiteStore(t)

	_, ok := store.Get("missing")
	assert.False(t, ok)

	require.NoError(t, store.Set("all_chat_ids", `["a","b"]`))
	v, ok := store.Get("all_chat_ids")
	require.True(t, ok)
	assert.Equal(t, `["a","b"]`, v)

	require.NoError(t, store.Remove("all_chat_ids"))
	_, ok = store.Get("all_chat_ids")
	assert.False(t, ok)

	assert.NoError(t, store.Remove("all_chat_ids"))
}

func TestSQLiteStoreUpsert(t *testing.T) {
	store := newTestSQLiteStore(t)

	require.NoError(t, store.Set("k", "v1"))
	require.NoError(t, store.Set("k", "v2"))

	v, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v2", v)
}
