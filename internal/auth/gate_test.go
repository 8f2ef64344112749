package auth

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZeroBug404/chat-duo-offers/internal/config"
	"github.com/ZeroBug404/chat-duo-offers/internal/kv"
	"github.com/ZeroBug404/chat-duo-offers/internal/repository/kvrepo"
)

func newTestGate(t *testing.T) (*Gate, kv.Store) {
	t.Helper()
	store, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	gate := NewGate(store, &config.AuthConfig{Password: "admin123", WindowSeconds: 3600})
	return gate, store
}

func TestGateAuthenticate(t *testing.T) {
	gate, _ := newTestGate(t)

	assert.False(t, gate.IsAuthenticated())
	assert.False(t, gate.Authenticate("wrong"))
	assert.False(t, gate.IsAuthenticated())

	assert.True(t, gate.Authenticate("admin123"))
	assert.True(t, gate.IsAuthenticated())
}

func TestGateWindowExpiry(t *testing.T) {
	gate, store := newTestGate(t)

	// 窗口边缘之外的时间戳视为过期，key 顺带被清掉
	stale := time.Now().Add(-2 * time.Hour).UnixMilli()
	require.NoError(t, store.Set(kvrepo.KeyAuthTimestamp, strconv.FormatInt(stale, 10)))

	assert.False(t, gate.IsAuthenticated())
	_, ok := store.Get(kvrepo.KeyAuthTimestamp)
	assert.False(t, ok)
}

func TestGateWithinWindow(t *testing.T) {
	gate, store := newTestGate(t)

	recent := time.Now().Add(-30 * time.Minute).UnixMilli()
	require.NoError(t, store.Set(kvrepo.KeyAuthTimestamp, strconv.FormatInt(recent, 10)))

	assert.True(t, gate.IsAuthenticated())
}

func TestGateCorruptTimestamp(t *testing.T) {
	gate, store := newTestGate(t)

	require.NoError(t, store.Set(kvrepo.KeyAuthTimestamp, "not-a-number"))
	assert.False(t, gate.IsAuthenticated())

	// 坏数据被清掉
	_, ok := store.Get(kvrepo.KeyAuthTimestamp)
	assert.False(t, ok)
}

func TestGateClear(t *testing.T) {
	gate, _ := newTestGate(t)

	require.True(t, gate.Authenticate("admin123"))
	require.NoError(t, gate.Clear())
	assert.False(t, gate.IsAuthenticated())
}
