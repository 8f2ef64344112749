package kvrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRegistrySetActiveID(t *testing.T) {
	reg := NewChatRegistry(newTestStore(t))

	assert.Equal(t, "", reg.ActiveID())
	assert.Empty(t, reg.AllIDs())

	require.NoError(t, reg.SetActiveID("a"))
	assert.Equal(t, "a", reg.ActiveID())
	assert.Equal(t, []string{"a"}, reg.AllIDs())

	require.NoError(t, reg.SetActiveID("b"))
	assert.Equal(t, "b", reg.ActiveID())
	assert.Equal(t, []string{"a", "b"}, reg.AllIDs())

	// 重复激活不产生重复条目
	require.NoError(t, reg.SetActiveID("a"))
	assert.Equal(t, "a", reg.ActiveID())
	assert.Equal(t, []string{"a", "b"}, reg.AllIDs())
}

func TestChatRegistryRemove(t *testing.T) {
	reg := NewChatRegistry(newTestStore(t))

	require.NoError(t, reg.SetActiveID("a"))
	require.NoError(t, reg.SetActiveID("b"))

	// 删非活跃会话：活跃指针不动
	require.NoError(t, reg.Remove("a"))
	assert.Equal(t, []string{"b"}, reg.AllIDs())
	assert.Equal(t, "b", reg.ActiveID())

	// 删活跃会话：指针一并清空
	require.NoError(t, reg.Remove("b"))
	assert.Empty(t, reg.AllIDs())
	assert.Equal(t, "", reg.ActiveID())

	// 删除不存在的 id 幂等
	assert.NoError(t, reg.Remove("ghost"))
}

func TestChatRegistryMalformedList(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set(KeyAllChats, "oops"))

	reg := NewChatRegistry(store)
	assert.Empty(t, reg.AllIDs())

	// 坏数据被下一次写入覆盖
	require.NoError(t, reg.SetActiveID("a"))
	assert.Equal(t, []string{"a"}, reg.AllIDs())
}
