package kvrepo

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZeroBug404/chat-duo-offers/internal/datamodels/message"
	"github.com/ZeroBug404/chat-duo-offers/internal/kv"
)

func newTestStore(t *testing.T) kv.Store {
	t.Helper()
	store, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestDecodeMessagesEnvelope(t *testing.T) {
	raw := `{"messages":[{"id":1,"text":"hi","sender":"seller","timestamp":"10:30"}],"lastUpdated":1700000000000}`
	msgs := DecodeMessages(raw)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Text)
	assert.Equal(t, message.SenderSeller, msgs[0].Sender)
}

func TestDecodeMessagesLegacyBareArray(t *testing.T) {
	raw := `[{"id":1,"text":"old","sender":"buyer","timestamp":"09:00"}]`
	msgs := DecodeMessages(raw)
	require.Len(t, msgs, 1)
	assert.Equal(t, "old", msgs[0].Text)
	assert.Equal(t, message.SenderBuyer, msgs[0].Sender)
}

func TestDecodeMessagesMalformed(t *testing.T) {
	assert.Nil(t, DecodeMessages(""))
	assert.Nil(t, DecodeMessages("not json"))
	assert.Nil(t, DecodeMessages(`{"foo":"bar"}`))
	// 信封在但 messages 字段缺失，同样按空处理
	assert.Nil(t, DecodeMessages(`{"lastUpdated":123}`))
}

func TestMessageRepoListEmpty(t *testing.T) {
	repo := NewMessageRepository(newTestStore(t))
	msgs := repo.List("nope")
	require.NotNil(t, msgs)
	assert.Empty(t, msgs)
}

func TestMessageRepoAppendAssignsIDs(t *testing.T) {
	repo := NewMessageRepository(newTestStore(t))

	msgs, err := repo.Append("abc", message.Message{Text: "one", Sender: message.SenderSeller})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, int64(1), msgs[0].ID)

	msgs, err = repo.Append("abc", message.Message{Text: "two", Sender: message.SenderBuyer})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, int64(2), msgs[1].ID)
}

func TestMessageRepoAppendAfterGap(t *testing.T) {
	repo := NewMessageRepository(newTestStore(t))

	// 历史数据的 ID 不连续，新 ID 取最大值 +1
	seed := []message.Message{
		{ID: 3, Text: "a", Sender: message.SenderSeller, Timestamp: "10:00"},
		{ID: 7, Text: "b", Sender: message.SenderBuyer, Timestamp: "10:01"},
	}
	require.NoError(t, repo.Save("abc", seed))

	msgs, err := repo.Append("abc", message.Message{Text: "c", Sender: message.SenderSeller})
	require.NoError(t, err)
	assert.Equal(t, int64(8), msgs[len(msgs)-1].ID)
}

func TestMessageRepoSaveWritesEnvelope(t *testing.T) {
	store := newTestStore(t)
	repo := NewMessageRepository(store)

	require.NoError(t, repo.Save("abc", []message.Message{{ID: 1, Text: "hi", Sender: message.SenderSeller}}))

	raw, ok := store.Get(MessageKey("abc"))
	require.True(t, ok)
	var env message.Log
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	require.Len(t, env.Messages, 1)
	assert.Positive(t, env.LastUpdated)
}

func TestMessageRepoReadsLegacyFormat(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set(MessageKey("abc"), `[{"id":1,"text":"old","sender":"buyer","timestamp":"09:00"}]`))

	repo := NewMessageRepository(store)
	msgs := repo.List("abc")
	require.Len(t, msgs, 1)
	assert.Equal(t, "old", msgs[0].Text)

	// 一次写入后升级为信封格式
	_, err := repo.Append("abc", message.Message{Text: "new", Sender: message.SenderSeller})
	require.NoError(t, err)

	raw, _ := store.Get(MessageKey("abc"))
	var env message.Log
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	assert.Len(t, env.Messages, 2)
}

func TestMessageRepoMalformedTreatedAsEmpty(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set(MessageKey("abc"), "{{{broken"))

	repo := NewMessageRepository(store)
	assert.Empty(t, repo.List("abc"))

	// 损坏的日志不阻塞新消息写入
	msgs, err := repo.Append("abc", message.Message{Text: "fresh", Sender: message.SenderSeller})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, int64(1), msgs[0].ID)
}

func TestMessageRepoStorageKeyResolution(t *testing.T) {
	store := newTestStore(t)
	repo := NewMessageRepository(store)

	// 显式 ID 优先
	assert.Equal(t, "chat_messages_abc", repo.StorageKey("abc"))

	// 空 ID 且无活跃会话：兜底 key
	assert.Equal(t, DefaultMessageKey, repo.StorageKey(""))

	// 空 ID 且有活跃会话：落到活跃会话的 key
	require.NoError(t, store.Set(KeyActiveChat, "xyz"))
	assert.Equal(t, "chat_messages_xyz", repo.StorageKey(""))
}

func TestMessageRepoEmptyIDFollowsActiveChat(t *testing.T) {
	store := newTestStore(t)
	repo := NewMessageRepository(store)
	require.NoError(t, store.Set(KeyActiveChat, "room1"))

	_, err := repo.Append("", message.Message{Text: "hello", Sender: message.SenderSeller})
	require.NoError(t, err)

	got := repo.List("room1")
	require.Len(t, got, 1)
	assert.Equal(t, "hello", got[0].Text)
}

func TestMessageRepoPatchLast(t *testing.T) {
	repo := NewMessageRepository(newTestStore(t))

	// 空日志 no-op
	msgs, err := repo.PatchLast("abc", &message.ProductInfo{Title: "x"})
	require.NoError(t, err)
	assert.Empty(t, msgs)

	_, err = repo.Append("abc", message.Message{Text: "first", Sender: message.SenderSeller})
	require.NoError(t, err)
	_, err = repo.Append("abc", message.Message{Text: "second", Sender: message.SenderSeller})
	require.NoError(t, err)

	info := &message.ProductInfo{Title: "Backpack", Price: "45€", City: "Berlin"}
	msgs, err = repo.PatchLast("abc", info)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Nil(t, msgs[0].ProductInfo)
	if diff := cmp.Diff(info, msgs[1].ProductInfo); diff != "" {
		t.Errorf("patched info mismatch (-want +got):\n%s", diff)
	}

	// 快照持久化
	got := repo.List("abc")
	require.NotNil(t, got[1].ProductInfo)
	assert.Equal(t, "Backpack", got[1].ProductInfo.Title)
}

func TestMessageRepoDelete(t *testing.T) {
	repo := NewMessageRepository(newTestStore(t))

	_, err := repo.Append("abc", message.Message{Text: "hi", Sender: message.SenderSeller})
	require.NoError(t, err)
	require.NoError(t, repo.Delete("abc"))
	assert.Empty(t, repo.List("abc"))
}

func TestMessageRepoRoundTrip(t *testing.T) {
	repo := NewMessageRepository(newTestStore(t))

	want := []message.Message{
		{ID: 1, Text: "Offer received: 30€", Sender: message.SenderBuyer, Timestamp: "10:30", IsOffer: true},
		{ID: 2, Text: "Offer accepted: 30€ Order paid", Sender: message.SenderSeller, Timestamp: "10:31", IsOfferAccepted: true},
	}
	require.NoError(t, repo.Save("abc", want))

	got := repo.List("abc")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
