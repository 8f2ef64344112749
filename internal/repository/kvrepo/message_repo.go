package kvrepo

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ZeroBug404/chat-duo-offers/internal/datamodels/message"
	"github.com/ZeroBug404/chat-duo-offers/internal/kv"
	"github.com/ZeroBug404/chat-duo-offers/internal/monitor"
)

type messageRepo struct {
	store kv.Store
	mu    sync.Mutex
}

// NewMessageRepository 创建消息日志仓储
func NewMessageRepository(store kv.Store) message.Repository {
	return &messageRepo{store: store}
}

// DecodeMessages 统一的落盘格式解码：优先信封 {messages, lastUpdated}，
// 兼容历史上的裸数组；解不开一律当作「没有数据」返回空列表。
// 旧格式的识别只存在于这一个函数里，不要扩散到业务逻辑。
func DecodeMessages(raw string) []message.Message {
	if raw == "" {
		return nil
	}
	var env message.Log
	if err := json.Unmarshal([]byte(raw), &env); err == nil && env.Messages != nil {
		return env.Messages
	}
	var bare []message.Message
	if err := json.Unmarshal([]byte(raw), &bare); err == nil {
		return bare
	}
	monitor.Get().RecordStoreReadError()
	zap.L().Warn("malformed message log, treating as empty", zap.Int("bytes", len(raw)))
	return nil
}

// StorageKey 解析 chatID 对应的存储 key：
// 显式 ID > 当前活跃会话 > 兜底 key。只读不写。
func (r *messageRepo) StorageKey(chatID string) string {
	if chatID == "" {
		if active, ok := r.store.Get(KeyActiveChat); ok {
			chatID = active
		}
	}
	return MessageKey(chatID)
}

func (r *messageRepo) listLocked(key string) []message.Message {
	raw, ok := r.store.Get(key)
	if !ok {
		return []message.Message{}
	}
	msgs := DecodeMessages(raw)
	if msgs == nil {
		msgs = []message.Message{}
	}
	return msgs
}

func (r *messageRepo) List(chatID string) []message.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listLocked(r.StorageKey(chatID))
}

func (r *messageRepo) saveLocked(key string, msgs []message.Message) error {
	env := message.Log{
		Messages:    msgs,
		LastUpdated: time.Now().UnixMilli(),
	}
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	if err = r.store.Set(key, string(data)); err != nil {
		monitor.Get().RecordStoreWriteError()
		zap.L().Error("failed to persist message log", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (r *messageRepo) Save(chatID string, msgs []message.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if msgs == nil {
		msgs = []message.Message{}
	}
	return r.saveLocked(r.StorageKey(chatID), msgs)
}

// Append 分配新 ID 并追加一条消息，返回追加后的完整列表
// 调用方应直接使用返回值渲染，避免紧跟着的回读竞争。
func (r *messageRepo) Append(chatID string, m message.Message) ([]message.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.StorageKey(chatID)
	msgs := r.listLocked(key)

	var maxID int64
	for _, prev := range msgs {
		if prev.ID > maxID {
			maxID = prev.ID
		}
	}
	m.ID = maxID + 1
	msgs = append(msgs, m)

	if err := r.saveLocked(key, msgs); err != nil {
		return msgs, err
	}
	monitor.Get().RecordMessageAppended()
	return msgs, nil
}

// PatchLast 给最近一条消息补写商品快照（追加后的第二步写入）
func (r *messageRepo) PatchLast(chatID string, info *message.ProductInfo) ([]message.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.StorageKey(chatID)
	msgs := r.listLocked(key)
	if len(msgs) == 0 {
		return msgs, nil
	}
	msgs[len(msgs)-1].ProductInfo = info
	if err := r.saveLocked(key, msgs); err != nil {
		return msgs, err
	}
	return msgs, nil
}

func (r *messageRepo) Delete(chatID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// 删除指定会话的日志；空 ID 按同样的解析规则落到对应 key
	return r.store.Remove(r.StorageKey(chatID))
}
