package kvrepo

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/ZeroBug404/chat-duo-offers/internal/datamodels/chat"
	"github.com/ZeroBug404/chat-duo-offers/internal/kv"
	"github.com/ZeroBug404/chat-duo-offers/internal/monitor"
)

type chatRegistry struct {
	store kv.Store
	mu    sync.Mutex
}

// NewChatRegistry 创建会话注册表
func NewChatRegistry(store kv.Store) chat.Registry {
	return &chatRegistry{store: store}
}

func (r *chatRegistry) allIDsLocked() []string {
	raw, ok := r.store.Get(KeyAllChats)
	if !ok {
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		monitor.Get().RecordStoreReadError()
		zap.L().Warn("malformed chat id list, treating as empty", zap.Error(err))
		return []string{}
	}
	return ids
}

func (r *chatRegistry) saveIDsLocked(ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	if err = r.store.Set(KeyAllChats, string(data)); err != nil {
		monitor.Get().RecordStoreWriteError()
		zap.L().Error("failed to persist chat id list", zap.Error(err))
		return err
	}
	return nil
}

// SetActiveID 设为活跃会话，并保证 id 出现在集合里（重复写入幂等）
func (r *chatRegistry) SetActiveID(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Set(KeyActiveChat, id); err != nil {
		monitor.Get().RecordStoreWriteError()
		zap.L().Error("failed to persist active chat id", zap.Error(err))
		return err
	}

	ids := r.allIDsLocked()
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	return r.saveIDsLocked(append(ids, id))
}

func (r *chatRegistry) ActiveID() string {
	id, _ := r.store.Get(KeyActiveChat)
	return id
}

func (r *chatRegistry) AllIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.allIDsLocked()
}

// Remove 把 id 从集合里去掉；若它是活跃会话则清空活跃指针
func (r *chatRegistry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.allIDsLocked()
	kept := ids[:0]
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	if err := r.saveIDsLocked(kept); err != nil {
		return err
	}

	if active, _ := r.store.Get(KeyActiveChat); active == id {
		return r.store.Remove(KeyActiveChat)
	}
	return nil
}
