package kv

import (
	radix "github.com/mediocregopher/radix/v3"
	"go.uber.org/zap"

	"github.com/ZeroBug404/chat-duo-offers/internal/monitor"
)

// RedisStore 共享后端：多台机器指向同一个 Redis 时，变更只能靠
// 轮询通道互相看见（文件监听和进程内事件都不跨机器）。
type RedisStore struct {
	client radix.Client
}

// NewRedisStore 建立 Redis 连接池
func NewRedisStore(addr string) (*RedisStore, error) {
	pool, err := radix.NewPool("tcp", addr, 10)
	if err != nil {
		return nil, err
	}
	return &RedisStore{client: pool}, nil
}

func (s *RedisStore) Get(key string) (string, bool) {
	var raw string
	mn := radix.MaybeNil{Rcv: &raw}
	if err := s.client.Do(radix.Cmd(&mn, "GET", key)); err != nil {
		monitor.Get().RecordStoreReadError()
		zap.L().Warn("redis store read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	if mn.Nil {
		return "", false
	}
	return raw, true
}

func (s *RedisStore) Set(key, value string) error {
	return s.client.Do(radix.Cmd(nil, "SET", key, value))
}

func (s *RedisStore) Remove(key string) error {
	return s.client.Do(radix.Cmd(nil, "DEL", key))
}

// Close 释放连接池
func (s *RedisStore) Close() error {
	return s.client.Close()
}
