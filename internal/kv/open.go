package kv

import (
	"fmt"

	"github.com/ZeroBug404/chat-duo-offers/internal/config"
)

// Open 按配置选择存储后端
// 返回的 Store 由调用方持有并注入到各仓储，不做包级单例。
func Open(cfg *config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileStore(cfg.DataDir)
	case "sqlite":
		return NewSQLiteStore(cfg.SQLitePath)
	case "redis":
		return NewRedisStore(cfg.RedisAddr)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
