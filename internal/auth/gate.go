package auth

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ZeroBug404/chat-duo-offers/internal/config"
	"github.com/ZeroBug404/chat-duo-offers/internal/kv"
	"github.com/ZeroBug404/chat-duo-offers/internal/monitor"
	"github.com/ZeroBug404/chat-duo-offers/internal/repository/kvrepo"
)

// Gate 整个应用的密码门禁
// 没有用户体系：密码比对通过后往存储写一个毫秒时间戳，
// 此后「已认证」的唯一判据就是 now - timestamp < window。
// 窗口过期时顺手把 key 删掉。
type Gate struct {
	store    kv.Store
	password string
	window   time.Duration
}

// NewGate 创建门禁
func NewGate(store kv.Store, cfg *config.AuthConfig) *Gate {
	return &Gate{
		store:    store,
		password: cfg.Password,
		window:   cfg.Window(),
	}
}

// Authenticate 校验密码，通过则记录认证时间戳
func (g *Gate) Authenticate(password string) bool {
	if password != g.password {
		return false
	}
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if err := g.store.Set(kvrepo.KeyAuthTimestamp, ts); err != nil {
		monitor.Get().RecordStoreWriteError()
		zap.L().Error("failed to persist auth timestamp", zap.Error(err))
		// 持久化失败只记日志，下一次检查会重新要求输入密码
	}
	return true
}

// IsAuthenticated 判断认证是否仍在有效窗口内
func (g *Gate) IsAuthenticated() bool {
	raw, ok := g.store.Get(kvrepo.KeyAuthTimestamp)
	if !ok {
		return false
	}
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// 数据损坏按未认证处理，清掉坏数据
		_ = g.store.Remove(kvrepo.KeyAuthTimestamp)
		return false
	}
	if time.Since(time.UnixMilli(ts)) >= g.window {
		_ = g.store.Remove(kvrepo.KeyAuthTimestamp)
		return false
	}
	return true
}

// Clear 注销，删除认证时间戳
func (g *Gate) Clear() error {
	return g.store.Remove(kvrepo.KeyAuthTimestamp)
}
