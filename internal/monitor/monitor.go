package monitor

import (
	"sync"
	"time"
)

// Monitor 监控服务，用于统计存储故障和变更传播指标
type Monitor struct {
	mu sync.RWMutex

	// 错误统计
	StoreReadErrors  int64
	StoreWriteErrors int64

	// 传播统计
	UpdatesPublished int64 // 写入方主动发布的进程内通知
	WatchDeliveries  int64 // 文件监听通道送达次数
	PollDeliveries   int64 // 轮询通道送达次数
	PollCycles       int64

	// 业务统计
	MessagesAppended int64

	// 时间统计
	LastStoreError time.Time
	LastDelivery   time.Time
}

var globalMonitor = &Monitor{}

// Get 获取全局监控实例
func Get() *Monitor {
	return globalMonitor
}

// RecordStoreReadError 记录存储读取错误
func (m *Monitor) RecordStoreReadError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreReadErrors++
	m.LastStoreError = time.Now()
}

// RecordStoreWriteError 记录存储写入错误
func (m *Monitor) RecordStoreWriteError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreWriteErrors++
	m.LastStoreError = time.Now()
}

// RecordPublish 记录一次进程内发布
func (m *Monitor) RecordPublish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdatesPublished++
	m.LastDelivery = time.Now()
}

// RecordWatchDelivery 记录文件监听通道的一次送达
func (m *Monitor) RecordWatchDelivery() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WatchDeliveries++
	m.LastDelivery = time.Now()
}

// RecordPollDelivery 记录轮询通道的一次送达
func (m *Monitor) RecordPollDelivery() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PollDeliveries++
	m.LastDelivery = time.Now()
}

// RecordPollCycle 记录一轮轮询
func (m *Monitor) RecordPollCycle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PollCycles++
}

// RecordMessageAppended 记录一条新消息
func (m *Monitor) RecordMessageAppended() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MessagesAppended++
}

// GetStats 获取统计信息
func (m *Monitor) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"errors": map[string]interface{}{
			"store_read":  m.StoreReadErrors,
			"store_write": m.StoreWriteErrors,
		},
		"propagation": map[string]interface{}{
			"published":        m.UpdatesPublished,
			"watch_deliveries": m.WatchDeliveries,
			"poll_deliveries":  m.PollDeliveries,
			"poll_cycles":      m.PollCycles,
		},
		"messages": map[string]interface{}{
			"appended": m.MessagesAppended,
		},
		"last_events": map[string]interface{}{
			"store_error": m.LastStoreError,
			"delivery":    m.LastDelivery,
		},
	}
}

// Reset 重置统计（用于测试）
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoreReadErrors = 0
	m.StoreWriteErrors = 0
	m.UpdatesPublished = 0
	m.WatchDeliveries = 0
	m.PollDeliveries = 0
	m.PollCycles = 0
	m.MessagesAppended = 0
}
