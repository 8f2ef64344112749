package notify

import (
	"time"

	"github.com/ZeroBug404/chat-duo-offers/internal/monitor"
	"github.com/ZeroBug404/chat-duo-offers/internal/repository/kvrepo"
)

// onStoreChange 存储监听通道：别的进程动了某个消息 key 时回调
func (n *Notifier) onStoreChange(key string) {
	if _, ok := kvrepo.ChatIDFromKey(key); !ok {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.subs[key]; !ok {
		return
	}

	raw, _ := n.store.Get(key)
	if raw == n.lastSeen[key] {
		return
	}
	n.lastSeen[key] = raw
	monitor.Get().RecordWatchDelivery()
	n.deliverLocked(key, kvrepo.DecodeMessages(raw))
}

// pollLoop 轮询兜底通道：定期重读每个被订阅的 key 并对比快照
// 无条件运行，不依赖其他通道是否可用。
func (n *Notifier) pollLoop() {
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n.pollOnce()
		case <-n.done:
			return
		}
	}
}

func (n *Notifier) pollOnce() {
	monitor.Get().RecordPollCycle()

	n.mu.Lock()
	defer n.mu.Unlock()
	for key := range n.subs {
		raw, _ := n.store.Get(key)
		if raw == n.lastSeen[key] {
			continue
		}
		n.lastSeen[key] = raw
		monitor.Get().RecordPollDelivery()
		n.deliverLocked(key, kvrepo.DecodeMessages(raw))
	}
}
