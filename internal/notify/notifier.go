package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ZeroBug404/chat-duo-offers/internal/datamodels/message"
	"github.com/ZeroBug404/chat-duo-offers/internal/kv"
	"github.com/ZeroBug404/chat-duo-offers/internal/monitor"
	"github.com/ZeroBug404/chat-duo-offers/internal/repository/kvrepo"
)

// Update 一次「消息有变化」的通知，始终携带最新的完整日志
// 订阅方不做增量合并，收到后直接以 Messages 为准重新渲染。
// 同一次变更可能经由多条通道重复送达，也可能乱序，订阅方需要容忍。
type Update struct {
	ChatID   string
	Messages []message.Message
	At       time.Time
}

// Notifier 变更传播总线
// 对外只有订阅/发布两个口子，内部聚合三条通道：
//  1. 存储变更监听（文件后端 fsnotify，跨进程）
//  2. 写入方保存成功后的进程内发布（同进程多个视图）
//  3. 周期轮询快照对比（兜底，覆盖共享后端等监听不到的写入）
type Notifier struct {
	store kv.Store
	logs  message.Repository

	mu       sync.Mutex
	subs     map[string]map[string]chan Update // 存储 key → 订阅 ID → 通道
	lastSeen map[string]string                 // 存储 key → 上次看到的原始快照

	interval  time.Duration
	stopWatch func()
	done      chan struct{}
	closeOnce sync.Once
}

// New 创建总线并启动监听与轮询
// 后端不支持 Watch 时只剩进程内发布和轮询两条通道，行为不变只是更慢。
func New(store kv.Store, logs message.Repository, interval time.Duration) *Notifier {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	n := &Notifier{
		store:    store,
		logs:     logs,
		subs:     make(map[string]map[string]chan Update),
		lastSeen: make(map[string]string),
		interval: interval,
		done:     make(chan struct{}),
	}

	if w, ok := store.(kv.Watchable); ok {
		stop, err := w.Watch(n.onStoreChange)
		if err != nil {
			zap.L().Warn("store watch unavailable, falling back to polling", zap.Error(err))
		} else {
			n.stopWatch = stop
		}
	}

	go n.pollLoop()
	return n
}

// Subscribe 订阅某个会话的消息变更
// chatID 为空时按写入方同样的规则解析（活跃会话 → 兜底 key），
// 解析发生在订阅时刻，之后切换活跃会话不影响已有订阅。
// 返回的 cancel 必须在视图退出时调用，否则轮询状态和通道都会泄漏。
func (n *Notifier) Subscribe(chatID string) (<-chan Update, func()) {
	key := n.logs.StorageKey(chatID)
	id := uuid.NewString()
	ch := make(chan Update, 8)

	n.mu.Lock()
	if n.subs[key] == nil {
		n.subs[key] = make(map[string]chan Update)
		// 以当前快照为基线，轮询只报告之后的变化
		raw, _ := n.store.Get(key)
		n.lastSeen[key] = raw
	}
	n.subs[key][id] = ch
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if group, ok := n.subs[key]; ok {
			if c, ok := group[id]; ok {
				delete(group, id)
				close(c)
			}
			if len(group) == 0 {
				delete(n.subs, key)
				delete(n.lastSeen, key)
			}
		}
	}
	return ch, cancel
}

// Publish 写入方保存成功后调用，直接携带内存里的最新列表
// 不经过序列化，同进程订阅方立即可见。
func (n *Notifier) Publish(chatID string, msgs []message.Message) {
	key := n.logs.StorageKey(chatID)

	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.lastSeen[key]; ok {
		if raw, exists := n.store.Get(key); exists {
			n.lastSeen[key] = raw
		}
	}
	monitor.Get().RecordPublish()
	n.deliverLocked(key, msgs)
}

// Close 停掉监听和轮询，进程退出前调用
func (n *Notifier) Close() {
	n.closeOnce.Do(func() {
		if n.stopWatch != nil {
			n.stopWatch()
		}
		close(n.done)
	})
}

// deliverLocked 把更新推给某个 key 的全部订阅者，调用方持有 n.mu
// 通道满了就丢：订阅方随后的轮询会补上最新状态。
func (n *Notifier) deliverLocked(key string, msgs []message.Message) {
	group := n.subs[key]
	if len(group) == 0 {
		return
	}
	chatID, _ := kvrepo.ChatIDFromKey(key)
	u := Update{ChatID: chatID, Messages: msgs, At: time.Now()}
	for _, ch := range group {
		select {
		case ch <- u:
		default:
		}
	}
}
