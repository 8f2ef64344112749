package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ZeroBug404/chat-duo-offers/internal/config"
	"github.com/ZeroBug404/chat-duo-offers/internal/kv"
	"github.com/ZeroBug404/chat-duo-offers/internal/notify"
	"github.com/ZeroBug404/chat-duo-offers/internal/repository/kvrepo"
	"github.com/ZeroBug404/chat-duo-offers/pkg/log"
)

// chat-tail 在第二个进程里订阅某个会话的消息流并逐条打印，
// 用于验证跨进程的变更分发（文件监听 + 轮询兜底）。
// 用法：go run ./cmd/chat-tail [chatID]，缺省跟踪当前活跃会话。
func main() {
	log.InitLogger()

	cfg := config.DefaultConfig()
	store, err := kv.Open(&cfg.Storage)
	if err != nil {
		zap.L().Fatal("open store failed", zap.Error(err))
	}

	logs := kvrepo.NewMessageRepository(store)

	chatID := ""
	if len(os.Args) > 1 {
		chatID = os.Args[1]
	}

	notifier := notify.New(store, logs, cfg.Sync.PollInterval())
	defer notifier.Close()

	updates, cancel := notifier.Subscribe(chatID)
	defer cancel()

	fmt.Printf("tailing %s (Ctrl+C 退出)\n", logs.StorageKey(chatID))
	for _, m := range logs.List(chatID) {
		fmt.Printf("[%s] %s: %s\n", m.Timestamp, m.Sender, m.Text)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case u, ok := <-updates:
			if !ok {
				return
			}
			if len(u.Messages) == 0 {
				fmt.Println("-- chat cleared --")
				continue
			}
			m := u.Messages[len(u.Messages)-1]
			fmt.Printf("[%s] %s: %s\n", m.Timestamp, m.Sender, m.Text)
		case <-sig:
			return
		}
	}
}
