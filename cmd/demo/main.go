package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ZeroBug404/chat-duo-offers/internal/config"
	"github.com/ZeroBug404/chat-duo-offers/internal/datamodels/message"
	"github.com/ZeroBug404/chat-duo-offers/internal/datamodels/product"
	"github.com/ZeroBug404/chat-duo-offers/internal/kv"
	"github.com/ZeroBug404/chat-duo-offers/internal/repository/kvrepo"
	"github.com/ZeroBug404/chat-duo-offers/internal/service"
	"github.com/ZeroBug404/chat-duo-offers/pkg/log"
)

// 简单 demo：初始化一个商品和对应会话，打印两端的分享链接，用于手工测试
func main() {
	log.InitLogger()

	cfg := config.DefaultConfig()
	store, err := kv.Open(&cfg.Storage)
	if err != nil {
		zap.L().Fatal("open store failed", zap.Error(err))
	}

	logs := kvrepo.NewMessageRepository(store)
	registry := kvrepo.NewChatRegistry(store)
	productRepo := kvrepo.NewProductRepository(store)

	chatSvc := service.NewChatService(logs, registry, nil, cfg.BaseURL)
	productSvc := service.NewProductService(productRepo, logs, registry)

	p := product.Product{
		ID:          productSvc.NewID(),
		ProductName: "Leather backpack",
		Brand:       "Anna",
		Condition:   "Like new",
		Price:       "€45",
		BuyerName:   "Customer",
		Street:      "Hauptstr. 12",
		PostalCode:  "10115",
		City:        "Berlin",
		Country:     "Germany",
	}
	if err := productSvc.Select(&p); err != nil {
		zap.L().Fatal("create product failed", zap.Error(err))
	}
	if err := chatSvc.SetActiveChatID(p.ID); err != nil {
		zap.L().Fatal("activate chat failed", zap.Error(err))
	}
	if _, err := chatSvc.SendPaymentReceived(p); err != nil {
		zap.L().Fatal("seed message failed", zap.Error(err))
	}
	if _, err := chatSvc.AddMessage(p.ID, "Hi! When can you ship?", message.SenderBuyer, service.AddOptions{}); err != nil {
		zap.L().Fatal("seed message failed", zap.Error(err))
	}

	fmt.Printf("chat %s ready，backend = %s\n", p.ID, cfg.Storage.Backend)
	fmt.Println("卖家链接:", chatSvc.ShareableLink(p.ID, service.RoleAdmin))
	fmt.Println("买家链接:", chatSvc.ShareableLink(p.ID, service.RoleCustomer))
	fmt.Println("现在你可以：")
	fmt.Println("1) 启动 web 服务：go run ./cmd/web")
	fmt.Println("2) 另开终端跟踪消息：go run ./cmd/chat-tail")
}
