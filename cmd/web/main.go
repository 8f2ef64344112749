package main

import (
	"os"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/ZeroBug404/chat-duo-offers/internal/config"
	"github.com/ZeroBug404/chat-duo-offers/internal/server"
	"github.com/ZeroBug404/chat-duo-offers/pkg/log"
)

func main() {
	log.InitLogger()

	cfgPath := os.Getenv("CHAT_CONFIG")
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		zap.L().Fatal("load config failed", zap.Error(err))
	}

	app := iris.New()
	tmpl := iris.HTML("./web/views", ".html")
	tmpl.Reload(true)
	app.RegisterView(tmpl)

	cleanup, err := server.RegisterRoutes(app, cfg)
	if err != nil {
		zap.L().Fatal("register routes failed", zap.Error(err))
	}
	defer cleanup()

	addr := cfg.Server.Addr()
	zap.L().Info("web server listening", zap.String("addr", addr), zap.String("backend", cfg.Storage.Backend))
	if err := app.Run(iris.Addr(addr)); err != nil {
		zap.L().Fatal("web server exited", zap.Error(err))
	}
}
