package server

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/mvc"

	"github.com/ZeroBug404/chat-duo-offers/internal/auth"
	"github.com/ZeroBug404/chat-duo-offers/internal/config"
	"github.com/ZeroBug404/chat-duo-offers/internal/kv"
	"github.com/ZeroBug404/chat-duo-offers/internal/middleware"
	"github.com/ZeroBug404/chat-duo-offers/internal/monitor"
	"github.com/ZeroBug404/chat-duo-offers/internal/notify"
	"github.com/ZeroBug404/chat-duo-offers/internal/repository/kvrepo"
	"github.com/ZeroBug404/chat-duo-offers/internal/service"
	webcontrollers "github.com/ZeroBug404/chat-duo-offers/web/controllers"
)

// RegisterRoutes 注册所有 HTTP 路由
// 返回的 cleanup 在进程退出前调用，负责停掉变更总线。
func RegisterRoutes(app *iris.Application, cfg *config.Config) (cleanup func(), err error) {
	// 初始化存储后端
	store, err := kv.Open(&cfg.Storage)
	if err != nil {
		return nil, err
	}

	// 仓储与服务
	messageRepo := kvrepo.NewMessageRepository(store)
	chatRegistry := kvrepo.NewChatRegistry(store)
	productRepo := kvrepo.NewProductRepository(store)
	orderRepo := kvrepo.NewOrderRepository(store)

	notifier := notify.New(store, messageRepo, cfg.Sync.PollInterval())
	gate := auth.NewGate(store, &cfg.Auth)

	chatSvc := service.NewChatService(messageRepo, chatRegistry, notifier, cfg.BaseURL)
	productSvc := service.NewProductService(productRepo, messageRepo, chatRegistry)
	orderSvc := service.NewOrderService(orderRepo)

	// ---------------- 密码门禁 ----------------

	app.Get("/login", func(ctx iris.Context) {
		if gate.IsAuthenticated() {
			ctx.Redirect("/")
			return
		}
		_ = ctx.View("auth/login.html", iris.Map{"Error": ""})
	})

	app.Post("/login", middleware.LoginRateLimit(), func(ctx iris.Context) {
		if gate.Authenticate(ctx.FormValue("password")) {
			ctx.Redirect("/")
			return
		}
		_ = ctx.View("auth/login.html", iris.Map{
			"Error": "Incorrect password. Please try again.",
		})
	})

	// 除登录页外的所有页面都要求门禁有效
	requireAuth := func(ctx iris.Context) {
		if !gate.IsAuthenticated() {
			ctx.Redirect("/login")
			return
		}
		ctx.Next()
	}

	// ---------------- 页面路由 ----------------

	manager := mvc.New(app.Party("/chat-manager", requireAuth))
	manager.Register(chatSvc, productSvc)
	manager.Handle(new(webcontrollers.ManagerController))

	app.Get("/", requireAuth, func(ctx iris.Context) {
		ctx.Redirect("/chat-manager")
	})

	// 卖家视角
	personA := mvc.New(app.Party("/person-a", requireAuth))
	personA.Register(chatSvc, productSvc, service.RoleAdmin)
	personA.Handle(new(webcontrollers.ChatController))

	// 买家视角
	personB := mvc.New(app.Party("/person-b", requireAuth))
	personB.Register(chatSvc, productSvc, service.RoleCustomer)
	personB.Handle(new(webcontrollers.ChatController))

	order := mvc.New(app.Party("/order-tracking", requireAuth))
	order.Register(chatSvc, productSvc, orderSvc)
	order.Handle(new(webcontrollers.OrderController))

	// ---------------- JSON 接口 ----------------

	api := app.Party("/api", requireAuth)

	// 页面用这个接口做 2 秒一次的轮询刷新
	api.Get("/chats/{id:string}/messages", func(ctx iris.Context) {
		id := ctx.Params().Get("id")
		ctx.JSON(iris.Map{"code": 0, "data": chatSvc.GetMessages(id)})
	})

	// 健康检查与传播统计
	app.Get("/api/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{
			"code":  0,
			"msg":   "ok",
			"stats": monitor.Get().GetStats(),
		})
	})

	return notifier.Close, nil
}
