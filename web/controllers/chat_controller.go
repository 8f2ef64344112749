package controllers

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/mvc"

	"github.com/ZeroBug404/chat-duo-offers/internal/datamodels/message"
	"github.com/ZeroBug404/chat-duo-offers/internal/service"
)

// ChatController 聊天页控制器（MVC）
// 同一个控制器挂在 /person-a（卖家）和 /person-b（买家）两个路由组上，
// Role 在挂载时注入，决定发消息时的归属角色。
type ChatController struct {
	Ctx            iris.Context
	Role           string
	ChatService    *service.ChatService
	ProductService *service.ProductService
}

func (c *ChatController) sender() message.Sender {
	if c.Role == service.RoleAdmin {
		return message.SenderSeller
	}
	return message.SenderBuyer
}

func (c *ChatController) rolePath() string {
	if c.Role == service.RoleAdmin {
		return "/person-a"
	}
	return "/person-b"
}

// Get 渲染聊天页
// 深链里带 ?chat=<id> 时先切换活跃会话；id 已被删除则回到安全的管理页，
// 不渲染残缺数据。
func (c *ChatController) Get() mvc.Result {
	chatID := c.Ctx.URLParam("chat")
	if chatID != "" {
		known := c.ProductService.GetByID(chatID) != nil
		if !known {
			for _, id := range c.ChatService.AllChatIDs() {
				if id == chatID {
					known = true
					break
				}
			}
		}
		if !known {
			return mvc.Response{Path: "/chat-manager"}
		}
		if p := c.ProductService.GetByID(chatID); p != nil {
			_ = c.ProductService.Select(p)
		}
		_ = c.ChatService.SetActiveChatID(chatID)
	}

	activeID := c.ChatService.ActiveChatID()
	return mvc.View{
		Name: "chat/view.html",
		Data: iris.Map{
			"Role":     c.Role,
			"RolePath": c.rolePath(),
			"ChatID":   activeID,
			"Product":  c.ProductService.Selected(),
		},
	}
}

// Post 发送一条普通消息，表单字段 text
func (c *ChatController) Post() mvc.Result {
	text := c.Ctx.FormValue("text")
	if text != "" {
		if _, err := c.ChatService.AddMessage("", text, c.sender(), service.AddOptions{}); err != nil {
			// 持久化失败不打断会话，仓储层已记录日志
			_ = err
		}
	}
	return mvc.Response{Path: c.rolePath()}
}

// PostOffer 买家报价，表单字段 amount
func (c *ChatController) PostOffer() mvc.Result {
	if amount := c.Ctx.FormValue("amount"); amount != "" {
		_, _ = c.ChatService.SendOffer("", amount)
	}
	return mvc.Response{Path: c.rolePath()}
}

// PostAccept 卖家接受报价，表单字段 amount
func (c *ChatController) PostAccept() mvc.Result {
	if amount := c.Ctx.FormValue("amount"); amount != "" {
		_, _ = c.ChatService.AcceptOffer("", amount)
	}
	return mvc.Response{Path: c.rolePath()}
}
