package controllers

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/mvc"

	"github.com/ZeroBug404/chat-duo-offers/internal/service"
)

// OrderController 订单追踪页
// 买家付款后从聊天页跳过来。首次进入时按当前商品生成一份订单快照
// （含随机 8 位参考号）落库，刷新复用同一份快照，参考号保持稳定。
type OrderController struct {
	Ctx            iris.Context
	ProductService *service.ProductService
	OrderService   *service.OrderService
}

func (c *OrderController) Get() mvc.Result {
	if details := c.OrderService.Current(); details != nil {
		return mvc.View{Name: "order/view.html", Data: iris.Map{"Order": details}}
	}

	p := c.ProductService.Selected()
	if p == nil {
		if chatID := c.Ctx.URLParam("chat"); chatID != "" {
			p = c.ProductService.GetByID(chatID)
		}
	}
	if p == nil {
		return mvc.Response{Path: "/chat-manager"}
	}

	details, err := c.OrderService.SaveSnapshot(*p, service.NewRefNumber())
	if err != nil {
		// 落库失败仍然能展示本次生成的快照，只是刷新后参考号会变
		_ = err
	}
	return mvc.View{Name: "order/view.html", Data: iris.Map{"Order": &details}}
}
