package controllers

import (
	"fmt"
	"strings"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/mvc"

	"github.com/ZeroBug404/chat-duo-offers/internal/datamodels/product"
	"github.com/ZeroBug404/chat-duo-offers/internal/service"
)

// ManagerController 会话管理后台
// 建会话 = 建商品：创建表单落一条商品记录、选中并激活对应会话，
// 再自动推送一条收款确认消息，最后展示两端的分享链接。
type ManagerController struct {
	Ctx            iris.Context
	ChatService    *service.ChatService
	ProductService *service.ProductService
}

type chatRow struct {
	Product    product.Product
	Active     bool
	SellerLink string
	BuyerLink  string
}

func (c *ManagerController) rows() []chatRow {
	activeID := c.ChatService.ActiveChatID()
	products := c.ProductService.All()
	rows := make([]chatRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, chatRow{
			Product:    p,
			Active:     p.ID == activeID,
			SellerLink: c.ChatService.ShareableLink(p.ID, service.RoleAdmin),
			BuyerLink:  c.ChatService.ShareableLink(p.ID, service.RoleCustomer),
		})
	}
	return rows
}

// Get 管理首页：当前活跃会话 + 全部会话列表
func (c *ManagerController) Get() mvc.Result {
	return mvc.View{
		Name: "manager/index.html",
		Data: iris.Map{
			"ActiveID": c.ChatService.ActiveChatID(),
			"Rows":     c.rows(),
		},
	}
}

// GetCreate 渲染创建表单
func (c *ManagerController) GetCreate() mvc.Result {
	return mvc.View{Name: "manager/create.html"}
}

// PostCreate 处理创建表单
func (c *ManagerController) PostCreate() mvc.Result {
	form := c.Ctx.FormValues()
	get := func(name string) string {
		if v, ok := form[name]; ok && len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	name := get("productName")
	amount := get("amount")
	if name == "" || amount == "" {
		return mvc.View{
			Name: "manager/create.html",
			Data: iris.Map{"Error": "商品名和金额不能为空"},
		}
	}

	p := productFromForm(get, c.ProductService.NewID())

	if err := c.ProductService.Select(&p); err != nil {
		return mvc.View{
			Name: "manager/create.html",
			Data: iris.Map{"Error": fmt.Sprintf("保存商品失败: %v", err)},
		}
	}
	if err := c.ChatService.SetActiveChatID(p.ID); err != nil {
		return mvc.View{
			Name: "manager/create.html",
			Data: iris.Map{"Error": fmt.Sprintf("激活会话失败: %v", err)},
		}
	}
	// 新会话自动带一条收款确认消息，收件信息随消息展示
	if _, err := c.ChatService.SendPaymentReceived(p); err != nil {
		_ = err
	}

	return mvc.Response{Path: "/chat-manager/share/" + p.ID}
}

// GetShareBy 展示某个会话两端的分享链接
func (c *ManagerController) GetShareBy(id string) mvc.Result {
	p := c.ProductService.GetByID(id)
	if p == nil {
		return mvc.Response{Path: "/chat-manager"}
	}
	return mvc.View{
		Name: "manager/share.html",
		Data: iris.Map{
			"Product":    p,
			"SellerLink": c.ChatService.ShareableLink(id, service.RoleAdmin),
			"BuyerLink":  c.ChatService.ShareableLink(id, service.RoleCustomer),
		},
	}
}

// PostDeleteBy 删除会话：商品、消息记录、注册表条目一起清掉
func (c *ManagerController) PostDeleteBy(id string) mvc.Result {
	if err := c.ProductService.Delete(id); err != nil {
		_ = err
	}
	return mvc.Response{Path: "/chat-manager"}
}

// PostActivateBy 切换活跃会话
func (c *ManagerController) PostActivateBy(id string) mvc.Result {
	if p := c.ProductService.GetByID(id); p != nil {
		_ = c.ProductService.Select(p)
		_ = c.ChatService.SetActiveChatID(id)
	}
	return mvc.Response{Path: "/chat-manager"}
}

// productFromForm 把创建表单的字段拼成商品记录
// 价格展示为 € 前缀（商品记录的形式）；报价消息里才用后缀形式。
// 地址既保留整段也保留拆分字段，和存量数据的两种形态保持一致。
func productFromForm(get func(string) string, id string) product.Product {
	street := get("street")
	postalCode := get("postalCode")
	city := get("city")
	country := get("country")

	return product.Product{
		ID:          id,
		ProductName: get("productName"),
		Brand:       get("sellerName"),
		Condition:   get("secondDescription"),
		Price:       "€" + get("amount"),
		Image:       get("image"),
		BuyerName:   "Customer",
		Address:     joinAddress(street, postalCode, city, country),
		Street:      street,
		PostalCode:  postalCode,
		City:        city,
		Country:     country,
	}
}

func joinAddress(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}
