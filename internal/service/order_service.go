package service

import (
	"fmt"
	"math/rand"

	"github.com/ZeroBug404/chat-duo-offers/internal/datamodels/order"
	"github.com/ZeroBug404/chat-duo-offers/internal/datamodels/product"
)

// OrderService 订单追踪页的快照服务
// 快照只是刷新后的兜底显示数据，不是权威订单状态。
type OrderService struct {
	repo order.Repository
}

// NewOrderService 创建订单快照服务
func NewOrderService(repo order.Repository) *OrderService {
	return &OrderService{repo: repo}
}

// NewRefNumber 生成 8 位随机参考号
func NewRefNumber() string {
	return fmt.Sprintf("%d", rand.Intn(90000000)+10000000)
}

// SaveSnapshot 按商品生成并保存订单快照，缺参考号时补一个
func (s *OrderService) SaveSnapshot(p product.Product, refNumber string) (order.Details, error) {
	if refNumber == "" {
		refNumber = NewRefNumber()
	}
	d := order.Details{
		ID:          p.ID,
		ProductName: p.ProductName,
		BrandName:   p.Brand,
		Price:       p.Price,
		Image:       p.Image,
		Condition:   p.Condition,
		Address:     p.Address,
		Street:      p.Street,
		PostalCode:  p.PostalCode,
		City:        p.City,
		Country:     p.Country,
		RefNumber:   refNumber,
	}
	return d, s.repo.Save(d)
}

// Current 读取当前快照，没有或损坏时返回 nil
func (s *OrderService) Current() *order.Details {
	return s.repo.Load()
}

// Clear 清掉快照
func (s *OrderService) Clear() error {
	return s.repo.Clear()
}
