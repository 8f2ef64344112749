package service

import (
	"github.com/oklog/ulid/v2"

	"github.com/ZeroBug404/chat-duo-offers/internal/datamodels/chat"
	"github.com/ZeroBug404/chat-duo-offers/internal/datamodels/message"
	"github.com/ZeroBug404/chat-duo-offers/internal/datamodels/product"
)

// ProductService 商品服务
// 商品 id 同时就是会话 id，所以删除商品要把消息日志和注册表一并级联清理。
type ProductService struct {
	repo     product.Repository
	logs     message.Repository
	registry chat.Registry
}

// NewProductService 创建商品服务
func NewProductService(repo product.Repository, logs message.Repository, registry chat.Registry) *ProductService {
	return &ProductService{repo: repo, logs: logs, registry: registry}
}

// NewID 生成商品 id，按时间有序的 ULID 字符串
func (s *ProductService) NewID() string {
	return ulid.Make().String()
}

// Select 选中商品；选中即插入全量列表，传 nil 只清空指针
func (s *ProductService) Select(p *product.Product) error {
	return s.repo.SetSelected(p)
}

// Selected 当前选中的商品，没有时返回 nil
func (s *ProductService) Selected() *product.Product {
	return s.repo.Selected()
}

// Add 按 id upsert 商品
func (s *ProductService) Add(p product.Product) error {
	return s.repo.Upsert(p)
}

// All 全部商品
func (s *ProductService) All() []product.Product {
	return s.repo.All()
}

// GetByID 按 id 查商品，不存在返回 nil
func (s *ProductService) GetByID(id string) *product.Product {
	return s.repo.GetByID(id)
}

// Delete 删除商品并级联清理：全量列表、选中指针、消息日志、会话注册表
func (s *ProductService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	if err := s.logs.Delete(id); err != nil {
		return err
	}
	return s.registry.Remove(id)
}
