package kvrepo

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/ZeroBug404/chat-duo-offers/internal/datamodels/product"
	"github.com/ZeroBug404/chat-duo-offers/internal/kv"
	"github.com/ZeroBug404/chat-duo-offers/internal/monitor"
)

type productRepo struct {
	store kv.Store
	mu    sync.Mutex
}

// NewProductRepository 创建商品仓储
func NewProductRepository(store kv.Store) product.Repository {
	return &productRepo{store: store}
}

func (r *productRepo) allLocked() []product.Product {
	raw, ok := r.store.Get(KeyAllProducts)
	if !ok {
		return []product.Product{}
	}
	var list []product.Product
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		monitor.Get().RecordStoreReadError()
		zap.L().Warn("malformed product list, treating as empty", zap.Error(err))
		return []product.Product{}
	}
	return list
}

func (r *productRepo) saveAllLocked(list []product.Product) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	if err = r.store.Set(KeyAllProducts, string(data)); err != nil {
		monitor.Get().RecordStoreWriteError()
		zap.L().Error("failed to persist product list", zap.Error(err))
		return err
	}
	return nil
}

func (r *productRepo) upsertLocked(p product.Product) error {
	list := r.allLocked()
	for i, existing := range list {
		if existing.ID == p.ID {
			list[i] = p
			return r.saveAllLocked(list)
		}
	}
	return r.saveAllLocked(append(list, p))
}

// SetSelected 写入选中指针；选中即插入全量列表。传 nil 清空指针。
func (r *productRepo) SetSelected(p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p == nil {
		return r.store.Remove(KeySelectedProduct)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err = r.store.Set(KeySelectedProduct, string(data)); err != nil {
		monitor.Get().RecordStoreWriteError()
		zap.L().Error("failed to persist selected product", zap.Error(err))
		return err
	}
	return r.upsertLocked(*p)
}

func (r *productRepo) Selected() *product.Product {
	raw, ok := r.store.Get(KeySelectedProduct)
	if !ok {
		return nil
	}
	var p product.Product
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		monitor.Get().RecordStoreReadError()
		zap.L().Warn("malformed selected product, treating as empty", zap.Error(err))
		return nil
	}
	return &p
}

func (r *productRepo) Upsert(p product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.upsertLocked(p)
}

func (r *productRepo) All() []product.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.allLocked()
}

func (r *productRepo) GetByID(id string) *product.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.allLocked() {
		if p.ID == id {
			hit := p
			return &hit
		}
	}
	return nil
}

// Delete 从全量列表移除；被删的恰好是选中商品时一并清空指针
func (r *productRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.allLocked()
	kept := list[:0]
	for _, p := range list {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if err := r.saveAllLocked(kept); err != nil {
		return err
	}

	if raw, ok := r.store.Get(KeySelectedProduct); ok {
		var selected product.Product
		if err := json.Unmarshal([]byte(raw), &selected); err == nil && selected.ID == id {
			return r.store.Remove(KeySelectedProduct)
		}
	}
	return nil
}
