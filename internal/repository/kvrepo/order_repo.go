package kvrepo

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/ZeroBug404/chat-duo-offers/internal/datamodels/order"
	"github.com/ZeroBug404/chat-duo-offers/internal/kv"
	"github.com/ZeroBug404/chat-duo-offers/internal/monitor"
)

type orderRepo struct {
	store kv.Store
}

// NewOrderRepository 创建订单快照仓储
func NewOrderRepository(store kv.Store) order.Repository {
	return &orderRepo{store: store}
}

func (r *orderRepo) Save(d order.Details) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	if err = r.store.Set(KeyOrderDetails, string(data)); err != nil {
		monitor.Get().RecordStoreWriteError()
		zap.L().Error("failed to persist order details", zap.Error(err))
		return err
	}
	return nil
}

func (r *orderRepo) Load() *order.Details {
	raw, ok := r.store.Get(KeyOrderDetails)
	if !ok {
		return nil
	}
	var d order.Details
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		monitor.Get().RecordStoreReadError()
		zap.L().Warn("malformed order details, treating as empty", zap.Error(err))
		return nil
	}
	return &d
}

func (r *orderRepo) Clear() error {
	return r.store.Remove(KeyOrderDetails)
}
