package kv

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ZeroBug404/chat-duo-offers/internal/monitor"
)

// kvEntry kv_entries 表的一行
type kvEntry struct {
	Key   string `gorm:"column:k;primaryKey;size:255"`
	Value string `gorm:"column:v;not null"`
}

func (kvEntry) TableName() string { return "kv_entries" }

// SQLiteStore 嵌入式 SQLite 后端，单表 kv_entries 存所有 key
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore 打开（必要时创建）SQLite 数据库并迁移表结构
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err = db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(key string) (string, bool) {
	var e kvEntry
	err := s.db.Where("k = ?", key).First(&e).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			monitor.Get().RecordStoreReadError()
			zap.L().Warn("sqlite store read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return e.Value, true
}

func (s *SQLiteStore) Set(key, value string) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "k"}},
		DoUpdates: clause.AssignmentColumns([]string{"v"}),
	}).Create(&kvEntry{Key: key, Value: value}).Error
}

func (s *SQLiteStore) Remove(key string) error {
	return s.db.Where("k = ?", key).Delete(&kvEntry{}).Error
}
