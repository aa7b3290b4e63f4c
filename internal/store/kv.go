package store

import (
	"context"
	"errors"
	"time"

	"github.com/hammad983ae/sustaino-sub007/internal/store/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KV is the namespaced key-value persistence primitive backing workspace
// sessions: one JSON blob per well-known key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

type KVStore struct {
	db *gorm.DB
}

// Make sure we conform to KV interface
var _ KV = (*KVStore)(nil)

func NewKVStore(db *gorm.DB) KV {
	return &KVStore{db: db}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry model.KVEntry
	result := s.getDB(ctx).First(&entry, "key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return entry.Value, nil
}

func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	entry := model.KVEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return s.getDB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *KVStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	result := s.getDB(ctx).Delete(&model.KVEntry{}, "key IN ?", keys)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}

func (s *KVStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	result := s.getDB(ctx).Model(&model.KVEntry{}).Where("key LIKE ?", prefix+"%").Order("key").Pluck("key", &keys)
	if result.Error != nil {
		return nil, result.Error
	}
	return keys, nil
}

func (s *KVStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
