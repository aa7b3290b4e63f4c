package store

import (
	"context"

	"github.com/hammad983ae/sustaino-sub007/internal/store/model"
	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	KV() KV
	Assessment() Assessment
	Job() Job
	InitialMigration() error
	Close() error
}

type DataStore struct {
	db         *gorm.DB
	kv         KV
	assessment Assessment
	job        Job
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		kv:         NewKVStore(db),
		assessment: NewAssessmentStore(db),
		job:        NewJobStore(db),
		db:         db,
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) KV() KV {
	return s.kv
}

func (s *DataStore) Assessment() Assessment {
	return s.assessment
}

func (s *DataStore) Job() Job {
	return s.job
}

func (s *DataStore) InitialMigration() error {
	return s.db.AutoMigrate(
		&model.KVEntry{},
		&model.Assessment{},
		&model.Snapshot{},
		&model.Job{},
	)
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
