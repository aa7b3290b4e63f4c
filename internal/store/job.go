package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hammad983ae/sustaino-sub007/internal/store/model"
	"gorm.io/gorm"
)

type Job interface {
	List(ctx context.Context, filter *JobQueryFilter) (model.JobList, error)
	Get(ctx context.Context, id string) (*model.Job, error)
	Create(ctx context.Context, job model.Job) (*model.Job, error)
	Update(ctx context.Context, id string, status *string, data []byte, reports []byte) (*model.Job, error)
	NextJobNumber(ctx context.Context, orgID string, base int) (int, error)
}

type JobStore struct {
	db *gorm.DB
}

// Make sure we conform to Job interface
var _ Job = (*JobStore)(nil)

func NewJobStore(db *gorm.DB) Job {
	return &JobStore{db: db}
}

func (s *JobStore) List(ctx context.Context, filter *JobQueryFilter) (model.JobList, error) {
	var jobs model.JobList
	tx := s.getDB(ctx).Model(&jobs).Order("job_number DESC")

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	result := tx.Find(&jobs)
	if result.Error != nil {
		return nil, result.Error
	}
	return jobs, nil
}

func (s *JobStore) Get(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	result := s.getDB(ctx).First(&job, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("querying job: %w", result.Error)
	}
	return &job, nil
}

func (s *JobStore) Create(ctx context.Context, job model.Job) (*model.Job, error) {
	now := time.Now()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now

	result := s.getDB(ctx).Create(&job)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &job, nil
}

func (s *JobStore) Update(ctx context.Context, id string, status *string, data []byte, reports []byte) (*model.Job, error) {
	var job model.Job
	if err := s.getDB(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	updates := map[string]any{"updated_at": time.Now()}
	if status != nil {
		updates["status"] = *status
	}
	if data != nil {
		updates["data"] = data
	}
	if reports != nil {
		updates["reports"] = reports
	}

	if err := s.getDB(ctx).Model(&job).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("updating job: %w", err)
	}

	return s.Get(ctx, id)
}

// NextJobNumber returns the next free human-facing job number for the org,
// seeded at base when no jobs exist yet.
func (s *JobStore) NextJobNumber(ctx context.Context, orgID string, base int) (int, error) {
	var max *int
	result := s.getDB(ctx).Model(&model.Job{}).Where("org_id = ?", orgID).Select("MAX(job_number)").Scan(&max)
	if result.Error != nil {
		return 0, result.Error
	}
	if max == nil || *max < base {
		return base, nil
	}
	return *max + 1, nil
}

func (s *JobStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
