package service

import (
	"context"
	"errors"
	"fmt"

	api "github.com/hammad983ae/sustaino-sub007/api/v1alpha1"
	"github.com/hammad983ae/sustaino-sub007/internal/service/mappers"
	"github.com/hammad983ae/sustaino-sub007/internal/store"
	"github.com/hammad983ae/sustaino-sub007/internal/store/model"
	"github.com/hammad983ae/sustaino-sub007/pkg/log"
)

type JobFilter struct {
	OrgID  string
	Status string
}

type JobService struct {
	store         store.Store
	jobNumberBase int
	logger        *log.StructuredLogger
}

func NewJobService(store store.Store, jobNumberBase int) *JobService {
	return &JobService{
		store:         store,
		jobNumberBase: jobNumberBase,
		logger:        log.NewDebugLogger("job_service"),
	}
}

func (js *JobService) ListJobs(ctx context.Context, filter *JobFilter) (model.JobList, error) {
	logger := js.logger.WithContext(ctx)
	tracer := logger.Operation("list_jobs").
		WithString("org_id", filter.OrgID).
		WithString("status", filter.Status).
		Build()

	storeFilter := store.NewJobQueryFilter().WithOrgID(filter.OrgID)
	if filter.Status != "" {
		storeFilter = storeFilter.WithStatus(filter.Status)
	}

	jobs, err := js.store.Job().List(ctx, storeFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	tracer.Success().WithInt("count", len(jobs)).Log()
	return jobs, nil
}

func (js *JobService) GetJob(ctx context.Context, id string) (*model.Job, error) {
	logger := js.logger.WithContext(ctx)
	tracer := logger.Operation("get_job").
		WithString("job_id", id).
		Build()

	job, err := js.store.Job().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(id)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	tracer.Success().
		WithInt("job_number", job.JobNumber).
		WithString("status", job.Status).
		Log()
	return job, nil
}

// CreateJob persists a new pending job. A zero job number is allocated from
// the org's sequence; the allocation and insert share one transaction so
// concurrent creates cannot collide.
func (js *JobService) CreateJob(ctx context.Context, createForm mappers.JobCreateForm) (*model.Job, error) {
	logger := js.logger.WithContext(ctx)
	tracer := logger.Operation("create_job").
		WithString("org_id", createForm.OrgID).
		WithInt("job_number", createForm.JobNumber).
		WithString("address", createForm.PropertyAddress).
		Build()

	ctx, err := js.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = store.Rollback(ctx)
	}()

	if createForm.JobNumber == 0 {
		number, err := js.store.Job().NextJobNumber(ctx, createForm.OrgID, js.jobNumberBase)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate job number: %w", err)
		}
		createForm.JobNumber = number
		tracer.Step("allocated_job_number").WithInt("job_number", number).Log()
	}

	job, err := js.store.Job().Create(ctx, createForm.ToModel())
	if err != nil {
		_, _ = store.Rollback(ctx)

		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, NewErrJobDuplicateNumber(createForm.JobNumber)
		}
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}

	tracer.Success().
		WithString("job_id", job.ID).
		WithInt("job_number", job.JobNumber).
		Log()
	return job, nil
}

// UpdateJob applies a status/data/reports envelope. Jobs in a terminal state
// reject every update.
func (js *JobService) UpdateJob(ctx context.Context, id string, status *string, data []byte, reports []byte) (*model.Job, error) {
	logger := js.logger.WithContext(ctx)
	tracer := logger.Operation("update_job").
		WithString("job_id", id).
		WithStringPtr("status", status).
		WithBool("with_data", data != nil).
		WithBool("with_reports", reports != nil).
		Build()

	ctx, err := js.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = store.Rollback(ctx)
	}()

	job, err := js.store.Job().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(id)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	if api.StringToJobStatus(job.Status).IsTerminal() {
		return nil, NewErrJobTerminalState(job.ID, job.Status)
	}

	updated, err := js.store.Job().Update(ctx, id, status, data, reports)
	if err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}

	tracer.Success().WithString("status", updated.Status).Log()
	return updated, nil
}
