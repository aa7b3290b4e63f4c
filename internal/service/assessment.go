package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hammad983ae/sustaino-sub007/internal/service/mappers"
	"github.com/hammad983ae/sustaino-sub007/internal/store"
	"github.com/hammad983ae/sustaino-sub007/internal/store/model"
	"github.com/hammad983ae/sustaino-sub007/pkg/log"
)

type AssessmentFilter struct {
	OrgID    string
	Username string
	NameLike string
}

type AssessmentService struct {
	store  store.Store
	logger *log.StructuredLogger
}

func NewAssessmentService(store store.Store) *AssessmentService {
	return &AssessmentService{
		store:  store,
		logger: log.NewDebugLogger("assessment_service"),
	}
}

func (as *AssessmentService) ListAssessments(ctx context.Context, filter *AssessmentFilter) (model.AssessmentList, error) {
	logger := as.logger.WithContext(ctx)
	tracer := logger.Operation("list_assessments").
		WithString("org_id", filter.OrgID).
		WithString("username", filter.Username).
		WithString("name_like", filter.NameLike).
		Build()

	storeFilter := store.NewAssessmentQueryFilter().WithOrgID(filter.OrgID)
	if filter.Username != "" {
		storeFilter = storeFilter.WithUsername(filter.Username)
	}
	if filter.NameLike != "" {
		storeFilter = storeFilter.WithNameLike(filter.NameLike)
	}

	assessments, err := as.store.Assessment().List(ctx, storeFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	tracer.Success().WithInt("count", len(assessments)).Log()
	return assessments, nil
}

func (as *AssessmentService) GetAssessment(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
	logger := as.logger.WithContext(ctx)
	tracer := logger.Operation("get_assessment").
		WithUUID("assessment_id", id).
		Build()

	assessment, err := as.store.Assessment().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrAssessmentNotFound(id)
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	tracer.Success().
		WithString("assessment_name", assessment.Name).
		WithInt("snapshots", len(assessment.Snapshots)).
		Log()
	return assessment, nil
}

func (as *AssessmentService) CreateAssessment(ctx context.Context, createForm mappers.AssessmentCreateForm) (*model.Assessment, error) {
	logger := as.logger.WithContext(ctx)
	tracer := logger.Operation("create_assessment").
		WithString("org_id", createForm.OrgID).
		WithString("name", createForm.Name).
		WithStringPtr("job_id", createForm.JobID).
		Build()

	assessment := createForm.ToModel()
	tracer.Step("convert_form_to_model").WithUUID("assessment_id", assessment.ID).Log()

	ctx, err := as.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = store.Rollback(ctx)
	}()

	createdAssessment, err := as.store.Assessment().Create(ctx, assessment, createForm.Report)
	if err != nil {
		_, _ = store.Rollback(ctx)

		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, NewErrAssessmentDuplicateName(assessment.Name)
		}
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}

	tracer.Success().
		WithUUID("assessment_id", createdAssessment.ID).
		WithString("assessment_name", createdAssessment.Name).
		Log()
	return createdAssessment, nil
}

// UpdateAssessment renames the assessment and, when report is non-nil,
// records a new snapshot of the session state.
func (as *AssessmentService) UpdateAssessment(ctx context.Context, id uuid.UUID, name *string, report []byte) (*model.Assessment, error) {
	logger := as.logger.WithContext(ctx)
	tracer := logger.Operation("update_assessment").
		WithUUID("assessment_id", id).
		WithStringPtr("new_name", name).
		WithBool("with_snapshot", report != nil).
		Build()

	ctx, err := as.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = store.Rollback(ctx)
	}()

	if _, err := as.store.Assessment().Get(ctx, id); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrAssessmentNotFound(id)
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	updated, err := as.store.Assessment().Update(ctx, id, name, report)
	if err != nil {
		return nil, fmt.Errorf("failed to update assessment: %w", err)
	}

	if _, err := store.Commit(ctx); err != nil {
		return nil, err
	}

	tracer.Success().WithInt("snapshots", len(updated.Snapshots)).Log()
	return updated, nil
}

func (as *AssessmentService) DeleteAssessment(ctx context.Context, id uuid.UUID) error {
	logger := as.logger.WithContext(ctx)
	tracer := logger.Operation("delete_assessment").
		WithUUID("assessment_id", id).
		Build()

	if _, err := as.store.Assessment().Get(ctx, id); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrAssessmentNotFound(id)
		}
		return fmt.Errorf("failed to get assessment: %w", err)
	}

	if err := as.store.Assessment().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}

	tracer.Success().Log()
	return nil
}
