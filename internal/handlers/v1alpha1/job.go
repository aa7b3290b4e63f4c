package v1alpha1

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	api "github.com/hammad983ae/sustaino-sub007/api/v1alpha1"
	"github.com/hammad983ae/sustaino-sub007/internal/auth"
	"github.com/hammad983ae/sustaino-sub007/internal/service"
	"github.com/hammad983ae/sustaino-sub007/internal/service/mappers"
	"github.com/hammad983ae/sustaino-sub007/pkg/log"
)

// (GET /api/v1/jobs)
func (h *ServiceHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.NewDebugLogger("job_handler").
		WithContext(ctx).
		Operation("list_jobs").
		Build()

	user := auth.MustHaveUser(ctx)

	filter := &service.JobFilter{
		OrgID:  user.Organization,
		Status: r.URL.Query().Get("status"),
	}

	jobs, err := h.jobSrv.ListJobs(ctx, filter)
	if err != nil {
		logger.Error(err).Log()
		replyError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to list jobs: %v", err))
		return
	}

	logger.Success().WithInt("count", len(jobs)).Log()
	replyJSON(w, r, http.StatusOK, mappers.JobListToAPI(jobs))
}

// (POST /api/v1/jobs)
func (h *ServiceHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.NewDebugLogger("job_handler").
		WithContext(ctx).
		Operation("create_job").
		Build()

	user := auth.MustHaveUser(ctx)
	logger.Step("extract_user").WithString("org_id", user.Organization).WithString("username", user.Username).Log()

	var form api.JobForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		logger.Error(err).WithString("step", "decode_body").Log()
		replyError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	createForm, err := mappers.JobFormToCreateForm(form, user.Username, user.Organization)
	if err != nil {
		logger.Error(err).WithString("step", "map_form").Log()
		replyError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to map form: %v", err))
		return
	}

	job, err := h.jobSrv.CreateJob(ctx, createForm)
	if err != nil {
		switch err.(type) {
		case *service.ErrJobDuplicateNumber:
			logger.Error(err).WithString("step", "duplicate_check").Log()
			replyError(w, r, http.StatusConflict, err.Error())
		default:
			logger.Error(err).Log()
			replyError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to create job: %v", err))
		}
		return
	}

	logger.Success().WithString("job_id", job.ID).WithInt("job_number", job.JobNumber).Log()
	replyJSON(w, r, http.StatusCreated, mappers.JobToAPI(*job))
}

// (GET /api/v1/jobs/{id})
func (h *ServiceHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.NewDebugLogger("job_handler").
		WithContext(ctx).
		Operation("get_job").
		Build()

	user := auth.MustHaveUser(ctx)
	id := chi.URLParam(r, "id")

	job, err := h.jobSrv.GetJob(ctx, id)
	if err != nil {
		switch err.(type) {
		case *service.ErrResourceNotFound:
			replyError(w, r, http.StatusNotFound, err.Error())
		default:
			logger.Error(err).Log()
			replyError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to get job: %v", err))
		}
		return
	}
	if job.OrgID != user.Organization {
		replyError(w, r, http.StatusForbidden, "job belongs to another organization")
		return
	}

	logger.Success().WithString("job_id", id).Log()
	replyJSON(w, r, http.StatusOK, mappers.JobToAPI(*job))
}

// (PUT /api/v1/jobs/{id})
func (h *ServiceHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.NewDebugLogger("job_handler").
		WithContext(ctx).
		Operation("update_job").
		Build()

	user := auth.MustHaveUser(ctx)
	id := chi.URLParam(r, "id")

	var update api.JobUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		logger.Error(err).WithString("step", "decode_body").Log()
		replyError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	existing, err := h.jobSrv.GetJob(ctx, id)
	if err != nil {
		switch err.(type) {
		case *service.ErrResourceNotFound:
			replyError(w, r, http.StatusNotFound, err.Error())
		default:
			logger.Error(err).Log()
			replyError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to get job: %v", err))
		}
		return
	}
	if existing.OrgID != user.Organization {
		replyError(w, r, http.StatusForbidden, "job belongs to another organization")
		return
	}

	var status *string
	if update.Status != nil {
		s := string(*update.Status)
		status = &s
	}
	var data, reports []byte
	if update.Data != nil {
		if data, err = json.Marshal(update.Data); err != nil {
			replyError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid data payload: %v", err))
			return
		}
	}
	if update.Reports != nil {
		if reports, err = json.Marshal(update.Reports); err != nil {
			replyError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid reports payload: %v", err))
			return
		}
	}

	job, err := h.jobSrv.UpdateJob(ctx, id, status, data, reports)
	if err != nil {
		switch err.(type) {
		case *service.ErrJobTerminalState:
			logger.Error(err).WithString("step", "terminal_check").Log()
			replyError(w, r, http.StatusConflict, err.Error())
		default:
			logger.Error(err).Log()
			replyError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to update job: %v", err))
		}
		return
	}

	logger.Success().WithString("job_id", id).WithString("status", job.Status).Log()
	replyJSON(w, r, http.StatusOK, mappers.JobToAPI(*job))
}
