package v1alpha1

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	api "github.com/hammad983ae/sustaino-sub007/api/v1alpha1"
	"github.com/hammad983ae/sustaino-sub007/internal/auth"
	"github.com/hammad983ae/sustaino-sub007/internal/service"
	"github.com/hammad983ae/sustaino-sub007/internal/service/mappers"
	"github.com/hammad983ae/sustaino-sub007/pkg/log"
)

// (GET /api/v1/assessments)
func (h *ServiceHandler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.NewDebugLogger("assessment_handler").
		WithContext(ctx).
		Operation("list_assessments").
		Build()

	user := auth.MustHaveUser(ctx)
	logger.Step("extract_user").WithString("org_id", user.Organization).WithString("username", user.Username).Log()

	filter := &service.AssessmentFilter{
		OrgID:    user.Organization,
		NameLike: r.URL.Query().Get("name"),
	}

	assessments, err := h.assessmentSrv.ListAssessments(ctx, filter)
	if err != nil {
		logger.Error(err).Log()
		replyError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to list assessments: %v", err))
		return
	}

	logger.Success().WithInt("count", len(assessments)).Log()
	replyJSON(w, r, http.StatusOK, mappers.AssessmentListToAPI(assessments))
}

// (POST /api/v1/assessments)
func (h *ServiceHandler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.NewDebugLogger("assessment_handler").
		WithContext(ctx).
		Operation("create_assessment").
		Build()

	user := auth.MustHaveUser(ctx)
	logger.Step("extract_user").WithString("org_id", user.Organization).WithString("username", user.Username).Log()

	var form api.AssessmentForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		logger.Error(err).WithString("step", "decode_body").Log()
		replyError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if form.Name == "" {
		logger.Error(fmt.Errorf("empty name")).WithString("step", "validation").Log()
		replyError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	createForm, err := mappers.AssessmentFormToCreateForm(form, user.Username, user.Organization)
	if err != nil {
		logger.Error(err).WithString("step", "map_form").Log()
		replyError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to map form: %v", err))
		return
	}

	assessment, err := h.assessmentSrv.CreateAssessment(ctx, createForm)
	if err != nil {
		switch err.(type) {
		case *service.ErrAssessmentDuplicateName:
			logger.Error(err).WithString("step", "duplicate_check").Log()
			replyError(w, r, http.StatusConflict, err.Error())
		default:
			logger.Error(err).Log()
			replyError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to create assessment: %v", err))
		}
		return
	}

	logger.Success().WithUUID("assessment_id", assessment.ID).Log()
	replyJSON(w, r, http.StatusCreated, mappers.AssessmentToAPI(*assessment))
}

// (GET /api/v1/assessments/{id})
func (h *ServiceHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.NewDebugLogger("assessment_handler").
		WithContext(ctx).
		Operation("get_assessment").
		Build()

	user := auth.MustHaveUser(ctx)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Error(err).WithString("step", "parse_id").Log()
		replyError(w, r, http.StatusBadRequest, "invalid assessment id")
		return
	}

	assessment, err := h.assessmentSrv.GetAssessment(ctx, id)
	if err != nil {
		switch err.(type) {
		case *service.ErrResourceNotFound:
			replyError(w, r, http.StatusNotFound, err.Error())
		default:
			logger.Error(err).Log()
			replyError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to get assessment: %v", err))
		}
		return
	}
	if assessment.OrgID != user.Organization {
		replyError(w, r, http.StatusForbidden, "assessment belongs to another organization")
		return
	}

	logger.Success().WithUUID("assessment_id", id).Log()
	replyJSON(w, r, http.StatusOK, mappers.AssessmentToAPI(*assessment))
}

// (PUT /api/v1/assessments/{id})
func (h *ServiceHandler) UpdateAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.NewDebugLogger("assessment_handler").
		WithContext(ctx).
		Operation("update_assessment").
		Build()

	user := auth.MustHaveUser(ctx)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Error(err).WithString("step", "parse_id").Log()
		replyError(w, r, http.StatusBadRequest, "invalid assessment id")
		return
	}

	var form api.AssessmentForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		logger.Error(err).WithString("step", "decode_body").Log()
		replyError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	existing, err := h.assessmentSrv.GetAssessment(ctx, id)
	if err != nil {
		switch err.(type) {
		case *service.ErrResourceNotFound:
			replyError(w, r, http.StatusNotFound, err.Error())
		default:
			logger.Error(err).Log()
			replyError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to get assessment: %v", err))
		}
		return
	}
	if existing.OrgID != user.Organization {
		replyError(w, r, http.StatusForbidden, "assessment belongs to another organization")
		return
	}

	createForm, err := mappers.AssessmentFormToCreateForm(form, user.Username, user.Organization)
	if err != nil {
		logger.Error(err).WithString("step", "map_form").Log()
		replyError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to map form: %v", err))
		return
	}

	var name *string
	if form.Name != "" {
		name = &form.Name
	}

	updated, err := h.assessmentSrv.UpdateAssessment(ctx, id, name, createForm.Report)
	if err != nil {
		logger.Error(err).Log()
		replyError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to update assessment: %v", err))
		return
	}

	logger.Success().WithUUID("assessment_id", id).Log()
	replyJSON(w, r, http.StatusOK, mappers.AssessmentToAPI(*updated))
}

// (DELETE /api/v1/assessments/{id})
func (h *ServiceHandler) DeleteAssessment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.NewDebugLogger("assessment_handler").
		WithContext(ctx).
		Operation("delete_assessment").
		Build()

	user := auth.MustHaveUser(ctx)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Error(err).WithString("step", "parse_id").Log()
		replyError(w, r, http.StatusBadRequest, "invalid assessment id")
		return
	}

	existing, err := h.assessmentSrv.GetAssessment(ctx, id)
	if err != nil {
		switch err.(type) {
		case *service.ErrResourceNotFound:
			replyError(w, r, http.StatusNotFound, err.Error())
		default:
			logger.Error(err).Log()
			replyError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to get assessment: %v", err))
		}
		return
	}
	if existing.OrgID != user.Organization {
		replyError(w, r, http.StatusForbidden, "assessment belongs to another organization")
		return
	}

	if err := h.assessmentSrv.DeleteAssessment(ctx, id); err != nil {
		logger.Error(err).Log()
		replyError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to delete assessment: %v", err))
		return
	}

	logger.Success().WithUUID("assessment_id", id).Log()
	w.WriteHeader(http.StatusNoContent)
}
