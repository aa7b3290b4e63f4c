package v1alpha1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/hammad983ae/sustaino-sub007/internal/service"
	"github.com/hammad983ae/sustaino-sub007/pkg/requestid"
)

type ServiceHandler struct {
	assessmentSrv *service.AssessmentService
	jobSrv        *service.JobService
}

func NewServiceHandler(assessmentSrv *service.AssessmentService, jobSrv *service.JobService) *ServiceHandler {
	return &ServiceHandler{
		assessmentSrv: assessmentSrv,
		jobSrv:        jobSrv,
	}
}

func (h *ServiceHandler) Routes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/users/me", h.GetCurrentUser)
		r.Route("/assessments", func(r chi.Router) {
			r.Get("/", h.ListAssessments)
			r.Post("/", h.CreateAssessment)
			r.Get("/{id}", h.GetAssessment)
			r.Put("/{id}", h.UpdateAssessment)
			r.Delete("/{id}", h.DeleteAssessment)
		})
		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", h.ListJobs)
			r.Post("/", h.CreateJob)
			r.Get("/{id}", h.GetJob)
			r.Put("/{id}", h.UpdateJob)
		})
	})
}

// ErrorReply is the error body every endpoint returns.
type ErrorReply struct {
	Message   string  `json:"message"`
	RequestID *string `json:"requestId,omitempty"`
}

func replyError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorReply{
		Message:   message,
		RequestID: requestid.FromContextPtr(r.Context()),
	})
}

func replyJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	render.Status(r, status)
	render.JSON(w, r, payload)
}
