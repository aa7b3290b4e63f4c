package v1alpha1

import (
	"net/http"

	api "github.com/hammad983ae/sustaino-sub007/api/v1alpha1"
	"github.com/hammad983ae/sustaino-sub007/internal/auth"
)

// (GET /health)
func (h *ServiceHandler) Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// (GET /api/v1/users/me)
func (h *ServiceHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user := auth.MustHaveUser(r.Context())
	replyJSON(w, r, http.StatusOK, api.User{
		ID:           user.Username,
		Username:     user.Username,
		Organization: user.Organization,
	})
}
