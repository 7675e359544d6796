package rest

import (
	"net/http"

	"github.com/gigvora/gigvora-backend/internal/api/middleware"
)

// GetUser handles GET /users/{userId}. The authorization stage already
// guaranteed the caller owns this id or holds the admin role.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	params := middleware.ValidatedFromContext(r.Context()).Params
	id := params["userId"].(string)

	user, err := h.repo.GetUserByID(r.Context(), id)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to get user")
		return
	}
	if user == nil {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
