package rest

import (
	"net/http"
	"strings"

	"github.com/gigvora/gigvora-backend/internal/api/middleware"
	"github.com/gigvora/gigvora-backend/internal/auth"
	"github.com/gigvora/gigvora-backend/internal/models"
)

// CreateCampaign handles POST /campaigns.
func (h *Handler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	body := middleware.ValidatedFromContext(r.Context()).Body

	campaign := &models.Campaign{
		OwnerID: identity.ID,
		Name:    body["name"].(string),
	}
	if v, ok := body["description"].(string); ok {
		campaign.Description = v
	}
	if v, ok := body["status"].(string); ok {
		campaign.Status = v
	}
	if v, ok := body["budget"].(float64); ok {
		campaign.Budget = v
	}
	if tags, ok := body["tags"].([]string); ok {
		campaign.Tags = strings.Join(tags, ",")
	}

	if err := h.repo.CreateCampaign(r.Context(), campaign); err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to create campaign")
		return
	}
	respondJSON(w, http.StatusCreated, campaign)
}

// ListCampaigns handles GET /campaigns. Anonymous callers see public
// listings; authenticated callers may scope to their own with ?mine=true.
func (h *Handler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	query := middleware.ValidatedFromContext(r.Context()).Query

	status, _ := query["status"].(string)
	limit := 0
	if v, ok := query["limit"].(float64); ok {
		limit = int(v)
	}
	ownerID := ""
	if mine, ok := query["mine"].(bool); ok && mine && identity != nil {
		ownerID = identity.ID
	}

	campaigns, err := h.repo.ListCampaigns(r.Context(), status, ownerID, limit)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to list campaigns")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"campaigns": campaigns})
}

// GetCampaign handles GET /campaigns/{campaignId}.
func (h *Handler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	params := middleware.ValidatedFromContext(r.Context()).Params
	id := params["campaignId"].(string)

	campaign, err := h.repo.GetCampaign(r.Context(), id)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "Failed to get campaign")
		return
	}
	if campaign == nil {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Campaign not found")
		return
	}
	respondJSON(w, http.StatusOK, campaign)
}
