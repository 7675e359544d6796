// Package rest wires route handlers behind the admission pipeline. Every
// route declares its authentication mode, role allow-list, and input schemas
// at registration time; handlers only ever see validated data.
package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gigvora/gigvora-backend/internal/api/middleware"
	"github.com/gigvora/gigvora-backend/internal/auth"
	"github.com/gigvora/gigvora-backend/internal/repository"
)

// Handler manages HTTP request handlers.
type Handler struct {
	repo *repository.SQLiteRepository
}

// NewHandler creates a new HTTP handler.
func NewHandler(repo *repository.SQLiteRepository) *Handler {
	return &Handler{repo: repo}
}

// SetupRoutes configures API routes. Each route runs its stages in fixed
// order: authenticate, authorize, validate, handler.
func SetupRoutes(router *mux.Router, h *Handler, verifier *auth.Verifier) {
	authenticate := middleware.Authenticate(verifier, middleware.AuthOptions{})
	optionalAuth := middleware.Authenticate(verifier, middleware.AuthOptions{Optional: true})

	// Campaign routes
	router.Handle("/campaigns", chain(
		authenticate,
		middleware.RequireRoles(auth.RoleCompany, auth.RoleAgency, auth.RoleAdmin),
		middleware.ValidateRequest(middleware.Schemas{Body: createCampaignSchema}),
	)(http.HandlerFunc(h.CreateCampaign))).Methods("POST")

	router.Handle("/campaigns", chain(
		optionalAuth,
		middleware.ValidateRequest(middleware.Schemas{Query: listCampaignsQuerySchema}),
	)(http.HandlerFunc(h.ListCampaigns))).Methods("GET")

	router.Handle("/campaigns/{campaignId}", chain(
		authenticate,
		middleware.RequireRoles(),
		middleware.ValidateRequest(middleware.Schemas{Params: campaignParamsSchema}),
	)(http.HandlerFunc(h.GetCampaign))).Methods("GET")

	// User routes: owners read their own profile, admins read anyone's
	router.Handle("/users/{userId}", chain(
		authenticate,
		middleware.RequireSelfOrRoles(middleware.SelfAccess{
			MatchParam:         "userId",
			AllowAdminOverride: true,
		}),
		middleware.ValidateRequest(middleware.Schemas{Params: userParamsSchema}),
	)(http.HandlerFunc(h.GetUser))).Methods("GET")
}

// chain composes middleware left to right: the first argument runs first.
func chain(stages ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(final http.Handler) http.Handler {
		for i := len(stages) - 1; i >= 0; i-- {
			final = stages[i](final)
		}
		return final
	}
}
