package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/gigvora/gigvora-backend/internal/auth"
)

func identityRequest(t *testing.T, target string, identity *auth.Identity) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if identity != nil {
		req = req.WithContext(auth.WithIdentity(req.Context(), identity))
	}
	return req
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if called != nil {
			*called = true
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireRoles_NoIdentity(t *testing.T) {
	called := false
	handler := RequireRoles(auth.RoleCompany)(okHandler(&called))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, identityRequest(t, "/api/v1/campaigns", nil))

	if called {
		t.Error("Handler must not run without an identity")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestRequireRoles_EmptyListAdmitsAnyIdentity(t *testing.T) {
	handler := RequireRoles()(okHandler(nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, identityRequest(t, "/api/v1/campaigns", &auth.Identity{ID: "u1", Role: auth.RoleFreelancer}))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

func TestRequireRoles_MemberAdmitted(t *testing.T) {
	handler := RequireRoles(auth.RoleCompany, auth.RoleAgency)(okHandler(nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, identityRequest(t, "/api/v1/campaigns", &auth.Identity{ID: "u1", Role: auth.RoleAgency}))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

func TestRequireRoles_NonMemberDenied(t *testing.T) {
	called := false
	handler := RequireRoles(auth.RoleCompany)(okHandler(&called))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, identityRequest(t, "/api/v1/campaigns", &auth.Identity{ID: "u1", Role: auth.RoleFreelancer}))

	if called {
		t.Error("Handler must not run for a denied role")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "You do not have permission to perform this action.") {
		t.Errorf("Expected permission message, got %s", body)
	}
}

// selfAccessRouter mounts the gate on a route with a userId variable so
// mux.Vars resolves inside the middleware.
func selfAccessRouter(sa SelfAccess, called *bool) *mux.Router {
	router := mux.NewRouter()
	router.Handle("/users/{userId}", RequireSelfOrRoles(sa)(okHandler(called))).Methods(http.MethodGet)
	return router
}

func TestRequireSelfOrRoles_OwnResource(t *testing.T) {
	router := selfAccessRouter(SelfAccess{MatchParam: "userId"}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, identityRequest(t, "/users/u1", &auth.Identity{ID: "u1", Role: auth.RoleFreelancer}))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

func TestRequireSelfOrRoles_OtherResourceDenied(t *testing.T) {
	called := false
	router := selfAccessRouter(SelfAccess{MatchParam: "userId"}, &called)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, identityRequest(t, "/users/u2", &auth.Identity{ID: "u1", Role: auth.RoleFreelancer}))

	if called {
		t.Error("Handler must not run for a foreign resource")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rec.Code)
	}
}

func TestRequireSelfOrRoles_AdminOverride(t *testing.T) {
	router := selfAccessRouter(SelfAccess{MatchParam: "userId", AllowAdminOverride: true}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, identityRequest(t, "/users/u2", &auth.Identity{ID: "admin-1", Role: auth.RoleAdmin}))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

func TestRequireSelfOrRoles_NoOverrideForNonAdmin(t *testing.T) {
	router := selfAccessRouter(SelfAccess{MatchParam: "userId", AllowAdminOverride: true}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, identityRequest(t, "/users/u2", &auth.Identity{ID: "u1", Role: auth.RoleCompany}))

	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rec.Code)
	}
}
