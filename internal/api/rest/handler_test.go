package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"github.com/gigvora/gigvora-backend/internal/auth"
	"github.com/gigvora/gigvora-backend/internal/models"
	"github.com/gigvora/gigvora-backend/internal/repository"
)

const testSecret = "test-secret-key-minimum-32-characters-long"

type testServer struct {
	repo   *repository.SQLiteRepository
	router *mux.Router
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	repo, err := repository.NewSQLiteRepository(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	migrationSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			deactivated_at DATETIME,
			deleted_at DATETIME
		);
		CREATE TABLE IF NOT EXISTS campaigns (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'draft',
			budget REAL NOT NULL DEFAULT 0,
			tags TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`
	if err := repo.RunMigrations(migrationSQL); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	router := mux.NewRouter()
	verifier := auth.NewVerifier(testSecret, repo)
	SetupRoutes(router, NewHandler(repo), verifier)
	return &testServer{repo: repo, router: router}
}

func (ts *testServer) seedUser(t *testing.T, id, role string) string {
	t.Helper()
	user := &models.User{
		ID:           id,
		Email:        id + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	if err := ts.repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	token, err := auth.IssueToken(testSecret, id, role)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return token
}

func (ts *testServer) do(t *testing.T, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateCampaign_Success(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.seedUser(t, "42", auth.RoleCompany)

	rec := ts.do(t, http.MethodPost, "/campaigns", token,
		`{"name": "  Spring Launch  ", "tags": "promo, launch", "internal": "dropme"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var campaign models.Campaign
	if err := json.Unmarshal(rec.Body.Bytes(), &campaign); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if campaign.Name != "Spring Launch" {
		t.Errorf("Expected trimmed name, got %q", campaign.Name)
	}
	if campaign.OwnerID != "42" {
		t.Errorf("Expected owner 42, got %q", campaign.OwnerID)
	}
	if campaign.Tags != "promo,launch" {
		t.Errorf("Expected normalized tags, got %q", campaign.Tags)
	}
}

func TestCreateCampaign_ValidationFailure(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.seedUser(t, "42", auth.RoleCompany)

	rec := ts.do(t, http.MethodPost, "/campaigns", token, `{}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Error  string `json:"error"`
		Issues []struct {
			Path string `json:"path"`
			Code string `json:"code"`
		} `json:"issues"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if resp.Error != "Request validation failed." {
		t.Errorf("Expected validation message, got %q", resp.Error)
	}
	if len(resp.Issues) != 1 || resp.Issues[0].Path != "name" {
		t.Errorf("Expected single issue at name, got %+v", resp.Issues)
	}
}

func TestCreateCampaign_ActiveRequiresBudget(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.seedUser(t, "42", auth.RoleCompany)

	rec := ts.do(t, http.MethodPost, "/campaigns", token,
		`{"name": "Launch", "status": "active"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodPost, "/campaigns", token,
		`{"name": "Launch", "status": "active", "budget": 1500.506}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var campaign models.Campaign
	if err := json.Unmarshal(rec.Body.Bytes(), &campaign); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if campaign.Budget != 1500.51 {
		t.Errorf("Expected budget rounded to 1500.51, got %v", campaign.Budget)
	}
}

func TestCreateCampaign_RoleDenied(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.seedUser(t, "42", auth.RoleFreelancer)

	rec := ts.do(t, http.MethodPost, "/campaigns", token, `{"name": "Launch"}`)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("Expected status 403, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateCampaign_NoToken(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodPost, "/campaigns", "", `{"name": "Launch"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", rec.Code)
	}
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Error("Expected WWW-Authenticate challenge on 401")
	}
}

func TestListCampaigns_AnonymousOK(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.seedUser(t, "42", auth.RoleCompany)
	rec := ts.do(t, http.MethodPost, "/campaigns", token, `{"name": "Launch"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Seed campaign failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/campaigns", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Campaigns []models.Campaign `json:"campaigns"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Campaigns) != 1 {
		t.Errorf("Expected one campaign, got %d", len(resp.Campaigns))
	}
}

func TestListCampaigns_QueryValidation(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodGet, "/campaigns?limit=0", "", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422, got %d", rec.Code)
	}

	rec = ts.do(t, http.MethodGet, "/campaigns?status=archived", "", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422 for unknown status, got %d", rec.Code)
	}
}

func TestListCampaigns_MineScopesToOwner(t *testing.T) {
	ts := setupTestServer(t)
	tokenA := ts.seedUser(t, "owner-a", auth.RoleCompany)
	tokenB := ts.seedUser(t, "owner-b", auth.RoleAgency)

	for _, tok := range []string{tokenA, tokenB} {
		rec := ts.do(t, http.MethodPost, "/campaigns", tok, `{"name": "Launch"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("Seed campaign failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec := ts.do(t, http.MethodGet, "/campaigns?mine=true", tokenA, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Campaigns []models.Campaign `json:"campaigns"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Campaigns) != 1 || resp.Campaigns[0].OwnerID != "owner-a" {
		t.Errorf("Expected only owner-a campaigns, got %+v", resp.Campaigns)
	}
}

func TestGetCampaign_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.seedUser(t, "42", auth.RoleFreelancer)

	rec := ts.do(t, http.MethodGet, "/campaigns/missing", token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetUser_SelfAndAdmin(t *testing.T) {
	ts := setupTestServer(t)
	userToken := ts.seedUser(t, "u1", auth.RoleFreelancer)
	otherToken := ts.seedUser(t, "u2", auth.RoleCompany)
	adminToken := ts.seedUser(t, "root", auth.RoleAdmin)

	rec := ts.do(t, http.MethodGet, "/users/u1", userToken, "")
	if rec.Code != http.StatusOK {
		t.Errorf("Self lookup: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodGet, "/users/u1", otherToken, "")
	if rec.Code != http.StatusForbidden {
		t.Errorf("Foreign lookup: expected 403, got %d", rec.Code)
	}

	rec = ts.do(t, http.MethodGet, "/users/u1", adminToken, "")
	if rec.Code != http.StatusOK {
		t.Errorf("Admin lookup: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDeactivatedUserRejected(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.seedUser(t, "42", auth.RoleCompany)

	if err := ts.repo.DeactivateUser(context.Background(), "42"); err != nil {
		t.Fatalf("Failed to deactivate user: %v", err)
	}

	rec := ts.do(t, http.MethodPost, "/campaigns", token, `{"name": "Launch"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401 for deactivated account, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Account not found or inactive") {
		t.Errorf("Expected inactive-account message, got %s", rec.Body.String())
	}
}
