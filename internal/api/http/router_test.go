package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/projectflow/projectflow-service/internal/api/http/handlers"
	"github.com/projectflow/projectflow-service/internal/auth"
	"github.com/projectflow/projectflow-service/internal/clock"
	"github.com/projectflow/projectflow-service/internal/config"
	"github.com/projectflow/projectflow-service/internal/observability"
	"github.com/projectflow/projectflow-service/internal/repository"
	"github.com/projectflow/projectflow-service/internal/seed"
	"github.com/projectflow/projectflow-service/internal/service"
)

// ---------------------------------------------------------------------------
// In-memory stub store backing the end-to-end tests
// ---------------------------------------------------------------------------

type memStore struct {
	data map[string]json.RawMessage
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]json.RawMessage)}
}

func (s *memStore) Load(_ context.Context, key string) (json.RawMessage, bool, error) {
	raw, ok := s.data[key]
	return raw, ok, nil
}

func (s *memStore) Save(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = raw
	return nil
}

func (s *memStore) Remove(_ context.Context, key string) error {
	delete(s.data, key)
	return nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := zap.NewNop()
	store := newMemStore()
	ctx := context.Background()

	cfg := config.AuthConfig{
		JWTSecret:         "test-secret",
		TokenTTLHours:     24,
		BcryptCost:        4,
		DemoUserPassword:  "password123",
		DemoAdminPassword: "admin123",
	}

	seedUsers, err := seed.Users(cfg)
	if err != nil {
		t.Fatalf("seed users: %v", err)
	}
	userRepo := repository.NewUserRepository(store, seedUsers, logger)
	if err := userRepo.Load(ctx); err != nil {
		t.Fatalf("load users: %v", err)
	}
	projectRepo := repository.NewProjectRepository(store, seed.Projects(), logger)
	if err := projectRepo.Load(ctx); err != nil {
		t.Fatalf("load projects: %v", err)
	}
	sessionRepo := repository.NewSessionRepository(store, logger)
	clk := clock.NewFake(time.Now().UTC())
	if err := sessionRepo.Load(ctx, clk.Now()); err != nil {
		t.Fatalf("load sessions: %v", err)
	}

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		Clock:       clk,
	})
	projectService := service.NewProjectService(service.ProjectDependencies{
		ProjectRepo: projectRepo,
		Clock:       clk,
	})
	userService := service.NewUserService(service.UserDependencies{
		UserRepo:   userRepo,
		Clock:      clk,
		BcryptCost: cfg.BcryptCost,
	})
	preferenceService := service.NewPreferenceService(store, logger)
	statsService := service.NewStatsService(projectRepo, userRepo)

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 5*time.Second)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("projectflow", "test", store),
		Auth:           handlers.NewAuthHandler(authService),
		Projects:       handlers.NewProjectsHandler(projectService),
		Users:          handlers.NewUsersHandler(userService),
		Preferences:    handlers.NewPreferencesHandler(preferenceService),
		Stats:          handlers.NewStatsHandler(statsService),
		AuthMiddleware: auth.NewAuthMiddleware(authService),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*nethttp.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	var parsed map[string]any
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			t.Fatalf("%s %s: unmarshal response %q: %v", method, path, raw, err)
		}
	}
	return resp, parsed
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp, body := doJSON(t, app, nethttp.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("login %s: status %d, body %v", email, resp.StatusCode, body)
	}
	data := body["data"].(map[string]any)
	token := data["auth"].(map[string]any)["token"].(string)
	if token == "" {
		t.Fatal("expected a token")
	}
	return token
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error envelope, got %v", body)
	}
	code, _ := errObj["code"].(string)
	return code
}

func TestHTTP_LoginAndMe(t *testing.T) {
	app := newTestApp(t)

	token := login(t, app, seed.DemoUserEmail, "password123")

	resp, body := doJSON(t, app, nethttp.MethodGet, "/auth/me", token, nil)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("me: status %d", resp.StatusCode)
	}
	user := body["data"].(map[string]any)
	if user["email"] != seed.DemoUserEmail {
		t.Fatalf("unexpected principal: %v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatal("password hash must never leave the API")
	}
}

func TestHTTP_LoginRejectsBadPassword(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, nethttp.MethodPost, "/auth/login", "", map[string]string{
		"email":    seed.DemoUserEmail,
		"password": "wrong",
	})
	if resp.StatusCode != nethttp.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if code := errorCode(t, body); code != "INVALID_CREDENTIALS" {
		t.Fatalf("expected INVALID_CREDENTIALS, got %s", code)
	}
}

func TestHTTP_ProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/projects", "/users", "/stats/dashboard", "/preferences/ui"} {
		resp, body := doJSON(t, app, nethttp.MethodGet, path, "", nil)
		if resp.StatusCode != nethttp.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, resp.StatusCode)
		}
		if code := errorCode(t, body); code != "UNAUTHENTICATED" {
			t.Fatalf("%s: expected UNAUTHENTICATED, got %s", path, code)
		}
	}
}

func TestHTTP_LogoutInvalidatesToken(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, seed.DemoUserEmail, "password123")

	resp, _ := doJSON(t, app, nethttp.MethodPost, "/auth/logout", token, nil)
	if resp.StatusCode != nethttp.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", resp.StatusCode)
	}

	resp, body := doJSON(t, app, nethttp.MethodGet, "/auth/me", token, nil)
	if resp.StatusCode != nethttp.StatusUnauthorized {
		t.Fatalf("me after logout: expected 401, got %d", resp.StatusCode)
	}
	if code := errorCode(t, body); code != "UNAUTHENTICATED" {
		t.Fatalf("expected UNAUTHENTICATED, got %s", code)
	}
}

func TestHTTP_CreateProject(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, seed.DemoUserEmail, "password123")

	resp, body := doJSON(t, app, nethttp.MethodPost, "/projects", token, map[string]any{
		"title":      "Launch Checklist",
		"status":     "planning",
		"priority":   "high",
		"start_date": "2024-06-01T00:00:00Z",
	})
	if resp.StatusCode != nethttp.StatusCreated {
		t.Fatalf("create: status %d, body %v", resp.StatusCode, body)
	}
	project := body["data"].(map[string]any)
	if project["owner_id"] != "1" {
		t.Fatalf("expected the caller as owner, got %v", project["owner_id"])
	}
	if project["progress"] != float64(0) {
		t.Fatalf("planning project must start at 0, got %v", project["progress"])
	}
}

func TestHTTP_CreateProjectValidatesStatus(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, seed.DemoUserEmail, "password123")

	resp, body := doJSON(t, app, nethttp.MethodPost, "/projects", token, map[string]any{
		"title":      "Bad",
		"status":     "done-ish",
		"priority":   "high",
		"start_date": "2024-06-01T00:00:00Z",
	})
	if resp.StatusCode != nethttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if code := errorCode(t, body); code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %s", code)
	}
}

func TestHTTP_ProjectListScopedByRole(t *testing.T) {
	app := newTestApp(t)

	userToken := login(t, app, seed.DemoUserEmail, "password123")
	_, body := doJSON(t, app, nethttp.MethodGet, "/projects", userToken, nil)
	owned := body["data"].([]any)

	adminToken := login(t, app, seed.DemoAdminEmail, "admin123")
	_, body = doJSON(t, app, nethttp.MethodGet, "/projects", adminToken, nil)
	all := body["data"].([]any)

	if len(owned) >= len(all) {
		t.Fatalf("user scope (%d) must be narrower than admin scope (%d)", len(owned), len(all))
	}
}

func TestHTTP_UserListIsAdminOnly(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, seed.DemoUserEmail, "password123")

	resp, body := doJSON(t, app, nethttp.MethodGet, "/users", token, nil)
	if resp.StatusCode != nethttp.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if code := errorCode(t, body); code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %s", code)
	}
}

func TestHTTP_AdminCannotDeleteOwnAccount(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, seed.DemoAdminEmail, "admin123")

	resp, body := doJSON(t, app, nethttp.MethodDelete, "/users/2", token, nil)
	if resp.StatusCode != nethttp.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if code := errorCode(t, body); code != "SELF_DELETE_FORBIDDEN" {
		t.Fatalf("expected SELF_DELETE_FORBIDDEN, got %s", code)
	}
}

func TestHTTP_DashboardStats(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, seed.DemoAdminEmail, "admin123")

	resp, body := doJSON(t, app, nethttp.MethodGet, "/stats/dashboard", token, nil)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("stats: status %d", resp.StatusCode)
	}
	stats := body["data"].(map[string]any)
	if stats["total_projects"] != float64(5) {
		t.Fatalf("expected 5 total projects, got %v", stats["total_projects"])
	}
	if stats["total_users"] != float64(3) {
		t.Fatalf("expected admin to see 3 users, got %v", stats["total_users"])
	}
}

func TestHTTP_PreferencesRoundTrip(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, seed.DemoUserEmail, "password123")

	resp, body := doJSON(t, app, nethttp.MethodGet, "/preferences/ui", token, nil)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("get ui: status %d", resp.StatusCode)
	}
	if theme := body["data"].(map[string]any)["theme"]; theme != "light" {
		t.Fatalf("expected default theme, got %v", theme)
	}

	resp, _ = doJSON(t, app, nethttp.MethodPut, "/preferences/ui", token, map[string]string{
		"theme":       "dark",
		"language":    "en",
		"timezone":    "UTC",
		"date_format": "MM/DD/YYYY",
		"currency":    "USD",
	})
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("put ui: status %d", resp.StatusCode)
	}

	_, body = doJSON(t, app, nethttp.MethodGet, "/preferences/ui", token, nil)
	if theme := body["data"].(map[string]any)["theme"]; theme != "dark" {
		t.Fatalf("expected saved theme back, got %v", theme)
	}
}

func TestHTTP_HealthLive(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, nethttp.MethodGet, "/health/live", "", nil)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["status"] != "alive" {
		t.Fatalf("unexpected body: %v", body)
	}
}
