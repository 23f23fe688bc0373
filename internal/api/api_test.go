package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JNHNG0205/ai-content-workflow/internal/api"
	"github.com/JNHNG0205/ai-content-workflow/internal/config"
	"github.com/JNHNG0205/ai-content-workflow/internal/mocks"
	"github.com/JNHNG0205/ai-content-workflow/internal/models"
	"github.com/JNHNG0205/ai-content-workflow/internal/repository"
	"github.com/JNHNG0205/ai-content-workflow/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	gen    *mocks.MockTextGenerator
	t      *testing.T
}

func setupTestRouter(t *testing.T, mutate func(cfg *config.Config), checks ...api.HealthCheck) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zerolog.Nop()
	sessions := mocks.NewMockSessionRepository()
	gen := mocks.NewMockTextGenerator()

	services := &service.Services{
		Workflow: service.NewWorkflowService(repository.NewMemoryContentRepo(), log),
		Auth:     service.NewAuthService(mocks.NewMockUserRepository(), sessions, mocks.NewMockSessionStore(), time.Hour, log),
		AI:       service.NewAIService(gen, log),
		Session:  service.NewSessionService(sessions, time.Minute, log),
	}

	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "4000", AllowedOrigin: "*"},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}
	if mutate != nil {
		mutate(cfg)
	}

	return &testServer{router: api.NewRouter(services, cfg, log, checks...), gen: gen, t: t}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("X-Session-Id", token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// login registers an account with the given role and returns its session token
func (s *testServer) login(email string, role models.Role) string {
	s.t.Helper()
	w := s.do("POST", "/api/auth/register", "", gin.H{"email": email, "password": "password123", "role": role})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do("POST", "/api/auth/login", "", gin.H{"email": email, "password": "password123"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var resp models.LoginResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(s.t, resp.SessionID)
	return resp.SessionID
}

func decodeContent(t *testing.T, w *httptest.ResponseRecorder) models.Content {
	t.Helper()
	var c models.Content
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c), w.Body.String())
	return c
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	code, _ := body["code"].(string)
	return code
}

func TestHealthEndpoint(t *testing.T) {
	s := setupTestRouter(t, nil, api.HealthCheck{Name: "database", Check: func(ctx context.Context) error { return nil }})

	w := s.do("GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "content-workflow-api", response["service"])
}

func TestHealthEndpoint_Degraded(t *testing.T) {
	s := setupTestRouter(t, nil, api.HealthCheck{Name: "redis", Check: func(ctx context.Context) error { return errors.New("connection refused") }})

	w := s.do("GET", "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestMetricsEndpoint(t *testing.T) {
	s := setupTestRouter(t, nil)
	w := s.do("GET", "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthFlow(t *testing.T) {
	s := setupTestRouter(t, nil)
	token := s.login("writer@example.com", models.RoleWriter)

	w := s.do("GET", "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"writer@example.com"`)
	assert.NotContains(t, w.Body.String(), "argon2id")

	w = s.do("POST", "/api/auth/register", "", gin.H{"email": "WRITER@example.com", "password": "password123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already in use")

	w = s.do("POST", "/api/auth/login", "", gin.H{"email": "writer@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do("POST", "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do("GET", "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthenticated", errorCode(t, w))
}

func TestBearerToken(t *testing.T) {
	s := setupTestRouter(t, nil)
	token := s.login("bearer@example.com", models.RoleWriter)

	req := httptest.NewRequest("GET", "/api/content/drafts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnauthenticated(t *testing.T) {
	s := setupTestRouter(t, nil)

	for _, path := range []string{"/api/content/drafts", "/api/review/pending", "/api/auth/me"} {
		w := s.do("GET", path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	w := s.do("GET", "/api/content/drafts", "not-a-session", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWorkflowOverHTTP(t *testing.T) {
	s := setupTestRouter(t, nil)
	author := s.login("author@example.com", models.RoleWriter)
	rev := s.login("rev@example.com", models.RoleReviewer)
	other := s.login("other@example.com", models.RoleReviewer)

	// create
	w := s.do("POST", "/api/content", author, gin.H{"title": "T", "body": "B"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	c := decodeContent(t, w)
	assert.Equal(t, models.StatusDraft, c.Status)

	// edit
	w = s.do("PUT", "/api/content/"+c.ID, author, gin.H{"title": "T1", "body": "B1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "T1", decodeContent(t, w).Title)

	// reviewers cannot author
	w = s.do("POST", "/api/content", rev, gin.H{"title": "T", "body": "B"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", errorCode(t, w))

	// submit
	w = s.do("POST", "/api/content/"+c.ID+"/submit", author, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do("GET", "/api/content/submitted", author, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []models.Content
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	require.Len(t, mine, 1)

	w = s.do("GET", "/api/review/pending", rev, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), c.ID)

	// editing after submit conflicts
	w = s.do("PUT", "/api/content/"+c.ID, author, gin.H{"title": "T2", "body": "B2"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "precondition_failed", errorCode(t, w))

	// claim: first wins
	w = s.do("POST", "/api/review/"+c.ID+"/assign", rev, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do("POST", "/api/review/"+c.ID+"/assign", other, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// reject with comment
	w = s.do("POST", "/api/review/"+c.ID+"/reject", rev, gin.H{"comment": "too short"})
	require.Equal(t, http.StatusOK, w.Code)
	rejected := decodeContent(t, w)
	assert.Equal(t, models.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionComment)
	assert.Equal(t, "too short", *rejected.RejectionComment)

	w = s.do("GET", "/api/review/reviewed", rev, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), c.ID)

	// revise
	w = s.do("PUT", "/api/content/"+c.ID+"/revert", author, nil)
	require.Equal(t, http.StatusOK, w.Code)
	revised := decodeContent(t, w)
	assert.Equal(t, models.StatusDraft, revised.Status)
	assert.Nil(t, revised.RejectionComment)
	assert.Equal(t, "T1", revised.Title)

	// read own content, hidden from others
	w = s.do("GET", "/api/content/"+c.ID, author, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do("GET", "/api/content/"+c.ID, s.login("w2@example.com", models.RoleWriter), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// resubmit, claim, approve; nothing moves after approval
	require.Equal(t, http.StatusOK, s.do("POST", "/api/content/"+c.ID+"/submit", author, nil).Code)
	require.Equal(t, http.StatusOK, s.do("POST", "/api/review/"+c.ID+"/assign", other, nil).Code)
	w = s.do("POST", "/api/review/"+c.ID+"/approve", other, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusApproved, decodeContent(t, w).Status)

	w = s.do("POST", "/api/review/"+c.ID+"/reject", other, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do("GET", "/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"APPROVED":1`)
}

func TestValidationErrors(t *testing.T) {
	s := setupTestRouter(t, nil)
	author := s.login("v@example.com", models.RoleWriter)

	w := s.do("POST", "/api/content", author, gin.H{"title": "", "body": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_failed", errorCode(t, w))
	assert.Contains(t, w.Body.String(), `"field":"title"`)

	req := httptest.NewRequest("POST", "/api/content", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", author)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAIEndpoints(t *testing.T) {
	s := setupTestRouter(t, nil)
	author := s.login("ai@example.com", models.RoleWriter)

	w := s.do("POST", "/api/ai/generate", author, gin.H{"prompt": "spring sale"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"content":"Generated: spring sale"}`, w.Body.String())

	w = s.do("POST", "/api/ai/refine", author, gin.H{"content": "old", "instruction": "shorter"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"content":"Refined: old"}`, w.Body.String())

	w = s.do("POST", "/api/ai/generate", author, gin.H{"prompt": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.gen.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("provider timeout")
	}
	w = s.do("POST", "/api/ai/generate", author, gin.H{"prompt": "x"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "upstream_unavailable", errorCode(t, w))

	reviewerToken := s.login("airev@example.com", models.RoleReviewer)
	w = s.do("POST", "/api/ai/refine", reviewerToken, gin.H{"content": "old"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAIRateLimit(t *testing.T) {
	s := setupTestRouter(t, func(cfg *config.Config) {
		cfg.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 2}
	})
	author := s.login("limited@example.com", models.RoleWriter)

	for i := 0; i < 2; i++ {
		w := s.do("POST", "/api/ai/generate", author, gin.H{"prompt": "x"})
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := s.do("POST", "/api/ai/generate", author, gin.H{"prompt": "x"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	// buckets are per user
	other := s.login("unlimited@example.com", models.RoleWriter)
	w = s.do("POST", "/api/ai/generate", other, gin.H{"prompt": "x"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := setupTestRouter(t, nil)
	req := httptest.NewRequest("OPTIONS", "/api/content", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Session-Id")
}

func TestRejectWithoutBody(t *testing.T) {
	s := setupTestRouter(t, nil)
	author := s.login("nobody-author@example.com", models.RoleWriter)
	rev := s.login("nobody-rev@example.com", models.RoleReviewer)

	claimed := func() string {
		w := s.do("POST", "/api/content", author, gin.H{"title": "T", "body": "B"})
		require.Equal(t, http.StatusCreated, w.Code)
		id := decodeContent(t, w).ID
		require.Equal(t, http.StatusOK, s.do("POST", "/api/content/"+id+"/submit", author, nil).Code)
		require.Equal(t, http.StatusOK, s.do("POST", "/api/review/"+id+"/assign", rev, nil).Code)
		return id
	}

	tests := []struct {
		name          string
		body          string
		contentLength int64
		wantStatus    int
	}{
		{name: "empty body with zero length", body: "", contentLength: 0, wantStatus: http.StatusOK},
		{name: "empty body with unknown length", body: "", contentLength: -1, wantStatus: http.StatusOK},
		{name: "empty object", body: "{}", contentLength: 2, wantStatus: http.StatusOK},
		{name: "malformed body", body: "{oops", contentLength: -1, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := claimed()
			req := httptest.NewRequest("POST", "/api/review/"+id+"/reject", strings.NewReader(tt.body))
			req.ContentLength = tt.contentLength
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Session-Id", rev)
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusOK {
				c := decodeContent(t, w)
				assert.Equal(t, models.StatusRejected, c.Status)
				assert.Nil(t, c.RejectionComment)
			}
		})
	}
}
