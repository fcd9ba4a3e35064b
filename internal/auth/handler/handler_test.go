package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"filmoteka_backend/internal/auth/adapter"
	"filmoteka_backend/internal/auth/repository"
	"filmoteka_backend/internal/auth/service"
	"filmoteka_backend/platform/httpkit"
	"filmoteka_backend/platform/logger"
	"filmoteka_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type fakeStore struct {
	byEmail    map[string]repository.User
	byUsername map[string]repository.User
	nextID     int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byEmail:    make(map[string]repository.User),
		byUsername: make(map[string]repository.User),
		nextID:     1,
	}
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (repository.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) GetUserByUsername(_ context.Context, username string) (repository.User, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) CreateUser(_ context.Context, username, email, passwordHash string) (repository.User, error) {
	user := repository.User{ID: f.nextID, Username: username, Email: email, PasswordHash: passwordHash}
	f.nextID++
	f.byEmail[email] = user
	f.byUsername[username] = user
	return user, nil
}

type authConfig struct{}

func (authConfig) GetJWTSecret() string             { return "secret" }
func (authConfig) GetJWTAlgorithm() string          { return "HS256" }
func (authConfig) GetAccessTokenTTL() time.Duration { return 15 * time.Minute }
func (authConfig) GetBcryptCost() int               { return bcrypt.MinCost }

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := newFakeStore()
	cfg := authConfig{}
	svc := service.New(store, cfg, logger.New("test"))
	h := New(svc, validator.New())

	engine := gin.New()
	engine.POST("/register", h.Register)
	engine.POST("/login", h.Login)

	protected := engine.Group("")
	protected.Use(httpkit.AuthRequired(cfg, adapter.NewUserResolverAdapter(store)))
	protected.GET("/profile", h.Profile)

	return engine
}

func do(engine *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRegisterReturnsPublicView(t *testing.T) {
	engine := newEngine()

	rec := do(engine, http.MethodPost, "/register", `{"username":"ann","email":"ann@x.com","password":"pw"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var view map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if view["id"] != float64(1) || view["username"] != "ann" || view["email"] != "ann@x.com" {
		t.Fatalf("unexpected view %v", view)
	}
	if _, leaked := view["password"]; leaked {
		t.Fatal("password must never be serialized")
	}
	if body := rec.Body.String(); strings.Contains(body, "hash") {
		t.Fatalf("hash must never be serialized: %s", body)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	engine := newEngine()

	if rec := do(engine, http.MethodPost, "/register", `{"username":"ann","email":"ann@x.com","password":"pw"}`, ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec := do(engine, http.MethodPost, "/register", `{"username":"bob","email":"ann@x.com","password":"pw"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a duplicate email, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Email is already registered") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	rec = do(engine, http.MethodPost, "/register", `{"username":"ann","email":"bob@x.com","password":"pw"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a duplicate username, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Username is already registered") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestRegisterValidation(t *testing.T) {
	engine := newEngine()

	rec := do(engine, http.MethodPost, "/register", `{"username":"ann","email":"not-an-email","password":"pw"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an invalid email, got %d", rec.Code)
	}

	rec = do(engine, http.MethodPost, "/register", `{`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", rec.Code)
	}
}

func TestLoginAndProfileRoundTrip(t *testing.T) {
	engine := newEngine()

	if rec := do(engine, http.MethodPost, "/register", `{"username":"ann","email":"ann@x.com","password":"pw"}`, ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec := do(engine, http.MethodPost, "/login", `{"email":"ann@x.com","password":"pw"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &tokenResp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if tokenResp.TokenType != "bearer" {
		t.Fatalf("expected token_type bearer, got %q", tokenResp.TokenType)
	}
	if tokenResp.AccessToken == "" {
		t.Fatal("expected a non-empty access token")
	}

	rec = do(engine, http.MethodGet, "/profile", "", tokenResp.AccessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"ann@x.com"`) {
		t.Fatalf("expected the caller's view, got %s", rec.Body.String())
	}
}

func TestLoginBadCredentials(t *testing.T) {
	engine := newEngine()

	if rec := do(engine, http.MethodPost, "/register", `{"username":"ann","email":"ann@x.com","password":"pw"}`, ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	wrongPassword := do(engine, http.MethodPost, "/login", `{"email":"ann@x.com","password":"nope"}`, "")
	unknownEmail := do(engine, http.MethodPost, "/login", `{"email":"ghost@x.com","password":"pw"}`, "")

	if wrongPassword.Code != http.StatusBadRequest || unknownEmail.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for both, got %d and %d", wrongPassword.Code, unknownEmail.Code)
	}
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Fatalf("expected identical bodies, got %s vs %s", wrongPassword.Body.String(), unknownEmail.Body.String())
	}
	if !strings.Contains(wrongPassword.Body.String(), "Incorrect email or password") {
		t.Fatalf("unexpected body %s", wrongPassword.Body.String())
	}
}

func TestProfileWithoutToken(t *testing.T) {
	engine := newEngine()

	rec := do(engine, http.MethodGet, "/profile", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
