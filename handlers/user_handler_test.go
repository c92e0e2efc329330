package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"authbackend/auth"
	"authbackend/models"
	"authbackend/testutil"

	"go.uber.org/zap"
)

const testSecret = "test-secret"

func newTestHandler(repo *testutil.FakeUserRepo) *UserHandler {
	return &UserHandler{
		Repo:   repo,
		Tokens: auth.NewTokenService(testSecret),
		Log:    zap.NewNop(),
	}
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) ApiResponse {
	t.Helper()
	var resp ApiResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := testutil.NewFakeUserRepo()
	h := newTestHandler(repo)

	body := `{"username":"alice","email":"alice@example.com","password":"pl4intext"}`
	req := httptest.NewRequest(http.MethodPost, "/api/authentication/registerUser", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}

	stored := repo.ByEmail["alice@example.com"]
	if stored == nil {
		t.Fatal("user was not persisted")
	}
	if stored.Password == "pl4intext" {
		t.Fatal("password stored in clear text")
	}
	if !auth.PasswordMatches("pl4intext", stored.Password) {
		t.Fatal("stored hash does not match the plaintext")
	}
	if stored.Role != models.RoleUser {
		t.Fatalf("role: got %q, want %q", stored.Role, models.RoleUser)
	}
}

func TestRegister_ResponseExcludesHash(t *testing.T) {
	repo := testutil.NewFakeUserRepo()
	h := newTestHandler(repo)

	body := `{"username":"bob","email":"bob@example.com","password":"hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/authentication/registerUser", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}

	raw := rec.Body.String()
	if strings.Contains(raw, "password") || strings.Contains(raw, repo.ByEmail["bob@example.com"].Password) {
		t.Fatalf("register response leaks the password hash: %s", raw)
	}
	if !strings.Contains(raw, "bob@example.com") {
		t.Fatalf("register response missing the created record: %s", raw)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	h := newTestHandler(testutil.NewFakeUserRepo())

	for _, body := range []string{
		`{}`,
		`{"username":"x"}`,
		`{"username":"x","email":"x@example.com"}`,
		`{"email":"x@example.com","password":"pw"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/authentication/registerUser", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Register(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: got %d, want 400", body, rec.Code)
		}
	}
}

func TestRegister_StoreFailure(t *testing.T) {
	repo := testutil.NewFakeUserRepo()
	repo.Err = errors.New("duplicate key")
	h := newTestHandler(repo)

	body := `{"username":"alice","email":"alice@example.com","password":"pw"}`
	req := httptest.NewRequest(http.MethodPost, "/api/authentication/registerUser", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want 503", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "duplicate key") {
		t.Fatalf("store error detail leaked: %s", rec.Body.String())
	}
}

func TestRegister_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(testutil.NewFakeUserRepo())
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodGet, "/api/authentication/registerUser", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: got %d, want 405", rec.Code)
	}
}

func TestLogin_Success(t *testing.T) {
	repo := testutil.NewFakeUserRepo()
	user := testutil.SeedUser(t, repo, "alice@example.com", "pl4intext", models.RoleUser)
	h := newTestHandler(repo)

	body := `{"email":"alice@example.com","password":"pl4intext"}`
	req := httptest.NewRequest(http.MethodPost, "/api/authentication/loginUser", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	if resp.Token == "" {
		t.Fatal("no token in login response")
	}

	subject, err := h.Tokens.Verify(resp.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if subject != user.ID {
		t.Fatalf("token subject: got %q, want %q", subject, user.ID)
	}

	if repo.Tokens[user.ID] != resp.Token {
		t.Fatal("issued token was not persisted onto the user record")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := testutil.NewFakeUserRepo()
	testutil.SeedUser(t, repo, "alice@example.com", "right", models.RoleUser)
	h := newTestHandler(repo)

	body := `{"email":"alice@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/authentication/loginUser", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want 403", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Token != "" {
		t.Fatal("token issued for a wrong password")
	}
	if len(repo.Tokens) != 0 {
		t.Fatal("token persisted for a wrong password")
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	h := newTestHandler(testutil.NewFakeUserRepo())

	body := `{"email":"ghost@example.com","password":"pw"}`
	req := httptest.NewRequest(http.MethodPost, "/api/authentication/loginUser", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want 403", rec.Code)
	}
	if got := decodeResponse(t, rec); got.Message != "Cannot find the user" {
		t.Fatalf("message: got %q", got.Message)
	}
}

func TestLogin_StoreFailure(t *testing.T) {
	repo := testutil.NewFakeUserRepo()
	repo.Err = errors.New("connection refused")
	h := newTestHandler(repo)

	body := `{"email":"alice@example.com","password":"pw"}`
	req := httptest.NewRequest(http.MethodPost, "/api/authentication/loginUser", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want 503", rec.Code)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	h := newTestHandler(testutil.NewFakeUserRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/authentication/loginUser", strings.NewReader(`{"email":"a@b.c"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestGetAll_ExcludesHashes(t *testing.T) {
	repo := testutil.NewFakeUserRepo()
	testutil.SeedUser(t, repo, "alice@example.com", "pw1", models.RoleUser)
	admin := testutil.SeedUser(t, repo, "root@example.com", "pw2", models.RoleAdmin)
	h := newTestHandler(repo)

	rec := httptest.NewRecorder()
	h.GetAll(rec, httptest.NewRequest(http.MethodGet, "/api/authentication/getAll", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	raw := rec.Body.String()
	if strings.Contains(raw, admin.Password) || strings.Contains(raw, "password") {
		t.Fatalf("listing leaks password hashes: %s", raw)
	}
	if !strings.Contains(raw, "alice@example.com") || !strings.Contains(raw, "root@example.com") {
		t.Fatalf("listing missing users: %s", raw)
	}
}

func TestGetAll_StoreFailure(t *testing.T) {
	repo := testutil.NewFakeUserRepo()
	repo.Err = errors.New("connection refused")
	h := newTestHandler(repo)

	rec := httptest.NewRecorder()
	h.GetAll(rec, httptest.NewRequest(http.MethodGet, "/api/authentication/getAll", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want 503", rec.Code)
	}
}
