package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/forgo/voyage/api/internal/model"
	"github.com/forgo/voyage/api/internal/service"
)

// ===== Mocks =====

type fakeUserRepo struct {
	mu         sync.Mutex
	users      map[string]*model.User
	emailIndex map[string]string
	nextID     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:      make(map[string]*model.User),
		emailIndex: make(map[string]string),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == "" {
		f.nextID++
		user.ID = fmt.Sprintf("user:%03d", f.nextID)
	}
	clone := *user
	f.users[user.ID] = &clone
	f.emailIndex[user.Email] = user.ID
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.emailIndex[email]
	if !ok {
		return nil, nil
	}
	clone := *f.users[id]
	return &clone, nil
}

type fakeSigner struct{}

func (fakeSigner) Sign(userID, email string, name *string) (string, error) {
	return "signed-" + userID, nil
}

type fakeNotifier struct{}

func (fakeNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	return nil
}

func newAuthHandler() (*AuthHandler, *fakeUserRepo) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(service.AuthServiceConfig{
		UserRepo: repo,
		Signer:   fakeSigner{},
		Notifier: fakeNotifier{},
	})
	return NewAuthHandler(svc), repo
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

// ===== Register =====

func TestAuthHandler_Register_Success(t *testing.T) {
	t.Parallel()

	h, _ := newAuthHandler()
	rr := postJSON(t, h.Register, "/v1/auth/register",
		`{"email":"ada@example.com","password":"supersecret","name":"Ada"}`)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp AuthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token in the response")
	}
	if resp.User.Email != "ada@example.com" {
		t.Errorf("user email = %q", resp.User.Email)
	}
	if resp.User.Name == nil || *resp.User.Name != "Ada" {
		t.Errorf("user name = %v", resp.User.Name)
	}
	if strings.Contains(rr.Body.String(), "supersecret") {
		t.Error("response must not echo the password")
	}
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	t.Parallel()

	h, _ := newAuthHandler()
	rr := postJSON(t, h.Register, "/v1/auth/register", `{not json`)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestAuthHandler_Register_UnknownField(t *testing.T) {
	t.Parallel()

	h, _ := newAuthHandler()
	rr := postJSON(t, h.Register, "/v1/auth/register",
		`{"email":"a@b.com","password":"supersecret","admin":true}`)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown field, got %d", rr.Code)
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	t.Parallel()

	h, _ := newAuthHandler()
	rr := postJSON(t, h.Register, "/v1/auth/register",
		`{"email":"a@b.com","password":"short"}`)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	h, _ := newAuthHandler()
	body := `{"email":"ada@example.com","password":"supersecret"}`

	if rr := postJSON(t, h.Register, "/v1/auth/register", body); rr.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", rr.Code)
	}
	if rr := postJSON(t, h.Register, "/v1/auth/register", body); rr.Code != http.StatusConflict {
		t.Errorf("second register: expected 409, got %d", rr.Code)
	}
}

// ===== Login =====

func TestAuthHandler_Login_Success(t *testing.T) {
	t.Parallel()

	h, _ := newAuthHandler()
	postJSON(t, h.Register, "/v1/auth/register",
		`{"email":"ada@example.com","password":"supersecret"}`)

	rr := postJSON(t, h.Login, "/v1/auth/login",
		`{"email":"ada@example.com","password":"supersecret"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp AuthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token in the response")
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	h, _ := newAuthHandler()
	postJSON(t, h.Register, "/v1/auth/register",
		`{"email":"ada@example.com","password":"supersecret"}`)

	rr := postJSON(t, h.Login, "/v1/auth/login",
		`{"email":"ada@example.com","password":"wrongwrong"}`)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	t.Parallel()

	h, _ := newAuthHandler()
	rr := postJSON(t, h.Login, "/v1/auth/login",
		`{"email":"ghost@example.com","password":"supersecret"}`)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}
