package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cinema-app/shop-api/internal/core/domain"
	"github.com/cinema-app/shop-api/internal/core/ports"
)

type stubAccountService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.Account, error)
	activateFn func(ctx context.Context, tokenValue string) (*domain.Account, error)
	getFn      func(ctx context.Context, id string) (*domain.Account, error)
	updateFn   func(ctx context.Context, input ports.UpdateAccountInput) (*domain.Account, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (s *stubAccountService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAccountService) Activate(ctx context.Context, tokenValue string) (*domain.Account, error) {
	return s.activateFn(ctx, tokenValue)
}

func (s *stubAccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *stubAccountService) UpdateAccount(ctx context.Context, input ports.UpdateAccountInput) (*domain.Account, error) {
	return s.updateFn(ctx, input)
}

func (s *stubAccountService) DeleteAccount(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubSessionService struct {
	byPasswordFn func(ctx context.Context, username, password string) (*ports.Session, error)
	byTokenFn    func(ctx context.Context, key string) (*ports.Session, error)
	forAccountFn func(ctx context.Context, account *domain.Account) (*ports.Session, error)
	resolveFn    func(ctx context.Context, key string) (*domain.Account, error)
}

func (s *stubSessionService) IssueByPassword(ctx context.Context, username, password string) (*ports.Session, error) {
	return s.byPasswordFn(ctx, username, password)
}

func (s *stubSessionService) IssueByToken(ctx context.Context, key string) (*ports.Session, error) {
	return s.byTokenFn(ctx, key)
}

func (s *stubSessionService) IssueForAccount(ctx context.Context, account *domain.Account) (*ports.Session, error) {
	return s.forAccountFn(ctx, account)
}

func (s *stubSessionService) Resolve(ctx context.Context, key string) (*domain.Account, error) {
	return s.resolveFn(ctx, key)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	accounts := &stubAccountService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
			if input.Username != "alice" || input.Email != "a@example.com" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Account{ID: "acc-1", Username: input.Username, Email: input.Email}, nil
		},
	}
	handler := NewAuthHandler(accounts, &stubSessionService{})

	c, rec := newTestContext(t, http.MethodPost, "/register",
		`{"username":"alice","email":"a@example.com","password":"secret","password_confirm":"secret"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "acc-1" || resp["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["password"]; ok {
		t.Fatal("response must not echo the password")
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	accounts := &stubAccountService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(accounts, &stubSessionService{})

	c, rec := newTestContext(t, http.MethodPost, "/register", `{"username":"alice"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_PasswordMismatch(t *testing.T) {
	accounts := &stubAccountService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
			return nil, domain.ErrPasswordMismatch
		},
	}
	handler := NewAuthHandler(accounts, &stubSessionService{})

	c, _ := newTestContext(t, http.MethodPost, "/register",
		`{"username":"alice","email":"a@example.com","password":"one","password_confirm":"two"}`)

	err := handler.Register(c)
	if !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch to propagate, got %v", err)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	accounts := &stubAccountService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
			return nil, domain.ErrAccountExists
		},
	}
	handler := NewAuthHandler(accounts, &stubSessionService{})

	c, _ := newTestContext(t, http.MethodPost, "/register",
		`{"username":"alice","email":"a@example.com","password":"secret","password_confirm":"secret"}`)

	err := handler.Register(c)
	if !errors.Is(err, domain.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists to propagate, got %v", err)
	}
}

func TestAuthHandler_Activate_Success(t *testing.T) {
	account := &domain.Account{ID: "acc-1", Username: "alice", IsActive: true}
	accounts := &stubAccountService{
		activateFn: func(ctx context.Context, tokenValue string) (*domain.Account, error) {
			if tokenValue != "reg-token-1" {
				t.Fatalf("unexpected token: %q", tokenValue)
			}
			return account, nil
		},
	}
	sessions := &stubSessionService{
		forAccountFn: func(ctx context.Context, a *domain.Account) (*ports.Session, error) {
			return &ports.Session{Token: "sessionkey", AccountID: a.ID, Username: a.Username}, nil
		},
	}
	handler := NewAuthHandler(accounts, sessions)

	c, rec := newTestContext(t, http.MethodPost, "/register/activate", `{"token":"reg-token-1"}`)

	if err := handler.Activate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "sessionkey" || resp["user_id"] != "acc-1" || resp["username"] != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Activate_UsedToken(t *testing.T) {
	accounts := &stubAccountService{
		activateFn: func(ctx context.Context, tokenValue string) (*domain.Account, error) {
			return nil, domain.ErrTokenNotFound
		},
	}
	handler := NewAuthHandler(accounts, &stubSessionService{})

	c, _ := newTestContext(t, http.MethodPost, "/register/activate", `{"token":"used"}`)

	err := handler.Activate(c)
	if !errors.Is(err, domain.ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound to propagate, got %v", err)
	}
}

func TestAuthHandler_Activate_ExpiredToken(t *testing.T) {
	accounts := &stubAccountService{
		activateFn: func(ctx context.Context, tokenValue string) (*domain.Account, error) {
			return nil, domain.ErrTokenExpired
		},
	}
	handler := NewAuthHandler(accounts, &stubSessionService{})

	c, _ := newTestContext(t, http.MethodPost, "/register/activate", `{"token":"stale"}`)

	err := handler.Activate(c)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	sessions := &stubSessionService{
		byPasswordFn: func(ctx context.Context, username, password string) (*ports.Session, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &ports.Session{Token: "sessionkey", AccountID: "acc-1", Username: "alice", IsStaff: true}, nil
		},
	}
	handler := NewAuthHandler(&stubAccountService{}, sessions)

	c, rec := newTestContext(t, http.MethodPost, "/login", `{"username":"alice","password":"secret"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "sessionkey" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	if resp["is_staff"] != true || resp["is_admin"] != false {
		t.Fatalf("unexpected flags: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	sessions := &stubSessionService{
		byPasswordFn: func(ctx context.Context, username, password string) (*ports.Session, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(&stubAccountService{}, sessions)

	c, _ := newTestContext(t, http.MethodPost, "/login", `{"username":"alice","password":"bad"}`)

	err := handler.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	sessions := &stubSessionService{
		byPasswordFn: func(ctx context.Context, username, password string) (*ports.Session, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(&stubAccountService{}, sessions)

	c, rec := newTestContext(t, http.MethodPost, "/login", "{")

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	sessions := &stubSessionService{
		byPasswordFn: func(ctx context.Context, username, password string) (*ports.Session, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(&stubAccountService{}, sessions)

	c, rec := newTestContext(t, http.MethodPost, "/login", `{"username":"alice"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_TokenLogin_Success(t *testing.T) {
	sessions := &stubSessionService{
		byTokenFn: func(ctx context.Context, key string) (*ports.Session, error) {
			if key != "sessionkey" {
				t.Fatalf("unexpected key: %q", key)
			}
			return &ports.Session{Token: key, AccountID: "acc-1", Username: "alice"}, nil
		},
	}
	handler := NewAuthHandler(&stubAccountService{}, sessions)

	c, rec := newTestContext(t, http.MethodPost, "/login/token", `{"token":"sessionkey"}`)

	if err := handler.TokenLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "sessionkey" || resp["user_id"] != "acc-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_TokenLogin_UnknownToken(t *testing.T) {
	sessions := &stubSessionService{
		byTokenFn: func(ctx context.Context, key string) (*ports.Session, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(&stubAccountService{}, sessions)

	c, _ := newTestContext(t, http.MethodPost, "/login/token", `{"token":"deadbeef"}`)

	err := handler.TokenLogin(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_TokenLogin_MissingToken(t *testing.T) {
	sessions := &stubSessionService{
		byTokenFn: func(ctx context.Context, key string) (*ports.Session, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(&stubAccountService{}, sessions)

	c, rec := newTestContext(t, http.MethodPost, "/login/token", `{}`)

	if err := handler.TokenLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
