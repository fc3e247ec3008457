package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinema-app/shop-api/internal/api/metrics"
	"github.com/cinema-app/shop-api/internal/core/domain"
	"github.com/cinema-app/shop-api/internal/core/ports"
)

// AuthHandler handles registration, activation, and both login flows.
type AuthHandler struct {
	accounts ports.AccountService
	sessions ports.SessionService
}

func NewAuthHandler(accounts ports.AccountService, sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions}
}

type registerRequest struct {
	Username        string `json:"username"         validate:"required"`
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

// registerResponse never echoes the password fields back.
type registerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type activateRequest struct {
	Token string `json:"token" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

// sessionResponse is the shared payload of activation and both logins.
type sessionResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	IsStaff  bool   `json:"is_staff"`
}

func toSessionResponse(s *ports.Session) sessionResponse {
	return sessionResponse{
		Token:    s.Token,
		UserID:   s.AccountID,
		Username: s.Username,
		IsAdmin:  s.IsAdmin,
		IsStaff:  s.IsStaff,
	}
}

// Register creates a new, inactive account and mails out its activation link.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	account, err := h.accounts.Register(c.Request().Context(), ports.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registerFailureReason(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		ID:       account.ID,
		Username: account.Username,
		Email:    account.Email,
	})
}

func registerFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrPasswordMismatch):
		return "password_mismatch"
	case errors.Is(err, domain.ErrAccountExists):
		return "duplicate"
	default:
		return "invalid"
	}
}

// Activate redeems a registration token and logs the fresh account in.
//
// @Summary      Activate a registered account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      activateRequest  true  "Registration token"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Router       /register/activate [post]
func (h *AuthHandler) Activate(c echo.Context) error {
	var req activateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	account, err := h.accounts.Activate(c.Request().Context(), req.Token)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired):
			metrics.ActivationsTotal.WithLabelValues("expired").Inc()
		case errors.Is(err, domain.ErrTokenNotFound):
			metrics.ActivationsTotal.WithLabelValues("not_found").Inc()
		}
		return err
	}

	// Activation auto-logs-in: mint the session token right away.
	session, err := h.sessions.IssueForAccount(c.Request().Context(), account)
	if err != nil {
		return err
	}

	metrics.ActivationsTotal.WithLabelValues("activated").Inc()
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// Login exchanges username and password for the account's session token.
//
// @Summary      Login with credentials
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	session, err := h.sessions.IssueByPassword(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("password", "rejected").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("password", "ok").Inc()
	return c.JSON(http.StatusOK, toSessionResponse(session))
}

// TokenLogin validates an existing session token and echoes the account
// metadata, for session resumption.
//
// @Summary      Login with an existing session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      tokenLoginRequest  true  "Session token"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Router       /login/token [post]
func (h *AuthHandler) TokenLogin(c echo.Context) error {
	var req tokenLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	session, err := h.sessions.IssueByToken(c.Request().Context(), req.Token)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("token", "rejected").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("token", "ok").Inc()
	return c.JSON(http.StatusOK, toSessionResponse(session))
}
