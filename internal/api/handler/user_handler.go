package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinema-app/shop-api/internal/core/domain"
	"github.com/cinema-app/shop-api/internal/core/ports"
)

// UserHandler handles account reads and self-service mutations. Ownership of
// the :id parameter is enforced by the Owner middleware on mutating routes.
type UserHandler struct {
	accounts ports.AccountService
}

func NewUserHandler(accounts ports.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

type updateUserRequest struct {
	Email              string `json:"email"                validate:"omitempty,email"`
	Password           string `json:"password"             validate:"required"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
	IsStaff  bool   `json:"is_staff"`
	IsAdmin  bool   `json:"is_admin"`
}

func toUserResponse(a *domain.Account) userResponse {
	return userResponse{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		IsActive: a.IsActive,
		IsStaff:  a.IsStaff,
		IsAdmin:  a.IsSuperuser,
	}
}

// Get handles GET /users/:id.
//
// @Summary      Get an account
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	account, err := h.accounts.GetAccount(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(account))
}

// Update handles PUT and PATCH /users/:id. The current password is required
// on every update, password change or not.
//
// @Summary      Update own account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Account id"
// @Param        body  body      updateUserRequest  true  "Profile changes"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	if _, err := ctxAccount(c); err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	account, err := h.accounts.UpdateAccount(c.Request().Context(), ports.UpdateAccountInput{
		AccountID:          c.Param("id"),
		Email:              req.Email,
		Password:           req.Password,
		NewPassword:        req.NewPassword,
		NewPasswordConfirm: req.NewPasswordConfirm,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(account))
}

// Delete handles DELETE /users/:id. Deletion is physical and cascades to the
// account's tokens; accounts with orders are protected.
//
// @Summary      Delete own account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Account id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if _, err := ctxAccount(c); err != nil {
		return err
	}
	if err := h.accounts.DeleteAccount(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
