package ports

import (
	"context"

	"github.com/cinema-app/shop-api/internal/core/domain"
)

// RegisterInput carries the sign-up form fields.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

// UpdateAccountInput carries a self-service profile update. Password is the
// caller's current password and is required for any change; the new password
// pair is optional.
type UpdateAccountInput struct {
	AccountID          string
	Email              string
	Password           string
	NewPassword        string
	NewPasswordConfirm string
}

// AccountService owns the account lifecycle: inactive creation with a mailed
// activation token, single-use activation, profile updates, and deletion.
type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	Activate(ctx context.Context, tokenValue string) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, input UpdateAccountInput) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id string) error
}
