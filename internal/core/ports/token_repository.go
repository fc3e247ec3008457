package ports

import (
	"context"

	"github.com/cinema-app/shop-api/internal/core/domain"
)

// RegistrationTokenRepository persists single-use activation tokens.
type RegistrationTokenRepository interface {
	Create(ctx context.Context, token *domain.RegistrationToken) error
	FindByValue(ctx context.Context, value string) (*domain.RegistrationToken, error)
	// Delete consumes the token. It returns domain.ErrTokenNotFound when no
	// row was removed, which is how a concurrent second redemption loses.
	Delete(ctx context.Context, value string) error
	DeleteByAccount(ctx context.Context, accountID string) error
}

// SessionTokenRepository persists bearer session tokens. The store must hold
// a unique constraint on the account reference so GetOrCreate cannot mint
// two tokens for one account under concurrent logins.
type SessionTokenRepository interface {
	// GetOrCreate returns the account's existing token, or atomically
	// inserts one with the candidate key and returns it.
	GetOrCreate(ctx context.Context, accountID, candidateKey string) (*domain.SessionToken, error)
	FindByKey(ctx context.Context, key string) (*domain.SessionToken, error)
	DeleteByAccount(ctx context.Context, accountID string) error
}
