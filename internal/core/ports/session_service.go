package ports

import (
	"context"

	"github.com/cinema-app/shop-api/internal/core/domain"
)

// Session is the login response payload: the bearer key plus the account
// metadata clients render without a second round trip.
type Session struct {
	Token     string
	AccountID string
	Username  string
	IsAdmin   bool
	IsStaff   bool
}

// SessionService exchanges credentials for the account's session token.
// The token is get-or-create: repeated logins return the same key.
type SessionService interface {
	IssueByPassword(ctx context.Context, username, password string) (*Session, error)
	IssueByToken(ctx context.Context, key string) (*Session, error)
	// IssueForAccount mints (or fetches) the token for an already
	// authenticated account, used by activation auto-login.
	IssueForAccount(ctx context.Context, account *domain.Account) (*Session, error)
	// Resolve maps a bearer key to its account, for request authentication.
	Resolve(ctx context.Context, key string) (*domain.Account, error)
}
