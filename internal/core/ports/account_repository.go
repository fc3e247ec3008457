package ports

import (
	"context"

	"github.com/cinema-app/shop-api/internal/core/domain"
)

// AccountRepository defines persistence for accounts. The store must hold
// unique constraints on username and email; Create surfaces a violation as
// domain.ErrAccountExists.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	// Delete removes the account row physically. Token cleanup is the
	// service's responsibility, order protection too.
	Delete(ctx context.Context, id string) error
}
