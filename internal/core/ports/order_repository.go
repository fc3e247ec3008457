package ports

import (
	"context"

	"github.com/cinema-app/shop-api/internal/core/domain"
)

// OrderRepository defines persistence for orders.
// List returns orders ordered by creation time, newest first.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string, filter DeletedFilter) (*domain.Order, error)
	List(ctx context.Context, filter DeletedFilter) ([]*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	// SoftDelete follows the same contract as ProductRepository.SoftDelete:
	// only live rows qualify, a repeat delete returns not-found.
	SoftDelete(ctx context.Context, id string) error
	// CountByAccount counts all orders referencing the account, soft-deleted
	// ones included: any reference blocks account deletion.
	CountByAccount(ctx context.Context, accountID string) (int64, error)
}
