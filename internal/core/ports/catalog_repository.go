package ports

import (
	"context"

	"github.com/cinema-app/shop-api/internal/core/domain"
)

// ProductRepository defines persistence for products.
// List returns products ordered by receipt date, newest first.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string, filter DeletedFilter) (*domain.Product, error)
	List(ctx context.Context, filter DeletedFilter) ([]*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	// SoftDelete flags the row instead of removing it. Only live rows
	// qualify: an unknown or already-flagged id returns the not-found
	// error, so a repeat delete fails rather than succeed silently.
	SoftDelete(ctx context.Context, id string) error
}

// PhotoRepository defines persistence for product photos.
type PhotoRepository interface {
	Create(ctx context.Context, p *domain.Photo) (*domain.Photo, error)
	FindByID(ctx context.Context, id string, filter DeletedFilter) (*domain.Photo, error)
	List(ctx context.Context, filter DeletedFilter) ([]*domain.Photo, error)
	ListByProduct(ctx context.Context, productID string) ([]*domain.Photo, error)
	Update(ctx context.Context, p *domain.Photo) error
	SoftDelete(ctx context.Context, id string) error
}

// CategoryRepository defines persistence for categories.
// List returns categories ordered by name, descending.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string, filter DeletedFilter) (*domain.Category, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Category, error)
	List(ctx context.Context, filter DeletedFilter) ([]*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	SoftDelete(ctx context.Context, id string) error
}
