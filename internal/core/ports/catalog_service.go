package ports

import (
	"context"
	"time"

	"github.com/cinema-app/shop-api/internal/core/domain"
)

// ProductInput carries all data needed to create or replace a product.
type ProductInput struct {
	Name        string
	Description string
	ReceiptDate time.Time
	Price       float64
	CategoryIDs []string
}

// CategoryRef is the inline category view embedded in product responses.
type CategoryRef struct {
	ID   string
	Name string
}

// PhotoRef is the inline photo view embedded in product responses.
type PhotoRef struct {
	ID  string
	URL string
}

// ProductDetail is the full product view, with categories and photos joined in.
type ProductDetail struct {
	ID          string
	Name        string
	Description string
	ReceiptDate time.Time
	Price       float64
	Categories  []CategoryRef
	Photos      []PhotoRef
	IsDeleted   bool
}

// PhotoInput carries all data needed to create or replace a photo.
type PhotoInput struct {
	ProductID string
	URL       string
}

// CategoryInput carries all data needed to create or replace a category.
type CategoryInput struct {
	Name        string
	Description string
}

// CatalogService defines use-case operations for products, photos, and
// categories. Delete is soft everywhere; list operations accept the
// administrative DeletedFilter.
type CatalogService interface {
	CreateProduct(ctx context.Context, input ProductInput) (*ProductDetail, error)
	GetProduct(ctx context.Context, id string, filter DeletedFilter) (*ProductDetail, error)
	ListProducts(ctx context.Context, filter DeletedFilter) ([]*ProductDetail, error)
	UpdateProduct(ctx context.Context, id string, input ProductInput) (*ProductDetail, error)
	DeleteProduct(ctx context.Context, id string) error

	CreatePhoto(ctx context.Context, input PhotoInput) (*domain.Photo, error)
	GetPhoto(ctx context.Context, id string, filter DeletedFilter) (*domain.Photo, error)
	ListPhotos(ctx context.Context, filter DeletedFilter) ([]*domain.Photo, error)
	UpdatePhoto(ctx context.Context, id string, input PhotoInput) (*domain.Photo, error)
	DeletePhoto(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error)
	GetCategory(ctx context.Context, id string, filter DeletedFilter) (*domain.Category, error)
	ListCategories(ctx context.Context, filter DeletedFilter) ([]*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, input CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}
