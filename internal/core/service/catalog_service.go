package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cinema-app/shop-api/internal/core/domain"
	"github.com/cinema-app/shop-api/internal/core/ports"
)

// CatalogService implements product, photo, and category CRUD with soft
// delete. Product views join in their categories and photos.
type CatalogService struct {
	products   ports.ProductRepository
	photos     ports.PhotoRepository
	categories ports.CategoryRepository
	logger     zerolog.Logger
}

func NewCatalogService(
	products ports.ProductRepository,
	photos ports.PhotoRepository,
	categories ports.CategoryRepository,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{products: products, photos: photos, categories: categories, logger: logger}
}

// --- Products ---

func (s *CatalogService) CreateProduct(ctx context.Context, input ports.ProductInput) (*ports.ProductDetail, error) {
	if err := s.checkCategories(ctx, input.CategoryIDs); err != nil {
		return nil, err
	}

	created, err := s.products.Create(ctx, &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		ReceiptDate: input.ReceiptDate,
		Price:       input.Price,
		CategoryIDs: input.CategoryIDs,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return s.productDetail(ctx, created)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string, filter ports.DeletedFilter) (*ports.ProductDetail, error) {
	p, err := s.products.FindByID(ctx, id, filter)
	if err != nil {
		return nil, err
	}
	return s.productDetail(ctx, p)
}

func (s *CatalogService) ListProducts(ctx context.Context, filter ports.DeletedFilter) ([]*ports.ProductDetail, error) {
	items, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*ports.ProductDetail, 0, len(items))
	for _, p := range items {
		d, err := s.productDetail(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input ports.ProductInput) (*ports.ProductDetail, error) {
	p, err := s.products.FindByID(ctx, id, ports.DeletedExclude)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategories(ctx, input.CategoryIDs); err != nil {
		return nil, err
	}

	p.Name = input.Name
	p.Description = input.Description
	p.ReceiptDate = input.ReceiptDate
	p.Price = input.Price
	p.CategoryIDs = input.CategoryIDs
	if err := s.products.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return s.productDetail(ctx, p)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.products.SoftDelete(ctx, id)
}

// productDetail joins categories and photos into the response view.
func (s *CatalogService) productDetail(ctx context.Context, p *domain.Product) (*ports.ProductDetail, error) {
	detail := &ports.ProductDetail{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ReceiptDate: p.ReceiptDate,
		Price:       p.Price,
		IsDeleted:   p.IsDeleted,
	}

	if len(p.CategoryIDs) > 0 {
		cats, err := s.categories.FindByIDs(ctx, p.CategoryIDs)
		if err != nil {
			return nil, fmt.Errorf("join categories: %w", err)
		}
		for _, c := range cats {
			detail.Categories = append(detail.Categories, ports.CategoryRef{ID: c.ID, Name: c.Name})
		}
	}

	photos, err := s.photos.ListByProduct(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("join photos: %w", err)
	}
	for _, ph := range photos {
		detail.Photos = append(detail.Photos, ports.PhotoRef{ID: ph.ID, URL: ph.URL})
	}
	return detail, nil
}

func (s *CatalogService) checkCategories(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.categories.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// --- Photos ---

func (s *CatalogService) CreatePhoto(ctx context.Context, input ports.PhotoInput) (*domain.Photo, error) {
	if _, err := s.products.FindByID(ctx, input.ProductID, ports.DeletedExclude); err != nil {
		return nil, err
	}
	return s.photos.Create(ctx, &domain.Photo{ProductID: input.ProductID, URL: input.URL})
}

func (s *CatalogService) GetPhoto(ctx context.Context, id string, filter ports.DeletedFilter) (*domain.Photo, error) {
	return s.photos.FindByID(ctx, id, filter)
}

func (s *CatalogService) ListPhotos(ctx context.Context, filter ports.DeletedFilter) ([]*domain.Photo, error) {
	return s.photos.List(ctx, filter)
}

func (s *CatalogService) UpdatePhoto(ctx context.Context, id string, input ports.PhotoInput) (*domain.Photo, error) {
	p, err := s.photos.FindByID(ctx, id, ports.DeletedExclude)
	if err != nil {
		return nil, err
	}
	if _, err := s.products.FindByID(ctx, input.ProductID, ports.DeletedExclude); err != nil {
		return nil, err
	}
	p.ProductID = input.ProductID
	p.URL = input.URL
	if err := s.photos.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update photo: %w", err)
	}
	return p, nil
}

func (s *CatalogService) DeletePhoto(ctx context.Context, id string) error {
	return s.photos.SoftDelete(ctx, id)
}

// --- Categories ---

func (s *CatalogService) CreateCategory(ctx context.Context, input ports.CategoryInput) (*domain.Category, error) {
	return s.categories.Create(ctx, &domain.Category{Name: input.Name, Description: input.Description})
}

func (s *CatalogService) GetCategory(ctx context.Context, id string, filter ports.DeletedFilter) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id, filter)
}

func (s *CatalogService) ListCategories(ctx context.Context, filter ports.DeletedFilter) ([]*domain.Category, error) {
	return s.categories.List(ctx, filter)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, input ports.CategoryInput) (*domain.Category, error) {
	c, err := s.categories.FindByID(ctx, id, ports.DeletedExclude)
	if err != nil {
		return nil, err
	}
	c.Name = input.Name
	c.Description = input.Description
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.SoftDelete(ctx, id)
}
