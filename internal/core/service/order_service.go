package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinema-app/shop-api/internal/core/domain"
	"github.com/cinema-app/shop-api/internal/core/ports"
)

// OrderService implements order CRUD with soft delete. Order views join in
// the referenced products.
type OrderService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	accounts ports.AccountRepository
	logger   zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	products ports.ProductRepository,
	accounts ports.AccountRepository,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{orders: orders, products: products, accounts: accounts, logger: logger}
}

func (s *OrderService) CreateOrder(ctx context.Context, input ports.OrderInput) (*ports.OrderDetail, error) {
	if _, err := s.accounts.FindByID(ctx, input.AccountID); err != nil {
		return nil, err
	}
	for _, pid := range input.ProductIDs {
		if _, err := s.products.FindByID(ctx, pid, ports.DeletedExclude); err != nil {
			return nil, err
		}
	}

	created, err := s.orders.Create(ctx, &domain.Order{
		AccountID:  input.AccountID,
		ProductIDs: input.ProductIDs,
		Phone:      input.Phone,
		Address:    input.Address,
		Comment:    input.Comment,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", created.ID).Str("account_id", created.AccountID).Msg("order created")
	return s.orderDetail(ctx, created)
}

func (s *OrderService) GetOrder(ctx context.Context, id string, filter ports.DeletedFilter) (*ports.OrderDetail, error) {
	o, err := s.orders.FindByID(ctx, id, filter)
	if err != nil {
		return nil, err
	}
	return s.orderDetail(ctx, o)
}

func (s *OrderService) ListOrders(ctx context.Context, filter ports.DeletedFilter) ([]*ports.OrderDetail, error) {
	items, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*ports.OrderDetail, 0, len(items))
	for _, o := range items {
		d, err := s.orderDetail(ctx, o)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, id string, input ports.OrderInput) (*ports.OrderDetail, error) {
	o, err := s.orders.FindByID(ctx, id, ports.DeletedExclude)
	if err != nil {
		return nil, err
	}
	for _, pid := range input.ProductIDs {
		if _, err := s.products.FindByID(ctx, pid, ports.DeletedExclude); err != nil {
			return nil, err
		}
	}

	o.ProductIDs = input.ProductIDs
	o.Phone = input.Phone
	o.Address = input.Address
	o.Comment = input.Comment
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return s.orderDetail(ctx, o)
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	return s.orders.SoftDelete(ctx, id)
}

// orderDetail joins the referenced products into the response view. Products
// that were soft-deleted after the order was placed still appear.
func (s *OrderService) orderDetail(ctx context.Context, o *domain.Order) (*ports.OrderDetail, error) {
	detail := &ports.OrderDetail{
		ID:        o.ID,
		AccountID: o.AccountID,
		Phone:     o.Phone,
		Address:   o.Address,
		Comment:   o.Comment,
		CreatedAt: o.CreatedAt,
		IsDeleted: o.IsDeleted,
	}
	for _, pid := range o.ProductIDs {
		p, err := s.products.FindByID(ctx, pid, ports.DeletedAll)
		if err != nil {
			return nil, fmt.Errorf("join products: %w", err)
		}
		detail.Products = append(detail.Products, ports.ProductRef{ID: p.ID, Name: p.Name})
	}
	return detail, nil
}
