package ports

import (
	"context"
	"time"
)

// OrderInput carries all data needed to create or replace an order.
type OrderInput struct {
	AccountID  string
	ProductIDs []string
	Phone      string
	Address    string
	Comment    string
}

// ProductRef is the inline product view embedded in order responses.
type ProductRef struct {
	ID   string
	Name string
}

// OrderDetail is the full order view, with products joined in.
type OrderDetail struct {
	ID        string
	AccountID string
	Products  []ProductRef
	Phone     string
	Address   string
	Comment   string
	CreatedAt time.Time
	IsDeleted bool
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	CreateOrder(ctx context.Context, input OrderInput) (*OrderDetail, error)
	GetOrder(ctx context.Context, id string, filter DeletedFilter) (*OrderDetail, error)
	ListOrders(ctx context.Context, filter DeletedFilter) ([]*OrderDetail, error)
	UpdateOrder(ctx context.Context, id string, input OrderInput) (*OrderDetail, error)
	DeleteOrder(ctx context.Context, id string) error
}
