package domain

import (
	"errors"
	"time"
)

var ErrOrderNotFound = errors.New("order not found")

// Order is a purchase placed by an account. Orders block physical deletion
// of the owning account while they exist, deleted ones included.
type Order struct {
	ID         string    `json:"id"`
	AccountID  string    `json:"user"`
	ProductIDs []string  `json:"product_ids"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address,omitempty"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_date"`
	IsDeleted  bool      `json:"is_deleted"`
}
