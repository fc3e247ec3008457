package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")

// Product is a catalog item. Deletion is soft: the row stays in the store
// with IsDeleted set and disappears from default listings.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ReceiptDate time.Time `json:"date"`
	Price       float64   `json:"price"`
	CategoryIDs []string  `json:"category_ids,omitempty"`
	IsDeleted   bool      `json:"is_deleted"`
}
