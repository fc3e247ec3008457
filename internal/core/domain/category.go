package domain

import "errors"

var ErrCategoryNotFound = errors.New("category not found")

// Category groups products. Soft-deleted like the rest of the catalog.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsDeleted   bool   `json:"is_deleted"`
}
