package domain

import "errors"

var ErrPhotoNotFound = errors.New("photo not found")

// Photo is an image attached to a product, referenced by URL.
type Photo struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	URL       string `json:"photo"`
	IsDeleted bool   `json:"is_deleted"`
}
