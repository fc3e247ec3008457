package handler

import (
	"time"

	"github.com/cinema-app/shop-api/internal/core/domain"
	"github.com/cinema-app/shop-api/internal/core/ports"
)

// receiptDateLayout is the wire format of the product receipt date.
const receiptDateLayout = "2006-01-02"

// --- Request types ---

type productRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Description string   `json:"description"`
	Date        string   `json:"date"        validate:"required"`
	Price       float64  `json:"price"       validate:"required,gt=0"`
	Categories  []string `json:"categories"`
}

type photoRequest struct {
	Product string `json:"product" validate:"required"`
	URL     string `json:"photo"   validate:"required"`
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type orderRequest struct {
	Products []string `json:"products" validate:"required,min=1"`
	Phone    string   `json:"phone"    validate:"required"`
	Address  string   `json:"address"`
	Comment  string   `json:"comment"`
}

// --- Response types ---
// These are intentionally separate from ports/domain types so the JSON
// contract is not coupled to internal service changes.

type categoryRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type photoRefResponse struct {
	ID  string `json:"id"`
	URL string `json:"photo"`
}

type productResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Date        string                `json:"date"`
	Price       float64               `json:"price"`
	Categories  []categoryRefResponse `json:"categories"`
	Photos      []photoRefResponse    `json:"photos"`
	IsDeleted   bool                  `json:"is_deleted"`
}

type photoResponse struct {
	ID        string `json:"id"`
	Product   string `json:"product"`
	URL       string `json:"photo"`
	IsDeleted bool   `json:"is_deleted"`
}

type categoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsDeleted   bool   `json:"is_deleted"`
}

type productRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type orderResponse struct {
	ID          string               `json:"id"`
	User        string               `json:"user"`
	Products    []productRefResponse `json:"products"`
	Phone       string               `json:"phone"`
	Address     string               `json:"address,omitempty"`
	Comment     string               `json:"comment,omitempty"`
	CreatedDate time.Time            `json:"created_date"`
	IsDeleted   bool                 `json:"is_deleted"`
}

// --- Service result → HTTP response ---

func toProductResponse(d *ports.ProductDetail) productResponse {
	resp := productResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Date:        d.ReceiptDate.UTC().Format(receiptDateLayout),
		Price:       d.Price,
		Categories:  make([]categoryRefResponse, 0, len(d.Categories)),
		Photos:      make([]photoRefResponse, 0, len(d.Photos)),
		IsDeleted:   d.IsDeleted,
	}
	for _, c := range d.Categories {
		resp.Categories = append(resp.Categories, categoryRefResponse{ID: c.ID, Name: c.Name})
	}
	for _, p := range d.Photos {
		resp.Photos = append(resp.Photos, photoRefResponse{ID: p.ID, URL: p.URL})
	}
	return resp
}

func toProductListResponse(items []*ports.ProductDetail) []productResponse {
	out := make([]productResponse, 0, len(items))
	for _, d := range items {
		out = append(out, toProductResponse(d))
	}
	return out
}

func toPhotoResponse(p *domain.Photo) photoResponse {
	return photoResponse{
		ID:        p.ID,
		Product:   p.ProductID,
		URL:       p.URL,
		IsDeleted: p.IsDeleted,
	}
}

func toCategoryResponse(c *domain.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsDeleted:   c.IsDeleted,
	}
}

func toOrderResponse(d *ports.OrderDetail) orderResponse {
	resp := orderResponse{
		ID:          d.ID,
		User:        d.AccountID,
		Products:    make([]productRefResponse, 0, len(d.Products)),
		Phone:       d.Phone,
		Address:     d.Address,
		Comment:     d.Comment,
		CreatedDate: d.CreatedAt.UTC(),
		IsDeleted:   d.IsDeleted,
	}
	for _, p := range d.Products {
		resp.Products = append(resp.Products, productRefResponse{ID: p.ID, Name: p.Name})
	}
	return resp
}
