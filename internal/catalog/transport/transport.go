// Package transport defines request and response DTOs for the catalog module.
package transport

import "github.com/google/uuid"

// ListProductsRequest defines query parameters for listing products.
type ListProductsRequest struct {
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	Search   string `form:"search" validate:"omitempty,max=200"`
	Category string `form:"category" validate:"omitempty,max=100"`
}

// ProductResponse is the API representation of a catalog product.
type ProductResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Description    *string   `json:"description,omitempty"`
	BasePriceCents int64     `json:"basePriceCents"`
	Materials      []string  `json:"materials,omitempty"`
	CreatedAt      string    `json:"createdAt"`
	UpdatedAt      string    `json:"updatedAt"`
}

// ProductListResponse is a paginated list of products.
type ProductListResponse struct {
	Items    []ProductResponse `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

// StockResponse is the API representation of a product's inventory position.
type StockResponse struct {
	ProductID         uuid.UUID `json:"productId"`
	QuantityAvailable int       `json:"quantityAvailable"`
	LeadTimeDays      int       `json:"leadTimeDays"`
	InStock           bool      `json:"inStock"`
}
