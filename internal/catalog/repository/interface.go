package repository

import (
	"context"

	"github.com/google/uuid"
)

// Product represents a furniture catalog item.
type Product struct {
	ID             uuid.UUID `db:"id"`
	Name           string    `db:"name"`
	Category       string    `db:"category"`
	Description    *string   `db:"description"`
	BasePriceCents int64     `db:"base_price_cents"`
	Materials      []string  `db:"materials"`
	Active         bool      `db:"active"`
	CreatedAt      string    `db:"created_at"`
	UpdatedAt      string    `db:"updated_at"`
}

// Stock represents the inventory position of a product.
type Stock struct {
	ProductID         uuid.UUID `db:"product_id"`
	QuantityAvailable int       `db:"quantity_available"`
	LeadTimeDays      int       `db:"lead_time_days"`
}

// ListProductsParams defines filters for listing products.
type ListProductsParams struct {
	Search   string
	Category string
	Offset   int
	Limit    int
}

// Repository defines catalog persistence operations.
type Repository interface {
	ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (Product, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]Product, error)
	GetStock(ctx context.Context, productID uuid.UUID) (Stock, error)
	ReserveStock(ctx context.Context, productID uuid.UUID, quantity int) error
}
