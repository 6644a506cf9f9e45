package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Order represents a confirmed furniture order.
type Order struct {
	ID               uuid.UUID `db:"id"`
	CustomerID       uuid.UUID `db:"customer_id"`
	ProductID        uuid.UUID `db:"product_id"`
	ProductName      string    `db:"product_name"`
	Quantity         int       `db:"quantity"`
	TotalCents       int64     `db:"total_cents"`
	Status           string    `db:"status"`
	SpecSummary      string    `db:"spec_summary"`
	ReceiptReference *string   `db:"receipt_reference"`
	CreatedAt        time.Time `db:"created_at"`
}

// CreateOrderParams contains data for creating an order.
type CreateOrderParams struct {
	CustomerID  uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	TotalCents  int64
	SpecSummary string
}

// Repository defines order persistence operations.
type Repository interface {
	Create(ctx context.Context, params CreateOrderParams) (Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	FindRecentConfirmed(ctx context.Context, customerID, productID uuid.UUID, window time.Duration) (Order, error)
	SetReceiptReference(ctx context.Context, id uuid.UUID, reference string) error
}
