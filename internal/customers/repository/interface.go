package repository

import (
	"context"

	"github.com/google/uuid"
)

// Customer represents a retail customer captured during a conversation.
type Customer struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Phone     string    `db:"phone"`
	Email     *string   `db:"email"`
	Address   *string   `db:"address"`
	CreatedAt string    `db:"created_at"`
	UpdatedAt string    `db:"updated_at"`
}

// UpsertCustomerParams contains data for creating or updating a customer.
type UpsertCustomerParams struct {
	Name    string
	Phone   string
	Email   *string
	Address *string
}

// Repository defines customer persistence operations.
type Repository interface {
	Upsert(ctx context.Context, params UpsertCustomerParams) (Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (Customer, error)
	GetByPhone(ctx context.Context, phone string) (Customer, error)
}
