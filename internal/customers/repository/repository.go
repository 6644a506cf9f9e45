package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/code-YK/WoodWorks-Ai/platform/apperr"
)

const customerNotFoundMessage = "customer not found"

// Repo implements the customers repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new customers repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Upsert creates a customer or updates the existing record matching the phone number.
func (r *Repo) Upsert(ctx context.Context, params UpsertCustomerParams) (Customer, error) {
	query := `
		INSERT INTO customers (name, phone, email, address)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (phone) DO UPDATE
		SET name = EXCLUDED.name,
			email = COALESCE(EXCLUDED.email, customers.email),
			address = COALESCE(EXCLUDED.address, customers.address),
			updated_at = now()
		RETURNING id, name, phone, email, address, created_at, updated_at`

	var customer Customer
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, params.Name, params.Phone, params.Email, params.Address).Scan(
		&customer.ID, &customer.Name, &customer.Phone, &customer.Email, &customer.Address,
		&createdAt, &updatedAt,
	); err != nil {
		return Customer{}, fmt.Errorf("upsert customer: %w", err)
	}

	customer.CreatedAt = createdAt.Format(time.RFC3339)
	customer.UpdatedAt = updatedAt.Format(time.RFC3339)
	return customer, nil
}

// GetByID retrieves a customer by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Customer, error) {
	query := `
		SELECT id, name, phone, email, address, created_at, updated_at
		FROM customers
		WHERE id = $1`

	return r.scanOne(ctx, query, id)
}

// GetByPhone retrieves a customer by normalized phone number.
func (r *Repo) GetByPhone(ctx context.Context, phone string) (Customer, error) {
	query := `
		SELECT id, name, phone, email, address, created_at, updated_at
		FROM customers
		WHERE phone = $1`

	return r.scanOne(ctx, query, phone)
}

func (r *Repo) scanOne(ctx context.Context, query string, arg interface{}) (Customer, error) {
	var customer Customer
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&customer.ID, &customer.Name, &customer.Phone, &customer.Email, &customer.Address,
		&createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Customer{}, apperr.NotFound(customerNotFoundMessage)
		}
		return Customer{}, fmt.Errorf("get customer: %w", err)
	}

	customer.CreatedAt = createdAt.Format(time.RFC3339)
	customer.UpdatedAt = updatedAt.Format(time.RFC3339)
	return customer, nil
}
