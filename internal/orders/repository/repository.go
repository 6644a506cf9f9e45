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

const orderNotFoundMessage = "order not found"

// Repo implements the orders repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new orders repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a confirmed order.
func (r *Repo) Create(ctx context.Context, params CreateOrderParams) (Order, error) {
	query := `
		INSERT INTO orders (customer_id, product_id, product_name, quantity, total_cents, status, spec_summary)
		VALUES ($1, $2, $3, $4, $5, 'confirmed', $6)
		RETURNING id, customer_id, product_id, product_name, quantity, total_cents, status, spec_summary, receipt_reference, created_at`

	var order Order
	if err := r.pool.QueryRow(ctx, query,
		params.CustomerID, params.ProductID, params.ProductName, params.Quantity, params.TotalCents, params.SpecSummary,
	).Scan(
		&order.ID, &order.CustomerID, &order.ProductID, &order.ProductName, &order.Quantity,
		&order.TotalCents, &order.Status, &order.SpecSummary, &order.ReceiptReference, &order.CreatedAt,
	); err != nil {
		return Order{}, fmt.Errorf("create order: %w", err)
	}

	return order, nil
}

// GetByID retrieves an order by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Order, error) {
	query := `
		SELECT id, customer_id, product_id, product_name, quantity, total_cents, status, spec_summary, receipt_reference, created_at
		FROM orders
		WHERE id = $1`

	var order Order
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.CustomerID, &order.ProductID, &order.ProductName, &order.Quantity,
		&order.TotalCents, &order.Status, &order.SpecSummary, &order.ReceiptReference, &order.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, apperr.NotFound(orderNotFoundMessage)
		}
		return Order{}, fmt.Errorf("get order by id: %w", err)
	}

	return order, nil
}

// FindRecentConfirmed returns the most recent confirmed order for the same
// customer and product placed within the given window.
func (r *Repo) FindRecentConfirmed(ctx context.Context, customerID, productID uuid.UUID, window time.Duration) (Order, error) {
	query := `
		SELECT id, customer_id, product_id, product_name, quantity, total_cents, status, spec_summary, receipt_reference, created_at
		FROM orders
		WHERE customer_id = $1 AND product_id = $2 AND status = 'confirmed' AND created_at >= $3
		ORDER BY created_at DESC
		LIMIT 1`

	cutoff := time.Now().Add(-window)

	var order Order
	if err := r.pool.QueryRow(ctx, query, customerID, productID, cutoff).Scan(
		&order.ID, &order.CustomerID, &order.ProductID, &order.ProductName, &order.Quantity,
		&order.TotalCents, &order.Status, &order.SpecSummary, &order.ReceiptReference, &order.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, apperr.NotFound(orderNotFoundMessage)
		}
		return Order{}, fmt.Errorf("find recent confirmed order: %w", err)
	}

	return order, nil
}

// SetReceiptReference stores the receipt file key on the order.
func (r *Repo) SetReceiptReference(ctx context.Context, id uuid.UUID, reference string) error {
	query := `UPDATE orders SET receipt_reference = $2, updated_at = now() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, reference)
	if err != nil {
		return fmt.Errorf("set receipt reference: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(orderNotFoundMessage)
	}
	return nil
}
