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

const (
	productNotFoundMessage = "product not found"
	stockNotFoundMessage   = "no stock record for product"
)

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ListProducts retrieves active products with optional search and category filters.
func (r *Repo) ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, name, category, description, base_price_cents, materials, active, created_at, updated_at,
			COUNT(*) OVER() AS total
		FROM products
		WHERE active = true
			AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
			AND ($2 = '' OR category = $2)
		ORDER BY name ASC
		OFFSET $3 LIMIT $4`

	rows, err := r.pool.Query(ctx, query, params.Search, params.Category, params.Offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0, limit)
	total := 0
	for rows.Next() {
		var p Product
		var createdAt, updatedAt time.Time
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Category, &p.Description, &p.BasePriceCents, &p.Materials, &p.Active,
			&createdAt, &updatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		p.CreatedAt = createdAt.Format(time.RFC3339)
		p.UpdatedAt = updatedAt.Format(time.RFC3339)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list products rows: %w", err)
	}

	return products, total, nil
}

// GetProductByID retrieves a product by ID.
func (r *Repo) GetProductByID(ctx context.Context, id uuid.UUID) (Product, error) {
	query := `
		SELECT id, name, category, description, base_price_cents, materials, active, created_at, updated_at
		FROM products
		WHERE id = $1`

	var p Product
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Category, &p.Description, &p.BasePriceCents, &p.Materials, &p.Active,
		&createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("get product by id: %w", err)
	}

	p.CreatedAt = createdAt.Format(time.RFC3339)
	p.UpdatedAt = updatedAt.Format(time.RFC3339)
	return p, nil
}

// SearchProducts retrieves active products matching the query by name, category or description.
func (r *Repo) SearchProducts(ctx context.Context, searchQuery string, limit int) ([]Product, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, name, category, description, base_price_cents, materials, active, created_at, updated_at
		FROM products
		WHERE active = true
			AND (name ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY name ASC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, searchQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0, limit)
	for rows.Next() {
		var p Product
		var createdAt, updatedAt time.Time
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Category, &p.Description, &p.BasePriceCents, &p.Materials, &p.Active,
			&createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.CreatedAt = createdAt.Format(time.RFC3339)
		p.UpdatedAt = updatedAt.Format(time.RFC3339)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search products rows: %w", err)
	}

	return products, nil
}

// GetStock retrieves the inventory position for a product.
func (r *Repo) GetStock(ctx context.Context, productID uuid.UUID) (Stock, error) {
	query := `
		SELECT product_id, quantity_available, lead_time_days
		FROM inventory_items
		WHERE product_id = $1`

	var s Stock
	if err := r.pool.QueryRow(ctx, query, productID).Scan(
		&s.ProductID, &s.QuantityAvailable, &s.LeadTimeDays,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Stock{}, apperr.NotFound(stockNotFoundMessage)
		}
		return Stock{}, fmt.Errorf("get stock: %w", err)
	}

	return s, nil
}

// ReserveStock decrements available stock when an order is placed.
// Fails with Conflict when the remaining quantity is insufficient.
func (r *Repo) ReserveStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	query := `
		UPDATE inventory_items
		SET quantity_available = quantity_available - $2, updated_at = now()
		WHERE product_id = $1 AND quantity_available >= $2`

	result, err := r.pool.Exec(ctx, query, productID, quantity)
	if err != nil {
		return fmt.Errorf("reserve stock: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.Conflict("insufficient stock for product")
	}
	return nil
}
