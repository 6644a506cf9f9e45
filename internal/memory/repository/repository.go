package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/code-YK/WoodWorks-Ai/platform/apperr"
)

const memoryNotFoundMessage = "memory entry not found"

// Repo implements the memory repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new memory repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create persists a memory entry.
func (r *Repo) Create(ctx context.Context, params CreateMemoryParams) (Memory, error) {
	query := `
		INSERT INTO workflow_memory (session_id, customer_id, order_id, kind, content)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, session_id, customer_id, order_id, kind, content, created_at`

	var memory Memory
	if err := r.pool.QueryRow(ctx, query,
		params.SessionID, params.CustomerID, params.OrderID, params.Kind, params.Content,
	).Scan(
		&memory.ID, &memory.SessionID, &memory.CustomerID, &memory.OrderID, &memory.Kind,
		&memory.Content, &memory.CreatedAt,
	); err != nil {
		return Memory{}, fmt.Errorf("create memory: %w", err)
	}

	return memory, nil
}

// GetByID retrieves a memory entry by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Memory, error) {
	query := `
		SELECT id, session_id, customer_id, order_id, kind, content, created_at
		FROM workflow_memory
		WHERE id = $1`

	var memory Memory
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&memory.ID, &memory.SessionID, &memory.CustomerID, &memory.OrderID, &memory.Kind,
		&memory.Content, &memory.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Memory{}, apperr.NotFound(memoryNotFoundMessage)
		}
		return Memory{}, fmt.Errorf("get memory by id: %w", err)
	}

	return memory, nil
}

// ListRecentBySession retrieves the newest memory entries for a session.
func (r *Repo) ListRecentBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]Memory, error) {
	if limit <= 0 {
		limit = 5
	}

	query := `
		SELECT id, session_id, customer_id, order_id, kind, content, created_at
		FROM workflow_memory
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent memory: %w", err)
	}
	defer rows.Close()

	memories := make([]Memory, 0, limit)
	for rows.Next() {
		var memory Memory
		if err := rows.Scan(
			&memory.ID, &memory.SessionID, &memory.CustomerID, &memory.OrderID, &memory.Kind,
			&memory.Content, &memory.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan memory: %w", err)
		}
		memories = append(memories, memory)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recent memory rows: %w", err)
	}

	return memories, nil
}

// ListByCustomer retrieves the newest memory entries across all of a
// customer's sessions.
func (r *Repo) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]Memory, error) {
	if limit <= 0 {
		limit = 5
	}

	query := `
		SELECT id, session_id, customer_id, order_id, kind, content, created_at
		FROM workflow_memory
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list customer memory: %w", err)
	}
	defer rows.Close()

	memories := make([]Memory, 0, limit)
	for rows.Next() {
		var memory Memory
		if err := rows.Scan(
			&memory.ID, &memory.SessionID, &memory.CustomerID, &memory.OrderID, &memory.Kind,
			&memory.Content, &memory.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan memory: %w", err)
		}
		memories = append(memories, memory)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list customer memory rows: %w", err)
	}

	return memories, nil
}
