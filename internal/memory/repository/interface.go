package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a stored memory entry.
const (
	KindChatSummary  = "chat_summary"
	KindOrderSummary = "order_summary"
)

// Memory is a persisted conversation or order summary.
type Memory struct {
	ID         uuid.UUID  `db:"id"`
	SessionID  uuid.UUID  `db:"session_id"`
	CustomerID *uuid.UUID `db:"customer_id"`
	OrderID    *uuid.UUID `db:"order_id"`
	Kind       string     `db:"kind"`
	Content    string     `db:"content"`
	CreatedAt  time.Time  `db:"created_at"`
}

// CreateMemoryParams contains data for persisting a memory entry.
type CreateMemoryParams struct {
	SessionID  uuid.UUID
	CustomerID *uuid.UUID
	OrderID    *uuid.UUID
	Kind       string
	Content    string
}

// Repository defines memory persistence operations.
type Repository interface {
	Create(ctx context.Context, params CreateMemoryParams) (Memory, error)
	GetByID(ctx context.Context, id uuid.UUID) (Memory, error)
	ListRecentBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]Memory, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]Memory, error)
}
