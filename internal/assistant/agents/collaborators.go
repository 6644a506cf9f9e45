package agents

import (
	"context"

	"github.com/google/uuid"
)

// CatalogProduct is a product hit returned by the catalog collaborator.
type CatalogProduct struct {
	ID             uuid.UUID
	Name           string
	Category       string
	Description    string
	BasePriceCents int64
}

// Stock is the availability of a single product.
type Stock struct {
	InStock           bool
	QuantityAvailable int
	LeadTimeDays      int
}

// Catalog looks up products and inventory.
type Catalog interface {
	Search(ctx context.Context, query string, limit int) ([]CatalogProduct, error)
	Stock(ctx context.Context, productID uuid.UUID) (Stock, error)
	Reserve(ctx context.Context, productID uuid.UUID, quantity int) error
}

// CustomerDetails are the fields extracted from the conversation.
type CustomerDetails struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// RegisteredCustomer is a persisted customer record.
type RegisteredCustomer struct {
	ID      uuid.UUID
	Name    string
	Phone   string
	Email   string
	Address string
}

// Customers registers customer contact details.
type Customers interface {
	Register(ctx context.Context, details CustomerDetails) (RegisteredCustomer, error)
}

// OrderRequest describes a confirmed order to place.
type OrderRequest struct {
	CustomerID  uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	TotalCents  int64
	SpecSummary string
}

// OrderResult is the outcome of placing an order. Reused is true when a
// recent identical order was found and returned instead of a new one.
type OrderResult struct {
	ID     uuid.UUID
	Reused bool
}

// Orders places confirmed orders.
type Orders interface {
	Place(ctx context.Context, req OrderRequest) (OrderResult, error)
}

// ReceiptRequest describes the order details rendered into a receipt.
type ReceiptRequest struct {
	OrderID        uuid.UUID
	ProductName    string
	Quantity       int
	UnitPriceCents int64
	TotalCents     int64
	SpecSummary    string
	CustomerName   string
	CustomerPhone  string
}

// ReceiptResult is a generated receipt. FileKey is empty when no PDF copy
// was stored.
type ReceiptResult struct {
	Number  string
	Text    string
	FileKey string
}

// Receipts generates order receipts. Generation never fails outright; a
// degraded receipt still carries a number and formatted text.
type Receipts interface {
	Generate(ctx context.Context, req ReceiptRequest) ReceiptResult
}

// MemoryRecord is a summary to persist for future retrieval.
type MemoryRecord struct {
	SessionID  uuid.UUID
	CustomerID *uuid.UUID
	OrderID    *uuid.UUID
	Kind       string
	Content    string
}

// Memory kinds.
const (
	MemoryKindChatSummary  = "chat_summary"
	MemoryKindOrderSummary = "order_summary"
)

// Memories persists and retrieves conversation memory. Retrieval is best
// effort; implementations return nil rather than an error when memory is
// unavailable.
type Memories interface {
	Save(ctx context.Context, record MemoryRecord) error
	Retrieve(ctx context.Context, sessionID uuid.UUID, query string, limit int) []string
	History(ctx context.Context, customerID uuid.UUID, limit int) []string
}

// OrderNotification carries the fields for a confirmation email.
type OrderNotification struct {
	Email         string
	CustomerName  string
	OrderID       uuid.UUID
	ReceiptNumber string
	ProductName   string
	Quantity      int
	TotalCents    int64
}

// Notifier sends order confirmations. Delivery is best effort.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, note OrderNotification) error
}
