package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/code-YK/WoodWorks-Ai/internal/orders/repository"
	"github.com/code-YK/WoodWorks-Ai/platform/apperr"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
)

// Service provides business logic for orders.
type Service struct {
	repo            repository.Repository
	log             *logger.Logger
	duplicateWindow time.Duration
}

// New creates a new orders service.
func New(repo repository.Repository, log *logger.Logger, duplicateWindow time.Duration) *Service {
	if duplicateWindow <= 0 {
		duplicateWindow = 60 * time.Second
	}
	return &Service{repo: repo, log: log, duplicateWindow: duplicateWindow}
}

// CreateParams contains data for placing an order.
type CreateParams struct {
	CustomerID  uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	TotalCents  int64
	SpecSummary string
}

// Create places a confirmed order. When an identical order by the same
// customer for the same product exists inside the duplicate window, the
// existing order is returned instead of inserting a second one. A failing
// duplicate lookup never blocks order placement.
func (s *Service) Create(ctx context.Context, params CreateParams) (repository.Order, bool, error) {
	if params.Quantity <= 0 {
		return repository.Order{}, false, apperr.Validation("order quantity must be positive")
	}
	if strings.TrimSpace(params.ProductName) == "" {
		return repository.Order{}, false, apperr.Validation("order product name is required")
	}

	existing, err := s.repo.FindRecentConfirmed(ctx, params.CustomerID, params.ProductID, s.duplicateWindow)
	if err == nil {
		s.log.Info("duplicate order detected, reusing existing order",
			"order_id", existing.ID, "customer_id", params.CustomerID, "product_id", params.ProductID)
		return existing, true, nil
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		s.log.Warn("duplicate order lookup failed, proceeding with creation", "error", err)
	}

	order, err := s.repo.Create(ctx, repository.CreateOrderParams{
		CustomerID:  params.CustomerID,
		ProductID:   params.ProductID,
		ProductName: params.ProductName,
		Quantity:    params.Quantity,
		TotalCents:  params.TotalCents,
		SpecSummary: params.SpecSummary,
	})
	if err != nil {
		return repository.Order{}, false, err
	}

	s.log.Info("order created", "order_id", order.ID, "customer_id", order.CustomerID, "total_cents", order.TotalCents)
	return order, false, nil
}

// GetByID retrieves an order by ID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (repository.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// SetReceiptReference stores the generated receipt file key on the order.
func (s *Service) SetReceiptReference(ctx context.Context, id uuid.UUID, reference string) error {
	if strings.TrimSpace(reference) == "" {
		return apperr.Validation("receipt reference is required")
	}
	return s.repo.SetReceiptReference(ctx, id, reference)
}
