package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/code-YK/WoodWorks-Ai/internal/catalog/repository"
	"github.com/code-YK/WoodWorks-Ai/internal/catalog/transport"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
)

// Service provides business logic for catalog.
type Service struct {
	repo  repository.Repository
	log   *logger.Logger
	group singleflight.Group
}

// New creates a new catalog service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ListProducts retrieves products with search and pagination. Concurrent
// identical reads are collapsed through singleflight since the assistant
// fans out product lookups on every conversation turn.
func (s *Service) ListProducts(ctx context.Context, req transport.ListProductsRequest) (transport.ProductListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	search := strings.TrimSpace(req.Search)
	category := strings.TrimSpace(req.Category)
	key := fmt.Sprintf("list:%s:%s:%d:%d", search, category, page, pageSize)

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		items, total, err := s.repo.ListProducts(ctx, repository.ListProductsParams{
			Search:   search,
			Category: category,
			Offset:   (page - 1) * pageSize,
			Limit:    pageSize,
		})
		if err != nil {
			return nil, err
		}
		return toProductListResponse(items, total, page, pageSize), nil
	})
	if err != nil {
		return transport.ProductListResponse{}, err
	}

	return result.(transport.ProductListResponse), nil
}

// GetProductByID retrieves a product by ID.
func (s *Service) GetProductByID(ctx context.Context, id uuid.UUID) (transport.ProductResponse, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return transport.ProductResponse{}, err
	}
	return toProductResponse(product), nil
}

// SearchProducts retrieves products matching a free-text query.
func (s *Service) SearchProducts(ctx context.Context, query string, limit int) ([]transport.ProductResponse, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []transport.ProductResponse{}, nil
	}

	products, err := s.repo.SearchProducts(ctx, trimmed, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]transport.ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, toProductResponse(p))
	}
	return responses, nil
}

// GetStock retrieves the inventory position for a product.
func (s *Service) GetStock(ctx context.Context, productID uuid.UUID) (transport.StockResponse, error) {
	stock, err := s.repo.GetStock(ctx, productID)
	if err != nil {
		return transport.StockResponse{}, err
	}
	return transport.StockResponse{
		ProductID:         stock.ProductID,
		QuantityAvailable: stock.QuantityAvailable,
		LeadTimeDays:      stock.LeadTimeDays,
		InStock:           stock.QuantityAvailable > 0,
	}, nil
}

// ReserveStock decrements available stock for a confirmed order.
func (s *Service) ReserveStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	if err := s.repo.ReserveStock(ctx, productID, quantity); err != nil {
		return err
	}
	s.log.Info("stock reserved", "product_id", productID, "quantity", quantity)
	return nil
}

func toProductResponse(p repository.Product) transport.ProductResponse {
	return transport.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		Description:    p.Description,
		BasePriceCents: p.BasePriceCents,
		Materials:      p.Materials,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toProductListResponse(items []repository.Product, total, page, pageSize int) transport.ProductListResponse {
	responses := make([]transport.ProductResponse, 0, len(items))
	for _, p := range items {
		responses = append(responses, toProductResponse(p))
	}
	return transport.ProductListResponse{
		Items:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
