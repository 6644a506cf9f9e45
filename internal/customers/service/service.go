package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/code-YK/WoodWorks-Ai/internal/customers/repository"
	"github.com/code-YK/WoodWorks-Ai/platform/apperr"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
	"github.com/code-YK/WoodWorks-Ai/platform/phone"
)

// Service provides business logic for customers.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new customers service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// UpsertParams contains data for registering a customer.
type UpsertParams struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// Upsert normalizes and persists customer details, matching on phone number.
func (s *Service) Upsert(ctx context.Context, params UpsertParams) (repository.Customer, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return repository.Customer{}, apperr.Validation("customer name is required")
	}

	normalized := phone.NormalizeE164(params.Phone)
	if normalized == "" {
		return repository.Customer{}, apperr.Validation("customer phone is required")
	}

	var email *string
	if trimmed := strings.TrimSpace(params.Email); trimmed != "" {
		email = &trimmed
	}
	var address *string
	if trimmed := strings.TrimSpace(params.Address); trimmed != "" {
		address = &trimmed
	}

	customer, err := s.repo.Upsert(ctx, repository.UpsertCustomerParams{
		Name:    name,
		Phone:   normalized,
		Email:   email,
		Address: address,
	})
	if err != nil {
		return repository.Customer{}, err
	}

	s.log.Info("customer upserted", "customer_id", customer.ID)
	return customer, nil
}

// GetByID retrieves a customer by ID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (repository.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByPhone retrieves a customer by phone, normalizing the input first.
func (s *Service) GetByPhone(ctx context.Context, rawPhone string) (repository.Customer, error) {
	return s.repo.GetByPhone(ctx, phone.NormalizeE164(rawPhone))
}
