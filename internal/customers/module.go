// Package customers provides the customers bounded context module.
// It has no HTTP surface of its own; the assistant module consumes its service.
package customers

import (
	"github.com/code-YK/WoodWorks-Ai/internal/customers/repository"
	"github.com/code-YK/WoodWorks-Ai/internal/customers/service"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the customers bounded context module.
type Module struct {
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the customers module.
func NewModule(pool *pgxpool.Pool, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)

	return &Module{
		service: svc,
		repo:    repo,
	}
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}
