// Package memory provides the workflow memory bounded context module.
// It has no HTTP surface of its own; the assistant module consumes its service.
package memory

import (
	"github.com/code-YK/WoodWorks-Ai/internal/memory/repository"
	"github.com/code-YK/WoodWorks-Ai/internal/memory/service"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the memory bounded context module.
type Module struct {
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the memory module.
func NewModule(pool *pgxpool.Pool, embedder service.Embedder, vectors service.VectorStore, indexer service.Indexer, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, embedder, vectors, indexer, log)

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
