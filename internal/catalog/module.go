// Package catalog provides the catalog bounded context module.
package catalog

import (
	"github.com/code-YK/WoodWorks-Ai/internal/catalog/handler"
	"github.com/code-YK/WoodWorks-Ai/internal/catalog/repository"
	"github.com/code-YK/WoodWorks-Ai/internal/catalog/service"
	apphttp "github.com/code-YK/WoodWorks-Ai/internal/http"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
	"github.com/code-YK/WoodWorks-Ai/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/catalog/products", m.handler.ListProducts)
	ctx.V1.GET("/catalog/products/:id", m.handler.GetProductByID)
	ctx.V1.GET("/catalog/products/:id/stock", m.handler.GetProductStock)
}
