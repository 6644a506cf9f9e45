// Package assistant provides the conversational order-taking bounded context.
// It wires the turn engine, its agent steps and the session store, and binds
// the other bounded contexts as collaborators.
package assistant

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/agents"
	"github.com/code-YK/WoodWorks-Ai/internal/assistant/engine"
	"github.com/code-YK/WoodWorks-Ai/internal/assistant/handler"
	"github.com/code-YK/WoodWorks-Ai/internal/assistant/service"
	"github.com/code-YK/WoodWorks-Ai/internal/assistant/session"
	catalogsvc "github.com/code-YK/WoodWorks-Ai/internal/catalog/service"
	customersvc "github.com/code-YK/WoodWorks-Ai/internal/customers/service"
	"github.com/code-YK/WoodWorks-Ai/internal/email"
	apphttp "github.com/code-YK/WoodWorks-Ai/internal/http"
	memorysvc "github.com/code-YK/WoodWorks-Ai/internal/memory/service"
	orderssvc "github.com/code-YK/WoodWorks-Ai/internal/orders/service"
	"github.com/code-YK/WoodWorks-Ai/internal/receipts"
	"github.com/code-YK/WoodWorks-Ai/platform/ai/gemini"
	"github.com/code-YK/WoodWorks-Ai/platform/ai/groq"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
	"github.com/code-YK/WoodWorks-Ai/platform/validator"
)

// Dependencies collects the collaborators the assistant module wires together.
// EmailSender and the LLM clients may be partially nil; exactly one of Groq or
// Gemini must be set.
type Dependencies struct {
	Redis      *redis.Client
	SessionTTL time.Duration

	Groq   *groq.Client
	Gemini *gemini.Client

	Catalog   *catalogsvc.Service
	Customers *customersvc.Service
	Orders    *orderssvc.Service
	Memories  *memorysvc.Service
	Receipts  *receipts.Service

	EmailSender email.Sender

	CompanyName        string
	MaxSupervisorSteps int

	Validator *validator.Validator
	Logger    *logger.Logger
}

// Module is the assistant bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	engine  *engine.Engine
}

// NewModule assembles the assistant module.
func NewModule(deps Dependencies) *Module {
	log := deps.Logger

	var gen agents.TextGenerator
	switch {
	case deps.Groq != nil:
		gen = groqGenerator{client: deps.Groq}
	case deps.Gemini != nil:
		gen = geminiGenerator{client: deps.Gemini}
	}

	catalog := catalogAdapter{svc: deps.Catalog}
	customers := customersAdapter{svc: deps.Customers}
	orders := ordersAdapter{svc: deps.Orders}
	receiptsGen := receiptsAdapter{svc: deps.Receipts, companyName: deps.CompanyName}
	memories := memoriesAdapter{svc: deps.Memories}

	var notifier agents.Notifier
	if deps.EmailSender != nil {
		notifier = notifierAdapter{sender: deps.EmailSender, companyName: deps.CompanyName}
	}

	discount := agents.NewDiscountAgent(gen, log)

	eng := engine.New(engine.Config{
		Classifier: agents.NewIntentClassifier(gen),
		WorkflowSteps: []engine.Step{
			agents.NewSupervisorStep(gen, catalog, deps.MaxSupervisorSteps, log),
			agents.NewCustomerInfoStep(gen, customers, memories, log),
			agents.NewProductSelectorStep(gen, catalog, log),
			agents.NewSpecIntakeStep(gen, log),
			agents.NewTechnicalSpecStep(gen, log),
			agents.NewStockPricingStep(gen, catalog, log),
			agents.NewConfirmationStep(discount, log),
			agents.NewCreateOrderStep(orders, catalog, log),
			agents.NewGenerateReceiptStep(receiptsGen, notifier, log),
			agents.NewStoreMemoryStep(memories, log),
		},
		ChatPipeline:       agents.NewChatPipeline(gen, memories, log),
		MaxSupervisorSteps: deps.MaxSupervisorSteps,
		Logger:             log,
	})

	store := session.NewStore(deps.Redis, deps.SessionTTL)
	svc := service.New(store, eng, deps.Receipts, log)
	h := handler.New(svc, deps.Validator)

	return &Module{
		handler: h,
		service: svc,
		engine:  eng,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "assistant"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts assistant routes on the provided router context.
// Message, confirm and cancel turns run LLM calls and get the stricter
// per-IP limit.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	limited := ctx.MessageRateLimiter.RateLimit()

	ctx.V1.POST("/assistant/sessions", m.handler.CreateSession)
	ctx.V1.POST("/assistant/sessions/:id/messages", limited, m.handler.SendMessage)
	ctx.V1.POST("/assistant/sessions/:id/confirm", limited, m.handler.Confirm)
	ctx.V1.POST("/assistant/sessions/:id/cancel", limited, m.handler.Cancel)
	ctx.V1.GET("/assistant/sessions/:id", m.handler.GetSession)
	ctx.V1.GET("/assistant/sessions/:id/receipt", m.handler.GetReceiptURL)
}
