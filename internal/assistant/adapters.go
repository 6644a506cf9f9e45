package assistant

import (
	"context"

	"github.com/google/uuid"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/agents"
	catalogsvc "github.com/code-YK/WoodWorks-Ai/internal/catalog/service"
	customersvc "github.com/code-YK/WoodWorks-Ai/internal/customers/service"
	"github.com/code-YK/WoodWorks-Ai/internal/email"
	memorysvc "github.com/code-YK/WoodWorks-Ai/internal/memory/service"
	orderssvc "github.com/code-YK/WoodWorks-Ai/internal/orders/service"
	"github.com/code-YK/WoodWorks-Ai/internal/receipts"
	"github.com/code-YK/WoodWorks-Ai/platform/ai/gemini"
	"github.com/code-YK/WoodWorks-Ai/platform/ai/groq"
)

// The adapters below bind the bounded-context services to the narrow
// collaborator interfaces the agents depend on.

type catalogAdapter struct {
	svc *catalogsvc.Service
}

func (a catalogAdapter) Search(ctx context.Context, query string, limit int) ([]agents.CatalogProduct, error) {
	hits, err := a.svc.SearchProducts(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	products := make([]agents.CatalogProduct, 0, len(hits))
	for _, hit := range hits {
		product := agents.CatalogProduct{
			ID:             hit.ID,
			Name:           hit.Name,
			Category:       hit.Category,
			BasePriceCents: hit.BasePriceCents,
		}
		if hit.Description != nil {
			product.Description = *hit.Description
		}
		products = append(products, product)
	}
	return products, nil
}

func (a catalogAdapter) Stock(ctx context.Context, productID uuid.UUID) (agents.Stock, error) {
	stock, err := a.svc.GetStock(ctx, productID)
	if err != nil {
		return agents.Stock{}, err
	}
	return agents.Stock{
		InStock:           stock.InStock,
		QuantityAvailable: stock.QuantityAvailable,
		LeadTimeDays:      stock.LeadTimeDays,
	}, nil
}

func (a catalogAdapter) Reserve(ctx context.Context, productID uuid.UUID, quantity int) error {
	return a.svc.ReserveStock(ctx, productID, quantity)
}

type customersAdapter struct {
	svc *customersvc.Service
}

func (a customersAdapter) Register(ctx context.Context, details agents.CustomerDetails) (agents.RegisteredCustomer, error) {
	customer, err := a.svc.Upsert(ctx, customersvc.UpsertParams{
		Name:    details.Name,
		Phone:   details.Phone,
		Email:   details.Email,
		Address: details.Address,
	})
	if err != nil {
		return agents.RegisteredCustomer{}, err
	}

	registered := agents.RegisteredCustomer{
		ID:    customer.ID,
		Name:  customer.Name,
		Phone: customer.Phone,
	}
	if customer.Email != nil {
		registered.Email = *customer.Email
	}
	if customer.Address != nil {
		registered.Address = *customer.Address
	}
	return registered, nil
}

type ordersAdapter struct {
	svc *orderssvc.Service
}

func (a ordersAdapter) Place(ctx context.Context, req agents.OrderRequest) (agents.OrderResult, error) {
	order, reused, err := a.svc.Create(ctx, orderssvc.CreateParams{
		CustomerID:  req.CustomerID,
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		TotalCents:  req.TotalCents,
		SpecSummary: req.SpecSummary,
	})
	if err != nil {
		return agents.OrderResult{}, err
	}
	return agents.OrderResult{ID: order.ID, Reused: reused}, nil
}

type receiptsAdapter struct {
	svc         *receipts.Service
	companyName string
}

func (a receiptsAdapter) Generate(ctx context.Context, req agents.ReceiptRequest) agents.ReceiptResult {
	receipt := a.svc.Generate(ctx, receipts.GenerateParams{
		OrderID:        req.OrderID,
		CompanyName:    a.companyName,
		ProductName:    req.ProductName,
		Quantity:       req.Quantity,
		UnitPriceCents: req.UnitPriceCents,
		TotalCents:     req.TotalCents,
		SpecSummary:    req.SpecSummary,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
	})
	return agents.ReceiptResult{
		Number:  receipt.Number,
		Text:    receipt.Text,
		FileKey: receipt.FileKey,
	}
}

type memoriesAdapter struct {
	svc *memorysvc.Service
}

func (a memoriesAdapter) Save(ctx context.Context, record agents.MemoryRecord) error {
	_, err := a.svc.Save(ctx, memorysvc.SaveParams{
		SessionID:  record.SessionID,
		CustomerID: record.CustomerID,
		OrderID:    record.OrderID,
		Kind:       record.Kind,
		Content:    record.Content,
	})
	return err
}

func (a memoriesAdapter) Retrieve(ctx context.Context, sessionID uuid.UUID, query string, limit int) []string {
	return a.svc.Retrieve(ctx, sessionID, query, limit)
}

func (a memoriesAdapter) History(ctx context.Context, customerID uuid.UUID, limit int) []string {
	entries, err := a.svc.CustomerHistory(ctx, customerID, limit)
	if err != nil {
		return nil
	}
	contents := make([]string, 0, len(entries))
	for _, entry := range entries {
		contents = append(contents, entry.Content)
	}
	return contents
}

type notifierAdapter struct {
	sender      email.Sender
	companyName string
}

func (a notifierAdapter) SendOrderConfirmation(ctx context.Context, note agents.OrderNotification) error {
	return a.sender.SendOrderConfirmationEmail(ctx, note.Email, email.OrderConfirmationData{
		CustomerName:   note.CustomerName,
		CompanyName:    a.companyName,
		OrderID:        note.OrderID.String(),
		ReceiptNumber:  note.ReceiptNumber,
		ProductName:    note.ProductName,
		Quantity:       note.Quantity,
		TotalFormatted: receipts.FormatCents(note.TotalCents),
	})
}

type groqGenerator struct {
	client *groq.Client
}

func (g groqGenerator) Name() string { return g.client.Name() }

func (g groqGenerator) Generate(ctx context.Context, req agents.GenerateRequest) (string, error) {
	return g.client.ChatCompletion(ctx, groq.Request{
		System:      req.System,
		Prompt:      req.Prompt,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		JSONMode:    req.JSONMode,
	})
}

type geminiGenerator struct {
	client *gemini.Client
}

func (g geminiGenerator) Name() string { return g.client.Name() }

func (g geminiGenerator) Generate(ctx context.Context, req agents.GenerateRequest) (string, error) {
	return g.client.ChatCompletion(ctx, gemini.Request{
		System:      req.System,
		Prompt:      req.Prompt,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		JSONMode:    req.JSONMode,
	})
}
