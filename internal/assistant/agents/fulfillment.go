package agents

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/engine"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
)

// CreateOrderStep places the confirmed order. It refuses to run without an
// explicit confirmation, which turns a routing bug into a recoverable issue
// rather than a surprise charge.
type CreateOrderStep struct {
	orders  Orders
	catalog Catalog
	log     *logger.Logger
}

// NewCreateOrderStep creates the order placement step.
func NewCreateOrderStep(orders Orders, catalog Catalog, log *logger.Logger) *CreateOrderStep {
	return &CreateOrderStep{orders: orders, catalog: catalog, log: log}
}

func (s *CreateOrderStep) ID() engine.StepID { return engine.StepCreateOrder }

func (s *CreateOrderStep) Run(ctx context.Context, st *engine.State) {
	if !st.ConfirmedByUser {
		st.PendingIssue = "order creation attempted without user confirmation"
		return
	}

	specSummary := ""
	if st.TechnicalSpec != nil {
		specSummary = st.TechnicalSpec.Summary
	}

	result, err := s.orders.Place(ctx, OrderRequest{
		CustomerID:  st.Customer.ID,
		ProductID:   st.SelectedProduct.ID,
		ProductName: st.SelectedProduct.Name,
		Quantity:    st.PricingSummary.Quantity,
		TotalCents:  st.PricingSummary.TotalCents,
		SpecSummary: specSummary,
	})
	if err != nil {
		st.PendingIssue = fmt.Sprintf("order creation failed: %v", err)
		return
	}

	st.OrderID = result.ID

	if result.Reused {
		s.log.Info("reused recent identical order",
			"session_id", st.SessionID, "order_id", result.ID)
		return
	}

	if err := s.catalog.Reserve(ctx, st.SelectedProduct.ID, st.PricingSummary.Quantity); err != nil {
		s.log.CollaboratorError("catalog", "reserve_stock", err)
	}
}

// GenerateReceiptStep renders the receipt for the placed order and emails
// the customer a copy when we have an address. Receipt generation degrades
// rather than fails, so this link never raises a pending issue.
type GenerateReceiptStep struct {
	receipts Receipts
	notifier Notifier
	log      *logger.Logger
}

// NewGenerateReceiptStep creates the receipt generation step.
func NewGenerateReceiptStep(receipts Receipts, notifier Notifier, log *logger.Logger) *GenerateReceiptStep {
	return &GenerateReceiptStep{receipts: receipts, notifier: notifier, log: log}
}

func (s *GenerateReceiptStep) ID() engine.StepID { return engine.StepGenerateReceipt }

func (s *GenerateReceiptStep) Run(ctx context.Context, st *engine.State) {
	specSummary := ""
	if st.TechnicalSpec != nil {
		specSummary = st.TechnicalSpec.Summary
	}

	receipt := s.receipts.Generate(ctx, ReceiptRequest{
		OrderID:        st.OrderID,
		ProductName:    st.SelectedProduct.Name,
		Quantity:       st.PricingSummary.Quantity,
		UnitPriceCents: st.PricingSummary.UnitPriceCents,
		TotalCents:     st.PricingSummary.TotalCents,
		SpecSummary:    specSummary,
		CustomerName:   st.Customer.Name,
		CustomerPhone:  st.Customer.Phone,
	})

	st.ReceiptReference = receipt.Number
	if receipt.FileKey != "" {
		st.ReceiptReference = receipt.FileKey
	}
	st.ReceiptText = receipt.Text

	if s.notifier != nil && st.Customer.Email != "" {
		err := s.notifier.SendOrderConfirmation(ctx, OrderNotification{
			Email:         st.Customer.Email,
			CustomerName:  st.Customer.Name,
			OrderID:       st.OrderID,
			ReceiptNumber: receipt.Number,
			ProductName:   st.SelectedProduct.Name,
			Quantity:      st.PricingSummary.Quantity,
			TotalCents:    st.PricingSummary.TotalCents,
		})
		if err != nil {
			s.log.CollaboratorError("email", "send_order_confirmation", err)
		}
	}
}

// StoreMemoryStep records the completed order for future conversations and
// closes the workflow. Memory persistence is best effort; the order already
// exists and the customer gets their confirmation either way.
type StoreMemoryStep struct {
	memories Memories
	log      *logger.Logger
}

// NewStoreMemoryStep creates the final workflow step.
func NewStoreMemoryStep(memories Memories, log *logger.Logger) *StoreMemoryStep {
	return &StoreMemoryStep{memories: memories, log: log}
}

func (s *StoreMemoryStep) ID() engine.StepID { return engine.StepStoreMemory }

func (s *StoreMemoryStep) Run(ctx context.Context, st *engine.State) {
	if s.memories != nil {
		content := s.orderSummary(st)

		var customerID *uuid.UUID
		if st.Customer != nil {
			id := st.Customer.ID
			customerID = &id
		}
		orderID := st.OrderID

		err := s.memories.Save(ctx, MemoryRecord{
			SessionID:  st.SessionID,
			CustomerID: customerID,
			OrderID:    &orderID,
			Kind:       MemoryKindOrderSummary,
			Content:    content,
		})
		if err != nil {
			s.log.CollaboratorError("memory", "save_order_summary", err)
		}
	}

	st.WorkflowComplete = true

	st.AssistantResponse = fmt.Sprintf(
		"Your order is confirmed! 🎉\n\n%s\nYour receipt reference is %s. Thank you for choosing us!",
		st.ReceiptText, st.ReceiptReference)
}

func (s *StoreMemoryStep) orderSummary(st *engine.State) string {
	spec := ""
	if st.TechnicalSpec != nil {
		spec = st.TechnicalSpec.Summary
	}
	name := ""
	if st.Customer != nil {
		name = st.Customer.Name
	}
	return fmt.Sprintf("Customer %s ordered %d x %s for %s. Spec: %s. Receipt: %s.",
		name, st.PricingSummary.Quantity, st.SelectedProduct.Name,
		formatCents(st.PricingSummary.TotalCents), spec, st.ReceiptReference)
}
