package agents

import (
	"context"
	"fmt"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/engine"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
)

const standardPricingBreakdown = "Standard pricing applied."

// StockPricingStep checks availability and quotes a price in one turn.
// An unavailable product or a failed stock lookup raises a pending issue so
// the supervisor can substitute or retry. A failed pricing call never blocks
// the order: the quote falls back to base price times quantity.
type StockPricingStep struct {
	gen     TextGenerator
	catalog Catalog
	log     *logger.Logger
}

// NewStockPricingStep creates the combined stock and pricing step.
func NewStockPricingStep(gen TextGenerator, catalog Catalog, log *logger.Logger) *StockPricingStep {
	return &StockPricingStep{gen: gen, catalog: catalog, log: log}
}

func (s *StockPricingStep) ID() engine.StepID { return engine.StepStockPricing }

func (s *StockPricingStep) Run(ctx context.Context, st *engine.State) {
	product := st.SelectedProduct
	quantity := st.Quantity
	if quantity < 1 {
		quantity = 1
		st.Quantity = 1
	}

	stock, err := s.catalog.Stock(ctx, product.ID)
	if err != nil {
		st.PendingIssue = fmt.Sprintf("stock check failed for %s: %v", product.Name, err)
		return
	}
	if !stock.InStock || stock.QuantityAvailable < quantity {
		st.PendingIssue = fmt.Sprintf("product unavailable: %s (requested %d, available %d)",
			product.Name, quantity, stock.QuantityAvailable)
		return
	}

	st.StockStatus = &engine.StockStatus{
		InStock:           true,
		QuantityAvailable: stock.QuantityAvailable,
		LeadTimeDays:      stock.LeadTimeDays,
	}

	st.PricingSummary = s.quote(ctx, st, quantity)

	st.AssistantResponse = fmt.Sprintf(
		"Good news, the %s is in stock (about %d days lead time).\n%s\nTotal for %d: %s.\nSay anything to see your order summary.",
		product.Name, stock.LeadTimeDays, st.PricingSummary.Breakdown, quantity, formatCents(st.PricingSummary.TotalCents))
}

// quote asks the LLM to price the technical spec, falling back to base price
// times quantity when the call fails or returns nonsense.
func (s *StockPricingStep) quote(ctx context.Context, st *engine.State, quantity int) *engine.PricingSummary {
	product := st.SelectedProduct

	fallback := &engine.PricingSummary{
		UnitPriceCents: product.BasePriceCents,
		TotalCents:     product.BasePriceCents * int64(quantity),
		Quantity:       quantity,
		Breakdown:      standardPricingBreakdown,
		Fallback:       true,
	}

	req, err := buildRequest("pricing", map[string]interface{}{
		"Product":        product.Name,
		"BasePriceCents": product.BasePriceCents,
		"Quantity":       quantity,
		"Spec":           st.TechnicalSpec.Summary,
	})
	if err != nil {
		s.log.CollaboratorError("prompts", "pricing", err)
		return fallback
	}

	var result struct {
		UnitPriceCents int64  `json:"unit_price_cents"`
		TotalCents     int64  `json:"total_cents"`
		Breakdown      string `json:"breakdown"`
	}
	if err := generateJSON(ctx, s.gen, req, &result); err != nil {
		s.log.CollaboratorError(s.gen.Name(), "quote_pricing", err)
		return fallback
	}

	if result.UnitPriceCents < product.BasePriceCents || result.TotalCents < result.UnitPriceCents {
		s.log.Warn("pricing model returned implausible quote, using fallback",
			"unit_price_cents", result.UnitPriceCents, "total_cents", result.TotalCents)
		return fallback
	}

	return &engine.PricingSummary{
		UnitPriceCents: result.UnitPriceCents,
		TotalCents:     result.TotalCents,
		Quantity:       quantity,
		Breakdown:      result.Breakdown,
	}
}
