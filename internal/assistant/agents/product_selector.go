package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/engine"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
)

// ProductSelectorStep matches the customer's request against the catalog.
// A catalog outage raises a pending issue for the supervisor; an unmatched
// request just asks the customer to pick from what was found.
type ProductSelectorStep struct {
	gen     TextGenerator
	catalog Catalog
	log     *logger.Logger
}

// NewProductSelectorStep creates the product selection step.
func NewProductSelectorStep(gen TextGenerator, catalog Catalog, log *logger.Logger) *ProductSelectorStep {
	return &ProductSelectorStep{gen: gen, catalog: catalog, log: log}
}

func (s *ProductSelectorStep) ID() engine.StepID { return engine.StepProductSelector }

func (s *ProductSelectorStep) Run(ctx context.Context, st *engine.State) {
	query, quantity := s.parseRequest(ctx, st.UserMessage)
	if query == "" {
		st.AssistantResponse = "What piece of furniture are you looking for? We make tables, chairs, cabinets, beds, and more."
		return
	}

	hits, err := s.catalog.Search(ctx, query, 5)
	if err != nil {
		st.PendingIssue = fmt.Sprintf("catalog lookup failed: %v", err)
		return
	}

	if len(hits) == 0 {
		st.AssistantResponse = fmt.Sprintf("I couldn't find %q in our catalog. Could you describe the piece differently?", query)
		return
	}

	chosen := hits[0]
	st.SetProduct(engine.Product{
		ID:             chosen.ID,
		Name:           chosen.Name,
		Category:       chosen.Category,
		BasePriceCents: chosen.BasePriceCents,
	})
	st.Quantity = quantity

	st.AssistantResponse = fmt.Sprintf(
		"Great choice! The %s starts at %s. Let me ask a few questions so we build it exactly how you want it.",
		chosen.Name, formatCents(chosen.BasePriceCents))
}

// parseRequest extracts the product description and quantity from the
// message. The raw message serves as the search query when the LLM fails.
func (s *ProductSelectorStep) parseRequest(ctx context.Context, message string) (string, int) {
	req, err := buildRequest("product_selector", map[string]string{"Message": message})
	if err != nil {
		s.log.CollaboratorError("prompts", "product_selector", err)
		return strings.TrimSpace(message), 1
	}

	var result struct {
		Product  string `json:"product"`
		Quantity int    `json:"quantity"`
	}
	if err := generateJSON(ctx, s.gen, req, &result); err != nil {
		s.log.CollaboratorError(s.gen.Name(), "parse_product_request", err)
		return strings.TrimSpace(message), 1
	}

	quantity := result.Quantity
	if quantity < 1 {
		quantity = 1
	}
	return strings.TrimSpace(result.Product), quantity
}
