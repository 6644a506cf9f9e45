package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/engine"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
)

// ConfirmationStep presents the order summary and waits for an explicit yes.
// The first visit renders the summary; subsequent visits interpret the
// customer's reply. Discount requests are handled inline before re-asking.
type ConfirmationStep struct {
	discount *DiscountAgent
	log      *logger.Logger
}

// NewConfirmationStep creates the confirmation gate step.
func NewConfirmationStep(discount *DiscountAgent, log *logger.Logger) *ConfirmationStep {
	return &ConfirmationStep{discount: discount, log: log}
}

func (s *ConfirmationStep) ID() engine.StepID { return engine.StepConfirmation }

func (s *ConfirmationStep) Run(ctx context.Context, st *engine.State) {
	if !st.ConfirmationRequested {
		st.ConfirmationRequested = true
		st.AssistantResponse = s.summary(st)
		return
	}

	if s.discount != nil && wantsDiscount(st.UserMessage) {
		s.discount.Apply(ctx, st)
		st.AssistantResponse += "\n\n" + s.summary(st)
		return
	}

	if isAffirmative(st.UserMessage) {
		st.ConfirmedByUser = true
		return
	}

	st.AssistantResponse = "No rush! Reply \"yes\" to place the order, or tell me what you'd like to change.\n\n" + s.summary(st)
}

func (s *ConfirmationStep) summary(st *engine.State) string {
	var sb strings.Builder
	sb.WriteString("Here's your order summary:\n")
	fmt.Fprintf(&sb, "- Product: %s x%d\n", st.SelectedProduct.Name, st.PricingSummary.Quantity)
	if st.TechnicalSpec != nil && st.TechnicalSpec.Summary != "" {
		fmt.Fprintf(&sb, "- Specification: %s\n", st.TechnicalSpec.Summary)
	}
	fmt.Fprintf(&sb, "- Pricing: %s\n", st.PricingSummary.Breakdown)
	fmt.Fprintf(&sb, "- Total: %s\n", formatCents(st.PricingSummary.TotalCents))
	if st.StockStatus != nil {
		fmt.Fprintf(&sb, "- Delivery: about %d days\n", st.StockStatus.LeadTimeDays)
	}
	sb.WriteString("\nShall I place the order? (yes / no)")
	return sb.String()
}

func isAffirmative(message string) bool {
	normalized := strings.ToLower(strings.TrimSpace(message))
	normalized = strings.TrimRight(normalized, ".!?")
	switch normalized {
	case "yes", "y", "yes please", "confirm", "confirmed", "ok", "okay", "sure", "go ahead", "place the order", "place it", "do it":
		return true
	}
	return false
}

func wantsDiscount(message string) bool {
	normalized := strings.ToLower(message)
	for _, keyword := range []string{"discount", "cheaper", "deal", "lower price", "price break"} {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	return false
}
