package agents

import (
	"context"
	"fmt"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/engine"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
)

const maxDiscountPercent = 10

// DiscountAgent evaluates discount requests during confirmation. It may
// grant up to ten percent; anything the model suggests beyond that is
// clamped. A failed call grants nothing.
type DiscountAgent struct {
	gen TextGenerator
	log *logger.Logger
}

// NewDiscountAgent creates the discount agent.
func NewDiscountAgent(gen TextGenerator, log *logger.Logger) *DiscountAgent {
	return &DiscountAgent{gen: gen, log: log}
}

// Apply evaluates the request and, when granted, rewrites the pricing
// summary and sets the response explaining the outcome.
func (d *DiscountAgent) Apply(ctx context.Context, st *engine.State) {
	pricing := st.PricingSummary

	req, err := buildRequest("discount", map[string]interface{}{
		"Message":    st.UserMessage,
		"TotalCents": pricing.TotalCents,
		"Quantity":   pricing.Quantity,
	})
	if err != nil {
		d.log.CollaboratorError("prompts", "discount", err)
		st.AssistantResponse = "I'm not able to offer a discount on this order."
		return
	}

	var result struct {
		DiscountPercent int    `json:"discount_percent"`
		Reason          string `json:"reason"`
	}
	if err := generateJSON(ctx, d.gen, req, &result); err != nil {
		d.log.CollaboratorError(d.gen.Name(), "evaluate_discount", err)
		st.AssistantResponse = "I'm not able to offer a discount on this order."
		return
	}

	percent := result.DiscountPercent
	if percent <= 0 {
		st.AssistantResponse = "I'm afraid I can't discount this one, the price already reflects the custom build."
		return
	}
	if percent > maxDiscountPercent {
		percent = maxDiscountPercent
	}

	discounted := pricing.TotalCents - pricing.TotalCents*int64(percent)/100
	pricing.TotalCents = discounted
	pricing.Breakdown = fmt.Sprintf("%s %d%% discount applied (%s).", pricing.Breakdown, percent, result.Reason)

	st.AssistantResponse = fmt.Sprintf("Good news, I can take %d%% off. Your new total is %s.", percent, formatCents(discounted))
	d.log.Info("discount granted", "session_id", st.SessionID, "percent", percent)
}
