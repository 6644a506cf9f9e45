package agents

import (
	"context"
	"fmt"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/engine"
)

// IntentClassifier decides whether a message opens an order workflow.
type IntentClassifier struct {
	gen TextGenerator
}

// NewIntentClassifier creates the intent gate.
func NewIntentClassifier(gen TextGenerator) *IntentClassifier {
	return &IntentClassifier{gen: gen}
}

// Compile-time check against the engine contract.
var _ engine.IntentClassifier = (*IntentClassifier)(nil)

// Classify returns the conversation mode for the message. Errors propagate
// to the engine, which defaults the session to chat.
func (c *IntentClassifier) Classify(ctx context.Context, message string, history []engine.Message) (engine.Mode, error) {
	req, err := buildRequest("intent", map[string]string{
		"History": historyExcerpt(history, 6),
		"Message": message,
	})
	if err != nil {
		return engine.ModeChat, err
	}

	var result struct {
		Intent string `json:"intent"`
	}
	if err := generateJSON(ctx, c.gen, req, &result); err != nil {
		return engine.ModeChat, fmt.Errorf("classify intent: %w", err)
	}

	if result.Intent == "order" {
		return engine.ModeWorkflow, nil
	}
	return engine.ModeChat, nil
}
