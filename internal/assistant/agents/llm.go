// Package agents implements the workflow steps and chat pipeline that drive
// a conversation turn. Each agent is a small unit with one responsibility;
// collaborator failures degrade into state the dispatcher can route on
// instead of aborting the turn.
package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/engine"
)

// GenerateRequest describes a single text-generation call.
type GenerateRequest struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
	JSONMode    bool
}

// TextGenerator is the LLM collaborator shared by all agents.
type TextGenerator interface {
	Name() string
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// generateJSON runs a JSON-mode generation and decodes the result into out.
// Code fences around the payload are tolerated since smaller models add them
// even when asked not to.
func generateJSON(ctx context.Context, gen TextGenerator, req GenerateRequest, out interface{}) error {
	req.JSONMode = true
	raw, err := gen.Generate(ctx, req)
	if err != nil {
		return err
	}

	cleaned := stripCodeFences(raw)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("decode %s response: %w", gen.Name(), err)
	}
	return nil
}

func stripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
	}
	return strings.TrimSpace(trimmed)
}

// historyExcerpt renders the last n history messages for prompt context.
func historyExcerpt(messages []engine.Message, n int) string {
	if len(messages) > n {
		messages = messages[len(messages)-n:]
	}
	var sb strings.Builder
	for _, m := range messages {
		fmt.Fprintf(&sb, "%s: %s\n", m.Role, m.Content)
	}
	return sb.String()
}
