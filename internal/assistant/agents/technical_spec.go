package agents

import (
	"context"
	"fmt"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/engine"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
)

// TechnicalSpecStep converts the customer's preferences into a buildable
// specification. This step needs the LLM to produce something the workshop
// and the pricing step can act on, so a failure raises a pending issue.
type TechnicalSpecStep struct {
	gen TextGenerator
	log *logger.Logger
}

// NewTechnicalSpecStep creates the technical specification step.
func NewTechnicalSpecStep(gen TextGenerator, log *logger.Logger) *TechnicalSpecStep {
	return &TechnicalSpecStep{gen: gen, log: log}
}

func (s *TechnicalSpecStep) ID() engine.StepID { return engine.StepTechnicalSpec }

func (s *TechnicalSpecStep) Run(ctx context.Context, st *engine.State) {
	preferences := st.HumanSpec.Summary
	if preferences == "" {
		for _, answer := range st.HumanSpec.RawAnswers {
			preferences += answer + "\n"
		}
	}

	req, err := buildRequest("technical_spec", map[string]string{
		"Product":     st.SelectedProduct.Name,
		"Category":    st.SelectedProduct.Category,
		"Preferences": preferences,
	})
	if err != nil {
		st.PendingIssue = fmt.Sprintf("technical specification failed: %v", err)
		return
	}

	var result struct {
		Dimensions string            `json:"dimensions"`
		Material   string            `json:"material"`
		Finish     string            `json:"finish"`
		Details    map[string]string `json:"details"`
		Summary    string            `json:"summary"`
	}
	if err := generateJSON(ctx, s.gen, req, &result); err != nil {
		s.log.CollaboratorError(s.gen.Name(), "generate_technical_spec", err)
		st.PendingIssue = fmt.Sprintf("technical specification failed: %v", err)
		return
	}

	if result.Summary == "" {
		st.PendingIssue = "technical specification failed: model returned an empty summary"
		return
	}

	st.TechnicalSpec = &engine.TechnicalSpec{
		Dimensions: result.Dimensions,
		Material:   result.Material,
		Finish:     result.Finish,
		Details:    result.Details,
		Summary:    result.Summary,
	}

	st.AssistantResponse = fmt.Sprintf(
		"Here's the build plan for your %s:\n%s\nShall we look at pricing and availability?",
		st.SelectedProduct.Name, result.Summary)
}
