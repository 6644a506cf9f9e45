package agents

import (
	"context"
	"fmt"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/engine"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
)

const supervisorApology = "I'm very sorry, I wasn't able to complete your order despite several attempts. " +
	"Please reach out to our support team and we'll sort it out right away."

// SupervisorStep recovers from pending issues. Every invocation counts
// against the session ceiling; once the ceiling is hit the workflow ends
// with an apology instead of looping forever. The pending issue is always
// cleared so the next turn routes back into the normal flow.
type SupervisorStep struct {
	gen      TextGenerator
	catalog  Catalog
	maxSteps int
	log      *logger.Logger
}

// NewSupervisorStep creates the recovery step.
func NewSupervisorStep(gen TextGenerator, catalog Catalog, maxSteps int, log *logger.Logger) *SupervisorStep {
	if maxSteps <= 0 {
		maxSteps = 10
	}
	return &SupervisorStep{gen: gen, catalog: catalog, maxSteps: maxSteps, log: log}
}

func (s *SupervisorStep) ID() engine.StepID { return engine.StepSupervisor }

func (s *SupervisorStep) Run(ctx context.Context, st *engine.State) {
	issue := st.PendingIssue
	st.PendingIssue = ""
	st.SupervisorSteps++

	s.log.Warn("supervisor invoked",
		"session_id", st.SessionID, "issue", issue, "supervisor_steps", st.SupervisorSteps)

	if st.SupervisorSteps > s.maxSteps {
		// The order never happened, so WorkflowComplete stays false.
		// Terminated stops the engine from dispatching this workflow again.
		st.Terminated = true
		st.LastDecision = &engine.SupervisorDecision{Action: "end", Explanation: issue}
		st.AssistantResponse = supervisorApology
		s.log.Error("supervisor ceiling reached, ending workflow",
			"session_id", st.SessionID, "issue", issue)
		return
	}

	decision := s.decide(ctx, st, issue)
	st.LastDecision = &engine.SupervisorDecision{Action: decision.Action, Explanation: decision.Explanation}

	switch decision.Action {
	case "substitute":
		s.substitute(ctx, st, decision)
	case "clarify":
		s.clarify(st, decision)
	default:
		s.retry(st, decision)
	}
}

type supervisorPlan struct {
	Action          string `json:"action"`
	Explanation     string `json:"explanation"`
	SubstituteQuery string `json:"substitute_query"`
}

// decide asks the LLM how to recover. A failed call defaults to retry, the
// cheapest action that cannot make the state worse.
func (s *SupervisorStep) decide(ctx context.Context, st *engine.State, issue string) supervisorPlan {
	fallback := supervisorPlan{
		Action:      "retry",
		Explanation: "Something went wrong on our side, but it's worth another try.",
	}

	productName := ""
	if st.SelectedProduct != nil {
		productName = st.SelectedProduct.Name
	}

	req, err := buildRequest("supervisor", map[string]interface{}{
		"Issue":    issue,
		"Product":  productName,
		"Quantity": st.Quantity,
		"History":  historyExcerpt(st.History, 6),
	})
	if err != nil {
		s.log.CollaboratorError("prompts", "supervisor", err)
		return fallback
	}

	var plan supervisorPlan
	if err := generateJSON(ctx, s.gen, req, &plan); err != nil {
		s.log.CollaboratorError(s.gen.Name(), "supervisor_decision", err)
		return fallback
	}

	switch plan.Action {
	case "retry", "substitute", "clarify":
		return plan
	}
	return fallback
}

func (s *SupervisorStep) retry(st *engine.State, plan supervisorPlan) {
	explanation := plan.Explanation
	if explanation == "" {
		explanation = "We hit a small snag, but I've reset things."
	}
	st.AssistantResponse = explanation + " Let's pick up where we left off."
}

// substitute swaps in an alternative product, which invalidates every
// downstream artifact through SetProduct. No catalog hit means the customer
// decides instead.
func (s *SupervisorStep) substitute(ctx context.Context, st *engine.State, plan supervisorPlan) {
	query := plan.SubstituteQuery
	if query == "" && st.SelectedProduct != nil {
		query = st.SelectedProduct.Category
	}

	hits, err := s.catalog.Search(ctx, query, 3)
	if err != nil || len(hits) == 0 {
		if err != nil {
			s.log.CollaboratorError("catalog", "substitute_search", err)
		}
		s.clarify(st, plan)
		return
	}

	chosen := hits[0]
	st.SetProduct(engine.Product{
		ID:             chosen.ID,
		Name:           chosen.Name,
		Category:       chosen.Category,
		BasePriceCents: chosen.BasePriceCents,
	})

	st.AssistantResponse = fmt.Sprintf(
		"%s How about the %s instead? It starts at %s. I'll just need to go over the details with you again.",
		plan.Explanation, chosen.Name, formatCents(chosen.BasePriceCents))
}

func (s *SupervisorStep) clarify(st *engine.State, plan supervisorPlan) {
	explanation := plan.Explanation
	if explanation == "" {
		explanation = "I ran into a problem with that request."
	}
	st.AssistantResponse = explanation + " Could you tell me more about what you'd like, so I can find a better option?"
}
