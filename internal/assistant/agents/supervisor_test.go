package agents

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestSupervisorAlwaysClearsPendingIssue(t *testing.T) {
	step := NewSupervisorStep(genFailing(), &fakeCatalog{}, 10, testLog)

	st := stateReadyForPricing()
	st.PendingIssue = "stock check failed for Oak Dining Table: timeout"

	step.Run(context.Background(), st)

	if st.PendingIssue != "" {
		t.Fatalf("expected pending issue to be cleared, got %q", st.PendingIssue)
	}
	if st.SupervisorSteps != 1 {
		t.Fatalf("expected supervisor step count 1, got %d", st.SupervisorSteps)
	}
}

func TestSupervisorCeilingTerminatesWorkflow(t *testing.T) {
	step := NewSupervisorStep(genFailing(), &fakeCatalog{}, 3, testLog)

	st := stateReadyForPricing()
	st.PendingIssue = "order creation failed: still broken"
	st.SupervisorSteps = 3

	step.Run(context.Background(), st)

	if !st.Terminated {
		t.Fatal("expected the workflow to terminate at the ceiling")
	}
	if st.WorkflowComplete {
		t.Fatal("a force-terminated workflow never completed; the flag must stay false")
	}
	if st.AssistantResponse != supervisorApology {
		t.Fatalf("expected terminal apology, got %q", st.AssistantResponse)
	}
	if st.PendingIssue != "" {
		t.Fatal("expected pending issue to be cleared even at the ceiling")
	}
	if st.LastDecision == nil || st.LastDecision.Action != "end" {
		t.Fatalf("expected an end decision to be recorded, got %+v", st.LastDecision)
	}
}

func TestSupervisorCeilingAtDefaultLimit(t *testing.T) {
	step := NewSupervisorStep(genFailing(), &fakeCatalog{}, 10, testLog)

	st := stateReadyForPricing()
	st.PendingIssue = "order creation failed: still broken"
	st.SupervisorSteps = 10

	step.Run(context.Background(), st)

	if !st.Terminated {
		t.Fatal("expected the eleventh invocation to terminate the workflow")
	}
	if st.WorkflowComplete {
		t.Fatal("expected workflow_complete to remain false on force-termination")
	}
}

func TestSupervisorModelFailureDefaultsToRetry(t *testing.T) {
	step := NewSupervisorStep(genFailing(), &fakeCatalog{}, 10, testLog)

	st := stateReadyForPricing()
	st.PendingIssue = "technical specification failed: timeout"

	step.Run(context.Background(), st)

	if st.LastDecision == nil || st.LastDecision.Action != "retry" {
		t.Fatalf("expected retry fallback, got %+v", st.LastDecision)
	}
	if st.AssistantResponse == "" {
		t.Fatal("expected a reassuring response")
	}
	if st.WorkflowComplete {
		t.Fatal("a single recovery must not end the workflow")
	}
}

func TestSupervisorSubstituteSwapsProduct(t *testing.T) {
	gen := genReturning(`{"action": "substitute", "explanation": "The oak table is sold out.", "substitute_query": "walnut table"}`)
	substitute := CatalogProduct{ID: uuid.New(), Name: "Walnut Coffee Table", Category: "tables", BasePriceCents: 44900}
	catalog := &fakeCatalog{hits: []CatalogProduct{substitute}}
	step := NewSupervisorStep(gen, catalog, 10, testLog)

	st := stateReadyForOrder()
	st.PendingIssue = "product unavailable: Oak Dining Table (requested 1, available 0)"

	step.Run(context.Background(), st)

	if st.SelectedProduct.Name != "Walnut Coffee Table" {
		t.Fatalf("expected the substitute product, got %s", st.SelectedProduct.Name)
	}
	if catalog.searchedFor != "walnut table" {
		t.Fatalf("expected the substitute query to drive the search, got %q", catalog.searchedFor)
	}
	if st.TechnicalSpec != nil || st.PricingSummary != nil || st.StockStatus != nil {
		t.Fatal("expected downstream artifacts to be invalidated by the substitution")
	}
	if st.ConfirmedByUser || st.ConfirmationRequested {
		t.Fatal("expected confirmation to be reset for the new product")
	}
}

func TestSupervisorSubstituteWithoutHitsClarifies(t *testing.T) {
	gen := genReturning(`{"action": "substitute", "explanation": "Out of stock.", "substitute_query": "unobtainium desk"}`)
	step := NewSupervisorStep(gen, &fakeCatalog{}, 10, testLog)

	st := stateReadyForOrder()
	original := st.SelectedProduct
	st.PendingIssue = "product unavailable: Oak Dining Table (requested 1, available 0)"

	step.Run(context.Background(), st)

	if st.SelectedProduct != original {
		t.Fatal("expected the original product to stay when no substitute was found")
	}
	if st.AssistantResponse == "" {
		t.Fatal("expected a clarifying question")
	}
}

func TestSupervisorUnknownActionDefaultsToRetry(t *testing.T) {
	gen := genReturning(`{"action": "escalate_to_human", "explanation": "beats me"}`)
	step := NewSupervisorStep(gen, &fakeCatalog{}, 10, testLog)

	st := stateReadyForPricing()
	st.PendingIssue = "catalog lookup failed: timeout"

	step.Run(context.Background(), st)

	if st.LastDecision == nil || st.LastDecision.Action != "retry" {
		t.Fatalf("expected unknown actions to fall back to retry, got %+v", st.LastDecision)
	}
}
