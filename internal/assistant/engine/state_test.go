package engine

import (
	"testing"

	"github.com/google/uuid"
)

func TestSetProductInvalidatesDerivedState(t *testing.T) {
	st := readyForOrder()
	st.SetProduct(Product{ID: uuid.New(), Name: "Windsor Chair", Category: "chairs", BasePriceCents: 18900})

	if st.SelectedProduct.Name != "Windsor Chair" {
		t.Fatalf("expected new product, got %s", st.SelectedProduct.Name)
	}
	if st.HumanSpec != nil || st.TechnicalSpec != nil {
		t.Fatal("expected specs to be cleared on product change")
	}
	if st.PricingSummary != nil || st.StockStatus != nil {
		t.Fatal("expected pricing and stock to be cleared on product change")
	}
	if st.SpecQuestionAsked {
		t.Fatal("expected spec questions to be re-asked for the new product")
	}
	if st.ConfirmationRequested || st.ConfirmedByUser {
		t.Fatal("expected confirmation flags to be cleared on product change")
	}
	if st.Customer == nil {
		t.Fatal("expected customer to survive a product change")
	}
}

func TestResetWorkflowPreservesIdentityAndHistory(t *testing.T) {
	st := readyForOrder()
	st.AppendUser("I'd like a table")
	st.AppendAssistant("Great choice!")
	st.OrderID = uuid.New()
	st.ReceiptReference = "RCP-12345678"
	st.SupervisorSteps = 3
	st.PendingIssue = "something broke"
	st.WorkflowComplete = true

	customer := st.Customer
	historyLen := len(st.History)

	st.ResetWorkflow()

	if st.Customer != customer {
		t.Fatal("expected customer to survive a workflow reset")
	}
	if len(st.History) != historyLen {
		t.Fatal("expected history to survive a workflow reset")
	}
	if st.SelectedProduct != nil || st.HumanSpec != nil || st.TechnicalSpec != nil ||
		st.PricingSummary != nil || st.StockStatus != nil {
		t.Fatal("expected all order progress to be cleared")
	}
	if st.OrderID != uuid.Nil || st.ReceiptReference != "" {
		t.Fatal("expected order references to be cleared")
	}
	if st.SupervisorSteps != 0 || st.PendingIssue != "" || st.WorkflowComplete {
		t.Fatal("expected recovery bookkeeping to be cleared")
	}
}

func TestHumanSpecComplete(t *testing.T) {
	tests := []struct {
		name string
		spec *HumanSpec
		want bool
	}{
		{"nil spec", nil, false},
		{"empty answers", &HumanSpec{RawAnswers: map[string]string{}}, false},
		{"questions only", &HumanSpec{Questions: []string{"What size?"}}, false},
		{"one answer", &HumanSpec{RawAnswers: map[string]string{"turn_2": "180cm"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.Complete(); got != tt.want {
				t.Fatalf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}
