package agents

import (
	"context"
	"strings"
	"testing"
)

func TestConfirmationFirstVisitPresentsSummary(t *testing.T) {
	step := NewConfirmationStep(nil, testLog)

	st := stateReadyForOrder()
	st.ConfirmationRequested = false
	st.ConfirmedByUser = false

	step.Run(context.Background(), st)

	if !st.ConfirmationRequested {
		t.Fatal("expected confirmation to be marked as requested")
	}
	if st.ConfirmedByUser {
		t.Fatal("presenting the summary must not confirm the order")
	}
	for _, want := range []string{"Oak Dining Table", "$899.00", "yes"} {
		if !strings.Contains(st.AssistantResponse, want) {
			t.Fatalf("summary missing %q: %s", want, st.AssistantResponse)
		}
	}
}

func TestConfirmationAffirmativeAnswers(t *testing.T) {
	for _, message := range []string{"yes", "Yes please", "confirm", "OK!", "go ahead", "place the order"} {
		t.Run(message, func(t *testing.T) {
			step := NewConfirmationStep(nil, testLog)

			st := stateReadyForOrder()
			st.ConfirmedByUser = false
			st.UserMessage = message

			step.Run(context.Background(), st)

			if !st.ConfirmedByUser {
				t.Fatalf("expected %q to confirm the order", message)
			}
		})
	}
}

func TestConfirmationNonAffirmativeReasks(t *testing.T) {
	step := NewConfirmationStep(nil, testLog)

	st := stateReadyForOrder()
	st.ConfirmedByUser = false
	st.UserMessage = "what was the lead time again?"

	step.Run(context.Background(), st)

	if st.ConfirmedByUser {
		t.Fatal("an ambiguous reply must not confirm the order")
	}
	if !strings.Contains(st.AssistantResponse, "order summary") {
		t.Fatalf("expected the summary to be re-presented: %s", st.AssistantResponse)
	}
}

func TestConfirmationDiscountGrantedAndClamped(t *testing.T) {
	gen := genReturning(`{"discount_percent": 25, "reason": "loyal customer"}`)
	step := NewConfirmationStep(NewDiscountAgent(gen, testLog), testLog)

	st := stateReadyForOrder()
	st.ConfirmedByUser = false
	st.UserMessage = "any chance of a discount?"

	step.Run(context.Background(), st)

	if st.ConfirmedByUser {
		t.Fatal("a discount request must not confirm the order")
	}
	want := int64(89900 - 89900/10)
	if st.PricingSummary.TotalCents != want {
		t.Fatalf("expected discount clamped to 10%%, total %d, got %d", want, st.PricingSummary.TotalCents)
	}
	if !strings.Contains(st.AssistantResponse, "10%") {
		t.Fatalf("expected the granted percentage in the response: %s", st.AssistantResponse)
	}
}

func TestConfirmationDiscountModelFailureGrantsNothing(t *testing.T) {
	step := NewConfirmationStep(NewDiscountAgent(genFailing(), testLog), testLog)

	st := stateReadyForOrder()
	st.ConfirmedByUser = false
	st.UserMessage = "can you make it cheaper?"

	step.Run(context.Background(), st)

	if st.PricingSummary.TotalCents != 89900 {
		t.Fatalf("expected the total to stay unchanged, got %d", st.PricingSummary.TotalCents)
	}
}

func TestConfirmationDiscountDeclinedByModel(t *testing.T) {
	gen := genReturning(`{"discount_percent": 0, "reason": "already at cost"}`)
	step := NewConfirmationStep(NewDiscountAgent(gen, testLog), testLog)

	st := stateReadyForOrder()
	st.ConfirmedByUser = false
	st.UserMessage = "is there a deal on this?"

	step.Run(context.Background(), st)

	if st.PricingSummary.TotalCents != 89900 {
		t.Fatalf("expected no discount, got total %d", st.PricingSummary.TotalCents)
	}
}
