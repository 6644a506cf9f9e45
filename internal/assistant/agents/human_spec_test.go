package agents

import (
	"context"
	"strings"
	"testing"
)

func TestSpecIntakeAsksQuestionsFirst(t *testing.T) {
	gen := genReturning(`{"questions": ["What dimensions?", "Which wood?", "Any storage needs?"]}`)
	step := NewSpecIntakeStep(gen, testLog)

	st := stateWithProduct()
	st.UserMessage = "I'd like a dining table"

	step.Run(context.Background(), st)

	if !st.SpecQuestionAsked {
		t.Fatal("expected the questions-asked flag to be set")
	}
	if st.HumanSpec == nil || len(st.HumanSpec.Questions) != 3 {
		t.Fatalf("expected three questions, got %+v", st.HumanSpec)
	}
	if st.HumanSpec.Complete() {
		t.Fatal("asking questions must not complete the spec")
	}
	if !strings.Contains(st.AssistantResponse, "1.") {
		t.Fatalf("expected a numbered question list: %s", st.AssistantResponse)
	}
}

func TestSpecIntakeQuestionGenerationFailureUsesDefaults(t *testing.T) {
	step := NewSpecIntakeStep(genFailing(), testLog)

	st := stateWithProduct()
	step.Run(context.Background(), st)

	if st.HumanSpec == nil || len(st.HumanSpec.Questions) != len(defaultSpecQuestions) {
		t.Fatalf("expected default questions on failure, got %+v", st.HumanSpec)
	}
}

func TestSpecIntakeRecordsAnswers(t *testing.T) {
	gen := genReturning("180cm oak table with a matte finish")
	step := NewSpecIntakeStep(gen, testLog)

	st := stateWithProduct()
	st.SpecQuestionAsked = true
	st.HumanSpec = specWithQuestions()
	st.TurnCount = 4
	st.UserMessage = "180cm long, oak, matte finish please"

	step.Run(context.Background(), st)

	if !st.HumanSpec.Complete() {
		t.Fatal("expected the spec to be complete after an answer")
	}
	if got := st.HumanSpec.RawAnswers["turn_4"]; got != "180cm long, oak, matte finish please" {
		t.Fatalf("expected the raw answer to be kept verbatim, got %q", got)
	}
	if st.HumanSpec.Summary != "180cm oak table with a matte finish" {
		t.Fatalf("unexpected summary: %q", st.HumanSpec.Summary)
	}
}

func TestSpecIntakeEmptyAnswerReasks(t *testing.T) {
	step := NewSpecIntakeStep(genFailing(), testLog)

	st := stateWithProduct()
	st.SpecQuestionAsked = true
	st.HumanSpec = specWithQuestions()
	st.UserMessage = "   "

	step.Run(context.Background(), st)

	if st.HumanSpec.Complete() {
		t.Fatal("an empty reply must not complete the spec")
	}
	if st.AssistantResponse == "" {
		t.Fatal("expected a re-ask")
	}
}

func TestSpecIntakeSummaryFailureKeepsRawAnswers(t *testing.T) {
	step := NewSpecIntakeStep(genFailing(), testLog)

	st := stateWithProduct()
	st.SpecQuestionAsked = true
	st.HumanSpec = specWithQuestions()
	st.TurnCount = 4
	st.UserMessage = "oak, 180cm"

	step.Run(context.Background(), st)

	if !st.HumanSpec.Complete() {
		t.Fatal("a failed summary must not lose the answers")
	}
	if !strings.Contains(st.HumanSpec.Summary, "oak, 180cm") {
		t.Fatalf("expected the raw answers as summary fallback, got %q", st.HumanSpec.Summary)
	}
}
