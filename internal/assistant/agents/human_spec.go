package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/engine"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
)

// defaultSpecQuestions cover any product when question generation fails.
var defaultSpecQuestions = []string{
	"What dimensions do you need?",
	"Which material and color would you prefer?",
	"Any special requirements, like storage, finish, or style details?",
}

// SpecIntakeStep gathers the customer's build preferences in two phases:
// first it asks the questions, then it records the answers. The dispatcher
// sends the turn here as long as no answers have been captured, so a spec
// that exists but is empty gets asked again rather than skipped.
type SpecIntakeStep struct {
	gen TextGenerator
	log *logger.Logger
}

// NewSpecIntakeStep creates the specification intake step.
func NewSpecIntakeStep(gen TextGenerator, log *logger.Logger) *SpecIntakeStep {
	return &SpecIntakeStep{gen: gen, log: log}
}

func (s *SpecIntakeStep) ID() engine.StepID { return engine.StepSpecIntake }

func (s *SpecIntakeStep) Run(ctx context.Context, st *engine.State) {
	if !st.SpecQuestionAsked {
		s.askQuestions(ctx, st)
		return
	}
	s.recordAnswers(ctx, st)
}

func (s *SpecIntakeStep) askQuestions(ctx context.Context, st *engine.State) {
	questions := defaultSpecQuestions

	req, err := buildRequest("spec_questions", map[string]string{
		"Product":  st.SelectedProduct.Name,
		"Category": st.SelectedProduct.Category,
	})
	if err == nil {
		var result struct {
			Questions []string `json:"questions"`
		}
		if genErr := generateJSON(ctx, s.gen, req, &result); genErr == nil && len(result.Questions) > 0 {
			questions = result.Questions
		} else if genErr != nil {
			s.log.CollaboratorError(s.gen.Name(), "generate_spec_questions", genErr)
		}
	}

	st.HumanSpec = &engine.HumanSpec{Questions: questions}
	st.SpecQuestionAsked = true

	var sb strings.Builder
	fmt.Fprintf(&sb, "To build your %s just right, I have a few questions:\n", st.SelectedProduct.Name)
	for i, q := range questions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, q)
	}
	st.AssistantResponse = sb.String()
}

func (s *SpecIntakeStep) recordAnswers(ctx context.Context, st *engine.State) {
	answer := strings.TrimSpace(st.UserMessage)
	if answer == "" {
		st.AssistantResponse = "Could you tell me a bit about how you'd like it built?"
		return
	}

	if st.HumanSpec == nil {
		st.HumanSpec = &engine.HumanSpec{Questions: defaultSpecQuestions}
	}
	if st.HumanSpec.RawAnswers == nil {
		st.HumanSpec.RawAnswers = make(map[string]string)
	}
	st.HumanSpec.RawAnswers[fmt.Sprintf("turn_%d", st.TurnCount)] = answer

	st.HumanSpec.Summary = s.summarize(ctx, st)
	st.AssistantResponse = "Perfect, I've noted your preferences. Give me a moment to work out the technical details."
}

func (s *SpecIntakeStep) summarize(ctx context.Context, st *engine.State) string {
	var answers strings.Builder
	for key, value := range st.HumanSpec.RawAnswers {
		fmt.Fprintf(&answers, "%s: %s\n", key, value)
	}

	req, err := buildRequest("spec_summary", map[string]string{
		"Product":   st.SelectedProduct.Name,
		"Questions": strings.Join(st.HumanSpec.Questions, "\n"),
		"Answers":   answers.String(),
	})
	if err != nil {
		s.log.CollaboratorError("prompts", "spec_summary", err)
		return answers.String()
	}

	summary, err := s.gen.Generate(ctx, req)
	if err != nil {
		s.log.CollaboratorError(s.gen.Name(), "summarize_spec", err)
		return answers.String()
	}
	return strings.TrimSpace(summary)
}
