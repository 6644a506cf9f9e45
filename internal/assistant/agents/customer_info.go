package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/engine"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
)

// CustomerInfoStep collects the customer's name and phone number before the
// workflow moves on. Extraction failures re-ask rather than raising an issue;
// the customer can always just type their details again.
type CustomerInfoStep struct {
	gen       TextGenerator
	customers Customers
	memories  Memories
	log       *logger.Logger
}

// NewCustomerInfoStep creates the customer intake step. memories may be nil;
// returning customers then get the standard greeting.
func NewCustomerInfoStep(gen TextGenerator, customers Customers, memories Memories, log *logger.Logger) *CustomerInfoStep {
	return &CustomerInfoStep{gen: gen, customers: customers, memories: memories, log: log}
}

func (s *CustomerInfoStep) ID() engine.StepID { return engine.StepCustomerInfo }

func (s *CustomerInfoStep) Run(ctx context.Context, st *engine.State) {
	details, err := s.extract(ctx, st)
	if err != nil {
		s.log.CollaboratorError(s.gen.Name(), "extract_customer_info", err)
		st.AssistantResponse = "Happy to set up your order! Could you share your name and phone number?"
		return
	}

	var missing []string
	if details.Name == "" {
		missing = append(missing, "your name")
	}
	if details.Phone == "" {
		missing = append(missing, "a phone number")
	}
	if len(missing) > 0 {
		st.AssistantResponse = fmt.Sprintf("Almost there! I still need %s to set up your order.", strings.Join(missing, " and "))
		return
	}

	registered, err := s.customers.Register(ctx, details)
	if err != nil {
		st.PendingIssue = fmt.Sprintf("customer registration failed: %v", err)
		return
	}

	st.Customer = &engine.Customer{
		ID:      registered.ID,
		Name:    registered.Name,
		Phone:   registered.Phone,
		Email:   registered.Email,
		Address: registered.Address,
	}

	if s.memories != nil {
		if history := s.memories.History(ctx, registered.ID, 1); len(history) > 0 {
			st.AssistantResponse = fmt.Sprintf("Welcome back, %s! Last time: %s\nWhat would you like to order today?",
				registered.Name, history[0])
			return
		}
	}
	st.AssistantResponse = fmt.Sprintf("Thanks %s! What would you like to order?", registered.Name)
}

func (s *CustomerInfoStep) extract(ctx context.Context, st *engine.State) (CustomerDetails, error) {
	req, err := buildRequest("customer_info", map[string]string{
		"History": historyExcerpt(st.History, 8),
		"Message": st.UserMessage,
	})
	if err != nil {
		return CustomerDetails{}, err
	}

	var result struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Email   string `json:"email"`
		Address string `json:"address"`
	}
	if err := generateJSON(ctx, s.gen, req, &result); err != nil {
		return CustomerDetails{}, err
	}

	return CustomerDetails{
		Name:    strings.TrimSpace(result.Name),
		Phone:   strings.TrimSpace(result.Phone),
		Email:   strings.TrimSpace(result.Email),
		Address: strings.TrimSpace(result.Address),
	}, nil
}
