// Package engine implements the turn-based conversation orchestration core.
// A session's state is the single source of truth: every turn the dispatcher
// inspects the state shape and routes to exactly one step, so there is no
// instruction pointer to persist between turns.
package engine

import (
	"github.com/google/uuid"
)

// Mode is the conversation mode a session is locked into.
type Mode string

const (
	// ModeUnset means the intent gate has not classified the session yet.
	ModeUnset Mode = ""
	// ModeChat routes turns through the conversational pipeline.
	ModeChat Mode = "chat"
	// ModeWorkflow routes turns through the order-taking workflow.
	// Once set, the session never leaves this mode.
	ModeWorkflow Mode = "workflow"
)

// Role identifies the author of a history message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in the conversation history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Customer holds the contact details collected during the workflow.
type Customer struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Phone   string    `json:"phone"`
	Email   string    `json:"email,omitempty"`
	Address string    `json:"address,omitempty"`
}

// Product is the catalog item the customer is ordering.
type Product struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	BasePriceCents int64     `json:"basePriceCents"`
}

// HumanSpec captures the customer's answers to specification questions
// in their own words.
type HumanSpec struct {
	Questions  []string          `json:"questions,omitempty"`
	RawAnswers map[string]string `json:"rawAnswers,omitempty"`
	Summary    string            `json:"summary,omitempty"`
}

// Complete reports whether the customer has actually answered anything.
// A HumanSpec that exists but holds no answers is not complete; the intake
// step must run again rather than letting the workflow advance past it.
func (h *HumanSpec) Complete() bool {
	return h != nil && len(h.RawAnswers) > 0
}

// TechnicalSpec is the structured build specification derived from the
// customer's answers.
type TechnicalSpec struct {
	Dimensions string            `json:"dimensions,omitempty"`
	Material   string            `json:"material,omitempty"`
	Finish     string            `json:"finish,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
	Summary    string            `json:"summary"`
}

// PricingSummary is the quoted price for the configured product.
type PricingSummary struct {
	UnitPriceCents int64  `json:"unitPriceCents"`
	TotalCents     int64  `json:"totalCents"`
	Quantity       int    `json:"quantity"`
	Breakdown      string `json:"breakdown"`
	Fallback       bool   `json:"fallback,omitempty"`
}

// StockStatus is the availability check result for the selected product.
type StockStatus struct {
	InStock           bool   `json:"inStock"`
	QuantityAvailable int    `json:"quantityAvailable"`
	LeadTimeDays      int    `json:"leadTimeDays"`
	Message           string `json:"message,omitempty"`
}

// SupervisorDecision records the last recovery action taken.
type SupervisorDecision struct {
	Action      string   `json:"action"`
	Substitute  *Product `json:"substitute,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// State is the complete session state persisted between turns.
type State struct {
	SessionID        uuid.UUID `json:"sessionId"`
	Mode             Mode      `json:"mode"`
	TurnCount        int       `json:"turnCount"`
	SupervisorSteps  int       `json:"supervisorSteps"`
	WorkflowComplete bool      `json:"workflowComplete"`

	// Terminated marks a workflow the supervisor gave up on. The order was
	// never placed, so WorkflowComplete stays false; the flag only stops
	// further dispatching into the workflow.
	Terminated bool `json:"terminated,omitempty"`

	UserMessage       string    `json:"userMessage,omitempty"`
	AssistantResponse string    `json:"assistantResponse,omitempty"`
	History           []Message `json:"history,omitempty"`

	RefinedQuery     string `json:"refinedQuery,omitempty"`
	RetrievedContext string `json:"retrievedContext,omitempty"`
	ReasoningOutput  string `json:"reasoningOutput,omitempty"`

	Customer        *Customer `json:"customer,omitempty"`
	SelectedProduct *Product  `json:"selectedProduct,omitempty"`
	Quantity        int       `json:"quantity,omitempty"`

	SpecQuestionAsked bool            `json:"specQuestionAsked,omitempty"`
	HumanSpec         *HumanSpec      `json:"humanSpec,omitempty"`
	TechnicalSpec     *TechnicalSpec  `json:"technicalSpec,omitempty"`
	PricingSummary    *PricingSummary `json:"pricingSummary,omitempty"`
	StockStatus       *StockStatus    `json:"stockStatus,omitempty"`

	ConfirmationRequested bool `json:"confirmationRequested,omitempty"`
	ConfirmedByUser       bool `json:"confirmedByUser,omitempty"`

	OrderID          uuid.UUID `json:"orderId,omitempty"`
	ReceiptReference string    `json:"receiptReference,omitempty"`
	ReceiptText      string    `json:"receiptText,omitempty"`

	PendingIssue string              `json:"pendingIssue,omitempty"`
	LastDecision *SupervisorDecision `json:"lastDecision,omitempty"`
}

// NewState creates the initial state for a session.
func NewState(sessionID uuid.UUID) *State {
	return &State{SessionID: sessionID}
}

// SetProduct selects a product and atomically invalidates everything derived
// from the previous selection. Specs, pricing and stock belong to one product;
// carrying them across a substitution would quote the wrong item.
func (s *State) SetProduct(p Product) {
	s.SelectedProduct = &p
	s.SpecQuestionAsked = false
	s.HumanSpec = nil
	s.TechnicalSpec = nil
	s.PricingSummary = nil
	s.StockStatus = nil
	s.ConfirmationRequested = false
	s.ConfirmedByUser = false
}

// ResetWorkflow clears all order progress while preserving the customer's
// identity and the conversation history.
func (s *State) ResetWorkflow() {
	s.SelectedProduct = nil
	s.Quantity = 0
	s.SpecQuestionAsked = false
	s.HumanSpec = nil
	s.TechnicalSpec = nil
	s.PricingSummary = nil
	s.StockStatus = nil
	s.ConfirmationRequested = false
	s.ConfirmedByUser = false
	s.OrderID = uuid.Nil
	s.ReceiptReference = ""
	s.ReceiptText = ""
	s.PendingIssue = ""
	s.LastDecision = nil
	s.SupervisorSteps = 0
	s.WorkflowComplete = false
	s.Terminated = false
}

// AppendUser records a user message in the history.
func (s *State) AppendUser(content string) {
	s.History = append(s.History, Message{Role: RoleUser, Content: content})
}

// AppendAssistant records an assistant message in the history.
func (s *State) AppendAssistant(content string) {
	s.History = append(s.History, Message{Role: RoleAssistant, Content: content})
}
