package engine

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/code-YK/WoodWorks-Ai/platform/logger"
)

// IntentClassifier decides whether a session is casual conversation or an
// order-taking workflow.
type IntentClassifier interface {
	Classify(ctx context.Context, message string, history []Message) (Mode, error)
}

// Config assembles an Engine.
type Config struct {
	Classifier         IntentClassifier
	WorkflowSteps      []Step
	ChatPipeline       []Step
	MaxSupervisorSteps int
	Logger             *logger.Logger
}

// Engine runs one conversation turn at a time. It owns no session storage;
// callers load the state, invoke a turn method and persist the result.
type Engine struct {
	classifier         IntentClassifier
	steps              map[StepID]Step
	chat               []Step
	maxSupervisorSteps int
	log                *logger.Logger
}

// New creates an engine from the given configuration.
func New(cfg Config) *Engine {
	steps := make(map[StepID]Step, len(cfg.WorkflowSteps))
	for _, step := range cfg.WorkflowSteps {
		steps[step.ID()] = step
	}

	maxSteps := cfg.MaxSupervisorSteps
	if maxSteps <= 0 {
		maxSteps = 10
	}

	return &Engine{
		classifier:         cfg.Classifier,
		steps:              steps,
		chat:               cfg.ChatPipeline,
		maxSupervisorSteps: maxSteps,
		log:                cfg.Logger,
	}
}

// MaxSupervisorSteps returns the recovery ceiling for a session.
func (e *Engine) MaxSupervisorSteps() int {
	return e.maxSupervisorSteps
}

const (
	responseEmptyMessage     = "I didn't catch that. Could you say it again?"
	responseCancelled        = "No problem, I've cancelled the order. Your details are saved if you'd like to start again."
	responseNothingToConfirm = "There's nothing awaiting your confirmation right now."
	responseOrderComplete    = "Your order is all set. Is there anything else I can help you with?"
	responseChatApology      = "I'm sorry, I wasn't able to come up with a response. Could you rephrase that?"
)

// ProcessTurn handles one user message. Exactly one workflow step runs per
// turn, except the fulfillment chain which completes atomically once entered.
func (e *Engine) ProcessTurn(ctx context.Context, st *State, message string) {
	message = strings.TrimSpace(message)
	st.TurnCount++
	st.UserMessage = message
	st.AssistantResponse = ""

	if message == "" {
		st.AssistantResponse = responseEmptyMessage
		return
	}

	st.AppendUser(message)

	// Cancel phrases are only shortcuts inside an active workflow. For chat
	// and not-yet-classified sessions the message goes through the gate like
	// any other, so a first-turn "stop" is classified, not swallowed.
	if st.Mode == ModeWorkflow && isCancelMessage(message) {
		e.cancel(st)
		st.AppendAssistant(st.AssistantResponse)
		return
	}

	e.gate(ctx, st, message)

	if st.Mode == ModeWorkflow && !st.WorkflowComplete && !st.Terminated {
		e.runWorkflowTurn(ctx, st)
	} else {
		e.runChatPipeline(ctx, st)
	}

	if st.AssistantResponse == "" {
		st.AssistantResponse = fallbackResponse(st)
	}
	st.AppendAssistant(st.AssistantResponse)
}

// Confirm handles the typed confirmation action. It is only meaningful when
// the workflow has presented an order summary; otherwise it answers politely
// without touching the state.
func (e *Engine) Confirm(ctx context.Context, st *State) {
	st.TurnCount++
	st.AssistantResponse = ""

	if st.Mode != ModeWorkflow || !st.ConfirmationRequested || st.WorkflowComplete || st.Terminated {
		st.AssistantResponse = responseNothingToConfirm
		return
	}

	st.ConfirmedByUser = true
	st.AppendUser("Confirmed.")

	e.runWorkflowTurn(ctx, st)

	if st.AssistantResponse == "" {
		st.AssistantResponse = fallbackResponse(st)
	}
	st.AppendAssistant(st.AssistantResponse)
}

// Cancel handles the typed cancellation action. Order progress is discarded;
// the customer identity and conversation history survive.
func (e *Engine) Cancel(ctx context.Context, st *State) {
	st.TurnCount++
	e.cancel(st)
	st.AppendAssistant(st.AssistantResponse)
}

func (e *Engine) cancel(st *State) {
	st.ResetWorkflow()
	st.Mode = ModeChat
	st.AssistantResponse = responseCancelled
	e.log.Info("workflow cancelled", "session_id", st.SessionID)
}

// gate classifies the session mode. Once a session is locked into the
// workflow the classifier is never consulted again; a chat session is
// re-evaluated every turn so an order intent can surface mid-conversation.
// Classification failures default to chat.
func (e *Engine) gate(ctx context.Context, st *State, message string) {
	if st.Mode == ModeWorkflow {
		return
	}

	mode, err := e.classifier.Classify(ctx, message, st.History)
	if err != nil {
		e.log.CollaboratorError("intent_classifier", "classify", err)
		if st.Mode == ModeUnset {
			st.Mode = ModeChat
		}
		return
	}

	if mode == ModeWorkflow {
		st.Mode = ModeWorkflow
		e.log.Info("session locked into workflow", "session_id", st.SessionID, "turn", st.TurnCount)
		return
	}
	st.Mode = ModeChat
}

func (e *Engine) runWorkflowTurn(ctx context.Context, st *State) {
	routed := Dispatch(st)
	e.log.Dispatch(st.SessionID.String(), string(routed))

	if inFulfillmentChain(routed) {
		e.runFulfillment(ctx, st, routed)
		return
	}

	e.runStep(ctx, st, routed)

	// An affirmative answer at the confirmation step flows straight into
	// fulfillment, the same turn. Waiting for another message here would
	// leave a confirmed order unplaced.
	if routed == StepConfirmation && st.ConfirmedByUser && st.PendingIssue == "" {
		next := Dispatch(st)
		if inFulfillmentChain(next) {
			e.runFulfillment(ctx, st, next)
		}
	}
}

// runFulfillment executes the atomic tail starting at the routed link. A
// pending issue raised by any link stops the chain so the supervisor gets
// the next turn.
func (e *Engine) runFulfillment(ctx context.Context, st *State, from StepID) {
	started := false
	for _, id := range fulfillmentChain {
		if id == from {
			started = true
		}
		if !started {
			continue
		}
		if st.PendingIssue != "" {
			return
		}
		e.runStep(ctx, st, id)
	}
}

func (e *Engine) runStep(ctx context.Context, st *State, id StepID) {
	step, ok := e.steps[id]
	if !ok {
		e.log.Error("no step registered for route", "step", string(id), "session_id", st.SessionID)
		st.PendingIssue = "internal routing error: no handler for step " + string(id)
		return
	}

	e.log.StepEnter(st.SessionID.String(), string(id))
	step.Run(ctx, st)
	e.log.StepExit(st.SessionID.String(), string(id))
}

func (e *Engine) runChatPipeline(ctx context.Context, st *State) {
	for _, step := range e.chat {
		e.log.StepEnter(st.SessionID.String(), string(step.ID()))
		step.Run(ctx, st)
		e.log.StepExit(st.SessionID.String(), string(step.ID()))
	}
}

// fallbackResponse keeps the conversation moving when a step produced state
// changes but no user-facing text.
func fallbackResponse(st *State) string {
	if st.WorkflowComplete && st.OrderID != uuid.Nil {
		return responseOrderComplete
	}
	if st.Mode != ModeWorkflow || st.WorkflowComplete || st.Terminated {
		return responseChatApology
	}

	switch Dispatch(st) {
	case StepStockPricing:
		return "Your technical specification is ready. Shall we look at pricing and availability?"
	case StepConfirmation:
		return "Pricing is complete. Say anything to see your order summary."
	default:
		return "Got it. Let's continue with your order."
	}
}

func isCancelMessage(message string) bool {
	normalized := strings.ToLower(strings.TrimSpace(message))
	normalized = strings.TrimRight(normalized, ".!?")
	switch normalized {
	case "cancel", "stop", "cancel my order", "cancel the order", "never mind", "nevermind":
		return true
	}
	return false
}
