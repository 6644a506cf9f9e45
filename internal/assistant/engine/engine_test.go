package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/code-YK/WoodWorks-Ai/platform/logger"
)

type fakeClassifier struct {
	mode  Mode
	err   error
	calls int
}

func (f *fakeClassifier) Classify(ctx context.Context, message string, history []Message) (Mode, error) {
	f.calls++
	return f.mode, f.err
}

type fakeStep struct {
	id  StepID
	run func(st *State)
}

func (f *fakeStep) ID() StepID { return f.id }

func (f *fakeStep) Run(ctx context.Context, st *State) {
	if f.run != nil {
		f.run(st)
	}
}

func testEngine(classifier IntentClassifier, steps []Step, chat []Step) *Engine {
	return New(Config{
		Classifier:    classifier,
		WorkflowSteps: steps,
		ChatPipeline:  chat,
		Logger:        logger.New("development"),
	})
}

func recordingStep(id StepID, order *[]StepID, run func(st *State)) *fakeStep {
	return &fakeStep{id: id, run: func(st *State) {
		*order = append(*order, id)
		if run != nil {
			run(st)
		}
	}}
}

func TestProcessTurnLocksWorkflowMode(t *testing.T) {
	classifier := &fakeClassifier{mode: ModeWorkflow}
	var order []StepID
	eng := testEngine(classifier, []Step{
		recordingStep(StepCustomerInfo, &order, func(st *State) {
			st.AssistantResponse = "Could you share your name and phone number?"
		}),
	}, nil)

	st := NewState(uuid.New())
	eng.ProcessTurn(context.Background(), st, "I want to order a table")

	if st.Mode != ModeWorkflow {
		t.Fatalf("expected workflow mode, got %q", st.Mode)
	}
	if classifier.calls != 1 {
		t.Fatalf("expected 1 classifier call, got %d", classifier.calls)
	}

	eng.ProcessTurn(context.Background(), st, "My name is Ada")
	eng.ProcessTurn(context.Background(), st, "Phone is 0612345678")

	if classifier.calls != 1 {
		t.Fatalf("classifier re-invoked after workflow lock: %d calls", classifier.calls)
	}
}

func TestProcessTurnReclassifiesChatSessions(t *testing.T) {
	classifier := &fakeClassifier{mode: ModeChat}
	eng := testEngine(classifier, nil, []Step{
		&fakeStep{id: "chat_respond", run: func(st *State) { st.AssistantResponse = "Hello!" }},
	})

	st := NewState(uuid.New())
	eng.ProcessTurn(context.Background(), st, "hi there")
	eng.ProcessTurn(context.Background(), st, "what woods do you use?")

	if classifier.calls != 2 {
		t.Fatalf("expected chat sessions to re-classify each turn, got %d calls", classifier.calls)
	}
	if st.Mode != ModeChat {
		t.Fatalf("expected chat mode, got %q", st.Mode)
	}
}

func TestProcessTurnClassifierFailureDefaultsToChat(t *testing.T) {
	classifier := &fakeClassifier{err: errors.New("llm timeout")}
	eng := testEngine(classifier, nil, []Step{
		&fakeStep{id: "chat_respond", run: func(st *State) { st.AssistantResponse = "Hello!" }},
	})

	st := NewState(uuid.New())
	eng.ProcessTurn(context.Background(), st, "hi")

	if st.Mode != ModeChat {
		t.Fatalf("expected chat fallback on classifier failure, got %q", st.Mode)
	}
	if st.AssistantResponse != "Hello!" {
		t.Fatalf("expected chat pipeline to run, got %q", st.AssistantResponse)
	}
}

func TestProcessTurnEmptyMessage(t *testing.T) {
	classifier := &fakeClassifier{mode: ModeChat}
	eng := testEngine(classifier, nil, nil)

	st := NewState(uuid.New())
	eng.ProcessTurn(context.Background(), st, "   ")

	if st.AssistantResponse != responseEmptyMessage {
		t.Fatalf("expected empty-message response, got %q", st.AssistantResponse)
	}
	if classifier.calls != 0 {
		t.Fatal("expected no classification for an empty message")
	}
	if len(st.History) != 0 {
		t.Fatal("expected empty message to stay out of history")
	}
}

func TestProcessTurnRunsFulfillmentChainAtomically(t *testing.T) {
	var order []StepID
	orderID := uuid.New()
	eng := testEngine(&fakeClassifier{mode: ModeWorkflow}, []Step{
		recordingStep(StepCreateOrder, &order, func(st *State) { st.OrderID = orderID }),
		recordingStep(StepGenerateReceipt, &order, func(st *State) { st.ReceiptReference = "RCP-12345678" }),
		recordingStep(StepStoreMemory, &order, func(st *State) {
			st.WorkflowComplete = true
			st.AssistantResponse = "Your order is confirmed!"
		}),
	}, nil)

	st := readyForOrder()
	eng.ProcessTurn(context.Background(), st, "great")

	want := []StepID{StepCreateOrder, StepGenerateReceipt, StepStoreMemory}
	if len(order) != len(want) {
		t.Fatalf("expected chain %v in one turn, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("chain out of order at %d: got %v", i, order)
		}
	}
	if !st.WorkflowComplete {
		t.Fatal("expected workflow to complete")
	}
}

func TestProcessTurnFulfillmentStopsOnPendingIssue(t *testing.T) {
	var order []StepID
	eng := testEngine(&fakeClassifier{mode: ModeWorkflow}, []Step{
		recordingStep(StepCreateOrder, &order, func(st *State) {
			st.PendingIssue = "order creation failed: connection refused"
		}),
		recordingStep(StepGenerateReceipt, &order, nil),
		recordingStep(StepStoreMemory, &order, nil),
	}, nil)

	st := readyForOrder()
	eng.ProcessTurn(context.Background(), st, "great")

	if len(order) != 1 || order[0] != StepCreateOrder {
		t.Fatalf("expected chain to stop after the failing link, got %v", order)
	}
	if st.PendingIssue == "" {
		t.Fatal("expected pending issue to survive for the supervisor")
	}
	if Dispatch(st) != StepSupervisor {
		t.Fatal("expected next turn to route to the supervisor")
	}
}

func TestProcessTurnConfirmationFlowsIntoFulfillment(t *testing.T) {
	var order []StepID
	eng := testEngine(&fakeClassifier{mode: ModeWorkflow}, []Step{
		recordingStep(StepConfirmation, &order, func(st *State) { st.ConfirmedByUser = true }),
		recordingStep(StepCreateOrder, &order, func(st *State) { st.OrderID = uuid.New() }),
		recordingStep(StepGenerateReceipt, &order, func(st *State) { st.ReceiptReference = "RCP-12345678" }),
		recordingStep(StepStoreMemory, &order, func(st *State) {
			st.WorkflowComplete = true
			st.AssistantResponse = "Your order is confirmed!"
		}),
	}, nil)

	st := readyForOrder()
	st.ConfirmedByUser = false

	eng.ProcessTurn(context.Background(), st, "yes")

	want := []StepID{StepConfirmation, StepCreateOrder, StepGenerateReceipt, StepStoreMemory}
	if len(order) != len(want) {
		t.Fatalf("expected confirmation to flow into fulfillment, got %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("steps out of order at %d: got %v", i, order)
		}
	}
}

func TestProcessTurnConfirmationDeclinedStaysPut(t *testing.T) {
	var order []StepID
	eng := testEngine(&fakeClassifier{mode: ModeWorkflow}, []Step{
		recordingStep(StepConfirmation, &order, func(st *State) {
			st.AssistantResponse = "Shall I place the order?"
		}),
		recordingStep(StepCreateOrder, &order, nil),
	}, nil)

	st := readyForOrder()
	st.ConfirmedByUser = false

	eng.ProcessTurn(context.Background(), st, "hmm, not sure yet")

	if len(order) != 1 || order[0] != StepConfirmation {
		t.Fatalf("expected only the confirmation step to run, got %v", order)
	}
}

func TestConfirmRequiresPendingConfirmation(t *testing.T) {
	eng := testEngine(&fakeClassifier{mode: ModeWorkflow}, nil, nil)

	tests := []struct {
		name   string
		mutate func(*State)
	}{
		{"chat session", func(st *State) { st.Mode = ModeChat }},
		{"no summary presented", func(st *State) { st.ConfirmationRequested = false }},
		{"workflow already complete", func(st *State) { st.WorkflowComplete = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := readyForOrder()
			st.ConfirmedByUser = false
			tt.mutate(st)

			eng.Confirm(context.Background(), st)

			if st.AssistantResponse != responseNothingToConfirm {
				t.Fatalf("expected polite refusal, got %q", st.AssistantResponse)
			}
			if st.ConfirmedByUser {
				t.Fatal("expected confirmation flag to stay unset")
			}
		})
	}
}

func TestConfirmRunsFulfillment(t *testing.T) {
	var order []StepID
	eng := testEngine(&fakeClassifier{mode: ModeWorkflow}, []Step{
		recordingStep(StepCreateOrder, &order, func(st *State) { st.OrderID = uuid.New() }),
		recordingStep(StepGenerateReceipt, &order, func(st *State) { st.ReceiptReference = "RCP-12345678" }),
		recordingStep(StepStoreMemory, &order, func(st *State) {
			st.WorkflowComplete = true
			st.AssistantResponse = "Your order is confirmed!"
		}),
	}, nil)

	st := readyForOrder()
	st.ConfirmedByUser = false

	eng.Confirm(context.Background(), st)

	if !st.ConfirmedByUser {
		t.Fatal("expected typed confirmation to set the flag")
	}
	if len(order) != 3 {
		t.Fatalf("expected full fulfillment chain, got %v", order)
	}
	if !st.WorkflowComplete {
		t.Fatal("expected workflow to complete")
	}
}

func TestCancelPreservesCustomer(t *testing.T) {
	eng := testEngine(&fakeClassifier{mode: ModeWorkflow}, nil, nil)

	st := readyForOrder()
	st.AppendUser("I want a table")
	customer := st.Customer

	eng.Cancel(context.Background(), st)

	if st.Customer != customer {
		t.Fatal("expected customer to survive cancellation")
	}
	if st.Mode != ModeChat {
		t.Fatalf("expected session to return to chat, got %q", st.Mode)
	}
	if st.SelectedProduct != nil {
		t.Fatal("expected order progress to be discarded")
	}
	if st.AssistantResponse != responseCancelled {
		t.Fatalf("unexpected cancel response: %q", st.AssistantResponse)
	}
}

func TestProcessTurnCancelKeywords(t *testing.T) {
	for _, message := range []string{"cancel", "Cancel my order", "never mind", "STOP.", "nevermind"} {
		t.Run(message, func(t *testing.T) {
			eng := testEngine(&fakeClassifier{mode: ModeWorkflow}, nil, nil)

			st := readyForOrder()
			eng.ProcessTurn(context.Background(), st, message)

			if st.Mode != ModeChat {
				t.Fatalf("expected %q to cancel the workflow", message)
			}
			if st.SelectedProduct != nil {
				t.Fatal("expected order progress to be discarded")
			}
		})
	}
}

func TestProcessTurnCancelKeywordsIgnoredInChat(t *testing.T) {
	classifier := &fakeClassifier{mode: ModeChat}
	eng := testEngine(classifier, nil, []Step{
		&fakeStep{id: "chat_respond", run: func(st *State) { st.AssistantResponse = "Okay!" }},
	})

	st := NewState(uuid.New())
	st.Mode = ModeChat
	eng.ProcessTurn(context.Background(), st, "cancel")

	if st.AssistantResponse != "Okay!" {
		t.Fatalf("expected chat pipeline to answer, got %q", st.AssistantResponse)
	}
}

func TestProcessTurnMissingStepRaisesPendingIssue(t *testing.T) {
	eng := testEngine(&fakeClassifier{mode: ModeWorkflow}, nil, nil)

	st := NewState(uuid.New())
	eng.ProcessTurn(context.Background(), st, "I want to order a table")

	if st.PendingIssue == "" {
		t.Fatal("expected a pending issue for the unregistered step")
	}
}

func TestFallbackResponseAfterCompletion(t *testing.T) {
	eng := testEngine(&fakeClassifier{mode: ModeWorkflow}, nil, []Step{
		&fakeStep{id: "chat_respond", run: func(st *State) {}},
	})

	st := readyForOrder()
	st.OrderID = uuid.New()
	st.ReceiptReference = "RCP-12345678"
	st.WorkflowComplete = true

	eng.ProcessTurn(context.Background(), st, "thanks!")

	if st.AssistantResponse != responseOrderComplete {
		t.Fatalf("expected completed-order response, got %q", st.AssistantResponse)
	}
}

func TestProcessTurnTerminatedWorkflowLeavesDispatchAlone(t *testing.T) {
	var order []StepID
	eng := testEngine(&fakeClassifier{mode: ModeWorkflow}, []Step{
		recordingStep(StepCustomerInfo, &order, nil),
	}, []Step{
		&fakeStep{id: "chat_respond", run: func(st *State) { st.AssistantResponse = "Sorry again about that." }},
	})

	st := readyForOrder()
	st.Terminated = true

	eng.ProcessTurn(context.Background(), st, "can you try again?")

	if len(order) != 0 {
		t.Fatalf("expected no workflow steps after termination, got %v", order)
	}
	if st.WorkflowComplete {
		t.Fatal("a terminated workflow never completed; the flag must stay false")
	}
	if st.AssistantResponse != "Sorry again about that." {
		t.Fatalf("expected the chat pipeline to answer, got %q", st.AssistantResponse)
	}
}

func TestConfirmRefusedAfterTermination(t *testing.T) {
	eng := testEngine(&fakeClassifier{mode: ModeWorkflow}, nil, nil)

	st := readyForOrder()
	st.ConfirmedByUser = false
	st.Terminated = true

	eng.Confirm(context.Background(), st)

	if st.AssistantResponse != responseNothingToConfirm {
		t.Fatalf("expected polite refusal, got %q", st.AssistantResponse)
	}
	if st.ConfirmedByUser {
		t.Fatal("expected confirmation flag to stay unset")
	}
}

func TestChatFallbackApology(t *testing.T) {
	eng := testEngine(&fakeClassifier{mode: ModeChat}, nil, []Step{
		&fakeStep{id: "chat_respond", run: func(st *State) {}},
	})

	st := NewState(uuid.New())
	eng.ProcessTurn(context.Background(), st, "hello?")

	if st.AssistantResponse != responseChatApology {
		t.Fatalf("expected the chat apology for a silent pipeline, got %q", st.AssistantResponse)
	}
}

func TestProcessTurnFirstTurnStopIsClassified(t *testing.T) {
	classifier := &fakeClassifier{mode: ModeChat}
	eng := testEngine(classifier, nil, []Step{
		&fakeStep{id: "chat_respond", run: func(st *State) { st.AssistantResponse = "Stop what?" }},
	})

	st := NewState(uuid.New())
	eng.ProcessTurn(context.Background(), st, "stop")

	if classifier.calls != 1 {
		t.Fatalf("expected a first-turn cancel word to reach the classifier, got %d calls", classifier.calls)
	}
	if st.AssistantResponse != "Stop what?" {
		t.Fatalf("expected the chat pipeline to answer, got %q", st.AssistantResponse)
	}
}

func TestFallbackResponseBridgesSilentSteps(t *testing.T) {
	eng := testEngine(&fakeClassifier{mode: ModeWorkflow}, []Step{
		&fakeStep{id: StepTechnicalSpec, run: func(st *State) {
			st.TechnicalSpec = &TechnicalSpec{Summary: "180cm oak table"}
		}},
	}, nil)

	st := readyForOrder()
	st.TechnicalSpec = nil
	st.PricingSummary = nil
	st.StockStatus = nil
	st.ConfirmedByUser = false

	eng.ProcessTurn(context.Background(), st, "sounds good")

	if st.AssistantResponse == "" {
		t.Fatal("expected a fallback response for a silent step")
	}
}
