package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestCreateOrderRefusesWithoutConfirmation(t *testing.T) {
	orders := &fakeOrders{}
	step := NewCreateOrderStep(orders, &fakeCatalog{}, testLog)

	st := stateReadyForOrder()
	st.ConfirmedByUser = false

	step.Run(context.Background(), st)

	if st.PendingIssue == "" {
		t.Fatal("expected a pending issue for an unconfirmed order attempt")
	}
	if len(orders.placed) != 0 {
		t.Fatal("expected no order to be placed")
	}
}

func TestCreateOrderPlacesAndReservesStock(t *testing.T) {
	orderID := uuid.New()
	orders := &fakeOrders{result: OrderResult{ID: orderID}}
	catalog := &fakeCatalog{}
	step := NewCreateOrderStep(orders, catalog, testLog)

	st := stateReadyForOrder()
	step.Run(context.Background(), st)

	if st.PendingIssue != "" {
		t.Fatalf("unexpected pending issue: %s", st.PendingIssue)
	}
	if st.OrderID != orderID {
		t.Fatalf("expected order id %s, got %s", orderID, st.OrderID)
	}
	if len(orders.placed) != 1 {
		t.Fatalf("expected one placed order, got %d", len(orders.placed))
	}
	if orders.placed[0].SpecSummary != st.TechnicalSpec.Summary {
		t.Fatalf("expected the technical spec summary on the order, got %q", orders.placed[0].SpecSummary)
	}
	if catalog.reserved != 1 {
		t.Fatalf("expected 1 unit reserved, got %d", catalog.reserved)
	}
}

func TestCreateOrderReusedSkipsReservation(t *testing.T) {
	orders := &fakeOrders{result: OrderResult{ID: uuid.New(), Reused: true}}
	catalog := &fakeCatalog{}
	step := NewCreateOrderStep(orders, catalog, testLog)

	st := stateReadyForOrder()
	step.Run(context.Background(), st)

	if catalog.reserved != 0 {
		t.Fatal("a reused order must not reserve stock again")
	}
	if st.OrderID == uuid.Nil {
		t.Fatal("expected the reused order id to be recorded")
	}
}

func TestCreateOrderFailureRaisesIssue(t *testing.T) {
	orders := &fakeOrders{err: errors.New("connection refused")}
	step := NewCreateOrderStep(orders, &fakeCatalog{}, testLog)

	st := stateReadyForOrder()
	step.Run(context.Background(), st)

	if st.PendingIssue == "" {
		t.Fatal("expected a pending issue on placement failure")
	}
	if st.OrderID != uuid.Nil {
		t.Fatal("expected no order id on failure")
	}
}

func TestCreateOrderReservationFailureIsNotFatal(t *testing.T) {
	orders := &fakeOrders{result: OrderResult{ID: uuid.New()}}
	catalog := &fakeCatalog{reserveErr: errors.New("conflict")}
	step := NewCreateOrderStep(orders, catalog, testLog)

	st := stateReadyForOrder()
	step.Run(context.Background(), st)

	if st.PendingIssue != "" {
		t.Fatalf("a failed reservation must not block fulfillment: %s", st.PendingIssue)
	}
	if st.OrderID == uuid.Nil {
		t.Fatal("expected the order to stand")
	}
}

func TestGenerateReceiptRecordsReferences(t *testing.T) {
	receipts := &fakeReceipts{result: ReceiptResult{
		Number:  "RCP-12345678",
		Text:    "Order receipt for Oak Dining Table",
		FileKey: "receipt_RCP-12345678_ab12cd34.pdf",
	}}
	step := NewGenerateReceiptStep(receipts, nil, testLog)

	st := stateReadyForOrder()
	st.OrderID = uuid.New()

	step.Run(context.Background(), st)

	if st.ReceiptReference != receipts.result.FileKey {
		t.Fatalf("expected the file key as reference, got %q", st.ReceiptReference)
	}
	if st.ReceiptText == "" {
		t.Fatal("expected receipt text to be recorded")
	}
}

func TestGenerateReceiptFallsBackToNumber(t *testing.T) {
	receipts := &fakeReceipts{result: ReceiptResult{Number: "RCP-12345678", Text: "receipt"}}
	step := NewGenerateReceiptStep(receipts, nil, testLog)

	st := stateReadyForOrder()
	st.OrderID = uuid.New()

	step.Run(context.Background(), st)

	if st.ReceiptReference != "RCP-12345678" {
		t.Fatalf("expected the receipt number without a stored PDF, got %q", st.ReceiptReference)
	}
}

func TestGenerateReceiptEmailsCustomer(t *testing.T) {
	receipts := &fakeReceipts{result: ReceiptResult{Number: "RCP-12345678", Text: "receipt"}}
	notifier := &fakeNotifier{}
	step := NewGenerateReceiptStep(receipts, notifier, testLog)

	st := stateReadyForOrder()
	st.OrderID = uuid.New()
	st.Customer.Email = "ada@example.com"

	step.Run(context.Background(), st)

	if len(notifier.sent) != 1 {
		t.Fatalf("expected one confirmation email, got %d", len(notifier.sent))
	}
	if notifier.sent[0].Email != "ada@example.com" {
		t.Fatalf("unexpected recipient: %s", notifier.sent[0].Email)
	}
}

func TestGenerateReceiptEmailFailureIsNotFatal(t *testing.T) {
	receipts := &fakeReceipts{result: ReceiptResult{Number: "RCP-12345678", Text: "receipt"}}
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	step := NewGenerateReceiptStep(receipts, notifier, testLog)

	st := stateReadyForOrder()
	st.OrderID = uuid.New()
	st.Customer.Email = "ada@example.com"

	step.Run(context.Background(), st)

	if st.PendingIssue != "" {
		t.Fatalf("a failed email must not block fulfillment: %s", st.PendingIssue)
	}
	if st.ReceiptReference == "" {
		t.Fatal("expected the receipt to stand")
	}
}

func TestStoreMemoryCompletesWorkflow(t *testing.T) {
	memories := &fakeMemories{}
	step := NewStoreMemoryStep(memories, testLog)

	st := stateReadyForOrder()
	st.OrderID = uuid.New()
	st.ReceiptReference = "RCP-12345678"
	st.ReceiptText = "Order receipt for Oak Dining Table"

	step.Run(context.Background(), st)

	if !st.WorkflowComplete {
		t.Fatal("expected the workflow to complete")
	}
	if len(memories.saved) != 1 {
		t.Fatalf("expected one memory record, got %d", len(memories.saved))
	}
	record := memories.saved[0]
	if record.Kind != MemoryKindOrderSummary {
		t.Fatalf("expected an order summary record, got %q", record.Kind)
	}
	if record.OrderID == nil || *record.OrderID != st.OrderID {
		t.Fatal("expected the order id on the memory record")
	}
	if !strings.Contains(st.AssistantResponse, "RCP-12345678") {
		t.Fatalf("expected the receipt reference in the final response: %s", st.AssistantResponse)
	}
}

func TestStoreMemoryFailureStillCompletes(t *testing.T) {
	memories := &fakeMemories{saveErr: errors.New("db down")}
	step := NewStoreMemoryStep(memories, testLog)

	st := stateReadyForOrder()
	st.OrderID = uuid.New()
	st.ReceiptReference = "RCP-12345678"

	step.Run(context.Background(), st)

	if !st.WorkflowComplete {
		t.Fatal("a failed memory write must not strand the workflow")
	}
	if st.PendingIssue != "" {
		t.Fatalf("unexpected pending issue: %s", st.PendingIssue)
	}
}
