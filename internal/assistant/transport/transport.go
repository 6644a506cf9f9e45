// Package transport defines request and response DTOs for the assistant module.
package transport

import "github.com/google/uuid"

// CreateSessionResponse is returned when a new conversation starts.
type CreateSessionResponse struct {
	SessionID uuid.UUID `json:"sessionId"`
}

// SendMessageRequest is one user message in a conversation.
type SendMessageRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

// TurnResponse is the assistant's answer to a turn, confirmation or
// cancellation.
type TurnResponse struct {
	SessionID        uuid.UUID `json:"sessionId"`
	Mode             string    `json:"mode"`
	Response         string    `json:"response"`
	WorkflowComplete bool      `json:"workflowComplete"`
	AwaitingConfirm  bool      `json:"awaitingConfirmation"`
	OrderID          string    `json:"orderId,omitempty"`
	ReceiptReference string    `json:"receiptReference,omitempty"`
}

// MessageResponse is one history entry.
type MessageResponse struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionResponse is a read-only view of a conversation session.
type SessionResponse struct {
	SessionID        uuid.UUID         `json:"sessionId"`
	Mode             string            `json:"mode"`
	TurnCount        int               `json:"turnCount"`
	WorkflowComplete bool              `json:"workflowComplete"`
	AwaitingConfirm  bool              `json:"awaitingConfirmation"`
	OrderID          string            `json:"orderId,omitempty"`
	ReceiptReference string            `json:"receiptReference,omitempty"`
	History          []MessageResponse `json:"history"`
}

// ReceiptURLResponse carries a short-lived download link for a receipt PDF.
type ReceiptURLResponse struct {
	URL string `json:"url"`
}
