// Package service coordinates session storage and the turn engine.
package service

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/google/uuid"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/engine"
	"github.com/code-YK/WoodWorks-Ai/internal/assistant/session"
	"github.com/code-YK/WoodWorks-Ai/internal/assistant/transport"
	"github.com/code-YK/WoodWorks-Ai/platform/apperr"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
)

const lockStripes = 64

// ReceiptLinker resolves a stored receipt file into a download URL.
type ReceiptLinker interface {
	DownloadURL(ctx context.Context, fileKey string) (string, error)
}

// Service runs conversation turns against stored sessions. Turns on the same
// session are serialized with striped locks so concurrent messages cannot
// interleave a half-written state.
type Service struct {
	store    *session.Store
	engine   *engine.Engine
	receipts ReceiptLinker
	log      *logger.Logger
	locks    [lockStripes]sync.Mutex
}

// New creates an assistant service.
func New(store *session.Store, eng *engine.Engine, receipts ReceiptLinker, log *logger.Logger) *Service {
	return &Service{store: store, engine: eng, receipts: receipts, log: log}
}

// CreateSession starts a new conversation.
func (s *Service) CreateSession(ctx context.Context) (transport.CreateSessionResponse, error) {
	st := engine.NewState(uuid.New())
	if err := s.store.Save(ctx, st); err != nil {
		return transport.CreateSessionResponse{}, err
	}

	s.log.Info("session created", "session_id", st.SessionID)
	return transport.CreateSessionResponse{SessionID: st.SessionID}, nil
}

// SendMessage processes one user message as a conversation turn.
func (s *Service) SendMessage(ctx context.Context, id uuid.UUID, message string) (transport.TurnResponse, error) {
	return s.turn(ctx, id, func(st *engine.State) {
		s.engine.ProcessTurn(ctx, st, message)
	})
}

// Confirm applies the typed confirmation action to the session.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (transport.TurnResponse, error) {
	return s.turn(ctx, id, func(st *engine.State) {
		s.engine.Confirm(ctx, st)
	})
}

// Cancel applies the typed cancellation action to the session.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (transport.TurnResponse, error) {
	return s.turn(ctx, id, func(st *engine.State) {
		s.engine.Cancel(ctx, st)
	})
}

// GetSession returns a read-only view of the conversation.
func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (transport.SessionResponse, error) {
	st, err := s.store.Get(ctx, id)
	if err != nil {
		return transport.SessionResponse{}, err
	}

	history := make([]transport.MessageResponse, 0, len(st.History))
	for _, msg := range st.History {
		history = append(history, transport.MessageResponse{Role: string(msg.Role), Content: msg.Content})
	}

	resp := transport.SessionResponse{
		SessionID:        st.SessionID,
		Mode:             string(st.Mode),
		TurnCount:        st.TurnCount,
		WorkflowComplete: st.WorkflowComplete,
		AwaitingConfirm:  st.ConfirmationRequested && !st.ConfirmedByUser && !st.WorkflowComplete && !st.Terminated,
		ReceiptReference: st.ReceiptReference,
		History:          history,
	}
	if st.OrderID != uuid.Nil {
		resp.OrderID = st.OrderID.String()
	}
	return resp, nil
}

// ReceiptURL returns a presigned download link for the session's receipt PDF.
func (s *Service) ReceiptURL(ctx context.Context, id uuid.UUID) (transport.ReceiptURLResponse, error) {
	st, err := s.store.Get(ctx, id)
	if err != nil {
		return transport.ReceiptURLResponse{}, err
	}

	if st.OrderID == uuid.Nil || st.ReceiptReference == "" {
		return transport.ReceiptURLResponse{}, apperr.NotFound("no receipt for this session")
	}
	if s.receipts == nil {
		return transport.ReceiptURLResponse{}, apperr.Gone("receipt downloads are not available")
	}

	url, err := s.receipts.DownloadURL(ctx, st.ReceiptReference)
	if err != nil {
		s.log.CollaboratorError("storage", "presign_receipt", err)
		return transport.ReceiptURLResponse{}, apperr.Internal("could not generate receipt link")
	}
	return transport.ReceiptURLResponse{URL: url}, nil
}

func (s *Service) turn(ctx context.Context, id uuid.UUID, run func(*engine.State)) (transport.TurnResponse, error) {
	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	st, err := s.store.Get(ctx, id)
	if err != nil {
		return transport.TurnResponse{}, err
	}

	run(st)

	if err := s.store.Save(ctx, st); err != nil {
		return transport.TurnResponse{}, err
	}

	resp := transport.TurnResponse{
		SessionID:        st.SessionID,
		Mode:             string(st.Mode),
		Response:         st.AssistantResponse,
		WorkflowComplete: st.WorkflowComplete,
		AwaitingConfirm:  st.ConfirmationRequested && !st.ConfirmedByUser && !st.WorkflowComplete && !st.Terminated,
		ReceiptReference: st.ReceiptReference,
	}
	if st.OrderID != uuid.Nil {
		resp.OrderID = st.OrderID.String()
	}
	return resp, nil
}

func (s *Service) lockFor(id uuid.UUID) *sync.Mutex {
	h := fnv.New32a()
	h.Write(id[:])
	return &s.locks[h.Sum32()%lockStripes]
}
