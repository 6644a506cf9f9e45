package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/code-YK/WoodWorks-Ai/internal/memory/repository"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
	"github.com/code-YK/WoodWorks-Ai/platform/qdrant"
)

// Embedder produces embedding vectors for text.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// Indexer schedules background vector indexing for a stored memory entry.
type Indexer interface {
	EnqueueMemoryIndex(ctx context.Context, memoryID uuid.UUID) error
}

// VectorStore is the subset of the Qdrant client used for retrieval.
type VectorStore interface {
	Search(ctx context.Context, vector []float32, limit int) ([]qdrant.SearchResult, error)
}

// Service persists conversation and order summaries and retrieves
// semantically similar entries for grounding chat responses.
type Service struct {
	repo     repository.Repository
	embedder Embedder
	vectors  VectorStore
	indexer  Indexer
	log      *logger.Logger
}

// New creates a memory service. embedder, vectors and indexer may be nil when
// the corresponding collaborators are not configured; retrieval then falls
// back to recent entries from the database.
func New(repo repository.Repository, embedder Embedder, vectors VectorStore, indexer Indexer, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		embedder: embedder,
		vectors:  vectors,
		indexer:  indexer,
		log:      log,
	}
}

// SaveParams contains data for persisting a memory entry.
type SaveParams struct {
	SessionID  uuid.UUID
	CustomerID *uuid.UUID
	OrderID    *uuid.UUID
	Kind       string
	Content    string
}

// Save persists the entry and schedules vector indexing. Indexing failures
// are logged and never surfaced; the row in Postgres is the source of truth.
func (s *Service) Save(ctx context.Context, params SaveParams) (repository.Memory, error) {
	memory, err := s.repo.Create(ctx, repository.CreateMemoryParams{
		SessionID:  params.SessionID,
		CustomerID: params.CustomerID,
		OrderID:    params.OrderID,
		Kind:       params.Kind,
		Content:    params.Content,
	})
	if err != nil {
		return repository.Memory{}, err
	}

	if s.indexer != nil {
		if err := s.indexer.EnqueueMemoryIndex(ctx, memory.ID); err != nil {
			s.log.Warn("memory index enqueue failed", "memory_id", memory.ID, "error", err)
		}
	}

	s.log.Info("memory saved", "memory_id", memory.ID, "session_id", memory.SessionID, "kind", memory.Kind)
	return memory, nil
}

// Retrieve returns memory content relevant to the query. It prefers vector
// search and falls back to the most recent session entries when embeddings
// or the vector store are unavailable.
func (s *Service) Retrieve(ctx context.Context, sessionID uuid.UUID, query string, limit int) []string {
	if limit <= 0 {
		limit = 5
	}

	if s.embedder != nil && s.vectors != nil && strings.TrimSpace(query) != "" {
		contents, err := s.searchVectors(ctx, query, limit)
		if err == nil {
			return contents
		}
		s.log.Warn("vector retrieval failed, falling back to recent entries", "error", err)
	}

	memories, err := s.repo.ListRecentBySession(ctx, sessionID, limit)
	if err != nil {
		s.log.Warn("recent memory lookup failed", "session_id", sessionID, "error", err)
		return nil
	}

	contents := make([]string, 0, len(memories))
	for _, m := range memories {
		contents = append(contents, m.Content)
	}
	return contents
}

// GetByID retrieves a single memory entry.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (repository.Memory, error) {
	return s.repo.GetByID(ctx, id)
}

// CustomerHistory returns the newest summaries across all of a customer's
// past sessions, for greeting returning customers with context.
func (s *Service) CustomerHistory(ctx context.Context, customerID uuid.UUID, limit int) ([]repository.Memory, error) {
	return s.repo.ListByCustomer(ctx, customerID, limit)
}

func (s *Service) searchVectors(ctx context.Context, query string, limit int) ([]string, error) {
	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}

	results, err := s.vectors.Search(ctx, vector, limit)
	if err != nil {
		return nil, err
	}

	contents := make([]string, 0, len(results))
	for _, result := range results {
		if content, ok := result.Payload["content"].(string); ok && content != "" {
			contents = append(contents, content)
		}
	}
	return contents, nil
}
