package scheduler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/code-YK/WoodWorks-Ai/internal/memory/repository"
	"github.com/code-YK/WoodWorks-Ai/platform/config"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
	"github.com/code-YK/WoodWorks-Ai/platform/qdrant"
)

// Embedder produces embedding vectors for text.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// VectorWriter is the subset of the Qdrant client used for indexing.
type VectorWriter interface {
	Upsert(ctx context.Context, points []qdrant.Point) error
}

// Worker processes background tasks.
type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	memories repository.Repository
	embedder Embedder
	vectors  VectorWriter
	log      *logger.Logger
}

// NewWorker creates the asynq worker and registers all task handlers.
func NewWorker(cfg config.SchedulerConfig, memories repository.Repository, embedder Embedder, vectors VectorWriter, log *logger.Logger) *Worker {
	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(redisClientOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		memories: memories,
		embedder: embedder,
		vectors:  vectors,
		log:      log,
	}

	mux.HandleFunc(TaskMemoryIndex, w.handleMemoryIndex)

	return w
}

func (w *Worker) handleMemoryIndex(ctx context.Context, task *asynq.Task) error {
	if w.embedder == nil || w.vectors == nil {
		return nil
	}

	payload, err := ParseMemoryIndexPayload(task)
	if err != nil {
		return err
	}

	memoryID, err := uuid.Parse(payload.MemoryID)
	if err != nil {
		return fmt.Errorf("invalid memory id %q: %w", payload.MemoryID, err)
	}

	memory, err := w.memories.GetByID(ctx, memoryID)
	if err != nil {
		return err
	}

	vector, err := w.embedder.EmbedText(ctx, memory.Content)
	if err != nil {
		return fmt.Errorf("embed memory %s: %w", memoryID, err)
	}

	point := qdrant.Point{
		ID:     memory.ID.String(),
		Vector: vector,
		Payload: map[string]interface{}{
			"session_id": memory.SessionID.String(),
			"kind":       memory.Kind,
			"content":    memory.Content,
			"created_at": memory.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		},
	}

	if err := w.vectors.Upsert(ctx, []qdrant.Point{point}); err != nil {
		return fmt.Errorf("upsert memory %s: %w", memoryID, err)
	}

	w.log.Info("memory indexed", "memory_id", memoryID, "kind", memory.Kind)
	return nil
}

// Run starts processing tasks and blocks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
