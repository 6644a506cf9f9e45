package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/code-YK/WoodWorks-Ai/internal/memory/repository"
	"github.com/code-YK/WoodWorks-Ai/internal/scheduler"
	"github.com/code-YK/WoodWorks-Ai/platform/ai/gemini"
	"github.com/code-YK/WoodWorks-Ai/platform/config"
	"github.com/code-YK/WoodWorks-Ai/platform/db"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
	"github.com/code-YK/WoodWorks-Ai/platform/qdrant"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler worker", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.GetGeminiAPIKey() == "" {
		panic("scheduler worker requires GEMINI_API_KEY for embeddings")
	}
	if !cfg.IsQdrantEnabled() {
		panic("scheduler worker requires QDRANT_URL for vector indexing")
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	embedder, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:         cfg.GetGeminiAPIKey(),
		Model:          cfg.GetGeminiModel(),
		EmbeddingModel: cfg.GetGeminiEmbedModel(),
	})
	if err != nil {
		log.Error("failed to initialize gemini client", "error", err)
		panic("failed to initialize gemini client: " + err.Error())
	}

	vectors := qdrant.NewClient(qdrant.Config{
		BaseURL:    cfg.GetQdrantURL(),
		APIKey:     cfg.GetQdrantAPIKey(),
		Collection: cfg.GetQdrantCollection(),
	})

	worker := scheduler.NewWorker(cfg, repository.New(pool), embedder, vectors, log)

	log.Info("scheduler worker listening", "concurrency", cfg.GetAsynqConcurrency())
	worker.Run(ctx)
	log.Info("scheduler worker stopped")
}
