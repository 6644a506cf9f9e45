package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant"
	"github.com/code-YK/WoodWorks-Ai/internal/catalog"
	"github.com/code-YK/WoodWorks-Ai/internal/customers"
	"github.com/code-YK/WoodWorks-Ai/internal/email"
	apphttp "github.com/code-YK/WoodWorks-Ai/internal/http"
	"github.com/code-YK/WoodWorks-Ai/internal/http/router"
	"github.com/code-YK/WoodWorks-Ai/internal/memory"
	memorysvc "github.com/code-YK/WoodWorks-Ai/internal/memory/service"
	"github.com/code-YK/WoodWorks-Ai/internal/orders"
	"github.com/code-YK/WoodWorks-Ai/internal/receipts"
	"github.com/code-YK/WoodWorks-Ai/internal/scheduler"
	"github.com/code-YK/WoodWorks-Ai/internal/storage"
	"github.com/code-YK/WoodWorks-Ai/platform/ai/gemini"
	"github.com/code-YK/WoodWorks-Ai/platform/ai/groq"
	"github.com/code-YK/WoodWorks-Ai/platform/config"
	"github.com/code-YK/WoodWorks-Ai/platform/db"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
	"github.com/code-YK/WoodWorks-Ai/platform/qdrant"
	"github.com/code-YK/WoodWorks-Ai/platform/validator"
)

// embeddingVectorSize matches the default output dimension of the
// configured Gemini embedding model.
const embeddingVectorSize = 3072

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.GetRedisPassword(),
		DB:       cfg.GetRedisDB(),
	})
	defer redisClient.Close()

	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		return redisClient.Ping(ctx).Err()
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	log.Info("redis connection established", "addr", cfg.GetRedisAddr())

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Collaborators
	// ========================================================================

	groqClient, geminiClient := initLLMClients(ctx, cfg, log)
	if groqClient == nil && geminiClient == nil {
		panic("no LLM provider configured: set GROQ_API_KEY or GEMINI_API_KEY")
	}

	var vectors *qdrant.Client
	if cfg.IsQdrantEnabled() {
		vectors = qdrant.NewClient(qdrant.Config{
			BaseURL:    cfg.GetQdrantURL(),
			APIKey:     cfg.GetQdrantAPIKey(),
			Collection: cfg.GetQdrantCollection(),
		})
		if err := withRetry(ctx, log, "qdrant collection", 5, 2*time.Second, func() error {
			return vectors.EnsureCollection(ctx, embeddingVectorSize)
		}); err != nil {
			log.Error("failed to ensure qdrant collection, vector retrieval disabled", "error", err)
			vectors = nil
		} else {
			log.Info("qdrant collection ready", "collection", cfg.GetQdrantCollection())
		}
	}

	var storageSvc storage.Service
	if cfg.IsMinIOEnabled() {
		minioSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure receipts bucket", 5, 2*time.Second, func() error {
			return minioSvc.EnsureBucketExists(ctx, cfg.GetMinioBucketReceipts())
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetMinioBucketReceipts())
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		storageSvc = minioSvc
		log.Info("storage service initialized", "receiptsBucket", cfg.GetMinioBucketReceipts())
	}

	var gotenberg *receipts.GotenbergClient
	if cfg.IsGotenbergEnabled() {
		gotenberg = receipts.NewGotenbergClient(cfg.GetGotenbergURL(), cfg.GetGotenbergUsername(), cfg.GetGotenbergPassword())
		log.Info("gotenberg PDF generator initialized", "url", cfg.GetGotenbergURL())
	}

	var sender email.Sender
	if cfg.GetEmailEnabled() {
		sender = email.NewSMTPSender(cfg)
		log.Info("email sender initialized", "host", cfg.GetSMTPHost())
	}

	schedulerClient := scheduler.NewClient(cfg)
	defer schedulerClient.Close()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	var embedder memorysvc.Embedder
	if geminiClient != nil {
		embedder = geminiClient
	}
	var vectorStore memorysvc.VectorStore
	var indexer memorysvc.Indexer
	if vectors != nil {
		vectorStore = vectors
		indexer = schedulerClient
	}

	catalogModule := catalog.NewModule(pool, val, log)
	customersModule := customers.NewModule(pool, log)
	ordersModule := orders.NewModule(pool, log, cfg.GetDuplicateOrderWindow())
	memoryModule := memory.NewModule(pool, embedder, vectorStore, indexer, log)

	receiptsSvc := receipts.New(gotenberg, storageSvc, cfg.GetMinioBucketReceipts(), log)

	assistantModule := assistant.NewModule(assistant.Dependencies{
		Redis:              redisClient,
		SessionTTL:         cfg.GetSessionTTL(),
		Groq:               groqClient,
		Gemini:             geminiClient,
		Catalog:            catalogModule.Service(),
		Customers:          customersModule.Service(),
		Orders:             ordersModule.Service(),
		Memories:           memoryModule.Service(),
		Receipts:           receiptsSvc,
		EmailSender:        sender,
		CompanyName:        cfg.GetCompanyName(),
		MaxSupervisorSteps: cfg.GetMaxSupervisorSteps(),
		Validator:          val,
		Logger:             log,
	})

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: db.NewPoolAdapter(pool),
		Modules: []apphttp.Module{
			catalogModule,
			assistantModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initLLMClients builds the configured text-generation clients. The Gemini
// client is created whenever its API key is present, even under the groq
// provider, because embeddings only come from Gemini.
func initLLMClients(ctx context.Context, cfg *config.Config, log *logger.Logger) (*groq.Client, *gemini.Client) {
	var groqClient *groq.Client
	var geminiClient *gemini.Client

	if cfg.GetGeminiAPIKey() != "" {
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:         cfg.GetGeminiAPIKey(),
			Model:          cfg.GetGeminiModel(),
			EmbeddingModel: cfg.GetGeminiEmbedModel(),
		})
		if err != nil {
			log.Error("failed to initialize gemini client", "error", err)
		} else {
			geminiClient = client
		}
	}

	if cfg.GetLLMProvider() != "gemini" && cfg.GetGroqAPIKey() != "" {
		groqClient = groq.NewClient(groq.Config{
			APIKey:  cfg.GetGroqAPIKey(),
			BaseURL: cfg.GetGroqBaseURL(),
			Model:   cfg.GetGroqModel(),
		})
	}

	switch {
	case groqClient != nil:
		log.Info("llm provider initialized", "provider", groqClient.Name())
	case geminiClient != nil:
		log.Info("llm provider initialized", "provider", geminiClient.Name())
	}

	return groqClient, geminiClient
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return fmt.Errorf("%s: %w", name, lastErr)
}
