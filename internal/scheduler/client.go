package scheduler

import (
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/code-YK/WoodWorks-Ai/platform/config"
)

// Client enqueues background tasks.
type Client struct {
	client *asynq.Client
	queue  string
}

// NewClient creates an asynq client from scheduler configuration.
func NewClient(cfg config.SchedulerConfig) *Client {
	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	return &Client{
		client: asynq.NewClient(redisClientOpt(cfg)),
		queue:  queue,
	}
}

// Close releases the underlying Redis connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueMemoryIndex schedules vector indexing for a stored memory entry.
func (c *Client) EnqueueMemoryIndex(ctx context.Context, memoryID uuid.UUID) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewMemoryIndexTask(MemoryIndexPayload{MemoryID: memoryID.String()})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue), asynq.MaxRetry(5))
	return err
}

func redisClientOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.GetRedisPassword(),
		DB:       cfg.GetRedisDB(),
	}
}
