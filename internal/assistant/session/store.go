package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/engine"
	"github.com/code-YK/WoodWorks-Ai/platform/apperr"
)

const keyPrefix = "assistant:session:"

// Store persists conversation state in Redis as JSON documents with a
// sliding TTL. Every turn rewrites the full document, which keeps the
// session alive as long as the customer keeps talking.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a session store on the given Redis client.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

// Get loads a session by ID. A missing or expired session is a NotFound
// error.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*engine.State, error) {
	data, err := s.client.Get(ctx, keyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperr.NotFound("session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	var st engine.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &st, nil
}

// Save writes the session and refreshes its TTL.
func (s *Store) Save(ctx context.Context, st *engine.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", st.SessionID, err)
	}

	if err := s.client.Set(ctx, keyPrefix+st.SessionID.String(), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", st.SessionID, err)
	}
	return nil
}

// Delete removes a session.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, keyPrefix+id.String()).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}
