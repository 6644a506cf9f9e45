package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/engine"
	"github.com/code-YK/WoodWorks-Ai/platform/apperr"
)

func testStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewStore(client, time.Hour), mr
}

func TestStoreSaveAndGetRoundTrip(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	st := engine.NewState(uuid.New())
	st.Mode = engine.ModeWorkflow
	st.TurnCount = 4
	st.Customer = &engine.Customer{ID: uuid.New(), Name: "Ada", Phone: "+31612345678"}
	st.HumanSpec = &engine.HumanSpec{RawAnswers: map[string]string{"turn_3": "oak, 180cm"}}
	st.AppendUser("I'd like a table")
	st.AppendAssistant("Great choice!")

	if err := store.Save(ctx, st); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Get(ctx, st.SessionID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if loaded.Mode != engine.ModeWorkflow || loaded.TurnCount != 4 {
		t.Fatalf("state not round-tripped: %+v", loaded)
	}
	if loaded.Customer == nil || loaded.Customer.Name != "Ada" {
		t.Fatalf("customer not round-tripped: %+v", loaded.Customer)
	}
	if !loaded.HumanSpec.Complete() {
		t.Fatal("spec answers not round-tripped")
	}
	if len(loaded.History) != 2 {
		t.Fatalf("history not round-tripped: %d entries", len(loaded.History))
	}
}

func TestStoreGetMissingSession(t *testing.T) {
	store, _ := testStore(t)

	_, err := store.Get(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestStoreSessionExpires(t *testing.T) {
	store, mr := testStore(t)
	ctx := context.Background()

	st := engine.NewState(uuid.New())
	if err := store.Save(ctx, st); err != nil {
		t.Fatalf("Save: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if _, err := store.Get(ctx, st.SessionID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected expired session to be NotFound, got %v", err)
	}
}

func TestStoreSaveRefreshesTTL(t *testing.T) {
	store, mr := testStore(t)
	ctx := context.Background()

	st := engine.NewState(uuid.New())
	if err := store.Save(ctx, st); err != nil {
		t.Fatalf("Save: %v", err)
	}

	mr.FastForward(45 * time.Minute)
	st.TurnCount = 1
	if err := store.Save(ctx, st); err != nil {
		t.Fatalf("Save: %v", err)
	}

	mr.FastForward(45 * time.Minute)
	if _, err := store.Get(ctx, st.SessionID); err != nil {
		t.Fatalf("expected the session to survive a refreshed TTL, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	st := engine.NewState(uuid.New())
	if err := store.Save(ctx, st); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, st.SessionID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, st.SessionID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected deleted session to be NotFound, got %v", err)
	}
}
