package agents

import (
	"context"
	"testing"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/engine"
	"github.com/google/uuid"
)

func runPipeline(steps []engine.Step, st *engine.State) {
	for _, step := range steps {
		step.Run(context.Background(), st)
	}
}

func TestChatPipelineHappyPath(t *testing.T) {
	gen := genReturning("We mostly work with oak, walnut and pine.")
	memories := &fakeMemories{entries: []string{"Customer asked about table sizes last week."}}
	pipeline := NewChatPipeline(gen, memories, testLog)

	st := engine.NewState(uuid.New())
	st.Mode = engine.ModeChat
	st.UserMessage = "what woods do you work with?"

	runPipeline(pipeline, st)

	if st.AssistantResponse != "We mostly work with oak, walnut and pine." {
		t.Fatalf("unexpected response: %q", st.AssistantResponse)
	}
	if st.RetrievedContext == "" {
		t.Fatal("expected retrieved memory in the context")
	}
	if len(memories.saved) != 1 {
		t.Fatalf("expected the exchange to be summarized into memory, got %d records", len(memories.saved))
	}
	if memories.saved[0].Kind != MemoryKindChatSummary {
		t.Fatalf("expected a chat summary record, got %q", memories.saved[0].Kind)
	}
}

func TestChatPipelineApologyOnModelFailure(t *testing.T) {
	memories := &fakeMemories{}
	pipeline := NewChatPipeline(genFailing(), memories, testLog)

	st := engine.NewState(uuid.New())
	st.Mode = engine.ModeChat
	st.UserMessage = "hello?"

	runPipeline(pipeline, st)

	if st.AssistantResponse != chatApology {
		t.Fatalf("expected apology fallback, got %q", st.AssistantResponse)
	}
	if st.RefinedQuery != "hello?" {
		t.Fatalf("expected the raw message as the refined query, got %q", st.RefinedQuery)
	}
	if len(memories.saved) != 0 {
		t.Fatal("an apology must not be persisted to memory")
	}
}

func TestChatPipelineWorksWithoutMemories(t *testing.T) {
	gen := genReturning("Happy to help!")
	pipeline := NewChatPipeline(gen, nil, testLog)

	st := engine.NewState(uuid.New())
	st.Mode = engine.ModeChat
	st.UserMessage = "hi"

	runPipeline(pipeline, st)

	if st.AssistantResponse != "Happy to help!" {
		t.Fatalf("unexpected response: %q", st.AssistantResponse)
	}
}
