package agents

import (
	"context"
	"strings"

	"github.com/code-YK/WoodWorks-Ai/internal/assistant/engine"
	"github.com/code-YK/WoodWorks-Ai/platform/logger"
)

// Chat pipeline step IDs. These never appear in the workflow dispatcher;
// the engine runs the whole pipeline in order on every chat turn.
const (
	stepRefine   engine.StepID = "chat_refine"
	stepRetrieve engine.StepID = "chat_retrieve"
	stepReason   engine.StepID = "chat_reason"
	stepRespond  engine.StepID = "chat_respond"
	stepPersist  engine.StepID = "chat_persist"
)

const chatApology = "I'm sorry, I'm having trouble answering right now. Could you try rephrasing that?"

// NewChatPipeline assembles the conversational pipeline:
// refine the query, retrieve memory, reason over it, respond, persist a summary.
func NewChatPipeline(gen TextGenerator, memories Memories, log *logger.Logger) []engine.Step {
	return []engine.Step{
		&refineStep{gen: gen, log: log},
		&retrieveStep{memories: memories, log: log},
		&reasonStep{gen: gen, log: log},
		&respondStep{gen: gen, log: log},
		&persistStep{gen: gen, memories: memories, log: log},
	}
}

// refineStep rewrites the user message into a standalone retrieval query.
// On failure the raw message serves as the query.
type refineStep struct {
	gen TextGenerator
	log *logger.Logger
}

func (s *refineStep) ID() engine.StepID { return stepRefine }

func (s *refineStep) Run(ctx context.Context, st *engine.State) {
	st.RefinedQuery = st.UserMessage

	req, err := buildRequest("refine", map[string]string{
		"History": historyExcerpt(st.History, 6),
		"Message": st.UserMessage,
	})
	if err != nil {
		s.log.CollaboratorError("prompts", "refine", err)
		return
	}

	refined, err := s.gen.Generate(ctx, req)
	if err != nil {
		s.log.CollaboratorError(s.gen.Name(), "refine", err)
		return
	}
	if trimmed := strings.TrimSpace(refined); trimmed != "" {
		st.RefinedQuery = trimmed
	}
}

// retrieveStep pulls relevant memory for the refined query.
type retrieveStep struct {
	memories Memories
	log      *logger.Logger
}

func (s *retrieveStep) ID() engine.StepID { return stepRetrieve }

func (s *retrieveStep) Run(ctx context.Context, st *engine.State) {
	st.RetrievedContext = ""
	if s.memories == nil {
		return
	}

	entries := s.memories.Retrieve(ctx, st.SessionID, st.RefinedQuery, 5)
	if len(entries) == 0 {
		return
	}
	st.RetrievedContext = strings.Join(entries, "\n")
}

// reasonStep produces working notes for the response writer.
type reasonStep struct {
	gen TextGenerator
	log *logger.Logger
}

func (s *reasonStep) ID() engine.StepID { return stepReason }

func (s *reasonStep) Run(ctx context.Context, st *engine.State) {
	st.ReasoningOutput = ""

	retrieved := st.RetrievedContext
	if retrieved == "" {
		retrieved = "(no stored context)"
	}

	req, err := buildRequest("reason", map[string]string{
		"Query":   st.RefinedQuery,
		"Context": retrieved,
	})
	if err != nil {
		s.log.CollaboratorError("prompts", "reason", err)
		return
	}

	notes, err := s.gen.Generate(ctx, req)
	if err != nil {
		s.log.CollaboratorError(s.gen.Name(), "reason", err)
		return
	}
	st.ReasoningOutput = strings.TrimSpace(notes)
}

// respondStep writes the customer-facing reply. An empty or failed
// generation falls back to an apology so the customer is never left hanging.
type respondStep struct {
	gen TextGenerator
	log *logger.Logger
}

func (s *respondStep) ID() engine.StepID { return stepRespond }

func (s *respondStep) Run(ctx context.Context, st *engine.State) {
	notes := st.ReasoningOutput
	if notes == "" {
		notes = "(no notes; answer directly and briefly)"
	}

	req, err := buildRequest("respond", map[string]string{
		"Message": st.UserMessage,
		"Notes":   notes,
	})
	if err != nil {
		s.log.CollaboratorError("prompts", "respond", err)
		st.AssistantResponse = chatApology
		return
	}

	response, err := s.gen.Generate(ctx, req)
	if err != nil {
		s.log.CollaboratorError(s.gen.Name(), "respond", err)
		st.AssistantResponse = chatApology
		return
	}

	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		trimmed = chatApology
	}
	st.AssistantResponse = trimmed
}

// persistStep summarizes the exchange into memory. The step is skipped when
// there is no response to summarize, and failures only log.
type persistStep struct {
	gen      TextGenerator
	memories Memories
	log      *logger.Logger
}

func (s *persistStep) ID() engine.StepID { return stepPersist }

func (s *persistStep) Run(ctx context.Context, st *engine.State) {
	if s.memories == nil || st.AssistantResponse == "" || st.AssistantResponse == chatApology {
		return
	}

	summary := st.UserMessage
	req, err := buildRequest("summarize", map[string]string{
		"Message":  st.UserMessage,
		"Response": st.AssistantResponse,
	})
	if err == nil {
		if generated, genErr := s.gen.Generate(ctx, req); genErr == nil && strings.TrimSpace(generated) != "" {
			summary = strings.TrimSpace(generated)
		} else if genErr != nil {
			s.log.CollaboratorError(s.gen.Name(), "summarize", genErr)
		}
	}

	record := MemoryRecord{
		SessionID: st.SessionID,
		Kind:      MemoryKindChatSummary,
		Content:   summary,
	}
	if st.Customer != nil {
		id := st.Customer.ID
		record.CustomerID = &id
	}

	if err := s.memories.Save(ctx, record); err != nil {
		s.log.CollaboratorError("memory", "save_chat_summary", err)
	}
}
