// Package scheduler provides background job scheduling and processing via asynq.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskMemoryIndex embeds a stored memory entry and upserts it into the vector store.
const TaskMemoryIndex = "memory.index"

// MemoryIndexPayload identifies the memory entry to index.
type MemoryIndexPayload struct {
	MemoryID string `json:"memoryId"`
}

// NewMemoryIndexTask builds an asynq task for memory indexing.
func NewMemoryIndexTask(payload MemoryIndexPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMemoryIndex, data), nil
}

// ParseMemoryIndexPayload decodes a memory index task payload.
func ParseMemoryIndexPayload(task *asynq.Task) (MemoryIndexPayload, error) {
	var payload MemoryIndexPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return MemoryIndexPayload{}, err
	}
	return payload, nil
}
