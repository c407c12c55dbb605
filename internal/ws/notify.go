package ws

import (
	"encoding/json"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/infrastructure/events"
)

type JobCreatedEvent struct {
	Type      string `json:"type"`
	JobID     int64  `json:"job_id"`
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
}

// NotifyJobCreated broadcasts j to every connected client.
func (h *Hub) NotifyJobCreated(j job.Job) {
	if h == nil {
		return
	}

	ts := j.CreatedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	b, err := json.Marshal(JobCreatedEvent{
		Type:      events.TypeJobCreated,
		JobID:     j.ID,
		Title:     j.Title,
		Timestamp: ts.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	h.Broadcast(b)
}
