package pipeline

import (
	"encoding/json"
	"time"
)

// Event is one progress message pushed to websocket subscribers while a
// refresh runs.
type Event struct {
	Type      string `json:"type"`
	RunID     string `json:"run_id,omitempty"`
	Source    string `json:"source,omitempty"`
	Step      string `json:"step,omitempty"`
	Status    string `json:"status,omitempty"`
	Message   string `json:"message,omitempty"`
	Count     int    `json:"count,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

const (
	EventRunStarted   = "run_started"
	EventRunFinished  = "run_finished"
	EventStepStarted  = "step_started"
	EventStepFinished = "step_finished"
	EventCheckResult  = "check_result"
)

// Broadcaster pushes a raw message to every connected subscriber. The
// websocket hub satisfies it.
type Broadcaster interface {
	Broadcast(message []byte)
}

func (e *Engine) emit(ev Event) {
	if e == nil || e.hub == nil {
		return
	}
	ev.Timestamp = time.Now().UTC().Unix()
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}
	e.hub.Broadcast(b)
}
