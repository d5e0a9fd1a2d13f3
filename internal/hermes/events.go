// Package hermes publishes synthpanel lifecycle events on NATS.
package hermes

import (
	"encoding/json"
	"sync"
	"time"
)

// Subjects.
const (
	SubjectEvaluationRequested = "synthpanel.evaluation.requested"
	SubjectEvaluationStarted   = "synthpanel.evaluation.started"
	SubjectEvaluationCompleted = "synthpanel.evaluation.completed"
	SubjectEvaluationCancelled = "synthpanel.evaluation.cancelled"
	SubjectChatMessage         = "synthpanel.chat.message"
	SubjectChatClosed          = "synthpanel.chat.closed"
)

// Publisher is the part of Client the pipelines depend on.
type Publisher interface {
	Publish(subject string, data any) error
}

// EvaluationEvent announces an evaluation lifecycle transition.
type EvaluationEvent struct {
	SessionID    string    `json:"session_id"`
	ConceptID    string    `json:"concept_id,omitempty"`
	ConceptName  string    `json:"concept_name"`
	Archetypes   []string  `json:"archetypes"`
	Status       string    `json:"status"`
	AverageScore *float64  `json:"average_score,omitempty"`
	Verdict      string    `json:"verdict,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// ChatEvent announces a chat reply or the closing of a chat session.
type ChatEvent struct {
	SessionID      string    `json:"session_id"`
	Archetype      string    `json:"archetype"`
	Source         string    `json:"source,omitempty"`
	QuestionsAsked int       `json:"questions_asked"`
	TrustLevel     float64   `json:"trust_level"`
	Timestamp      time.Time `json:"timestamp"`
}

// Nop discards every event. It is used when NATS is not configured.
type Nop struct{}

func (Nop) Publish(string, any) error { return nil }

// Message is one event captured by a Recorder.
type Message struct {
	Subject string
	Data    []byte
}

// Recorder keeps published events in memory, marshalled as they would be
// on the wire.
type Recorder struct {
	mu   sync.Mutex
	msgs []Message
}

func (r *Recorder) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, Message{Subject: subject, Data: payload})
	return nil
}

// Subjects returns the subjects published so far, in order.
func (r *Recorder) Subjects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.msgs))
	for i, m := range r.msgs {
		out[i] = m.Subject
	}
	return out
}

// Messages returns a copy of the captured events.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.msgs...)
}
