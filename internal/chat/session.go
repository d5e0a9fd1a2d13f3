// Package chat runs interview sessions with a synthetic persona: a remote
// generation call when the backend is up, a local trigger table otherwise.
package chat

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/synthpanel/internal/concept"
	"github.com/MikeSquared-Agency/synthpanel/internal/evaluator"
	"github.com/MikeSquared-Agency/synthpanel/internal/knowledge"
	"github.com/MikeSquared-Agency/synthpanel/internal/trust"
)

var (
	ErrSessionClosed   = errors.New("chat session closed")
	ErrBusy            = errors.New("chat session is generating a response")
	ErrSessionNotFound = errors.New("chat session not found")
	ErrEmptyMessage    = errors.New("empty chat message")
)

// State of a chat session.
type State string

const (
	StateIdle               State = "idle"
	StateAwaitingUserInput  State = "awaiting_user_input"
	StateGeneratingResponse State = "generating_response"
	StateClosed             State = "closed"
)

type Role string

const (
	RoleUser    Role = "user"
	RolePersona Role = "persona"
)

// Source tells where a persona message came from. Local replies mean the
// session is running in static mode.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Source    Source    `json:"source,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationContext holds the counters every reply updates.
type ConversationContext struct {
	TrustLevel     float64   `json:"trust_level"`
	QuestionsAsked int       `json:"questions_asked"`
	StartedAt      time.Time `json:"started_at"`
	LastActivity   time.Time `json:"last_activity"`
}

// Transcript is the exportable record of a session.
type Transcript struct {
	SessionID           string                     `json:"session_id"`
	Archetype           knowledge.Archetype        `json:"archetype"`
	Persona             knowledge.PersonaContext   `json:"persona"`
	Concept             *concept.Concept           `json:"concept,omitempty"`
	Evaluation          *evaluator.SegmentReaction `json:"evaluation,omitempty"`
	State               State                      `json:"state"`
	Messages            []Message                  `json:"messages"`
	ConversationContext ConversationContext        `json:"conversation_context"`
	TrustStage          trust.Stage                `json:"trust_stage"`
}

// Session is one interview. All methods are safe for concurrent use.
type Session struct {
	id         string
	archetype  knowledge.Archetype
	persona    knowledge.PersonaContext
	concept    *concept.Concept
	evaluation *evaluator.SegmentReaction

	mu       sync.Mutex
	state    State
	messages []Message
	convo    ConversationContext
	done     chan struct{}
}

func newSession(id string, a knowledge.Archetype, pc knowledge.PersonaContext, c *concept.Concept, eval *evaluator.SegmentReaction) *Session {
	return &Session{
		id:         id,
		archetype:  a,
		persona:    pc,
		concept:    c,
		evaluation: eval,
		state:      StateIdle,
		done:       make(chan struct{}),
	}
}

func (s *Session) ID() string                        { return s.id }
func (s *Session) Archetype() knowledge.Archetype    { return s.archetype }
func (s *Session) Persona() knowledge.PersonaContext { return s.persona }

// Done is closed when the session is closed.
func (s *Session) Done() <-chan struct{} { return s.done }

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Context returns a copy of the conversation counters.
func (s *Session) Context() ConversationContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.convo
}

// open moves Idle to AwaitingUserInput with the persona's greeting.
func (s *Session) open(greeting string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return
	}
	s.convo = ConversationContext{StartedAt: now, LastActivity: now}
	s.messages = append(s.messages, Message{
		ID:        uuid.NewString(),
		Role:      RolePersona,
		Content:   greeting,
		Source:    SourceLocal,
		Timestamp: now,
	})
	s.state = StateAwaitingUserInput
}

// begin records the user's message and moves to GeneratingResponse. It
// returns the history preceding the message.
func (s *Session) begin(text string, now time.Time) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateClosed:
		return nil, ErrSessionClosed
	case StateGeneratingResponse:
		return nil, ErrBusy
	case StateIdle:
		return nil, errors.New("chat session not open")
	}
	history := append([]Message(nil), s.messages...)
	s.messages = append(s.messages, Message{ID: uuid.NewString(), Role: RoleUser, Content: text, Timestamp: now})
	s.convo.LastActivity = now
	s.state = StateGeneratingResponse
	return history, nil
}

// finish appends the reply, updates the counters and returns to
// AwaitingUserInput. A session closed meanwhile is left untouched.
func (s *Session) finish(reply Message) (ConversationContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateGeneratingResponse {
		return s.convo, ErrSessionClosed
	}
	s.messages = append(s.messages, reply)
	s.convo.QuestionsAsked++
	s.convo.TrustLevel = trust.Raise(s.convo.TrustLevel)
	s.convo.LastActivity = reply.Timestamp
	s.state = StateAwaitingUserInput
	return s.convo, nil
}

// abort returns a generating session to AwaitingUserInput without a reply.
func (s *Session) abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateGeneratingResponse {
		s.state = StateAwaitingUserInput
	}
}

// Close ends the session and wakes any pending reply. Closing twice is a
// no-op.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateClosed {
		return
	}
	s.state = StateClosed
	close(s.done)
}

// Export returns the transcript. It is allowed in every state.
func (s *Session) Export() Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Transcript{
		SessionID:           s.id,
		Archetype:           s.archetype,
		Persona:             s.persona,
		Concept:             s.concept,
		Evaluation:          s.evaluation,
		State:               s.state,
		Messages:            append([]Message{}, s.messages...),
		ConversationContext: s.convo,
		TrustStage:          trust.StageOf(s.convo.TrustLevel),
	}
}
