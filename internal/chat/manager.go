package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/synthpanel/internal/concept"
	"github.com/MikeSquared-Agency/synthpanel/internal/evaluator"
	"github.com/MikeSquared-Agency/synthpanel/internal/hermes"
	"github.com/MikeSquared-Agency/synthpanel/internal/knowledge"
	"github.com/MikeSquared-Agency/synthpanel/internal/store"
)

// OpenRequest describes a new interview.
type OpenRequest struct {
	Archetype  knowledge.Archetype        `json:"archetype"`
	Concept    *concept.Concept           `json:"concept,omitempty"`
	Evaluation *evaluator.SegmentReaction `json:"evaluation,omitempty"`
}

// Manager owns the open chat sessions.
type Manager struct {
	responder *Responder
	docs      *store.Documents
	events    hermes.Publisher
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(r *Responder, docs *store.Documents, events hermes.Publisher, logger *slog.Logger) *Manager {
	if events == nil {
		events = hermes.Nop{}
	}
	return &Manager{
		responder: r,
		docs:      docs,
		events:    events,
		logger:    logger,
		sessions:  make(map[string]*Session),
	}
}

// Responder returns the responder replies are produced with.
func (m *Manager) Responder() *Responder { return m.responder }

// Open starts a session in AwaitingUserInput with the persona's greeting.
// An evaluation context pins the persona it was generated for.
func (m *Manager) Open(ctx context.Context, req OpenRequest) (*Session, error) {
	if !req.Archetype.Valid() {
		return nil, fmt.Errorf("%w: %q", evaluator.ErrUnknownArchetype, req.Archetype)
	}
	var c *concept.Concept
	if req.Concept != nil {
		cl := req.Concept.Clone()
		c = &cl
	}

	pc := m.persona(req.Archetype, req.Evaluation)
	s := newSession(uuid.NewString(), req.Archetype, pc, c, req.Evaluation)
	name := ""
	if c != nil {
		name = c.Name
	}
	s.open(m.responder.Greeting(req.Archetype, pc, name), time.Now().UTC())

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.persist(ctx, s)
	m.logger.Info("chat session opened", "session_id", s.id, "archetype", s.archetype, "persona", pc.Name)
	return s, nil
}

func (m *Manager) persona(a knowledge.Archetype, eval *evaluator.SegmentReaction) knowledge.PersonaContext {
	pool := knowledge.Personas(a)
	if eval != nil {
		for _, pc := range pool {
			if pc.Name == eval.PersonaContext.Name {
				return pc
			}
		}
	}
	return pool[m.responder.IntN(len(pool))]
}

// Get returns an open session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Send answers message on session id and persists the transcript.
func (m *Manager) Send(ctx context.Context, id, message string) (Reply, error) {
	s, err := m.Get(id)
	if err != nil {
		return Reply{}, err
	}
	reply, err := m.responder.Reply(ctx, s, message)
	if err != nil {
		return Reply{}, err
	}
	m.persist(ctx, s)
	m.publish(hermes.SubjectChatMessage, s, reply.Source)
	return reply, nil
}

// Close ends session id, stores its final transcript and returns it.
func (m *Manager) Close(ctx context.Context, id string) (Transcript, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return Transcript{}, ErrSessionNotFound
	}

	s.Close()
	m.persist(ctx, s)
	m.publish(hermes.SubjectChatClosed, s, "")
	m.logger.Info("chat session closed", "session_id", id, "questions_asked", s.Context().QuestionsAsked)
	return s.Export(), nil
}

// Export returns the transcript of an open session, or the stored one of a
// closed session.
func (m *Manager) Export(ctx context.Context, id string) (Transcript, error) {
	if s, err := m.Get(id); err == nil {
		return s.Export(), nil
	}
	if m.docs == nil {
		return Transcript{}, ErrSessionNotFound
	}
	var t Transcript
	if err := m.docs.Get(ctx, store.KindChat, id, &t); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Transcript{}, ErrSessionNotFound
		}
		return Transcript{}, fmt.Errorf("load chat transcript: %w", err)
	}
	return t, nil
}

// CloseAll closes every open session, used on shutdown.
func (m *Manager) CloseAll(ctx context.Context) {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()
	for _, id := range ids {
		if _, err := m.Close(ctx, id); err != nil && !errors.Is(err, ErrSessionNotFound) {
			m.logger.Error("failed to close chat session", "session_id", id, "error", err)
		}
	}
}

// persist stores the transcript. Failures are logged; the conversation
// continues in memory.
func (m *Manager) persist(ctx context.Context, s *Session) {
	if m.docs == nil {
		return
	}
	if err := m.docs.Put(ctx, store.KindChat, s.id, s.Export()); err != nil {
		m.logger.Error("failed to persist chat transcript", "session_id", s.id, "error", err)
	}
}

func (m *Manager) publish(subject string, s *Session, source Source) {
	convo := s.Context()
	evt := hermes.ChatEvent{
		SessionID:      s.id,
		Archetype:      string(s.archetype),
		Source:         string(source),
		QuestionsAsked: convo.QuestionsAsked,
		TrustLevel:     convo.TrustLevel,
		Timestamp:      time.Now().UTC(),
	}
	if err := m.events.Publish(subject, evt); err != nil {
		m.logger.Warn("failed to publish chat event", "subject", subject, "session_id", s.id, "error", err)
	}
}
