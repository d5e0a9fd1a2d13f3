package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/synthpanel/internal/backend"
	"github.com/MikeSquared-Agency/synthpanel/internal/knowledge"
	"github.com/MikeSquared-Agency/synthpanel/internal/narrative"
	"github.com/MikeSquared-Agency/synthpanel/internal/reaction"
)

// Remote generates persona replies on a backend service.
type Remote interface {
	Chat(ctx context.Context, req backend.ChatRequest) (string, error)
	Health(ctx context.Context) error
}

type ResponderConfig struct {
	RemoteEnabled   bool
	HealthTimeout   time.Duration
	TypingDelayMin  time.Duration
	TypingDelayMax  time.Duration
	CreativityLevel int
	Seed            uint64
}

// Reply is the outcome of one user message.
type Reply struct {
	Message Message             `json:"message"`
	Source  Source              `json:"source"`
	Context ConversationContext `json:"conversation_context"`
}

// Status reports whether replies can come from the remote backend.
type Status struct {
	RemoteEnabled    bool `json:"remote_chat_enabled"`
	BackendAvailable bool `json:"backend_available"`
}

// Responder produces persona replies, remote first and local on any failure.
type Responder struct {
	remote    Remote
	cfg       ResponderConfig
	renderer  *narrative.Renderer
	logger    *slog.Logger
	available atomic.Bool

	mu  sync.Mutex
	rng reaction.Rand
}

// NewResponder creates a responder. remote may be nil, in which case every
// reply is local. The backend counts as unavailable until CheckHealth
// succeeds.
func NewResponder(remote Remote, cfg ResponderConfig, logger *slog.Logger) *Responder {
	if cfg.HealthTimeout <= 0 {
		cfg.HealthTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Responder{
		remote:   remote,
		cfg:      cfg,
		renderer: narrative.New(),
		logger:   logger,
		rng:      reaction.SeedSequence(cfg.Seed)(),
	}
}

// IntN makes Responder a reaction.Rand shared by concurrent sessions.
func (r *Responder) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

func (r *Responder) Status() Status {
	return Status{RemoteEnabled: r.remoteEnabled(), BackendAvailable: r.available.Load()}
}

func (r *Responder) remoteEnabled() bool {
	return r.cfg.RemoteEnabled && r.remote != nil
}

// CheckHealth probes the backend and records the result. A timeout counts
// as a failure.
func (r *Responder) CheckHealth(ctx context.Context) bool {
	if r.remote == nil {
		r.available.Store(false)
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, r.cfg.HealthTimeout)
	defer cancel()
	if err := r.remote.Health(ctx); err != nil {
		if r.available.Swap(false) {
			r.logger.Warn("backend unavailable, chat switches to local replies", "error", err)
		}
		return false
	}
	if !r.available.Swap(true) {
		r.logger.Info("backend available")
	}
	return true
}

// MonitorHealth runs CheckHealth every interval until ctx ends.
func (r *Responder) MonitorHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.CheckHealth(ctx)
		}
	}
}

// Greeting is the persona's opening line.
func (r *Responder) Greeting(a knowledge.Archetype, pc knowledge.PersonaContext, conceptName string) string {
	opener := "Buenas"
	if pool := knowledge.Language(a)[knowledge.PoolFormal]; len(pool) > 0 {
		opener = pool[r.IntN(len(pool))]
	}
	about := "lo que me quiera mostrar"
	if name := strings.TrimSpace(conceptName); name != "" {
		about = fmt.Sprintf("\"%s\"", name)
	}
	return fmt.Sprintf("Hola, soy %s, %s en %s. %s, con gusto le doy mi opinión sobre %s.",
		pc.Name, strings.ToLower(pc.Occupation), pc.City, opener, about)
}

// Reply answers message on s. The typing delay is cancelled when s closes
// or ctx ends; in that case nothing is recorded and the error is returned.
func (r *Responder) Reply(ctx context.Context, s *Session, message string) (Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{}, ErrEmptyMessage
	}
	history, err := s.begin(message, time.Now().UTC())
	if err != nil {
		return Reply{}, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	content, source := r.generate(ctx, s, message, history)

	if err := r.wait(ctx); err != nil {
		s.abort()
		select {
		case <-s.Done():
			return Reply{}, ErrSessionClosed
		default:
			return Reply{}, err
		}
	}

	msg := Message{
		ID:        uuid.NewString(),
		Role:      RolePersona,
		Content:   content,
		Source:    source,
		Timestamp: time.Now().UTC(),
	}
	convo, err := s.finish(msg)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Message: msg, Source: source, Context: convo}, nil
}

// generate tries the remote backend and falls back to the local table.
// It always produces a reply.
func (r *Responder) generate(ctx context.Context, s *Session, message string, history []Message) (string, Source) {
	if r.remoteEnabled() && r.available.Load() {
		text, err := r.remote.Chat(ctx, r.request(s, message, history))
		if err == nil {
			return text, SourceRemote
		}
		r.logger.Warn("remote chat failed, using local reply", "error", err, "archetype", s.archetype, "session_id", s.id)
	}
	return LocalReply(r.renderer, r, s.archetype, s.persona, s.concept, message), SourceLocal
}

func (r *Responder) request(s *Session, message string, history []Message) backend.ChatRequest {
	turns := make([]backend.HistoryMessage, 0, len(history))
	for _, m := range history {
		role := "user"
		if m.Role == RolePersona {
			role = "assistant"
		}
		turns = append(turns, backend.HistoryMessage{Role: role, Content: m.Content, Timestamp: m.Timestamp})
	}
	return backend.ChatRequest{
		UserMessage:         message,
		Archetype:           string(s.archetype),
		EvaluationContext:   s.evaluation,
		ConceptDetails:      s.concept,
		ConversationHistory: turns,
		CreativityLevel:     r.cfg.CreativityLevel,
		Temperature:         backend.Temperature(r.cfg.CreativityLevel),
	}
}

// wait sleeps for the simulated typing delay.
func (r *Responder) wait(ctx context.Context) error {
	d := r.typingDelay()
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r *Responder) typingDelay() time.Duration {
	lo, hi := r.cfg.TypingDelayMin, r.cfg.TypingDelayMax
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi <= 0 {
		return 0
	}
	if hi == lo {
		return lo
	}
	return lo + time.Duration(r.IntN(int(hi-lo)+1))
}
