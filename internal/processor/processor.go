package processor

import (
	"context"
	"encoding/json"
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
	"github.com/MikeSquared-Agency/synthpanel/internal/summary"
)

var (
	ErrSessionNotFound = errors.New("evaluation session not found")
	ErrInvalidConcept  = errors.New("invalid concept")
	ErrCancelled       = errors.New("evaluation cancelled")
	ErrNotRunning      = errors.New("evaluation is not running")
)

// Processor runs evaluation sessions: evaluate, summarize, persist, publish.
type Processor struct {
	evaluator *evaluator.Evaluator
	docs      *store.Documents
	hermes    hermes.Publisher
	logger    *slog.Logger

	mu      sync.Mutex
	running map[string]*run
	wg      sync.WaitGroup
}

type run struct {
	cancel    context.CancelFunc
	cancelled bool
}

func New(e *evaluator.Evaluator, docs *store.Documents, h hermes.Publisher, logger *slog.Logger) *Processor {
	if h == nil {
		h = hermes.Nop{}
	}
	return &Processor{
		evaluator: e,
		docs:      docs,
		hermes:    h,
		logger:    logger,
		running:   make(map[string]*run),
	}
}

// Start evaluates c for archetypes and returns the completed session. An
// empty archetype list evaluates every archetype. A run cancelled through
// Cancel or ctx returns the cancelled session and ErrCancelled.
func (p *Processor) Start(ctx context.Context, c concept.Concept, archetypes []knowledge.Archetype) (*EvaluationSession, error) {
	sess, err := p.open(ctx, c, archetypes)
	if err != nil {
		return nil, err
	}
	return p.execute(ctx, sess)
}

// Submit persists a new session and evaluates it in the background. The
// returned session is still evaluating; its id can be polled with Get or
// passed to Cancel. The run outlives ctx and only stops through Cancel or
// Shutdown.
func (p *Processor) Submit(ctx context.Context, c concept.Concept, archetypes []knowledge.Archetype) (*EvaluationSession, error) {
	sess, err := p.open(ctx, c, archetypes)
	if err != nil {
		return nil, err
	}
	snapshot := *sess

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if _, err := p.execute(context.WithoutCancel(ctx), sess); err != nil && !errors.Is(err, ErrCancelled) {
			p.logger.Error("background evaluation failed", "session_id", sess.ID, "error", err)
		}
	}()
	return &snapshot, nil
}

// Shutdown cancels in-flight runs and waits for background ones to record
// their outcome, or for ctx to expire.
func (p *Processor) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	for _, r := range p.running {
		r.cancelled = true
		if r.cancel != nil {
			r.cancel()
		}
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// open validates the request, stores the evaluating session and registers
// it as running.
func (p *Processor) open(ctx context.Context, c concept.Concept, archetypes []knowledge.Archetype) (*EvaluationSession, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConcept, err)
	}
	if len(archetypes) == 0 {
		archetypes = knowledge.Archetypes
	}
	for _, a := range archetypes {
		if !a.Valid() {
			return nil, fmt.Errorf("start evaluation: %w: %q", evaluator.ErrUnknownArchetype, a)
		}
	}

	now := time.Now().UTC()
	c = c.Clone()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}
	sess := &EvaluationSession{
		ID:                 uuid.NewString(),
		Concept:            c,
		SelectedArchetypes: append([]knowledge.Archetype(nil), archetypes...),
		Reactions:          []evaluator.SegmentReaction{},
		CreatedAt:          now,
		Status:             StatusEvaluating,
	}
	if err := p.save(ctx, sess); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.running[sess.ID] = &run{}
	p.mu.Unlock()
	return sess, nil
}

func (p *Processor) execute(ctx context.Context, sess *EvaluationSession) (*EvaluationSession, error) {
	runCtx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	r := p.running[sess.ID]
	r.cancel = cancel
	early := r.cancelled
	p.mu.Unlock()
	defer func() {
		cancel()
		p.mu.Lock()
		delete(p.running, sess.ID)
		p.mu.Unlock()
	}()
	if early {
		return p.cancelled(sess)
	}

	c := sess.Concept
	p.publish(hermes.SubjectEvaluationStarted, sess)
	p.logger.Info("evaluation started",
		"session_id", sess.ID,
		"concept", c.Name,
		"archetypes", len(sess.SelectedArchetypes),
	)

	reactions, err := p.evaluator.EvaluateConcept(runCtx, c, sess.SelectedArchetypes)
	if err != nil {
		if runCtx.Err() != nil {
			return p.cancelled(sess)
		}
		return nil, fmt.Errorf("evaluate concept: %w", err)
	}

	report, err := summary.Summarize(reactions)
	if err != nil {
		return nil, fmt.Errorf("summarize evaluation: %w", err)
	}

	// A Cancel that lands after the evaluator returned still wins. Once the
	// run leaves the map, Cancel reports ErrNotRunning instead.
	p.mu.Lock()
	gone := r.cancelled
	if !gone {
		delete(p.running, sess.ID)
	}
	p.mu.Unlock()
	if gone {
		return p.cancelled(sess)
	}

	completed := time.Now().UTC()
	sess.Reactions = reactions
	sess.Report = &report
	sess.Summary = highlightsOf(report)
	sess.CompletedAt = &completed
	sess.Status = StatusCompleted

	if err := p.save(context.WithoutCancel(ctx), sess); err != nil {
		return nil, err
	}
	p.publish(hermes.SubjectEvaluationCompleted, sess)
	p.logger.Info("evaluation completed",
		"session_id", sess.ID,
		"average_score", report.OverallAverage,
		"verdict", report.Verdict,
		"consensus", report.ConsensusLevel,
	)
	return sess, nil
}

// cancelled discards results and records the session as cancelled.
func (p *Processor) cancelled(sess *EvaluationSession) (*EvaluationSession, error) {
	sess.Reactions = []evaluator.SegmentReaction{}
	sess.Report = nil
	sess.Summary = nil
	sess.Status = StatusCancelled
	if err := p.save(context.Background(), sess); err != nil {
		p.logger.Error("failed to persist cancelled evaluation", "session_id", sess.ID, "error", err)
	}
	p.publish(hermes.SubjectEvaluationCancelled, sess)
	p.logger.Info("evaluation cancelled", "session_id", sess.ID)
	return sess, ErrCancelled
}

// Cancel stops an in-flight evaluation. Sessions that already finished are
// never changed.
func (p *Processor) Cancel(ctx context.Context, id string) error {
	p.mu.Lock()
	r, ok := p.running[id]
	if ok {
		r.cancelled = true
		if r.cancel != nil {
			r.cancel()
		}
	}
	p.mu.Unlock()
	if ok {
		return nil
	}

	if _, err := p.Get(ctx, id); err != nil {
		return err
	}
	return ErrNotRunning
}

// Running reports whether session id is being evaluated.
func (p *Processor) Running(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.running[id]
	return ok
}

// Get loads a session.
func (p *Processor) Get(ctx context.Context, id string) (*EvaluationSession, error) {
	var sess EvaluationSession
	if err := p.docs.Get(ctx, store.KindEvaluation, id, &sess); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load evaluation: %w", err)
	}
	return &sess, nil
}

// Export returns the session as indented JSON.
func (p *Processor) Export(ctx context.Context, id string) ([]byte, error) {
	sess, err := p.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal evaluation: %w", err)
	}
	return out, nil
}

// EvaluationRequest is the payload of synthpanel.evaluation.requested.
type EvaluationRequest struct {
	Concept    concept.Concept `json:"concept"`
	Archetypes []string        `json:"archetypes"`
}

// HandleEvaluationRequested is the NATS handler for
// synthpanel.evaluation.requested.
func (p *Processor) HandleEvaluationRequested(subject string, data []byte) {
	var req EvaluationRequest
	if err := json.Unmarshal(data, &req); err != nil {
		p.logger.Error("failed to parse evaluation request", "subject", subject, "error", err)
		return
	}
	archetypes, err := ParseArchetypes(req.Archetypes)
	if err != nil {
		p.logger.Error("invalid evaluation request", "subject", subject, "error", err)
		return
	}
	sess, err := p.Start(context.Background(), req.Concept, archetypes)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			return
		}
		p.logger.Error("requested evaluation failed", "concept", req.Concept.Name, "error", err)
		return
	}
	p.logger.Debug("requested evaluation done", "session_id", sess.ID)
}

// ParseArchetypes parses archetype names case-insensitively.
func ParseArchetypes(names []string) ([]knowledge.Archetype, error) {
	out := make([]knowledge.Archetype, 0, len(names))
	for _, n := range names {
		a, err := knowledge.ParseArchetype(n)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", evaluator.ErrUnknownArchetype, n)
		}
		out = append(out, a)
	}
	return out, nil
}

func (p *Processor) save(ctx context.Context, sess *EvaluationSession) error {
	if err := p.docs.Put(ctx, store.KindEvaluation, sess.ID, sess); err != nil {
		return fmt.Errorf("persist evaluation: %w", err)
	}
	return nil
}

func (p *Processor) publish(subject string, sess *EvaluationSession) {
	evt := hermes.EvaluationEvent{
		SessionID:   sess.ID,
		ConceptID:   sess.Concept.ID,
		ConceptName: sess.Concept.Name,
		Archetypes:  make([]string, len(sess.SelectedArchetypes)),
		Status:      string(sess.Status),
		Timestamp:   time.Now().UTC(),
	}
	for i, a := range sess.SelectedArchetypes {
		evt.Archetypes[i] = string(a)
	}
	if sess.Report != nil {
		avg := sess.Report.OverallAverage
		evt.AverageScore = &avg
		evt.Verdict = string(sess.Report.Verdict)
	}
	if err := p.hermes.Publish(subject, evt); err != nil {
		p.logger.Warn("failed to publish evaluation event", "subject", subject, "session_id", sess.ID, "error", err)
	}
}
