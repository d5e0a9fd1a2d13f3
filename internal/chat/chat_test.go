package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MikeSquared-Agency/synthpanel/internal/backend"
	"github.com/MikeSquared-Agency/synthpanel/internal/concept"
	"github.com/MikeSquared-Agency/synthpanel/internal/evaluator"
	"github.com/MikeSquared-Agency/synthpanel/internal/hermes"
	"github.com/MikeSquared-Agency/synthpanel/internal/knowledge"
	"github.com/MikeSquared-Agency/synthpanel/internal/narrative"
	"github.com/MikeSquared-Agency/synthpanel/internal/reaction"
	"github.com/MikeSquared-Agency/synthpanel/internal/store"
	"github.com/MikeSquared-Agency/synthpanel/internal/trust"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func tigoBasico() *concept.Concept {
	return &concept.Concept{
		Name:         "Tigo Básico",
		Benefits:     []string{"WhatsApp ilimitado"},
		MonthlyPrice: concept.PriceOf(300),
	}
}

// fakeBackend serves the remote contract and counts generation calls.
type fakeBackend struct {
	healthStatus int
	chatStatus   int
	chatBody     string
	chatCalls    atomic.Int32
	lastRequest  atomic.Value
}

func (f *fakeBackend) server(t *testing.T) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(f.healthStatus)
		case "/api/synthetic/chat":
			f.chatCalls.Add(1)
			var req backend.ChatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
				f.lastRequest.Store(req)
			}
			w.WriteHeader(f.chatStatus)
			_, _ = io.WriteString(w, f.chatBody)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL, "", 2*time.Second)
}

func newTestManager(t *testing.T, remote Remote, cfg ResponderConfig) (*Manager, *hermes.Recorder, *store.Documents) {
	t.Helper()
	if cfg.Seed == 0 {
		cfg.Seed = 7
	}
	rec := &hermes.Recorder{}
	docs := store.NewDocuments(store.NewMemoryKV())
	return NewManager(NewResponder(remote, cfg, discardLogger()), docs, rec, discardLogger()), rec, docs
}

func TestMatchTopic(t *testing.T) {
	tests := []struct {
		message string
		want    Topic
		ok      bool
	}{
		{"¿Hay algún descuento?", TopicDiscount, true},
		{"Si fuera 50% más barato", TopicDiscount, true},
		{"¿Cuánto CUESTA al mes?", TopicPrice, true},
		{"¿Qué ventaja tiene?", TopicBenefit, true},
		{"¿Qué tal la señal en su colonia?", TopicCoverage, true},
		{"¿Usted tiene Claro?", TopicCompetitor, true},
		{"Los de Claro me ofrecieron más datos", TopicCompetitor, true},
		{"¿Por qué me cambiaría de compañía?", TopicCompetitor, true},
		{"No me quedó claro, ¿me explica otra vez?", "", false},
		{"¡Claro que sí!", "", false},
		{"Buenos días", "", false},
	}
	for _, tt := range tests {
		got, ok := MatchTopic(tt.message)
		if got != tt.want || ok != tt.ok {
			t.Errorf("MatchTopic(%q) = (%q, %v), want (%q, %v)", tt.message, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLocalReplies_EveryCellRenders(t *testing.T) {
	r := narrative.New()
	for _, a := range knowledge.Archetypes {
		for _, topic := range Topics {
			tpl, ok := localReplies[a][topic]
			if !ok {
				t.Errorf("%s has no %s reply", a, topic)
				continue
			}
			for _, c := range []*concept.Concept{tigoBasico(), nil} {
				out, err := r.Render(tpl, localBindings(a, knowledge.Personas(a)[0], c))
				if err != nil {
					t.Errorf("%s/%s: %v", a, topic, err)
				}
				if out == "" || strings.Contains(out, "{{") || strings.Contains(out, "{%") {
					t.Errorf("%s/%s rendered %q", a, topic, out)
				}
			}
		}
	}
}

func TestLocalReply_InterpolatesPrice(t *testing.T) {
	r := narrative.New()
	pc := knowledge.Personas(knowledge.Controller)[0]
	got := LocalReply(r, reaction.NewRand(1), knowledge.Controller, pc, tigoBasico(), "¿Y el precio?")
	if !strings.Contains(got, "L 300") {
		t.Errorf("price reply should quote the price, got %q", got)
	}

	noPrice := tigoBasico()
	noPrice.MonthlyPrice = nil
	got = LocalReply(r, reaction.NewRand(1), knowledge.Controller, pc, noPrice, "¿Y el precio?")
	if !strings.Contains(got, "todavía no me han dicho") {
		t.Errorf("price reply without price = %q", got)
	}
}

func TestLocalReply_Clarify(t *testing.T) {
	got := LocalReply(narrative.New(), reaction.NewRand(3), knowledge.Resigned, knowledge.Personas(knowledge.Resigned)[0], tigoBasico(), "hmm")
	if !strings.Contains(got, "no le entendí bien") {
		t.Fatalf("expected clarify reply, got %q", got)
	}
	found := false
	for _, phrase := range knowledge.Language(knowledge.Resigned)[knowledge.PoolInformal] {
		if strings.HasPrefix(got, phrase) {
			found = true
		}
	}
	if !found {
		t.Errorf("clarify reply should open with an informal phrase, got %q", got)
	}
}

func TestOpen_Greeting(t *testing.T) {
	m, _, _ := newTestManager(t, nil, ResponderConfig{})
	s, err := m.Open(context.Background(), OpenRequest{Archetype: knowledge.Entrepreneur, Concept: tigoBasico()})
	if err != nil {
		t.Fatal(err)
	}
	if s.State() != StateAwaitingUserInput {
		t.Errorf("state = %s, want %s", s.State(), StateAwaitingUserInput)
	}
	tr := s.Export()
	if len(tr.Messages) != 1 || tr.Messages[0].Role != RolePersona {
		t.Fatalf("expected a single greeting, got %+v", tr.Messages)
	}
	greeting := tr.Messages[0].Content
	if !strings.Contains(greeting, s.Persona().Name) || !strings.Contains(greeting, "Tigo Básico") {
		t.Errorf("greeting = %q", greeting)
	}
	if tr.TrustStage != trust.Reserved || tr.ConversationContext.StartedAt.IsZero() {
		t.Errorf("unexpected initial context %+v / %s", tr.ConversationContext, tr.TrustStage)
	}
}

func TestOpen_UnknownArchetype(t *testing.T) {
	m, _, _ := newTestManager(t, nil, ResponderConfig{})
	_, err := m.Open(context.Background(), OpenRequest{Archetype: "ASTRONAUT"})
	if !errors.Is(err, evaluator.ErrUnknownArchetype) {
		t.Fatalf("expected ErrUnknownArchetype, got %v", err)
	}
}

func TestOpen_EvaluationPinsPersona(t *testing.T) {
	m, _, _ := newTestManager(t, nil, ResponderConfig{})
	want := knowledge.Personas(knowledge.Professional)[2]
	eval := &evaluator.SegmentReaction{
		Archetype:      knowledge.Professional,
		PersonaContext: evaluator.PersonaSummary{Name: want.Name},
	}
	s, err := m.Open(context.Background(), OpenRequest{Archetype: knowledge.Professional, Evaluation: eval})
	if err != nil {
		t.Fatal(err)
	}
	if s.Persona() != want {
		t.Errorf("persona = %+v, want %+v", s.Persona(), want)
	}
}

func TestReply_LocalWhenHealthCheckFails(t *testing.T) {
	fb := &fakeBackend{healthStatus: http.StatusServiceUnavailable, chatStatus: http.StatusOK, chatBody: `{"success":true,"response":"remoto"}`}
	m, _, _ := newTestManager(t, fb.server(t), ResponderConfig{RemoteEnabled: true})
	if m.Responder().CheckHealth(context.Background()) {
		t.Fatal("health check should fail")
	}

	s, err := m.Open(context.Background(), OpenRequest{Archetype: knowledge.Controller, Concept: tigoBasico()})
	if err != nil {
		t.Fatal(err)
	}
	for _, msg := range []string{"¿Cuánto cuesta?", "¿Hay descuento?", "hola"} {
		reply, err := m.Send(context.Background(), s.ID(), msg)
		if err != nil {
			t.Fatal(err)
		}
		if reply.Source != SourceLocal || reply.Message.Source != SourceLocal {
			t.Errorf("reply to %q came from %s", msg, reply.Source)
		}
	}
	if n := fb.chatCalls.Load(); n != 0 {
		t.Errorf("generation endpoint called %d times while backend unavailable", n)
	}
	if st := m.Responder().Status(); !st.RemoteEnabled || st.BackendAvailable {
		t.Errorf("status = %+v", st)
	}
}

func TestReply_RemoteVerbatim(t *testing.T) {
	fb := &fakeBackend{healthStatus: http.StatusOK, chatStatus: http.StatusOK, chatBody: `{"success":true,"response":"Pues mire, me parece caro."}`}
	m, _, _ := newTestManager(t, fb.server(t), ResponderConfig{RemoteEnabled: true, CreativityLevel: 40})
	if !m.Responder().CheckHealth(context.Background()) {
		t.Fatal("health check should succeed")
	}
	s, err := m.Open(context.Background(), OpenRequest{Archetype: knowledge.Controller, Concept: tigoBasico()})
	if err != nil {
		t.Fatal(err)
	}

	reply, err := m.Send(context.Background(), s.ID(), "¿Qué opina?")
	if err != nil {
		t.Fatal(err)
	}
	if reply.Source != SourceRemote || reply.Message.Content != "Pues mire, me parece caro." {
		t.Errorf("reply = %+v", reply)
	}

	req, ok := fb.lastRequest.Load().(backend.ChatRequest)
	if !ok {
		t.Fatal("backend did not receive a request")
	}
	if req.Archetype != "CONTROLLER" || req.UserMessage != "¿Qué opina?" {
		t.Errorf("unexpected request %+v", req)
	}
	if len(req.ConversationHistory) != 1 || req.ConversationHistory[0].Role != "assistant" {
		t.Errorf("history should carry the greeting, got %+v", req.ConversationHistory)
	}
	if req.ConceptDetails == nil || req.ConceptDetails.Name != "Tigo Básico" {
		t.Errorf("concept not forwarded: %+v", req.ConceptDetails)
	}
	if req.CreativityLevel != 40 || req.Temperature != 0.4 {
		t.Errorf("creativity %d / temperature %f", req.CreativityLevel, req.Temperature)
	}
}

func TestReply_RemoteFailureFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`},
		{"success false", http.StatusOK, `{"success":false,"error":"quota"}`},
		{"empty response", http.StatusOK, `{"success":true,"response":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeBackend{healthStatus: http.StatusOK, chatStatus: tt.status, chatBody: tt.body}
			m, _, _ := newTestManager(t, fb.server(t), ResponderConfig{RemoteEnabled: true})
			m.Responder().CheckHealth(context.Background())
			s, err := m.Open(context.Background(), OpenRequest{Archetype: knowledge.Pragmatist, Concept: tigoBasico()})
			if err != nil {
				t.Fatal(err)
			}
			reply, err := m.Send(context.Background(), s.ID(), "¿Cuánto cuesta?")
			if err != nil {
				t.Fatal(err)
			}
			if reply.Source != SourceLocal || !strings.Contains(reply.Message.Content, "L 300") {
				t.Errorf("expected local price reply, got %+v", reply)
			}
			if fb.chatCalls.Load() != 1 {
				t.Errorf("expected one remote attempt, got %d", fb.chatCalls.Load())
			}
		})
	}
}

func TestReply_RemoteDisabled(t *testing.T) {
	fb := &fakeBackend{healthStatus: http.StatusOK, chatStatus: http.StatusOK, chatBody: `{"success":true,"response":"remoto"}`}
	m, _, _ := newTestManager(t, fb.server(t), ResponderConfig{RemoteEnabled: false})
	m.Responder().CheckHealth(context.Background())
	s, _ := m.Open(context.Background(), OpenRequest{Archetype: knowledge.TrendyExplorer})
	reply, err := m.Send(context.Background(), s.ID(), "¿Qué beneficio trae?")
	if err != nil {
		t.Fatal(err)
	}
	if reply.Source != SourceLocal || fb.chatCalls.Load() != 0 {
		t.Errorf("remote used while disabled: %+v, calls %d", reply, fb.chatCalls.Load())
	}
}

func TestReply_UpdatesCounters(t *testing.T) {
	m, _, _ := newTestManager(t, nil, ResponderConfig{})
	s, _ := m.Open(context.Background(), OpenRequest{Archetype: knowledge.Resigned, Concept: tigoBasico()})
	for i := 0; i < 12; i++ {
		if _, err := m.Send(context.Background(), s.ID(), "¿Y la cobertura?"); err != nil {
			t.Fatal(err)
		}
		convo := s.Context()
		want := math.Min(float64(i+1)*trust.Step, 1)
		if convo.QuestionsAsked != i+1 || math.Abs(convo.TrustLevel-want) > 1e-9 {
			t.Fatalf("after %d replies context = %+v", i+1, convo)
		}
	}
	if s.Context().TrustLevel != 1 {
		t.Errorf("trust should cap at 1, got %f", s.Context().TrustLevel)
	}
	if got := len(s.Export().Messages); got != 25 {
		t.Errorf("transcript has %d messages, want 25", got)
	}
}

func TestReply_RejectsEmptyAndClosed(t *testing.T) {
	m, _, _ := newTestManager(t, nil, ResponderConfig{})
	s, _ := m.Open(context.Background(), OpenRequest{Archetype: knowledge.Professional})
	if _, err := m.Send(context.Background(), s.ID(), "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("expected ErrEmptyMessage, got %v", err)
	}
	s.Close()
	if _, err := m.Responder().Reply(context.Background(), s, "hola"); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
	if _, err := m.Send(context.Background(), "missing", "hola"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func waitForState(t *testing.T, s *Session, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.State() != want {
		if time.Now().After(deadline) {
			t.Fatalf("session never reached %s", want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestReply_CloseDuringTypingDiscardsReply(t *testing.T) {
	m, _, _ := newTestManager(t, nil, ResponderConfig{TypingDelayMin: time.Hour, TypingDelayMax: time.Hour})
	s, _ := m.Open(context.Background(), OpenRequest{Archetype: knowledge.Controller, Concept: tigoBasico()})

	errc := make(chan error, 1)
	go func() {
		_, err := m.Responder().Reply(context.Background(), s, "¿Cuánto cuesta?")
		errc <- err
	}()
	waitForState(t, s, StateGeneratingResponse)

	if _, err := m.Responder().Reply(context.Background(), s, "¿Sigue ahí?"); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy while generating, got %v", err)
	}

	if _, err := m.Close(context.Background(), s.ID()); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-errc:
		if !errors.Is(err, ErrSessionClosed) {
			t.Errorf("expected ErrSessionClosed, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pending reply was not cancelled by Close")
	}

	tr := s.Export()
	if tr.State != StateClosed || tr.ConversationContext.QuestionsAsked != 0 || tr.ConversationContext.TrustLevel != 0 {
		t.Errorf("closed session was mutated: %+v", tr)
	}
	for _, msg := range tr.Messages[1:] {
		if msg.Role == RolePersona {
			t.Errorf("discarded reply was recorded: %+v", msg)
		}
	}
}

func TestReply_ContextCancelReturnsToAwaiting(t *testing.T) {
	m, _, _ := newTestManager(t, nil, ResponderConfig{TypingDelayMin: time.Hour, TypingDelayMax: time.Hour})
	s, _ := m.Open(context.Background(), OpenRequest{Archetype: knowledge.Pragmatist})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := m.Send(ctx, s.ID(), "hola"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if s.State() != StateAwaitingUserInput || s.Context().QuestionsAsked != 0 {
		t.Errorf("state %s / context %+v after cancelled reply", s.State(), s.Context())
	}
}

func TestReply_TypingDelayElapses(t *testing.T) {
	m, _, _ := newTestManager(t, nil, ResponderConfig{TypingDelayMin: 5 * time.Millisecond, TypingDelayMax: 10 * time.Millisecond})
	s, _ := m.Open(context.Background(), OpenRequest{Archetype: knowledge.Entrepreneur})
	start := time.Now()
	if _, err := m.Send(context.Background(), s.ID(), "hola"); err != nil {
		t.Fatal(err)
	}
	if time.Since(start) < 5*time.Millisecond {
		t.Error("typing delay was skipped")
	}
}

func TestManager_PersistsAndExportsClosed(t *testing.T) {
	m, rec, docs := newTestManager(t, nil, ResponderConfig{})
	ctx := context.Background()
	s, _ := m.Open(ctx, OpenRequest{Archetype: knowledge.Controller, Concept: tigoBasico()})
	if _, err := m.Send(ctx, s.ID(), "¿Hay descuento?"); err != nil {
		t.Fatal(err)
	}

	var stored Transcript
	if err := docs.Get(ctx, store.KindChat, s.ID(), &stored); err != nil {
		t.Fatalf("transcript not persisted after reply: %v", err)
	}
	if len(stored.Messages) != 3 {
		t.Errorf("stored transcript has %d messages, want 3", len(stored.Messages))
	}

	closed, err := m.Close(ctx, s.ID())
	if err != nil {
		t.Fatal(err)
	}
	if closed.State != StateClosed {
		t.Errorf("closed transcript state = %s", closed.State)
	}
	if _, err := m.Get(s.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("closed session still open: %v", err)
	}
	if _, err := m.Close(ctx, s.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second close should report not found, got %v", err)
	}

	exported, err := m.Export(ctx, s.ID())
	if err != nil {
		t.Fatal(err)
	}
	if exported.State != StateClosed || len(exported.Messages) != 3 || exported.ConversationContext.QuestionsAsked != 1 {
		t.Errorf("exported transcript = %+v", exported)
	}
	if _, err := m.Export(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}

	subjects := rec.Subjects()
	if len(subjects) != 2 || subjects[0] != hermes.SubjectChatMessage || subjects[1] != hermes.SubjectChatClosed {
		t.Errorf("published subjects = %v", subjects)
	}
	var evt hermes.ChatEvent
	if err := json.Unmarshal(rec.Messages()[0].Data, &evt); err != nil {
		t.Fatal(err)
	}
	if evt.SessionID != s.ID() || evt.Source != string(SourceLocal) || evt.QuestionsAsked != 1 {
		t.Errorf("chat event = %+v", evt)
	}
}

func TestManager_CloseAll(t *testing.T) {
	m, _, _ := newTestManager(t, nil, ResponderConfig{})
	a, _ := m.Open(context.Background(), OpenRequest{Archetype: knowledge.Controller})
	b, _ := m.Open(context.Background(), OpenRequest{Archetype: knowledge.Resigned})
	m.CloseAll(context.Background())
	if a.State() != StateClosed || b.State() != StateClosed {
		t.Errorf("states after CloseAll: %s, %s", a.State(), b.State())
	}
}
