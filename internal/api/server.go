// Package api exposes evaluations, summaries and persona interviews over
// HTTP for the browser console.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MikeSquared-Agency/synthpanel/internal/chat"
	"github.com/MikeSquared-Agency/synthpanel/internal/processor"
)

type Options struct {
	Port           int
	APIToken       string
	AllowedOrigins []string
	// EventsConnected reports the event bus connection. Nil means events
	// are not configured.
	EventsConnected func() bool
}

type Server struct {
	router    *chi.Mux
	port      int
	processor *processor.Processor
	chats     *chat.Manager
	logger    *slog.Logger
	httpSrv   *http.Server
	events    func() bool
}

func NewServer(opts Options, proc *processor.Processor, chats *chat.Manager, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", "Location"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s := &Server{
		router:    router,
		port:      opts.Port,
		processor: proc,
		chats:     chats,
		logger:    logger,
		events:    opts.EventsConnected,
	}
	s.httpSrv = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	router.Get("/health", s.health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(opts.APIToken))
		r.Get("/status", s.status)
		r.Get("/archetypes", s.listArchetypes)

		r.Post("/evaluations", s.createEvaluation)
		r.Get("/evaluations/{id}", s.getEvaluation)
		r.Delete("/evaluations/{id}", s.cancelEvaluation)
		r.Get("/evaluations/{id}/export", s.exportEvaluation)

		r.Post("/summaries", s.createSummary)

		r.Post("/chat/sessions", s.openChat)
		r.Post("/chat/sessions/{id}/messages", s.sendChat)
		r.Delete("/chat/sessions/{id}", s.closeChat)
		r.Get("/chat/sessions/{id}/export", s.exportChat)
		r.Get("/chat/sessions/{id}/ws", s.chatSocket)
	})

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.httpSrv.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	st := s.chats.Responder().Status()
	mode := "static"
	if st.RemoteEnabled && st.BackendAvailable {
		mode = "remote"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"service":             "synthpanel",
		"chat_mode":           mode,
		"remote_chat_enabled": st.RemoteEnabled,
		"backend_available":   st.BackendAvailable,
		"events_enabled":      s.events != nil,
		"events_connected":    s.events != nil && s.events(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
