package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/synthpanel/internal/chat"
	"github.com/MikeSquared-Agency/synthpanel/internal/concept"
	"github.com/MikeSquared-Agency/synthpanel/internal/evaluator"
	"github.com/MikeSquared-Agency/synthpanel/internal/knowledge"
)

type openChatRequest struct {
	Archetype  string                     `json:"archetype"`
	Concept    *concept.Concept           `json:"concept,omitempty"`
	Evaluation *evaluator.SegmentReaction `json:"evaluation,omitempty"`
}

type sendChatRequest struct {
	Message string `json:"message"`
}

// openChat handles POST /api/v1/chat/sessions
func (s *Server) openChat(w http.ResponseWriter, r *http.Request) {
	var req openChatRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := knowledge.ParseArchetype(req.Archetype)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, err := s.chats.Open(r.Context(), chat.OpenRequest{Archetype: a, Concept: req.Concept, Evaluation: req.Evaluation})
	if err != nil {
		s.chatError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess.Export())
}

// sendChat handles POST /api/v1/chat/sessions/{id}/messages
func (s *Server) sendChat(w http.ResponseWriter, r *http.Request) {
	var req sendChatRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	reply, err := s.chats.Send(r.Context(), chi.URLParam(r, "id"), req.Message)
	if err != nil {
		s.chatError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

// closeChat handles DELETE /api/v1/chat/sessions/{id}
func (s *Server) closeChat(w http.ResponseWriter, r *http.Request) {
	t, err := s.chats.Close(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.chatError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// exportChat handles GET /api/v1/chat/sessions/{id}/export
func (s *Server) exportChat(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, err := s.chats.Export(r.Context(), id)
	if err != nil {
		s.chatError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="chat-%s.json"`, id))
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) chatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chat.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, evaluator.ErrUnknownArchetype):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, chat.ErrSessionClosed), errors.Is(err, chat.ErrBusy):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("chat request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
