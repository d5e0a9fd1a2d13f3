package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/synthpanel/internal/concept"
	"github.com/MikeSquared-Agency/synthpanel/internal/evaluator"
	"github.com/MikeSquared-Agency/synthpanel/internal/knowledge"
	"github.com/MikeSquared-Agency/synthpanel/internal/processor"
	"github.com/MikeSquared-Agency/synthpanel/internal/summary"
)

type evaluationRequest struct {
	Concept    concept.Concept `json:"concept"`
	Archetypes []string        `json:"archetypes"`
}

type summaryRequest struct {
	Reactions []evaluator.SegmentReaction `json:"reactions"`
}

type archetypeInfo struct {
	knowledge.ArchetypeProfile
	Personas []knowledge.PersonaContext `json:"personas"`
}

// listArchetypes handles GET /api/v1/archetypes
func (s *Server) listArchetypes(w http.ResponseWriter, r *http.Request) {
	out := make([]archetypeInfo, 0, len(knowledge.Archetypes))
	for _, a := range knowledge.Archetypes {
		p, _ := knowledge.Profile(a)
		out = append(out, archetypeInfo{ArchetypeProfile: p, Personas: knowledge.Personas(a)})
	}
	writeJSON(w, http.StatusOK, out)
}

// createEvaluation handles POST /api/v1/evaluations. The evaluation runs
// for the lifetime of the request; a client that disconnects cancels it.
// With ?async=true the session is answered right away with 202 while it is
// still evaluating, and runs on until it finishes or is cancelled.
func (s *Server) createEvaluation(w http.ResponseWriter, r *http.Request) {
	var req evaluationRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	archetypes, err := processor.ParseArchetypes(req.Archetypes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	async, _ := strconv.ParseBool(r.URL.Query().Get("async"))
	start, created := s.processor.Start, http.StatusCreated
	if async {
		start, created = s.processor.Submit, http.StatusAccepted
	}

	sess, err := start(r.Context(), req.Concept, archetypes)
	switch {
	case err == nil:
		if async {
			w.Header().Set("Location", "/api/v1/evaluations/"+sess.ID)
		}
		writeJSON(w, created, sess)
	case errors.Is(err, processor.ErrInvalidConcept), errors.Is(err, evaluator.ErrUnknownArchetype):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, processor.ErrCancelled):
		writeJSON(w, http.StatusConflict, sess)
	default:
		s.logger.Error("evaluation failed", "concept", req.Concept.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "evaluation failed")
	}
}

// getEvaluation handles GET /api/v1/evaluations/{id}
func (s *Server) getEvaluation(w http.ResponseWriter, r *http.Request) {
	sess, err := s.processor.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.evaluationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// cancelEvaluation handles DELETE /api/v1/evaluations/{id}
func (s *Server) cancelEvaluation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.processor.Cancel(r.Context(), id); err != nil {
		s.evaluationError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"id": id, "status": "cancelling"})
}

// exportEvaluation handles GET /api/v1/evaluations/{id}/export
func (s *Server) exportEvaluation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	out, err := s.processor.Export(r.Context(), id)
	if err != nil {
		s.evaluationError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="evaluation-%s.json"`, id))
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// createSummary handles POST /api/v1/summaries
func (s *Server) createSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sum, err := summary.Summarize(req.Reactions)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) evaluationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, processor.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, processor.ErrNotRunning):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("evaluation request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
