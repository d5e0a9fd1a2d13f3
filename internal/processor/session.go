// Package processor orchestrates evaluation sessions: it runs the evaluator,
// aggregates the reactions, persists the session and announces every
// lifecycle transition on NATS.
package processor

import (
	"time"

	"github.com/MikeSquared-Agency/synthpanel/internal/concept"
	"github.com/MikeSquared-Agency/synthpanel/internal/evaluator"
	"github.com/MikeSquared-Agency/synthpanel/internal/knowledge"
	"github.com/MikeSquared-Agency/synthpanel/internal/summary"
)

// Status of an evaluation session.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusEvaluating Status = "evaluating"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// topItems bounds TopConcerns and TopSuggestions.
const topItems = 3

// Highlights is the short-form summary stored on a session.
type Highlights struct {
	AverageScore            float64          `json:"average_score"`
	BestPerformingVariable  concept.Variable `json:"best_performing_variable"`
	WorstPerformingVariable concept.Variable `json:"worst_performing_variable"`
	TopConcerns             []string         `json:"top_concerns"`
	TopSuggestions          []string         `json:"top_suggestions"`
}

// EvaluationSession is one run of a concept against a set of archetypes.
type EvaluationSession struct {
	ID                 string                      `json:"id"`
	Concept            concept.Concept             `json:"concept"`
	SelectedArchetypes []knowledge.Archetype       `json:"selected_archetypes"`
	Reactions          []evaluator.SegmentReaction `json:"reactions"`
	Summary            *Highlights                 `json:"summary,omitempty"`
	Report             *summary.Summary            `json:"report,omitempty"`
	CreatedAt          time.Time                   `json:"created_at"`
	CompletedAt        *time.Time                  `json:"completed_at,omitempty"`
	Status             Status                      `json:"status"`
}

func highlightsOf(s summary.Summary) *Highlights {
	h := &Highlights{
		AverageScore:   s.OverallAverage,
		TopConcerns:    head(s.Concerns, topItems),
		TopSuggestions: head(s.Suggestions, topItems),
	}
	if n := len(s.VariableRanking); n > 0 {
		h.BestPerformingVariable = s.VariableRanking[0].Variable
		h.WorstPerformingVariable = s.VariableRanking[n-1].Variable
	}
	return h
}

func head(list []string, n int) []string {
	if len(list) > n {
		list = list[:n]
	}
	return append([]string{}, list...)
}
