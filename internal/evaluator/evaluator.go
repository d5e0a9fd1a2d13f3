// Package evaluator runs the reaction generator across every evaluation
// variable for a list of archetypes and rolls the results up into one
// SegmentReaction per archetype.
package evaluator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/MikeSquared-Agency/synthpanel/internal/concept"
	"github.com/MikeSquared-Agency/synthpanel/internal/knowledge"
	"github.com/MikeSquared-Agency/synthpanel/internal/narrative"
	"github.com/MikeSquared-Agency/synthpanel/internal/reaction"
)

// ErrUnknownArchetype is returned when a requested archetype is not one of
// the six known ones.
var ErrUnknownArchetype = errors.New("unknown archetype")

// Limits of the per-archetype lists.
const (
	MaxInsights    = 3
	MaxConcerns    = 4
	MaxSuggestions = 3
)

// suggestionThreshold is the score below which a variable's improvement
// suggestion is promoted to the segment's suggestions.
const suggestionThreshold = 50

// PersonaSummary is the public identity of the persona who reacted.
type PersonaSummary struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	City       string `json:"city"`
	Occupation string `json:"occupation"`
}

// SegmentReaction is one archetype's full reaction to a concept.
type SegmentReaction struct {
	Archetype             knowledge.Archetype                            `json:"archetype"`
	OverallSentiment      reaction.Sentiment                             `json:"overall_sentiment"`
	OverallScore          int                                            `json:"overall_score"`
	VariableReactions     map[concept.Variable]reaction.VariableReaction `json:"variable_reactions"`
	KeyInsights           []string                                       `json:"key_insights"`
	Concerns              []string                                       `json:"concerns"`
	Suggestions           []string                                       `json:"suggestions"`
	LikelihoodToAdopt     int                                            `json:"likelihood_to_adopt"`
	LikelihoodToRecommend int                                            `json:"likelihood_to_recommend"`
	PersonaContext        PersonaSummary                                 `json:"persona_context"`
}

// Config tunes an Evaluator.
type Config struct {
	// DelayMin and DelayMax bound the simulated processing delay of a run.
	// Both zero disables it.
	DelayMin time.Duration
	DelayMax time.Duration
	// Seed pins the random source; 0 seeds every run from the runtime.
	Seed uint64
	// Table overrides the authored reaction table.
	Table *reaction.Table
}

// Evaluator is safe for concurrent use; every run gets its own Rand.
type Evaluator struct {
	table    *reaction.Table
	renderer *narrative.Renderer
	seeds    func() reaction.Rand
	delayMin time.Duration
	delayMax time.Duration
	logger   *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Evaluator {
	table := cfg.Table
	if table == nil {
		table = reaction.DefaultTable()
	}
	return &Evaluator{
		table:    table,
		renderer: narrative.New(),
		seeds:    reaction.SeedSequence(cfg.Seed),
		delayMin: cfg.DelayMin,
		delayMax: cfg.DelayMax,
		logger:   logger,
	}
}

// EvaluateConcept returns one SegmentReaction per archetype, in input order.
// A cancelled context yields ctx.Err() and no results.
func (e *Evaluator) EvaluateConcept(ctx context.Context, c concept.Concept, archetypes []knowledge.Archetype) ([]SegmentReaction, error) {
	for _, a := range archetypes {
		if !a.Valid() {
			return nil, fmt.Errorf("evaluate concept: %w: %q", ErrUnknownArchetype, a)
		}
	}

	rng := e.seeds()
	if err := e.wait(ctx, rng); err != nil {
		return nil, err
	}

	gen := reaction.NewGenerator(e.table, e.renderer, rng, e.logger)
	out := make([]SegmentReaction, 0, len(archetypes))
	for _, a := range archetypes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, e.evaluateArchetype(gen, rng, c, a))
	}

	e.logger.Debug("concept evaluated", "concept", c.Name, "archetypes", len(archetypes))
	return out, nil
}

func (e *Evaluator) evaluateArchetype(gen *reaction.Generator, rng reaction.Rand, c concept.Concept, a knowledge.Archetype) SegmentReaction {
	pool := knowledge.Personas(a)
	pc := pool[rng.IntN(len(pool))]
	p := reaction.NewPersona(a, pc)
	profile, _ := knowledge.Profile(a)

	reactions := make(map[concept.Variable]reaction.VariableReaction, len(concept.Variables))
	for _, v := range concept.Variables {
		reactions[v] = gen.Generate(v, c, p)
	}

	overall := OverallScore(reactions)
	adopt, recommend := Likelihoods(overall, profile)

	return SegmentReaction{
		Archetype:             a,
		OverallSentiment:      reaction.SentimentFromScore(overall),
		OverallScore:          overall,
		VariableReactions:     reactions,
		KeyInsights:           insights(reactions, p, profile),
		Concerns:              concerns(c, p, profile),
		Suggestions:           suggestions(reactions, c, p),
		LikelihoodToAdopt:     adopt,
		LikelihoodToRecommend: recommend,
		PersonaContext: PersonaSummary{
			Name:       pc.Name,
			Age:        pc.Age,
			City:       pc.City,
			Occupation: pc.Occupation,
		},
	}
}

// wait blocks for a random delay in [delayMin, delayMax] or until ctx ends.
func (e *Evaluator) wait(ctx context.Context, rng reaction.Rand) error {
	d := e.delayMin
	if span := e.delayMax - e.delayMin; span > 0 {
		d += time.Duration(rng.IntN(int(span) + 1))
	}
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

// OverallScore is the rounded mean of the variable scores.
func OverallScore(reactions map[concept.Variable]reaction.VariableReaction) int {
	if len(reactions) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reactions {
		sum += r.Score
	}
	return int(math.Round(float64(sum) / float64(len(reactions))))
}

// Likelihoods derives the adoption and recommendation likelihoods from the
// overall score and the archetype's traits.
//
//	adopt     = clamp(round(overall + innovation*20 - priceSensitivity*10))
//	recommend = clamp(round(overall*0.8 + brandImportance*15))
func Likelihoods(overall int, profile knowledge.ArchetypeProfile) (adopt, recommend int) {
	o := float64(overall)
	adopt = ClampPercent(math.Round(o + profile.InnovationOpenness*20 + profile.PriceSensitivity*(-10)))
	recommend = ClampPercent(math.Round(o*0.8 + profile.BrandImportance*15))
	return adopt, recommend
}

// ClampPercent bounds f to [0,100] and truncates it to an int. NaN maps to 0.
func ClampPercent(f float64) int {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return int(f)
}
