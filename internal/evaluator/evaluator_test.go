package evaluator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/MikeSquared-Agency/synthpanel/internal/concept"
	"github.com/MikeSquared-Agency/synthpanel/internal/knowledge"
	"github.com/MikeSquared-Agency/synthpanel/internal/reaction"
)

func newTestEvaluator(seed uint64) *Evaluator {
	return New(Config{Seed: seed}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func tigoBasico() concept.Concept {
	return concept.Concept{
		ID:              "c-1",
		Type:            concept.TypeProductConcept,
		Name:            "Tigo Básico",
		Description:     "Plan sencillo con WhatsApp y llamadas",
		Benefits:        []string{"WhatsApp ilimitado"},
		Differentiation: "Más barato y sin contrato",
		MonthlyPrice:    concept.PriceOf(300),
		TargetAudience:  "Familias",
		Channel:         "Radio",
		Tone:            concept.ToneInformal,
		CallToAction:    "Visita tu pulpería",
	}
}

func TestEvaluateConcept_PreservesOrder(t *testing.T) {
	e := newTestEvaluator(1)
	archetypes := []knowledge.Archetype{knowledge.Professional, knowledge.Resigned}

	got, err := e.EvaluateConcept(context.Background(), tigoBasico(), archetypes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 reactions, got %d", len(got))
	}
	for i, a := range archetypes {
		if got[i].Archetype != a {
			t.Errorf("reaction %d archetype = %s, want %s", i, got[i].Archetype, a)
		}
		if len(got[i].VariableReactions) != 9 {
			t.Errorf("reaction %d has %d variable reactions, want 9", i, len(got[i].VariableReactions))
		}
		for _, v := range concept.Variables {
			if _, ok := got[i].VariableReactions[v]; !ok {
				t.Errorf("reaction %d missing variable %s", i, v)
			}
		}
	}
}

func TestEvaluateConcept_Invariants(t *testing.T) {
	concepts := []concept.Concept{tigoBasico(), {Name: "Solo nombre"}}
	for seed := uint64(1); seed <= 10; seed++ {
		e := newTestEvaluator(seed)
		for _, c := range concepts {
			reactions, err := e.EvaluateConcept(context.Background(), c, knowledge.Archetypes)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, r := range reactions {
				sum := 0
				for _, vr := range r.VariableReactions {
					if vr.Sentiment != reaction.SentimentFromScore(vr.Score) {
						t.Errorf("%s: variable sentiment %s does not match score %d", r.Archetype, vr.Sentiment, vr.Score)
					}
					sum += vr.Score
				}
				want := int(math.Round(float64(sum) / 9))
				if r.OverallScore != want {
					t.Errorf("%s: overall score %d, want %d", r.Archetype, r.OverallScore, want)
				}
				if r.OverallSentiment != reaction.SentimentFromScore(r.OverallScore) {
					t.Errorf("%s: overall sentiment %s does not match %d", r.Archetype, r.OverallSentiment, r.OverallScore)
				}
				if len(r.KeyInsights) > MaxInsights || len(r.Concerns) > MaxConcerns || len(r.Suggestions) > MaxSuggestions {
					t.Errorf("%s: list caps exceeded: %d/%d/%d", r.Archetype, len(r.KeyInsights), len(r.Concerns), len(r.Suggestions))
				}
				if r.LikelihoodToAdopt < 0 || r.LikelihoodToAdopt > 100 || r.LikelihoodToRecommend < 0 || r.LikelihoodToRecommend > 100 {
					t.Errorf("%s: likelihoods out of range: %d/%d", r.Archetype, r.LikelihoodToAdopt, r.LikelihoodToRecommend)
				}
				if r.PersonaContext.Name == "" {
					t.Errorf("%s: persona not assigned", r.Archetype)
				}
			}
		}
	}
}

func TestEvaluateConcept_UnknownArchetype(t *testing.T) {
	e := newTestEvaluator(1)
	_, err := e.EvaluateConcept(context.Background(), tigoBasico(), []knowledge.Archetype{knowledge.Controller, "ASTRONAUT"})
	if !errors.Is(err, ErrUnknownArchetype) {
		t.Fatalf("expected ErrUnknownArchetype, got %v", err)
	}
}

func TestEvaluateConcept_CancelDuringDelay(t *testing.T) {
	e := New(Config{DelayMin: time.Hour, DelayMax: time.Hour}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	got, err := e.EvaluateConcept(ctx, tigoBasico(), []knowledge.Archetype{knowledge.Controller})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if got != nil {
		t.Fatalf("cancelled run returned partial results: %v", got)
	}
}

func TestEvaluateConcept_DelayElapses(t *testing.T) {
	e := New(Config{DelayMin: 5 * time.Millisecond, DelayMax: 10 * time.Millisecond, Seed: 3}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	start := time.Now()
	if _, err := e.EvaluateConcept(context.Background(), tigoBasico(), []knowledge.Archetype{knowledge.Pragmatist}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if time.Since(start) < 5*time.Millisecond {
		t.Error("simulated delay was skipped")
	}
}

func TestEvaluateConcept_SeededRunsRepeat(t *testing.T) {
	a, err := newTestEvaluator(11).EvaluateConcept(context.Background(), tigoBasico(), knowledge.Archetypes)
	if err != nil {
		t.Fatal(err)
	}
	b, err := newTestEvaluator(11).EvaluateConcept(context.Background(), tigoBasico(), knowledge.Archetypes)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("equal seeds produced different evaluations")
	}
}

func TestEvaluateConcept_ResignedConcerns(t *testing.T) {
	got, err := newTestEvaluator(5).EvaluateConcept(context.Background(), tigoBasico(), []knowledge.Archetype{knowledge.Resigned})
	if err != nil {
		t.Fatal(err)
	}
	r := got[0]
	profile, _ := knowledge.Profile(knowledge.Resigned)
	if r.Concerns[0] != profile.TypicalConcerns[0] || r.Concerns[1] != profile.TypicalConcerns[1] {
		t.Errorf("concerns should open with typical concerns, got %v", r.Concerns)
	}
	found := false
	for _, c := range r.Concerns {
		if strings.HasPrefix(c, "Cobertura incierta") {
			found = true
		}
	}
	if !found {
		t.Errorf("resigned personas live outside major cities; expected coverage concern in %v", r.Concerns)
	}
	if !strings.HasPrefix(r.KeyInsights[0], "Fortaleza principal") {
		t.Errorf("first insight should name the strength, got %q", r.KeyInsights[0])
	}
}

func TestEvaluateConcept_MissingPriceConcern(t *testing.T) {
	c := tigoBasico()
	c.MonthlyPrice = nil
	got, err := newTestEvaluator(2).EvaluateConcept(context.Background(), c, []knowledge.Archetype{knowledge.Professional})
	if err != nil {
		t.Fatal(err)
	}
	if got[0].VariableReactions[concept.VarPrice].Score != reaction.MissingPriceScore {
		t.Errorf("price score = %d, want %d", got[0].VariableReactions[concept.VarPrice].Score, reaction.MissingPriceScore)
	}
	found := false
	for _, s := range got[0].Concerns {
		if strings.Contains(s, "no comunica el precio") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected missing price concern in %v", got[0].Concerns)
	}
}

func TestLikelihoods(t *testing.T) {
	tests := []struct {
		name          string
		overall       int
		profile       knowledge.ArchetypeProfile
		wantAdopt     int
		wantRecommend int
	}{
		{"zero score, no traits", 0, knowledge.ArchetypeProfile{}, 0, 0},
		{"zero score, price sensitive", 0, knowledge.ArchetypeProfile{PriceSensitivity: 1}, 0, 0},
		{"perfect score, innovative", 100, knowledge.ArchetypeProfile{InnovationOpenness: 1, BrandImportance: 1}, 100, 95},
		{"perfect score, brand lover", 100, knowledge.ArchetypeProfile{BrandImportance: 1.5}, 100, 100},
		{"midway", 60, knowledge.ArchetypeProfile{InnovationOpenness: 0.5, PriceSensitivity: 0.5, BrandImportance: 0.4}, 65, 54},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adopt, recommend := Likelihoods(tt.overall, tt.profile)
			if adopt != tt.wantAdopt || recommend != tt.wantRecommend {
				t.Errorf("Likelihoods(%d) = (%d, %d), want (%d, %d)", tt.overall, adopt, recommend, tt.wantAdopt, tt.wantRecommend)
			}
		})
	}
}

func TestClampPercent(t *testing.T) {
	tests := map[float64]int{-5: 0, 0: 0, 42: 42, 100: 100, 250: 100}
	for in, want := range tests {
		if got := ClampPercent(in); got != want {
			t.Errorf("ClampPercent(%f) = %d, want %d", in, got, want)
		}
	}
	if got := ClampPercent(math.NaN()); got != 0 {
		t.Errorf("ClampPercent(NaN) = %d, want 0", got)
	}
}

func TestAppendUnique(t *testing.T) {
	var list []string
	for _, s := range []string{"a", "a", " ", "b", "c", "d"} {
		list = appendUnique(list, 3, s)
	}
	if !reflect.DeepEqual(list, []string{"a", "b", "c"}) {
		t.Errorf("appendUnique = %v", list)
	}
}
