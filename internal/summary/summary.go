// Package summary aggregates per-archetype reactions into a cross-segment
// verdict.
package summary

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/MikeSquared-Agency/synthpanel/internal/concept"
	"github.com/MikeSquared-Agency/synthpanel/internal/evaluator"
)

// ErrNoReactions is returned by Summarize for an empty reaction list.
var ErrNoReactions = errors.New("no reactions to summarize")

// Output caps.
const (
	MaxInsights    = 5
	MaxConcerns    = 6
	MaxSuggestions = 5
)

// criticalMean is the mean score below which a variable is a critical issue.
const criticalMean = 40

// Consensus bands the spread of overall scores across archetypes.
type Consensus string

const (
	ConsensusHigh     Consensus = "High"
	ConsensusModerate Consensus = "Moderate"
	ConsensusLow      Consensus = "Low"
)

// Verdict is the launch recommendation for a concept.
type Verdict string

const (
	VerdictReady          Verdict = "Ready to launch"
	VerdictMinor          Verdict = "Needs minor adjustments"
	VerdictMajor          Verdict = "Needs major adjustments"
	VerdictNotRecommended Verdict = "Not recommended"
)

// Impact grades a critical issue.
type Impact string

const (
	ImpactCritical Impact = "CRITICAL"
	ImpactHigh     Impact = "HIGH"
	ImpactMedium   Impact = "MEDIUM"
)

type VariableStat struct {
	Variable concept.Variable `json:"variable"`
	Mean     float64          `json:"mean"`
	Min      int              `json:"min"`
	Max      int              `json:"max"`
}

type CriticalIssue struct {
	Variable concept.Variable `json:"variable"`
	Mean     float64          `json:"mean"`
	Impact   Impact           `json:"impact"`
}

// Summary is the cross-archetype report of one evaluation.
type Summary struct {
	OverallAverage  float64         `json:"overall_average"`
	StdDev          float64         `json:"std_dev"`
	MinScore        int             `json:"min_score"`
	MaxScore        int             `json:"max_score"`
	ConsensusLevel  Consensus       `json:"consensus_level"`
	Verdict         Verdict         `json:"verdict"`
	VariableRanking []VariableStat  `json:"variable_ranking"`
	CriticalIssues  []CriticalIssue `json:"critical_issues"`
	KeyInsights     []string        `json:"key_insights"`
	Concerns        []string        `json:"concerns"`
	Suggestions     []string        `json:"suggestions"`
}

// Summarize aggregates reactions. It is pure: equal input gives equal output.
func Summarize(reactions []evaluator.SegmentReaction) (Summary, error) {
	if len(reactions) == 0 {
		return Summary{}, ErrNoReactions
	}

	scores := make([]float64, len(reactions))
	minScore, maxScore := reactions[0].OverallScore, reactions[0].OverallScore
	for i, r := range reactions {
		scores[i] = float64(r.OverallScore)
		minScore = min(minScore, r.OverallScore)
		maxScore = max(maxScore, r.OverallScore)
	}
	avg := mean(scores)
	sd := stdDev(scores, avg)

	ranking := rankVariables(reactions)

	s := Summary{
		OverallAverage:  avg,
		StdDev:          sd,
		MinScore:        minScore,
		MaxScore:        maxScore,
		ConsensusLevel:  ConsensusFromStdDev(sd),
		Verdict:         VerdictFor(avg),
		VariableRanking: ranking,
		CriticalIssues:  criticalIssues(ranking),
		KeyInsights:     []string{},
		Concerns:        []string{},
		Suggestions:     []string{},
	}
	for _, r := range reactions {
		s.KeyInsights = merge(s.KeyInsights, r.KeyInsights, MaxInsights)
		s.Concerns = merge(s.Concerns, r.Concerns, MaxConcerns)
		s.Suggestions = merge(s.Suggestions, r.Suggestions, MaxSuggestions)
	}
	return s, nil
}

// ConsensusFromStdDev bands a standard deviation: <10 High, <20 Moderate,
// otherwise Low.
func ConsensusFromStdDev(sd float64) Consensus {
	switch {
	case sd < 10:
		return ConsensusHigh
	case sd < 20:
		return ConsensusModerate
	default:
		return ConsensusLow
	}
}

// VerdictFor bands an overall average: >=75, >=60, >=40, else not
// recommended.
func VerdictFor(avg float64) Verdict {
	switch {
	case avg >= 75:
		return VerdictReady
	case avg >= 60:
		return VerdictMinor
	case avg >= 40:
		return VerdictMajor
	default:
		return VerdictNotRecommended
	}
}

// ImpactOf grades a critical variable: price CRITICAL, name and benefits
// HIGH, the rest MEDIUM.
func ImpactOf(v concept.Variable) Impact {
	switch v {
	case concept.VarPrice:
		return ImpactCritical
	case concept.VarName, concept.VarBenefits:
		return ImpactHigh
	default:
		return ImpactMedium
	}
}

func rankVariables(reactions []evaluator.SegmentReaction) []VariableStat {
	ranking := make([]VariableStat, 0, len(concept.Variables))
	for _, v := range concept.Variables {
		stat := VariableStat{Variable: v, Min: math.MaxInt, Max: math.MinInt}
		sum := 0
		for _, r := range reactions {
			score := r.VariableReactions[v].Score
			sum += score
			stat.Min = min(stat.Min, score)
			stat.Max = max(stat.Max, score)
		}
		stat.Mean = float64(sum) / float64(len(reactions))
		ranking = append(ranking, stat)
	}
	// Stable so ties keep canonical variable order.
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Mean > ranking[j].Mean
	})
	return ranking
}

func criticalIssues(ranking []VariableStat) []CriticalIssue {
	issues := []CriticalIssue{}
	for _, stat := range ranking {
		if stat.Mean < criticalMean {
			issues = append(issues, CriticalIssue{Variable: stat.Variable, Mean: stat.Mean, Impact: ImpactOf(stat.Variable)})
		}
	}
	return issues
}

// merge appends the unseen entries of add to dst, keeping first occurrences,
// until dst holds limit entries.
func merge(dst, add []string, limit int) []string {
	for _, s := range add {
		if len(dst) >= limit {
			break
		}
		s = strings.TrimSpace(s)
		if s == "" || contains(dst, s) {
			continue
		}
		dst = append(dst, s)
	}
	return dst
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdDev is the population standard deviation of xs around m.
func stdDev(xs []float64, m float64) float64 {
	variance := 0.0
	for _, x := range xs {
		variance += (x - m) * (x - m)
	}
	return math.Sqrt(variance / float64(len(xs)))
}
