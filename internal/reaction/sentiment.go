// Package reaction generates a synthetic persona's reaction to one facet of
// a marketing concept.
package reaction

// Sentiment is always derived from a score, never set independently.
type Sentiment string

const (
	VeryPositive Sentiment = "very_positive"
	Positive     Sentiment = "positive"
	Neutral      Sentiment = "neutral"
	Negative     Sentiment = "negative"
	VeryNegative Sentiment = "very_negative"
)

// SentimentFromScore maps a 0-100 score to its sentiment band.
func SentimentFromScore(score int) Sentiment {
	switch {
	case score >= 80:
		return VeryPositive
	case score >= 60:
		return Positive
	case score >= 40:
		return Neutral
	case score >= 20:
		return Negative
	default:
		return VeryNegative
	}
}

// VariableReaction is one persona's reaction to one evaluation variable.
type VariableReaction struct {
	Sentiment             Sentiment `json:"sentiment"`
	Score                 int       `json:"score"`
	ReactionText          string    `json:"reaction_text"`
	SpecificFeedback      string    `json:"specific_feedback"`
	ImprovementSuggestion string    `json:"improvement_suggestion,omitempty"`
}

// ClampScore bounds a score to [0,100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
