// Package concept defines the marketing concept under evaluation and the
// nine facets it is scored on.
package concept

import (
	"fmt"
	"strings"
	"time"
)

// Type distinguishes campaigns from product concepts.
type Type string

const (
	TypeCampaign       Type = "campaign"
	TypeProductConcept Type = "product_concept"
)

// Tone is the communication register of a concept.
type Tone string

const (
	ToneFormal    Tone = "formal"
	ToneInformal  Tone = "informal"
	ToneEmotional Tone = "emotional"
	ToneTechnical Tone = "technical"
	ToneFun       Tone = "fun"
)

// Valid reports whether t is one of the five tones.
func (t Tone) Valid() bool {
	switch t {
	case ToneFormal, ToneInformal, ToneEmotional, ToneTechnical, ToneFun:
		return true
	}
	return false
}

var toneLabels = map[Tone]string{
	ToneFormal:    "formal",
	ToneInformal:  "cercano",
	ToneEmotional: "emotivo",
	ToneTechnical: "técnico",
	ToneFun:       "divertido",
}

// Label returns the Spanish adjective for t.
func (t Tone) Label() string {
	if l, ok := toneLabels[t]; ok {
		return l
	}
	return string(t)
}

// Concept is a marketing idea under evaluation. It is treated as immutable
// once handed to an evaluation.
type Concept struct {
	ID              string    `json:"id"`
	Type            Type      `json:"type"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Benefits        []string  `json:"benefits"`
	Differentiation string    `json:"differentiation"`
	MonthlyPrice    *float64  `json:"monthly_price,omitempty"`
	TargetAudience  string    `json:"target_audience"`
	Channel         string    `json:"channel"`
	Tone            Tone      `json:"tone"`
	CallToAction    string    `json:"call_to_action"`
	VisualElements  string    `json:"visual_elements,omitempty"`
	TechnicalSpecs  string    `json:"technical_specs,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HasPrice reports whether a usable monthly price is set.
func (c Concept) HasPrice() bool {
	return c.MonthlyPrice != nil && *c.MonthlyPrice > 0
}

// Price returns the monthly price, or 0 when absent.
func (c Concept) Price() float64 {
	if c.MonthlyPrice == nil {
		return 0
	}
	return *c.MonthlyPrice
}

// Validate checks the fields an evaluation cannot proceed without. Everything
// else is optional and degrades to neutral reactions.
func (c Concept) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("concept name is required")
	}
	if c.Type != "" && c.Type != TypeCampaign && c.Type != TypeProductConcept {
		return fmt.Errorf("unknown concept type %q", c.Type)
	}
	if c.MonthlyPrice != nil && *c.MonthlyPrice < 0 {
		return fmt.Errorf("monthly price cannot be negative")
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate a concept under
// evaluation through shared slices.
func (c Concept) Clone() Concept {
	out := c
	if c.Benefits != nil {
		out.Benefits = append([]string(nil), c.Benefits...)
	}
	if c.MonthlyPrice != nil {
		p := *c.MonthlyPrice
		out.MonthlyPrice = &p
	}
	return out
}

// PriceOf is a helper for building concepts with a price.
func PriceOf(v float64) *float64 {
	return &v
}
