package reaction

import (
	"math"

	"github.com/MikeSquared-Agency/synthpanel/internal/concept"
	"github.com/MikeSquared-Agency/synthpanel/internal/knowledge"
)

// Band is an inclusive score range a reaction is drawn from.
type Band struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (b Band) zero() bool { return b.Min == 0 && b.Max == 0 }

// Rule is one authored outcome. Text, Feedback and Suggestion are Liquid
// templates; empty fields inherit the variable's defaults.
type Rule struct {
	Band       Band
	Text       string
	Feedback   string
	Suggestion string
}

// Cell is the authored behaviour of one (variable, archetype) pair: the
// keywords its predicate looks for and the rule for each outcome.
type Cell struct {
	Keywords []string
	Match    Rule
	Mismatch Rule
}

func (c Cell) suggest(tpl string) Cell {
	c.Mismatch.Suggestion = tpl
	return c
}

func (c Cell) bands(match, mismatch Band) Cell {
	c.Match.Band = match
	c.Mismatch.Band = mismatch
	return c
}

// PriceTier applies while the price share of income is <= UpTo percent.
type PriceTier struct {
	UpTo     float64
	Mismatch bool
	Rule     Rule
}

// PricePolicy is an archetype's ordered price tiers. CoolTiers replace
// Tiers when the concept hits CoolKeywords in its name or benefits.
type PricePolicy struct {
	Tiers        []PriceTier
	CoolKeywords []string
	CoolTiers    []PriceTier
	// Comfortable is the share of income (percent) the archetype pays
	// without hesitating; used to phrase price suggestions.
	Comfortable float64
}

func (p PricePolicy) tier(pct float64, cool bool) (PriceTier, bool) {
	tiers := p.Tiers
	if cool && len(p.CoolTiers) > 0 {
		tiers = p.CoolTiers
	}
	for _, t := range tiers {
		if pct <= t.UpTo {
			return t, true
		}
	}
	return PriceTier{}, false
}

type cellKey struct {
	variable  concept.Variable
	archetype knowledge.Archetype
}

// Table maps (variable, archetype) to authored cells and archetypes to
// price policies. A missing entry means the generic fallback reaction.
type Table struct {
	cells    map[cellKey]Cell
	defaults map[concept.Variable]Cell
	prices   map[knowledge.Archetype]PricePolicy
}

// NewTable returns an empty table; Set and SetPrice fill it.
func NewTable() *Table {
	return &Table{
		cells:    make(map[cellKey]Cell),
		defaults: make(map[concept.Variable]Cell),
		prices:   make(map[knowledge.Archetype]PricePolicy),
	}
}

// Set authors the cell for (v, a).
func (t *Table) Set(v concept.Variable, a knowledge.Archetype, c Cell) {
	t.cells[cellKey{v, a}] = c
}

// SetDefaults sets the variable-level rules empty cell fields inherit.
func (t *Table) SetDefaults(v concept.Variable, c Cell) {
	t.defaults[v] = c
}

// SetPrice authors the price policy of a.
func (t *Table) SetPrice(a knowledge.Archetype, p PricePolicy) {
	t.prices[a] = p
}

// Cell returns the resolved cell for (v, a) with defaults applied.
func (t *Table) Cell(v concept.Variable, a knowledge.Archetype) (Cell, bool) {
	c, ok := t.cells[cellKey{v, a}]
	if !ok {
		return Cell{}, false
	}
	d := t.defaults[v]
	c.Match = inherit(c.Match, d.Match)
	c.Mismatch = inherit(c.Mismatch, d.Mismatch)
	return c, true
}

// Price returns the price policy of a.
func (t *Table) Price(a knowledge.Archetype) (PricePolicy, bool) {
	p, ok := t.prices[a]
	return p, ok
}

// Covered reports whether (v, a) has an authored cell, or for price an
// authored policy.
func (t *Table) Covered(v concept.Variable, a knowledge.Archetype) bool {
	if v == concept.VarPrice {
		_, ok := t.prices[a]
		return ok
	}
	_, ok := t.cells[cellKey{v, a}]
	return ok
}

func inherit(r, d Rule) Rule {
	if r.Band.zero() {
		r.Band = d.Band
	}
	if r.Feedback == "" {
		r.Feedback = d.Feedback
	}
	if r.Suggestion == "" {
		r.Suggestion = d.Suggestion
	}
	return r
}

var inf = math.Inf(1)
