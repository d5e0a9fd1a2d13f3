package reaction

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/MikeSquared-Agency/synthpanel/internal/concept"
	"github.com/MikeSquared-Agency/synthpanel/internal/knowledge"
	"github.com/MikeSquared-Agency/synthpanel/internal/narrative"
	"github.com/MikeSquared-Agency/synthpanel/internal/textmatch"
)

// Scores of the two fixed degraded reactions.
const (
	GenericScore      = 60
	MissingPriceScore = 45
)

// benefitBonus is added per relevant benefit beyond the first.
const benefitBonus = 3

// Persona is the identity a reaction is generated for.
type Persona struct {
	Archetype knowledge.Archetype
	Context   knowledge.PersonaContext
	Segment   knowledge.EconomicSegment
}

// NewPersona resolves the economic segment of pc.
func NewPersona(a knowledge.Archetype, pc knowledge.PersonaContext) Persona {
	return Persona{Archetype: a, Context: pc, Segment: knowledge.SegmentForNSE(pc.NSE)}
}

// Generator produces VariableReactions from a Table. It is not safe for
// concurrent use: it owns a single Rand.
type Generator struct {
	table    *Table
	renderer *narrative.Renderer
	rng      Rand
	logger   *slog.Logger
}

// NewGenerator creates a generator. A nil table uses DefaultTable.
func NewGenerator(table *Table, renderer *narrative.Renderer, rng Rand, logger *slog.Logger) *Generator {
	if table == nil {
		table = DefaultTable()
	}
	if renderer == nil {
		renderer = narrative.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{table: table, renderer: renderer, rng: rng, logger: logger}
}

// Generate returns the persona's reaction to variable v of c. It never fails:
// missing data degrades to the missing-price or generic reaction.
func (g *Generator) Generate(v concept.Variable, c concept.Concept, p Persona) VariableReaction {
	if v == concept.VarPrice {
		return g.price(c, p)
	}

	cell, ok := g.table.Cell(v, p.Archetype)
	if !ok {
		return generic(v, c)
	}

	b, ok := g.bindings(c, p)
	if !ok {
		return generic(v, c)
	}

	matched, hits, present := evaluate(v, c, cell.Keywords)
	if !present {
		return generic(v, c)
	}
	b["matched"] = matched
	b["keywords"] = keywordList(v, cell.Keywords)
	b["benefit"] = matched
	b["benefit_hits"] = hits
	b["benefit_count"] = len(c.Benefits)

	rule, mismatch := cell.Match, false
	if hits == 0 {
		rule, mismatch = cell.Mismatch, true
	}

	score := draw(g.rng, rule.Band)
	if v == concept.VarBenefits && hits > 1 {
		score = ClampScore(score + benefitBonus*(hits-1))
	}
	return g.render(v, c, rule, score, mismatch, b)
}

func (g *Generator) price(c concept.Concept, p Persona) VariableReaction {
	b, ok := g.bindings(c, p)
	seg := p.Segment
	if ok {
		b["typical_spend"] = seg.TypicalTelecomSpend.Average()
		b["income"] = seg.IncomeRange.Average()
	}

	if !c.HasPrice() {
		if !ok {
			return fallbackText(concept.VarPrice, c, MissingPriceScore)
		}
		return g.render(concept.VarPrice, c, missingPrice, MissingPriceScore, true, b)
	}

	policy, covered := g.table.Price(p.Archetype)
	if !ok || !covered {
		return generic(concept.VarPrice, c)
	}

	price := c.Price()
	pct := PricePercentage(price, seg)
	increase := PriceIncrease(price, seg)
	b["price"] = price
	b["price_pct"] = round1(pct)
	b["price_increase"] = round1(increase)
	b["spend_delta"] = spendDelta(increase)
	b["comfortable_price"] = math.Round(seg.IncomeRange.Average() * policy.Comfortable / 100)

	cool := false
	if len(policy.CoolKeywords) > 0 {
		_, inName := textmatch.FirstMatch(c.Name, policy.CoolKeywords)
		cool = inName || textmatch.CountMatches(c.Benefits, policy.CoolKeywords) > 0
	}
	tier, ok := policy.tier(pct, cool)
	if !ok {
		return generic(concept.VarPrice, c)
	}
	rule := tier.Rule
	if rule.Feedback == "" {
		rule.Feedback = priceFeedback
	}
	return g.render(concept.VarPrice, c, rule, draw(g.rng, rule.Band), tier.Mismatch, b)
}

var missingPrice = Rule{
	Text:       `{{ informal }}, no dice cuánto cuesta; {{ skeptic }}`,
	Feedback:   `El concepto no indica un precio mensual, así que el segmento NSE {{ nse }} no puede juzgar si es accesible.`,
	Suggestion: `Indicar el precio mensual y compararlo con los {{ typical_spend | lempiras }} que el segmento gasta hoy en telecomunicaciones.`,
}

// PricePercentage is price as a percentage of the segment's average income.
func PricePercentage(price float64, seg knowledge.EconomicSegment) float64 {
	avg := seg.IncomeRange.Average()
	if avg <= 0 {
		return 0
	}
	return price / avg * 100
}

// PriceIncrease is the percentage change of price over the segment's
// average current telecom spend.
func PriceIncrease(price float64, seg knowledge.EconomicSegment) float64 {
	avg := seg.TypicalTelecomSpend.Average()
	if avg <= 0 {
		return 0
	}
	return (price - avg) / avg * 100
}

func spendDelta(increase float64) string {
	switch {
	case math.Abs(increase) <= 5:
		return "es casi lo mismo que pago hoy"
	case increase > 0:
		return fmt.Sprintf("eso es %.0f%% más de lo que pago hoy", increase)
	default:
		return fmt.Sprintf("eso es %.0f%% menos de lo que pago hoy", -increase)
	}
}

func (g *Generator) render(v concept.Variable, c concept.Concept, rule Rule, score int, mismatch bool, b map[string]any) VariableReaction {
	text, err := g.renderer.Render(rule.Text, b)
	if err != nil {
		g.logger.Warn("render reaction text", "variable", v, "error", err)
		return fallbackText(v, c, score)
	}
	feedback, err := g.renderer.Render(rule.Feedback, b)
	if err != nil {
		g.logger.Warn("render reaction feedback", "variable", v, "error", err)
		return fallbackText(v, c, score)
	}
	r := VariableReaction{
		Sentiment:        SentimentFromScore(score),
		Score:            score,
		ReactionText:     text,
		SpecificFeedback: feedback,
	}
	if mismatch {
		s, err := g.renderer.Render(rule.Suggestion, b)
		if err != nil {
			g.logger.Warn("render reaction suggestion", "variable", v, "error", err)
		} else {
			r.ImprovementSuggestion = s
		}
	}
	return r
}

// bindings builds the template variables shared by every rule. One phrase is
// drawn from each pool, in pool order, so a seeded Rand gives stable output.
func (g *Generator) bindings(c concept.Concept, p Persona) (map[string]any, bool) {
	profile, ok := knowledge.Profile(p.Archetype)
	if !ok {
		return nil, false
	}
	lang := knowledge.Language(p.Archetype)

	b := map[string]any{
		"name":               c.Name,
		"description":        c.Description,
		"target":             c.TargetAudience,
		"channel":            c.Channel,
		"tone":               c.Tone.Label(),
		"cta":                c.CallToAction,
		"label":              profile.Label,
		"lens":               profile.Lens,
		"factors":            strings.ToLower(narrative.JoinSpanish(profile.DecisionFactors)),
		"preferred_channels": narrative.JoinSpanish(profile.PreferredChannels),
		"competitor":         knowledge.Market.MainCompetitor,
		"persona":            p.Context.Name,
		"occupation":         p.Context.Occupation,
		"city":               p.Context.City,
		"nse":                p.Segment.Level,
	}
	for _, pool := range knowledge.Pools {
		b[poolBinding[pool]] = pick(g.rng, lang[pool])
	}
	return b, true
}

var poolBinding = map[knowledge.Pool]string{
	knowledge.PoolFormal:     "formal",
	knowledge.PoolInformal:   "informal",
	knowledge.PoolPrice:      "price_phrase",
	knowledge.PoolQuality:    "quality",
	knowledge.PoolTechnology: "tech",
	knowledge.PoolDecision:   "decision",
	knowledge.PoolSkepticism: "skeptic",
	knowledge.PoolExcitement: "excited",
}

// evaluate runs the keyword predicate of v. It returns the matched keyword
// (or benefit), the number of hits and whether the relevant field was set.
func evaluate(v concept.Variable, c concept.Concept, keywords []string) (string, int, bool) {
	switch v {
	case concept.VarBenefits:
		hits, first := 0, ""
		present := false
		for _, benefit := range c.Benefits {
			if strings.TrimSpace(benefit) == "" {
				continue
			}
			present = true
			if _, ok := textmatch.FirstMatch(benefit, keywords); ok {
				if hits == 0 {
					first = benefit
				}
				hits++
			}
		}
		return first, hits, present
	case concept.VarTone:
		if c.Tone == "" {
			return "", 0, false
		}
		for _, kw := range keywords {
			if textmatch.Fold(kw) == textmatch.Fold(string(c.Tone)) {
				return kw, 1, true
			}
		}
		return "", 0, true
	}

	field := c.Field(v)
	if strings.TrimSpace(field) == "" {
		return "", 0, false
	}
	if kw, ok := textmatch.FirstMatch(field, keywords); ok {
		return kw, 1, true
	}
	return "", 0, true
}

func keywordList(v concept.Variable, keywords []string) string {
	n := min(len(keywords), 3)
	out := make([]string, 0, n)
	for _, kw := range keywords[:n] {
		if v == concept.VarTone {
			kw = concept.Tone(kw).Label()
		}
		out = append(out, kw)
	}
	return narrative.JoinSpanish(out)
}

func generic(v concept.Variable, c concept.Concept) VariableReaction {
	return fallbackText(v, c, GenericScore)
}

func fallbackText(v concept.Variable, c concept.Concept, score int) VariableReaction {
	facet := strings.ToLower(v.Label())
	return VariableReaction{
		Sentiment:        SentimentFromScore(score),
		Score:            score,
		ReactionText:     fmt.Sprintf("No tengo una opinión muy formada sobre %s de \"%s\".", facet, c.Name),
		SpecificFeedback: fmt.Sprintf("El concepto no ofrece elementos específicos para evaluar %s con este segmento.", facet),
	}
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
