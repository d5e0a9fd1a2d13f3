package evaluator

import (
	"fmt"
	"math"
	"strings"

	"github.com/MikeSquared-Agency/synthpanel/internal/concept"
	"github.com/MikeSquared-Agency/synthpanel/internal/knowledge"
	"github.com/MikeSquared-Agency/synthpanel/internal/narrative"
	"github.com/MikeSquared-Agency/synthpanel/internal/reaction"
)

// concernPricePercent is the share of income above which price becomes a
// concern on its own.
const concernPricePercent = 5

var archetypeInsights = map[knowledge.Archetype]string{
	knowledge.Professional:   "Paga más por un servicio que no falle en horario laboral; mide el valor en productividad.",
	knowledge.Controller:     "Decide en familia y compara cada oferta contra lo que ya paga.",
	knowledge.Entrepreneur:   "Evalúa el plan como inversión: si no ayuda a vender, no lo contrata.",
	knowledge.TrendyExplorer: "Adopta temprano lo que puede mostrar en redes y abandona lo que se vuelve común.",
	knowledge.Pragmatist:     "Busca lo que funciona sin complicaciones y desconfía de las promesas exageradas.",
	knowledge.Resigned:       "Compra por recargas pequeñas y solo cambia si alguien de confianza se lo recomienda.",
}

var archetypeRisks = map[knowledge.Archetype]string{
	knowledge.Professional:   "Riesgo de que el soporte técnico no responda con la rapidez que exige el trabajo.",
	knowledge.Controller:     "Riesgo de cobros adicionales que no aparezcan en el precio anunciado.",
	knowledge.Entrepreneur:   "Riesgo de que el plan no escale si el negocio crece.",
	knowledge.TrendyExplorer: "Riesgo de perder la exclusividad si el plan se masifica.",
	knowledge.Pragmatist:     "Riesgo de que la letra pequeña complique lo que se vende como sencillo.",
	knowledge.Resigned:       "Riesgo de que el plan se perciba como algo que no es para gente como él.",
}

var archetypeRecommendations = map[knowledge.Archetype]string{
	knowledge.Professional:   "Ofrecer una prueba gratuita de 15 días con garantía de velocidad.",
	knowledge.Controller:     "Ofrecer planes familiares con descuento por línea adicional.",
	knowledge.Entrepreneur:   "Incluir herramientas para negocio como WhatsApp Business y facturación.",
	knowledge.TrendyExplorer: "Sumar beneficios exclusivos de temporada para mantener el interés.",
	knowledge.Pragmatist:     "Resumir el plan en tres puntos claros: qué incluye, cuánto cuesta y dónde se activa.",
	knowledge.Resigned:       "Permitir el pago en recargas semanales y comunicarlo en la pulpería.",
}

func insights(reactions map[concept.Variable]reaction.VariableReaction, p reaction.Persona, profile knowledge.ArchetypeProfile) []string {
	out := make([]string, 0, MaxInsights)

	best, bestScore := concept.Variables[0], -1
	for _, v := range concept.Variables {
		if r := reactions[v]; r.Score > bestScore {
			best, bestScore = v, r.Score
		}
	}
	out = appendUnique(out, MaxInsights, fmt.Sprintf("Fortaleza principal: %s (%d/100).", best.Label(), bestScore))

	seg := p.Segment
	out = appendUnique(out, MaxInsights, fmt.Sprintf(
		"El segmento NSE %s tiene ingresos de %s a %s al mes y gasta entre %s y %s en telecomunicaciones.",
		seg.Level,
		narrative.Lempiras(seg.IncomeRange.Min), narrative.Lempiras(seg.IncomeRange.Max),
		narrative.Lempiras(seg.TypicalTelecomSpend.Min), narrative.Lempiras(seg.TypicalTelecomSpend.Max),
	))

	out = appendUnique(out, MaxInsights, fmt.Sprintf("%s Se informa por %s.",
		archetypeInsights[p.Archetype], narrative.JoinSpanish(profile.PreferredChannels)))
	return out
}

func concerns(c concept.Concept, p reaction.Persona, profile knowledge.ArchetypeProfile) []string {
	out := make([]string, 0, MaxConcerns)
	for i, tc := range profile.TypicalConcerns {
		if i == 2 {
			break
		}
		out = appendUnique(out, MaxConcerns, tc)
	}

	if c.HasPrice() {
		pct := reaction.PricePercentage(c.Price(), p.Segment)
		if math.Round(pct*10)/10 > concernPricePercent {
			out = appendUnique(out, MaxConcerns, fmt.Sprintf("El precio representa el %.1f%% del ingreso mensual del segmento.", pct))
		}
	} else {
		out = appendUnique(out, MaxConcerns, "El concepto no comunica el precio mensual.")
	}

	if !knowledge.IsMajorCity(p.Context.City) {
		out = appendUnique(out, MaxConcerns, fmt.Sprintf("Cobertura incierta en %s, fuera de las ciudades principales.", p.Context.City))
	}

	out = appendUnique(out, MaxConcerns, archetypeRisks[p.Archetype])
	return out
}

func suggestions(reactions map[concept.Variable]reaction.VariableReaction, c concept.Concept, p reaction.Persona) []string {
	out := make([]string, 0, MaxSuggestions)
	for _, v := range concept.Variables {
		r := reactions[v]
		if r.Score < suggestionThreshold && r.ImprovementSuggestion != "" {
			out = appendUnique(out, MaxSuggestions, r.ImprovementSuggestion)
		}
	}

	// The family plan only makes sense once price exceeds today's spend.
	if p.Archetype == knowledge.Controller && c.HasPrice() && c.Price() <= p.Segment.TypicalTelecomSpend.Average() {
		return out
	}
	return appendUnique(out, MaxSuggestions, archetypeRecommendations[p.Archetype])
}

// appendUnique appends s unless it is empty, already present, or list is full.
func appendUnique(list []string, limit int, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || len(list) >= limit {
		return list
	}
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
