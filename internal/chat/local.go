package chat

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/synthpanel/internal/concept"
	"github.com/MikeSquared-Agency/synthpanel/internal/knowledge"
	"github.com/MikeSquared-Agency/synthpanel/internal/narrative"
	"github.com/MikeSquared-Agency/synthpanel/internal/reaction"
	"github.com/MikeSquared-Agency/synthpanel/internal/textmatch"
)

// Topic is one keyword trigger of the local reply table.
type Topic string

const (
	TopicDiscount   Topic = "discount"
	TopicPrice      Topic = "price"
	TopicBenefit    Topic = "benefit"
	TopicCoverage   Topic = "coverage"
	TopicCompetitor Topic = "competitor"
)

// Topics lists triggers in match order. Discount comes before price so
// "50% de descuento en el precio" is answered as a discount.
var Topics = []Topic{TopicDiscount, TopicPrice, TopicBenefit, TopicCoverage, TopicCompetitor}

// "claro" alone is everyday Spanish ("no me quedó claro"); the competitor
// brand only counts next to a verb or preposition.
var topicKeywords = map[Topic][]string{
	TopicDiscount:   {"descuento", "50%", "oferta", "promo", "rebaja", "gratis", "discount"},
	TopicPrice:      {"precio", "cuesta", "costo", "cuanto", "pagar", "caro", "barato", "price", "cost"},
	TopicBenefit:    {"beneficio", "ventaja", "incluye", "para que sirve", "benefit", "advantage"},
	TopicCoverage:   {"cobertura", "senal", "se cae", "4g", "5g", "coverage"},
	TopicCompetitor: {"tiene claro", "claro tiene", "de claro", "con claro", "competencia", "otra compania", "cambiarse", "cambiaria", "competitor"},
}

// MatchTopic returns the first topic whose keywords appear in message.
func MatchTopic(message string) (Topic, bool) {
	for _, t := range Topics {
		if _, ok := textmatch.FirstMatch(message, topicKeywords[t]); ok {
			return t, true
		}
	}
	return "", false
}

const priceClause = `{% if has_price %}{{ price | lempiras }} al mes{% else %}un precio que todavía no me han dicho{% endif %}`

// localReplies holds the long-form trigger replies per archetype.
var localReplies = map[knowledge.Archetype]map[Topic]string{
	knowledge.Professional: {
		TopicDiscount:   `Un descuento siempre se agradece, pero no me caso con una promoción. Si después del periodo de oferta la conexión falla en mis videollamadas, el ahorro no me sirve de nada. Prefiero saber cuánto pago de forma permanente.`,
		TopicPrice:      `Por ` + priceClause + ` lo veo como una inversión {{ lens }}. Si me garantiza estabilidad y buena velocidad de subida, lo pago sin problema. Lo que no acepto es pagar por algo que se cae a media reunión.`,
		TopicBenefit:    `De "{{ name }}" me interesa {{ benefit }}. Para alguien que trabaja conectado todo el día, lo que más valoro es que sea confiable y que el soporte responda rápido.`,
		TopicCoverage:   `En {{ city }} trabajo con clientes todo el día y necesito señal estable. Si la cobertura falla, pierdo reuniones y eso me cuesta más que el plan.`,
		TopicCompetitor: `Ahora mismo comparo contra {{ competitor }}. Me cambiaría si "{{ name }}" me demuestra mejor estabilidad con números concretos, no solo con publicidad.`,
	},
	knowledge.Controller: {
		TopicDiscount:   `¿50% de descuento? Eso suena muy bien, pero quiero saber por cuánto tiempo y cuánto voy a pagar después. En la casa llevo las cuentas al centavo y no me gustan las sorpresas en la factura.`,
		TopicPrice:      `Por ` + priceClause + ` tengo que sacar cuentas. Con lo que entra en la casa cada lempira cuenta, y si se pasa de lo que pagamos ahora, mejor me quedo como estoy.`,
		TopicBenefit:    `Lo que me llama de "{{ name }}" es {{ benefit }}. Pero lo importante para mí es que la familia quede bien conectada sin gastar de más.`,
		TopicCoverage:   `Aquí en {{ city }} la señal a veces va y viene. Si me prometen cobertura, quiero que funcione en la casa, no solo en el centro.`,
		TopicCompetitor: `Con {{ competitor }} el plan de entrada ronda {{ competitor_price | lempiras }}. Si ustedes me dan lo mismo o más por menos, lo pienso. Si no, no vale la pena el cambio.`,
	},
	knowledge.Entrepreneur: {
		TopicDiscount:   `Un descuento me ayuda a arrancar, pero mi negocio necesita estabilidad todo el año. Si la promoción sirve para probar sin riesgo, me interesa.`,
		TopicPrice:      `Por ` + priceClause + ` lo veo {{ lens }}. Si me ayuda a vender más por WhatsApp o a cobrar más fácil, se paga solo. Si no, es un gasto más.`,
		TopicBenefit:    `De "{{ name }}" lo que me sirve es {{ benefit }}. Yo atiendo clientes desde el teléfono y necesito que eso funcione siempre.`,
		TopicCoverage:   `En {{ city }} tengo clientes en todos lados. Si la señal falla, pierdo pedidos, así que la cobertura es lo primero que pregunto.`,
		TopicCompetitor: `Ya tuve {{ competitor }} y me fue más o menos. Me cambiaría si me demuestran que "{{ name }}" ayuda a mi negocio, no solo que es más barato.`,
	},
	knowledge.TrendyExplorer: {
		TopicDiscount:   `¡Un descuento siempre suma! Si viene con algo exclusivo o con streaming incluido, se lo cuento a todos mis amigos de una vez.`,
		TopicPrice:      `Por ` + priceClause + ` depende de lo que trae. Si incluye redes sin límite y algo de entretenimiento, lo pago feliz. Si es solo un plan más, no me emociona.`,
		TopicBenefit:    `Lo que más me gusta de "{{ name }}" es {{ benefit }}. Si se ve bien en redes y es rápido, ya está.`,
		TopicCoverage:   `En {{ city }} quiero subir historias y ver videos sin que se trabe. Si la red es buena para eso, me apunto.`,
		TopicCompetitor: `La mayoría de mis amigos tienen {{ competitor }}, pero me cambio si "{{ name }}" se siente más moderno y tiene mejores beneficios.`,
	},
	knowledge.Pragmatist: {
		TopicDiscount:   `Un descuento está bien, pero lo que me importa es que el servicio cumpla. No quiero cambiar de plan cada vez que se acaba una promoción.`,
		TopicPrice:      `Por ` + priceClause + ` lo comparo con lo que pago hoy. Si es razonable y funciona sin complicaciones, lo considero.`,
		TopicBenefit:    `De "{{ name }}" veo útil {{ benefit }}. Para mí lo importante es que sea práctico y que no me den vueltas con letras pequeñas.`,
		TopicCoverage:   `En {{ city }} necesito que la señal aguante en el trabajo y en la casa. Si eso está cubierto, lo demás es secundario.`,
		TopicCompetitor: `He usado {{ competitor }} y funciona. Para cambiarme necesito una razón clara, algo que me simplifique la vida.`,
	},
	knowledge.Resigned: {
		TopicDiscount:   `¿La mitad de precio? Eso sí me ayudaría, porque a veces no alcanza ni para la recarga. Pero quiero saber si después sube mucho.`,
		TopicPrice:      `Por ` + priceClause + ` no sé si me alcanza. Yo recargo poquito cuando puedo, no me gusta amarrarme a un pago fijo cada mes.`,
		TopicBenefit:    `Lo de {{ benefit }} suena bien. Con WhatsApp y poder llamar a la familia yo ya estoy bien, no necesito mucho más.`,
		TopicCoverage:   `Aquí en {{ city }} la señal no siempre llega. Si no hay cobertura en mi colonia, de nada me sirve el plan.`,
		TopicCompetitor: `Tengo {{ competitor }} desde hace años y me acostumbré. Cambiarme me da pereza, a menos que me ahorre dinero de verdad.`,
	},
}

// LocalReply answers message from the trigger table. It never fails: a
// template error or unknown archetype degrades to the clarify reply.
func LocalReply(r *narrative.Renderer, rng reaction.Rand, a knowledge.Archetype, pc knowledge.PersonaContext, c *concept.Concept, message string) string {
	if topic, ok := MatchTopic(message); ok {
		if tpl, ok := localReplies[a][topic]; ok {
			if out, err := r.Render(tpl, localBindings(a, pc, c)); err == nil && strings.TrimSpace(out) != "" {
				return out
			}
		}
	}
	return clarify(rng, a)
}

// clarify is the reply when no trigger matches.
func clarify(rng reaction.Rand, a knowledge.Archetype) string {
	phrase := "Disculpe"
	if pool := knowledge.Language(a)[knowledge.PoolInformal]; len(pool) > 0 {
		phrase = pool[rng.IntN(len(pool))]
	}
	return fmt.Sprintf("%s, no le entendí bien. ¿Me lo puede explicar de otra forma?", phrase)
}

func localBindings(a knowledge.Archetype, pc knowledge.PersonaContext, c *concept.Concept) map[string]any {
	profile, _ := knowledge.Profile(a)
	b := map[string]any{
		"name":             "la propuesta",
		"benefit":          "lo que ofrece",
		"has_price":        false,
		"price":            0.0,
		"lens":             profile.Lens,
		"city":             pc.City,
		"competitor":       knowledge.Market.MainCompetitor,
		"competitor_price": knowledge.Market.CompetitorEntryPrice,
	}
	if c == nil {
		return b
	}
	if name := strings.TrimSpace(c.Name); name != "" {
		b["name"] = name
	}
	if len(c.Benefits) > 0 && strings.TrimSpace(c.Benefits[0]) != "" {
		b["benefit"] = narrative.JoinSpanish(c.Benefits)
	}
	if c.HasPrice() {
		b["has_price"] = true
		b["price"] = c.Price()
	}
	return b
}
