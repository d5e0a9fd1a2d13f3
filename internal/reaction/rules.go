package reaction

import (
	"sync"

	"github.com/MikeSquared-Agency/synthpanel/internal/concept"
	"github.com/MikeSquared-Agency/synthpanel/internal/knowledge"
)

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// DefaultTable returns the authored reaction table for all six archetypes.
func DefaultTable() *Table {
	defaultOnce.Do(func() {
		defaultTable = buildDefaultTable()
	})
	return defaultTable
}

func cell(keywords []string, match, mismatch string) Cell {
	return Cell{Keywords: keywords, Match: Rule{Text: match}, Mismatch: Rule{Text: mismatch}}
}

func nameKeywords(a knowledge.Archetype) []string {
	p, _ := knowledge.Profile(a)
	return p.NameKeywords
}

func buildDefaultTable() *Table {
	t := NewTable()
	setDefaults(t)
	setProfessional(t)
	setController(t)
	setEntrepreneur(t)
	setTrendyExplorer(t)
	setPragmatist(t)
	setResigned(t)
	setPrices(t)
	return t
}

func setDefaults(t *Table) {
	matchBand := Band{Min: 70, Max: 90}
	mismatchBand := Band{Min: 30, Max: 50}

	t.SetDefaults(concept.VarName, Cell{
		Match: Rule{Band: matchBand,
			Feedback: `El nombre "{{ name }}" conecta con el segmento {{ label }} a través de "{{ matched }}".`},
		Mismatch: Rule{Band: mismatchBand,
			Feedback:   `El nombre "{{ name }}" no usa ningún término que el segmento {{ label }} asocie con valor {{ lens }}.`,
			Suggestion: `Probar un nombre que incluya términos como {{ keywords }}.`},
	})
	t.SetDefaults(concept.VarDescription, Cell{
		Match: Rule{Band: matchBand,
			Feedback: `La descripción menciona "{{ matched }}", ligado a los factores de decisión del segmento ({{ factors }}).`},
		Mismatch: Rule{Band: mismatchBand,
			Feedback:   `La descripción no aborda los factores de decisión del segmento: {{ factors }}.`,
			Suggestion: `Reescribir la descripción destacando {{ factors }}.`},
	})
	t.SetDefaults(concept.VarBenefits, Cell{
		Match: Rule{Band: matchBand,
			Feedback: `{{ benefit_hits }} de {{ benefit_count }} beneficios resultan relevantes para el segmento {{ label }}.`},
		Mismatch: Rule{Band: mismatchBand,
			Feedback:   `Ninguno de los {{ benefit_count }} beneficios responde a lo que valora el segmento {{ label }}.`,
			Suggestion: `Incluir beneficios concretos relacionados con {{ keywords }}.`},
	})
	t.SetDefaults(concept.VarDifferentiation, Cell{
		Match: Rule{Band: matchBand,
			Feedback: `La diferenciación se apoya en "{{ matched }}", un atributo que el segmento valora frente a {{ competitor }}.`},
		Mismatch: Rule{Band: mismatchBand,
			Feedback:   `El segmento no percibe una diferencia clara frente a {{ competitor }}.`,
			Suggestion: `Explicar en una frase qué ofrece {{ name }} que {{ competitor }} no ofrece.`},
	})
	t.SetDefaults(concept.VarTargetAudience, Cell{
		Match: Rule{Band: matchBand,
			Feedback: `El público objetivo declarado incluye explícitamente al segmento {{ label }}.`},
		Mismatch: Rule{Band: Band{Min: 30, Max: 52},
			Feedback:   `El segmento {{ label }} no se reconoce en el público objetivo "{{ target }}".`,
			Suggestion: `Precisar el público objetivo para incluir perfiles como {{ keywords }}.`},
	})
	t.SetDefaults(concept.VarChannel, Cell{
		Match: Rule{Band: Band{Min: 72, Max: 92},
			Feedback: `El canal {{ channel }} coincide con los canales preferidos del segmento.`},
		Mismatch: Rule{Band: Band{Min: 35, Max: 55},
			Feedback:   `El canal {{ channel }} no está entre los preferidos del segmento ({{ preferred_channels }}).`,
			Suggestion: `Reforzar la pauta en {{ preferred_channels }}.`},
	})
	t.SetDefaults(concept.VarTone, Cell{
		Match: Rule{Band: Band{Min: 68, Max: 88},
			Feedback: `El tono {{ tone }} es afín a cómo le gusta que le hablen al segmento {{ label }}.`},
		Mismatch: Rule{Band: Band{Min: 35, Max: 55},
			Feedback:   `El tono {{ tone }} genera distancia con el segmento {{ label }}.`,
			Suggestion: `Ajustar el tono hacia uno {{ keywords }}.`},
	})
	t.SetDefaults(concept.VarCallToAction, Cell{
		Match: Rule{Band: matchBand,
			Feedback: `El llamado a la acción "{{ cta }}" propone un paso que el segmento está dispuesto a dar.`},
		Mismatch: Rule{Band: mismatchBand,
			Feedback:   `El llamado a la acción "{{ cta }}" pide un paso que el segmento no suele dar.`,
			Suggestion: `Usar un llamado a la acción del tipo {{ keywords }}.`},
	})
}

func setProfessional(t *Table) {
	a := knowledge.Professional
	t.Set(concept.VarName, a, cell(nameKeywords(a),
		`{{ formal }}, "{{ name }}" suena a algo serio {{ lens }}; {{ excited }}.`,
		`{{ informal }}, "{{ name }}" no me dice nada de productividad. Como {{ occupation | downcase }} en {{ city }} necesito que el nombre transmita confianza, y {{ skeptic }}`))
	t.Set(concept.VarDescription, a, cell(
		[]string{"productiv", "velocidad", "estab", "confiab", "trabajo", "nube", "videollamada", "soporte", "fibra"},
		`{{ formal }}, la descripción deja claro el tema de {{ matched }}; {{ quality }}, así que me convence {{ lens }}.`,
		`{{ informal }}, la descripción no dice nada de estabilidad ni de velocidad real, y {{ tech }}; {{ skeptic }}`))
	t.Set(concept.VarBenefits, a, cell(
		[]string{"velocidad", "mbps", "fibra", "nube", "soporte", "prioridad", "roaming", "hotspot", "office", "zoom", "5g", "gb"},
		`{{ formal }}, beneficios como "{{ benefit }}" me sirven {{ lens }}; {{ excited }}.`,
		`{{ informal }}, los beneficios están bien para otro público, pero {{ tech }} y no veo nada que me ayude con eso.`))
	t.Set(concept.VarDifferentiation, a, cell(
		[]string{"garant", "prioridad", "soporte 24", "sla", "simétric", "exclusiv", "fibra"},
		`{{ formal }}, que se diferencie por "{{ matched }}" es un argumento real frente a {{ competitor }}.`,
		`{{ informal }}, no veo qué lo hace distinto de lo que ya ofrece {{ competitor }}; {{ skeptic }}`).
		suggest(`Destacar una garantía de servicio medible (velocidad mínima o tiempo de respuesta del soporte) que {{ competitor }} no ofrezca.`))
	t.Set(concept.VarTargetAudience, a, cell(
		[]string{"profesional", "ejecutiv", "empresa", "teletrabajo", "trabajo remoto", "oficina", "corporativ"},
		`{{ formal }}, se nota que está pensado para alguien como yo, {{ occupation | downcase }} en {{ city }}.`,
		`{{ informal }}, no siento que esto esté dirigido a profesionales como yo.`))
	t.Set(concept.VarChannel, a, cell(
		[]string{"LinkedIn", "Email", "correo", "App", "Google", "web"},
		`{{ formal }}, {{ channel }} es donde realmente me informo, así que lo vería.`,
		`{{ informal }}, por {{ channel }} difícilmente me enteraría; yo me informo por {{ preferred_channels }}.`))
	t.Set(concept.VarTone, a, cell(
		[]string{string(concept.ToneFormal), string(concept.ToneTechnical)},
		`{{ formal }}, el tono es serio y directo, como me gusta que me hablen.`,
		`{{ informal }}, el tono se siente poco serio para una decisión {{ lens }}.`))
	t.Set(concept.VarCallToAction, a, cell(
		[]string{"solicit", "agenda", "cotiza", "conoce más", "descarga", "prueba", "demo", "en línea"},
		`{{ formal }}, "{{ cta }}" es un paso concreto que puedo dar hoy mismo.`,
		`{{ informal }}, "{{ cta }}" no me dice cómo contratar rápido; {{ decision }}.`))
}

func setController(t *Table) {
	a := knowledge.Controller
	t.Set(concept.VarName, a, cell(nameKeywords(a),
		`{{ informal }}, "{{ name }}" ya me dice que es para cuidar el bolsillo; {{ excited }}.`,
		`{{ informal }}, "{{ name }}" suena bonito pero no me dice si me voy a ahorrar algo, y {{ price_phrase }}.`))
	t.Set(concept.VarDescription, a, cell(
		[]string{"precio fijo", "sin cobros", "ahorro", "ahorra", "control", "transparen", "sin sorpresas", "familia", "sin contrato", "fijo"},
		`{{ formal }}, la descripción habla de {{ matched }} y eso me da tranquilidad {{ lens }}.`,
		`{{ informal }}, en la descripción no veo nada de cuánto voy a pagar al final; {{ skeptic }}`).
		suggest(`Aclarar en la descripción el precio final sin cargos adicionales y qué pasa al terminar la promoción.`))
	t.Set(concept.VarBenefits, a, cell(
		[]string{"familia", "líneas", "compart", "ilimitado", "sin costo", "gratis", "control", "whatsapp", "minutos"},
		`{{ formal }}, "{{ benefit }}" sí le sirve a la familia, y eso {{ lens }} cuenta mucho.`,
		`{{ informal }}, esos beneficios no le resuelven nada a la casa; {{ price_phrase }}.`))
	t.Set(concept.VarDifferentiation, a, cell(
		[]string{"sin cobros", "precio fijo", "sin contrato", "sin permanencia", "transparen", "más barato", "ahorro"},
		`{{ formal }}, que la diferencia sea "{{ matched }}" es justo lo que me haría dejar a {{ competitor }}.`,
		`{{ informal }}, para mí es lo mismo que {{ competitor }}; si no es más barato o más claro, {{ decision }}.`))
	t.Set(concept.VarTargetAudience, a, cell(
		[]string{"familia", "hogar", "madre", "padre", "casa", "hijos"},
		`{{ formal }}, me gusta que piensen en las familias como la mía aquí en {{ city }}.`,
		`{{ informal }}, eso parece para otra gente, no para una familia que cuida cada lempira.`))
	t.Set(concept.VarChannel, a, cell(
		[]string{"WhatsApp", "Facebook", "Tienda", "Agencia", "Radio"},
		`{{ informal }}, por {{ channel }} sí me entero, ahí veo las ofertas.`,
		`{{ informal }}, por {{ channel }} no me llegaría; yo veo las ofertas en {{ preferred_channels }}.`))
	t.Set(concept.VarTone, a, cell(
		[]string{string(concept.ToneFormal), string(concept.ToneInformal)},
		`{{ formal }}, me hablan claro y sin tanto adorno, así sí.`,
		`{{ informal }}, tanto adorno me hace pensar que algo esconden; {{ skeptic }}`))
	t.Set(concept.VarCallToAction, a, cell(
		[]string{"consulta", "compar", "sin compromiso", "llama", "pregunta", "visita", "cotiza"},
		`{{ formal }}, "{{ cta }}" me gusta porque puedo preguntar sin comprometerme.`,
		`{{ informal }}, "{{ cta }}" me apura demasiado; {{ decision }}.`))
}

func setEntrepreneur(t *Table) {
	a := knowledge.Entrepreneur
	t.Set(concept.VarName, a, cell(nameKeywords(a),
		`{{ formal }}, "{{ name }}" suena a que entiende a los que tenemos negocio; {{ excited }}.`,
		`{{ informal }}, "{{ name }}" no me dice si esto le sirve {{ lens }}.`))
	t.Set(concept.VarDescription, a, cell(
		[]string{"negocio", "venta", "cliente", "factur", "crecer", "emprend", "pyme", "cobro", "tigo money", "whatsapp business"},
		`{{ formal }}, que hable de {{ matched }} me dice que sí pensaron en gente como yo; {{ tech }}.`,
		`{{ informal }}, la descripción no explica cómo esto me ayuda a vender más; {{ skeptic }}`))
	t.Set(concept.VarBenefits, a, cell(
		[]string{"whatsapp business", "factura", "línea adicional", "cobro", "pagos", "datos", "ilimitado", "redes", "soporte", "catálogo"},
		`{{ formal }}, "{{ benefit }}" es algo que usaría todos los días {{ lens }}; {{ price_phrase }}.`,
		`{{ informal }}, bonitos los beneficios, pero ninguno me trae más clientes; {{ decision }}.`).
		suggest(`Agregar herramientas de negocio concretas: WhatsApp Business, cobros con Tigo Money o factura a nombre de la empresa.`))
	t.Set(concept.VarDifferentiation, a, cell(
		[]string{"factur", "empresarial", "prioridad", "soporte", "flexib", "sin contrato", "retorno", "herramienta"},
		`{{ formal }}, la diferencia de "{{ matched }}" sí pesa frente a {{ competitor }}.`,
		`{{ informal }}, no veo por qué esto sea mejor para el negocio que lo de {{ competitor }}.`))
	t.Set(concept.VarTargetAudience, a, cell(
		[]string{"emprendedor", "negocio", "pyme", "comerciante", "empresa", "vendedor", "dueño"},
		`{{ formal }}, por fin algo pensado para los que tenemos negocio en {{ city }}.`,
		`{{ informal }}, esto no va dirigido a emprendedores; se nota que no conocen cómo trabajamos.`))
	t.Set(concept.VarChannel, a, cell(
		[]string{"WhatsApp Business", "WhatsApp", "Facebook", "Agencia", "feria"},
		`{{ informal }}, por {{ channel }} es donde paso metido atendiendo clientes, ahí lo vería.`,
		`{{ informal }}, no tengo tiempo de ver {{ channel }}; yo estoy en {{ preferred_channels }}.`))
	t.Set(concept.VarTone, a, cell(
		[]string{string(concept.ToneInformal), string(concept.ToneTechnical), string(concept.ToneFormal)},
		`{{ formal }}, me hablan directo y al grano, como se habla de negocios.`,
		`{{ informal }}, el tono no me transmite que esto sea serio para un negocio.`))
	t.Set(concept.VarCallToAction, a, cell(
		[]string{"cotiza", "activa", "registra", "impulsa", "empieza", "solicita", "asesor"},
		`{{ formal }}, "{{ cta }}" es claro: sé qué hacer para empezar.`,
		`{{ informal }}, "{{ cta }}" no me lleva con un asesor de negocios; {{ decision }}.`))
}

func setTrendyExplorer(t *Table) {
	a := knowledge.TrendyExplorer
	t.Set(concept.VarName, a, cell(nameKeywords(a),
		`{{ informal }}, "{{ name }}" suena fresco, {{ excited }}`,
		`{{ informal }}, "{{ name }}" suena a plan de mis papás; {{ skeptic }}`).
		bands(Band{Min: 75, Max: 95}, Band{Min: 25, Max: 45}))
	t.Set(concept.VarDescription, a, cell(
		[]string{"5g", "streaming", "gamer", "juego", "tiktok", "instagram", "redes", "nuevo", "innova", "experiencia", "exclusiv", "lanzamiento"},
		`{{ informal }}, que hable de {{ matched }} ya me engancha; {{ tech }}.`,
		`{{ informal }}, la descripción es aburrida, no dice nada nuevo; {{ skeptic }}`))
	t.Set(concept.VarBenefits, a, cell(
		[]string{"5g", "streaming", "netflix", "spotify", "tiktok", "instagram", "redes", "gamer", "ilimitado", "concierto", "evento"},
		`{{ informal }}, "{{ benefit }}" está buenísimo {{ lens }}; {{ excited }}`,
		`{{ informal }}, esos beneficios son lo de siempre; yo quiero algo con streaming o redes.`))
	t.Set(concept.VarDifferentiation, a, cell(
		[]string{"primer", "único", "exclusiv", "nuevo", "5g", "innova", "lanzamiento", "edición"},
		`{{ informal }}, que sea {{ matched }} es lo que me haría presumirlo; {{ excited }}`,
		`{{ informal }}, no le veo nada diferente a lo que ya tiene {{ competitor }}; {{ skeptic }}`).
		suggest(`Anclar la diferenciación en algo que se pueda presumir: acceso anticipado, 5G o beneficios exclusivos de temporada.`))
	t.Set(concept.VarTargetAudience, a, cell(
		[]string{"joven", "millennial", "gen z", "creador", "gamer", "universit", "estudiante", "influencer"},
		`{{ informal }}, se nota que está pensado para gente como yo.`,
		`{{ informal }}, esto no parece para mi generación.`))
	t.Set(concept.VarChannel, a, cell(
		[]string{"Instagram", "TikTok", "Influencer", "YouTube", "Spotify", "Twitch"},
		`{{ informal }}, en {{ channel }} sí lo veo de una.`,
		`{{ informal }}, ¿{{ channel }}? Yo estoy todo el día en {{ preferred_channels }}.`))
	t.Set(concept.VarTone, a, cell(
		[]string{string(concept.ToneFun), string(concept.ToneEmotional), string(concept.ToneInformal)},
		`{{ informal }}, el tono tiene buena vibra, conecta.`,
		`{{ informal }}, el tono es demasiado acartonado; {{ skeptic }}`))
	t.Set(concept.VarCallToAction, a, cell(
		[]string{"descarga", "únete", "vive", "sé el primero", "activa ya", "reclama", "participa"},
		`{{ informal }}, "{{ cta }}" me da ganas de hacerlo ya; {{ decision }}.`,
		`{{ informal }}, "{{ cta }}" no me emociona para nada.`))
}

func setPragmatist(t *Table) {
	a := knowledge.Pragmatist
	t.Set(concept.VarName, a, cell(nameKeywords(a),
		`{{ formal }}, "{{ name }}" dice lo que es, sin vueltas; {{ excited }}.`,
		`{{ informal }}, "{{ name }}" no me explica qué es; prefiero nombres sencillos.`))
	t.Set(concept.VarDescription, a, cell(
		[]string{"fácil", "simple", "todo incluido", "completo", "cobertura", "sin complicaciones", "práctico", "funciona", "útil"},
		`{{ formal }}, la descripción deja claro lo de {{ matched }}, y {{ quality }}.`,
		`{{ informal }}, la descripción da muchas vueltas y no dice para qué me sirve {{ lens }}.`))
	t.Set(concept.VarBenefits, a, cell(
		[]string{"minutos", "datos", "whatsapp", "llamadas", "cobertura", "ilimitado", "gb", "redes", "recarga"},
		`{{ formal }}, "{{ benefit }}" es algo que de verdad uso {{ lens }}.`,
		`{{ informal }}, esos beneficios no son los que uso; {{ quality }}.`))
	t.Set(concept.VarDifferentiation, a, cell(
		[]string{"cobertura", "precio justo", "más datos", "sin complicaciones", "fácil", "todo incluido", "mejor señal"},
		`{{ formal }}, que se diferencie por {{ matched }} sí me parece un motivo para cambiarme.`,
		`{{ informal }}, no veo la ventaja frente a {{ competitor }}; {{ skeptic }}`))
	t.Set(concept.VarTargetAudience, a, cell(
		[]string{"todos", "trabajador", "familia", "hondureñ", "personas", "usuarios"},
		`{{ formal }}, está pensado para gente trabajadora como uno.`,
		`{{ informal }}, me parece que esto es para otro tipo de cliente.`))
	t.Set(concept.VarChannel, a, cell(
		[]string{"Facebook", "Radio", "Tienda", "Televisión", "TV", "Agencia"},
		`{{ informal }}, por {{ channel }} me entero seguido.`,
		`{{ informal }}, por {{ channel }} no me llegaría; yo veo {{ preferred_channels }}.`))
	t.Set(concept.VarTone, a, cell(
		[]string{string(concept.ToneInformal), string(concept.ToneFormal)},
		`{{ formal }}, me hablan como se debe, claro y sencillo.`,
		`{{ informal }}, el tono no va conmigo, se siente forzado.`))
	t.Set(concept.VarCallToAction, a, cell(
		[]string{"visita", "llama", "activa", "pregunta", "marca", "acércate"},
		`{{ formal }}, "{{ cta }}" es fácil de hacer, sin enredos.`,
		`{{ informal }}, "{{ cta }}" no me queda claro qué tengo que hacer.`))
}

func setResigned(t *Table) {
	a := knowledge.Resigned
	t.Set(concept.VarName, a, cell(nameKeywords(a),
		`{{ informal }}, "{{ name }}" suena a que es para gente como uno; {{ excited }}.`,
		`{{ informal }}, "{{ name }}"... {{ skeptic }}`))
	t.Set(concept.VarDescription, a, cell(
		[]string{"barato", "económico", "ahorro", "sencillo", "fácil", "recarga", "básico", "whatsapp", "llamadas"},
		`{{ informal }}, si dice {{ matched }}, puede ser que me sirva; {{ price_phrase }}.`,
		`{{ informal }}, no entiendo bien lo que dice; {{ tech }}.`).
		suggest(`Explicar el plan en una sola frase sencilla: qué incluye y cuánto cuesta por semana.`))
	t.Set(concept.VarBenefits, a, cell(
		[]string{"whatsapp", "llamadas", "minutos", "recarga", "saldo", "familia", "básico", "ilimitado"},
		`{{ informal }}, "{{ benefit }}" sí lo usaría para hablar con la familia; {{ excited }}.`,
		`{{ informal }}, no sé para qué me sirve todo eso; {{ quality }}.`))
	t.Set(concept.VarDifferentiation, a, cell(
		[]string{"más barato", "barato", "sin contrato", "recarga", "señal", "ahorro", "económico"},
		`{{ informal }}, si de verdad es {{ matched }}, le pensaría; {{ decision }}.`,
		`{{ informal }}, todos dicen lo mismo; {{ skeptic }}`))
	t.Set(concept.VarTargetAudience, a, cell(
		[]string{"todos", "familia", "adulto", "mayor", "rural", "aldea", "comunidad", "sencill"},
		`{{ informal }}, parece que sí piensan en gente de {{ city }} como uno.`,
		`{{ informal }}, {{ skeptic }}`))
	t.Set(concept.VarChannel, a, cell(
		[]string{"Radio", "Pulpería", "Televisión", "TV", "Recarga", "Tienda"},
		`{{ informal }}, por {{ channel }} sí me entero, ahí oigo las cosas.`,
		`{{ informal }}, por {{ channel }} no me llega nada; yo me entero por {{ preferred_channels }}.`))
	t.Set(concept.VarTone, a, cell(
		[]string{string(concept.ToneEmotional), string(concept.ToneInformal)},
		`{{ informal }}, me hablan bonito, con cariño; así da confianza.`,
		`{{ informal }}, me hablan muy complicado.`))
	t.Set(concept.VarCallToAction, a, cell(
		[]string{"marca", "llama", "visita", "pregunta", "recarga", "acércate"},
		`{{ informal }}, "{{ cta }}" sí lo puedo hacer.`,
		`{{ informal }}, "{{ cta }}" no sé cómo se hace eso; {{ tech }}.`))
}

// priceFeedback is shared by every price tier unless a tier overrides it.
const priceFeedback = `El precio equivale al {{ price_pct | percent }} del ingreso medio del segmento NSE {{ nse }} ({{ income | lempiras }}) y a un cambio de {{ price_increase | percent }} frente al gasto típico en telecomunicaciones ({{ typical_spend | lempiras }}).`

func setPrices(t *Table) {
	t.SetPrice(knowledge.Controller, PricePolicy{
		Comfortable: 4,
		Tiers: []PriceTier{
			{UpTo: 4, Rule: Rule{Band: Band{Min: 65, Max: 90},
				Text: `{{ formal }}, {{ price | lempiras }} al mes es apenas el {{ price_pct | percent }} de lo que entra a la casa y {{ spend_delta }}; {{ excited }}.`}},
			{UpTo: 6, Rule: Rule{Band: Band{Min: 45, Max: 65},
				Text: `{{ formal }}, {{ price | lempiras }} es el {{ price_pct | percent }} del ingreso; se puede, pero {{ price_phrase }}, y {{ spend_delta }}.`}},
			{UpTo: inf, Mismatch: true, Rule: Rule{Band: Band{Min: 25, Max: 45},
				Text:       `{{ informal }}, {{ price | lempiras }} es el {{ price_pct | percent }} de lo que gano; {{ spend_delta }} y eso no cabe en el presupuesto. {{ skeptic }}`,
				Suggestion: `Ofrecer una versión por debajo de {{ comfortable_price | lempiras }} al mes o un plan familiar con descuento por línea.`}},
		},
	})
	t.SetPrice(knowledge.Resigned, PricePolicy{
		Comfortable: 3.5,
		Tiers: []PriceTier{
			{UpTo: 3.5, Rule: Rule{Band: Band{Min: 70, Max: 90},
				Text: `{{ informal }}, {{ price | lempiras }} sí lo puedo pagar y {{ spend_delta }}; {{ excited }}.`}},
			{UpTo: 7, Rule: Rule{Band: Band{Min: 50, Max: 70},
				Text:     `{{ informal }}, {{ price | lempiras }} es el {{ price_pct | percent }} de lo que gano; {{ price_phrase }}, pero si lo pago por semana se puede.`,
				Feedback: `Con {{ price_pct | percent }} del ingreso el precio es aceptable para el segmento NSE {{ nse }} si se facilita el pago fraccionado; {{ spend_delta }}.`}},
			{UpTo: inf, Mismatch: true, Rule: Rule{Band: Band{Min: 20, Max: 40},
				Text:       `{{ informal }}, {{ price | lempiras }} es mucho para mí; {{ price_phrase }} y {{ spend_delta }}.`,
				Suggestion: `Ofrecer el plan en recargas semanales o diarias que sumen menos de {{ comfortable_price | lempiras }} al mes.`}},
		},
	})
	t.SetPrice(knowledge.Professional, PricePolicy{
		Comfortable: 3,
		Tiers: []PriceTier{
			{UpTo: 3, Rule: Rule{Band: Band{Min: 70, Max: 95},
				Text: `{{ formal }}, {{ price | lempiras }} es poco si me ahorra una sola reunión caída al mes; {{ price_phrase }}.`}},
			{UpTo: 5, Rule: Rule{Band: Band{Min: 50, Max: 70},
				Text: `{{ formal }}, {{ price | lempiras }} al mes ({{ price_pct | percent }} de mi ingreso) se justifica solo si la productividad mejora de verdad; {{ decision }}.`}},
			{UpTo: inf, Mismatch: true, Rule: Rule{Band: Band{Min: 30, Max: 50},
				Text:       `{{ informal }}, {{ price | lempiras }} es el {{ price_pct | percent }} de mi ingreso; ni con la mejor velocidad lo recupero en productividad.`,
				Suggestion: `Demostrar el retorno en horas productivas o bajar el precio a menos de {{ comfortable_price | lempiras }}.`}},
		},
	})
	t.SetPrice(knowledge.Entrepreneur, PricePolicy{
		Comfortable: 4,
		Tiers: []PriceTier{
			{UpTo: 4, Rule: Rule{Band: Band{Min: 70, Max: 90},
				Text: `{{ formal }}, {{ price | lempiras }} al mes lo recupero con un par de ventas; {{ price_phrase }}.`}},
			{UpTo: 7, Rule: Rule{Band: Band{Min: 50, Max: 68},
				Text: `{{ formal }}, {{ price | lempiras }} es el {{ price_pct | percent }} de lo que deja el negocio; tendría que ver el retorno antes de decidir.`}},
			{UpTo: inf, Mismatch: true, Rule: Rule{Band: Band{Min: 25, Max: 45},
				Text:       `{{ informal }}, {{ price | lempiras }} se come la ganancia del mes; {{ spend_delta }} y no veo el retorno.`,
				Suggestion: `Presentar el precio como inversión con un caso de retorno, o una tarifa de entrada por debajo de {{ comfortable_price | lempiras }}.`}},
		},
	})
	trendy := append(append([]string(nil), nameKeywords(knowledge.TrendyExplorer)...), "streaming", "netflix", "spotify", "tiktok", "concierto", "gamer")
	t.SetPrice(knowledge.TrendyExplorer, PricePolicy{
		Comfortable:  3,
		CoolKeywords: trendy,
		CoolTiers: []PriceTier{
			{UpTo: 8, Rule: Rule{Band: Band{Min: 75, Max: 95},
				Text: `{{ informal }}, por algo así pago {{ price | lempiras }} sin pensarlo; {{ price_phrase }}.`}},
			{UpTo: inf, Rule: Rule{Band: Band{Min: 45, Max: 65},
				Text: `{{ informal }}, me encanta, pero {{ price | lempiras }} ya es bastante ({{ price_pct | percent }} de lo que gano).`}},
		},
		Tiers: []PriceTier{
			{UpTo: 3, Rule: Rule{Band: Band{Min: 65, Max: 80},
				Text: `{{ formal }}, {{ price | lempiras }} está bien, aunque el plan no tiene nada especial.`}},
			{UpTo: 6, Rule: Rule{Band: Band{Min: 45, Max: 60},
				Text: `{{ informal }}, {{ price | lempiras }} por algo tan normal... no sé.`}},
			{UpTo: inf, Mismatch: true, Rule: Rule{Band: Band{Min: 25, Max: 45},
				Text:       `{{ informal }}, ¿{{ price | lempiras }} por esto? {{ skeptic }}`,
				Suggestion: `Justificar el precio con una experiencia exclusiva (5G, streaming, eventos) o bajarlo a menos de {{ comfortable_price | lempiras }}.`}},
		},
	})
	t.SetPrice(knowledge.Pragmatist, PricePolicy{
		Comfortable: 3.5,
		Tiers: []PriceTier{
			{UpTo: 3.5, Rule: Rule{Band: Band{Min: 68, Max: 88},
				Text: `{{ formal }}, {{ price | lempiras }} al mes es un precio justo y {{ spend_delta }}; {{ excited }}.`}},
			{UpTo: 5.5, Rule: Rule{Band: Band{Min: 45, Max: 65},
				Text: `{{ formal }}, {{ price | lempiras }} es el {{ price_pct | percent }} de lo que gano; {{ price_phrase }}, así que lo pensaría.`}},
			{UpTo: inf, Mismatch: true, Rule: Rule{Band: Band{Min: 25, Max: 45},
				Text:       `{{ informal }}, {{ price | lempiras }} ya es caro para lo que ofrece; {{ spend_delta }}.`,
				Suggestion: `Ajustar el precio a menos de {{ comfortable_price | lempiras }} o sumar beneficios de uso diario que lo justifiquen.`}},
		},
	})
}
