package knowledge

// Pool names one of the phrase pools of LanguagePatterns.
type Pool string

const (
	PoolFormal     Pool = "formal"
	PoolInformal   Pool = "informal"
	PoolPrice      Pool = "price"
	PoolQuality    Pool = "quality"
	PoolTechnology Pool = "technology"
	PoolDecision   Pool = "decision"
	PoolSkepticism Pool = "skepticism"
	PoolExcitement Pool = "excitement"
)

// Pools lists every pool in draw order.
var Pools = []Pool{PoolFormal, PoolInformal, PoolPrice, PoolQuality, PoolTechnology, PoolDecision, PoolSkepticism, PoolExcitement}

// LanguagePatterns are the short phrase pools an archetype speaks with.
type LanguagePatterns map[Pool][]string

var languages = map[Archetype]LanguagePatterns{
	Professional: {
		PoolFormal:     {"Desde una perspectiva profesional", "Analizándolo con detenimiento", "Considerando mi agenda de trabajo"},
		PoolInformal:   {"La verdad", "Mire", "Siendo honesta"},
		PoolPrice:      {"si se paga solo con productividad", "vale la inversión si cumple", "el costo es secundario si funciona"},
		PoolQuality:    {"la estabilidad es lo primero", "necesito que no falle en una reunión", "la calidad tiene que ser consistente"},
		PoolTechnology: {"la velocidad de subida importa", "trabajo en la nube todo el día", "uso videollamadas a diario"},
		PoolDecision:   {"lo evaluaría con una prueba", "necesito ver números concretos", "lo compararía con mi plan actual"},
		PoolSkepticism: {"¿y el soporte cuando falla?", "ya he visto promesas así", "me gustaría ver garantías"},
		PoolExcitement: {"esto sí me resuelve", "me interesa bastante", "me parece muy bien pensado"},
	},
	Controller: {
		PoolFormal:     {"Haciendo cuentas", "Revisando el presupuesto del mes", "Pensándolo con calma"},
		PoolInformal:   {"Mire pues", "Fíjese que", "Le soy sincera"},
		PoolPrice:      {"cada lempira cuenta", "primero veo cuánto sale al mes", "no quiero sorpresas en la factura"},
		PoolQuality:    {"que funcione sin complicaciones", "que sea confiable todo el mes", "que no me cobren de más"},
		PoolTechnology: {"con que los niños puedan hacer tareas", "lo básico para la familia", "no necesito tanta cosa moderna"},
		PoolDecision:   {"lo consulto con la familia", "lo comparo con lo que pago hoy", "primero pregunto en la agencia"},
		PoolSkepticism: {"¿dónde está la letra pequeña?", "eso suena demasiado bueno", "¿y después de la promoción cuánto?"},
		PoolExcitement: {"eso sí me conviene", "ahí sí estamos hablando", "me gusta que sea claro"},
	},
	Entrepreneur: {
		PoolFormal:     {"Pensándolo como negocio", "Desde el punto de vista del negocio", "Haciendo números"},
		PoolInformal:   {"Vaya", "Fíjese", "Mire, le explico"},
		PoolPrice:      {"si me deja ganancia, lo pago", "todo gasto tiene que producir", "lo veo como inversión"},
		PoolQuality:    {"mis clientes no pueden esperar", "si se cae, pierdo ventas", "necesito algo que aguante"},
		PoolTechnology: {"vendo por WhatsApp todo el día", "cobro con el celular", "mis clientes me escriben por redes"},
		PoolDecision:   {"lo pruebo un mes y veo", "si me da factura, lo tomo en cuenta", "lo pienso según las ventas"},
		PoolSkepticism: {"¿eso de verdad me trae clientes?", "muchos prometen y no cumplen", "¿qué pasa si no me sirve?"},
		PoolExcitement: {"eso me ayuda a crecer", "eso le sirve al negocio", "me abre puertas"},
	},
	TrendyExplorer: {
		PoolFormal:     {"Siendo objetiva", "Pensándolo bien", "Analizando la propuesta"},
		PoolInformal:   {"Ey", "Qué onda", "Bueno, la neta"},
		PoolPrice:      {"si está cool, lo pago", "no me importa pagar un poco más", "el precio no es lo principal"},
		PoolQuality:    {"que no se trabe en los streams", "la señal tiene que volar", "necesito velocidad real"},
		PoolTechnology: {"quiero lo último", "la tecnología nueva me encanta", "5G o nada"},
		PoolDecision:   {"lo pruebo de una", "si mis amigos lo tienen, me animo", "lo vi en TikTok y me convenció"},
		PoolSkepticism: {"suena a lo mismo de siempre", "¿eso ya no existía?", "no sé si es tan nuevo"},
		PoolExcitement: {"¡qué chiva!", "¡eso está buenísimo!", "¡me encanta!"},
	},
	Pragmatist: {
		PoolFormal:     {"Viéndolo bien", "Poniéndolo en la balanza", "Siendo práctico"},
		PoolInformal:   {"Mire", "Bueno", "Pues fíjese"},
		PoolPrice:      {"que el precio sea justo", "pago lo que vale", "ni muy caro ni muy barato"},
		PoolQuality:    {"que sirva para lo que uno necesita", "que funcione bien y ya", "nada de complicaciones"},
		PoolTechnology: {"con lo básico me basta", "uso el teléfono para trabajar", "no ocupo tanta tecnología"},
		PoolDecision:   {"si me conviene, me cambio", "lo veo con calma", "pregunto a conocidos que ya lo tengan"},
		PoolSkepticism: {"¿de verdad funciona allá donde vivo?", "eso habría que verlo", "no me convence del todo"},
		PoolExcitement: {"eso está bien", "eso me sirve", "me parece buena opción"},
	},
	Resigned: {
		PoolFormal:     {"Con todo respeto", "Si Dios quiere", "Pues, viéndolo así"},
		PoolInformal:   {"Ay, mire", "Pues sí", "Fíjese que uno"},
		PoolPrice:      {"no me alcanza para mucho", "uno recarga lo que puede", "primero la comida, después el teléfono"},
		PoolQuality:    {"con que pueda llamar a la familia", "que agarre señal en la aldea", "que no se me acabe el saldo"},
		PoolTechnology: {"yo solo uso WhatsApp", "no sé mucho de esas cosas", "mis hijos me ayudan con el teléfono"},
		PoolDecision:   {"le pregunto a mis hijos", "lo pienso, no me apuro", "si está barato, puede ser"},
		PoolSkepticism: {"eso es para otra gente", "siempre cobran de más", "no creo que sea para mí"},
		PoolExcitement: {"eso sí estaría bueno", "ojalá fuera cierto", "eso me ayudaría"},
	},
}

// Language returns the phrase pools of a.
func Language(a Archetype) LanguagePatterns {
	return languages[a]
}
