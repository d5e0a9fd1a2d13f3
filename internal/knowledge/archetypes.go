// Package knowledge holds the static reference tables behind the synthetic
// personas: economic segments, archetype profiles, persona pools, language
// pools and the regional and competitive context of the Honduran market.
package knowledge

import (
	"fmt"
	"strings"
)

// Archetype is one of the six fixed Honduran consumer segments.
type Archetype string

const (
	Professional   Archetype = "PROFESSIONAL"
	Controller     Archetype = "CONTROLLER"
	Entrepreneur   Archetype = "ENTREPRENEUR"
	TrendyExplorer Archetype = "TRENDY_EXPLORER"
	Pragmatist     Archetype = "PRAGMATIST"
	Resigned       Archetype = "RESIGNED"
)

// Archetypes lists every archetype in canonical order.
var Archetypes = []Archetype{Professional, Controller, Entrepreneur, TrendyExplorer, Pragmatist, Resigned}

// Valid reports whether a is one of the six archetypes.
func (a Archetype) Valid() bool {
	_, ok := profiles[a]
	return ok
}

// ParseArchetype accepts canonical names case-insensitively ("trendy_explorer").
func ParseArchetype(s string) (Archetype, error) {
	a := Archetype(strings.ToUpper(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("unknown archetype %q", s)
	}
	return a, nil
}

// ArchetypeProfile is the static behavioural profile of an archetype.
// Numeric traits are in [0,1].
type ArchetypeProfile struct {
	Archetype          Archetype `json:"archetype"`
	Label              string    `json:"label"`
	NameKeywords       []string  `json:"name_preferences"`
	PriceSensitivity   float64   `json:"price_sensitivity"`
	InnovationOpenness float64   `json:"innovation_openness"`
	BrandImportance    float64   `json:"brand_importance"`
	TypicalConcerns    []string  `json:"typical_concerns"`
	PreferredChannels  []string  `json:"preferred_channels"`
	DecisionFactors    []string  `json:"decision_factors"`
	// Lens is how the persona frames value ("para mi negocio").
	Lens string `json:"lens"`
}

// PersonaContext is one concrete persona an archetype can be voiced as.
type PersonaContext struct {
	Name          string  `json:"name"`
	Age           int     `json:"age"`
	City          string  `json:"city"`
	Occupation    string  `json:"occupation"`
	NSE           string  `json:"nse"`
	MonthlyIncome float64 `json:"monthly_income"`
}

var profiles = map[Archetype]ArchetypeProfile{
	Professional: {
		Archetype:          Professional,
		Label:              "Profesional Digital",
		NameKeywords:       []string{"profesional", "business", "empresarial", "premium", "plus", "ejecutivo"},
		PriceSensitivity:   0.4,
		InnovationOpenness: 0.8,
		BrandImportance:    0.7,
		TypicalConcerns: []string{
			"Estabilidad de la conexión durante videollamadas de trabajo",
			"Tiempo de respuesta del soporte técnico",
			"Diferencia entre la velocidad prometida y la real",
		},
		PreferredChannels: []string{"LinkedIn", "Email", "App", "Google"},
		DecisionFactors:   []string{"Productividad", "Confiabilidad", "Velocidad"},
		Lens:              "para mi trabajo",
	},
	Controller: {
		Archetype:          Controller,
		Label:              "Controlador del Hogar",
		NameKeywords:       []string{"ahorro", "básico", "control", "familia", "fijo", "económico"},
		PriceSensitivity:   0.9,
		InnovationOpenness: 0.3,
		BrandImportance:    0.5,
		TypicalConcerns: []string{
			"Cobros ocultos en la factura",
			"Que el precio suba al terminar la promoción",
			"Contratos de permanencia",
		},
		PreferredChannels: []string{"WhatsApp", "Facebook", "Tienda", "Agencia"},
		DecisionFactors:   []string{"Precio", "Transparencia", "Control del gasto"},
		Lens:              "para el presupuesto de la casa",
	},
	Entrepreneur: {
		Archetype:          Entrepreneur,
		Label:              "Emprendedor",
		NameKeywords:       []string{"negocio", "empresa", "emprende", "pyme", "business", "crece"},
		PriceSensitivity:   0.6,
		InnovationOpenness: 0.7,
		BrandImportance:    0.5,
		TypicalConcerns: []string{
			"Caídas del servicio que detienen las ventas",
			"Que no incluya factura para el negocio",
			"Costo frente al retorno real",
		},
		PreferredChannels: []string{"WhatsApp Business", "WhatsApp", "Facebook", "Agencia"},
		DecisionFactors:   []string{"Retorno de inversión", "Herramientas para vender", "Flexibilidad"},
		Lens:              "para mi negocio",
	},
	TrendyExplorer: {
		Archetype:          TrendyExplorer,
		Label:              "Explorador de Tendencias",
		NameKeywords:       []string{"5g", "ultra", "next", "turbo", "live", "vibe", "gamer", "stream"},
		PriceSensitivity:   0.3,
		InnovationOpenness: 0.95,
		BrandImportance:    0.8,
		TypicalConcerns: []string{
			"Que sea más de lo mismo con otro nombre",
			"Cobertura 5G limitada fuera de las ciudades",
			"Velocidad insuficiente para streaming y juegos",
		},
		PreferredChannels: []string{"Instagram", "TikTok", "Influencers", "YouTube"},
		DecisionFactors:   []string{"Innovación", "Estilo", "Experiencias"},
		Lens:              "para mi estilo de vida",
	},
	Pragmatist: {
		Archetype:          Pragmatist,
		Label:              "Pragmático",
		NameKeywords:       []string{"fácil", "simple", "todo", "completo", "plus", "práctico"},
		PriceSensitivity:   0.7,
		InnovationOpenness: 0.5,
		BrandImportance:    0.4,
		TypicalConcerns: []string{
			"Cobertura fuera del casco urbano",
			"Relación entre precio y beneficios reales",
			"Planes difíciles de entender",
		},
		PreferredChannels: []string{"Facebook", "Radio", "Tienda", "Televisión"},
		DecisionFactors:   []string{"Utilidad", "Precio justo", "Simplicidad"},
		Lens:              "para el día a día",
	},
	Resigned: {
		Archetype:          Resigned,
		Label:              "Resignado",
		NameKeywords:       []string{"básico", "fácil", "ahorro", "popular", "recarga", "sencillo"},
		PriceSensitivity:   0.95,
		InnovationOpenness: 0.15,
		BrandImportance:    0.3,
		TypicalConcerns: []string{
			"No entender cómo funciona el plan",
			"Que el saldo no alcance para todo el mes",
			"Señal débil en su comunidad",
		},
		PreferredChannels: []string{"Radio", "Pulpería", "Televisión", "Recarga"},
		DecisionFactors:   []string{"Precio bajo", "Confianza", "Sencillez"},
		Lens:              "para lo que uno puede pagar",
	},
}

var personaPools = map[Archetype][]PersonaContext{
	Professional: {
		{Name: "María José Rodríguez", Age: 32, City: "Tegucigalpa", Occupation: "Gerente de Marketing", NSE: "C+", MonthlyIncome: 45000},
		{Name: "Carlos Eduardo Mejía", Age: 38, City: "San Pedro Sula", Occupation: "Ingeniero de Sistemas", NSE: "B", MonthlyIncome: 72000},
		{Name: "Ana Lucía Fernández", Age: 29, City: "Tegucigalpa", Occupation: "Abogada corporativa", NSE: "C+", MonthlyIncome: 38000},
	},
	Controller: {
		{Name: "Rosa Elena Martínez", Age: 45, City: "Choloma", Occupation: "Contadora", NSE: "C", MonthlyIncome: 18000},
		{Name: "José Antonio López", Age: 50, City: "La Ceiba", Occupation: "Supervisor de bodega", NSE: "C", MonthlyIncome: 15000},
		{Name: "Gloria Patricia Reyes", Age: 42, City: "Comayagua", Occupation: "Maestra de primaria", NSE: "C", MonthlyIncome: 16000},
	},
	Entrepreneur: {
		{Name: "Luis Fernando Castillo", Age: 36, City: "San Pedro Sula", Occupation: "Dueño de ferretería", NSE: "C", MonthlyIncome: 22000},
		{Name: "Karla Vanessa Hernández", Age: 31, City: "Tegucigalpa", Occupation: "Dueña de salón de belleza", NSE: "C+", MonthlyIncome: 30000},
		{Name: "Mario Roberto Sánchez", Age: 44, City: "Choluteca", Occupation: "Distribuidor de productos agrícolas", NSE: "C", MonthlyIncome: 20000},
	},
	TrendyExplorer: {
		{Name: "Andrea Sofía Pineda", Age: 24, City: "Tegucigalpa", Occupation: "Diseñadora gráfica", NSE: "C+", MonthlyIncome: 28000},
		{Name: "Diego Alejandro Zelaya", Age: 22, City: "San Pedro Sula", Occupation: "Estudiante y creador de contenido", NSE: "C+", MonthlyIncome: 26000},
		{Name: "Valeria Nicole Paz", Age: 26, City: "Roatán", Occupation: "Community manager", NSE: "C+", MonthlyIncome: 32000},
	},
	Pragmatist: {
		{Name: "Juan Carlos Flores", Age: 40, City: "El Progreso", Occupation: "Técnico electricista", NSE: "C-", MonthlyIncome: 11000},
		{Name: "Sandra Maribel Cruz", Age: 35, City: "Danlí", Occupation: "Enfermera", NSE: "C", MonthlyIncome: 14000},
		{Name: "Óscar Armando Ramos", Age: 47, City: "Siguatepeque", Occupation: "Taxista", NSE: "C-", MonthlyIncome: 10000},
	},
	Resigned: {
		{Name: "Pedro Antonio García", Age: 58, City: "Juticalpa", Occupation: "Agricultor", NSE: "D", MonthlyIncome: 6000},
		{Name: "María Dolores Aguilar", Age: 52, City: "Santa Rosa de Copán", Occupation: "Vendedora de mercado", NSE: "D", MonthlyIncome: 5500},
		{Name: "Francisco Javier Núñez", Age: 61, City: "Olanchito", Occupation: "Guardia de seguridad", NSE: "D", MonthlyIncome: 6500},
	},
}

// Profile returns the static profile of a. The boolean is false for
// unknown archetypes.
func Profile(a Archetype) (ArchetypeProfile, bool) {
	p, ok := profiles[a]
	return p, ok
}

// Personas returns a copy of the candidate persona pool of a.
func Personas(a Archetype) []PersonaContext {
	pool := personaPools[a]
	out := make([]PersonaContext, len(pool))
	copy(out, pool)
	return out
}
