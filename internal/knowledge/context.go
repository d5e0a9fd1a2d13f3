package knowledge

import "github.com/MikeSquared-Agency/synthpanel/internal/textmatch"

// MajorCities have dependable 4G coverage; anything else is a coverage risk.
var MajorCities = []string{"Tegucigalpa", "San Pedro Sula", "La Ceiba", "Choloma", "Comayagua", "Choluteca"}

// IsMajorCity reports whether city is one of MajorCities.
func IsMajorCity(city string) bool {
	folded := textmatch.Fold(city)
	for _, c := range MajorCities {
		if textmatch.Fold(c) == folded {
			return true
		}
	}
	return false
}

// CompetitiveContext summarises the market a concept competes in.
type CompetitiveContext struct {
	MainCompetitor       string  `json:"main_competitor"`
	CompetitorEntryPrice float64 `json:"competitor_entry_price"`
	MarketLeaderClaim    string  `json:"market_leader_claim"`
}

// Market is the competitive reference used in persona narratives.
var Market = CompetitiveContext{
	MainCompetitor:       "Claro",
	CompetitorEntryPrice: 299,
	MarketLeaderClaim:    "la red con mayor cobertura de Honduras",
}
