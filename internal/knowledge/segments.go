package knowledge

import "strings"

// SegmentID identifies a socioeconomic (NSE) economic envelope.
type SegmentID string

const (
	SegmentAB     SegmentID = "NSE_A_B"
	SegmentCPlus  SegmentID = "NSE_C_PLUS"
	SegmentC      SegmentID = "NSE_C"
	SegmentCMinus SegmentID = "NSE_C_MINUS"
	SegmentD      SegmentID = "NSE_D"
	SegmentE      SegmentID = "NSE_E"
)

// Range is a closed interval of Lempira amounts.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Average returns the midpoint of the range.
func (r Range) Average() float64 {
	return (r.Min + r.Max) / 2
}

// EconomicSegment is the household economy of one NSE level. All amounts
// are monthly Lempiras, the same unit as concept prices.
type EconomicSegment struct {
	ID                      SegmentID `json:"id"`
	Level                   string    `json:"nse_level"`
	IncomeRange             Range     `json:"monthly_income_range"`
	TelecomBudgetPercentage float64   `json:"telecom_budget_percentage"`
	TypicalTelecomSpend     Range     `json:"typical_telecom_spend"`
	PaymentPreference       string    `json:"payment_preference"`
	PriceSensitivity        string    `json:"price_sensitivity"`
}

var segments = map[SegmentID]EconomicSegment{
	SegmentAB: {
		ID:                      SegmentAB,
		Level:                   "A/B",
		IncomeRange:             Range{Min: 60000, Max: 150000},
		TelecomBudgetPercentage: 2.5,
		TypicalTelecomSpend:     Range{Min: 1500, Max: 4000},
		PaymentPreference:       "tarjeta de crédito, débito automático",
		PriceSensitivity:        "baja",
	},
	SegmentCPlus: {
		ID:                      SegmentCPlus,
		Level:                   "C+",
		IncomeRange:             Range{Min: 25000, Max: 60000},
		TelecomBudgetPercentage: 3,
		TypicalTelecomSpend:     Range{Min: 800, Max: 1800},
		PaymentPreference:       "pospago con tarjeta o app bancaria",
		PriceSensitivity:        "media-baja",
	},
	SegmentC: {
		ID:                      SegmentC,
		Level:                   "C",
		IncomeRange:             Range{Min: 12000, Max: 25000},
		TelecomBudgetPercentage: 4,
		TypicalTelecomSpend:     Range{Min: 500, Max: 1000},
		PaymentPreference:       "pospago en agencia o Tigo Money",
		PriceSensitivity:        "media",
	},
	SegmentCMinus: {
		ID:                      SegmentCMinus,
		Level:                   "C-",
		IncomeRange:             Range{Min: 7000, Max: 12000},
		TelecomBudgetPercentage: 4.5,
		TypicalTelecomSpend:     Range{Min: 300, Max: 600},
		PaymentPreference:       "paquetes semanales y recargas",
		PriceSensitivity:        "alta",
	},
	SegmentD: {
		ID:                      SegmentD,
		Level:                   "D",
		IncomeRange:             Range{Min: 5000, Max: 7000},
		TelecomBudgetPercentage: 5,
		TypicalTelecomSpend:     Range{Min: 150, Max: 350},
		PaymentPreference:       "recargas diarias en pulpería",
		PriceSensitivity:        "muy alta",
	},
	SegmentE: {
		ID:                      SegmentE,
		Level:                   "E",
		IncomeRange:             Range{Min: 2500, Max: 5000},
		TelecomBudgetPercentage: 5.5,
		TypicalTelecomSpend:     Range{Min: 80, Max: 200},
		PaymentPreference:       "recargas pequeñas ocasionales",
		PriceSensitivity:        "extrema",
	},
}

// Segment returns the economic envelope for id. Unknown ids resolve to NSE_C.
func Segment(id SegmentID) EconomicSegment {
	if s, ok := segments[id]; ok {
		return s
	}
	return segments[SegmentC]
}

// SegmentForNSE maps an NSE code such as "C+" to its economic envelope.
// Unknown codes resolve to NSE_C.
func SegmentForNSE(code string) EconomicSegment {
	return Segment(SegmentIDForNSE(code))
}

// SegmentIDForNSE maps an NSE code to a segment id.
func SegmentIDForNSE(code string) SegmentID {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "A", "B", "A/B", "AB":
		return SegmentAB
	case "C+":
		return SegmentCPlus
	case "C":
		return SegmentC
	case "C-":
		return SegmentCMinus
	case "D":
		return SegmentD
	case "E":
		return SegmentE
	default:
		return SegmentC
	}
}
