package concept

import "strings"

// Variable is one of the nine concept facets scored independently.
type Variable string

const (
	VarName            Variable = "name"
	VarDescription     Variable = "description"
	VarBenefits        Variable = "benefits"
	VarDifferentiation Variable = "differentiation"
	VarPrice           Variable = "price"
	VarTargetAudience  Variable = "target_audience"
	VarChannel         Variable = "channel"
	VarTone            Variable = "tone"
	VarCallToAction    Variable = "call_to_action"
)

// Variables is the canonical evaluation order.
var Variables = []Variable{
	VarName,
	VarDescription,
	VarBenefits,
	VarDifferentiation,
	VarPrice,
	VarTargetAudience,
	VarChannel,
	VarTone,
	VarCallToAction,
}

var labels = map[Variable]string{
	VarName:            "Nombre",
	VarDescription:     "Descripción",
	VarBenefits:        "Beneficios",
	VarDifferentiation: "Diferenciación",
	VarPrice:           "Precio",
	VarTargetAudience:  "Público objetivo",
	VarChannel:         "Canal",
	VarTone:            "Tono",
	VarCallToAction:    "Llamado a la acción",
}

// Label returns the human-readable Spanish label of v.
func (v Variable) Label() string {
	if l, ok := labels[v]; ok {
		return l
	}
	return string(v)
}

// Valid reports whether v is canonical.
func (v Variable) Valid() bool {
	_, ok := labels[v]
	return ok
}

// Field returns the free-text value of c relevant to v. Benefits are joined;
// price has no text field and returns "".
func (c Concept) Field(v Variable) string {
	switch v {
	case VarName:
		return c.Name
	case VarDescription:
		return c.Description
	case VarBenefits:
		return strings.Join(c.Benefits, ", ")
	case VarDifferentiation:
		return c.Differentiation
	case VarTargetAudience:
		return c.TargetAudience
	case VarChannel:
		return c.Channel
	case VarTone:
		return string(c.Tone)
	case VarCallToAction:
		return c.CallToAction
	}
	return ""
}
