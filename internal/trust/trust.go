// Package trust tracks how much a chat persona has warmed up to the
// interviewer.
package trust

// Step is the trust gained per answered message.
const Step = 0.1

// Stage buckets a trust level.
type Stage string

const (
	Reserved Stage = "reserved"
	Open     Stage = "open"
	Trusting Stage = "trusting"
)

// Raise returns the trust level after one more answered message.
//
// Formula: new_level = min(old_level + 0.1, 1.0)
func Raise(level float64) float64 {
	return clamp(level + Step)
}

// StageOf buckets level: below 0.3 reserved, below 0.7 open, else trusting.
func StageOf(level float64) Stage {
	switch {
	case level < 0.3:
		return Reserved
	case level < 0.7:
		return Open
	default:
		return Trusting
	}
}

func clamp(level float64) float64 {
	if level < 0.0 {
		return 0.0
	}
	if level > 1.0 {
		return 1.0
	}
	return level
}
