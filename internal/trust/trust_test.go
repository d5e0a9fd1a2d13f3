package trust

import (
	"math"
	"testing"
)

func TestRaise(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		want    float64
	}{
		{"from zero", 0.0, 0.1},
		{"from midway", 0.45, 0.55},
		{"clamped at 1.0", 0.95, 1.0},
		{"stays at 1.0", 1.0, 1.0},
		{"negative input recovers", -0.5, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Raise(tt.current)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Raise(%f) = %f, want %f", tt.current, got, tt.want)
			}
		})
	}
}

func TestRaise_ConvergesInTenSteps(t *testing.T) {
	level := 0.0
	for i := 0; i < 15; i++ {
		level = Raise(level)
	}
	if level != 1.0 {
		t.Errorf("level after 15 raises = %f, want 1.0", level)
	}
}

func TestStageOf(t *testing.T) {
	tests := []struct {
		level float64
		want  Stage
	}{
		{0.0, Reserved},
		{0.29, Reserved},
		{0.3, Open},
		{0.69, Open},
		{0.7, Trusting},
		{1.0, Trusting},
	}
	for _, tt := range tests {
		if got := StageOf(tt.level); got != tt.want {
			t.Errorf("StageOf(%f) = %s, want %s", tt.level, got, tt.want)
		}
	}
}
