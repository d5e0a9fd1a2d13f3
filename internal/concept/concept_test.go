package concept

import "testing"

func TestVariablesAreCanonical(t *testing.T) {
	if len(Variables) != 9 {
		t.Fatalf("expected 9 variables, got %d", len(Variables))
	}
	seen := map[Variable]bool{}
	for _, v := range Variables {
		if seen[v] {
			t.Errorf("duplicate variable %s", v)
		}
		seen[v] = true
		if !v.Valid() || v.Label() == string(v) {
			t.Errorf("variable %s has no label", v)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		c       Concept
		wantErr bool
	}{
		{"minimal", Concept{Name: "Tigo Básico"}, false},
		{"missing name", Concept{Name: "  "}, true},
		{"bad type", Concept{Name: "x", Type: "poster"}, true},
		{"negative price", Concept{Name: "x", MonthlyPrice: PriceOf(-1)}, true},
		{"product concept", Concept{Name: "x", Type: TypeProductConcept, MonthlyPrice: PriceOf(300)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	c := Concept{Name: "x", Benefits: []string{"a"}, MonthlyPrice: PriceOf(10)}
	d := c.Clone()
	d.Benefits[0] = "b"
	*d.MonthlyPrice = 20
	if c.Benefits[0] != "a" || *c.MonthlyPrice != 10 {
		t.Fatal("Clone shares state with the original")
	}
}

func TestHasPrice(t *testing.T) {
	if (Concept{}).HasPrice() {
		t.Error("nil price should not count")
	}
	if (Concept{MonthlyPrice: PriceOf(0)}).HasPrice() {
		t.Error("zero price should not count")
	}
	if !(Concept{MonthlyPrice: PriceOf(300)}).HasPrice() {
		t.Error("300 should count")
	}
}

func TestField(t *testing.T) {
	c := Concept{Benefits: []string{"WhatsApp ilimitado", "5GB"}, Tone: ToneFun}
	if got := c.Field(VarBenefits); got != "WhatsApp ilimitado, 5GB" {
		t.Errorf("benefits field = %q", got)
	}
	if got := c.Field(VarTone); got != "fun" {
		t.Errorf("tone field = %q", got)
	}
	if got := c.Field(VarPrice); got != "" {
		t.Errorf("price has no text field, got %q", got)
	}
}
