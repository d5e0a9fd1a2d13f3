// Package narrative renders persona narratives from Liquid templates.
package narrative

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/osteele/liquid"
)

// Renderer parses Liquid templates once and renders them against bindings.
// It is safe for concurrent use.
type Renderer struct {
	engine *liquid.Engine
	cache  sync.Map // template source -> *liquid.Template
}

// New creates a renderer with the narrative filters registered.
func New() *Renderer {
	engine := liquid.NewEngine()
	r := &Renderer{engine: engine}
	r.registerFilters()
	return r
}

func (r *Renderer) registerFilters() {
	// {{ price | lempiras }} -> "L 1,250"
	r.engine.RegisterFilter("lempiras", func(value interface{}) string {
		f, ok := toFloat(value)
		if !ok {
			return fmt.Sprintf("%v", value)
		}
		return Lempiras(f)
	})

	// {{ share | percent }} -> "4.5%"
	r.engine.RegisterFilter("percent", func(value interface{}) string {
		f, ok := toFloat(value)
		if !ok {
			return fmt.Sprintf("%v", value)
		}
		return strconv.FormatFloat(f, 'f', 1, 64) + "%"
	})
}

// Render renders tpl with b. Parsed templates are cached by source.
func (r *Renderer) Render(tpl string, b map[string]any) (string, error) {
	if tpl == "" {
		return "", nil
	}
	var parsed *liquid.Template
	if cached, ok := r.cache.Load(tpl); ok {
		parsed = cached.(*liquid.Template)
	} else {
		t, err := r.engine.ParseString(tpl)
		if err != nil {
			return "", fmt.Errorf("parse template: %w", err)
		}
		r.cache.Store(tpl, t)
		parsed = t
	}

	out, err := parsed.RenderString(b)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// Lempiras formats an amount as "L 1,250".
func Lempiras(f float64) string {
	return "L " + groupThousands(f)
}

// JoinSpanish joins items as a Spanish list: "a, b y c".
func JoinSpanish(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " y " + items[len(items)-1]
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func groupThousands(f float64) string {
	n := int64(math.Round(f))
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var sb strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(c)
	}
	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}
