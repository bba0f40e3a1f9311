package form

import (
	"strconv"
	"strings"

	"github.com/opstat/opstat/internal/catalog"
)

// NumericContribution converts a display value into its share of a topic
// total. Free-text and date questions, boolean literals, and unparseable
// values contribute zero instead of failing the render.
func NumericContribution(t catalog.ValueType, value string) float64 {
	if t == catalog.TypeText || t == catalog.TypeDate {
		return 0
	}
	v := strings.TrimSpace(value)
	if v == "" || strings.EqualFold(v, "yes") || strings.EqualFold(v, "no") {
		return 0
	}
	f, ok := parseFloatLoose(v)
	if !ok {
		return 0
	}
	return f
}

// parseFloatLoose accepts "42", "42.5", and values with trailing commentary
// like "42 (approx)" by falling back to the first whitespace field.
func parseFloatLoose(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}
	if sp := strings.Fields(s); len(sp) > 0 {
		if v, err := strconv.ParseFloat(sp[0], 64); err == nil {
			return v, true
		}
	}
	return 0, false
}
