// Package parser turns free-text ingredient lines like "1 1/2 cups flour"
// into structured (name, quantity, unit) triples. It is deterministic,
// side-effect free and total: malformed input degrades to best-effort
// defaults instead of failing.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pageza/mealforge/internal/models"
)

// Ingredient is a parsed ingredient line.
type Ingredient struct {
	Name     string
	Quantity float64
	Unit     models.Unit
}

// linePattern matches a leading quantity (mixed number, fraction, decimal or
// whole number), an optional unit token and the remaining text as the name.
var linePattern = regexp.MustCompile(`^(\d+\s+\d+/\d+|\d+/\d+|\d+\.\d+|\d+)\s*([a-zA-Z]+)?\s*(.*)$`)

// ParseLine parses a single ingredient line. The second return value is false
// only for blank input, which has no valid triple and should be skipped.
func ParseLine(line string) (Ingredient, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Ingredient{}, false
	}

	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		// No leading quantity: the whole line is the ingredient name.
		return Ingredient{Name: line, Quantity: 1.0, Unit: models.UnitEach}, true
	}

	quantity := parseQuantity(m[1])
	unit := models.ParseUnit(m[2])

	name := strings.TrimSpace(m[3])
	if name == "" {
		// Nothing left after stripping quantity and unit; keep the original
		// line so the item is still identifiable.
		name = line
	}

	return Ingredient{Name: name, Quantity: quantity, Unit: unit}, true
}

// ParseLines parses a list of ingredient lines, skipping blank ones.
func ParseLines(lines []string) []Ingredient {
	parsed := make([]Ingredient, 0, len(lines))
	for _, line := range lines {
		if ing, ok := ParseLine(line); ok {
			parsed = append(parsed, ing)
		}
	}
	return parsed
}

// parseQuantity parses "3", "2.5", "1/2" or "1 1/2" into a float.
func parseQuantity(s string) float64 {
	s = strings.TrimSpace(s)

	// Mixed numbers like "1 1/2".
	if strings.Contains(s, " ") && strings.Contains(s, "/") {
		parts := strings.Fields(s)
		whole, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 1.0
		}
		return whole + parseFraction(parts[1])
	}

	if strings.Contains(s, "/") {
		return parseFraction(s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 1.0
	}
	return v
}

// parseFraction parses "1/2" into a float, defaulting to 1.0 on malformed
// input or a zero denominator.
func parseFraction(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return 1.0
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 1.0
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 1.0
	}
	return n / d
}
