// Package transform maps a raw profile record into the annotated,
// pre-scored CV structure consumed by the layout engine.
package transform

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/careerkit/cvforge/internal/types"
)

// quantPattern pairs a quantification type with its detector.
// Patterns are tried in declared order; the first match wins.
type quantPattern struct {
	typ types.QuantificationType
	re  *regexp.Regexp
}

var quantPatterns = []quantPattern{
	{types.QuantBudget, regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(M€|K€)`)},
	{types.QuantPourcentage, regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*%`)},
	{types.QuantEquipe, regexp.MustCompile(`(?i)équipe\s+de\s+(\d+)`)},
	{types.QuantVolume, regexp.MustCompile(`(?i)(\d+)\s+(projets?|utilisateurs?|clients?|collaborateurs?|applications?)`)},
	{types.QuantDuree, regexp.MustCompile(`(?i)(\d+)\s+(ans?|mois)`)},
}

// ExtractQuantification detects the first numeric claim in realisation
// text and returns it as a typed record. Absence of a match returns nil,
// which is not an error.
func ExtractQuantification(text string) *types.Quantification {
	for _, pattern := range quantPatterns {
		match := pattern.re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		quant := &types.Quantification{
			Type:    pattern.typ,
			Valeur:  parseQuantValue(match[1]),
			Display: strings.TrimSpace(match[0]),
		}
		switch pattern.typ {
		case types.QuantBudget, types.QuantVolume, types.QuantDuree:
			quant.Unite = match[2]
		case types.QuantPourcentage:
			quant.Unite = "%"
		case types.QuantEquipe:
			quant.Unite = "personnes"
		}
		return quant
	}
	return nil
}

// parseQuantValue parses a numeric value using either comma or dot decimals
func parseQuantValue(raw string) float64 {
	raw = strings.ReplaceAll(raw, ",", ".")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}
