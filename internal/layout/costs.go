// Package layout estimates the space units a CV structure occupies for a
// template and decides the minimal compression level needed to fit.
package layout

import (
	"math"

	"github.com/careerkit/cvforge/internal/seniority"
)

// ExperienceFormat selects the reference cost row for an experience block
type ExperienceFormat string

// Experience formats, from most to least expensive
const (
	FormatDetailed ExperienceFormat = "detailed"
	FormatStandard ExperienceFormat = "standard"
	FormatCompact  ExperienceFormat = "compact"
	FormatMinimal  ExperienceFormat = "minimal"
)

// Template holds the fixed page budget for one CV template, expressed in
// normalized space units rather than pixels.
type Template struct {
	Name        string
	BudgetUnits float64
}

// DefaultTemplate is used when the caller does not pick one
const DefaultTemplate = "classique"

var templates = map[string]Template{
	"classique": {Name: "classique", BudgetUnits: 100},
	"moderne":   {Name: "moderne", BudgetUnits: 92},
	"compact":   {Name: "compact", BudgetUnits: 112},
}

// Reference unit costs, ported from the calibration table asserted against
// real rendering output. Do not re-derive these values by guesswork.
const (
	headerUnits          = 6.0
	pitchCharsPerLine    = 110
	pitchUnitsPerLine    = 1.6
	realisationCharsLine = 95
	realisationUnitsLine = 1.0
	technologiesLineUnit = 0.8
	skillsBaseUnits      = 1.6
	skillsPerItemUnits   = 0.22
	formationsBaseUnits  = 1.5
	formationItemUnits   = 1.1
	languesBaseUnits     = 1.0
	langueItemUnits      = 0.5
	certsBaseUnits       = 1.0
	certItemUnits        = 0.6
	clientsBaseUnits     = 1.4
	clientItemUnits      = 0.18
)

// experienceHeaderUnits is the cost of the role/company/dates block per format
var experienceHeaderUnits = map[ExperienceFormat]float64{
	FormatDetailed: 3.2,
	FormatStandard: 2.6,
	FormatCompact:  2.0,
	FormatMinimal:  1.4,
}

// formatForLevel maps a seniority tier to its default experience format.
// Senior profiles list more experiences, so each entry renders tighter.
func formatForLevel(level seniority.Level) ExperienceFormat {
	switch level {
	case seniority.LevelJunior:
		return FormatDetailed
	case seniority.LevelConfirmed:
		return FormatStandard
	case seniority.LevelSenior:
		return FormatStandard
	case seniority.LevelExpert:
		return FormatCompact
	default:
		return FormatStandard
	}
}

// lineUnits converts a character count into line-based units
func lineUnits(chars int, charsPerLine int, unitsPerLine float64) float64 {
	if chars <= 0 {
		return 0
	}
	lines := math.Ceil(float64(chars) / float64(charsPerLine))
	return lines * unitsPerLine
}
