// Package seniority derives a seniority tier from total experience duration
// and supplies the formatting and inclusion rules attached to each tier.
package seniority

import (
	"fmt"
	"strings"
	"time"

	"github.com/careerkit/cvforge/internal/types"
)

// Level is a seniority tier derived from total experience months.
// It is always computed on demand, never persisted as standalone state.
type Level string

// Seniority tiers, ordered by total experience
const (
	LevelJunior    Level = "junior"
	LevelConfirmed Level = "confirmed"
	LevelSenior    Level = "senior"
	LevelExpert    Level = "expert"
)

// Tier thresholds in years of total experience
const (
	confirmedThresholdYears = 3
	seniorThresholdYears    = 8
	expertThresholdYears    = 15
)

// Rules holds the formatting and inclusion rules attached to a tier.
// They are consumed by the schema transformer and the layout engine.
type Rules struct {
	ElevatorPitchRequired   bool
	MaxExperiences          int
	MaxBulletsPerExperience int
	MinExperiences          int
}

// rulesByLevel maps each tier to its fixed rule set
var rulesByLevel = map[Level]Rules{
	LevelJunior:    {ElevatorPitchRequired: false, MaxExperiences: 4, MaxBulletsPerExperience: 4, MinExperiences: 1},
	LevelConfirmed: {ElevatorPitchRequired: false, MaxExperiences: 5, MaxBulletsPerExperience: 5, MinExperiences: 2},
	LevelSenior:    {ElevatorPitchRequired: true, MaxExperiences: 6, MaxBulletsPerExperience: 5, MinExperiences: 3},
	LevelExpert:    {ElevatorPitchRequired: true, MaxExperiences: 7, MaxBulletsPerExperience: 6, MinExperiences: 3},
}

// RulesFor returns the rule set for a tier. Unknown tiers get the
// confirmed rules as a neutral default.
func RulesFor(level Level) Rules {
	if rules, ok := rulesByLevel[level]; ok {
		return rules
	}
	return rulesByLevel[LevelConfirmed]
}

// Calculate derives the tier from total experience months.
// Pure step function: no hysteresis, no memory of prior calculations.
func Calculate(totalMonths int) Level {
	years := float64(totalMonths) / 12.0
	switch {
	case years < confirmedThresholdYears:
		return LevelJunior
	case years < seniorThresholdYears:
		return LevelConfirmed
	case years < expertThresholdYears:
		return LevelSenior
	default:
		return LevelExpert
	}
}

// TotalMonths sums the duration of all experiences in months.
// Ongoing experiences count up to now; negative spans clamp to zero;
// experiences with unparsable start dates contribute zero.
func TotalMonths(experiences []types.RAGExperience) int {
	total := 0
	now := time.Now()
	for _, exp := range experiences {
		start, ok := ParseDate(exp.DateDebut)
		if !ok {
			continue
		}
		end := now
		if !exp.Actuel && exp.DateFin != "" {
			if parsed, ok := ParseDate(exp.DateFin); ok {
				end = parsed
			}
		}
		months := monthsBetween(start, end)
		if months < 0 {
			months = 0
		}
		total += months
	}
	return total
}

// monthsBetween counts whole months from start to end
func monthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}

// dateLayouts are tried in order when parsing profile dates
var dateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// ParseDate parses dates in YYYY-MM, YYYY, or ISO form
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	// ISO timestamps carry a time component; keep only the date part
	if idx := strings.IndexByte(value, 'T'); idx > 0 {
		value = value[:idx]
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// frenchMonths maps time.Month to the localized display name
var frenchMonths = [...]string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// FormatDuration produces the human display string for an experience span:
// "Depuis <Month> <Year>" for ongoing roles, otherwise a localized
// duration such as "2 ans 3 mois", "6 mois", or "1 an".
func FormatDuration(dateDebut, dateFin string, ongoing bool) string {
	start, ok := ParseDate(dateDebut)
	if !ok {
		return ""
	}
	if ongoing || dateFin == "" {
		return fmt.Sprintf("Depuis %s %d", frenchMonths[start.Month()-1], start.Year())
	}
	end, ok := ParseDate(dateFin)
	if !ok {
		return ""
	}
	months := monthsBetween(start, end)
	if months < 0 {
		months = 0
	}
	return formatMonths(months)
}

// formatMonths renders a month count as a localized duration string
func formatMonths(months int) string {
	years := months / 12
	rest := months % 12
	switch {
	case years == 0:
		return fmt.Sprintf("%d mois", months)
	case years == 1 && rest == 0:
		return "1 an"
	case rest == 0:
		return fmt.Sprintf("%d ans", years)
	case years == 1:
		return fmt.Sprintf("1 an %d mois", rest)
	default:
		return fmt.Sprintf("%d ans %d mois", years, rest)
	}
}
