package layout

import (
	"fmt"

	"github.com/careerkit/cvforge/internal/seniority"
	"github.com/careerkit/cvforge/internal/types"
)

// Error represents an error during layout estimation
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Reducer applies one compression level to a CV structure. Implementations
// must not mutate the input; the compressor satisfies this interface.
type Reducer interface {
	// Reduce returns a new structure with the given level applied
	Reduce(cv *types.CVOptimized, level int) *types.CVOptimized
	// MaxLevel is the deepest defined compression level
	MaxLevel() int
}

// Engine estimates the space units a CVOptimized structure occupies for a
// chosen template and seniority tier. Estimation is pure and synchronous.
type Engine struct {
	template Template
	format   ExperienceFormat
}

// NewEngine creates an engine for the given template name and tier
func NewEngine(templateName string, level seniority.Level) (*Engine, error) {
	if templateName == "" {
		templateName = DefaultTemplate
	}
	template, ok := templates[templateName]
	if !ok {
		return nil, &Error{Message: fmt.Sprintf("unknown template %q", templateName)}
	}
	return &Engine{template: template, format: formatForLevel(level)}, nil
}

// TemplateName returns the name of the engine's template
func (e *Engine) TemplateName() string {
	return e.template.Name
}

// Budget returns the template's fixed page budget in space units
func (e *Engine) Budget() float64 {
	return e.template.BudgetUnits
}

// Fits reports whether an estimate is within the page budget
func (e *Engine) Fits(units float64) bool {
	return units <= e.template.BudgetUnits
}

// EstimateUnits walks the structure and sums the reference unit cost of
// every displayed block. Hidden experiences and realisations cost nothing.
func (e *Engine) EstimateUnits(cv *types.CVOptimized) float64 {
	if cv == nil {
		return 0
	}
	units := headerUnits

	if cv.ElevatorPitch != nil && cv.ElevatorPitch.Inclus {
		units += lineUnits(len([]rune(cv.ElevatorPitch.Texte)), pitchCharsPerLine, pitchUnitsPerLine)
	}

	for _, exp := range cv.Experiences {
		if !exp.Display {
			continue
		}
		format := e.format
		if exp.Condense {
			format = FormatMinimal
		}
		units += experienceHeaderUnits[format]
		for _, real := range exp.Realisations {
			if !real.Display {
				continue
			}
			units += lineUnits(real.CharCount, realisationCharsLine, realisationUnitsLine)
		}
		if len(exp.Technologies) > 0 && !exp.Condense {
			units += technologiesLineUnit
		}
	}

	skillCount := len(cv.Competences.Techniques) + len(cv.Competences.SoftSkills)
	if skillCount > 0 {
		units += skillsBaseUnits + skillsPerItemUnits*float64(skillCount)
	}
	if len(cv.Formations) > 0 {
		units += formationsBaseUnits + formationItemUnits*float64(len(cv.Formations))
	}
	if len(cv.Langues) > 0 {
		units += languesBaseUnits + langueItemUnits*float64(len(cv.Langues))
	}
	if len(cv.Certifications) > 0 {
		units += certsBaseUnits + certItemUnits*float64(len(cv.Certifications))
	}
	if len(cv.ClientsReferences.Clients) > 0 {
		units += clientsBaseUnits + clientItemUnits*float64(len(cv.ClientsReferences.Clients))
	}

	return units
}

// RequiredLevel walks compression levels from 0 upward, re-estimating the
// structure after each hypothetical reduction, and returns the first level
// whose estimate fits the budget. When even the maximum level overflows it
// returns that maximum with fits=false; it never loops past MaxLevel and
// never silently drops the page-budget contract.
func (e *Engine) RequiredLevel(cv *types.CVOptimized, reducer Reducer) (int, bool) {
	for level := 0; level <= reducer.MaxLevel(); level++ {
		candidate := cv
		if level > 0 {
			candidate = reducer.Reduce(cv, level)
		}
		if e.Fits(e.EstimateUnits(candidate)) {
			return level, true
		}
	}
	return reducer.MaxLevel(), false
}
