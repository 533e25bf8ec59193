// Package compress applies ordered compression levels to a CV structure
// until it fits its template budget, recording every loss along the way.
package compress

import (
	"sort"
	"strings"

	"github.com/careerkit/cvforge/internal/seniority"
	"github.com/careerkit/cvforge/internal/types"
)

// MaxLevel is the deepest defined compression level. Level 0 is a no-op.
const MaxLevel = 4

// ellipsis is appended to realisations truncated by the character budget
const ellipsis = "…"

// levelParams holds one level's reduction thresholds. Zero values mean
// the stage is skipped at that level.
type levelParams struct {
	realisationFloor int  // drop realisations scored below this
	charBudget       int  // max characters per realisation
	maxBullets       int  // bullets-per-experience cap
	experienceFloor  int  // drop experiences scored below this
	omitSections     bool // omit certifications and languages
}

// paramsByLevel is ordered by aggressiveness. Each stage's thresholds are
// monotonic across levels so estimated units never increase with level.
var paramsByLevel = [MaxLevel + 1]levelParams{
	{},
	{realisationFloor: 20, charBudget: 220, maxBullets: 5},
	{realisationFloor: 35, charBudget: 180, maxBullets: 4, experienceFloor: 25},
	{realisationFloor: 50, charBudget: 140, maxBullets: 3, experienceFloor: 40},
	{realisationFloor: 60, charBudget: 110, maxBullets: 2, experienceFloor: 55, omitSections: true},
}

// Compressor applies compression levels to CVOptimized structures.
// It is stateless across calls and safe for concurrent use; every
// application works on a fresh clone of its input.
type Compressor struct {
	rules seniority.Rules
}

// NewCompressor creates a compressor honoring the tier's minimum
// experience count
func NewCompressor(rules seniority.Rules) *Compressor {
	return &Compressor{rules: rules}
}

// MaxLevel returns the deepest defined level
func (c *Compressor) MaxLevel() int {
	return MaxLevel
}

// Reduce applies a level and discards the loss report. It exists so the
// layout engine can probe hypothetical reductions while walking levels.
func (c *Compressor) Reduce(cv *types.CVOptimized, level int) *types.CVOptimized {
	reduced, _ := c.ApplyLevel(cv, level)
	return reduced
}

// ApplyLevel applies one compression level's transformations in fixed
// precedence order, most job-relevant content preserved last:
// realisation floor, character budget, bullet cap, experience floor,
// secondary section omission. The input is never mutated.
func (c *Compressor) ApplyLevel(cv *types.CVOptimized, level int) (*types.CVOptimized, *types.LossReport) {
	if level < 0 {
		level = 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	params := paramsByLevel[level]

	out := cv.Clone()
	loss := &types.LossReport{
		RemovedRealisations: make(map[string]int),
		RemovedByCap:        make(map[string]int),
		RemovedExperiences:  []string{},
		TemplateOmissions:   []string{},
	}
	if level == 0 {
		return out, loss
	}

	for i := range out.Experiences {
		exp := &out.Experiences[i]
		dropLowRealisations(exp, params.realisationFloor, loss)
		shortenRealisations(exp, params.charBudget, loss)
		capBullets(exp, params.maxBullets, loss)
	}

	dropLowExperiences(out, params.experienceFloor, c.rules.MinExperiences, loss)

	if params.omitSections {
		omitSecondarySections(out, loss)
	}

	return out, loss
}

// dropLowRealisations hides realisations scored below the level floor
func dropLowRealisations(exp *types.ExperienceOptimized, floor int, loss *types.LossReport) {
	if floor <= 0 {
		return
	}
	for i := range exp.Realisations {
		real := &exp.Realisations[i]
		if real.Display && real.PertinenceScore < floor {
			real.Display = false
			loss.RemovedRealisations[exp.ID]++
		}
	}
}

// shortenRealisations truncates remaining realisation text to the level's
// character budget, cutting at a word boundary and appending an ellipsis
func shortenRealisations(exp *types.ExperienceOptimized, budget int, loss *types.LossReport) {
	if budget <= 0 {
		return
	}
	for i := range exp.Realisations {
		real := &exp.Realisations[i]
		if !real.Display || real.CharCount <= budget {
			continue
		}
		real.Description = truncateAtWord(real.Description, budget)
		real.CharCount = len([]rune(real.Description))
		loss.ShortenedRealisations++
	}
}

// capBullets keeps only the highest-scored displayed realisations up to
// the level cap, preferring earlier bullets on equal scores
func capBullets(exp *types.ExperienceOptimized, cap int, loss *types.LossReport) {
	if cap <= 0 {
		return
	}
	displayed := make([]int, 0, len(exp.Realisations))
	for i, real := range exp.Realisations {
		if real.Display {
			displayed = append(displayed, i)
		}
	}
	if len(displayed) <= cap {
		return
	}
	sort.SliceStable(displayed, func(a, b int) bool {
		return exp.Realisations[displayed[a]].PertinenceScore > exp.Realisations[displayed[b]].PertinenceScore
	})
	for _, idx := range displayed[cap:] {
		exp.Realisations[idx].Display = false
		loss.RemovedByCap[exp.ID]++
	}
}

// dropLowExperiences hides experiences scored below the level floor,
// lowest-scored first, but never reduces the displayed count below the
// seniority-mandated minimum
func dropLowExperiences(cv *types.CVOptimized, floor, minExperiences int, loss *types.LossReport) {
	if floor <= 0 {
		return
	}
	displayedCount := 0
	for _, exp := range cv.Experiences {
		if exp.Display {
			displayedCount++
		}
	}
	// Experiences are ordered by descending pertinence, so walking from
	// the end drops the lowest-scored first
	for i := len(cv.Experiences) - 1; i >= 0; i-- {
		exp := &cv.Experiences[i]
		if !exp.Display || exp.PertinenceScore >= floor {
			continue
		}
		if displayedCount <= minExperiences {
			break
		}
		exp.Display = false
		displayedCount--
		loss.RemovedExperiences = append(loss.RemovedExperiences, exp.ID)
	}
}

// omitSecondarySections drops certifications and languages entirely
func omitSecondarySections(cv *types.CVOptimized, loss *types.LossReport) {
	if len(cv.Certifications) > 0 {
		cv.Certifications = nil
		loss.TemplateOmissions = append(loss.TemplateOmissions, "certifications")
	}
	if len(cv.Langues) > 0 {
		cv.Langues = nil
		loss.TemplateOmissions = append(loss.TemplateOmissions, "langues")
	}
}

// truncateAtWord cuts text to at most budget runes at a word boundary
func truncateAtWord(text string, budget int) string {
	runes := []rune(text)
	if len(runes) <= budget {
		return text
	}
	cut := string(runes[:budget])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,;:") + ellipsis
}
