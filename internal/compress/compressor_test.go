package compress

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/careerkit/cvforge/internal/seniority"
	"github.com/careerkit/cvforge/internal/types"
)

func confirmedRules() seniority.Rules {
	return seniority.RulesFor(seniority.LevelConfirmed)
}

func TestApplyLevel_LevelZeroIsNoOp(t *testing.T) {
	cv := &types.CVOptimized{
		Experiences: []types.ExperienceOptimized{
			{ID: "exp-1", Display: true, PertinenceScore: 10, Realisations: []types.RealisationOptimized{
				{Description: "Faible pertinence", Display: true, PertinenceScore: 5, CharCount: 17},
			}},
		},
		Certifications: []string{"AWS"},
	}

	c := NewCompressor(confirmedRules())
	out, loss := c.ApplyLevel(cv, 0)

	assert.True(t, out.Experiences[0].Display)
	assert.True(t, out.Experiences[0].Realisations[0].Display)
	assert.Equal(t, []string{"AWS"}, out.Certifications)
	assert.Empty(t, loss.RemovedRealisations)
	assert.Empty(t, loss.RemovedExperiences)
}

func TestApplyLevel_InputNeverMutated(t *testing.T) {
	long := strings.Repeat("mot ", 80)
	cv := &types.CVOptimized{
		Experiences: []types.ExperienceOptimized{
			{ID: "exp-1", Display: true, PertinenceScore: 90, Realisations: []types.RealisationOptimized{
				{Description: long, Display: true, PertinenceScore: 80, CharCount: len([]rune(long))},
			}},
		},
	}

	c := NewCompressor(confirmedRules())
	_, _ = c.ApplyLevel(cv, 4)

	assert.Equal(t, long, cv.Experiences[0].Realisations[0].Description)
	assert.True(t, cv.Experiences[0].Realisations[0].Display)
}

func TestApplyLevel_RealisationFloor(t *testing.T) {
	cv := &types.CVOptimized{
		Experiences: []types.ExperienceOptimized{
			{ID: "exp-1", Display: true, PertinenceScore: 90, Realisations: []types.RealisationOptimized{
				{Description: "Forte", Display: true, PertinenceScore: 80, CharCount: 5},
				{Description: "Faible", Display: true, PertinenceScore: 10, CharCount: 6},
			}},
		},
	}

	c := NewCompressor(confirmedRules())
	out, loss := c.ApplyLevel(cv, 1)

	assert.True(t, out.Experiences[0].Realisations[0].Display)
	assert.False(t, out.Experiences[0].Realisations[1].Display)
	assert.Equal(t, 1, loss.RemovedRealisations["exp-1"])
}

func TestApplyLevel_TruncatesAtWordBoundary(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("refonte ", 40)) // 319 runes
	cv := &types.CVOptimized{
		Experiences: []types.ExperienceOptimized{
			{ID: "exp-1", Display: true, PertinenceScore: 90, Realisations: []types.RealisationOptimized{
				{Description: text, Display: true, PertinenceScore: 90, CharCount: len([]rune(text))},
			}},
		},
	}

	c := NewCompressor(confirmedRules())
	out, loss := c.ApplyLevel(cv, 1)

	short := out.Experiences[0].Realisations[0]
	assert.LessOrEqual(t, short.CharCount, 220+len([]rune("…")))
	// Cut lands on a word boundary, never mid-word
	assert.True(t, strings.HasSuffix(short.Description, "refonte…"))
	assert.Equal(t, len([]rune(short.Description)), short.CharCount)
	assert.Equal(t, 1, loss.ShortenedRealisations)
}

func TestApplyLevel_BulletCapKeepsHighestScored(t *testing.T) {
	reals := []types.RealisationOptimized{
		{Description: "a", Display: true, PertinenceScore: 30, CharCount: 1},
		{Description: "b", Display: true, PertinenceScore: 90, CharCount: 1},
		{Description: "c", Display: true, PertinenceScore: 60, CharCount: 1},
		{Description: "d", Display: true, PertinenceScore: 60, CharCount: 1},
		{Description: "e", Display: true, PertinenceScore: 50, CharCount: 1},
	}
	cv := &types.CVOptimized{
		Experiences: []types.ExperienceOptimized{
			{ID: "exp-1", Display: true, PertinenceScore: 90, Realisations: reals},
		},
	}

	c := NewCompressor(confirmedRules())
	out, loss := c.ApplyLevel(cv, 2) // cap 4, floor 35

	kept := make([]string, 0)
	for _, real := range out.Experiences[0].Realisations {
		if real.Display {
			kept = append(kept, real.Description)
		}
	}
	// "a" is below the level-2 floor; cap keeps the top 4 of the rest
	assert.Equal(t, []string{"b", "c", "d", "e"}, kept)
	assert.Equal(t, 1, loss.RemovedRealisations["exp-1"])
	assert.Equal(t, 0, loss.RemovedByCap["exp-1"])
}

func TestApplyLevel_ExperienceFloorRespectsMinimum(t *testing.T) {
	cv := &types.CVOptimized{
		Experiences: []types.ExperienceOptimized{
			{ID: "exp-1", Display: true, PertinenceScore: 80},
			{ID: "exp-2", Display: true, PertinenceScore: 30},
			{ID: "exp-3", Display: true, PertinenceScore: 20},
			{ID: "exp-4", Display: true, PertinenceScore: 10},
		},
	}

	// Confirmed tier requires at least 2 displayed experiences
	c := NewCompressor(confirmedRules())
	out, loss := c.ApplyLevel(cv, 3) // experience floor 40

	displayed := make([]string, 0)
	for _, exp := range out.Experiences {
		if exp.Display {
			displayed = append(displayed, exp.ID)
		}
	}
	assert.Equal(t, []string{"exp-1", "exp-2"}, displayed)
	assert.Equal(t, []string{"exp-4", "exp-3"}, loss.RemovedExperiences)
}

func TestApplyLevel_DeepestLevelOmitsSecondarySections(t *testing.T) {
	cv := &types.CVOptimized{
		Certifications: []string{"AWS SAA"},
		Langues:        []types.Langue{{Langue: "Anglais"}},
	}

	c := NewCompressor(confirmedRules())

	out, loss := c.ApplyLevel(cv, 3)
	assert.NotEmpty(t, out.Certifications)
	assert.Empty(t, loss.TemplateOmissions)

	out, loss = c.ApplyLevel(cv, 4)
	assert.Empty(t, out.Certifications)
	assert.Empty(t, out.Langues)
	assert.Equal(t, []string{"certifications", "langues"}, loss.TemplateOmissions)
}

func TestApplyLevel_ClampsOutOfRangeLevels(t *testing.T) {
	cv := &types.CVOptimized{Certifications: []string{"AWS"}}
	c := NewCompressor(confirmedRules())

	out, _ := c.ApplyLevel(cv, 99)
	assert.Empty(t, out.Certifications, "levels above max clamp to max")

	out, _ = c.ApplyLevel(cv, -3)
	assert.NotEmpty(t, out.Certifications, "negative levels clamp to zero")
}

func TestTruncateAtWord_ShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "court", truncateAtWord("court", 110))
}

func TestTruncateAtWord_StripsTrailingPunctuation(t *testing.T) {
	text := "Pilotage de la migration, avec un focus sur la qualité, la sécurité et les délais de livraison contractuels"
	out := truncateAtWord(text, 40)
	assert.True(t, strings.HasSuffix(out, "…"))
	assert.False(t, strings.HasSuffix(strings.TrimSuffix(out, "…"), ","))
}
