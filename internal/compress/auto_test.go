package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerkit/cvforge/internal/layout"
	"github.com/careerkit/cvforge/internal/seniority"
	"github.com/careerkit/cvforge/internal/types"
)

func newEngine(t *testing.T) *layout.Engine {
	t.Helper()
	engine, err := layout.NewEngine("classique", seniority.LevelConfirmed)
	require.NoError(t, err)
	return engine
}

func smallCV() *types.CVOptimized {
	return &types.CVOptimized{
		Experiences: []types.ExperienceOptimized{
			{ID: "exp-1", Display: true, PertinenceScore: 80, Realisations: []types.RealisationOptimized{
				{Description: "Livraison du projet", Display: true, PertinenceScore: 70, CharCount: 19},
			}},
		},
	}
}

func hugeCV() *types.CVOptimized {
	experiences := make([]types.ExperienceOptimized, 20)
	for i := range experiences {
		reals := make([]types.RealisationOptimized, 8)
		for j := range reals {
			reals[j] = types.RealisationOptimized{
				Description:     "Réalisation significative avec un niveau de détail important sur la mission et les résultats obtenus pour le client final",
				Display:         true,
				PertinenceScore: 90,
				CharCount:       120,
			}
		}
		experiences[i] = types.ExperienceOptimized{
			ID:              "exp",
			Display:         true,
			PertinenceScore: 90,
			Realisations:    reals,
		}
	}
	return &types.CVOptimized{Experiences: experiences}
}

func TestAutoCompress_FitsAtLevelZero(t *testing.T) {
	c := NewCompressor(seniority.RulesFor(seniority.LevelConfirmed))
	result := c.AutoCompress(smallCV(), newEngine(t))

	assert.Equal(t, 0, result.Level)
	assert.True(t, result.Fits)
	assert.False(t, result.Dense)
	assert.Greater(t, result.Stats.RemainingUnits, 0.0)
	assert.Equal(t, result.Stats.BudgetUnits-result.Stats.TotalUnits, result.Stats.RemainingUnits)
}

func TestAutoCompress_OverflowReportedNotErrored(t *testing.T) {
	c := NewCompressor(seniority.RulesFor(seniority.LevelConfirmed))
	result := c.AutoCompress(hugeCV(), newEngine(t))

	assert.Equal(t, MaxLevel, result.Level)
	assert.False(t, result.Fits)
	assert.True(t, result.Dense)
	assert.Greater(t, result.Stats.UsagePercent, 100.0)
	require.NotNil(t, result.Loss)
	assert.Greater(t, result.Loss.ShortenedRealisations, 0)
}

func TestAutoCompress_StatsConsistent(t *testing.T) {
	c := NewCompressor(seniority.RulesFor(seniority.LevelConfirmed))
	result := c.AutoCompress(smallCV(), newEngine(t))

	stats := result.Stats
	assert.Equal(t, 100.0, stats.BudgetUnits)
	assert.InDelta(t, stats.TotalUnits/stats.BudgetUnits*100, stats.UsagePercent, 1e-9)
}
