package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerkit/cvforge/internal/seniority"
	"github.com/careerkit/cvforge/internal/types"
)

func TestNewEngine_UnknownTemplate(t *testing.T) {
	_, err := NewEngine("parchemin", seniority.LevelConfirmed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parchemin")
}

func TestNewEngine_EmptyNameUsesDefault(t *testing.T) {
	engine, err := NewEngine("", seniority.LevelConfirmed)
	require.NoError(t, err)
	assert.Equal(t, DefaultTemplate, engine.TemplateName())
	assert.Equal(t, 100.0, engine.Budget())
}

func TestEstimateUnits_EmptyCV(t *testing.T) {
	engine, err := NewEngine("classique", seniority.LevelConfirmed)
	require.NoError(t, err)

	// Only the identity header costs anything
	assert.Equal(t, 6.0, engine.EstimateUnits(&types.CVOptimized{}))
	assert.Equal(t, 0.0, engine.EstimateUnits(nil))
}

func TestEstimateUnits_HiddenBlocksCostNothing(t *testing.T) {
	engine, err := NewEngine("classique", seniority.LevelConfirmed)
	require.NoError(t, err)

	visible := &types.CVOptimized{
		Experiences: []types.ExperienceOptimized{
			{Display: true, Realisations: []types.RealisationOptimized{
				{Display: true, CharCount: 80},
			}},
		},
	}
	hidden := &types.CVOptimized{
		Experiences: []types.ExperienceOptimized{
			{Display: true, Realisations: []types.RealisationOptimized{
				{Display: false, CharCount: 80},
			}},
			{Display: false, Realisations: []types.RealisationOptimized{
				{Display: true, CharCount: 80},
			}},
		},
	}

	// header 6.0 + standard experience header 2.6 + one realisation line 1.0
	assert.InDelta(t, 9.6, engine.EstimateUnits(visible), 1e-9)
	// hidden realisation and hidden experience drop out of the sum
	assert.InDelta(t, 8.6, engine.EstimateUnits(hidden), 1e-9)
}

func TestEstimateUnits_CondensedExperienceUsesMinimalFormat(t *testing.T) {
	engine, err := NewEngine("classique", seniority.LevelConfirmed)
	require.NoError(t, err)

	regular := &types.CVOptimized{
		Experiences: []types.ExperienceOptimized{
			{Display: true, Technologies: []string{"Go"}},
		},
	}
	condensed := &types.CVOptimized{
		Experiences: []types.ExperienceOptimized{
			{Display: true, Condense: true, Technologies: []string{"Go"}},
		},
	}

	// standard header 2.6 + technologies line 0.8 vs minimal header 1.4,
	// technologies suppressed when condensed
	assert.InDelta(t, 9.4, engine.EstimateUnits(regular), 1e-9)
	assert.InDelta(t, 7.4, engine.EstimateUnits(condensed), 1e-9)
}

func TestEstimateUnits_PitchCountsOnlyWhenIncluded(t *testing.T) {
	engine, err := NewEngine("classique", seniority.LevelSenior)
	require.NoError(t, err)

	text := strings.Repeat("a", 220) // two pitch lines

	with := &types.CVOptimized{ElevatorPitch: &types.ElevatorPitch{Inclus: true, Texte: text}}
	without := &types.CVOptimized{ElevatorPitch: &types.ElevatorPitch{Inclus: false, Texte: text}}

	assert.InDelta(t, 9.2, engine.EstimateUnits(with), 1e-9)
	assert.InDelta(t, 6.0, engine.EstimateUnits(without), 1e-9)
}

func TestEstimateUnits_SectionCosts(t *testing.T) {
	engine, err := NewEngine("classique", seniority.LevelConfirmed)
	require.NoError(t, err)

	cv := &types.CVOptimized{
		Competences: types.Competences{
			Techniques: []string{"Go", "SQL"},
			SoftSkills: []string{"Leadership"},
		},
		Formations:        []types.Formation{{Diplome: "Master"}},
		Langues:           []types.Langue{{Langue: "Anglais"}, {Langue: "Espagnol"}},
		Certifications:    []string{"AWS SAA"},
		ClientsReferences: types.ClientsReferences{Clients: []string{"BNP Paribas"}},
	}

	// header 6.0 + skills 1.6+3*0.22 + formations 1.5+1.1 + langues 1.0+2*0.5
	// + certs 1.0+0.6 + clients 1.4+0.18
	assert.InDelta(t, 16.04, engine.EstimateUnits(cv), 1e-9)
}

// stubReducer hides one realisation per level
type stubReducer struct{ max int }

func (s *stubReducer) MaxLevel() int { return s.max }

func (s *stubReducer) Reduce(cv *types.CVOptimized, level int) *types.CVOptimized {
	out := cv.Clone()
	hidden := 0
	for i := range out.Experiences {
		for j := range out.Experiences[i].Realisations {
			if hidden < level {
				out.Experiences[i].Realisations[j].Display = false
				hidden++
			}
		}
	}
	return out
}

func buildOverflowing(realisations int) *types.CVOptimized {
	reals := make([]types.RealisationOptimized, realisations)
	for i := range reals {
		reals[i] = types.RealisationOptimized{Display: true, CharCount: 90}
	}
	return &types.CVOptimized{
		Experiences: []types.ExperienceOptimized{{Display: true, Realisations: reals}},
	}
}

func TestRequiredLevel_ZeroWhenAlreadyFits(t *testing.T) {
	engine, err := NewEngine("classique", seniority.LevelConfirmed)
	require.NoError(t, err)

	level, fits := engine.RequiredLevel(buildOverflowing(3), &stubReducer{max: 4})
	assert.Equal(t, 0, level)
	assert.True(t, fits)
}

func TestRequiredLevel_EscalatesUntilFit(t *testing.T) {
	engine, err := NewEngine("classique", seniority.LevelConfirmed)
	require.NoError(t, err)

	// 93 realisation lines overflow the 100-unit budget by ~1.6 units;
	// hiding two of them fits
	level, fits := engine.RequiredLevel(buildOverflowing(93), &stubReducer{max: 4})
	assert.Equal(t, 2, level)
	assert.True(t, fits)
}

func TestRequiredLevel_OverflowAtMaxLevel(t *testing.T) {
	engine, err := NewEngine("classique", seniority.LevelConfirmed)
	require.NoError(t, err)

	level, fits := engine.RequiredLevel(buildOverflowing(200), &stubReducer{max: 4})
	assert.Equal(t, 4, level)
	assert.False(t, fits)
}

func TestEstimateUnits_MonotonicAcrossLevels(t *testing.T) {
	engine, err := NewEngine("classique", seniority.LevelConfirmed)
	require.NoError(t, err)

	cv := buildOverflowing(10)
	reducer := &stubReducer{max: 4}

	previous := engine.EstimateUnits(cv)
	for level := 1; level <= reducer.MaxLevel(); level++ {
		units := engine.EstimateUnits(reducer.Reduce(cv, level))
		assert.LessOrEqual(t, units, previous, "level %d must not cost more than level %d", level, level-1)
		previous = units
	}
}
