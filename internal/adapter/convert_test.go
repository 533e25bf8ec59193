package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerkit/cvforge/internal/types"
)

func header(id, ragID, text string, score int) types.Widget {
	return types.Widget{
		ID: id, Type: types.WidgetExperienceHeader, Text: text, RelevanceScore: score,
		Sources: &types.WidgetSources{RAGExperienceID: ragID},
	}
}

func bullet(id, ragID, text string, score int) types.Widget {
	return types.Widget{
		ID: id, Type: types.WidgetExperienceBullet, Text: text, RelevanceScore: score,
		Sources: &types.WidgetSources{RAGExperienceID: ragID},
	}
}

func twoExperienceEnvelope() *types.WidgetEnvelope {
	return &types.WidgetEnvelope{
		Widgets: []types.Widget{
			header("w1", "exp-1", "Tech Lead - Acme", 90),
			bullet("w2", "exp-1", "Migration du SI vers le cloud", 85),
			bullet("w3", "exp-1", "Encadrement de 5 développeurs", 75),
			header("w4", "exp-2", "Développeur - StartupX", 60),
			bullet("w5", "exp-2", "Développement de l'API interne", 55),
		},
	}
}

func TestConvertAndSort_NilEnvelope(t *testing.T) {
	_, err := ConvertAndSort(nil, nil)
	require.Error(t, err)
}

func TestConvertAndSort_EmptyEnvelope(t *testing.T) {
	_, err := ConvertAndSort(&types.WidgetEnvelope{}, nil)
	require.Error(t, err)
}

func TestConvertAndSort_NegativeScoreIsHardError(t *testing.T) {
	envelope := &types.WidgetEnvelope{
		Widgets: []types.Widget{header("w1", "exp-1", "Dev - Acme", -1)},
	}

	_, err := ConvertAndSort(envelope, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}

func TestConvertAndSort_InvalidOptions(t *testing.T) {
	_, err := ConvertAndSort(twoExperienceEnvelope(), &Options{MinScore: -10})
	require.Error(t, err)
}

func TestConvertAndSort_GroupsAndOrdersExperiences(t *testing.T) {
	cv, err := ConvertAndSort(twoExperienceEnvelope(), nil)
	require.NoError(t, err)
	require.Len(t, cv.Experiences, 2)

	first := cv.Experiences[0]
	assert.Equal(t, "exp-1", first.ID)
	assert.Equal(t, "Tech Lead", first.Poste)
	assert.Equal(t, "Acme", first.Entreprise)
	assert.Equal(t, 90, first.RelevanceScore)
	assert.Equal(t, []string{"Migration du SI vers le cloud", "Encadrement de 5 développeurs"}, first.Realisations)

	second := cv.Experiences[1]
	assert.Equal(t, "exp-2", second.ID)
	assert.Equal(t, 60, second.RelevanceScore)
}

func TestConvertAndSort_StableOrderOnEqualScores(t *testing.T) {
	envelope := &types.WidgetEnvelope{
		Widgets: []types.Widget{
			header("w1", "exp-a", "Dev - A", 70),
			bullet("w2", "exp-a", "ra", 50),
			header("w3", "exp-b", "Dev - B", 70),
			bullet("w4", "exp-b", "rb", 50),
		},
	}

	for i := 0; i < 5; i++ {
		cv, err := ConvertAndSort(envelope, nil)
		require.NoError(t, err)
		assert.Equal(t, "exp-a", cv.Experiences[0].ID)
		assert.Equal(t, "exp-b", cv.Experiences[1].ID)
	}
}

func TestConvertAndSort_MinScoreDropsBulletsAndEmptyGroups(t *testing.T) {
	cv, err := ConvertAndSort(twoExperienceEnvelope(), &Options{MinScore: 70})
	require.NoError(t, err)

	// exp-2's only bullet scores 55; the emptied group disappears
	require.Len(t, cv.Experiences, 1)
	assert.Equal(t, "exp-1", cv.Experiences[0].ID)
	assert.Len(t, cv.Experiences[0].Realisations, 2)
	assert.Equal(t, 1, cv.CVMetadata.WidgetsFiltered)
}

func TestConvertAndSort_MaxExperiencesKeepsHighestScored(t *testing.T) {
	cv, err := ConvertAndSort(twoExperienceEnvelope(), &Options{MaxExperiences: 1})
	require.NoError(t, err)

	require.Len(t, cv.Experiences, 1)
	assert.Equal(t, "exp-1", cv.Experiences[0].ID)
	assert.Equal(t, 90, cv.Experiences[0].RelevanceScore)
}

func TestConvertAndSort_MaxBulletsPerExperience(t *testing.T) {
	cv, err := ConvertAndSort(twoExperienceEnvelope(), &Options{MaxBulletsPerExperience: 1})
	require.NoError(t, err)

	// The highest-scored bullet survives the cap
	assert.Equal(t, []string{"Migration du SI vers le cloud"}, cv.Experiences[0].Realisations)
}

func TestConvertAndSort_BulletsWithoutHeaderDropped(t *testing.T) {
	envelope := &types.WidgetEnvelope{
		Widgets: []types.Widget{
			header("w1", "exp-1", "Dev - Acme", 80),
			bullet("w2", "exp-1", "réalisation", 70),
			bullet("w3", "exp-inconnu", "bullet orphelin", 95),
		},
	}

	cv, err := ConvertAndSort(envelope, nil)
	require.NoError(t, err)
	require.Len(t, cv.Experiences, 1)
	assert.Equal(t, "exp-1", cv.Experiences[0].ID)
}

func TestConvertAndSort_HeaderWithoutSourceKeepsGroup(t *testing.T) {
	envelope := &types.WidgetEnvelope{
		Widgets: []types.Widget{
			{ID: "w1", Type: types.WidgetExperienceHeader, Text: "Freelance - Divers", RelevanceScore: 50},
			{ID: "w2", Type: types.WidgetExperienceBullet, Text: "missions variées", RelevanceScore: 40,
				Sources: &types.WidgetSources{RAGExperienceID: "w1"}},
		},
	}

	cv, err := ConvertAndSort(envelope, nil)
	require.NoError(t, err)
	require.Len(t, cv.Experiences, 1)
	assert.Equal(t, "Freelance", cv.Experiences[0].Poste)
	assert.Equal(t, []string{"missions variées"}, cv.Experiences[0].Realisations)
}

func TestConvertAndSort_Metadata(t *testing.T) {
	envelope := twoExperienceEnvelope()
	envelope.Meta = &types.GenerationMeta{GeneratorType: "ai", GeneratorVersion: "2"}

	cv, err := ConvertAndSort(envelope, nil)
	require.NoError(t, err)
	require.NotNil(t, cv.CVMetadata)
	assert.Equal(t, "ai", cv.CVMetadata.GeneratorType)
	assert.Equal(t, "2", cv.CVMetadata.GeneratorVersion)
	assert.Equal(t, 5, cv.CVMetadata.WidgetsTotal)
	assert.Equal(t, 0, cv.CVMetadata.WidgetsFiltered)
}
