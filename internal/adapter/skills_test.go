package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerkit/cvforge/internal/types"
)

func skillWidget(id, section, text string) types.Widget {
	return types.Widget{ID: id, Type: types.WidgetSkillItem, Section: section, Text: text, RelevanceScore: 50}
}

func TestBuildCompetences_SectionDecides(t *testing.T) {
	widgets := []types.Widget{
		skillWidget("w1", "soft_skills", "Go"),
		skillWidget("w2", "technique", "Leadership"),
	}

	competences := buildCompetences(widgets, nil)
	// The widget's section overrides the keyword heuristic
	assert.Equal(t, []string{"Go"}, competences.SoftSkills)
	assert.Equal(t, []string{"Leadership"}, competences.Techniques)
}

func TestBuildCompetences_KeywordHeuristicWithoutSection(t *testing.T) {
	widgets := []types.Widget{
		skillWidget("w1", "", "Kubernetes"),
		skillWidget("w2", "", "Gestion d'équipe internationale"),
	}

	competences := buildCompetences(widgets, nil)
	assert.Equal(t, []string{"Kubernetes"}, competences.Techniques)
	assert.Equal(t, []string{"Gestion d'équipe internationale"}, competences.SoftSkills)
}

func TestBuildCompetences_Deduplicates(t *testing.T) {
	widgets := []types.Widget{
		skillWidget("w1", "technique", "Go"),
		skillWidget("w2", "technique", "go"),
	}

	competences := buildCompetences(widgets, nil)
	assert.Equal(t, []string{"Go"}, competences.Techniques)
}

func TestBuildCompetences_FallbackToLatentSkills(t *testing.T) {
	profile := &types.RAGProfile{
		ContexteEnrichi: &types.ContexteEnrichi{
			CompetencesTacites: []types.TaciteSkill{{Nom: "Jira", Source: "exp-1"}},
			SoftSkillsDeduites: []types.TaciteSkill{{Nom: "Pédagogie"}},
		},
	}

	competences := buildCompetences(nil, profile)
	assert.Equal(t, []string{"Jira"}, competences.Techniques)
	assert.Equal(t, []string{"Pédagogie"}, competences.SoftSkills)
}

func TestBuildCompetences_NoFallbackWhenSkillWidgetsExist(t *testing.T) {
	profile := &types.RAGProfile{
		ContexteEnrichi: &types.ContexteEnrichi{
			CompetencesTacites: []types.TaciteSkill{{Nom: "Jira"}},
		},
	}
	widgets := []types.Widget{skillWidget("w1", "technique", "Go")}

	competences := buildCompetences(widgets, profile)
	require.Equal(t, []string{"Go"}, competences.Techniques)
	assert.NotContains(t, competences.Techniques, "Jira")
}

func TestBuildCompetences_EmptyInputs(t *testing.T) {
	competences := buildCompetences(nil, nil)
	assert.Empty(t, competences.Techniques)
	assert.Empty(t, competences.SoftSkills)
	assert.NotNil(t, competences.Techniques)
	assert.NotNil(t, competences.SoftSkills)
}
