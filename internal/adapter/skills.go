package adapter

import (
	"strings"

	"github.com/careerkit/cvforge/internal/types"
)

// softSkillKeywords classify a skill widget as a soft skill when its
// section gives no signal. Kept as a data table so the heuristic can be
// tuned without touching control flow.
var softSkillKeywords = []string{
	"communication", "leadership", "management", "gestion d'équipe",
	"autonomie", "rigueur", "adaptabilité", "esprit d'équipe",
	"organisation", "pédagogie", "négociation", "écoute",
}

// buildCompetences splits skill widgets into techniques and soft skills.
// When no skill widgets exist at all, latent skills from the profile's
// enrichment context keep the CV from shipping without a skills section.
func buildCompetences(widgets []types.Widget, profile *types.RAGProfile) types.Competences {
	competences := types.Competences{
		Techniques: []string{},
		SoftSkills: []string{},
	}

	seen := make(map[string]bool)
	hasSkillWidgets := false
	for _, widget := range widgets {
		if widget.Type != types.WidgetSkillItem {
			continue
		}
		hasSkillWidgets = true
		skill := strings.TrimSpace(widget.Text)
		if skill == "" || seen[strings.ToLower(skill)] {
			continue
		}
		seen[strings.ToLower(skill)] = true
		if isSoftSkill(widget.Section, skill) {
			competences.SoftSkills = append(competences.SoftSkills, skill)
		} else {
			competences.Techniques = append(competences.Techniques, skill)
		}
	}

	if hasSkillWidgets || profile == nil || profile.ContexteEnrichi == nil {
		return competences
	}

	// Sparse-data degrade: no skill widgets, fall back to latent profile skills
	for _, tacite := range profile.ContexteEnrichi.CompetencesTacites {
		if tacite.Nom != "" && !seen[strings.ToLower(tacite.Nom)] {
			seen[strings.ToLower(tacite.Nom)] = true
			competences.Techniques = append(competences.Techniques, tacite.Nom)
		}
	}
	for _, deduite := range profile.ContexteEnrichi.SoftSkillsDeduites {
		if deduite.Nom != "" && !seen[strings.ToLower(deduite.Nom)] {
			seen[strings.ToLower(deduite.Nom)] = true
			competences.SoftSkills = append(competences.SoftSkills, deduite.Nom)
		}
	}
	return competences
}

// isSoftSkill decides the skills column: the widget's source section wins,
// then the keyword heuristic
func isSoftSkill(section, skill string) bool {
	sectionLower := strings.ToLower(section)
	if strings.Contains(sectionLower, "soft") {
		return true
	}
	if strings.Contains(sectionLower, "tech") {
		return false
	}
	skillLower := strings.ToLower(skill)
	for _, keyword := range softSkillKeywords {
		if strings.Contains(skillLower, keyword) {
			return true
		}
	}
	return false
}
