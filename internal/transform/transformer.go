package transform

import (
	"strings"
	"time"

	"github.com/careerkit/cvforge/internal/seniority"
	"github.com/careerkit/cvforge/internal/types"
)

// Pertinence scoring components. Base score plus bounded bonuses,
// clamped to [0,100].
const (
	baseExperienceScore  = 50
	ongoingBonus         = 15
	recentBonus          = 10 // ended within 2 years
	midRecentBonus       = 5  // ended within 5 years
	techKeywordBonus     = 5
	techKeywordBonusCap  = 20
	titleWordBonus       = 5
	titleWordBonusCap    = 15
	baseRealisationScore = 40
	quantifiedBonus      = 20
	realKeywordBonus     = 10
	realKeywordBonusCap  = 30
)

// titleStopWords are excluded from title word overlap
var titleStopWords = map[string]bool{
	"de": true, "des": true, "du": true, "la": true, "le": true, "les": true,
	"et": true, "en": true, "un": true, "une": true, "chez": true,
	"of": true, "the": true, "and": true, "for": true,
}

// FromProfile transforms a raw profile and an optional job context into
// the annotated CVOptimized structure. The input is consumed read-only;
// the returned structure is freshly built.
func FromProfile(profile *types.RAGProfile, job *types.JobContext) (*types.CVOptimized, error) {
	if profile == nil {
		return nil, &Error{Message: "profile is required"}
	}

	totalMonths := seniority.TotalMonths(profile.Experiences)
	level := seniority.Calculate(totalMonths)
	rules := seniority.RulesFor(level)

	experiences := make([]types.ExperienceOptimized, 0, len(profile.Experiences))
	for _, exp := range profile.Experiences {
		ongoing := exp.Actuel || exp.DateFin == ""
		optimized := types.ExperienceOptimized{
			ID:              exp.ID,
			Poste:           exp.Poste,
			Entreprise:      exp.Entreprise,
			DateDebut:       exp.DateDebut,
			DateFin:         exp.DateFin,
			Actuel:          ongoing,
			Lieu:            exp.Lieu,
			DureeMois:       experienceMonths(exp.DateDebut, exp.DateFin, ongoing),
			DureeAffichee:   seniority.FormatDuration(exp.DateDebut, exp.DateFin, ongoing),
			PertinenceScore: scoreExperience(exp.DateFin, ongoing, exp.Technologies, exp.Poste, job),
			Display:         true,
			Technologies:    append([]string(nil), exp.Technologies...),
			Clients:         append([]string(nil), exp.ClientsReferences...),
			Realisations:    buildRealisations(exp.Realisations, job),
		}
		experiences = append(experiences, optimized)
	}

	cv := &types.CVOptimized{
		Profil:         profile.Profil,
		Experiences:    experiences,
		Formations:     append([]types.Formation(nil), profile.Formations...),
		Langues:        append([]types.Langue(nil), profile.Langues...),
		Certifications: append([]string(nil), profile.Certifications...),
		Seniority:      string(level),
		SecteurDetecte: DetectSector(profile),
	}
	if profile.Competences != nil {
		cv.Competences = types.Competences{
			Techniques: append([]string(nil), profile.Competences.Techniques...),
			SoftSkills: append([]string(nil), profile.Competences.SoftSkills...),
		}
	}
	cv.ClientsReferences = buildClientsReferences(profile)
	applyPitchRule(cv, rules, profile.Profil.Pitch)
	sortAndRank(cv.Experiences)
	return cv, nil
}

// FromCVData annotates an adapter-built CV document, keeping its enriched
// content but recomputing pertinence scores and display ordering. The
// profile is optional and only supplies ongoing flags and the pitch.
func FromCVData(cv *types.CVData, profile *types.RAGProfile, job *types.JobContext) (*types.CVOptimized, error) {
	if cv == nil {
		return nil, &Error{Message: "cv document is required"}
	}

	var sourceExperiences []types.RAGExperience
	pitch := cv.Profil.Pitch
	if profile != nil {
		sourceExperiences = profile.Experiences
		if pitch == "" {
			pitch = profile.Profil.Pitch
		}
	}
	totalMonths := seniority.TotalMonths(sourceExperiences)
	level := seniority.Calculate(totalMonths)
	rules := seniority.RulesFor(level)

	ragByID := make(map[string]types.RAGExperience, len(sourceExperiences))
	for _, exp := range sourceExperiences {
		ragByID[exp.ID] = exp
	}

	experiences := make([]types.ExperienceOptimized, 0, len(cv.Experiences))
	for _, exp := range cv.Experiences {
		ongoing := exp.DateFin == ""
		if rag, ok := ragByID[exp.ID]; ok && rag.Actuel {
			ongoing = true
		}
		optimized := types.ExperienceOptimized{
			ID:              exp.ID,
			Poste:           exp.Poste,
			Entreprise:      exp.Entreprise,
			DateDebut:       exp.DateDebut,
			DateFin:         exp.DateFin,
			Actuel:          ongoing,
			Lieu:            exp.Lieu,
			DureeMois:       experienceMonths(exp.DateDebut, exp.DateFin, ongoing),
			DureeAffichee:   seniority.FormatDuration(exp.DateDebut, exp.DateFin, ongoing),
			PertinenceScore: scoreExperience(exp.DateFin, ongoing, exp.Technologies, exp.Poste, job),
			Display:         true,
			Technologies:    append([]string(nil), exp.Technologies...),
			Clients:         append([]string(nil), exp.Clients...),
			Realisations:    buildRealisations(exp.Realisations, job),
		}
		experiences = append(experiences, optimized)
	}

	out := &types.CVOptimized{
		Profil:            cv.Profil,
		Experiences:       experiences,
		Competences:       cv.Competences,
		Formations:        append([]types.Formation(nil), cv.Formations...),
		Langues:           append([]types.Langue(nil), cv.Langues...),
		ClientsReferences: cv.ClientsReferences,
		Seniority:         string(level),
	}
	if profile != nil {
		out.Certifications = append([]string(nil), profile.Certifications...)
		out.SecteurDetecte = DetectSector(profile)
	}
	applyPitchRule(out, rules, pitch)
	sortAndRank(out.Experiences)
	return out, nil
}

// applyPitchRule forces elevator pitch presence per the seniority rules.
// When mandated but no pitch text exists, the block is represented with
// empty text rather than omitted, so its (zero) space is accounted for.
func applyPitchRule(cv *types.CVOptimized, rules seniority.Rules, pitch string) {
	if rules.ElevatorPitchRequired {
		cv.ElevatorPitch = &types.ElevatorPitch{Inclus: true, Texte: pitch}
		return
	}
	if pitch != "" {
		cv.ElevatorPitch = &types.ElevatorPitch{Inclus: false, Texte: pitch}
	}
}

// buildRealisations annotates realisation strings with quantifications,
// pertinence scores, and character counts
func buildRealisations(descriptions []string, job *types.JobContext) []types.RealisationOptimized {
	out := make([]types.RealisationOptimized, 0, len(descriptions))
	for _, description := range descriptions {
		quant := ExtractQuantification(description)
		out = append(out, types.RealisationOptimized{
			Description:     description,
			Quantification:  quant,
			PertinenceScore: scoreRealisation(description, quant, job),
			Display:         true,
			CharCount:       len([]rune(description)),
		})
	}
	return out
}

// scoreExperience computes the per-experience pertinence score:
// base 50, ongoing +15, time-decayed recency bonus, capped technology
// keyword bonus, capped title word overlap bonus, clamped to [0,100].
func scoreExperience(dateFin string, ongoing bool, technologies []string, poste string, job *types.JobContext) int {
	score := baseExperienceScore
	if ongoing {
		score += ongoingBonus
	} else if end, ok := seniority.ParseDate(dateFin); ok {
		years := time.Since(end).Hours() / (24 * 365.25)
		if years <= 2 {
			score += recentBonus
		} else if years <= 5 {
			score += midRecentBonus
		}
	}

	if job != nil {
		score += techKeywordScore(technologies, jobKeywords(job))
		score += titleOverlapScore(poste, job.Title)
	}

	return clampScore(score)
}

// scoreRealisation computes the per-realisation pertinence score from
// quantification presence and job keyword matches
func scoreRealisation(text string, quant *types.Quantification, job *types.JobContext) int {
	score := baseRealisationScore
	if quant != nil {
		score += quantifiedBonus
	}
	if job != nil {
		lower := strings.ToLower(text)
		bonus := 0
		for _, keyword := range jobKeywords(job) {
			if keyword != "" && strings.Contains(lower, keyword) {
				bonus += realKeywordBonus
			}
		}
		if bonus > realKeywordBonusCap {
			bonus = realKeywordBonusCap
		}
		score += bonus
	}
	return clampScore(score)
}

// jobKeywords merges the offer's keyword lists, lowercased
func jobKeywords(job *types.JobContext) []string {
	keywords := make([]string, 0, len(job.Keywords)+len(job.MissingKeywords))
	for _, keyword := range job.Keywords {
		keywords = append(keywords, strings.ToLower(keyword))
	}
	for _, keyword := range job.MissingKeywords {
		keywords = append(keywords, strings.ToLower(keyword))
	}
	return keywords
}

// techKeywordScore awards a capped bonus per matching technology keyword
func techKeywordScore(technologies, keywords []string) int {
	bonus := 0
	for _, tech := range technologies {
		techLower := strings.ToLower(tech)
		for _, keyword := range keywords {
			if keyword != "" && techLower == keyword {
				bonus += techKeywordBonus
				break
			}
		}
	}
	if bonus > techKeywordBonusCap {
		bonus = techKeywordBonusCap
	}
	return bonus
}

// titleOverlapScore awards a capped bonus per word shared between the
// job title and the position title
func titleOverlapScore(poste, jobTitle string) int {
	if poste == "" || jobTitle == "" {
		return 0
	}
	titleWords := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(jobTitle)) {
		if len(word) >= 3 && !titleStopWords[word] {
			titleWords[word] = true
		}
	}
	bonus := 0
	seen := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(poste)) {
		if titleWords[word] && !seen[word] {
			bonus += titleWordBonus
			seen[word] = true
		}
	}
	if bonus > titleWordBonusCap {
		bonus = titleWordBonusCap
	}
	return bonus
}

// experienceMonths computes the displayed duration of one experience
func experienceMonths(dateDebut, dateFin string, ongoing bool) int {
	fin := dateFin
	if ongoing {
		fin = ""
	}
	exp := []types.RAGExperience{{DateDebut: dateDebut, DateFin: fin, Actuel: ongoing}}
	return seniority.TotalMonths(exp)
}

// buildClientsReferences prefers the profile's explicit reference list and
// falls back to the union of per-experience client references
func buildClientsReferences(profile *types.RAGProfile) types.ClientsReferences {
	if profile.References != nil && len(profile.References.Clients) > 0 {
		return types.ClientsReferences{Clients: append([]string(nil), profile.References.Clients...)}
	}
	seen := make(map[string]bool)
	clients := make([]string, 0)
	for _, exp := range profile.Experiences {
		for _, client := range exp.ClientsReferences {
			if client != "" && !seen[client] {
				seen[client] = true
				clients = append(clients, client)
			}
		}
	}
	return types.ClientsReferences{Clients: clients}
}

// clampScore bounds a pertinence score to [0,100]
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
