// Package types provides type definitions for structured data used throughout the cvforge system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RAGExperience is one work experience record from the source profile.
// Profile data is ground truth: it overrides widget text during enrichment.
type RAGExperience struct {
	ID                string   `json:"id"`
	Poste             string   `json:"poste"`
	Entreprise        string   `json:"entreprise"`
	DateDebut         string   `json:"date_debut,omitempty"`
	DateFin           string   `json:"date_fin,omitempty"`
	Actuel            bool     `json:"actuel,omitempty"`
	Lieu              string   `json:"lieu,omitempty"`
	Description       string   `json:"description,omitempty"`
	Realisations      []string `json:"realisations,omitempty"`
	Technologies      []string `json:"technologies,omitempty"`
	ClientsReferences []string `json:"clients_references,omitempty"`
}

// TaciteSkill is a latent skill inferred during profile enrichment
type TaciteSkill struct {
	Nom    string `json:"nom"`
	Source string `json:"source,omitempty"`
}

// ContexteEnrichi holds enrichment data attached to a profile by the
// extraction subsystem. Consumed as a fallback when widgets carry no skills.
type ContexteEnrichi struct {
	CompetencesTacites []TaciteSkill `json:"competences_tacites,omitempty"`
	SoftSkillsDeduites []TaciteSkill `json:"soft_skills_deduites,omitempty"`
}

// References holds explicit client references declared on the profile
type References struct {
	Clients []string `json:"clients,omitempty"`
}

// RAGProfile is the raw profile record handed in by the persistence layer.
// The pipeline consumes it read-only.
type RAGProfile struct {
	Profil          Profil           `json:"profil"`
	Experiences     []RAGExperience  `json:"experiences"`
	Competences     *Competences     `json:"competences,omitempty"`
	Formations      []Formation      `json:"formations,omitempty"`
	Langues         []Langue         `json:"langues,omitempty"`
	Certifications  []string         `json:"certifications,omitempty"`
	ContexteEnrichi *ContexteEnrichi `json:"contexte_enrichi,omitempty"`
	References      *References      `json:"references,omitempty"`
}

// JobContext is the parsed job offer used to bias pertinence scoring.
// Absence is a valid, fully supported input.
type JobContext struct {
	Title           string   `json:"title,omitempty"`
	Sector          string   `json:"sector,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	MissingKeywords []string `json:"missing_keywords,omitempty"`
}
