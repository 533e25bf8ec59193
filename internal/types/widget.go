// Package types provides type definitions for structured data used throughout the cvforge system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// WidgetType identifies the kind of CV fact a widget carries
type WidgetType string

// Widget types emitted by the generator
const (
	WidgetSummaryBlock     WidgetType = "summary_block"
	WidgetExperienceHeader WidgetType = "experience_header"
	WidgetExperienceBullet WidgetType = "experience_bullet"
	WidgetSkillItem        WidgetType = "skill_item"
	WidgetEducationItem    WidgetType = "education_item"
	WidgetLanguageItem     WidgetType = "language_item"
)

// WidgetSources links a widget back to the source profile record it was derived from
type WidgetSources struct {
	RAGExperienceID string `json:"rag_experience_id,omitempty"`
}

// Widget is an atomic scored content unit produced by the LLM for one CV fact.
// Widgets are never mutated after creation; rescoring produces a new list.
type Widget struct {
	ID             string         `json:"id"`
	Type           WidgetType     `json:"type"`
	Section        string         `json:"section,omitempty"`
	Text           string         `json:"text"`
	RelevanceScore int            `json:"relevance_score"`
	Sources        *WidgetSources `json:"sources,omitempty"`
}

// ProfilSummary carries the identity fields the generator produced for the CV header
type ProfilSummary struct {
	Nom          string `json:"nom,omitempty"`
	Titre        string `json:"titre,omitempty"`
	Email        string `json:"email,omitempty"`
	Telephone    string `json:"telephone,omitempty"`
	Localisation string `json:"localisation,omitempty"`
	Pitch        string `json:"pitch,omitempty"`
}

// GenerationMeta records provenance for a widget envelope
type GenerationMeta struct {
	GeneratorType    string `json:"generator_type,omitempty"`
	GeneratorVersion string `json:"generator_version,omitempty"`
	Model            string `json:"model,omitempty"`
}

// WidgetEnvelope is the validated container of widgets plus generation metadata.
// An envelope with zero widgets is invalid and rejected at the boundary.
type WidgetEnvelope struct {
	Widgets       []Widget        `json:"widgets"`
	ProfilSummary *ProfilSummary  `json:"profil_summary,omitempty"`
	JobContext    *JobContext     `json:"job_context,omitempty"`
	Meta          *GenerationMeta `json:"meta,omitempty"`
}
