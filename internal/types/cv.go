// Package types provides type definitions for structured data used throughout the cvforge system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Profil holds the identity fields displayed in the CV header
type Profil struct {
	Nom          string `json:"nom,omitempty"`
	Titre        string `json:"titre,omitempty"`
	Email        string `json:"email,omitempty"`
	Telephone    string `json:"telephone,omitempty"`
	Localisation string `json:"localisation,omitempty"`
	Pitch        string `json:"pitch,omitempty"`
}

// Experience is one work experience entry in the final CV document
type Experience struct {
	ID             string   `json:"id,omitempty"`
	Poste          string   `json:"poste"`
	Entreprise     string   `json:"entreprise"`
	DateDebut      string   `json:"date_debut,omitempty"`
	DateFin        string   `json:"date_fin,omitempty"`
	Lieu           string   `json:"lieu,omitempty"`
	DureeAffichee  string   `json:"duree_affichee,omitempty"`
	Realisations   []string `json:"realisations"`
	Technologies   []string `json:"technologies,omitempty"`
	Clients        []string `json:"clients,omitempty"`
	RelevanceScore int      `json:"relevance_score,omitempty"`
}

// Competences groups the skills section of the CV
type Competences struct {
	Techniques []string `json:"techniques"`
	SoftSkills []string `json:"soft_skills"`
}

// Formation is one education entry
type Formation struct {
	Diplome       string `json:"diplome"`
	Etablissement string `json:"etablissement,omitempty"`
	Annee         string `json:"annee,omitempty"`
}

// Langue is one language entry with proficiency level
type Langue struct {
	Langue string `json:"langue"`
	Niveau string `json:"niveau,omitempty"`
}

// ClientsReferences is the top-level client reference block
type ClientsReferences struct {
	Clients []string `json:"clients"`
}

// UnitStats reports space-unit consumption for a fitted CV
type UnitStats struct {
	TotalUnits     float64 `json:"total_units"`
	BudgetUnits    float64 `json:"budget_units"`
	RemainingUnits float64 `json:"remaining_units"`
	UsagePercent   float64 `json:"usage_percent"`
}

// LossReport records what each compression stage removed from a CV.
// The three buckets track realisation drops, bullet-cap drops, and whole
// experience drops separately; template omissions list sections hidden
// because the deepest levels exclude them.
type LossReport struct {
	RemovedRealisations   map[string]int `json:"removed_realisations"`
	RemovedByCap          map[string]int `json:"removed_by_cap"`
	RemovedExperiences    []string       `json:"removed_experiences"`
	ShortenedRealisations int            `json:"shortened_realisations"`
	TemplateOmissions     []string       `json:"template_omissions"`
}

// CVMetadata records provenance and fit statistics for a generated CV.
// It must be self-describing enough that a caller never re-derives fit stats.
type CVMetadata struct {
	GeneratorType           string      `json:"generator_type,omitempty"`
	GeneratorVersion        string      `json:"generator_version,omitempty"`
	TemplateUsed            string      `json:"template_used"`
	Seniority               string      `json:"seniority,omitempty"`
	CompressionLevelApplied int         `json:"compression_level_applied"`
	Dense                   bool        `json:"dense"`
	UnitStats               *UnitStats  `json:"unit_stats,omitempty"`
	LossSummary             *LossReport `json:"loss_summary,omitempty"`
	WidgetsTotal            int         `json:"widgets_total,omitempty"`
	WidgetsFiltered         int         `json:"widgets_filtered,omitempty"`
	Warnings                []string    `json:"warnings,omitempty"`
}

// CVData is the canonical CV document exchanged with storage and rendering.
// It is owned exclusively by the pipeline during generation and becomes
// immutable persisted state once saved.
type CVData struct {
	Profil            Profil            `json:"profil"`
	Experiences       []Experience      `json:"experiences"`
	Competences       Competences       `json:"competences"`
	Formations        []Formation       `json:"formations"`
	Langues           []Langue          `json:"langues"`
	ClientsReferences ClientsReferences `json:"clients_references"`
	CVMetadata        *CVMetadata       `json:"cv_metadata,omitempty"`
}
