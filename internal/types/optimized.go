// Package types provides type definitions for structured data used throughout the cvforge system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// QuantificationType classifies a numeric claim extracted from a realisation
type QuantificationType string

// Quantification types recognized by the extractor
const (
	QuantBudget      QuantificationType = "budget"
	QuantVolume      QuantificationType = "volume"
	QuantEquipe      QuantificationType = "equipe"
	QuantPourcentage QuantificationType = "pourcentage"
	QuantDuree       QuantificationType = "duree"
)

// Quantification is a typed numeric claim extracted from realisation text
type Quantification struct {
	Type    QuantificationType `json:"type"`
	Valeur  float64            `json:"valeur"`
	Unite   string             `json:"unite,omitempty"`
	Display string             `json:"display"`
}

// RealisationOptimized is one achievement bullet with layout annotations
type RealisationOptimized struct {
	Description     string          `json:"description"`
	Quantification  *Quantification `json:"quantification,omitempty"`
	PertinenceScore int             `json:"pertinence_score"`
	Display         bool            `json:"display"`
	CharCount       int             `json:"char_count"`
}

// ExperienceOptimized is an annotated, pre-scored experience entry.
// PertinenceScore is computed, never user-editable; OrdreAffichage is
// recomputed after every sort.
type ExperienceOptimized struct {
	ID              string                 `json:"id,omitempty"`
	Poste           string                 `json:"poste"`
	Entreprise      string                 `json:"entreprise"`
	DateDebut       string                 `json:"date_debut,omitempty"`
	DateFin         string                 `json:"date_fin,omitempty"`
	Actuel          bool                   `json:"actuel,omitempty"`
	Lieu            string                 `json:"lieu,omitempty"`
	DureeMois       int                    `json:"duree_mois"`
	DureeAffichee   string                 `json:"duree_affichee,omitempty"`
	PertinenceScore int                    `json:"pertinence_score"`
	OrdreAffichage  int                    `json:"ordre_affichage"`
	Display         bool                   `json:"display"`
	Condense        bool                   `json:"condense"`
	Technologies    []string               `json:"technologies,omitempty"`
	Clients         []string               `json:"clients,omitempty"`
	Realisations    []RealisationOptimized `json:"realisations"`
}

// ElevatorPitch is the optional pitch block. Inclusion is forced by the
// seniority rules; when mandated but empty it is represented with empty
// text so the layout engine can account for its space honestly.
type ElevatorPitch struct {
	Inclus bool   `json:"inclus"`
	Texte  string `json:"texte,omitempty"`
}

// CVOptimized is the annotated CV structure the layout engine and
// compressor operate on. Each transformation stage takes ownership of a
// fresh copy and returns a new value; stages never share aliases.
type CVOptimized struct {
	Profil            Profil                `json:"profil"`
	ElevatorPitch     *ElevatorPitch        `json:"elevator_pitch,omitempty"`
	Experiences       []ExperienceOptimized `json:"experiences"`
	Competences       Competences           `json:"competences"`
	Formations        []Formation           `json:"formations"`
	Langues           []Langue              `json:"langues"`
	Certifications    []string              `json:"certifications,omitempty"`
	ClientsReferences ClientsReferences     `json:"clients_references"`
	Seniority         string                `json:"seniority,omitempty"`
	SecteurDetecte    string                `json:"secteur_detecte,omitempty"`
}

// Clone returns a deep copy of the structure. Compression levels are
// always applied to a clone of the uncompressed input, never in place.
func (cv *CVOptimized) Clone() *CVOptimized {
	if cv == nil {
		return nil
	}
	out := *cv
	if cv.ElevatorPitch != nil {
		pitch := *cv.ElevatorPitch
		out.ElevatorPitch = &pitch
	}
	out.Experiences = make([]ExperienceOptimized, len(cv.Experiences))
	for i, exp := range cv.Experiences {
		cloned := exp
		cloned.Technologies = append([]string(nil), exp.Technologies...)
		cloned.Clients = append([]string(nil), exp.Clients...)
		cloned.Realisations = make([]RealisationOptimized, len(exp.Realisations))
		for j, real := range exp.Realisations {
			clonedReal := real
			if real.Quantification != nil {
				quant := *real.Quantification
				clonedReal.Quantification = &quant
			}
			cloned.Realisations[j] = clonedReal
		}
		out.Experiences[i] = cloned
	}
	out.Competences.Techniques = append([]string(nil), cv.Competences.Techniques...)
	out.Competences.SoftSkills = append([]string(nil), cv.Competences.SoftSkills...)
	out.Formations = append([]Formation(nil), cv.Formations...)
	out.Langues = append([]Langue(nil), cv.Langues...)
	out.Certifications = append([]string(nil), cv.Certifications...)
	out.ClientsReferences.Clients = append([]string(nil), cv.ClientsReferences.Clients...)
	return &out
}
