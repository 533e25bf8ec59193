package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCVOptimized_Clone_DeepCopies(t *testing.T) {
	original := &CVOptimized{
		Profil: Profil{Nom: "Claire Dupont"},
		Experiences: []ExperienceOptimized{
			{
				ID:           "exp-1",
				Display:      true,
				Technologies: []string{"Go"},
				Realisations: []RealisationOptimized{
					{Description: "texte", Display: true,
						Quantification: &Quantification{Type: QuantBudget, Valeur: 2}},
				},
			},
		},
		Competences:    Competences{Techniques: []string{"Go"}},
		Langues:        []Langue{{Langue: "Anglais"}},
		Certifications: []string{"AWS"},
		ElevatorPitch:  &ElevatorPitch{Inclus: true, Texte: "pitch"},
	}

	clone := original.Clone()
	require.NotSame(t, original, clone)

	clone.Experiences[0].Display = false
	clone.Experiences[0].Realisations[0].Description = "modifié"
	clone.Experiences[0].Realisations[0].Quantification.Valeur = 99
	clone.Experiences[0].Technologies[0] = "Rust"
	clone.Competences.Techniques[0] = "Rust"
	clone.Langues[0].Langue = "Espagnol"
	clone.Certifications[0] = "GCP"
	clone.ElevatorPitch.Texte = "autre"

	assert.True(t, original.Experiences[0].Display)
	assert.Equal(t, "texte", original.Experiences[0].Realisations[0].Description)
	assert.Equal(t, 2.0, original.Experiences[0].Realisations[0].Quantification.Valeur)
	assert.Equal(t, "Go", original.Experiences[0].Technologies[0])
	assert.Equal(t, "Go", original.Competences.Techniques[0])
	assert.Equal(t, "Anglais", original.Langues[0].Langue)
	assert.Equal(t, "AWS", original.Certifications[0])
	assert.Equal(t, "pitch", original.ElevatorPitch.Texte)
}

func TestCVOptimized_Clone_Nil(t *testing.T) {
	var cv *CVOptimized
	assert.Nil(t, cv.Clone())
}
