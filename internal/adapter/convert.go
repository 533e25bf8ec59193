package adapter

import (
	"github.com/go-playground/validator/v10"

	"github.com/careerkit/cvforge/internal/types"
)

// Options configures widget-to-CV conversion. All fields are optional:
// zero values mean "no filter" and "no cap".
type Options struct {
	MinScore                int               `validate:"gte=0"`
	MaxExperiences          int               `validate:"gte=0"`
	MaxBulletsPerExperience int               `validate:"gte=0"`
	RAGProfile              *types.RAGProfile `validate:"-"`
}

var validate = validator.New()

// ConvertAndSort converts a validated widget envelope into a structured
// CV document: widgets are grouped per source experience, filtered by
// score, sorted descending (stable, so equal inputs produce identical
// ordering), truncated to the caller's caps, and enriched from the source
// profile, which is ground truth over widget text.
//
// An envelope that should have been rejected upstream (nil, zero widgets,
// negative scores) is an explicit hard failure here: it signals a
// generation failure, not content sparsity.
func ConvertAndSort(envelope *types.WidgetEnvelope, opts *Options) (*types.CVData, error) {
	if envelope == nil || len(envelope.Widgets) == 0 {
		return nil, &Error{Message: "envelope has no widgets; it must pass validation before conversion"}
	}
	for _, widget := range envelope.Widgets {
		if widget.RelevanceScore < 0 {
			return nil, &Error{Message: "envelope contains a negative relevance score; it must pass validation before conversion"}
		}
	}
	if opts == nil {
		opts = &Options{}
	}
	if err := validate.Struct(opts); err != nil {
		return nil, &Error{Message: "invalid conversion options", Cause: err}
	}

	groups := buildGroups(envelope.Widgets)

	// Filter bullets below the score floor, then drop emptied groups
	kept := make([]*experienceGroup, 0, len(groups))
	filteredWidgets := 0
	for _, group := range groups {
		before := len(group.bullets)
		group.bullets = filterBullets(group.bullets, opts.MinScore)
		filteredWidgets += before - len(group.bullets)
		if len(group.bullets) > 0 {
			kept = append(kept, group)
		}
	}

	sortGroups(kept)
	if opts.MaxExperiences > 0 && len(kept) > opts.MaxExperiences {
		for _, dropped := range kept[opts.MaxExperiences:] {
			filteredWidgets += len(dropped.bullets)
		}
		kept = kept[:opts.MaxExperiences]
	}

	experiences := make([]types.Experience, 0, len(kept))
	for _, group := range kept {
		sortBullets(group.bullets)
		bullets := group.bullets
		if opts.MaxBulletsPerExperience > 0 && len(bullets) > opts.MaxBulletsPerExperience {
			filteredWidgets += len(bullets) - opts.MaxBulletsPerExperience
			bullets = bullets[:opts.MaxBulletsPerExperience]
		}
		realisations := make([]string, 0, len(bullets))
		for _, bullet := range bullets {
			realisations = append(realisations, bullet.text)
		}
		experiences = append(experiences, types.Experience{
			ID:             group.id,
			Poste:          group.poste,
			Entreprise:     group.entreprise,
			Realisations:   realisations,
			RelevanceScore: group.score(),
		})
	}

	cv := &types.CVData{
		Experiences:       experiences,
		Competences:       buildCompetences(envelope.Widgets, opts.RAGProfile),
		Formations:        []types.Formation{},
		Langues:           []types.Langue{},
		ClientsReferences: types.ClientsReferences{Clients: []string{}},
	}

	enrichFromProfile(cv, opts.RAGProfile)
	cv.Profil = buildProfil(envelope, opts.RAGProfile)
	attachMetadata(cv, envelope, filteredWidgets)

	return cv, nil
}

// attachMetadata records generation provenance and widget accounting
func attachMetadata(cv *types.CVData, envelope *types.WidgetEnvelope, filtered int) {
	meta := &types.CVMetadata{
		WidgetsTotal:    len(envelope.Widgets),
		WidgetsFiltered: filtered,
	}
	if envelope.Meta != nil {
		meta.GeneratorType = envelope.Meta.GeneratorType
		meta.GeneratorVersion = envelope.Meta.GeneratorVersion
	}
	cv.CVMetadata = meta
}
