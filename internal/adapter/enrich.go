package adapter

import (
	"github.com/careerkit/cvforge/internal/seniority"
	"github.com/careerkit/cvforge/internal/types"
)

// enrichFromProfile supplements the converted CV with authoritative
// profile data: dates, location, technologies, and client references per
// experience, plus formations and langues, which widgets never carry.
func enrichFromProfile(cv *types.CVData, profile *types.RAGProfile) {
	if profile == nil {
		return
	}

	ragByID := make(map[string]types.RAGExperience, len(profile.Experiences))
	for _, exp := range profile.Experiences {
		ragByID[exp.ID] = exp
	}

	for i := range cv.Experiences {
		exp := &cv.Experiences[i]
		rag, ok := ragByID[exp.ID]
		if !ok {
			continue
		}
		// Profile data is ground truth; widget text is not
		exp.DateDebut = rag.DateDebut
		exp.DateFin = rag.DateFin
		exp.Lieu = rag.Lieu
		exp.DureeAffichee = seniority.FormatDuration(rag.DateDebut, rag.DateFin, rag.Actuel)
		if exp.Poste == "" {
			exp.Poste = rag.Poste
		}
		if exp.Entreprise == "" {
			exp.Entreprise = rag.Entreprise
		}
		if len(rag.Technologies) > 0 {
			exp.Technologies = append([]string(nil), rag.Technologies...)
		}
		if len(rag.ClientsReferences) > 0 {
			exp.Clients = append([]string(nil), rag.ClientsReferences...)
		}
	}

	cv.ClientsReferences = buildClientsReferences(cv, profile)

	if len(profile.Formations) > 0 {
		cv.Formations = append([]types.Formation(nil), profile.Formations...)
	}
	if len(profile.Langues) > 0 {
		cv.Langues = append([]types.Langue(nil), profile.Langues...)
	}
}

// buildClientsReferences prefers the profile's explicit reference list;
// when that is empty or missing, the per-experience client references are
// unioned in encounter order without duplicates.
func buildClientsReferences(cv *types.CVData, profile *types.RAGProfile) types.ClientsReferences {
	if profile.References != nil && len(profile.References.Clients) > 0 {
		return types.ClientsReferences{Clients: append([]string(nil), profile.References.Clients...)}
	}
	seen := make(map[string]bool)
	clients := []string{}
	for _, exp := range cv.Experiences {
		for _, client := range exp.Clients {
			if client != "" && !seen[client] {
				seen[client] = true
				clients = append(clients, client)
			}
		}
	}
	return types.ClientsReferences{Clients: clients}
}

// buildProfil assembles the CV header from the envelope's profile summary,
// falling back to profile contact fields per missing value. The pitch
// additionally falls back to the highest-scored summary widget.
func buildProfil(envelope *types.WidgetEnvelope, profile *types.RAGProfile) types.Profil {
	var profil types.Profil
	if envelope.ProfilSummary != nil {
		profil = types.Profil{
			Nom:          envelope.ProfilSummary.Nom,
			Titre:        envelope.ProfilSummary.Titre,
			Email:        envelope.ProfilSummary.Email,
			Telephone:    envelope.ProfilSummary.Telephone,
			Localisation: envelope.ProfilSummary.Localisation,
			Pitch:        envelope.ProfilSummary.Pitch,
		}
	}
	if profil.Pitch == "" {
		profil.Pitch = bestSummaryText(envelope.Widgets)
	}
	if profile == nil {
		return profil
	}
	if profil.Nom == "" {
		profil.Nom = profile.Profil.Nom
	}
	if profil.Titre == "" {
		profil.Titre = profile.Profil.Titre
	}
	if profil.Email == "" {
		profil.Email = profile.Profil.Email
	}
	if profil.Telephone == "" {
		profil.Telephone = profile.Profil.Telephone
	}
	if profil.Localisation == "" {
		profil.Localisation = profile.Profil.Localisation
	}
	if profil.Pitch == "" {
		profil.Pitch = profile.Profil.Pitch
	}
	return profil
}

// bestSummaryText returns the text of the highest-scored summary widget
func bestSummaryText(widgets []types.Widget) string {
	best := ""
	bestScore := -1
	for _, widget := range widgets {
		if widget.Type == types.WidgetSummaryBlock && widget.RelevanceScore > bestScore {
			best = widget.Text
			bestScore = widget.RelevanceScore
		}
	}
	return best
}
