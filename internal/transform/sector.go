package transform

import (
	"strings"

	"github.com/careerkit/cvforge/internal/types"
)

// SectorDefault is returned when no sector keyword matches
const SectorDefault = "autre"

// sectorEntry pairs a sector name with its keyword list.
// The table is an ordered slice, not a map: equal keyword counts resolve
// to the first-declared sector, keeping detection deterministic.
type sectorEntry struct {
	name     string
	keywords []string
}

var sectorTable = []sectorEntry{
	{"finance", []string{"banque", "bancaire", "finance", "assurance", "trading", "crédit", "risque", "actifs", "marchés"}},
	{"tech", []string{"logiciel", "cloud", "saas", "digital", "développement", "data", "devops", "api", "agile"}},
	{"pharma", []string{"pharmaceutique", "pharma", "santé", "clinique", "laboratoire", "médicament", "biotech"}},
	{"conseil", []string{"conseil", "consulting", "cabinet", "mission", "transformation", "audit"}},
	{"luxe", []string{"luxe", "mode", "cosmétique", "maison", "boutique", "horlogerie"}},
	{"industrie", []string{"industrie", "industriel", "usine", "production", "automobile", "énergie", "maintenance"}},
}

// DetectSector runs a keyword-frequency vote over the serialized profile
// text and returns the winning sector, or "autre" when nothing matches.
func DetectSector(profile *types.RAGProfile) string {
	if profile == nil {
		return SectorDefault
	}
	text := strings.ToLower(serializeProfile(profile))

	best := SectorDefault
	bestCount := 0
	for _, entry := range sectorTable {
		count := 0
		for _, keyword := range entry.keywords {
			count += strings.Count(text, keyword)
		}
		// Strict comparison: ties keep the earlier entry
		if count > bestCount {
			best = entry.name
			bestCount = count
		}
	}
	return best
}

// serializeProfile flattens the profile fields the vote runs over
func serializeProfile(profile *types.RAGProfile) string {
	var sb strings.Builder
	sb.WriteString(profile.Profil.Titre)
	sb.WriteString(" ")
	sb.WriteString(profile.Profil.Pitch)
	for _, exp := range profile.Experiences {
		sb.WriteString(" ")
		sb.WriteString(exp.Poste)
		sb.WriteString(" ")
		sb.WriteString(exp.Entreprise)
		sb.WriteString(" ")
		sb.WriteString(exp.Description)
		for _, real := range exp.Realisations {
			sb.WriteString(" ")
			sb.WriteString(real)
		}
		for _, tech := range exp.Technologies {
			sb.WriteString(" ")
			sb.WriteString(tech)
		}
	}
	return sb.String()
}
