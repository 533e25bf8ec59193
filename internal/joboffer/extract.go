package joboffer

import (
	"context"
	"strings"

	"github.com/careerkit/cvforge/internal/types"
)

// techKeywords is the vocabulary matched against posting text to build
// the job's keyword list. A data table so it can be tuned independently
// of control flow.
var techKeywords = []string{
	"java", "python", "go", "golang", "typescript", "javascript", "react",
	"angular", "vue", "node", "kubernetes", "docker", "terraform", "aws",
	"azure", "gcp", "postgresql", "mysql", "mongodb", "kafka", "redis",
	"spark", "airflow", "ci/cd", "devops", "agile", "scrum", "sql",
	"microservices", "api", "rest", "graphql", "machine learning", "data",
}

// sectorHints maps posting vocabulary to a sector label, in priority order
var sectorHints = []struct {
	sector   string
	keywords []string
}{
	{"finance", []string{"banque", "bank", "finance", "assurance", "trading"}},
	{"pharma", []string{"pharma", "santé", "healthcare", "clinique"}},
	{"conseil", []string{"conseil", "consulting", "cabinet"}},
	{"luxe", []string{"luxe", "luxury", "mode"}},
	{"industrie", []string{"industrie", "manufacturing", "usine", "automotive"}},
	{"tech", []string{"logiciel", "software", "saas", "startup", "cloud"}},
}

// Extract parses raw posting HTML into the job context consumed by the
// scoring heuristics
func Extract(html string) *types.JobContext {
	text, err := extractText(html)
	if err != nil {
		text = html
	}
	lower := strings.ToLower(text)

	keywords := make([]string, 0)
	for _, keyword := range techKeywords {
		if strings.Contains(lower, keyword) {
			keywords = append(keywords, keyword)
		}
	}

	sector := ""
	for _, hint := range sectorHints {
		for _, keyword := range hint.keywords {
			if strings.Contains(lower, keyword) {
				sector = hint.sector
				break
			}
		}
		if sector != "" {
			break
		}
	}

	return &types.JobContext{
		Title:    pageTitle(html),
		Sector:   sector,
		Keywords: keywords,
	}
}

// FromURL fetches a posting and extracts its job context in one call
func FromURL(ctx context.Context, url string, opts *FetchOptions) (*types.JobContext, error) {
	html, err := FetchHTML(ctx, url, opts)
	if err != nil {
		return nil, err
	}
	return Extract(html), nil
}
