package adapter

import (
	"sort"
	"strings"

	"github.com/careerkit/cvforge/internal/types"
)

// scoredBullet keeps a bullet's widget score alongside its text so
// sorting and filtering stay tied to the original widget
type scoredBullet struct {
	text  string
	score int
	order int // original widget position, for stable ties
}

// experienceGroup accumulates the widgets referencing one rag experience
type experienceGroup struct {
	id         string
	poste      string
	entreprise string
	hasHeader  bool
	header     int // header widget relevance score
	bullets    []scoredBullet
	firstSeen  int // first widget position referencing this group
}

// score is the group's sort key: the header score or the maximum bullet
// score, whichever is higher
func (g *experienceGroup) score() int {
	best := 0
	if g.hasHeader {
		best = g.header
	}
	for _, bullet := range g.bullets {
		if bullet.score > best {
			best = bullet.score
		}
	}
	return best
}

// buildGroups partitions experience widgets into one group per distinct
// rag_experience_id. Headers supply poste/entreprise; bullets supply
// realisations. Bullets whose id resolves to no header are dropped
// silently: partial LLM output is expected occasionally.
func buildGroups(widgets []types.Widget) []*experienceGroup {
	byID := make(map[string]*experienceGroup)
	ordered := make([]*experienceGroup, 0)

	lookup := func(id string, position int) *experienceGroup {
		group, ok := byID[id]
		if !ok {
			group = &experienceGroup{id: id, firstSeen: position}
			byID[id] = group
			ordered = append(ordered, group)
		}
		return group
	}

	for position, widget := range widgets {
		switch widget.Type {
		case types.WidgetExperienceHeader:
			id := widgetExperienceID(widget)
			if id == "" {
				// Headers without a source id still form a group,
				// keyed by the widget itself
				id = widget.ID
			}
			group := lookup(id, position)
			group.hasHeader = true
			group.header = widget.RelevanceScore
			poste, entreprise := parseHeaderText(widget.Text)
			if group.poste == "" {
				group.poste = poste
			}
			if group.entreprise == "" {
				group.entreprise = entreprise
			}
		case types.WidgetExperienceBullet:
			id := widgetExperienceID(widget)
			if id == "" {
				continue
			}
			group := lookup(id, position)
			group.bullets = append(group.bullets, scoredBullet{
				text:  widget.Text,
				score: widget.RelevanceScore,
				order: position,
			})
		}
	}

	// Groups created only by bullets have no header to anchor them;
	// their bullets are unresolvable references and get dropped
	withHeaders := make([]*experienceGroup, 0, len(ordered))
	for _, group := range ordered {
		if group.hasHeader {
			withHeaders = append(withHeaders, group)
		}
	}
	return withHeaders
}

// widgetExperienceID extracts the rag experience link from a widget
func widgetExperienceID(widget types.Widget) string {
	if widget.Sources == nil {
		return ""
	}
	return widget.Sources.RAGExperienceID
}

// headerSeparators are tried in order when splitting "Role - Company" text
var headerSeparators = []string{" - ", " – ", " — ", " | "}

// parseHeaderText splits header text following the "Role - Company"
// convention. Without a separator the whole text is the role.
func parseHeaderText(text string) (poste, entreprise string) {
	text = strings.TrimSpace(text)
	for _, sep := range headerSeparators {
		if idx := strings.Index(text, sep); idx > 0 {
			return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+len(sep):])
		}
	}
	return text, ""
}

// filterBullets removes bullets scored below minScore, preserving order
func filterBullets(bullets []scoredBullet, minScore int) []scoredBullet {
	if minScore <= 0 {
		return bullets
	}
	kept := make([]scoredBullet, 0, len(bullets))
	for _, bullet := range bullets {
		if bullet.score >= minScore {
			kept = append(kept, bullet)
		}
	}
	return kept
}

// sortGroups orders groups by descending score. The sort is stable so
// equal-score groups preserve their original relative order.
func sortGroups(groups []*experienceGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].score() > groups[j].score()
	})
}

// sortBullets orders bullets by descending score, stable on original
// widget order
func sortBullets(bullets []scoredBullet) {
	sort.SliceStable(bullets, func(i, j int) bool {
		return bullets[i].score > bullets[j].score
	})
}
