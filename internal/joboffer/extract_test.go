package joboffer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const financePostingHTML = `<html>
<head><title>Offre - Architecte Cloud</title></head>
<body>
<nav>Menu</nav>
<h1>Architecte Cloud Senior</h1>
<div class="job-description">
Notre banque recherche un architecte pour piloter la migration vers AWS.
Stack: kubernetes, terraform, postgresql. Méthode agile, plateforme de trading.
</div>
<footer>Mentions légales</footer>
</body></html>`

func TestExtract_KeywordsAndSector(t *testing.T) {
	job := Extract(financePostingHTML)
	require.NotNil(t, job)

	assert.Equal(t, "Architecte Cloud Senior", job.Title)
	assert.Equal(t, "finance", job.Sector)
	assert.Contains(t, job.Keywords, "aws")
	assert.Contains(t, job.Keywords, "kubernetes")
	assert.Contains(t, job.Keywords, "terraform")
	assert.Contains(t, job.Keywords, "postgresql")
	assert.Contains(t, job.Keywords, "agile")
}

func TestExtract_NoSectorHint(t *testing.T) {
	job := Extract(`<html><body><p>Recherche boulanger pour fournil artisanal</p></body></html>`)
	assert.Equal(t, "", job.Sector)
	assert.Empty(t, job.Keywords)
}

func TestExtract_TitleFallsBackToTitleTag(t *testing.T) {
	job := Extract(`<html><head><title>Développeur Go</title></head><body><p>python et docker</p></body></html>`)
	assert.Equal(t, "Développeur Go", job.Title)
}

func TestExtractText_RemovesNoise(t *testing.T) {
	text, err := extractText(financePostingHTML)
	require.NoError(t, err)

	assert.Contains(t, text, "migration vers AWS")
	assert.NotContains(t, text, "Menu")
	assert.NotContains(t, text, "Mentions légales")
}

func TestCleanWhitespace(t *testing.T) {
	assert.Equal(t, "un deux trois", cleanWhitespace("  un \n\n deux \t trois  "))
}

func TestShouldUseBrowser_ShortContent(t *testing.T) {
	assert.True(t, shouldUseBrowser(`<html><body><div id="root"></div></body></html>`))

	long := strings.Repeat("contenu significatif de la page ", 60)
	assert.False(t, shouldUseBrowser(`<html><body><p>`+long+`</p></body></html>`))
}
