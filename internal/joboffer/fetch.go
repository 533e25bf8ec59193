// Package joboffer fetches a job posting and extracts the job context
// used to bias pertinence scoring. An absent or unreachable offer is a
// supported input: the pipeline falls back to base heuristics.
package joboffer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the default HTTP request timeout
const DefaultTimeout = 30 * time.Second

// defaultUserAgent identifies fetches from this service
const defaultUserAgent = "Mozilla/5.0 (compatible; cvforge/1.0)"

// Error represents an error during job offer fetching
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job offer fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("job offer fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// FetchOptions configures the fetch behavior
type FetchOptions struct {
	Timeout    time.Duration
	UseBrowser bool
}

// FetchHTML retrieves the HTML of a job posting URL. Script-rendered
// pages that come back nearly empty are retried through the headless
// browser when UseBrowser is set.
func FetchHTML(ctx context.Context, urlStr string, opts *FetchOptions) (string, error) {
	if opts == nil {
		opts = &FetchOptions{}
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: opts.Timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	html := string(body)
	if opts.UseBrowser && shouldUseBrowser(html) {
		rendered, err := fetchWithBrowser(ctx, urlStr, opts.Timeout)
		if err != nil {
			// Keep the plain fetch result when rendering fails
			return html, nil
		}
		return rendered, nil
	}
	return html, nil
}

// extractText strips noise elements and returns the page's main text
func extractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .cookie-banner, .sidebar").Remove()

	selectors := []string{".job-description", "#job-description", "main", "article", ".content", "#content"}
	var content *goquery.Selection
	for _, selector := range selectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	return cleanWhitespace(content.Text()), nil
}

// pageTitle returns the posting title from h1 or the document title
func pageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// cleanWhitespace collapses runs of whitespace into single spaces
func cleanWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
