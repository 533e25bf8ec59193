package joboffer

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// minContentLength is the minimum extracted text length to consider a
// plain HTTP fetch successful. Shorter content usually means a
// script-rendered page.
const minContentLength = 500

// shouldUseBrowser reports whether the fetched HTML looks like an
// unrendered single-page application
func shouldUseBrowser(html string) bool {
	text, err := extractText(html)
	if err != nil {
		return true
	}
	return len(strings.TrimSpace(text)) < minContentLength
}

// fetchWithBrowser renders the page in a headless browser and returns
// the rendered HTML. Requires Chrome/Chromium on the host.
func fetchWithBrowser(ctx context.Context, url string, timeout time.Duration) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Give client-side rendering time to fill the page
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}
	return html, nil
}
