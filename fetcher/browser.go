package fetcher

import (
	"context"
	"time"

	"cadastralscraper/browser"
	"cadastralscraper/extract"
)

// BrowserFetcher renders pages through the shared headless Chrome process,
// one fresh tab per request. Required for layouts where the address is
// injected by client-side script.
type BrowserFetcher struct {
	browser *browser.Browser
	baseURL string
	timeout time.Duration
}

// NewBrowserFetcher creates a fetcher over the given shared browser.
func NewBrowserFetcher(b *browser.Browser, baseURL string, timeout time.Duration) *BrowserFetcher {
	return &BrowserFetcher{
		browser: b,
		baseURL: baseURL,
		timeout: timeout,
	}
}

// Fetch renders the geocode's details page in an isolated tab. The request
// context is not propagated into the browser: navigation is bounded by the
// fetcher's own timeout and a single attempt.
func (f *BrowserFetcher) Fetch(_ context.Context, geocode string) (*extract.Page, error) {
	target := LookupURL(f.baseURL, geocode)

	htmlContent, err := f.browser.FetchHTML(target, f.timeout)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}

	return extract.NewPage(geocode, target, htmlContent)
}

// Close shuts down the shared browser process.
func (f *BrowserFetcher) Close() error {
	f.browser.Shutdown()
	return nil
}
