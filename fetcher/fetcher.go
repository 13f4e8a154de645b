// Package fetcher retrieves cadastral property-details pages, either through
// a shared headless browser (JavaScript-rendered layouts) or a plain HTTP
// GET (faster, but blind to script-injected content).
package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"cadastralscraper/extract"
)

// Fetcher abstracts how a property page is obtained.
type Fetcher interface {
	// Fetch retrieves and parses the details page for a geocode
	Fetch(ctx context.Context, geocode string) (*extract.Page, error)

	// Close releases any held resources (browser process, idle connections)
	Close() error
}

// FetchError wraps a network failure, a non-success status, or a navigation
// timeout while retrieving a page.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// LookupURL builds the property-details URL for a geocode against the portal
// base endpoint.
func LookupURL(baseURL, geocode string) string {
	return baseURL + url.QueryEscape(strings.TrimSpace(geocode))
}
