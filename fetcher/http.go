package fetcher

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"cadastralscraper/extract"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

const httpUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// HTTPFetcher issues a single GET with realistic browser headers and parses
// the returned HTML without executing scripts. Pages whose address is
// injected client-side come back without it.
type HTTPFetcher struct {
	client  *http.Client
	baseURL string
}

// NewHTTPFetcher creates a plain-HTTP fetcher against the given portal base
// endpoint.
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
}

// Fetch performs one GET for the geocode's details page. No retries.
func (f *HTTPFetcher) Fetch(ctx context.Context, geocode string) (*extract.Page, error) {
	target := LookupURL(f.baseURL, geocode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}

	req.Header.Set("User-Agent", httpUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br, zstd")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: target, Err: fmt.Errorf("received non-200 status code: %d", resp.StatusCode)}
	}

	// Setting Accept-Encoding manually disables the transport's automatic
	// decompression, so decode the body ourselves.
	var reader io.Reader
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, &FetchError{URL: target, Err: fmt.Errorf("failed to create gzip reader: %w", err)}
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		fl := flate.NewReader(resp.Body)
		defer fl.Close()
		reader = fl
	case "br":
		reader = brotli.NewReader(resp.Body)
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, &FetchError{URL: target, Err: fmt.Errorf("failed to create zstd reader: %w", err)}
		}
		defer zr.Close()
		reader = zr
	default:
		reader = resp.Body
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &FetchError{URL: target, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return extract.NewPage(geocode, target, string(body))
}

// Close releases idle connections.
func (f *HTTPFetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
