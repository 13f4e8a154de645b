package fetcher

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureHTML = `<html><body>
	<div>Property Address</div>
	<div>2324 REHBERG LN BILLINGS, MT 59102</div>
</body></html>`

func TestLookupURL(t *testing.T) {
	base := "https://svc.example.gov/cadastral/?page=PropertyDetails&geocode="

	assert.Equal(t, base+"03-1032-34-1-08-10-0000", LookupURL(base, "03-1032-34-1-08-10-0000"))
	assert.Equal(t, base+"03-1032", LookupURL(base, "  03-1032  "))
}

func TestHTTPFetcherFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "03-1032-34-1-08-10-0000", r.URL.Query().Get("geocode"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		w.Write([]byte(fixtureHTML))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL + "/?page=PropertyDetails&geocode=")
	defer f.Close()

	page, err := f.Fetch(context.Background(), "03-1032-34-1-08-10-0000")
	require.NoError(t, err)
	assert.Equal(t, "03-1032-34-1-08-10-0000", page.Geocode)
	assert.Contains(t, page.Text, "2324 REHBERG LN BILLINGS, MT 59102")
}

func TestHTTPFetcherDecodesGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept-Encoding"), "gzip")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte(fixtureHTML))
		gz.Close()
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL + "/?geocode=")
	defer f.Close()

	page, err := f.Fetch(context.Background(), "03-1032-34-1-08-10-0000")
	require.NoError(t, err)
	assert.Contains(t, page.Text, "2324 REHBERG LN BILLINGS, MT 59102")
}

func TestHTTPFetcherNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL + "/?geocode=")
	defer f.Close()

	_, err := f.Fetch(context.Background(), "03-1032-34-1-08-10-0000")
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Error(), "502")
}

func TestHTTPFetcherNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	f := NewHTTPFetcher(srv.URL + "/?geocode=")
	defer f.Close()

	_, err := f.Fetch(context.Background(), "03-1032-34-1-08-10-0000")
	var fetchErr *FetchError
	assert.ErrorAs(t, err, &fetchErr)
}
