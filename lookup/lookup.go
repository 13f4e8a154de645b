// Package lookup orchestrates a property-address lookup: fetch the portal
// page for a geocode, run the extraction strategy chain, and report the
// outcome. It also carries the HTTP handlers for the lookup API.
package lookup

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"cadastralscraper/extract"
	"cadastralscraper/fetcher"
)

var (
	// ErrBadInput means the geocode was missing or empty after trimming.
	ErrBadInput = errors.New("geocode is required")

	// ErrNotFound means the page was fetched but no strategy produced a
	// validated address.
	ErrNotFound = errors.New("address not found for the provided geocode")
)

// Result is the outcome of one lookup. Success implies Address is set and
// validated; failure implies Error is set and Address absent.
type Result struct {
	Success bool   `json:"success"`
	Geocode string `json:"geocode"`
	Address string `json:"address,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Service runs lookups against a page fetcher and a strategy chain.
type Service struct {
	fetcher fetcher.Fetcher
	chain   *extract.Chain
}

// NewService creates a lookup service.
func NewService(f fetcher.Fetcher, chain *extract.Chain) *Service {
	return &Service{
		fetcher: f,
		chain:   chain,
	}
}

// Lookup resolves one geocode to its property address. The page is fetched
// exactly once per call; identical geocodes repeat the full cycle. The
// returned error classifies the failure (ErrBadInput, ErrNotFound, or a
// *fetcher.FetchError) and is also reflected in the Result.
func (s *Service) Lookup(ctx context.Context, geocode string) (Result, error) {
	geocode = strings.TrimSpace(geocode)
	if geocode == "" {
		return failure(geocode, ErrBadInput), ErrBadInput
	}

	start := time.Now()

	page, err := s.fetcher.Fetch(ctx, geocode)
	if err != nil {
		observeLookup("fetch_error", time.Since(start))
		slog.Warn("page fetch failed", slog.String("geocode", geocode), slog.String("error", err.Error()))
		return failure(geocode, err), err
	}

	address, strategy, ok := s.chain.Run(page)
	if !ok {
		observeLookup("not_found", time.Since(start))
		slog.Info("no address extracted", slog.String("geocode", geocode))
		return failure(geocode, ErrNotFound), ErrNotFound
	}

	observeLookup("success", time.Since(start))
	slog.Info("address extracted",
		slog.String("geocode", geocode),
		slog.String("strategy", strategy),
		slog.Duration("elapsed", time.Since(start)),
	)

	return Result{Success: true, Geocode: geocode, Address: address}, nil
}

func failure(geocode string, err error) Result {
	return Result{Geocode: geocode, Error: err.Error()}
}
