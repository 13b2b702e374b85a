// Package region maps coordinates to the dataset provider's region codes.
//
// Resolution runs an ordered list of strategies: the online path (reverse
// geocode, then catalog name matching) first, the offline
// nearest-capital table last. The offline path cannot fail, so Resolve
// always yields a code as long as the table is populated.
package region

import (
	"context"
	"log/slog"

	"shelternav/pkg/geo"
	"shelternav/pkg/request"
)

// Code is an opaque key into the shelter dataset provider's catalog.
type Code string

// Resolver resolves coordinates to region codes.
type Resolver struct {
	client      *request.Client
	geocoderURL string
	catalogURL  string
	fallback    []FallbackEntry
	logger      *slog.Logger
}

// strategy is one resolution attempt. Failure falls through to the next.
type strategy struct {
	name string
	run  func(ctx context.Context, pt geo.Point) (Code, error)
}

// NewResolver creates a Resolver using the built-in offline table.
func NewResolver(client *request.Client, geocoderURL, catalogURL string) *Resolver {
	return &Resolver{
		client:      client,
		geocoderURL: geocoderURL,
		catalogURL:  catalogURL,
		fallback:    prefectureCapitals,
		logger:      slog.With("component", "region_resolver"),
	}
}

// Resolve maps pt to a region code, trying each strategy in order.
// The terminal error is only reachable when the fallback table is empty.
func (r *Resolver) Resolve(ctx context.Context, pt geo.Point) (Code, error) {
	strategies := []strategy{
		{name: "online", run: r.resolveOnline},
		{name: "offline", run: r.resolveOffline},
	}

	var lastErr error
	for _, s := range strategies {
		code, err := s.run(ctx, pt)
		if err == nil {
			r.logger.Info("Region resolved", "strategy", s.name, "code", code)
			return code, nil
		}
		r.logger.Warn("Resolution strategy failed", "strategy", s.name, "error", err)
		lastErr = err
	}
	return "", lastErr
}

// resolveOnline reverse-geocodes pt and matches the names against the
// catalog. Any failure (network, parse, incomplete address, no match)
// falls through to the offline strategy.
func (r *Resolver) resolveOnline(ctx context.Context, pt geo.Point) (Code, error) {
	place, err := r.reverseGeocode(ctx, pt)
	if err != nil {
		return "", err
	}
	r.logger.Debug("Reverse geocoded", "city", place.City, "prefecture", place.Prefecture)

	entries, err := r.fetchCatalog(ctx)
	if err != nil {
		return "", err
	}

	return matchCatalog(entries, place)
}

// resolveOffline picks the nearest prefecture capital.
func (r *Resolver) resolveOffline(_ context.Context, pt geo.Point) (Code, error) {
	entry, dist, err := nearestFallback(r.fallback, pt)
	if err != nil {
		return "", err
	}
	r.logger.Info("Offline fallback", "capital", entry.Name, "distance_km", int(dist/1000))
	return entry.Code, nil
}
