package region

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// CatalogEntry is one name-to-code mapping from the catalog provider.
type CatalogEntry struct {
	Name string
	Code Code
}

// fetchCatalog retrieves and parses the region-code catalog, preserving the
// provider's entry order. Order matters: the city-name-only match takes the
// first entry in catalog order, and some region codes are only reachable
// through that tie-break.
func (r *Resolver) fetchCatalog(ctx context.Context) ([]CatalogEntry, error) {
	body, err := r.client.Get(ctx, r.catalogURL, "region-catalog")
	if err != nil {
		return nil, fmt.Errorf("catalog fetch failed: %w", err)
	}
	return parseCatalog(body)
}

// parseCatalog decodes the top-level JSON object token by token so entries
// keep their document order (a plain map would shuffle them).
func parseCatalog(data []byte) ([]CatalogEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("catalog parse failed: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("catalog parse failed: expected object, got %v", tok)
	}

	var entries []CatalogEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("catalog parse failed: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("catalog parse failed: non-string key %v", keyTok)
		}

		var code string
		if err := dec.Decode(&code); err != nil {
			return nil, fmt.Errorf("catalog parse failed at %q: %w", name, err)
		}
		entries = append(entries, CatalogEntry{Name: name, Code: Code(code)})
	}

	return entries, nil
}

// matchCatalog runs the ordered match steps against the catalog entries.
// First success wins; each step scans entries in catalog order.
func matchCatalog(entries []CatalogEntry, place placeName) (Code, error) {
	steps := []func([]CatalogEntry, placeName) (Code, bool){
		matchExact,
		matchBothSubstrings,
		matchCityOnly,
	}
	for _, step := range steps {
		if code, ok := step(entries, place); ok {
			return code, nil
		}
	}
	return "", ErrNoMatch
}

// matchExact matches on the prefecture+city concatenation.
func matchExact(entries []CatalogEntry, place placeName) (Code, bool) {
	full := place.Prefecture + place.City
	for _, e := range entries {
		if e.Name == full {
			return e.Code, true
		}
	}
	return "", false
}

// matchBothSubstrings matches entries containing both names.
func matchBothSubstrings(entries []CatalogEntry, place placeName) (Code, bool) {
	for _, e := range entries {
		if strings.Contains(e.Name, place.City) && strings.Contains(e.Name, place.Prefecture) {
			return e.Code, true
		}
	}
	return "", false
}

// matchCityOnly matches on the city name alone. Ambiguous when city names
// collide across prefectures; the first entry in catalog order wins,
// matching the upstream dataset's documented behavior.
func matchCityOnly(entries []CatalogEntry, place placeName) (Code, bool) {
	for _, e := range entries {
		if strings.Contains(e.Name, place.City) {
			return e.Code, true
		}
	}
	return "", false
}
