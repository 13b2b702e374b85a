// Package shelter fetches shelter datasets and ranks shelters by distance.
package shelter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"shelternav/pkg/region"
	"shelternav/pkg/request"
)

// ErrNoShelterData indicates every category yielded zero features or errors.
var ErrNoShelterData = errors.New("no shelter data for region")

// Repository fetches shelter feature collections from the dataset provider.
type Repository struct {
	client     *request.Client
	baseURL    string
	categories []string
	logger     *slog.Logger
}

// NewRepository creates a Repository trying the given category keys in order.
func NewRepository(client *request.Client, baseURL string, categories []string) *Repository {
	return &Repository{
		client:     client,
		baseURL:    baseURL,
		categories: categories,
		logger:     slog.With("component", "shelter_repository"),
	}
}

// Fetch returns the features of the first category with a non-empty result.
// A failing or empty category is skipped, not retried; when all categories
// are exhausted the region has no usable data.
func (r *Repository) Fetch(ctx context.Context, code region.Code) ([]Feature, error) {
	for _, category := range r.categories {
		u := fmt.Sprintf("%s/%s/%s.json", r.baseURL, category, code)
		cacheKey := fmt.Sprintf("shelters:%s:%s", category, code)

		body, err := r.client.Get(ctx, u, cacheKey)
		if err != nil {
			r.logger.Warn("Category fetch failed", "category", category, "code", code, "error", err)
			continue
		}

		features, err := parseFeatures(body)
		if err != nil {
			r.logger.Warn("Category parse failed", "category", category, "code", code, "error", err)
			continue
		}
		if len(features) == 0 {
			r.logger.Debug("Category empty", "category", category, "code", code)
			continue
		}

		r.logger.Info("Shelter data loaded", "category", category, "code", code, "count", len(features))
		return features, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNoShelterData, code)
}
