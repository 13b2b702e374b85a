package region

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"shelternav/pkg/geo"
)

// address is the subset of the reverse geocoder response we consume.
type address struct {
	City     string `json:"city"`
	Town     string `json:"town"`
	Village  string `json:"village"`
	Suburb   string `json:"suburb"`
	Province string `json:"province"`
	State    string `json:"state"`
}

type geocodeResponse struct {
	Address address `json:"address"`
}

// placeName holds the city/prefecture pair extracted from a geocoder hit.
type placeName struct {
	City       string
	Prefecture string
}

// reverseGeocode asks the geocoder for the administrative names at pt.
// Returns ErrIncompleteAddress when either name is missing; Japanese
// prefectures arrive in the province field, state is the general fallback.
func (r *Resolver) reverseGeocode(ctx context.Context, pt geo.Point) (placeName, error) {
	u := fmt.Sprintf("%s?lat=%s&lon=%s&format=json&addressdetails=1",
		r.geocoderURL,
		url.QueryEscape(fmt.Sprintf("%.6f", pt.Lat)),
		url.QueryEscape(fmt.Sprintf("%.6f", pt.Lon)))

	// Not cached: positions rarely repeat exactly
	body, err := r.client.Get(ctx, u, "")
	if err != nil {
		return placeName{}, fmt.Errorf("reverse geocode failed: %w", err)
	}

	var resp geocodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return placeName{}, fmt.Errorf("reverse geocode parse failed: %w", err)
	}

	p := placeName{
		City:       firstNonEmpty(resp.Address.City, resp.Address.Town, resp.Address.Village, resp.Address.Suburb),
		Prefecture: firstNonEmpty(resp.Address.Province, resp.Address.State),
	}
	if p.City == "" || p.Prefecture == "" {
		return placeName{}, ErrIncompleteAddress
	}
	return p, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
