package shelter

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"shelternav/pkg/geo"
)

// Feature is one shelter from the dataset provider. Properties are kept
// verbatim; only derived fields are ever attached, never merged back.
type Feature struct {
	Point      geo.Point
	Properties geojson.Properties
}

// Name returns the shelter name, preferring the plain key over the
// locale-specific variant the dataset sometimes uses instead.
func (f *Feature) Name() string {
	if s := getStringProp(f.Properties, "name"); s != "" {
		return s
	}
	if s := getStringProp(f.Properties, "名称"); s != "" {
		return s
	}
	return "(unnamed shelter)"
}

// Address returns the shelter address, with the same key fallback as Name.
func (f *Feature) Address() string {
	if s := getStringProp(f.Properties, "address"); s != "" {
		return s
	}
	if s := getStringProp(f.Properties, "住所"); s != "" {
		return s
	}
	return ""
}

// parseFeatures decodes a dataset response into Features. Geometries that are
// not points are skipped; the dataset only ships points but we don't trust it.
func parseFeatures(body []byte) ([]Feature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, err
	}

	features := make([]Feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		pt, ok := f.Geometry.(orb.Point)
		if !ok {
			continue
		}
		// GeoJSON coordinate order is [lng, lat]
		features = append(features, Feature{
			Point:      geo.Point{Lat: pt.Lat(), Lon: pt.Lon()},
			Properties: f.Properties,
		})
	}
	return features, nil
}

// getStringProp safely extracts a string property from GeoJSON properties.
func getStringProp(props geojson.Properties, key string) string {
	if val, ok := props[key]; ok {
		if s, ok := val.(string); ok {
			return s
		}
		if f, ok := val.(json.Number); ok {
			return string(f)
		}
	}
	return ""
}
