package shelter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelternav/pkg/cache"
	"shelternav/pkg/config"
	"shelternav/pkg/request"
	"shelternav/pkg/tracker"
)

const featureBody = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [135.5023, 34.6937]},
			"properties": {"名称": "中央区民センター", "住所": "大阪市中央区1-1"}
		},
		{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [135.51, 34.70]},
			"properties": {"name": "North School", "address": "2-2 Kita"}
		}
	]
}`

func testClient() *request.Client {
	cfg := &config.RequestConfig{
		Retries: 1,
		Timeout: config.Duration(2 * time.Second),
		Backoff: config.BackoffConfig{
			BaseDelay: config.Duration(time.Millisecond),
			MaxDelay:  config.Duration(10 * time.Millisecond),
		},
	}
	return request.New(cfg, "", cache.NullCache{}, tracker.New())
}

func TestFetch_FirstCategoryWins(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/emergency/271004.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(featureBody))
	})
	svr := httptest.NewServer(mux)
	defer svr.Close()

	repo := NewRepository(testClient(), svr.URL, []string{"emergency", "evacuation"})

	features, err := repo.Fetch(context.Background(), "271004")
	require.NoError(t, err)
	require.Len(t, features, 2)

	assert.Equal(t, "中央区民センター", features[0].Name())
	assert.Equal(t, "大阪市中央区1-1", features[0].Address())
	assert.InDelta(t, 34.6937, features[0].Point.Lat, 1e-9)
	assert.InDelta(t, 135.5023, features[0].Point.Lon, 1e-9)
	assert.Equal(t, "North School", features[1].Name())
}

func TestFetch_ErroringCategorySkipped(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/emergency/131016.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/evacuation/131016.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(featureBody))
	})
	svr := httptest.NewServer(mux)
	defer svr.Close()

	repo := NewRepository(testClient(), svr.URL, []string{"emergency", "evacuation"})

	features, err := repo.Fetch(context.Background(), "131016")
	require.NoError(t, err)
	assert.Len(t, features, 2)
}

func TestFetch_EmptyCategorySkipped(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/emergency/412015.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	})
	mux.HandleFunc("/evacuation/412015.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(featureBody))
	})
	svr := httptest.NewServer(mux)
	defer svr.Close()

	repo := NewRepository(testClient(), svr.URL, []string{"emergency", "evacuation"})

	features, err := repo.Fetch(context.Background(), "412015")
	require.NoError(t, err)
	assert.Len(t, features, 2)
}

func TestFetch_AllCategoriesExhausted(t *testing.T) {
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer svr.Close()

	repo := NewRepository(testClient(), svr.URL, []string{"emergency", "evacuation"})

	_, err := repo.Fetch(context.Background(), "000000")
	assert.ErrorIs(t, err, ErrNoShelterData)
}

func TestFeature_NameFallbacks(t *testing.T) {
	f := Feature{Properties: map[string]interface{}{}}
	assert.Equal(t, "(unnamed shelter)", f.Name())
	assert.Equal(t, "", f.Address())
}
