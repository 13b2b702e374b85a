package region

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
	"shelternav/pkg/geo"
	"shelternav/pkg/request"
	"shelternav/pkg/tracker"
)

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

func TestResolve_OnlinePath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/reverse", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"address":{"city":"千代田区","province":"東京都"}}`))
	})
	mux.HandleFunc("/catalog.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"東京都千代田区":"131016"}`))
	})
	svr := httptest.NewServer(mux)
	defer svr.Close()

	r := NewResolver(testClient(), svr.URL+"/reverse", svr.URL+"/catalog.json")

	code, err := r.Resolve(context.Background(), geo.Point{Lat: 35.69, Lon: 139.69})
	require.NoError(t, err)
	assert.Equal(t, Code("131016"), code)
}

func TestResolve_StateFieldFallsBackForPrefecture(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/reverse", func(w http.ResponseWriter, r *http.Request) {
		// No province; state carries the prefecture, town carries the city
		_, _ = w.Write([]byte(`{"address":{"town":"津市","state":"三重県"}}`))
	})
	mux.HandleFunc("/catalog.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"三重県津市":"242021"}`))
	})
	svr := httptest.NewServer(mux)
	defer svr.Close()

	r := NewResolver(testClient(), svr.URL+"/reverse", svr.URL+"/catalog.json")

	code, err := r.Resolve(context.Background(), geo.Point{Lat: 34.73, Lon: 136.50})
	require.NoError(t, err)
	assert.Equal(t, Code("242021"), code)
}

func TestResolve_IncompleteAddressUsesFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/reverse", func(w http.ResponseWriter, r *http.Request) {
		// City present but no province/state
		_, _ = w.Write([]byte(`{"address":{"city":"somewhere"}}`))
	})
	svr := httptest.NewServer(mux)
	defer svr.Close()

	r := NewResolver(testClient(), svr.URL+"/reverse", svr.URL+"/catalog.json")

	// Exactly at the Osaka capital entry
	code, err := r.Resolve(context.Background(), geo.Point{Lat: 34.6937, Lon: 135.5023})
	require.NoError(t, err)
	assert.Equal(t, Code("271004"), code)
}

func TestResolve_GeocoderDownUsesFallback(t *testing.T) {
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer svr.Close()

	r := NewResolver(testClient(), svr.URL+"/reverse", svr.URL+"/catalog.json")

	// Near Sapporo
	code, err := r.Resolve(context.Background(), geo.Point{Lat: 43.0, Lon: 141.3})
	require.NoError(t, err)
	assert.Equal(t, Code("011002"), code)
}

func TestNearestFallback(t *testing.T) {
	tests := []struct {
		name string
		pt   geo.Point
		want Code
	}{
		{"Exact Tokyo entry", geo.Point{Lat: 35.6895, Lon: 139.6917}, "131016"},
		{"Near Naha", geo.Point{Lat: 26.3, Lon: 127.7}, "472018"},
		{"Near Sendai", geo.Point{Lat: 38.3, Lon: 140.9}, "041009"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, dist, err := nearestFallback(prefectureCapitals, tt.pt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, entry.Code)
			if tt.name == "Exact Tokyo entry" {
				assert.InDelta(t, 0, dist, 0.5)
			}
		})
	}
}

func TestNearestFallback_EmptyTable(t *testing.T) {
	_, _, err := nearestFallback(nil, geo.Point{})
	assert.ErrorIs(t, err, ErrNoFallback)
}

func TestFallbackTableComplete(t *testing.T) {
	assert.Len(t, prefectureCapitals, 47)
	seen := make(map[Code]bool)
	for _, e := range prefectureCapitals {
		assert.False(t, seen[e.Code], "duplicate code %s", e.Code)
		seen[e.Code] = true
		assert.NotEmpty(t, e.Name)
	}
}
