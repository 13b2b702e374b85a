// Package main provides a one-shot CLI that resolves the region for a
// coordinate, loads its shelter dataset and prints the nearest shelters
// with distance and bearing. Useful for checking datasets without
// running the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"shelternav/pkg/cache"
	"shelternav/pkg/config"
	"shelternav/pkg/geo"
	"shelternav/pkg/region"
	"shelternav/pkg/request"
	"shelternav/pkg/shelter"
	"shelternav/pkg/tracker"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfgPath := flag.String("config", "configs/shelternav.yaml", "Path to config file")
	lat := flag.Float64("lat", 0, "Latitude")
	lon := flag.Float64("lon", 0, "Longitude")
	k := flag.Int("k", 3, "Number of shelters to list")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall timeout")
	flag.Parse()

	if *lat == 0 && *lon == 0 {
		flag.Usage()
		return fmt.Errorf("both -lat and -lon are required")
	}

	// Keep the terminal clean; request details only on demand.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := request.New(&cfg.Request, cfg.Region.Contact, cache.NullCache{}, tracker.New())
	resolver := region.NewResolver(client, cfg.Region.GeocoderURL, cfg.Region.CatalogURL)
	repo := shelter.NewRepository(client, cfg.Shelter.BaseURL, cfg.Shelter.Categories)

	origin := geo.Point{Lat: *lat, Lon: *lon}
	code, err := resolver.Resolve(ctx, origin)
	if err != nil {
		return fmt.Errorf("region resolution failed: %w", err)
	}
	fmt.Printf("Region: %s\n", code)

	features, err := repo.Fetch(ctx, code)
	if err != nil {
		return fmt.Errorf("shelter fetch failed: %w", err)
	}
	fmt.Printf("Shelters in region: %d\n\n", len(features))

	for i, r := range shelter.SelectNearest(origin, features, *k) {
		fmt.Printf("%d. %s\n", i+1, r.Feature.Name())
		if addr := r.Feature.Address(); addr != "" {
			fmt.Printf("   %s\n", addr)
		}
		fmt.Printf("   %s %s (%.0f deg)\n", geo.FormatDistance(r.DistanceMeters), geo.DirectionLabel(r.BearingDegrees), geo.NormalizeBearing(r.BearingDegrees))
	}
	return nil
}
