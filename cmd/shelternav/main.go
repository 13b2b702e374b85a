package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thejerf/suture/v4"

	"shelternav/internal/api"
	"shelternav/pkg/cache"
	"shelternav/pkg/config"
	"shelternav/pkg/db"
	"shelternav/pkg/logging"
	"shelternav/pkg/region"
	"shelternav/pkg/request"
	"shelternav/pkg/sensor"
	"shelternav/pkg/sensor/mocksensor"
	"shelternav/pkg/session"
	"shelternav/pkg/shelter"
	"shelternav/pkg/tracker"
	"shelternav/pkg/version"
)

const configPath = "configs/shelternav.yaml"

var initConfig = flag.Bool("init-config", false, "Generate default config file and exit")

func main() {
	flag.Parse()

	if *initConfig {
		if err := config.GenerateDefault(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Config file generated:", configPath)
		return
	}

	if err := run(context.Background(), configPath); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanupLogs, err := logging.Init(&appCfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("ShelterNav started", "version", version.Version)

	dbConn, err := db.Init(appCfg.DB.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer dbConn.Close()

	if err := dbConn.PruneCache(time.Duration(appCfg.DB.CacheTTL)); err != nil {
		slog.Warn("Cache pruning failed", "error", err)
	}

	src, err := initSensor(appCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize sensor source: %w", err)
	}
	defer src.Close()

	tr := tracker.New()
	reqClient := request.New(&appCfg.Request, appCfg.Region.Contact, cache.NewSQLiteCache(dbConn), tr)
	resolver := region.NewResolver(reqClient, appCfg.Region.GeocoderURL, appCfg.Region.CatalogURL)
	repo := shelter.NewRepository(reqClient, appCfg.Shelter.BaseURL, appCfg.Shelter.Categories)
	mgr := session.NewManager(src, resolver, repo, appCfg.Shelter.Nearest)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := api.NewServer(appCfg.Server.Address,
		api.NewViewHandler(mgr),
		api.NewSessionHandler(mgr),
		api.NewStatsHandler(tr),
		cancel,
	)

	sup := suture.New("main", suture.Spec{
		EventHook: func(ev suture.Event) {
			slog.Error(ev.String())
		},
	})
	sup.Add(sessionService{mgr})
	sup.Add(httpService{srv})

	slog.Info("Serving", "addr", appCfg.Server.Address)
	return sup.Serve(ctx)
}

func initSensor(cfg *config.Config) (sensor.Source, error) {
	switch cfg.Sensor.Provider {
	case "mock", "":
		return mocksensor.New(cfg.Sensor.Mock), nil
	default:
		return nil, fmt.Errorf("unknown sensor provider %q", cfg.Sensor.Provider)
	}
}

// sessionService runs the navigation session under the supervisor. A
// terminally failed session is not restarted; its state stays visible
// through the API instead.
type sessionService struct {
	mgr *session.Manager
}

func (s sessionService) Serve(ctx context.Context) error {
	err := s.mgr.Serve(ctx)
	if s.mgr.State() == session.StateFailed {
		return errors.Join(err, suture.ErrDoNotRestart)
	}
	return err
}

type httpService struct {
	srv *http.Server
}

func (s httpService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shCtx); err != nil {
			slog.Warn("HTTP shutdown incomplete", "error", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
