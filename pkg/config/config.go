// Package config loads and persists the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	DB      DBConfig      `yaml:"db"`
	Request RequestConfig `yaml:"request"`
	Region  RegionConfig  `yaml:"region"`
	Shelter ShelterConfig `yaml:"shelter"`
	Sensor  SensorConfig  `yaml:"sensor"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Server   LogSettings `yaml:"server"`
	Requests LogSettings `yaml:"requests"`
}

// LogSettings holds settings for a specific logger.
type LogSettings struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// DBConfig holds database settings.
type DBConfig struct {
	Path     string   `yaml:"path"`
	CacheTTL Duration `yaml:"cache_ttl"`
}

// RequestConfig holds HTTP request settings.
type RequestConfig struct {
	Retries int           `yaml:"retries"`
	Timeout Duration      `yaml:"timeout"`
	Backoff BackoffConfig `yaml:"backoff"`
}

// BackoffConfig holds exponential backoff settings.
type BackoffConfig struct {
	BaseDelay Duration `yaml:"base_delay"`
	MaxDelay  Duration `yaml:"max_delay"`
}

// RegionConfig holds settings for region code resolution.
type RegionConfig struct {
	GeocoderURL string `yaml:"geocoder_url"`
	CatalogURL  string `yaml:"catalog_url"`
	// Contact is embedded in the geocoder User-Agent, as its usage policy asks.
	Contact string `yaml:"contact"`
}

// ShelterConfig holds settings for the shelter dataset provider.
type ShelterConfig struct {
	BaseURL    string   `yaml:"base_url"`
	Categories []string `yaml:"categories"`
	Nearest    int      `yaml:"nearest"`
}

// SensorConfig holds settings for the location/heading sensor source.
type SensorConfig struct {
	Provider string           `yaml:"provider"` // "mock"
	Mock     MockSensorConfig `yaml:"mock"`
}

// MockSensorConfig holds settings for the simulated pedestrian sensor.
type MockSensorConfig struct {
	StartLat     float64  `yaml:"start_lat"`
	StartLon     float64  `yaml:"start_lon"`
	StartHeading float64  `yaml:"start_heading"`
	WalkSpeedMps float64  `yaml:"walk_speed_mps"`
	TurnRateDeg  float64  `yaml:"turn_rate_deg"` // degrees per tick, signed
	Interval     Duration `yaml:"interval"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address: "localhost:1931",
		},
		Log: LogConfig{
			Server: LogSettings{
				Path:  "./logs/server.log",
				Level: "INFO",
			},
			Requests: LogSettings{
				Path:  "./logs/requests.log",
				Level: "INFO",
			},
		},
		DB: DBConfig{
			Path:     "./data/shelternav.db",
			CacheTTL: Duration(7 * Day),
		},
		Request: RequestConfig{
			Retries: 3,
			Timeout: Duration(30 * time.Second),
			Backoff: BackoffConfig{
				BaseDelay: Duration(500 * time.Millisecond),
				MaxDelay:  Duration(10 * time.Second),
			},
		},
		Region: RegionConfig{
			GeocoderURL: "https://nominatim.openstreetmap.org/reverse",
			CatalogURL:  "https://motohasystem.github.io/jp-shelter-api/api/v0/city-to-code.json",
		},
		Shelter: ShelterConfig{
			BaseURL:    "https://motohasystem.github.io/jp-shelter-api/api/v0",
			Categories: []string{"emergency", "evacuation"},
			Nearest:    3,
		},
		Sensor: SensorConfig{
			Provider: "mock",
			Mock: MockSensorConfig{
				StartLat:     35.6895,
				StartLon:     139.6917,
				StartHeading: 0,
				WalkSpeedMps: 1.4,
				TurnRateDeg:  5,
				Interval:     Duration(time.Second),
			},
		},
	}
}

// Load loads the configuration from the given path.
// If the file does not exist, it creates it with default values.
// If the file exists, it merges defaults with existing values but does NOT
// save back to disk (to preserve user formatting and comments).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Optional .env for deployment-specific values
	_ = godotenv.Load()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}

		applyEnv(cfg)
		return cfg, nil
	}

	applyEnv(cfg)
	if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}
	return cfg, nil
}

// applyEnv fills empty fields from the environment without writing them back.
func applyEnv(cfg *Config) {
	if cfg.Region.Contact == "" {
		cfg.Region.Contact = os.Getenv("SHELTERNAV_CONTACT")
	}
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GenerateDefault writes a default config file to the path.
func GenerateDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return Save(path, DefaultConfig())
}
