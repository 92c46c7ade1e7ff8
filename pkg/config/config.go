package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	DB         DBConfig         `yaml:"db"`
	Geocoder   GeocoderConfig   `yaml:"geocoder"`
	Boundaries BoundariesConfig `yaml:"boundaries"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// LogConfig holds logging settings. An empty path logs to stdout only.
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// DBConfig holds database settings.
type DBConfig struct {
	Path string `yaml:"path"`
}

// GeocoderConfig holds settings for the external geocoding service.
type GeocoderConfig struct {
	Endpoint string `yaml:"endpoint"`
	// UserAgent identifies this deployment to the service operator and is
	// required by the Nominatim usage policy.
	UserAgent   string   `yaml:"user_agent"`
	Timeout     Duration `yaml:"timeout"`
	MinInterval Duration `yaml:"min_interval"`
}

// BoundariesConfig holds paths to the boundary datasets. StateDir contains
// one GeoJSON file per state, named by lowercase state code (e.g. be.geojson).
// Missing state files are expected and simply excluded from lookups.
type BoundariesConfig struct {
	Federal  string `yaml:"federal"`
	StateDir string `yaml:"state_dir"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address: "localhost:8640",
		},
		Log: LogConfig{
			Path:  "./logs/server.log",
			Level: "INFO",
		},
		DB: DBConfig{
			Path: "./data/wahlpost.db",
		},
		Geocoder: GeocoderConfig{
			Endpoint:    "https://nominatim.openstreetmap.org/search",
			UserAgent:   "wahlpost/1.0 (kontakt@wahlpost.example)",
			Timeout:     Duration(10 * time.Second),
			MinInterval: Duration(1 * time.Second),
		},
		Boundaries: BoundariesConfig{
			Federal:  "./data/boundaries/bundestagswahlkreise.geojson",
			StateDir: "./data/boundaries/states",
		},
	}
}

// Load reads the configuration file at path, merging it over the defaults.
// A missing file is not an error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Wahlpost Configuration
# ----------------------
# Durations support the units ns, us, ms, s, m, h, d.

`)
	data = append(header, data...)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}
