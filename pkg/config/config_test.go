package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Geocoder.MinInterval != Duration(1*time.Second) {
		t.Errorf("Expected default min_interval 1s, got %v", time.Duration(cfg.Geocoder.MinInterval))
	}
	if cfg.Server.Address == "" {
		t.Error("Expected default server address")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wahlpost.yaml")
	content := `
geocoder:
  min_interval: 2s
  user_agent: "test-agent"
boundaries:
  federal: /tmp/fed.geojson
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Geocoder.MinInterval != Duration(2*time.Second) {
		t.Errorf("Expected min_interval 2s, got %v", time.Duration(cfg.Geocoder.MinInterval))
	}
	if cfg.Geocoder.UserAgent != "test-agent" {
		t.Errorf("Expected user_agent override, got %q", cfg.Geocoder.UserAgent)
	}
	if cfg.Boundaries.Federal != "/tmp/fed.geojson" {
		t.Errorf("Expected federal path override, got %q", cfg.Boundaries.Federal)
	}
	// Untouched keys keep their defaults
	if cfg.Geocoder.Endpoint == "" {
		t.Error("Expected default endpoint to survive partial config")
	}
}

func TestGenerateDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "wahlpost.yaml")
	if err := GenerateDefault(path); err != nil {
		t.Fatalf("GenerateDefault failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load of generated config failed: %v", err)
	}
	if cfg.DB.Path != DefaultConfig().DB.Path {
		t.Errorf("Generated config does not round-trip: %q", cfg.DB.Path)
	}

	// Second call is a no-op
	if err := GenerateDefault(path); err != nil {
		t.Errorf("GenerateDefault on existing file should be nil, got %v", err)
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"1s", time.Second},
		{"500ms", 500 * time.Millisecond},
		{"2d", 48 * time.Hour},
		{"1d12h", 36 * time.Hour},
		{"", 0},
	}
	for _, c := range cases {
		got, err := ParseDuration(c.in)
		if err != nil {
			t.Errorf("ParseDuration(%q) failed: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	if _, err := ParseDuration("bogus"); err == nil {
		t.Error("Expected error for invalid duration")
	}
}
