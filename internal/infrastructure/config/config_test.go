package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.ResultStore != StoreFile {
		t.Errorf("ResultStore = %q, want file", cfg.ResultStore)
	}
	if cfg.RetentionHours != 24 {
		t.Errorf("RetentionHours = %d, want 24", cfg.RetentionHours)
	}
	if cfg.RetentionAge() != 24*time.Hour {
		t.Errorf("RetentionAge = %v, want 24h", cfg.RetentionAge())
	}
	if cfg.ProviderTimeout != 30*time.Second {
		t.Errorf("ProviderTimeout = %v, want 30s", cfg.ProviderTimeout)
	}
	if cfg.MissingAirportPolicy != "skip-flight" {
		t.Errorf("MissingAirportPolicy = %q", cfg.MissingAirportPolicy)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("RETENTION_HOURS", "48")
	t.Setenv("RESULT_STORE", "mongo")
	t.Setenv("SERPAPI_KEY", "secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.RetentionHours != 48 {
		t.Errorf("RetentionHours = %d, want 48", cfg.RetentionHours)
	}
	if cfg.ResultStore != StoreMongo {
		t.Errorf("ResultStore = %q, want mongo", cfg.ResultStore)
	}
	if cfg.SerpAPIKey != "secret" {
		t.Errorf("SerpAPIKey = %q", cfg.SerpAPIKey)
	}
}
