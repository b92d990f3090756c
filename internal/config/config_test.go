package config

import (
	"strings"
	"testing"
	"time"
)

func validBaseConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      "8000",
			Namespace: "voyage",
			Database:  "main",
		},
		JWT: JWTConfig{
			Secret:         "dev-secret",
			ExpirationMins: 15,
			Issuer:         "voyage.forgo.software",
		},
		Cache: CacheConfig{
			TTL:      300 * time.Second,
			Capacity: 10000,
			Shards:   64,
		},
		Share: ShareConfig{
			BaseURL: "http://localhost:3000/share",
		},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	if err := validBaseConfig().Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_InvalidServerEnv(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "invalid"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid SERVER_ENV")
	}
	if !strings.Contains(err.Error(), "SERVER_ENV") {
		t.Errorf("expected error to mention SERVER_ENV, got: %v", err)
	}
}

func TestConfig_Validate_MissingPort(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing SERVER_PORT")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("expected error to mention SERVER_PORT, got: %v", err)
	}
}

func TestConfig_Validate_MissingJWTSecret(t *testing.T) {
	cfg := validBaseConfig()
	cfg.JWT.Secret = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("expected error to mention JWT_SECRET, got: %v", err)
	}
}

func TestConfig_Validate_InvalidCache(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Cache.TTL = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for zero CACHE_TTL")
	}
	if !strings.Contains(err.Error(), "CACHE_TTL") {
		t.Errorf("expected error to mention CACHE_TTL, got: %v", err)
	}
}

func TestConfig_Validate_SMTPEnabledRequiresHost(t *testing.T) {
	cfg := validBaseConfig()
	cfg.SMTP.Enabled = true
	cfg.SMTP.Port = 587
	cfg.SMTP.From = "no-reply@voyage.dev"
	cfg.SMTP.Host = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing SMTP_HOST")
	}
	if !strings.Contains(err.Error(), "SMTP_HOST") {
		t.Errorf("expected error to mention SMTP_HOST, got: %v", err)
	}
}

func TestConfig_Validate_SMTPDisabledSkipsChecks(t *testing.T) {
	cfg := validBaseConfig()
	cfg.SMTP.Enabled = false

	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled SMTP should not be validated, got: %v", err)
	}
}

func TestConfig_Validate_CollectsAllErrors(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""
	cfg.Database.Host = ""
	cfg.JWT.ExpirationMins = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, want := range []string{"SERVER_PORT", "DB_HOST", "JWT_EXPIRATION_MINS"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected joined error to mention %s, got: %v", want, err)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	// Guard against ambient environment leaking into the test
	for _, key := range []string{"SERVER_PORT", "DB_NAMESPACE", "CACHE_TTL", "JWT_EXPIRATION_MINS", "SHARE_BASE_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %q", cfg.Server.Port)
	}
	if cfg.Database.Namespace != "voyage" {
		t.Errorf("default namespace = %q", cfg.Database.Namespace)
	}
	if cfg.Cache.TTL != 300*time.Second {
		t.Errorf("default cache TTL = %v", cfg.Cache.TTL)
	}
	if cfg.JWT.ExpirationMins != 7*24*60 {
		t.Errorf("default expiration = %d", cfg.JWT.ExpirationMins)
	}
	if cfg.Share.BaseURL != "http://localhost:3000/share" {
		t.Errorf("default share base = %q", cfg.Share.BaseURL)
	}
}

func TestLoad_OverridesFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("SMTP_ENABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "9999" {
		t.Errorf("port override = %q", cfg.Server.Port)
	}
	if cfg.Cache.TTL != 90*time.Second {
		t.Errorf("cache TTL override = %v", cfg.Cache.TTL)
	}
	if !cfg.SMTP.Enabled {
		t.Error("SMTP_ENABLED override not applied")
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Errorf("origins = %v", cfg.Server.AllowedOrigins)
	}
}
