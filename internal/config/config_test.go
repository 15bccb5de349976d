package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Empty directory: no config file, defaults apply.
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Address != ":8080" {
		t.Errorf("server.address = %q, want :8080", cfg.Server.Address)
	}
	if cfg.JWT.Expiration != time.Hour {
		t.Errorf("jwt.expiration = %v, want 1h", cfg.JWT.Expiration)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log.level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  address: ":9090"
jwt:
  secret: "file-secret"
  expiration: "90m"
log:
  level: "debug"
  format: "console"
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Address != ":9090" {
		t.Errorf("server.address = %q, want :9090", cfg.Server.Address)
	}
	if cfg.JWT.Secret != "file-secret" {
		t.Errorf("jwt.secret = %q", cfg.JWT.Secret)
	}
	if cfg.JWT.Expiration != 90*time.Minute {
		t.Errorf("jwt.expiration = %v, want 90m", cfg.JWT.Expiration)
	}
}
