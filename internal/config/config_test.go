package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("default backend = %q, want sqlite", cfg.Storage.Backend)
	}
}

func TestLoadExpandsEnvAndOverridesDefaults(t *testing.T) {
	t.Setenv("TALLYUP_TEST_SECRET", "from-env")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
storage:
  backend: bolt
  path: /tmp/tallyup.db
share:
  secret: ${TALLYUP_TEST_SECRET}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "bolt" {
		t.Errorf("backend = %q, want bolt", cfg.Storage.Backend)
	}
	if cfg.Share.Secret != "from-env" {
		t.Errorf("secret = %q, want env expansion", cfg.Share.Secret)
	}
	// Untouched sections keep their defaults.
	if cfg.Share.TTLHours != 72 {
		t.Errorf("ttl = %d, want default 72", cfg.Share.TTLHours)
	}
}
