package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://127.0.0.1:3000/" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.TimeoutSeconds != 10 {
		t.Fatalf("TimeoutSeconds = %d, want 10", cfg.TimeoutSeconds)
	}
	if cfg.AgenceBioURL != "" {
		t.Fatalf("AgenceBioURL = %q, want empty for the public endpoint", cfg.AgenceBioURL)
	}
	if cfg.Lat != 48.8566 || cfg.Lng != 2.3522 {
		t.Fatalf("coordinates = %v %v", cfg.Lat, cfg.Lng)
	}
	if !strings.Contains(cfg.SessionPath, "vegapp") || !filepath.IsAbs(cfg.SessionPath) {
		t.Fatalf("SessionPath = %q, want absolute vegapp path", cfg.SessionPath)
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `api_url = "http://backend.example/api"
agencebio_url = "http://opendata.example"
timeout_seconds = 3
lat = 45.76
lng = 4.83
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://backend.example/api" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.AgenceBioURL != "http://opendata.example" {
		t.Fatalf("AgenceBioURL = %q", cfg.AgenceBioURL)
	}
	if cfg.TimeoutSeconds != 3 {
		t.Fatalf("TimeoutSeconds = %d, want 3", cfg.TimeoutSeconds)
	}
	if cfg.Lat != 45.76 || cfg.Lng != 4.83 {
		t.Fatalf("coordinates = %v %v", cfg.Lat, cfg.Lng)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api_url = \"http://from-file.example\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv("VEGAPP_API_URL", "http://from-env.example")
	t.Setenv("VEGAPP_TIMEOUT", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://from-env.example" {
		t.Fatalf("APIURL = %q, want the environment value", cfg.APIURL)
	}
	if cfg.TimeoutSeconds != 7 {
		t.Fatalf("TimeoutSeconds = %d, want 7", cfg.TimeoutSeconds)
	}
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("{not toml"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed config accepted")
	}
}

func TestLoad_ExpandsHomePaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("VEGAPP_SESSION_PATH", "~/state/session.toml")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := filepath.Join(home, "state", "session.toml")
	if cfg.SessionPath != want {
		t.Fatalf("SessionPath = %q, want %q", cfg.SessionPath, want)
	}
}

func TestLoad_NonPositiveTimeoutResets(t *testing.T) {
	t.Setenv("VEGAPP_TIMEOUT", "-1")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TimeoutSeconds != 10 {
		t.Fatalf("TimeoutSeconds = %d, want default", cfg.TimeoutSeconds)
	}
}
