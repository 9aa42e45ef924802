// Package config loads the Vegapp client configuration: a TOML file
// with environment-variable overrides on top, so the API base URL is
// always sourced from configuration and never baked into the binary.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything the client needs at startup.
type Config struct {
	// APIURL is the Vegapp backend base URL.
	APIURL string `env:"VEGAPP_API_URL"`
	// AgenceBioURL overrides the open-data endpoint; empty uses the
	// public one.
	AgenceBioURL string `env:"VEGAPP_AGENCEBIO_URL"`
	// TimeoutSeconds bounds every HTTP request.
	TimeoutSeconds int `env:"VEGAPP_TIMEOUT"`
	// SessionPath is where the signed-in session is persisted.
	SessionPath string `env:"VEGAPP_SESSION_PATH"`
	// LogPath receives slog output; the terminal belongs to the UI.
	LogPath string `env:"VEGAPP_LOG_PATH"`
	// Lat/Lng are the home coordinates for the shop locator.
	Lat float64 `env:"VEGAPP_LAT"`
	Lng float64 `env:"VEGAPP_LNG"`
}

const (
	defaultConfigPath  = "~/.config/vegapp/config.toml"
	defaultAPIURL      = "http://127.0.0.1:3000/"
	defaultSessionPath = "~/.local/state/vegapp/session.toml"
	defaultLogPath     = "~/.local/state/vegapp/vegapp.log"
	defaultTimeout     = 10
	// Paris, the original app's audience. Overridable like everything else.
	defaultLat = 48.8566
	defaultLng = 2.3522
)

// Load reads the config file (missing file falls back to defaults),
// then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:         defaultAPIURL,
		TimeoutSeconds: defaultTimeout,
		SessionPath:    defaultSessionPath,
		LogPath:        defaultLogPath,
		Lat:            defaultLat,
		Lng:            defaultLng,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
	} else {
		defer func() { _ = file.Close() }()

		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}

		var raw struct {
			APIURL       string  `toml:"api_url"`
			AgenceBioURL string  `toml:"agencebio_url"`
			Timeout      int     `toml:"timeout_seconds"`
			SessionPath  string  `toml:"session_path"`
			LogPath      string  `toml:"log_path"`
			Lat          float64 `toml:"lat"`
			Lng          float64 `toml:"lng"`
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}

		if v := strings.TrimSpace(raw.APIURL); v != "" {
			cfg.APIURL = v
		}
		if v := strings.TrimSpace(raw.AgenceBioURL); v != "" {
			cfg.AgenceBioURL = v
		}
		if raw.Timeout > 0 {
			cfg.TimeoutSeconds = raw.Timeout
		}
		if v := strings.TrimSpace(raw.SessionPath); v != "" {
			cfg.SessionPath = v
		}
		if v := strings.TrimSpace(raw.LogPath); v != "" {
			cfg.LogPath = v
		}
		if raw.Lat != 0 || raw.Lng != 0 {
			cfg.Lat = raw.Lat
			cfg.Lng = raw.Lng
		}
	}

	// Environment wins over the file.
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeout
	}
	cfg.SessionPath = mustExpand(cfg.SessionPath)
	cfg.LogPath = mustExpand(cfg.LogPath)

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
