// Package prefs persists display preferences for the Vegapp client.
//
// Preferences are cosmetic, so Load never fails: a missing, unreadable
// or corrupt file simply yields the defaults.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for the Vegapp client.
type Prefs struct {
	Theme string `toml:"theme"`
}

const defaultTheme = "Verdant"

// DefaultPath returns the preferences file location used when no
// override is given.
func DefaultPath() string {
	return "~/.config/vegapp/prefs.toml"
}

// Load reads preferences from path, or from DefaultPath when path is
// empty. Any read or parse problem falls back to the defaults.
func Load(path string) (Prefs, error) {
	p := Prefs{Theme: defaultTheme}

	resolved, err := resolve(path)
	if err != nil {
		return p, nil
	}
	raw, err := os.ReadFile(resolved)
	if err != nil {
		return p, nil
	}
	if err := toml.Unmarshal(raw, &p); err != nil {
		return Prefs{Theme: defaultTheme}, nil
	}
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	return p, nil
}

// Save writes preferences to path, or to DefaultPath when path is
// empty, creating parent directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolve(path)
	if err != nil {
		return fmt.Errorf("resolve prefs path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	raw, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, raw, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// resolve expands an empty path to the default location and a leading
// tilde to the user's home directory, then makes the result absolute.
func resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultPath()
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
