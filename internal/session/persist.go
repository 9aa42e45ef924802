package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// Restore reads a previously saved session from path. A missing or
// unreadable file yields the zero session rather than an error: a
// corrupt session file should degrade to "signed out", not block start.
func Restore(path string) Session {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Session{}
	}

	var s Session
	if err := toml.Unmarshal(bytes, &s); err != nil {
		return Session{}
	}
	// A session without a token must carry nothing else.
	if !s.Authenticated() {
		return Session{}
	}
	return s
}

// Save writes the session to path, creating parent directories as needed.
func Save(path string, s Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	bytes, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	// 0600: the file carries the auth token.
	if err := os.WriteFile(path, bytes, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Wipe removes the session file. Removing an absent file is not an error.
func Wipe(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
