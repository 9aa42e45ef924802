// Package auth drives the authentication lifecycle: local form
// validation, the sign-in/sign-up round trip, and logout.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/vegapp/vegapp/internal/api"
	"github.com/vegapp/vegapp/internal/session"
)

// State is the lifecycle position. Anonymous → Authenticating →
// Authenticated, and back to Anonymous on failure or logout.
type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// ValidationError is a field-level form error. It never reaches the
// network: validation failures keep the machine in Anonymous.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

const minPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Authenticator is the slice of the API the manager needs.
type Authenticator interface {
	SignIn(ctx context.Context, username, password string) (api.AuthResult, error)
	SignUp(ctx context.Context, email, password, username string) (api.AuthResult, error)
}

// Abandoner lets the manager drop pending sync work on logout.
type Abandoner interface {
	Abandon()
}

// Manager owns the lifecycle state and the session store transitions
// that go with it.
type Manager struct {
	store       *session.Store
	remote      Authenticator
	engine      Abandoner
	log         *slog.Logger
	sessionPath string

	mu    sync.Mutex
	state State
}

// New builds a manager. If the restored store already carries a token,
// the machine starts Authenticated. sessionPath may be empty to skip
// persistence (tests).
func New(store *session.Store, remote Authenticator, engine Abandoner, sessionPath string, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := &Manager{
		store:       store,
		remote:      remote,
		engine:      engine,
		log:         log,
		sessionPath: sessionPath,
	}
	if store.Authenticated() {
		m.state = Authenticated
	}
	return m
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// SignIn validates the form, then authenticates against the backend.
// On success the store holds the returned session and the machine is
// Authenticated. On any failure the machine is back in Anonymous with
// the session unchanged.
func (m *Manager) SignIn(ctx context.Context, username, password string) error {
	if err := validateSignIn(username, password); err != nil {
		return err
	}
	if err := m.begin(); err != nil {
		return err
	}

	result, err := m.remote.SignIn(ctx, username, password)
	if err != nil {
		m.setState(Anonymous)
		m.log.Info("sign-in failed", slog.String("username", username), slog.String("error", err.Error()))
		return err
	}
	m.complete(result)
	return nil
}

// SignUp validates the form, then registers against the backend.
func (m *Manager) SignUp(ctx context.Context, email, password, confirm, username string) error {
	if err := validateSignUp(email, password, confirm, username); err != nil {
		return err
	}
	if err := m.begin(); err != nil {
		return err
	}

	result, err := m.remote.SignUp(ctx, email, password, username)
	if err != nil {
		m.setState(Anonymous)
		m.log.Info("sign-up failed", slog.String("username", username), slog.String("error", err.Error()))
		return err
	}
	m.complete(result)
	return nil
}

// Logout abandons pending sync operations, clears the session and wipes
// the persisted file. Idempotent.
func (m *Manager) Logout() error {
	if m.engine != nil {
		m.engine.Abandon()
	}
	m.store.Clear()
	m.setState(Anonymous)

	if m.sessionPath == "" {
		return nil
	}
	if err := session.Wipe(m.sessionPath); err != nil {
		m.log.Warn("session wipe failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (m *Manager) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Authenticating {
		return fmt.Errorf("authentication already in progress")
	}
	m.state = Authenticating
	return nil
}

func (m *Manager) complete(result api.AuthResult) {
	m.store.Set(result.Session())
	m.setState(Authenticated)
	m.log.Info("signed in", slog.String("username", result.Username))

	if m.sessionPath != "" {
		if err := session.Save(m.sessionPath, m.store.Session()); err != nil {
			m.log.Warn("session save failed", slog.String("error", err.Error()))
		}
	}
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func validateSignIn(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return &ValidationError{Field: "username", Msg: "required"}
	}
	if password == "" {
		return &ValidationError{Field: "password", Msg: "required"}
	}
	return nil
}

func validateSignUp(email, password, confirm, username string) error {
	if strings.TrimSpace(username) == "" {
		return &ValidationError{Field: "username", Msg: "required"}
	}
	trimmedEmail := strings.TrimSpace(email)
	if trimmedEmail == "" {
		return &ValidationError{Field: "email", Msg: "required"}
	}
	if !emailPattern.MatchString(trimmedEmail) {
		return &ValidationError{Field: "email", Msg: "invalid address"}
	}
	if len(password) < minPasswordLen {
		return &ValidationError{Field: "password", Msg: fmt.Sprintf("at least %d characters", minPasswordLen)}
	}
	if confirm != password {
		return &ValidationError{Field: "confirm", Msg: "passwords do not match"}
	}
	return nil
}
