// Package syncer keeps the backend's record of the user's regimes and
// favorites consistent with local toggles.
//
// The pattern is fire-and-confirm rather than two-phase commit: the
// local mutation is applied immediately so the interface never waits on
// the network, then exactly one remote call is issued. A failed call
// rolls the local state back to the pre-mutation value.
package syncer

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/vegapp/vegapp/internal/session"
)

// Remote is the slice of the API the engine needs. Implemented by
// *api.Client; tests substitute fakes.
type Remote interface {
	AddBookmark(ctx context.Context, token, recipeID string) error
	RemoveBookmark(ctx context.Context, token, recipeID string) error
	AddRegime(ctx context.Context, token, regime string) error
	RemoveRegime(ctx context.Context, token, regime string) error
	AddShopBookmark(ctx context.Context, token string, shop session.Shop) error
	RemoveShopBookmark(ctx context.Context, token, siret string) error
}

// OpState is the terminal state of one sync operation. Every operation
// walks applied-locally → syncing → one of these.
type OpState int

const (
	// Noop: the mutation changed nothing, no remote call was made.
	Noop OpState = iota
	// Confirmed: local and remote state agree.
	Confirmed
	// RolledBack: the remote call failed and the element was restored
	// to its pre-toggle membership.
	RolledBack
	// Abandoned: the session that issued the operation was logged out
	// before the operation resolved; neither the remote call nor a
	// rollback was applied.
	Abandoned
)

func (s OpState) String() string {
	switch s {
	case Noop:
		return "noop"
	case Confirmed:
		return "confirmed"
	case RolledBack:
		return "rolled-back"
	case Abandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Result describes the outcome of a Toggle call.
type Result struct {
	Op       uuid.UUID
	Mutation session.Mutation
	State    OpState
	Err      error
}

// Engine coordinates optimistic mutations against the session store and
// their confirmation with the backend.
type Engine struct {
	store  *session.Store
	remote Remote
	log    *slog.Logger

	// generation advances on logout; in-flight operations from an
	// older generation must not touch the store or the network again.
	generation atomic.Uint64

	mu   sync.Mutex
	keys map[string]*sync.Mutex
}

// New builds an engine. A nil logger discards output.
func New(store *session.Store, remote Remote, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		store:  store,
		remote: remote,
		log:    log,
		keys:   make(map[string]*sync.Mutex),
	}
}

// Abandon invalidates every operation issued for the current session.
// Called on logout so pending syncs cannot leak into whatever session
// follows.
func (e *Engine) Abandon() {
	e.generation.Add(1)
}

// keyLock returns the mutex serializing operations on one logical slot.
func (e *Engine) keyLock(key string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.keys[key]
	if !ok {
		lock = &sync.Mutex{}
		e.keys[key] = lock
	}
	return lock
}

// Toggle applies the mutation locally, then confirms it with the
// backend. Operations on the same key are serialized: a second toggle
// of the same regime or recipe waits until the first has resolved, so
// interleaved POST/DELETE pairs cannot diverge. Operations on different
// keys proceed independently.
//
// Ingredient mutations are local-only; they confirm without a remote
// call.
func (e *Engine) Toggle(ctx context.Context, m session.Mutation) Result {
	op := uuid.New()
	gen := e.generation.Load()

	// A toggle issued after logout must leave no trace. The store also
	// refuses mutations on a tokenless session, closing the window
	// between this check and the apply.
	if e.store.Token() == "" {
		return Result{Op: op, Mutation: m, State: Abandoned}
	}

	applied := e.store.Apply(m)
	if !applied.Changed {
		return Result{Op: op, Mutation: m, State: Noop}
	}

	e.log.Debug("mutation applied locally",
		slog.String("op", op.String()),
		slog.String("key", m.Key()),
		slog.Bool("added", applied.Added))

	if m.Kind == session.AppendIngredient || m.Kind == session.RemoveIngredient {
		return Result{Op: op, Mutation: m, State: Confirmed}
	}

	lock := e.keyLock(m.Key())
	lock.Lock()
	defer lock.Unlock()

	// The session that issued this toggle may have logged out while we
	// waited for the key; its state is gone and must stay gone.
	if e.generation.Load() != gen {
		e.log.Debug("sync abandoned", slog.String("op", op.String()), slog.String("key", m.Key()))
		return Result{Op: op, Mutation: m, State: Abandoned}
	}

	token := e.store.Token()
	if token == "" {
		return Result{Op: op, Mutation: m, State: Abandoned}
	}

	err := e.push(ctx, token, m, applied.Added)
	if err == nil {
		e.log.Debug("sync confirmed", slog.String("op", op.String()), slog.String("key", m.Key()))
		return Result{Op: op, Mutation: m, State: Confirmed}
	}

	// Roll back by restoring the element's pre-toggle membership,
	// unless the session has been replaced in the meantime. Revert is a
	// no-op when a later toggle of the same element already moved it.
	if e.generation.Load() != gen {
		return Result{Op: op, Mutation: m, State: Abandoned, Err: err}
	}
	e.store.Revert(m, applied.Added)
	e.log.Warn("sync failed, rolled back",
		slog.String("op", op.String()),
		slog.String("key", m.Key()),
		slog.String("error", err.Error()))
	return Result{Op: op, Mutation: m, State: RolledBack, Err: err}
}

// push issues the single remote call for a toggle: POST when the toggle
// added the element, DELETE when it removed it.
func (e *Engine) push(ctx context.Context, token string, m session.Mutation, added bool) error {
	switch m.Kind {
	case session.ToggleRegime:
		if added {
			return e.remote.AddRegime(ctx, token, m.Regime)
		}
		return e.remote.RemoveRegime(ctx, token, m.Regime)

	case session.ToggleFavoriteRecipe:
		if added {
			return e.remote.AddBookmark(ctx, token, m.RecipeID)
		}
		return e.remote.RemoveBookmark(ctx, token, m.RecipeID)

	case session.ToggleFavoriteShop:
		if added {
			return e.remote.AddShopBookmark(ctx, token, m.Shop)
		}
		return e.remote.RemoveShopBookmark(ctx, token, m.Shop.Siret)

	default:
		return nil
	}
}
