package session

import "sync"

// Store is the single source of truth for the current Session. It
// follows a replace-wholesale discipline: the stored value is swapped
// for a fresh copy on every mutation and cloned on every read, so a
// reader can never observe a half-updated session.
type Store struct {
	mu      sync.RWMutex
	current Session
}

// NewStore returns a store seeded with the given session, typically one
// restored from disk at startup.
func NewStore(initial Session) *Store {
	return &Store{current: initial.Clone()}
}

// Session returns a snapshot of the current session.
func (st *Store) Session() Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current.Clone()
}

// Authenticated reports whether a user is signed in.
func (st *Store) Authenticated() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current.Authenticated()
}

// Token returns the current credential, empty when unauthenticated.
func (st *Store) Token() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current.Token
}

// Set replaces the session wholesale. Used on successful sign-in or
// sign-up, where the backend response is the full state of record.
func (st *Store) Set(s Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.current = s.Clone()
}

// Partial is a subset of session fields for merge updates. Nil fields
// are left untouched.
type Partial struct {
	Token           *string
	Email           *string
	Username        *string
	FavoriteRecipes []string
	FavoriteShops   []Shop
	Regimes         []string
	Ingredients     []Ingredient
}

// Merge applies the non-nil fields of p on top of the current session.
func (st *Store) Merge(p Partial) {
	st.mu.Lock()
	defer st.mu.Unlock()

	next := st.current.Clone()
	if p.Token != nil {
		next.Token = *p.Token
	}
	if p.Email != nil {
		next.Email = *p.Email
	}
	if p.Username != nil {
		next.Username = *p.Username
	}
	if p.FavoriteRecipes != nil {
		next.FavoriteRecipes = cloneStrings(p.FavoriteRecipes)
	}
	if p.FavoriteShops != nil {
		next.FavoriteShops = cloneShops(p.FavoriteShops)
	}
	if p.Regimes != nil {
		next.Regimes = cloneStrings(p.Regimes)
	}
	if p.Ingredients != nil {
		next.Ingredients = cloneIngredients(p.Ingredients)
	}
	st.current = next
}

// Clear resets the store to the unauthenticated default. Idempotent.
func (st *Store) Clear() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.current = Session{}
}

// ApplyResult reports what a store mutation did. Added records whether
// the element was inserted (true) or removed (false) at the moment the
// mutation ran; sync code needs this captured under the same lock as
// the apply, not recomputed later against a session that may have moved.
type ApplyResult struct {
	Inverse Mutation
	Added   bool
	Changed bool
}

// Apply runs the mutation against the current session and installs the
// result. A tokenless session refuses every mutation: it carries no
// set-valued state, and a toggle racing a logout must not plant any.
// The check shares the lock with Clear, so no interleaving can slip a
// mutation into a cleared store.
func (st *Store) Apply(m Mutation) ApplyResult {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.current.Token == "" {
		return ApplyResult{Inverse: m, Changed: false}
	}

	added := Added(st.current, m)
	next, inverse, changed := Apply(st.current, m)
	if changed {
		st.current = next
	}
	return ApplyResult{Inverse: inverse, Added: added, Changed: changed}
}

// Revert restores the membership the mutation's element had before an
// apply that reported the given direction. It reports whether the store
// changed.
//
// Revert is conditional where Apply is not: if a later mutation of the
// same element already restored the pre-apply membership, there is
// nothing left to undo and the store is left alone. Rolling back a
// failed sync this way cannot cancel a toggle that landed while the
// failed call was in flight.
func (st *Store) Revert(m Mutation, added bool) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.current.Token == "" {
		return false
	}
	if contains(st.current, m) != added {
		return false
	}

	undo := m
	switch m.Kind {
	case AppendIngredient:
		undo.Kind = RemoveIngredient
	case RemoveIngredient:
		undo.Kind = AppendIngredient
	}
	next, _, changed := Apply(st.current, undo)
	if changed {
		st.current = next
	}
	return changed
}
