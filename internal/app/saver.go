package app

import (
	"context"
	"reflect"
	"time"

	"github.com/vegapp/vegapp/internal/session"
)

const defaultSaveInterval = 5 * time.Second

// StartSaver launches a background goroutine that persists the session
// at a fixed cadence whenever it changed. It returns immediately.
//
// Sign-in and logout persist synchronously through the auth manager;
// the saver covers the mutations in between, so favorites and regimes
// toggled during a run survive a crash.
func StartSaver(ctx context.Context, store *session.Store, path string, interval time.Duration) {
	if path == "" {
		return
	}
	if interval <= 0 {
		interval = defaultSaveInterval
	}
	// Seed the saved-state tracker before the goroutine exists, so a
	// mutation landing right after StartSaver returns is never mistaken
	// for already-persisted state.
	last := store.Session()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				persist(store, path, &last)
				return
			case <-ticker.C:
				persist(store, path, &last)
			}
		}
	}()
}

// persist writes the session when it differs from the last saved copy.
// A session without a token is a logout; the auth manager already wiped
// the file, so there is nothing to write.
func persist(store *session.Store, path string, last *session.Session) {
	current := store.Session()
	if reflect.DeepEqual(current, *last) {
		return
	}
	*last = current
	if !current.Authenticated() {
		return
	}
	_ = session.Save(path, current)
}
