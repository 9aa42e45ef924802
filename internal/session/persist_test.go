package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndRestore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.toml")

	saved := Session{
		Token:           "t1",
		Email:           "m@example.com",
		Username:        "marcel",
		FavoriteRecipes: []string{"r1", "r2"},
		FavoriteShops:   []Shop{{Siret: "123", Name: "Biocoop", City: "Lyon"}},
		Regimes:         []string{RegimeVegan, RegimeOrganic},
		Ingredients:     []Ingredient{{ID: "01.13.1", Title: "Tomates"}},
	}
	if err := Save(path, saved); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("session file mode = %o, want 600", perm)
	}

	got := Restore(path)
	if got.Token != "t1" || got.Username != "marcel" {
		t.Fatalf("restored identity = %#v", got)
	}
	if len(got.FavoriteRecipes) != 2 || got.FavoriteRecipes[1] != "r2" {
		t.Fatalf("restored favorites = %v", got.FavoriteRecipes)
	}
	if len(got.FavoriteShops) != 1 || got.FavoriteShops[0].Siret != "123" {
		t.Fatalf("restored shops = %v", got.FavoriteShops)
	}
	if len(got.Ingredients) != 1 || got.Ingredients[0].Title != "Tomates" {
		t.Fatalf("restored ingredients = %v", got.Ingredients)
	}
}

func TestRestore_MissingFileYieldsZeroSession(t *testing.T) {
	got := Restore(filepath.Join(t.TempDir(), "absent.toml"))
	if got.Authenticated() {
		t.Fatalf("restored session = %#v, want zero", got)
	}
}

func TestRestore_CorruptFileYieldsZeroSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := os.WriteFile(path, []byte("{not toml"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if got := Restore(path); got.Authenticated() {
		t.Fatalf("restored session = %#v, want zero", got)
	}
}

func TestRestore_TokenlessFileYieldsZeroSession(t *testing.T) {
	// Stale favorites without a token must not surface as user state.
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := os.WriteFile(path, []byte("favorite_recipes = [\"r1\"]\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got := Restore(path)
	if len(got.FavoriteRecipes) != 0 {
		t.Fatalf("tokenless restore exposed favorites: %v", got.FavoriteRecipes)
	}
}

func TestWipe_RemovesFileAndToleratesAbsence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.toml")
	if err := Save(path, Session{Token: "t1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := Wipe(path); err != nil {
		t.Fatalf("Wipe returned error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file still present after Wipe: %v", err)
	}

	if err := Wipe(path); err != nil {
		t.Fatalf("second Wipe returned error: %v", err)
	}
}
