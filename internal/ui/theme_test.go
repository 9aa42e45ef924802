package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Verdant" {
		t.Fatalf("ThemeNames()[0] = %q, want Verdant", names[0])
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%s).Name = %q", name, got)
		}
	}

	if got := GetTheme("Unknown").Name; got != "Verdant" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Verdant (fallback)", got)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	names := ThemeNames()
	seen := map[string]bool{}
	current := names[0]
	for range names {
		seen[current] = true
		current = NextTheme(current)
	}
	if current != names[0] {
		t.Fatalf("cycle did not return to %q, got %q", names[0], current)
	}
	if len(seen) != len(names) {
		t.Fatalf("cycle visited %d themes, want %d", len(seen), len(names))
	}

	if got := NextTheme("Unknown"); got != names[0] {
		t.Fatalf("NextTheme(Unknown) = %q, want %q", got, names[0])
	}
}
