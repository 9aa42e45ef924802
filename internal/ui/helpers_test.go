package ui

import (
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	if got := truncate("courgette", 20); got != "courgette" {
		t.Fatalf("truncate short = %q", got)
	}
	if got := truncate("ratatouille provençale", 10); got != "ratatou..." {
		t.Fatalf("truncate long = %q", got)
	}
	if got := truncate("abc", 0); got != "" {
		t.Fatalf("truncate zero = %q", got)
	}
}

func TestTruncate_CutsOnRuneBoundaries(t *testing.T) {
	// The cut lands inside the two-byte û when counting bytes; counting
	// runes keeps the output valid UTF-8.
	title := "Bûche de Noël aux marrons glacés"

	got := truncate(title, 5)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if got != "Bû..." {
		t.Fatalf("truncate = %q, want %q", got, "Bû...")
	}

	if got := truncate(title, 3); got != "Bûc" || !utf8.ValidString(got) {
		t.Fatalf("truncate tight = %q", got)
	}
}

func TestStars(t *testing.T) {
	if got := stars(0); got != "☆☆☆☆☆" {
		t.Fatalf("stars(0) = %q", got)
	}
	if got := stars(5); got != "★★★★★" {
		t.Fatalf("stars(5) = %q", got)
	}
	if got := stars(3.4); got != "★★★☆☆" {
		t.Fatalf("stars(3.4) = %q", got)
	}
	if got := stars(3.6); got != "★★★★☆" {
		t.Fatalf("stars(3.6) = %q", got)
	}
	if got := stars(9); got != "★★★★★" {
		t.Fatalf("stars(9) = %q, want clamped", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "--"},
		{45, "45 min"},
		{60, "1h"},
		{95, "1h35"},
	}
	for _, tc := range cases {
		if got := formatDuration(tc.minutes); got != tc.want {
			t.Fatalf("formatDuration(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestDifficultyLabel(t *testing.T) {
	if got := difficultyLabel("FACILE"); got != "Facile" {
		t.Fatalf("difficultyLabel(FACILE) = %q", got)
	}
	if got := difficultyLabel(" moyen "); got != "Moyen" {
		t.Fatalf("difficultyLabel(moyen) = %q", got)
	}
	if got := difficultyLabel("custom"); got != "custom" {
		t.Fatalf("difficultyLabel(custom) = %q, want passthrough", got)
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(-1, 3); got != 0 {
		t.Fatalf("clamp(-1, 3) = %d", got)
	}
	if got := clamp(5, 3); got != 2 {
		t.Fatalf("clamp(5, 3) = %d", got)
	}
	if got := clamp(1, 0); got != 0 {
		t.Fatalf("clamp(1, 0) = %d", got)
	}
}
